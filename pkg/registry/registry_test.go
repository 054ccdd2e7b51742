package registry

import (
	"net/netip"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr/testr"
	"github.com/henderiw/rangeset/pkg/rangeset"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/apimachinery/pkg/labels"
)

func newRegistry(t *testing.T) *Registry {
	return New(WithLogger(testr.NewWithOptions(t, testr.Options{Verbosity: 1})))
}

func TestRegister(t *testing.T) {
	cases := map[string]struct {
		descriptors []Descriptor
		expectedErr error
		names       []string
	}{
		"Normal": {
			descriptors: []Descriptor{
				DescriptorFor[int64]("int64", labels.Set{"kind": "integer"}),
				DescriptorFor[float64]("float64", labels.Set{"kind": "float"}),
			},
			names: []string{"float64", "int64"},
		},
		"Duplicate": {
			descriptors: []Descriptor{
				DescriptorFor[int64]("int64", nil),
				DescriptorFor[int32]("int64", nil),
			},
			expectedErr: ErrAlreadyExists,
			names:       []string{"int64"},
		},
		"NoName": {
			descriptors: []Descriptor{DescriptorFor[int64]("", nil)},
			names:       []string{},
		},
		"Incomplete": {
			descriptors: []Descriptor{{Name: "partial"}},
			names:       []string{},
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			r := newRegistry(t)
			var err error
			for _, d := range tc.descriptors {
				if e := r.Register(d); e != nil {
					err = e
				}
			}
			switch {
			case tc.expectedErr != nil:
				assert.True(t, errors.Is(err, tc.expectedErr), "got %v", err)
			case len(tc.names) < len(tc.descriptors):
				assert.Error(t, err)
			default:
				assert.NoError(t, err)
			}
			assert.Equal(t, tc.names, r.Names())
		})
	}
}

func TestGetAndUnregister(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Register(DescriptorFor[int64]("int64", nil)))

	d, err := r.Get("int64")
	require.NoError(t, err)
	assert.Equal(t, "int64", d.Name)

	_, err = r.Get("missing")
	assert.True(t, errors.Is(err, ErrNotFound))

	require.NoError(t, r.Unregister("int64"))
	assert.True(t, errors.Is(r.Unregister("int64"), ErrNotFound))
	assert.Empty(t, r.Names())
}

func TestSelect(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Register(DescriptorFor[int64]("int64", labels.Set{"kind": "integer", "width": "64"})))
	require.NoError(t, r.Register(DescriptorFor[int32]("int32", labels.Set{"kind": "integer", "width": "32"})))
	require.NoError(t, r.Register(DescriptorFor[netip.Addr]("addr", labels.Set{"kind": "address"})))

	sel, err := labels.Parse("kind=integer")
	require.NoError(t, err)
	var names []string
	for _, d := range r.Select(sel) {
		names = append(names, d.Name)
	}
	assert.Equal(t, []string{"int32", "int64"}, names)

	sel, err = labels.Parse("kind in (address, float)")
	require.NoError(t, err)
	assert.Len(t, r.Select(sel), 1)

	assert.Len(t, r.Select(labels.Everything()), 3)
}

func TestDescriptorFor(t *testing.T) {
	d := DescriptorFor[int64]("int64", nil)

	s := rangeset.New(rangeset.IntervalOf[int64](1, 5), rangeset.IntervalOf[int64](7, 9))
	c := d.Clone(s)
	require.NotNil(t, c)
	assert.True(t, d.Equal(s, c))
	assert.Equal(t, "[1,5) [7,9)", d.Format(c))

	// the clone is independent of the original
	c.(*rangeset.RangeSet[int64]).Add(rangeset.IntervalOf[int64](5, 7))
	assert.False(t, d.Equal(s, c))
	assert.Equal(t, "[1,9)", d.Format(c))

	assert.False(t, d.Equal(s, rangeset.New(rangeset.IntervalOf[int32](1, 5))))
	assert.False(t, d.Equal("x", s))
	assert.Nil(t, d.Clone("x"))
	assert.Equal(t, "x", d.Format("x"))
}
