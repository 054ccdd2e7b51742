package registry

import (
	"fmt"

	"github.com/henderiw/rangeset/pkg/rangeset"
	"k8s.io/apimachinery/pkg/labels"
)

// DescriptorFor describes *rangeset.RangeSet[T]. Values of any other type
// compare unequal and clone to nil.
func DescriptorFor[T any](name string, l labels.Set) Descriptor {
	return Descriptor{
		Name:   name,
		Labels: l,
		Clone: func(v any) any {
			s, ok := v.(*rangeset.RangeSet[T])
			if !ok || s == nil {
				return nil
			}
			return s.Clone()
		},
		Equal: func(a, b any) bool {
			sa, ok := a.(*rangeset.RangeSet[T])
			if !ok {
				return false
			}
			sb, ok := b.(*rangeset.RangeSet[T])
			if !ok {
				return false
			}
			if sa == nil || sb == nil {
				return sa == sb
			}
			return sa.Equal(sb)
		},
		Format: func(v any) string {
			if s, ok := v.(*rangeset.RangeSet[T]); ok && s != nil {
				return s.String()
			}
			return fmt.Sprintf("%v", v)
		},
	}
}
