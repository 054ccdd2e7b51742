// Package registry lets an integration layer describe range set types to a
// host's generic copy/compare/display machinery.
//
// There is no package level registry: the host creates a Registry during its
// own initialization and registers the descriptors it needs.
package registry

import (
	"sort"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/go-logr/logr"
	"k8s.io/apimachinery/pkg/labels"
)

var (
	ErrNotFound      = errors.New("descriptor not found")
	ErrAlreadyExists = errors.New("descriptor already registered")
)

// Descriptor tells a host how to handle values of one registered type.
// Values are passed as any; each func may assume it only receives values
// of its own type.
type Descriptor struct {
	Name   string
	Labels labels.Set

	Clone  func(v any) any
	Equal  func(a, b any) bool
	Format func(v any) string
}

func (d Descriptor) validate() error {
	if d.Name == "" {
		return errors.New("descriptor has no name")
	}
	if d.Clone == nil || d.Equal == nil || d.Format == nil {
		return errors.Newf("descriptor %s is incomplete", d.Name)
	}
	return nil
}

type Option func(*Registry)

func WithLogger(l logr.Logger) Option {
	return func(r *Registry) {
		r.log = l
	}
}

type Registry struct {
	m           sync.RWMutex
	descriptors map[string]Descriptor
	log         logr.Logger
}

func New(opts ...Option) *Registry {
	r := &Registry{
		descriptors: map[string]Descriptor{},
		log:         logr.Discard(),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *Registry) Register(d Descriptor) error {
	if err := d.validate(); err != nil {
		return err
	}
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.descriptors[d.Name]; ok {
		return errors.Wrapf(ErrAlreadyExists, "register %s", d.Name)
	}
	r.descriptors[d.Name] = d
	r.log.V(1).Info("registered descriptor", "name", d.Name, "labels", d.Labels.String())
	return nil
}

func (r *Registry) Unregister(name string) error {
	r.m.Lock()
	defer r.m.Unlock()

	if _, ok := r.descriptors[name]; !ok {
		return errors.Wrapf(ErrNotFound, "unregister %s", name)
	}
	delete(r.descriptors, name)
	r.log.V(1).Info("unregistered descriptor", "name", name)
	return nil
}

func (r *Registry) Get(name string) (Descriptor, error) {
	r.m.RLock()
	defer r.m.RUnlock()

	d, ok := r.descriptors[name]
	if !ok {
		return Descriptor{}, errors.Wrapf(ErrNotFound, "get %s", name)
	}
	return d, nil
}

// Names returns the registered names in ascending order.
func (r *Registry) Names() []string {
	r.m.RLock()
	defer r.m.RUnlock()

	names := make([]string, 0, len(r.descriptors))
	for name := range r.descriptors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Select returns the descriptors whose labels match selector, sorted by
// name.
func (r *Registry) Select(selector labels.Selector) []Descriptor {
	r.m.RLock()
	defer r.m.RUnlock()

	var out []Descriptor
	for _, d := range r.descriptors {
		if selector.Matches(d.Labels) {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
