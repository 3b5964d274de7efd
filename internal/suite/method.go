package suite

import (
	"errors"
	"fmt"

	"casex/internal/params"
)

var (
	ErrEmptyMethodName = errors.New("method name is empty")
	ErrNilMethodFunc   = errors.New("method func is nil")
	ErrDuplicateMethod = errors.New("method already registered")
)

// MethodFunc is the assertion logic of a method. It reads fields from p and
// records failures on a.
type MethodFunc func(a *Assert, p params.ParameterSet)

// Method is a named assertion routine applied to every parameter set of a
// suite. Requires lists the fields Func reads; it is only consulted when a
// suite is built WithValidation.
type Method struct {
	Name     string
	Requires []params.Requirement
	Func     MethodFunc
}

// Discoverer enumerates the methods a suite is expanded against. It is called
// once per BuildSuite.
type Discoverer interface {
	Discover() []Method
}

// DiscoverFunc adapts a plain function to Discoverer.
type DiscoverFunc func() []Method

func (f DiscoverFunc) Discover() []Method {
	return f()
}

// Registry is an explicit, ordered list of methods.
type Registry struct {
	methods []Method
	names   map[string]bool
}

// NewRegistry builds a registry from methods, in order. It panics on an
// invalid method, so it is meant for package-level declarations.
func NewRegistry(methods ...Method) *Registry {
	r := &Registry{names: make(map[string]bool)}
	for _, m := range methods {
		if err := r.Register(m); err != nil {
			panic(err)
		}
	}
	return r
}

// Register appends a method.
func (r *Registry) Register(m Method) error {
	if m.Name == "" {
		return ErrEmptyMethodName
	}
	if m.Func == nil {
		return fmt.Errorf("%w: %s", ErrNilMethodFunc, m.Name)
	}
	if r.names == nil {
		r.names = make(map[string]bool)
	}
	if r.names[m.Name] {
		return fmt.Errorf("%w: %s", ErrDuplicateMethod, m.Name)
	}
	r.names[m.Name] = true
	r.methods = append(r.methods, m)
	return nil
}

// Discover returns the registered methods in registration order.
func (r *Registry) Discover() []Method {
	out := make([]Method, len(r.methods))
	copy(out, r.methods)
	return out
}

// Names returns method names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.methods))
	for i, m := range r.methods {
		names[i] = m.Name
	}
	return names
}

// Len returns the number of registered methods.
func (r *Registry) Len() int {
	return len(r.methods)
}
