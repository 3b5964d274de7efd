// Package suite expands parameter sets across methods into independently
// reported cases.
//
// A suite is the cross product of its parameter sets and the methods a
// Discoverer returns: for every set in input order, one case per method in
// discovery order. Cases are built up front and hold their parameter set by
// value, so running them in any order or in parallel cannot leak state
// between them.
//
//	reg := suite.NewRegistry(suite.Method{Name: "Sum", Func: checkSum})
//	s, err := suite.BuildSuite("Sum", sets, reg)
//	if err != nil {
//		t.Fatal(err)
//	}
//	s.RunT(t)
package suite

import (
	"casex/internal/domain"
	"casex/internal/params"
)

// Suite is an ordered collection of cases.
type Suite struct {
	name  string
	cases []*Case
}

// Option configures BuildSuite.
type Option func(*buildOptions)

type buildOptions struct {
	validate bool
	source   string
}

// WithValidation checks every parameter set against each method's Requires
// before any case is built. Without it, a missing or mistyped field only
// surfaces when the case that reads it runs.
func WithValidation() Option {
	return func(o *buildOptions) { o.validate = true }
}

// WithSource records the fixture path on every case.
func WithSource(path string) Option {
	return func(o *buildOptions) { o.source = path }
}

// BuildSuite expands sets across the methods returned by discovery. The
// result holds len(sets)*len(methods) cases; either factor being zero gives
// an empty, valid suite.
func BuildSuite(name string, sets []params.ParameterSet, discovery Discoverer, opts ...Option) (*Suite, error) {
	var o buildOptions
	for _, opt := range opts {
		opt(&o)
	}

	var methods []Method
	if discovery != nil {
		methods = discovery.Discover()
	}

	indexed := make([]params.ParameterSet, len(sets))
	for i, set := range sets {
		indexed[i] = set.At(i)
	}

	if o.validate {
		if err := validate(name, indexed, methods); err != nil {
			return nil, err
		}
	}

	s := &Suite{name: name, cases: make([]*Case, 0, len(indexed)*len(methods))}
	for _, set := range indexed {
		for _, m := range methods {
			s.cases = append(s.cases, newCase(m, set, o.source))
		}
	}
	return s, nil
}

// Name returns the suite name.
func (s *Suite) Name() string { return s.name }

// Len returns the number of cases.
func (s *Suite) Len() int { return len(s.cases) }

// Cases returns the cases in suite order.
func (s *Suite) Cases() []*Case {
	out := make([]*Case, len(s.cases))
	copy(out, s.cases)
	return out
}

// Names returns case names in suite order.
func (s *Suite) Names() []string {
	names := make([]string, len(s.cases))
	for i, c := range s.cases {
		names[i] = c.Name()
	}
	return names
}

// Run executes every case sequentially in suite order.
func (s *Suite) Run() []domain.CaseResult {
	results := make([]domain.CaseResult, 0, len(s.cases))
	for _, c := range s.cases {
		results = append(results, c.Run())
	}
	return results
}
