package suite

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"casex/internal/domain"
	"casex/internal/params"
)

func noop(*Assert, params.ParameterSet) {}

func methodsNamed(names ...string) []Method {
	out := make([]Method, len(names))
	for i, n := range names {
		out[i] = Method{Name: n, Func: noop}
	}
	return out
}

func setsOf(n int) []params.ParameterSet {
	sets := make([]params.ParameterSet, n)
	for i := range sets {
		sets[i] = params.New(params.F("i", i))
	}
	return sets
}

func TestBuildSuite_CaseCount(t *testing.T) {
	for _, m := range []int{0, 1, 3, 5} {
		for _, n := range []int{0, 1, 2} {
			t.Run(fmt.Sprintf("%d sets x %d methods", m, n), func(t *testing.T) {
				names := make([]string, n)
				for i := range names {
					names[i] = fmt.Sprintf("M%d", i)
				}
				s, err := BuildSuite("count", setsOf(m), NewRegistry(methodsNamed(names...)...))
				require.NoError(t, err)
				assert.Equal(t, m*n, s.Len())
			})
		}
	}
}

func TestBuildSuite_Ordering(t *testing.T) {
	reg := NewRegistry(methodsNamed("First", "Second")...)

	s, err := BuildSuite("order", setsOf(3), reg)
	require.NoError(t, err)

	want := []string{
		"First[0]", "Second[0]",
		"First[1]", "Second[1]",
		"First[2]", "Second[2]",
	}
	assert.Equal(t, want, s.Names())

	again, err := BuildSuite("order", setsOf(3), reg)
	require.NoError(t, err)
	assert.Equal(t, s.Names(), again.Names())

	for i, c := range s.Cases() {
		assert.Equal(t, i/2, c.Index())
		assert.Equal(t, i/2, c.Params().MustInt("i"))
	}
}

func TestBuildSuite_DiscoversOnce(t *testing.T) {
	calls := 0
	discover := DiscoverFunc(func() []Method {
		calls++
		return methodsNamed("A", "B")
	})

	s, err := BuildSuite("once", setsOf(4), discover)
	require.NoError(t, err)
	assert.Equal(t, 8, s.Len())
	assert.Equal(t, 1, calls)
}

func TestBuildSuite_EmptyInputs(t *testing.T) {
	t.Run("no parameter sets", func(t *testing.T) {
		s, err := BuildSuite("empty", nil, NewRegistry(methodsNamed("A")...))
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
		assert.Empty(t, s.Run())
	})

	t.Run("no methods", func(t *testing.T) {
		s, err := BuildSuite("empty", setsOf(5), DiscoverFunc(func() []Method { return nil }))
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
	})

	t.Run("nil discoverer", func(t *testing.T) {
		s, err := BuildSuite("empty", setsOf(5), nil)
		require.NoError(t, err)
		assert.Equal(t, 0, s.Len())
	})
}

func TestBuildSuite_Isolation(t *testing.T) {
	source := []string{"a", "b"}
	sets := []params.ParameterSet{params.New(params.F("parts", source))}

	vandal := Method{Name: "Vandal", Func: func(a *Assert, p params.ParameterSet) {
		parts := p.MustStrings("parts")
		parts[0] = "mutated"
	}}
	reader := Method{Name: "Reader", Func: func(a *Assert, p params.ParameterSet) {
		a.Equal([]string{"a", "b"}, p.MustStrings("parts"))
	}}

	s, err := BuildSuite("isolation", sets, NewRegistry(vandal, reader))
	require.NoError(t, err)

	source[1] = "changed after build"
	sets[0] = params.New(params.F("parts", []string{"replaced"}))

	results := s.Run()
	require.Len(t, results, 2)
	assert.Equal(t, domain.OutcomePassed, results[0].Outcome)
	assert.Equal(t, domain.OutcomePassed, results[1].Outcome, results[1].Messages)
}

func TestBuildSuite_IsolationForIntSlices(t *testing.T) {
	source := []int{1, 2}
	sets := []params.ParameterSet{params.New(params.F("xs", source))}

	vandal := Method{Name: "Vandal", Func: func(a *Assert, p params.ParameterSet) {
		v, err := p.Value("xs")
		a.True(err == nil)
		v.([]int)[0] = 99
	}}
	reader := Method{Name: "Reader", Func: func(a *Assert, p params.ParameterSet) {
		v, err := p.Value("xs")
		a.True(err == nil)
		a.Equal(1, v.([]int)[0])
	}}

	s, err := BuildSuite("isolation", sets, NewRegistry(vandal, reader))
	require.NoError(t, err)

	source[0] = 42

	results := s.Run()
	require.Len(t, results, 2)
	assert.Equal(t, domain.OutcomePassed, results[0].Outcome)
	assert.Equal(t, domain.OutcomePassed, results[1].Outcome, results[1].Messages)
}

func TestBuildSuite_FailureDoesNotAffectSiblings(t *testing.T) {
	sets := []params.ParameterSet{
		params.New(params.F("want", 1), params.F("got", 1)),
		params.New(params.F("want", 1), params.F("got", 2)),
		params.New(params.F("want", 3), params.F("got", 3)),
	}
	check := Method{Name: "Check", Func: func(a *Assert, p params.ParameterSet) {
		a.Equal(p.MustInt("want"), p.MustInt("got"))
	}}

	s, err := BuildSuite("siblings", sets, NewRegistry(check))
	require.NoError(t, err)

	results := s.Run()
	require.Len(t, results, 3)
	assert.Equal(t, domain.OutcomePassed, results[0].Outcome)
	assert.Equal(t, domain.OutcomeFailed, results[1].Outcome)
	assert.Equal(t, []string{"expected 1, got 2"}, results[1].Messages)
	assert.Equal(t, domain.OutcomePassed, results[2].Outcome)
}

func TestBuildSuite_Validation(t *testing.T) {
	needsParts := Method{
		Name:     "NeedsParts",
		Requires: []params.Requirement{params.Require("parts", params.KindStrings)},
		Func:     noop,
	}
	sets := []params.ParameterSet{
		params.New(params.F("parts", []string{"a"})),
		params.New(params.F("other", 1)),
		params.New(params.F("parts", 7)),
	}

	t.Run("lazy by default", func(t *testing.T) {
		s, err := BuildSuite("lazy", sets, NewRegistry(needsParts))
		require.NoError(t, err)
		assert.Equal(t, 3, s.Len())
	})

	t.Run("rejects invalid sets", func(t *testing.T) {
		s, err := BuildSuite("strict", sets, NewRegistry(needsParts), WithValidation())
		require.Error(t, err)
		assert.Nil(t, s)

		var verr *ValidationError
		require.True(t, errors.As(err, &verr))
		require.Len(t, verr.Problems, 2)
		assert.Equal(t, "NeedsParts[1]", verr.Problems[0].Case)
		assert.Equal(t, "NeedsParts[2]", verr.Problems[1].Case)
		assert.ErrorIs(t, err, params.ErrMissingField)
		assert.ErrorIs(t, err, params.ErrMistypedField)
		assert.Contains(t, err.Error(), "suite strict: 2 invalid")
	})

	t.Run("accepts valid sets", func(t *testing.T) {
		s, err := BuildSuite("strict", sets[:1], NewRegistry(needsParts), WithValidation())
		require.NoError(t, err)
		assert.Equal(t, 1, s.Len())
	})
}

func TestBuildSuite_WithSource(t *testing.T) {
	s, err := BuildSuite("src", setsOf(1), NewRegistry(methodsNamed("A")...), WithSource("testdata/a.cases.yaml"))
	require.NoError(t, err)

	c := s.Cases()[0]
	assert.Equal(t, "testdata/a.cases.yaml", c.Source())
	assert.Equal(t, "testdata/a.cases.yaml", c.Run().Source)
}

func TestRegistry(t *testing.T) {
	r := &Registry{}

	require.NoError(t, r.Register(Method{Name: "B", Func: noop}))
	require.NoError(t, r.Register(Method{Name: "A", Func: noop}))

	assert.ErrorIs(t, r.Register(Method{Name: "A", Func: noop}), ErrDuplicateMethod)
	assert.ErrorIs(t, r.Register(Method{Name: "", Func: noop}), ErrEmptyMethodName)
	assert.ErrorIs(t, r.Register(Method{Name: "C"}), ErrNilMethodFunc)

	assert.Equal(t, []string{"B", "A"}, r.Names())
	assert.Equal(t, 2, r.Len())

	discovered := r.Discover()
	discovered[0].Name = "changed"
	assert.Equal(t, []string{"B", "A"}, r.Names())
}

func TestNewRegistry_PanicsOnInvalidMethod(t *testing.T) {
	assert.Panics(t, func() {
		NewRegistry(Method{Name: "A", Func: noop}, Method{Name: "A", Func: noop})
	})
}

func TestRunT(t *testing.T) {
	sets := []params.ParameterSet{
		params.New(params.F("a", 1), params.F("b", 2), params.F("sum", 3)),
		params.New(params.F("a", -1), params.F("b", 1), params.F("sum", 0)),
	}
	sum := Method{Name: "Sum", Func: func(a *Assert, p params.ParameterSet) {
		a.Equal(p.MustInt("sum"), p.MustInt("a")+p.MustInt("b"))
	}}

	s, err := BuildSuite("sum", sets, NewRegistry(sum))
	require.NoError(t, err)
	s.RunT(t)
}
