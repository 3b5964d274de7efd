package suite

import (
	"errors"
	"fmt"
	"time"

	"casex/internal/domain"
	"casex/internal/params"
)

// Case pairs one method with one parameter set. Its fields are assigned once
// by BuildSuite and never change afterwards.
type Case struct {
	name   string
	method Method
	set    params.ParameterSet
	source string
}

func newCase(m Method, set params.ParameterSet, source string) *Case {
	return &Case{
		name:   Name(m.Name, set.Index()),
		method: m,
		set:    set,
		source: source,
	}
}

// Name formats a case name as method[index].
func Name(method string, index int) string {
	return fmt.Sprintf("%s[%d]", method, index)
}

// Name returns the case name, method[index].
func (c *Case) Name() string { return c.name }

// MethodName returns the name of the method the case runs.
func (c *Case) MethodName() string { return c.method.Name }

// Index returns the position of the parameter set in its source list.
func (c *Case) Index() int { return c.set.Index() }

// Params returns the parameter set. ParameterSet is read-only, so the value
// can be handed out freely.
func (c *Case) Params() params.ParameterSet { return c.set }

// Source returns the fixture path the case was built from, if any.
func (c *Case) Source() string { return c.source }

// Run executes the method against the parameter set. It never panics: a
// panic inside the method is reported as an errored result so that sibling
// cases keep running.
func (c *Case) Run() domain.CaseResult {
	a := &Assert{}
	start := time.Now()
	recovered := c.invoke(a)
	duration := time.Since(start)

	result := domain.CaseResult{
		Name:       c.name,
		Method:     c.method.Name,
		SetIndex:   c.set.Index(),
		Source:     c.source,
		Parameters: c.set.String(),
		Outcome:    domain.OutcomePassed,
		Duration:   duration,
	}
	for _, f := range a.failures {
		result.Messages = append(result.Messages, f.Message)
		result.Locations = append(result.Locations, f.Location())
	}

	switch r := recovered.(type) {
	case nil:
		if a.Failed() {
			result.Outcome = domain.OutcomeFailed
		}
	case failNow:
		result.Outcome = domain.OutcomeFailed
	case error:
		result.Outcome = domain.OutcomeErrored
		var fe *params.FieldError
		if errors.As(r, &fe) {
			result.Messages = append(result.Messages, fe.Error())
		} else {
			result.Messages = append(result.Messages, "panic: "+r.Error())
		}
	default:
		result.Outcome = domain.OutcomeErrored
		result.Messages = append(result.Messages, fmt.Sprintf("panic: %v", r))
	}
	return result
}

func (c *Case) invoke(a *Assert) (recovered any) {
	defer func() {
		recovered = recover()
	}()
	if c.method.Func == nil {
		panic(fmt.Errorf("%w: %s", ErrNilMethodFunc, c.method.Name))
	}
	c.method.Func(a, c.set)
	return nil
}
