package suite

import (
	"fmt"
	"strings"

	"casex/internal/params"
)

// Problem is one parameter set that does not satisfy a method's requirements.
type Problem struct {
	Case string
	Err  *params.FieldError
}

// ValidationError lists every problem found while building a suite.
type ValidationError struct {
	Suite    string
	Problems []Problem
}

func (e *ValidationError) Error() string {
	parts := make([]string, len(e.Problems))
	for i, p := range e.Problems {
		parts[i] = p.Case + ": " + p.Err.Error()
	}
	return fmt.Sprintf("suite %s: %d invalid parameter field(s): %s", e.Suite, len(e.Problems), strings.Join(parts, "; "))
}

// Unwrap exposes the field errors to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, len(e.Problems))
	for i, p := range e.Problems {
		errs[i] = p.Err
	}
	return errs
}

func validate(name string, sets []params.ParameterSet, methods []Method) error {
	var problems []Problem
	for _, set := range sets {
		for _, m := range methods {
			for _, fe := range set.Check(m.Requires...) {
				problems = append(problems, Problem{Case: Name(m.Name, set.Index()), Err: fe})
			}
		}
	}
	if len(problems) == 0 {
		return nil
	}
	return &ValidationError{Suite: name, Problems: problems}
}
