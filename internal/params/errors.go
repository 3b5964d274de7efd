package params

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingField marks a lookup of a field the set does not declare.
	ErrMissingField = errors.New("missing parameter field")
	// ErrMistypedField marks a field whose value has an unexpected shape.
	ErrMistypedField = errors.New("mistyped parameter field")
)

// Kind is the value shape a method expects from a field.
type Kind int

const (
	KindAny Kind = iota
	KindString
	KindStrings
	KindInt
	KindBool
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindStrings:
		return "[]string"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	}
	return "any"
}

// FieldError reports a missing or mistyped field.
type FieldError struct {
	Field string
	Err   error // ErrMissingField or ErrMistypedField
	Want  Kind
	Got   string
}

func (e *FieldError) Error() string {
	if errors.Is(e.Err, ErrMissingField) {
		return fmt.Sprintf("%s %q", e.Err, e.Field)
	}
	return fmt.Sprintf("%s %q: want %s, got %s", e.Err, e.Field, e.Want, e.Got)
}

func (e *FieldError) Unwrap() error {
	return e.Err
}

func missing(name string, want Kind) *FieldError {
	return &FieldError{Field: name, Err: ErrMissingField, Want: want}
}

func mistyped(name string, want Kind, got any) *FieldError {
	return &FieldError{Field: name, Err: ErrMistypedField, Want: want, Got: fmt.Sprintf("%T", got)}
}
