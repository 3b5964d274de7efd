package methods

import (
	"strings"

	"casex/internal/params"
	"casex/internal/suite"
)

// Field names read by the concat methods.
const (
	FieldParts    = "parts"
	FieldExpected = "expected"
)

// GeneratedString concatenates the parts field in order and compares the
// result with the expected field.
var GeneratedString = suite.Method{
	Name: "GeneratedString",
	Requires: []params.Requirement{
		params.Require(FieldParts, params.KindStrings),
		params.Require(FieldExpected, params.KindString),
	},
	Func: func(a *suite.Assert, p params.ParameterSet) {
		actual := strings.Join(p.MustStrings(FieldParts), "")
		a.Equal(p.MustString(FieldExpected), actual)
	},
}

// GeneratedStringDoesSomethingElse makes no assertions. It is registered next
// to GeneratedString so every concat fixture expands to two cases per set.
var GeneratedStringDoesSomethingElse = suite.Method{
	Name: "GeneratedStringDoesSomethingElse",
	Func: func(*suite.Assert, params.ParameterSet) {},
}

// Concat returns the concat catalog.
func Concat() *suite.Registry {
	return suite.NewRegistry(GeneratedString, GeneratedStringDoesSomethingElse)
}
