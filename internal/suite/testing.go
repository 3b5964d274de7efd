package suite

import (
	"strings"
	"testing"

	"casex/internal/domain"
)

// RunT runs every case as a subtest of t, named after the case. Assertion
// failures are reported with t.Errorf; an errored case stops its own subtest
// with t.Fatalf and leaves the others running.
func (s *Suite) RunT(t *testing.T) {
	t.Helper()
	for _, c := range s.cases {
		t.Run(c.Name(), func(t *testing.T) {
			t.Helper()
			report(t, c.Run())
		})
	}
}

func report(t testing.TB, res domain.CaseResult) {
	t.Helper()
	switch res.Outcome {
	case domain.OutcomeFailed:
		for i, msg := range res.Messages {
			if i < len(res.Locations) && res.Locations[i] != "" {
				t.Errorf("%s: %s", res.Locations[i], msg)
				continue
			}
			t.Errorf("%s", msg)
		}
	case domain.OutcomeErrored:
		t.Fatalf("%s with %s: %s", res.Name, res.Parameters, strings.Join(res.Messages, "; "))
	}
}
