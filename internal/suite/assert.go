package suite

import (
	"fmt"
	"path/filepath"
	"reflect"
	"runtime"
)

// Failure is one recorded assertion failure.
type Failure struct {
	Message string
	File    string
	Line    int
}

// Location formats the call site as file:line.
func (f Failure) Location() string {
	if f.File == "" {
		return ""
	}
	return fmt.Sprintf("%s:%d", f.File, f.Line)
}

// failNow is the panic value FailNow uses to stop a method body.
type failNow struct{}

// Assert records assertion failures for one case. Failures do not stop the
// method unless FailNow or Fatalf is called.
type Assert struct {
	failures []Failure
}

// Errorf records a failure.
func (a *Assert) Errorf(format string, args ...any) {
	a.record(fmt.Sprintf(format, args...))
}

// Fatalf records a failure and stops the method.
func (a *Assert) Fatalf(format string, args ...any) {
	a.record(fmt.Sprintf(format, args...))
	panic(failNow{})
}

// FailNow stops the method, marking the case failed.
func (a *Assert) FailNow() {
	if len(a.failures) == 0 {
		a.record("FailNow called")
	}
	panic(failNow{})
}

// Equal records a failure unless expected and actual are deeply equal.
// msgAndArgs is an optional format string and its arguments prepended to
// the failure message.
func (a *Assert) Equal(expected, actual any, msgAndArgs ...any) bool {
	if reflect.DeepEqual(expected, actual) {
		return true
	}
	msg := fmt.Sprintf("expected %s, got %s", show(expected), show(actual))
	if prefix := messageFrom(msgAndArgs); prefix != "" {
		msg = prefix + ": " + msg
	}
	a.record(msg)
	return false
}

// True records a failure unless cond holds.
func (a *Assert) True(cond bool, msgAndArgs ...any) bool {
	if cond {
		return true
	}
	msg := "expected true"
	if prefix := messageFrom(msgAndArgs); prefix != "" {
		msg = prefix + ": " + msg
	}
	a.record(msg)
	return false
}

// Failed reports whether any failure was recorded.
func (a *Assert) Failed() bool {
	return len(a.failures) > 0
}

// Failures returns the recorded failures in order.
func (a *Assert) Failures() []Failure {
	out := make([]Failure, len(a.failures))
	copy(out, a.failures)
	return out
}

// record must be called directly from an exported Assert method so that
// caller depth 2 is the method body.
func (a *Assert) record(msg string) {
	f := Failure{Message: msg}
	if _, file, line, ok := runtime.Caller(2); ok {
		f.File = filepath.Base(file)
		f.Line = line
	}
	a.failures = append(a.failures, f)
}

func show(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprintf("%#v", v)
}

func messageFrom(msgAndArgs []any) string {
	if len(msgAndArgs) == 0 {
		return ""
	}
	format, ok := msgAndArgs[0].(string)
	if !ok {
		return fmt.Sprint(msgAndArgs...)
	}
	return fmt.Sprintf(format, msgAndArgs[1:]...)
}
