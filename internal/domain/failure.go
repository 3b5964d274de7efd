package domain

// TestFailure represents a failed or errored case
type TestFailure struct {
	TestName     string   `json:"test_name"`
	FilePath     string   `json:"file_path"`
	Method       string   `json:"method"`
	SetIndex     int      `json:"set_index"`
	Outcome      Outcome  `json:"outcome"`
	ErrorDetails string   `json:"error_details"`
	StackTrace   []string `json:"stack_trace"`
	File         string   `json:"file"`
	Line         int      `json:"line"`
	Message      string   `json:"message"`
	Resolved     bool     `json:"resolved,omitempty"` // Track if the case is marked as resolved
}

// Key identifies the case across runs.
func (f TestFailure) Key() string {
	return f.FilePath + "::" + f.TestName
}
