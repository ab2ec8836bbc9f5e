package harness

import "github.com/almanac-go/almanac/internal/resolve"

// Result is the outcome of one scenario execution.
type Result struct {
	// Pass indicates overall scenario success.
	// True if every expectation and assertion held.
	Pass bool `json:"pass"`

	// Canonical is the canonical string of the resolved date-time.
	// Empty when resolution failed.
	Canonical string `json:"canonical,omitempty"`

	// EpochDay is the epoch day of the resolved date-time.
	// Meaningless when ErrorCode is set.
	EpochDay int64 `json:"epoch_day"`

	// NanoOfDay is the nano-of-day of the resolved time.
	// Meaningless when ErrorCode is set.
	NanoOfDay int64 `json:"nano_of_day"`

	// ErrorCode is the resolution error code, if resolution failed.
	ErrorCode string `json:"error_code,omitempty"`

	// Trace is the derivation trace of the resolution run.
	// Populated even on failure.
	Trace *resolve.Trace `json:"trace,omitempty"`

	// Errors contains expectation and assertion failure messages.
	// Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a new passing result.
// Used as the starting point for scenario execution.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Errors: []string{},
	}
}

// AddError adds a failure message and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// Steps returns the trace steps, or nil when resolution never ran.
func (r *Result) Steps() []resolve.TraceStep {
	if r.Trace == nil {
		return nil
	}
	return r.Trace.Steps
}
