package chrono

import (
	"errors"
	"fmt"
)

// Error represents a calendrical computation failure.
//
// Error kinds:
//   - Out of range: a supplied field value violates its rule's ValueRange
//   - Unsupported field: a rule queried against a chronology that lacks it
//   - Chronology mismatch: a cross-calendar value reached a mutation point
//   - Resolution conflict: strict merge found two inconsistent values
//   - Resolution incomplete: a required field is missing at resolve time
//   - Arithmetic overflow: int64 range exceeded before modulo reduction
//
// All failures are local, synchronous, and value-level. Nothing is retried
// internally; the target of a failed mutation is always left unmodified.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Rule names the field rule involved, if any.
	Rule string

	// Chronology names the calendar system involved, if any.
	Chronology string

	// Details contains additional context such as offending values.
	Details map[string]string
}

// ErrorCode categorizes calendrical errors.
type ErrorCode string

const (
	// CodeOutOfRange indicates a field value outside its rule's range.
	CodeOutOfRange ErrorCode = "OUT_OF_RANGE"

	// CodeUnsupportedField indicates a rule foreign to the queried value.
	CodeUnsupportedField ErrorCode = "UNSUPPORTED_FIELD"

	// CodeChronologyMismatch indicates a cross-calendar substitution attempt.
	CodeChronologyMismatch ErrorCode = "CHRONOLOGY_MISMATCH"

	// CodeResolutionConflict indicates two inconsistent values for one field.
	CodeResolutionConflict ErrorCode = "RESOLUTION_CONFLICT"

	// CodeResolutionIncomplete indicates a missing required field.
	CodeResolutionIncomplete ErrorCode = "RESOLUTION_INCOMPLETE"

	// CodeArithmeticOverflow indicates int64 overflow during arithmetic.
	CodeArithmeticOverflow ErrorCode = "ARITHMETIC_OVERFLOW"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Rule != "" && e.Chronology != "" {
		return fmt.Sprintf("%s: %s (rule=%s, chronology=%s)", e.Code, e.Message, e.Rule, e.Chronology)
	}
	if e.Rule != "" {
		return fmt.Sprintf("%s: %s (rule=%s)", e.Code, e.Message, e.Rule)
	}
	if e.Chronology != "" {
		return fmt.Sprintf("%s: %s (chronology=%s)", e.Code, e.Message, e.Chronology)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsOutOfRange returns true if the error is an out-of-range error.
// Uses errors.As to handle wrapped errors.
func IsOutOfRange(err error) bool {
	return hasCode(err, CodeOutOfRange)
}

// IsUnsupportedField returns true if the error is an unsupported-field error.
func IsUnsupportedField(err error) bool {
	return hasCode(err, CodeUnsupportedField)
}

// IsChronologyMismatch returns true if the error is a chronology mismatch.
func IsChronologyMismatch(err error) bool {
	return hasCode(err, CodeChronologyMismatch)
}

// IsResolutionConflict returns true if the error is a resolution conflict.
func IsResolutionConflict(err error) bool {
	return hasCode(err, CodeResolutionConflict)
}

// IsResolutionIncomplete returns true if the error reports a missing field.
func IsResolutionIncomplete(err error) bool {
	return hasCode(err, CodeResolutionIncomplete)
}

// IsArithmeticOverflow returns true if the error is an arithmetic overflow.
func IsArithmeticOverflow(err error) bool {
	return hasCode(err, CodeArithmeticOverflow)
}

func hasCode(err error, code ErrorCode) bool {
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Code == code
	}
	return false
}

// NewOutOfRangeError creates an Error for a value outside a rule's range.
func NewOutOfRangeError(rule *FieldRule, value int64) *Error {
	return &Error{
		Code:       CodeOutOfRange,
		Message:    fmt.Sprintf("value %d outside range %s", value, rule.Range()),
		Rule:       rule.Name(),
		Chronology: rule.Chronology().Name(),
		Details: map[string]string{
			"value": fmt.Sprintf("%d", value),
			"range": rule.Range().String(),
		},
	}
}

// NewUnsupportedFieldError creates an Error for a rule queried against a
// value belonging to a different chronology.
func NewUnsupportedFieldError(rule *FieldRule, target *Chronology) *Error {
	return &Error{
		Code:       CodeUnsupportedField,
		Message:    fmt.Sprintf("rule %s not defined for %s values", rule.Name(), target.Name()),
		Rule:       rule.Name(),
		Chronology: target.Name(),
	}
}

// NewChronologyMismatchError creates an Error for a cross-calendar mutation.
// The want chronology is the target's; the got chronology is the intruder's.
func NewChronologyMismatchError(want, got *Chronology) *Error {
	return &Error{
		Code:       CodeChronologyMismatch,
		Message:    fmt.Sprintf("expected %s value, got %s", want.Name(), got.Name()),
		Chronology: want.Name(),
		Details: map[string]string{
			"want": want.Name(),
			"got":  got.Name(),
		},
	}
}

// NewResolutionConflictError creates an Error for two inconsistent values of
// the same rule. The first value is the one already held (first writer wins
// for diagnostics), the second is the disagreeing newcomer.
func NewResolutionConflictError(rule *FieldRule, held, competing int64) *Error {
	return &Error{
		Code:       CodeResolutionConflict,
		Message:    fmt.Sprintf("conflicting values %d and %d", held, competing),
		Rule:       rule.Name(),
		Chronology: rule.Chronology().Name(),
		Details: map[string]string{
			"held":      fmt.Sprintf("%d", held),
			"competing": fmt.Sprintf("%d", competing),
		},
	}
}

// NewResolutionIncompleteError creates an Error for a resolve call that is
// missing a required field.
func NewResolutionIncompleteError(chrono *Chronology, missing string) *Error {
	return &Error{
		Code:       CodeResolutionIncomplete,
		Message:    fmt.Sprintf("missing required field: %s", missing),
		Chronology: chrono.Name(),
		Details:    map[string]string{"missing": missing},
	}
}

// NewArithmeticOverflowError creates an Error for int64 overflow.
func NewArithmeticOverflowError(op string) *Error {
	return &Error{
		Code:    CodeArithmeticOverflow,
		Message: fmt.Sprintf("int64 overflow in %s", op),
	}
}
