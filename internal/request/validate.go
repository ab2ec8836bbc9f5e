package request

import (
	"fmt"

	"cuelang.org/go/cue/token"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

// Validation error codes, stable across releases. Tools match on these.
const (
	CodeMissingChronology = "R001"
	CodeUnknownChronology = "R002"
	CodeUnknownRule       = "R003"
	CodeMissingFields     = "R004"
	CodeBadStrictness     = "R005"
	CodeDuplicateRule     = "R006"
	CodeNonIntegerValue   = "R007"
	CodeBadDocument       = "R008"
)

// ValidationError describes one problem found in a request document.
type ValidationError struct {
	Code    string
	Path    string // document path like "fields[2].rule", empty for whole-document errors
	Message string
	Pos     token.Pos // CUE source position if available
}

func (e *ValidationError) Error() string {
	var prefix string
	if e.Pos.IsValid() {
		prefix = fmt.Sprintf("%s:%d:%d: ", e.Pos.Filename(), e.Pos.Line(), e.Pos.Column())
	}
	if e.Path != "" {
		return fmt.Sprintf("%s%s: %s: %s", prefix, e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s%s: %s", prefix, e.Code, e.Message)
}

// Validate checks a parsed request against the chronology registry. It
// collects every problem instead of stopping at the first, so a caller can
// report a complete picture of a broken document.
func Validate(req *Request) []error {
	var errs []error

	var c *chrono.Chronology
	if req.Chronology == "" {
		errs = append(errs, &ValidationError{
			Code:    CodeMissingChronology,
			Path:    "chronology",
			Message: "chronology is required",
		})
	} else {
		var err error
		c, err = chrono.ChronologyByName(req.Chronology)
		if err != nil {
			c = nil
			errs = append(errs, &ValidationError{
				Code:    CodeUnknownChronology,
				Path:    "chronology",
				Message: fmt.Sprintf("unknown chronology %q", req.Chronology),
			})
		}
	}

	if req.Strictness != "" {
		if _, ok := resolve.StrictnessByName(req.Strictness); !ok {
			errs = append(errs, &ValidationError{
				Code:    CodeBadStrictness,
				Path:    "strictness",
				Message: fmt.Sprintf("strictness must be \"strict\" or \"lenient\", got %q", req.Strictness),
			})
		}
	}

	if len(req.Fields) == 0 {
		errs = append(errs, &ValidationError{
			Code:    CodeMissingFields,
			Path:    "fields",
			Message: "at least one field is required",
		})
	}

	seen := make(map[string]int)
	for i, f := range req.Fields {
		path := fmt.Sprintf("fields[%d].rule", i)

		if f.Rule == "" {
			errs = append(errs, &ValidationError{
				Code:    CodeUnknownRule,
				Path:    path,
				Message: "rule name is required",
			})
			continue
		}

		if first, dup := seen[f.Rule]; dup {
			errs = append(errs, &ValidationError{
				Code:    CodeDuplicateRule,
				Path:    path,
				Message: fmt.Sprintf("rule %q already given at fields[%d]", f.Rule, first),
			})
			continue
		}
		seen[f.Rule] = i

		if _, ok := chrono.FieldKindByName(f.Rule); !ok {
			msg := fmt.Sprintf("unknown rule %q", f.Rule)
			if c != nil {
				msg = fmt.Sprintf("unknown rule %q for chronology %s", f.Rule, c.Name())
			}
			errs = append(errs, &ValidationError{
				Code:    CodeUnknownRule,
				Path:    path,
				Message: msg,
			})
		}
	}

	return errs
}
