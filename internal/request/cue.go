package request

import (
	"fmt"
	"path/filepath"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/load"
)

// requestSchema constrains the shape of request documents. The semantic
// checks (known chronology, known rules, strictness values, integer
// values) run in Go afterwards so each failure gets its own R-code; the
// schema's job is closedness and primitive types.
const requestSchema = `
#Request: {
	chronology?: string
	strictness?: string
	fields?: [...#Field]
	note?:       string
}

#Field: {
	rule?:  string
	value?: _
}
`

// LoadCUEFile loads a single CUE request document. The request lives under
// the top-level "request" label:
//
//	request: {
//		chronology: "ISO"
//		strictness: "strict"
//		fields: [
//			{rule: "Year", value: 2024},
//			{rule: "MonthOfYear", value: 2},
//			{rule: "DayOfMonth", value: 29},
//		]
//	}
func LoadCUEFile(path string) (*Request, []error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(requestSchema)
	if err := schema.Err(); err != nil {
		return nil, []error{fmt.Errorf("compiling request schema: %w", err)}
	}

	cfg := &load.Config{Dir: filepath.Dir(path)}
	instances := load.Instances([]string{filepath.Base(path)}, cfg)
	if len(instances) == 0 {
		return nil, []error{&ValidationError{
			Code:    CodeBadDocument,
			Message: fmt.Sprintf("no CUE instance loaded from %s", path),
		}}
	}
	inst := instances[0]
	if inst.Err != nil {
		return nil, []error{cueDocumentError(inst.Err)}
	}

	value := ctx.BuildInstance(inst)
	if err := value.Err(); err != nil {
		return nil, []error{cueDocumentError(err)}
	}

	reqVal := value.LookupPath(cue.ParsePath("request"))
	if !reqVal.Exists() {
		return nil, []error{&ValidationError{
			Code:    CodeBadDocument,
			Message: "document has no top-level request",
			Pos:     value.Pos(),
		}}
	}

	unified := reqVal.Unify(schema.LookupPath(cue.ParsePath("#Request")))
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, []error{cueDocumentError(err)}
	}

	return extractRequest(unified)
}

// extractRequest pulls a Request out of a schema-checked CUE value.
// Non-integer field values are collected as R007 rather than aborting.
func extractRequest(v cue.Value) (*Request, []error) {
	var errs []error
	req := &Request{}

	if s, err := v.LookupPath(cue.ParsePath("chronology")).String(); err == nil {
		req.Chronology = s
	}
	if s, err := v.LookupPath(cue.ParsePath("strictness")).String(); err == nil {
		req.Strictness = s
	}
	if noteVal := v.LookupPath(cue.ParsePath("note")); noteVal.Exists() {
		if s, err := noteVal.String(); err == nil {
			req.Note = s
		}
	}

	fieldsVal := v.LookupPath(cue.ParsePath("fields"))
	if fieldsVal.Exists() {
		iter, err := fieldsVal.List()
		if err != nil {
			return nil, []error{cueDocumentError(err)}
		}
		for i := 0; iter.Next(); i++ {
			fv := iter.Value()

			var f Field
			if s, err := fv.LookupPath(cue.ParsePath("rule")).String(); err == nil {
				f.Rule = s
			}

			valVal := fv.LookupPath(cue.ParsePath("value"))
			if !valVal.Exists() {
				errs = append(errs, &ValidationError{
					Code:    CodeNonIntegerValue,
					Path:    fmt.Sprintf("fields[%d].value", i),
					Message: "value is required",
					Pos:     fv.Pos(),
				})
				continue
			}
			n, err := valVal.Int64()
			if err != nil {
				errs = append(errs, &ValidationError{
					Code:    CodeNonIntegerValue,
					Path:    fmt.Sprintf("fields[%d].value", i),
					Message: fmt.Sprintf("value must be an integer, got %v", valVal.IncompleteKind()),
					Pos:     valVal.Pos(),
				})
				continue
			}
			f.Value = n
			req.Fields = append(req.Fields, f)
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return req, nil
}

// cueDocumentError converts a CUE error into an R008 with position info.
func cueDocumentError(err error) error {
	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return &ValidationError{Code: CodeBadDocument, Message: err.Error()}
	}

	first := errs[0]
	verr := &ValidationError{Code: CodeBadDocument, Message: first.Error()}
	if positions := cueerrors.Positions(first); len(positions) > 0 {
		verr.Pos = positions[0]
	}
	return verr
}
