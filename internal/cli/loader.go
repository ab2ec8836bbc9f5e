package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue/token"

	"github.com/almanac-go/almanac/internal/request"
)

// Command-level load failures use E-codes; problems inside a document
// carry the request package's R-codes unchanged.
const (
	ErrCodeGeneric      = "E001" // Generic/unknown error
	ErrCodeBadExtension = "E002" // Unsupported document extension
	ErrCodeNotFound     = "E005" // Path not found
)

// LoadError represents a command-level failure to read a request document
// at all: a missing path, a directory, an extension no loader handles.
// Content problems inside a readable document are reported separately.
type LoadError struct {
	Code    string
	Message string
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// loadRequestFile reads a request document, dispatching on extension.
// CUE documents nest the request under a top-level "request" label; YAML
// documents are the request object itself.
//
// The LoadError return is a command-level problem; the error slice
// carries document content problems for validation-style reporting.
func loadRequestFile(path string) (*request.Request, []error, *LoadError) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("request document not found: %s", path)}
	}
	if err != nil {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("error accessing request document: %v", err)}
	}
	if info.IsDir() {
		return nil, nil, &LoadError{Code: ErrCodeNotFound, Message: fmt.Sprintf("not a file: %s", path)}
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".cue":
		req, errs := request.LoadCUEFile(path)
		return req, errs, nil
	case ".yaml", ".yml":
		req, errs := request.LoadYAMLFile(path)
		return req, errs, nil
	default:
		return nil, nil, &LoadError{
			Code:    ErrCodeBadExtension,
			Message: fmt.Sprintf("unsupported request document extension %q (want .cue, .yaml, or .yml)", filepath.Ext(path)),
		}
	}
}

// DocumentError is the serializable form of one request-document problem.
type DocumentError struct {
	Code    string `json:"code"`
	Path    string `json:"path,omitempty"`
	Message string `json:"message"`
	Line    int    `json:"line,omitempty"`
}

// documentErrors converts request validation errors to their output shape.
// Errors without a structured form get the generic code.
func documentErrors(errs []error) []DocumentError {
	out := make([]DocumentError, 0, len(errs))
	for _, err := range errs {
		if verr, ok := err.(*request.ValidationError); ok {
			out = append(out, DocumentError{
				Code:    verr.Code,
				Path:    verr.Path,
				Message: verr.Message,
				Line:    lineOf(verr.Pos),
			})
			continue
		}
		out = append(out, DocumentError{Code: ErrCodeGeneric, Message: err.Error()})
	}
	return out
}

func lineOf(pos token.Pos) int {
	if pos.IsValid() {
		return pos.Line()
	}
	return 0
}

// compileDocument loads and compiles a request document for the commands
// that go on to resolve it. Document problems of either stage are reported
// through the formatter and come back as an ExitFailure.
func compileDocument(path string, formatter *OutputFormatter) (*request.Compiled, error) {
	req, docErrs, loadErr := loadRequestFile(path)
	if loadErr != nil {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		return nil, NewExitError(ExitCommandError, loadErr.Error())
	}
	if len(docErrs) > 0 {
		return nil, outputValidationErrors(formatter, documentErrors(docErrs))
	}

	compiled, errs := request.Compile(req)
	if len(errs) > 0 {
		return nil, outputValidationErrors(formatter, documentErrors(errs))
	}
	return compiled, nil
}
