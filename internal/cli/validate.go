package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almanac-go/almanac/internal/request"
)

// ValidationResult holds validation results for one request document.
type ValidationResult struct {
	Valid      bool            `json:"valid"`
	Chronology string          `json:"chronology,omitempty"`
	Strictness string          `json:"strictness,omitempty"`
	Fields     int             `json:"fields,omitempty"`
	Errors     []DocumentError `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a request document without resolving",
		Long: `Validate a resolution request document without running the resolver.

Checks the document shape, the chronology name, the rule names, and the
strictness value. Every problem is reported with its stable R-code; the
check does not stop at the first one.

Exit codes:
  0 - Document valid
  1 - Document invalid (problems reported)
  2 - Command error (file not found, unsupported extension)

Examples:
  almanac validate request.cue
  almanac validate request.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(), // Verbose logs go to stderr to avoid corrupting JSON
		Verbose:   opts.Verbose,
	}

	req, docErrs, loadErr := loadRequestFile(path)
	if loadErr != nil {
		_ = formatter.Error(loadErr.Code, loadErr.Message, nil)
		// Load failures are command-level errors (exit code 2)
		return NewExitError(ExitCommandError, loadErr.Error())
	}

	formatter.VerboseLog("Loaded request document %s", path)

	allErrors := documentErrors(docErrs)
	if len(allErrors) == 0 {
		allErrors = documentErrors(request.Validate(req))
	}

	if len(allErrors) > 0 {
		return outputValidationErrors(formatter, allErrors)
	}

	strictness := req.Strictness
	if strictness == "" {
		strictness = "strict"
	}
	return outputValidateSuccess(formatter, ValidationResult{
		Valid:      true,
		Chronology: req.Chronology,
		Strictness: strictness,
		Fields:     len(req.Fields),
	})
}

// outputValidateSuccess outputs successful validation results.
func outputValidateSuccess(formatter *OutputFormatter, result ValidationResult) error {
	if formatter.Format == "json" {
		return formatter.Success(result)
	}

	fmt.Fprintln(formatter.Writer, "✓ Request document valid")
	fmt.Fprintf(formatter.Writer, "  chronology: %s (%s), %d field(s)\n", result.Chronology, result.Strictness, result.Fields)
	return nil
}

// outputValidationErrors outputs document problems and flags the run as a
// validation failure.
func outputValidationErrors(formatter *OutputFormatter, errs []DocumentError) error {
	if formatter.Format == "json" {
		_ = formatter.Error(errs[0].Code, errs[0].Message, ValidationResult{Valid: false, Errors: errs})
		return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
	}

	fmt.Fprintln(formatter.Writer, "✗ Validation failed")
	fmt.Fprintln(formatter.Writer)

	for _, derr := range errs {
		if derr.Line > 0 {
			fmt.Fprintf(formatter.Writer, "line %d\n", derr.Line)
		}
		if derr.Path != "" {
			fmt.Fprintf(formatter.Writer, "  %s: %s: %s\n\n", derr.Code, derr.Path, derr.Message)
		} else {
			fmt.Fprintf(formatter.Writer, "  %s: %s\n\n", derr.Code, derr.Message)
		}
	}

	return NewExitError(ExitFailure, fmt.Sprintf("validation failed with %d error(s)", len(errs)))
}
