package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almanac-go/almanac/internal/chrono"
)

// ConvertOptions holds flags for the convert command.
type ConvertOptions struct {
	*RootOptions
	Target string
}

// ConvertEndpoint is one side of a conversion.
type ConvertEndpoint struct {
	Chronology string          `json:"chronology"`
	Canonical  string          `json:"canonical"`
	Fields     []ResolvedField `json:"fields,omitempty"`
}

// ConvertResult holds the outcome of converting a resolved date-time.
type ConvertResult struct {
	From      ConvertEndpoint `json:"from"`
	To        ConvertEndpoint `json:"to"`
	EpochDay  int64           `json:"epoch_day"`
	NanoOfDay int64           `json:"nano_of_day"`
}

// NewConvertCommand creates the convert command.
func NewConvertCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ConvertOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "convert <document>",
		Short: "Resolve a document and convert it to another chronology",
		Long: `Resolve a request document and express the result in another chronology.

Conversion goes through the shared epoch day: the instant is unchanged,
only the calendar reading of it differs. The time of day carries over
untouched.

Exit codes:
  0 - Converted
  1 - Resolution or conversion failed, or document invalid
  2 - Command error (file not found, unknown target chronology)

Examples:
  almanac convert request.cue --to Coptic
  almanac convert request.yaml --to ThaiBuddhist --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Target, "to", "", "target chronology name (required)")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}

func runConvert(opts *ConvertOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	target, err := chrono.ChronologyByName(opts.Target)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown target chronology %q", opts.Target))
	}

	compiled, err := compileDocument(path, formatter)
	if err != nil {
		return err
	}

	dt, _, rerr := compiled.Resolve()
	if rerr != nil {
		return outputResolveError(formatter, rerr)
	}

	converted, cerr := dt.ConvertTo(target)
	if cerr != nil {
		return outputResolveError(formatter, cerr)
	}

	result := ConvertResult{
		From: ConvertEndpoint{
			Chronology: dt.Chronology().Name(),
			Canonical:  dt.CanonicalString(),
		},
		To: ConvertEndpoint{
			Chronology: converted.Chronology().Name(),
			Canonical:  converted.CanonicalString(),
			Fields:     resolvedFields(converted),
		},
		EpochDay:  converted.EpochDay(),
		NanoOfDay: converted.Time().NanoOfDay(),
	}

	if opts.Format == "json" {
		return outputConvertJSON(cmd, result)
	}
	return outputConvertText(cmd, result, opts.Verbose)
}

// outputConvertJSON outputs the conversion result as JSON.
func outputConvertJSON(cmd *cobra.Command, result ConvertResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputConvertText outputs the conversion result as text.
func outputConvertText(cmd *cobra.Command, result ConvertResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "✓ %s → %s\n", result.From.Canonical, result.To.Canonical)
	fmt.Fprintf(w, "  epoch day:   %d\n", result.EpochDay)
	fmt.Fprintf(w, "  nano of day: %d\n", result.NanoOfDay)

	if verbose {
		fmt.Fprintln(w)
		for _, f := range result.To.Fields {
			fmt.Fprintf(w, "  %-22s %d\n", f.Rule, f.Value)
		}
	}

	return nil
}
