package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almanac-go/almanac/internal/resolve"
)

// TraceStats summarizes a derivation trace.
type TraceStats struct {
	TotalSteps int `json:"total_steps"`
	Supplied   int `json:"supplied"`
	Derived    int `json:"derived"`
	Defaulted  int `json:"defaulted"`
}

// TraceResult holds the trace output for one request document.
type TraceResult struct {
	Trace *resolve.Trace `json:"trace"`
	Stats TraceStats     `json:"stats"`
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trace <document>",
		Short: "Show the derivation trace for a request document",
		Long: `Resolve a request document and show every step of the derivation.

The trace lists each supplied field in the order it was given, each value
derived from another field (with its source and fixed-point round), and
each finer time field defaulted to zero. Identical documents always
produce identical traces.

A failed resolution still prints the steps taken up to the failure.

Exit codes:
  0 - Resolved
  1 - Resolution failed or document invalid (trace still shown when available)
  2 - Command error (file not found, unsupported extension)

Examples:
  almanac trace request.cue
  almanac trace request.yaml --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTrace(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

func runTrace(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	compiled, err := compileDocument(path, formatter)
	if err != nil {
		return err
	}

	_, tr, rerr := compiled.Resolve()
	if tr == nil {
		// The builder rejected a field before any derivation ran.
		return outputResolveError(formatter, rerr)
	}

	result := TraceResult{Trace: tr, Stats: traceStats(tr)}

	if opts.Format == "json" {
		return outputTraceJSON(cmd, result, rerr)
	}
	return outputTraceText(cmd, result, rerr)
}

// traceStats counts trace steps by kind.
func traceStats(tr *resolve.Trace) TraceStats {
	stats := TraceStats{TotalSteps: len(tr.Steps)}
	for _, s := range tr.Steps {
		switch s.Kind {
		case resolve.StepSupplied:
			stats.Supplied++
		case resolve.StepDerived:
			stats.Derived++
		case resolve.StepDefaulted:
			stats.Defaulted++
		}
	}
	return stats
}

// outputTraceJSON outputs the trace as JSON.
func outputTraceJSON(cmd *cobra.Command, result TraceResult, rerr error) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	if rerr != nil {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    chronoErrorCode(rerr),
			Message: rerr.Error(),
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if rerr != nil {
		return NewExitError(ExitFailure, rerr.Error())
	}
	return nil
}

// outputTraceText outputs the trace as text.
func outputTraceText(cmd *cobra.Command, result TraceResult, rerr error) error {
	fmt.Fprint(cmd.OutOrStdout(), result.Trace.Render())

	if rerr != nil {
		return NewExitError(ExitFailure, rerr.Error())
	}
	return nil
}
