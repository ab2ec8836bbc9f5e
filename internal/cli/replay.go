package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/almanac-go/almanac/internal/journal"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
	Token    string // optional - specific session only
}

// ReplaySummary holds the overall replay result.
type ReplaySummary struct {
	Sessions []journal.ReplayResult `json:"sessions"`
	Total    int                    `json:"total"`
	AllMatch bool                   `json:"all_match"`
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Replay journaled sessions and verify outcomes",
		Long: `Re-resolve every journaled session from its stored inputs and verify
the outcome against the stored one.

Each session's fields are restored by rule ordinal and resolved again;
epoch day, nano-of-day, and the canonical string must match the stored
values byte for byte. Disagreements are reported per field.

Exit codes:
  0 - All sessions replayed identically
  1 - One or more sessions disagreed with their stored outcome
  2 - Command error (database not found, session not found)

Examples:
  almanac replay --db ./almanac.db
  almanac replay --db ./almanac.db --token 018f32a1-7c7e-7c30-bb1d-3f1f0c1e9d42
  almanac replay --db ./almanac.db --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Token, "token", "", "replay a single session by token")

	return cmd
}

func runReplay(opts *ReplayOptions, cmd *cobra.Command) error {
	ctx := context.Background()

	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

	// A replay target that does not exist on disk is a command error, not
	// an empty journal; Open would otherwise create it.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database))
	}

	j, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer j.Close()

	var results []journal.ReplayResult
	if opts.Token != "" {
		one, err := j.ReplayByToken(ctx, opts.Token)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to replay session %s", opts.Token), err)
		}
		results = []journal.ReplayResult{one}
	} else {
		results, err = j.ReplayAll(ctx)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to replay sessions", err)
		}
	}

	if len(results) == 0 {
		if opts.Format == "json" {
			return outputReplayJSON(cmd, ReplaySummary{
				Sessions: []journal.ReplayResult{},
				Total:    0,
				AllMatch: true,
			})
		}
		fmt.Fprintln(cmd.OutOrStdout(), "No sessions found in database.")
		return nil
	}

	summary := ReplaySummary{
		Sessions: results,
		Total:    len(results),
		AllMatch: true,
	}
	for _, r := range results {
		if !r.Match {
			summary.AllMatch = false
		}
	}

	slog.Debug("replay finished", "sessions", summary.Total, "all_match", summary.AllMatch)

	if opts.Format == "json" {
		return outputReplayJSON(cmd, summary)
	}
	return outputReplayText(cmd, summary, opts.Verbose)
}

// outputReplayJSON outputs the replay summary as JSON.
func outputReplayJSON(cmd *cobra.Command, summary ReplaySummary) error {
	response := CLIResponse{
		Status: "ok",
		Data:   summary,
	}

	if !summary.AllMatch {
		response.Status = "error"
		response.Error = &CLIError{
			Code:    "REPLAY_MISMATCH",
			Message: "replay verification failed",
		}
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(response); err != nil {
		return err
	}

	if !summary.AllMatch {
		// Replay mismatch = exit code 1
		return NewExitError(ExitFailure, "replay verification failed")
	}
	return nil
}

// outputReplayText outputs the replay summary as text.
func outputReplayText(cmd *cobra.Command, summary ReplaySummary, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "Replay Summary: %d session(s)\n", summary.Total)
	fmt.Fprintln(w)

	for _, s := range summary.Sessions {
		status := "✓"
		if !s.Match {
			status = "✗"
		}

		fmt.Fprintf(w, "%s Session: %s\n", status, s.Token)

		if verbose {
			fmt.Fprintf(w, "  Chronology: %s (%s)\n", s.Chronology, s.Strictness)
			fmt.Fprintf(w, "  Canonical: %s\n", s.Canonical)
			fmt.Fprintf(w, "  Engine: %s\n", s.StoredEngineVersion)
		} else {
			fmt.Fprintf(w, "  %s (%s, %s)\n", s.Canonical, s.Chronology, s.Strictness)
		}

		for _, m := range s.Mismatches {
			fmt.Fprintf(w, "  Mismatch %s: stored %q, recomputed %q\n", m.Field, m.Stored, m.Recomputed)
		}
		fmt.Fprintln(w)
	}

	if summary.AllMatch {
		fmt.Fprintln(w, "✓ All sessions replayed byte-identical")
		return nil
	}

	fmt.Fprintln(w, "✗ Replay verification failed")
	// Replay mismatch = exit code 1
	return NewExitError(ExitFailure, "replay verification failed")
}
