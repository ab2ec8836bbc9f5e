package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/journal"
	"github.com/almanac-go/almanac/internal/request"
)

// ResolveOptions holds flags for the resolve command.
type ResolveOptions struct {
	*RootOptions
	Database string // optional - journal the resolved session

	// Tokens allows overriding the session token generator (for testing).
	// If nil, defaults to UUIDv7Generator.
	Tokens journal.TokenGenerator
}

// ResolvedField is one field of the resolved date-time, in ordinal order.
type ResolvedField struct {
	Rule  string `json:"rule"`
	Value int64  `json:"value"`
}

// JournalReceipt reports the journal write for a resolved session.
type JournalReceipt struct {
	SessionID string `json:"session_id"`
	Token     string `json:"token"`
	Seq       int64  `json:"seq"`
	Inserted  bool   `json:"inserted"`
}

// ResolveResult holds the outcome of resolving one request document.
type ResolveResult struct {
	Chronology string          `json:"chronology"`
	Strictness string          `json:"strictness"`
	Canonical  string          `json:"canonical"`
	EpochDay   int64           `json:"epoch_day"`
	NanoOfDay  int64           `json:"nano_of_day"`
	Fields     []ResolvedField `json:"fields"`
	Journal    *JournalReceipt `json:"journal,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ResolveOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "resolve <document>",
		Short: "Resolve a request document to a date-time",
		Long: `Resolve a request document's field assembly into a concrete date-time.

The document names a chronology, a strictness, and a list of (rule, value)
pairs. Resolution derives the missing fields, checks consistency, and
reports the canonical date-time with its epoch day and nano-of-day.

With --db, the resolved session is journaled: the supplied fields and the
outcome are written to SQLite and a session token is issued. Re-resolving
identical inputs returns the original token instead of a new row.

Exit codes:
  0 - Resolved
  1 - Resolution failed (out of range, conflict, incomplete) or document invalid
  2 - Command error (file not found, database unreadable)

Examples:
  almanac resolve request.cue
  almanac resolve request.yaml --db ./almanac.db
  almanac resolve request.cue --format json --verbose`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "journal the session to this SQLite database")

	return cmd
}

func runResolve(opts *ResolveOptions, path string, cmd *cobra.Command) error {
	// Configure logging based on verbose flag
	logLevel := slog.LevelInfo
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))

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

	dt, _, rerr := compiled.Resolve()
	if rerr != nil {
		return outputResolveError(formatter, rerr)
	}

	result := ResolveResult{
		Chronology: compiled.Chronology.Name(),
		Strictness: compiled.Strictness.String(),
		Canonical:  dt.CanonicalString(),
		EpochDay:   dt.EpochDay(),
		NanoOfDay:  dt.Time().NanoOfDay(),
		Fields:     resolvedFields(dt),
	}

	if opts.Database != "" {
		receipt, err := journalSession(opts, compiled, dt)
		if err != nil {
			return err
		}
		result.Journal = receipt
	}

	if opts.Format == "json" {
		return outputResolveJSON(cmd, result)
	}
	return outputResolveText(cmd, result, opts.Verbose)
}

// resolvedFields reads every rule of the chronology back out of the
// resolved value, in ordinal order.
func resolvedFields(dt chrono.DateTime) []ResolvedField {
	rules := dt.Chronology().Rules()
	fields := make([]ResolvedField, 0, len(rules))
	for _, rule := range rules {
		v, err := dt.Get(rule)
		if err != nil {
			continue
		}
		fields = append(fields, ResolvedField{Rule: rule.Name(), Value: v})
	}
	return fields
}

// journalSession writes the resolved session to the journal database.
func journalSession(opts *ResolveOptions, compiled *request.Compiled, dt chrono.DateTime) (*JournalReceipt, error) {
	ctx := context.Background()

	j, err := journal.Open(opts.Database)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer j.Close()

	entries := make([]journal.FieldEntry, len(compiled.Fields))
	for i, f := range compiled.Fields {
		entries[i] = journal.FieldEntryFor(f.Rule, f.Value)
	}

	s, err := journal.BuildSession(dt, compiled.Strictness, entries, compiled.Note)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to build session record", err)
	}

	gen := opts.Tokens
	if gen == nil {
		gen = journal.UUIDv7Generator{}
	}

	stored, inserted, err := j.WriteSession(ctx, s, entries, gen)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to journal session", err)
	}

	slog.Info("session recorded",
		"token", stored.Token,
		"chronology", stored.Chronology,
		"inserted", inserted)

	return &JournalReceipt{
		SessionID: stored.ID,
		Token:     stored.Token,
		Seq:       stored.Seq,
		Inserted:  inserted,
	}, nil
}

// chronoErrorCode extracts the stable error code from a resolution error.
func chronoErrorCode(err error) string {
	var cerr *chrono.Error
	if errors.As(err, &cerr) {
		return string(cerr.Code)
	}
	return "UNKNOWN"
}

// outputResolveError reports a resolution failure with its error code.
func outputResolveError(formatter *OutputFormatter, rerr error) error {
	code := chronoErrorCode(rerr)

	if formatter.Format == "json" {
		_ = formatter.Error(code, rerr.Error(), nil)
		return NewExitError(ExitFailure, rerr.Error())
	}

	fmt.Fprintln(formatter.Writer, "✗ Resolution failed")
	fmt.Fprintf(formatter.Writer, "  %s\n", rerr.Error())
	return NewExitError(ExitFailure, rerr.Error())
}

// outputResolveJSON outputs the resolve result as JSON.
func outputResolveJSON(cmd *cobra.Command, result ResolveResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputResolveText outputs the resolve result as text.
func outputResolveText(cmd *cobra.Command, result ResolveResult, verbose bool) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "✓ Resolved %s\n", result.Canonical)
	fmt.Fprintf(w, "  chronology:  %s (%s)\n", result.Chronology, result.Strictness)
	fmt.Fprintf(w, "  epoch day:   %d\n", result.EpochDay)
	fmt.Fprintf(w, "  nano of day: %d\n", result.NanoOfDay)

	if verbose {
		fmt.Fprintln(w)
		for _, f := range result.Fields {
			fmt.Fprintf(w, "  %-22s %d\n", f.Rule, f.Value)
		}
	}

	if result.Journal != nil {
		fmt.Fprintln(w)
		if result.Journal.Inserted {
			fmt.Fprintf(w, "  journaled: token=%s seq=%d\n", result.Journal.Token, result.Journal.Seq)
		} else {
			fmt.Fprintf(w, "  already journaled: token=%s seq=%d\n", result.Journal.Token, result.Journal.Seq)
		}
	}

	return nil
}
