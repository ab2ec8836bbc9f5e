package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/journal"
	"github.com/almanac-go/almanac/internal/resolve"
	"github.com/almanac-go/almanac/internal/sessionquery"
)

// ListOptions holds flags for the list command.
type ListOptions struct {
	*RootOptions
	Database    string
	Chronology  string
	Strictness  string
	Token       string
	Rule        string
	MinSeq      int64
	MaxSeq      int64
	MinEpochDay int64
	MaxEpochDay int64
	Limit       int64
}

// SessionInfo is one listed session in JSON output.
type SessionInfo struct {
	ID            string `json:"id"`
	Token         string `json:"token"`
	Seq           int64  `json:"seq"`
	Chronology    string `json:"chronology"`
	Strictness    string `json:"strictness"`
	EpochDay      int64  `json:"epoch_day"`
	NanoOfDay     int64  `json:"nano_of_day"`
	Canonical     string `json:"canonical"`
	EngineVersion string `json:"engine_version"`
	Note          string `json:"note,omitempty"`
}

// ListSummary holds the overall list result.
type ListSummary struct {
	Sessions []SessionInfo `json:"sessions"`
	Total    int           `json:"total"`
}

// NewListCommand creates the list command.
func NewListCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ListOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List journaled sessions with optional filters",
		Long: `List journaled resolution sessions in their canonical order: logical
clock first, then session id with bytewise collation.

Filters combine with AND. All matching happens inside the database with
parameterized queries, so output order and content are deterministic for
a given journal. Chronology, strictness, and rule names are validated
before the database is touched; rule names match the stored spelling
("DayOfMonth" for ISO, "CopticDayOfYear" for Coptic, and so on).

Exit codes:
  0 - Listing succeeded (zero matches is still success)
  2 - Command error (database not found, invalid filter)

Examples:
  almanac list --db ./almanac.db
  almanac list --db ./almanac.db --chronology coptic --limit 10
  almanac list --db ./almanac.db --rule DayOfYear --strictness strict
  almanac list --db ./almanac.db --min-epoch-day 19723 --max-epoch-day 20088 --format json`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runList(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Chronology, "chronology", "", "keep sessions of one chronology")
	cmd.Flags().StringVar(&opts.Strictness, "strictness", "", "keep sessions resolved with one strictness (strict|lenient)")
	cmd.Flags().StringVar(&opts.Token, "token", "", "keep the session with this token")
	cmd.Flags().StringVar(&opts.Rule, "rule", "", "keep sessions that supplied this field rule")
	cmd.Flags().Int64Var(&opts.MinSeq, "min-seq", 0, "keep sessions with seq at or above this value")
	cmd.Flags().Int64Var(&opts.MaxSeq, "max-seq", 0, "keep sessions with seq at or below this value")
	cmd.Flags().Int64Var(&opts.MinEpochDay, "min-epoch-day", 0, "keep sessions resolved to this epoch day or later")
	cmd.Flags().Int64Var(&opts.MaxEpochDay, "max-epoch-day", 0, "keep sessions resolved to this epoch day or earlier")
	cmd.Flags().Int64Var(&opts.Limit, "limit", 0, "cap the number of sessions returned")

	return cmd
}

func runList(opts *ListOptions, cmd *cobra.Command) error {
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

	filter, err := buildListFilter(opts, cmd)
	if err != nil {
		return err
	}

	if result := sessionquery.Validate(filter); !result.IndexBacked {
		for _, warning := range result.Warnings {
			slog.Debug("filter leaves the index-backed fragment", "warning", warning)
		}
	}

	// Listing a database that does not exist on disk is a command error,
	// not an empty journal; Open would otherwise create it.
	if _, err := os.Stat(opts.Database); os.IsNotExist(err) {
		return NewExitError(ExitCommandError, fmt.Sprintf("database not found: %s", opts.Database))
	}

	j, err := journal.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer j.Close()

	sessions, err := j.QuerySessions(ctx, filter, opts.Limit)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to query sessions", err)
	}

	summary := ListSummary{
		Sessions: make([]SessionInfo, len(sessions)),
		Total:    len(sessions),
	}
	for i, s := range sessions {
		summary.Sessions[i] = SessionInfo{
			ID:            s.ID,
			Token:         s.Token,
			Seq:           s.Seq,
			Chronology:    s.Chronology,
			Strictness:    s.Strictness,
			EpochDay:      s.EpochDay,
			NanoOfDay:     s.NanoOfDay,
			Canonical:     s.Canonical,
			EngineVersion: s.EngineVersion,
			Note:          s.Note,
		}
	}

	slog.Debug("list finished", "sessions", summary.Total)

	if opts.Format == "json" {
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(CLIResponse{Status: "ok", Data: summary})
	}
	return outputListText(cmd, summary, opts.Verbose)
}

// buildListFilter assembles the session filter from flags. Returns nil
// when no filter flag was given, which matches every session.
func buildListFilter(opts *ListOptions, cmd *cobra.Command) (sessionquery.Predicate, error) {
	var preds []sessionquery.Predicate

	if opts.Chronology != "" {
		c, err := chrono.ChronologyByName(opts.Chronology)
		if err != nil {
			return nil, WrapExitError(ExitCommandError, "invalid --chronology", err)
		}
		preds = append(preds, sessionquery.Equals{Column: "chronology", Value: c.Name()})
	}

	if opts.Strictness != "" {
		mode, ok := resolve.StrictnessByName(opts.Strictness)
		if !ok {
			return nil, NewExitError(ExitCommandError,
				fmt.Sprintf("invalid --strictness %q: must be \"strict\" or \"lenient\"", opts.Strictness))
		}
		preds = append(preds, sessionquery.Equals{Column: "strictness", Value: mode.String()})
	}

	if opts.Token != "" {
		preds = append(preds, sessionquery.Equals{Column: "token", Value: opts.Token})
	}

	if opts.Rule != "" {
		name, ok := canonicalRuleName(opts.Rule)
		if !ok {
			return nil, NewExitError(ExitCommandError, fmt.Sprintf("unknown rule %q", opts.Rule))
		}
		preds = append(preds, sessionquery.SuppliedRule{Rule: name})
	}

	if r := rangeFromFlags(cmd, "seq", "min-seq", "max-seq", opts.MinSeq, opts.MaxSeq); r != nil {
		preds = append(preds, *r)
	}
	if r := rangeFromFlags(cmd, "epoch_day", "min-epoch-day", "max-epoch-day", opts.MinEpochDay, opts.MaxEpochDay); r != nil {
		preds = append(preds, *r)
	}

	switch len(preds) {
	case 0:
		return nil, nil
	case 1:
		return preds[0], nil
	default:
		return sessionquery.And{Predicates: preds}, nil
	}
}

// rangeFromFlags builds a Range over column when either bound flag was
// given. Zero is a legal bound, so presence comes from the flag set, not
// the value.
func rangeFromFlags(cmd *cobra.Command, column, minFlag, maxFlag string, minValue, maxValue int64) *sessionquery.Range {
	r := sessionquery.Range{Column: column}
	if cmd.Flags().Changed(minFlag) {
		r.Min = sessionquery.Bound(minValue)
	}
	if cmd.Flags().Changed(maxFlag) {
		r.Max = sessionquery.Bound(maxValue)
	}
	if r.Min == nil && r.Max == nil {
		return nil
	}
	return &r
}

// canonicalRuleName maps a case-insensitive rule spelling to the exact
// name the journal stores. Rule names are unique process-wide, so the
// first match is the only match.
func canonicalRuleName(name string) (string, bool) {
	for _, c := range chrono.Chronologies() {
		for _, rule := range c.Rules() {
			if strings.EqualFold(rule.Name(), name) {
				return rule.Name(), true
			}
		}
	}
	return "", false
}

// outputListText outputs the list summary as text.
func outputListText(cmd *cobra.Command, summary ListSummary, verbose bool) error {
	w := cmd.OutOrStdout()

	if summary.Total == 0 {
		fmt.Fprintln(w, "No sessions matched.")
		return nil
	}

	fmt.Fprintf(w, "Sessions: %d\n", summary.Total)
	fmt.Fprintln(w)

	for _, s := range summary.Sessions {
		fmt.Fprintf(w, "seq %d  %s  %s (%s, %s)\n", s.Seq, s.Token, s.Canonical, s.Chronology, s.Strictness)
		if verbose {
			fmt.Fprintf(w, "  id: %s\n", s.ID)
			fmt.Fprintf(w, "  epoch day %d, nano of day %d, engine %s\n", s.EpochDay, s.NanoOfDay, s.EngineVersion)
			if s.Note != "" {
				fmt.Fprintf(w, "  note: %s\n", s.Note)
			}
		}
	}
	return nil
}
