package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/almanac-go/almanac/internal/chrono"
)

// RuleInfo describes one field rule of a chronology.
type RuleInfo struct {
	Ordinal   int    `json:"ordinal"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`
	RangeUnit string `json:"range_unit"`
	Min       int64  `json:"min"`
	Max       int64  `json:"max"`
	Range     string `json:"range"`
}

// FieldsResult holds the rule table of one chronology.
type FieldsResult struct {
	Chronology    string     `json:"chronology"`
	MonthsPerYear int64      `json:"months_per_year"`
	MinEpochDay   int64      `json:"min_epoch_day"`
	MaxEpochDay   int64      `json:"max_epoch_day"`
	Rules         []RuleInfo `json:"rules"`
}

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields [chronology]",
		Short: "List the field rules of a chronology",
		Long: `List the field rule table of a chronology: each rule's ordinal, name,
unit, and value range. With no argument, lists the chronology names.

Ranges render as "min-max", or "min-smallestMax/max" when the maximum
varies by context (day-of-month is 1-28/31 in ISO: at least 28, up to 31
depending on the month).

Exit codes:
  0 - Listed
  2 - Command error (unknown chronology)

Examples:
  almanac fields
  almanac fields Coptic
  almanac fields Hijrah --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return runFieldsIndex(rootOpts, cmd)
			}
			return runFields(rootOpts, args[0], cmd)
		},
	}

	return cmd
}

// runFieldsIndex lists the registered chronologies.
func runFieldsIndex(opts *RootOptions, cmd *cobra.Command) error {
	names := make([]string, 0)
	for _, c := range chrono.Chronologies() {
		names = append(names, c.Name())
	}

	if opts.Format == "json" {
		formatter := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout()}
		return formatter.Success(map[string][]string{"chronologies": names})
	}

	w := cmd.OutOrStdout()
	fmt.Fprintln(w, "Chronologies:")
	for _, name := range names {
		fmt.Fprintf(w, "  %s\n", name)
	}
	return nil
}

func runFields(opts *RootOptions, name string, cmd *cobra.Command) error {
	c, err := chrono.ChronologyByName(name)
	if err != nil {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown chronology %q", name))
	}

	rules := c.Rules()
	result := FieldsResult{
		Chronology:    c.Name(),
		MonthsPerYear: c.MonthsPerYear(),
		MinEpochDay:   c.MinEpochDay(),
		MaxEpochDay:   c.MaxEpochDay(),
		Rules:         make([]RuleInfo, 0, len(rules)),
	}
	for _, rule := range rules {
		result.Rules = append(result.Rules, RuleInfo{
			Ordinal:   rule.Ordinal(),
			Name:      rule.Name(),
			Unit:      rule.Unit().String(),
			RangeUnit: rule.RangeUnit().String(),
			Min:       rule.Range().Min(),
			Max:       rule.Range().Max(),
			Range:     rule.Range().String(),
		})
	}

	if opts.Format == "json" {
		return outputFieldsJSON(cmd, result)
	}
	return outputFieldsText(cmd, result)
}

// outputFieldsJSON outputs the rule table as JSON.
func outputFieldsJSON(cmd *cobra.Command, result FieldsResult) error {
	response := CLIResponse{
		Status: "ok",
		Data:   result,
	}

	encoder := json.NewEncoder(cmd.OutOrStdout())
	encoder.SetIndent("", "  ")
	return encoder.Encode(response)
}

// outputFieldsText outputs the rule table as text.
func outputFieldsText(cmd *cobra.Command, result FieldsResult) error {
	w := cmd.OutOrStdout()

	fmt.Fprintf(w, "%s: %d rules, months/year %d, epoch days %d..%d\n",
		result.Chronology, len(result.Rules), result.MonthsPerYear,
		result.MinEpochDay, result.MaxEpochDay)
	fmt.Fprintln(w)

	fmt.Fprintf(w, "  %-3s %-22s %-8s %-8s %s\n", "ord", "rule", "unit", "per", "range")
	for _, r := range result.Rules {
		fmt.Fprintf(w, "  %-3d %-22s %-8s %-8s %s\n", r.Ordinal, r.Name, r.Unit, r.RangeUnit, r.Range)
	}

	return nil
}
