package journal

import (
	"path/filepath"
	"testing"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

// createTestJournal creates a journal backed by a temp file.
func createTestJournal(t *testing.T) *Journal {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	j, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { j.Close() })
	return j
}

// stubTokens returns predetermined tokens in order and panics when
// exhausted, so a test that writes more sessions than expected fails fast.
type stubTokens struct {
	tokens []string
	idx    int
}

func newStubTokens(tokens ...string) *stubTokens {
	return &stubTokens{tokens: tokens}
}

func (g *stubTokens) Generate() string {
	if g.idx >= len(g.tokens) {
		panic("stubTokens: all tokens exhausted")
	}
	token := g.tokens[g.idx]
	g.idx++
	return token
}

// resolveTestSession resolves a simple request and returns the session
// record plus field rows ready for WriteSession.
func resolveTestSession(t *testing.T, c *chrono.Chronology, pairs [][2]int64, note string) (Session, []FieldEntry) {
	t.Helper()

	b := resolve.NewBuilder(c)
	var fields []FieldEntry
	for _, p := range pairs {
		rule, err := c.RuleByOrdinal(int(p[0]))
		if err != nil {
			t.Fatalf("RuleByOrdinal(%d) failed: %v", p[0], err)
		}
		if err := b.AddFieldValue(rule, p[1]); err != nil {
			t.Fatalf("AddFieldValue(%s, %d) failed: %v", rule.Name(), p[1], err)
		}
		fields = append(fields, FieldEntryFor(rule, p[1]))
	}

	dt, err := b.Resolve(resolve.Strict)
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}

	s, err := BuildSession(dt, resolve.Strict, fields, note)
	if err != nil {
		t.Fatalf("BuildSession() failed: %v", err)
	}
	return s, fields
}

// isoLeapDayPairs is a reusable request: 2024-02-29 by ordinal.
// Ordinals: 0 day-of-month, 2 month-of-year, 4 year.
func isoLeapDayPairs() [][2]int64 {
	return [][2]int64{
		{4, 2024},
		{2, 2},
		{0, 29},
	}
}
