package journal

import (
	"fmt"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

// Session is one journaled resolution: the inputs that were supplied and
// the outcome they resolved to.
type Session struct {
	// ID is the content-addressed identity over the session inputs.
	ID string

	// Token is the UUIDv7 issued when the session was first written.
	Token string

	// Seq is the logical clock position of the first write.
	Seq int64

	// Chronology and Strictness name the resolution parameters.
	Chronology string
	Strictness string

	// EpochDay and NanoOfDay are the resolved instant.
	EpochDay  int64
	NanoOfDay int64

	// Canonical is the resolved value's canonical rendering.
	Canonical string

	// EngineVersion records the engine that produced the outcome.
	EngineVersion string

	// Note is free-form caller text, empty by default.
	Note string
}

// FieldEntry is one supplied (rule, value) pair. Position within a session
// is the slice index; the ordinal is the durable rule identity and the
// name is denormalized for inspection.
type FieldEntry struct {
	Ordinal int
	Rule    string
	Value   int64
}

// BuildSession assembles an unwritten Session record from a resolution
// outcome. Token and Seq are zero; WriteSession assigns both.
func BuildSession(dt chrono.DateTime, mode resolve.Strictness, fields []FieldEntry, note string) (Session, error) {
	name := dt.Chronology().Name()
	id, err := SessionID(name, mode.String(), fields)
	if err != nil {
		return Session{}, fmt.Errorf("build session: %w", err)
	}
	return Session{
		ID:            id,
		Chronology:    name,
		Strictness:    mode.String(),
		EpochDay:      dt.EpochDay(),
		NanoOfDay:     dt.Time().NanoOfDay(),
		Canonical:     dt.CanonicalString(),
		EngineVersion: EngineVersion,
		Note:          note,
	}, nil
}

// FieldEntryFor builds a FieldEntry from a rule and value.
func FieldEntryFor(rule *chrono.FieldRule, value int64) FieldEntry {
	return FieldEntry{
		Ordinal: rule.Ordinal(),
		Rule:    rule.Name(),
		Value:   value,
	}
}
