package journal

import (
	"context"
	"fmt"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

// Mismatch is one disagreement between a stored outcome and its replay.
type Mismatch struct {
	Field      string `json:"field"`
	Stored     string `json:"stored"`
	Recomputed string `json:"recomputed"`
}

// ReplayResult reports whether re-resolving a session's stored inputs
// reproduces its stored outcome.
type ReplayResult struct {
	SessionID           string     `json:"session_id"`
	Token               string     `json:"token"`
	Chronology          string     `json:"chronology"`
	Strictness          string     `json:"strictness"`
	StoredEngineVersion string     `json:"stored_engine_version"`
	Canonical           string     `json:"canonical,omitempty"`
	Match               bool       `json:"match"`
	Mismatches          []Mismatch `json:"mismatches,omitempty"`
}

// ReplaySession re-resolves the stored inputs of one session and compares
// the outcome field by field: epoch day, nano of day, and the canonical
// form byte-for-byte.
//
// Disagreements are reported in the result, not as errors; an error return
// means the session could not be read at all.
func (j *Journal) ReplaySession(ctx context.Context, id string) (ReplayResult, error) {
	s, err := j.ReadSession(ctx, id)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay session: %w", err)
	}
	return j.replay(ctx, s)
}

// ReplayByToken is ReplaySession keyed by session token.
func (j *Journal) ReplayByToken(ctx context.Context, token string) (ReplayResult, error) {
	s, err := j.ReadSessionByToken(ctx, token)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay session: %w", err)
	}
	return j.replay(ctx, s)
}

// ReplayAll replays every journaled session in deterministic order.
func (j *Journal) ReplayAll(ctx context.Context) ([]ReplayResult, error) {
	sessions, err := j.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("replay all: %w", err)
	}

	results := make([]ReplayResult, 0, len(sessions))
	for _, s := range sessions {
		r, err := j.replay(ctx, s)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (j *Journal) replay(ctx context.Context, s Session) (ReplayResult, error) {
	result := ReplayResult{
		SessionID:           s.ID,
		Token:               s.Token,
		Chronology:          s.Chronology,
		Strictness:          s.Strictness,
		StoredEngineVersion: s.EngineVersion,
	}

	fields, err := j.ReadFields(ctx, s.ID)
	if err != nil {
		return ReplayResult{}, fmt.Errorf("replay session: %w", err)
	}

	dt, replayErr := resolveStored(s, fields)
	if replayErr != nil {
		// The stored inputs no longer resolve; that is drift, not a
		// journal read failure.
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:      "resolution",
			Stored:     s.Canonical,
			Recomputed: replayErr.Error(),
		})
		return result, nil
	}

	result.Canonical = dt.CanonicalString()

	if got := dt.EpochDay(); got != s.EpochDay {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:      "epoch_day",
			Stored:     fmt.Sprintf("%d", s.EpochDay),
			Recomputed: fmt.Sprintf("%d", got),
		})
	}
	if got := dt.Time().NanoOfDay(); got != s.NanoOfDay {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:      "nano_of_day",
			Stored:     fmt.Sprintf("%d", s.NanoOfDay),
			Recomputed: fmt.Sprintf("%d", got),
		})
	}
	if result.Canonical != s.Canonical {
		result.Mismatches = append(result.Mismatches, Mismatch{
			Field:      "canonical",
			Stored:     s.Canonical,
			Recomputed: result.Canonical,
		})
	}

	result.Match = len(result.Mismatches) == 0
	return result, nil
}

// resolveStored rebuilds a resolution from journaled inputs. Rules are
// restored from their ordinals, the only identity that survives storage.
func resolveStored(s Session, fields []FieldEntry) (chrono.DateTime, error) {
	c, err := chrono.ChronologyByName(s.Chronology)
	if err != nil {
		return chrono.DateTime{}, err
	}
	mode, ok := resolve.StrictnessByName(s.Strictness)
	if !ok {
		return chrono.DateTime{}, fmt.Errorf("unknown strictness %q", s.Strictness)
	}

	b := resolve.NewBuilder(c)
	for _, f := range fields {
		rule, err := c.RuleByOrdinal(f.Ordinal)
		if err != nil {
			return chrono.DateTime{}, err
		}
		if err := b.AddFieldValue(rule, f.Value); err != nil {
			return chrono.DateTime{}, err
		}
	}
	return b.Resolve(mode)
}
