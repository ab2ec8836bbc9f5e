package journal

import (
	"context"
	"fmt"
)

// WriteSession atomically writes a session and its field rows in a single
// transaction. The token and seq are assigned here: a fresh token from gen
// and the next logical clock value.
//
// Writes are idempotent on the content-addressed ID. If the session
// already exists, nothing is written (the original token and seq stand)
// and the stored row is returned with inserted=false.
func (j *Journal) WriteSession(ctx context.Context, s Session, fields []FieldEntry, gen TokenGenerator) (Session, bool, error) {
	if s.ID == "" {
		return Session{}, false, fmt.Errorf("write session: empty session id")
	}

	tx, err := j.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, false, fmt.Errorf("write session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	// Assign seq inside the transaction so the clock never goes backwards.
	var maxSeq int64
	if err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(seq), 0) FROM sessions
	`).Scan(&maxSeq); err != nil {
		return Session{}, false, fmt.Errorf("write session: next seq: %w", err)
	}
	s.Seq = maxSeq + 1
	s.Token = gen.Generate()

	result, err := tx.ExecContext(ctx, `
		INSERT INTO sessions
		(id, token, seq, chronology, strictness, epoch_day, nano_of_day, canonical, engine_version, note)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		s.ID,
		s.Token,
		s.Seq,
		s.Chronology,
		s.Strictness,
		s.EpochDay,
		s.NanoOfDay,
		s.Canonical,
		s.EngineVersion,
		s.Note,
	)
	if err != nil {
		return Session{}, false, fmt.Errorf("write session: insert: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return Session{}, false, fmt.Errorf("write session: rows affected: %w", err)
	}

	if rowsAffected == 0 {
		// Conflict - session already journaled, return the stored row with
		// its original token and seq.
		stored, err := scanSessionRow(tx.QueryRowContext(ctx, sessionColumns+`
			FROM sessions WHERE id = ?
		`, s.ID))
		if err != nil {
			return Session{}, false, fmt.Errorf("write session: select existing: %w", err)
		}
		if err := tx.Commit(); err != nil {
			return Session{}, false, fmt.Errorf("write session: commit (existing): %w", err)
		}
		return stored, false, nil
	}

	for i, f := range fields {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO session_fields
			(session_id, position, ordinal, rule_name, value)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(session_id, position) DO NOTHING
		`,
			s.ID,
			i,
			f.Ordinal,
			f.Rule,
			f.Value,
		)
		if err != nil {
			return Session{}, false, fmt.Errorf("write session: insert field %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Session{}, false, fmt.Errorf("write session: commit: %w", err)
	}

	return s, true, nil
}
