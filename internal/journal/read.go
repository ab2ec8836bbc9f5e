package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// sessionColumnList is the canonical scan order. Every reader, including
// QuerySessions, projects exactly these columns in this order.
var sessionColumnList = []string{
	"id", "token", "seq", "chronology", "strictness",
	"epoch_day", "nano_of_day", "canonical", "engine_version", "note",
}

// sessionColumns is the shared SELECT prefix built from the scan order.
var sessionColumns = "\n\tSELECT " + strings.Join(sessionColumnList, ", ")

// ReadSession retrieves a single session by ID.
// Returns sql.ErrNoRows if not found.
func (j *Journal) ReadSession(ctx context.Context, id string) (Session, error) {
	row := j.db.QueryRowContext(ctx, sessionColumns+`
		FROM sessions
		WHERE id = ?
	`, id)
	return scanSessionRow(row)
}

// ReadSessionByToken retrieves a single session by its token.
// Returns sql.ErrNoRows if not found.
func (j *Journal) ReadSessionByToken(ctx context.Context, token string) (Session, error) {
	row := j.db.QueryRowContext(ctx, sessionColumns+`
		FROM sessions
		WHERE token = ?
	`, token)
	return scanSessionRow(row)
}

// ReadFields returns a session's field rows in insertion order.
//
// Returns an empty slice (not nil) if the session has no fields.
func (j *Journal) ReadFields(ctx context.Context, sessionID string) ([]FieldEntry, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT ordinal, rule_name, value
		FROM session_fields
		WHERE session_id = ?
		ORDER BY position ASC
	`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("query fields: %w", err)
	}
	defer rows.Close()

	var fields []FieldEntry
	for rows.Next() {
		var f FieldEntry
		if err := rows.Scan(&f.Ordinal, &f.Rule, &f.Value); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		fields = append(fields, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate fields: %w", err)
	}

	if fields == nil {
		fields = []FieldEntry{}
	}

	return fields, nil
}

// ListSessions returns all sessions with deterministic ordering:
// ORDER BY seq ASC, id ASC COLLATE BINARY.
//
// Returns an empty slice (not nil) if the journal is empty.
func (j *Journal) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := j.db.QueryContext(ctx, sessionColumns+`
		FROM sessions
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// ListSessionsByChronology returns all sessions for one chronology with
// the same deterministic ordering as ListSessions.
func (j *Journal) ListSessionsByChronology(ctx context.Context, chronology string) ([]Session, error) {
	rows, err := j.db.QueryContext(ctx, sessionColumns+`
		FROM sessions
		WHERE chronology = ?
		ORDER BY seq ASC, id COLLATE BINARY ASC
	`, chronology)
	if err != nil {
		return nil, fmt.Errorf("query sessions by chronology: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}

// CountSessions returns the number of journaled sessions.
func (j *Journal) CountSessions(ctx context.Context) (int64, error) {
	var count int64
	err := j.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM sessions
	`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count sessions: %w", err)
	}
	return count, nil
}

func collectSessions(rows *sql.Rows) ([]Session, error) {
	var sessions []Session
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	if sessions == nil {
		sessions = []Session{}
	}

	return sessions, nil
}

func scanSession(rows *sql.Rows) (Session, error) {
	var s Session
	if err := rows.Scan(
		&s.ID, &s.Token, &s.Seq, &s.Chronology, &s.Strictness,
		&s.EpochDay, &s.NanoOfDay, &s.Canonical, &s.EngineVersion, &s.Note,
	); err != nil {
		return Session{}, fmt.Errorf("scan session: %w", err)
	}
	return s, nil
}

func scanSessionRow(row *sql.Row) (Session, error) {
	var s Session
	if err := row.Scan(
		&s.ID, &s.Token, &s.Seq, &s.Chronology, &s.Strictness,
		&s.EpochDay, &s.NanoOfDay, &s.Canonical, &s.EngineVersion, &s.Note,
	); err != nil {
		return Session{}, err
	}
	return s, nil
}
