package journal

import (
	"context"
	"fmt"

	"github.com/almanac-go/almanac/internal/sessionquery"
)

// QuerySessions returns the sessions matching filter, in the same
// deterministic order as ListSessions. A nil filter matches every
// session; a positive limit caps the result to a stable prefix.
//
// The projection is fixed to the journal's scan order, so callers shape
// the result only through the filter and limit.
func (j *Journal) QuerySessions(ctx context.Context, filter sessionquery.Predicate, limit int64) ([]Session, error) {
	stmt, params, err := sessionquery.Compile(sessionquery.Query{
		Columns: sessionColumnList,
		Filter:  filter,
		Limit:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("compile session query: %w", err)
	}

	rows, err := j.db.QueryContext(ctx, stmt, params...)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	return collectSessions(rows)
}
