// Package sessionquery compiles structured filters over journaled
// sessions into parameterized SQL for SQLite.
//
// The filter language is deliberately small: column equality, inclusive
// integer ranges, supplied-rule membership, and conjunction. Predicate
// is a sealed interface using the marker method pattern, so the
// compiler's type switch covers every form that can exist and callers
// cannot introduce new ones from outside the package.
//
// Two properties hold for every compiled query:
//
//   - Deterministic order. The SQL always carries
//     ORDER BY seq ASC, id COLLATE BINARY ASC, the journal's canonical
//     listing order, so row order never depends on SQLite internals
//     and a LIMIT returns a stable prefix.
//
//   - No interpolation. Values travel as ? parameters and are never
//     spliced into the SQL text. Column names are interpolated as
//     identifiers, which is why Compile confines them to an allow-list
//     of sessions columns.
//
// Validate is advisory. It reports whether a filter stays within the
// index-backed fragment (id, token, seq, chronology); filters outside
// that fragment still compile and run correctly, SQLite just scans the
// sessions table to answer them.
package sessionquery
