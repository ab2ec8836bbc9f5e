// Package journal provides SQLite-backed durable storage for resolution
// sessions.
//
// A session records one successful resolution: the chronology, the
// strictness, the supplied (rule, value) pairs in insertion order, and the
// outcome (epoch day, nano of day, canonical form). Sessions can later be
// replayed: the stored inputs are resolved again and the recomputed outcome
// is compared byte-for-byte against the stored one.
//
// # Critical Patterns
//
// Content-addressed identity
//   - Session IDs are SHA-256 over RFC 8785 canonical JSON of the inputs
//     (chronology, strictness, ordered ordinal/value pairs) with domain
//     separation
//   - The same request always maps to the same session row, making writes
//     idempotent via ON CONFLICT(id) DO NOTHING
//
// Logical time
//   - Ordering uses seq INTEGER (logical clock), never timestamps
//   - Tokens are UUIDv7, issued once at first write and stable thereafter
//
// Deterministic query results
//   - Listing queries order by seq ASC, id ASC COLLATE BINARY
//   - Field rows order by position ASC (insertion order)
//
// Durable rule identity
//   - session_fields stores the rule ordinal, the only identity that
//     survives a serialize/deserialize boundary; the rule name column is
//     denormalized for inspection only
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//   - foreign_keys=ON: enforce referential integrity
package journal
