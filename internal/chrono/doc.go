// Package chrono provides the calendrical value domain for almanac.
//
// This package contains the immutable core types only: value ranges, field
// rules, chronologies, times of day, periods, and date-time values. All other
// internal packages import chrono; chrono imports nothing internal. This keeps
// the value domain the foundational layer with no circular dependencies.
//
// Key design constraints:
//   - All field values are int64 - no float types anywhere
//   - Chronology identity is a closed enum compared explicitly, never a cast
//   - Per-field arithmetic dispatches by exhaustive switch over FieldKind
//   - Absence is (int64, bool), never a reserved sentinel value
//   - Every table (rules, hours, eras) is built once at init and never mutated
package chrono
