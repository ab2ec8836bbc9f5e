package sessionquery

import (
	"fmt"
	"strings"
)

// columnClass is the storage class a predicate value must match.
type columnClass int

const (
	classText columnClass = iota
	classInteger
)

// sessionColumns maps the queryable sessions columns to their storage
// class. Column names from projections and predicates are interpolated
// into the SQL as identifiers, so Compile refuses any name outside this
// table; values always travel as ? parameters.
var sessionColumns = map[string]columnClass{
	"id":             classText,
	"token":          classText,
	"seq":            classInteger,
	"chronology":     classText,
	"strictness":     classText,
	"epoch_day":      classInteger,
	"nano_of_day":    classInteger,
	"canonical":      classText,
	"engine_version": classText,
	"note":           classText,
}

// stableOrder is the ORDER BY every compiled query carries. It matches
// the journal's canonical listing order: logical clock first, then the
// content-addressed id with bytewise collation so text ordering cannot
// drift across SQLite builds.
const stableOrder = "seq ASC, id COLLATE BINARY ASC"

// Compile converts a Query to a parameterized SELECT over the sessions
// table. Returns (sql, params, error).
//
// Every compiled statement ends with the stable ORDER BY, and equal
// queries compile to byte-equal SQL.
func Compile(q Query) (string, []any, error) {
	if len(q.Columns) == 0 {
		return "", nil, fmt.Errorf("query has no columns")
	}
	for _, col := range q.Columns {
		if _, ok := sessionColumns[col]; !ok {
			return "", nil, fmt.Errorf("unknown sessions column %q", col)
		}
	}

	var params []any
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.Columns, ", "))
	b.WriteString(" FROM sessions")

	if q.Filter != nil {
		filterSQL, filterParams, err := compilePredicate(q.Filter)
		if err != nil {
			return "", nil, fmt.Errorf("compile filter: %w", err)
		}
		b.WriteString(" WHERE ")
		b.WriteString(filterSQL)
		params = filterParams
	}

	b.WriteString(" ORDER BY ")
	b.WriteString(stableOrder)

	if q.Limit > 0 {
		b.WriteString(" LIMIT ?")
		params = append(params, q.Limit)
	}

	return b.String(), params, nil
}

// compilePredicate compiles a Predicate to a WHERE clause fragment.
// Returns (sql, params, error). Values are never interpolated.
func compilePredicate(p Predicate) (string, []any, error) {
	if p == nil {
		return "1 = 1", nil, nil
	}

	switch pred := p.(type) {
	case Equals:
		return compileEquals(pred)
	case *Equals:
		return compileEquals(*pred)
	case Range:
		return compileRange(pred)
	case *Range:
		return compileRange(*pred)
	case SuppliedRule:
		return compileSuppliedRule(pred)
	case *SuppliedRule:
		return compileSuppliedRule(*pred)
	case And:
		return compileAnd(pred)
	case *And:
		return compileAnd(*pred)
	default:
		return "", nil, fmt.Errorf("unsupported predicate type: %T", p)
	}
}

// compileEquals compiles an Equals predicate to "column = ?".
func compileEquals(eq Equals) (string, []any, error) {
	class, ok := sessionColumns[eq.Column]
	if !ok {
		return "", nil, fmt.Errorf("unknown sessions column %q", eq.Column)
	}
	param, err := valueToParam(class, eq.Column, eq.Value)
	if err != nil {
		return "", nil, err
	}
	return eq.Column + " = ?", []any{param}, nil
}

// compileRange compiles a Range predicate to one or two inclusive
// comparisons joined with AND.
func compileRange(r Range) (string, []any, error) {
	class, ok := sessionColumns[r.Column]
	if !ok {
		return "", nil, fmt.Errorf("unknown sessions column %q", r.Column)
	}
	if class != classInteger {
		return "", nil, fmt.Errorf("range over non-integer column %q", r.Column)
	}
	if r.Min == nil && r.Max == nil {
		return "", nil, fmt.Errorf("range over %q has no bounds", r.Column)
	}

	var parts []string
	var params []any
	if r.Min != nil {
		parts = append(parts, r.Column+" >= ?")
		params = append(params, *r.Min)
	}
	if r.Max != nil {
		parts = append(parts, r.Column+" <= ?")
		params = append(params, *r.Max)
	}
	return strings.Join(parts, " AND "), params, nil
}

// compileSuppliedRule compiles a SuppliedRule predicate to a membership
// test through session_fields. rule_name is the denormalized spelling
// stored alongside each supplied value.
func compileSuppliedRule(sr SuppliedRule) (string, []any, error) {
	if sr.Rule == "" {
		return "", nil, fmt.Errorf("supplied-rule predicate has no rule name")
	}
	sql := "id IN (SELECT session_id FROM session_fields WHERE rule_name = ?)"
	return sql, []any{sr.Rule}, nil
}

// compileAnd compiles an And predicate to a conjunction. An empty And
// is always true (vacuous truth).
func compileAnd(and And) (string, []any, error) {
	if len(and.Predicates) == 0 {
		return "1 = 1", nil, nil
	}

	var sqlParts []string
	var allParams []any
	for _, pred := range and.Predicates {
		sql, params, err := compilePredicate(pred)
		if err != nil {
			return "", nil, err
		}
		sqlParts = append(sqlParts, sql)
		allParams = append(allParams, params...)
	}
	return strings.Join(sqlParts, " AND "), allParams, nil
}

// valueToParam checks a predicate value against the column's storage
// class and converts it to a driver-friendly parameter. Only strings
// and integers travel to the database; anything else is a programming
// error in the caller.
func valueToParam(class columnClass, column string, v any) (any, error) {
	switch val := v.(type) {
	case string:
		if class != classText {
			return nil, fmt.Errorf("column %q holds integers, got string %q", column, val)
		}
		return val, nil
	case int64:
		if class != classInteger {
			return nil, fmt.Errorf("column %q holds text, got integer %d", column, val)
		}
		return val, nil
	case int:
		if class != classInteger {
			return nil, fmt.Errorf("column %q holds text, got integer %d", column, val)
		}
		return int64(val), nil
	case nil:
		return nil, fmt.Errorf("column %q compared to nil value", column)
	default:
		return nil, fmt.Errorf("unsupported value type %T for column %q", v, column)
	}
}
