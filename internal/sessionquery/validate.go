package sessionquery

import "fmt"

// ValidationResult reports whether a filter can be answered from the
// journal's indexes.
//
// Index-backed filters touch only columns with a covering index, so
// matching stays cheap as the journal grows. Filters outside that set
// still compile and execute correctly; SQLite answers them by scanning
// the sessions table.
type ValidationResult struct {
	// IndexBacked indicates every condition in the filter can use an
	// index. True for the nil filter, which has nothing to scan for.
	IndexBacked bool

	// Warnings lists the conditions that force a scan. Empty when
	// IndexBacked is true.
	Warnings []string
}

// indexedColumns are the sessions columns with a covering index: the
// primary key, the unique token, and the two secondary indexes the
// schema declares.
var indexedColumns = map[string]bool{
	"id":         true,
	"token":      true,
	"seq":        true,
	"chronology": true,
}

// Validate reports whether a filter stays within the index-backed
// fragment. It never rejects a filter; Compile decides what is legal.
//
// Validate is a pure function with no side effects.
func Validate(p Predicate) ValidationResult {
	v := &validator{warnings: []string{}}
	v.validatePredicate(p)

	return ValidationResult{
		IndexBacked: len(v.warnings) == 0,
		Warnings:    v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(format string, args ...any) {
	v.warnings = append(v.warnings, fmt.Sprintf(format, args...))
}

func (v *validator) validatePredicate(p Predicate) {
	if p == nil {
		return // nil predicates match everything without scanning
	}

	switch pred := p.(type) {
	case Equals:
		v.validateColumn(pred.Column)
	case *Equals:
		v.validateColumn(pred.Column)
	case Range:
		v.validateColumn(pred.Column)
	case *Range:
		v.validateColumn(pred.Column)
	case SuppliedRule, *SuppliedRule:
		v.addWarning("supplied-rule match scans session_fields (rule_name is not indexed)")
	case And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	case *And:
		for _, sub := range pred.Predicates {
			v.validatePredicate(sub)
		}
	default:
		v.addWarning("unknown predicate type %T", p)
	}
}

func (v *validator) validateColumn(column string) {
	if !indexedColumns[column] {
		v.addWarning("column %q is not indexed; matching scans the sessions table", column)
	}
}
