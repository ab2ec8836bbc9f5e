package sessionquery

// Predicate is one condition over journaled sessions.
//
// Predicate is sealed with the marker method pattern: only types in this
// package implement it, so the compiler's type switch is exhaustive and
// new predicate forms cannot appear from outside.
type Predicate interface {
	predicateNode()
}

// Equals matches sessions whose column equals a value exactly.
//
// Column must name a queryable sessions column. Value must be a string
// for TEXT columns and an int or int64 for INTEGER columns; Compile
// rejects anything else.
type Equals struct {
	Column string
	Value  any
}

func (Equals) predicateNode() {}

// Range matches sessions whose INTEGER column lies within [Min, Max],
// both bounds inclusive. Either bound may be nil for a half-open range;
// a Range with neither bound does not compile.
type Range struct {
	Column string
	Min    *int64
	Max    *int64
}

func (Range) predicateNode() {}

// SuppliedRule matches sessions that supplied a value for the named
// field rule, whatever that value was. Rule is compared against the
// denormalized rule_name column of session_fields, so it must use the
// rule's exact spelling ("DayOfMonth", "CopticDayOfYear").
type SuppliedRule struct {
	Rule string
}

func (SuppliedRule) predicateNode() {}

// And is the conjunction of its sub-predicates. An empty And matches
// every session.
type And struct {
	Predicates []Predicate
}

func (And) predicateNode() {}

// Query selects journaled sessions matching Filter.
type Query struct {
	// Columns is the projection, in scan order. Every name must be a
	// queryable sessions column.
	Columns []string

	// Filter restricts the result. A nil Filter matches every session.
	Filter Predicate

	// Limit caps the row count when positive; zero means unlimited.
	Limit int64
}

// Bound builds a Range bound from a literal.
func Bound(v int64) *int64 { return &v }
