// Package request compiles resolution request documents (CUE or YAML)
// into field rules bound to a chronology. Documents name rules by their
// kind names ("DayOfYear"); compilation resolves those names against the
// chronology's rule table and reports every problem it finds with a
// stable R-prefixed code.
package request

import (
	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

// Request is a parsed resolution request. Rules are still plain names at
// this stage; Compile binds them to a chronology.
type Request struct {
	Chronology string
	Strictness string
	Fields     []Field
	Note       string
}

// Field is one rule/value pair from a request document.
type Field struct {
	Rule  string
	Value int64
}

// Compiled is a request bound to its chronology, ready to feed a
// resolution builder.
type Compiled struct {
	Chronology *chrono.Chronology
	Strictness resolve.Strictness
	Fields     []CompiledField
	Note       string
}

// CompiledField pairs a resolved rule with its supplied value.
type CompiledField struct {
	Rule  *chrono.FieldRule
	Value int64
}

// Compile validates a request and binds its rule names. An omitted
// strictness defaults to strict. All validation problems are returned
// together; the compiled form is only returned when the request is clean.
func Compile(req *Request) (*Compiled, []error) {
	if errs := Validate(req); len(errs) > 0 {
		return nil, errs
	}

	c, err := chrono.ChronologyByName(req.Chronology)
	if err != nil {
		return nil, []error{err}
	}

	strictness := resolve.Strict
	if req.Strictness != "" {
		strictness, _ = resolve.StrictnessByName(req.Strictness)
	}

	compiled := &Compiled{
		Chronology: c,
		Strictness: strictness,
		Fields:     make([]CompiledField, len(req.Fields)),
		Note:       req.Note,
	}
	for i, f := range req.Fields {
		kind, _ := chrono.FieldKindByName(f.Rule)
		compiled.Fields[i] = CompiledField{Rule: c.Rule(kind), Value: f.Value}
	}
	return compiled, nil
}

// Builder seeds a resolution builder with the compiled fields. Range
// violations surface here, not at validation time.
func (c *Compiled) Builder() (*resolve.Builder, error) {
	b := resolve.NewBuilder(c.Chronology)
	for _, f := range c.Fields {
		if err := b.AddFieldValue(f.Rule, f.Value); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Resolve runs the request end to end and returns the derivation trace
// alongside the result.
func (c *Compiled) Resolve() (chrono.DateTime, *resolve.Trace, error) {
	b, err := c.Builder()
	if err != nil {
		return chrono.DateTime{}, nil, err
	}
	return b.ResolveTraced(c.Strictness)
}
