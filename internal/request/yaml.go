package request

import (
	"bytes"
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// yamlRequest mirrors Request with a loosely typed value so a non-integer
// value is reported as R007 instead of a decode failure.
type yamlRequest struct {
	Chronology string      `yaml:"chronology"`
	Strictness string      `yaml:"strictness"`
	Fields     []yamlField `yaml:"fields"`
	Note       string      `yaml:"note"`
}

type yamlField struct {
	Rule  string `yaml:"rule"`
	Value any    `yaml:"value"`
}

// ParseYAML parses a YAML request document. The document is the request
// object itself (chronology, strictness, fields, note at the top level).
// Unknown keys are rejected.
func ParseYAML(data []byte) (*Request, []error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var raw yamlRequest
	if err := dec.Decode(&raw); err != nil {
		return nil, []error{&ValidationError{
			Code:    CodeBadDocument,
			Message: fmt.Sprintf("parsing YAML: %v", err),
		}}
	}

	var errs []error
	req := &Request{
		Chronology: raw.Chronology,
		Strictness: raw.Strictness,
		Note:       raw.Note,
	}
	for i, f := range raw.Fields {
		value, ok := intValue(f.Value)
		if !ok {
			errs = append(errs, &ValidationError{
				Code:    CodeNonIntegerValue,
				Path:    fmt.Sprintf("fields[%d].value", i),
				Message: fmt.Sprintf("value must be an integer, got %T", f.Value),
			})
			continue
		}
		req.Fields = append(req.Fields, Field{Rule: f.Rule, Value: value})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return req, nil
}

// LoadYAMLFile reads and parses a YAML request document.
func LoadYAMLFile(path string) (*Request, []error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, []error{&ValidationError{
			Code:    CodeBadDocument,
			Message: fmt.Sprintf("reading %s: %v", path, err),
		}}
	}
	return ParseYAML(data)
}

// intValue coerces the scalar types the YAML decoder produces for
// integers. Everything else, floats included, is rejected.
func intValue(v any) (int64, bool) {
	switch n := v.(type) {
	case int:
		return int64(n), true
	case int64:
		return n, true
	case uint64:
		if n > math.MaxInt64 {
			return 0, false
		}
		return int64(n), true
	default:
		return 0, false
	}
}
