package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almanac-go/almanac/internal/chrono"
	"github.com/almanac-go/almanac/internal/resolve"
)

func TestCompile_BindsRules(t *testing.T) {
	compiled, errs := Compile(validRequest())
	require.Empty(t, errs)

	assert.Same(t, chrono.ISO, compiled.Chronology)
	assert.Equal(t, resolve.Strict, compiled.Strictness)
	require.Len(t, compiled.Fields, 3)
	assert.Equal(t, "Year", compiled.Fields[0].Rule.Name())
	assert.Equal(t, int64(2024), compiled.Fields[0].Value)
	assert.Equal(t, "MonthOfYear", compiled.Fields[1].Rule.Name())
	assert.Equal(t, "DayOfMonth", compiled.Fields[2].Rule.Name())
}

func TestCompile_DefaultsToStrict(t *testing.T) {
	req := validRequest()
	req.Strictness = ""

	compiled, errs := Compile(req)
	require.Empty(t, errs)
	assert.Equal(t, resolve.Strict, compiled.Strictness)
}

func TestCompile_Lenient(t *testing.T) {
	req := validRequest()
	req.Strictness = "lenient"

	compiled, errs := Compile(req)
	require.Empty(t, errs)
	assert.Equal(t, resolve.Lenient, compiled.Strictness)
}

func TestCompile_ChronologySpecificRules(t *testing.T) {
	req := &Request{
		Chronology: "Coptic",
		Fields: []Field{
			{Rule: "Year", Value: 1741},
			{Rule: "DayOfYear", Value: 40},
		},
	}

	compiled, errs := Compile(req)
	require.Empty(t, errs)
	assert.Same(t, chrono.Coptic, compiled.Chronology)
	assert.Equal(t, "CopticYear", compiled.Fields[0].Rule.Name())
	assert.Equal(t, "CopticDayOfYear", compiled.Fields[1].Rule.Name())
}

func TestCompile_ReturnsValidationErrors(t *testing.T) {
	req := validRequest()
	req.Chronology = "Gregorian"

	compiled, errs := Compile(req)
	assert.Nil(t, compiled)
	assert.Equal(t, []string{"R002"}, codesOf(t, errs))
}

func TestCompiled_Resolve(t *testing.T) {
	compiled, errs := Compile(validRequest())
	require.Empty(t, errs)

	dt, tr, err := compiled.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "2024-02-29T00:00", dt.CanonicalString())
	require.NotNil(t, tr)
	assert.Equal(t, "ISO", tr.Chronology)
	assert.Equal(t, "2024-02-29T00:00", tr.Canonical)
}

func TestCompiled_BuilderRangeViolation(t *testing.T) {
	req := validRequest()
	req.Fields[2].Value = 32

	compiled, errs := Compile(req)
	require.Empty(t, errs, "range violations are resolution errors, not validation errors")

	_, err := compiled.Builder()
	require.Error(t, err)
	assert.True(t, chrono.IsOutOfRange(err))
}

func TestCompiled_LenientCarry(t *testing.T) {
	req := &Request{
		Chronology: "ISO",
		Strictness: "lenient",
		Fields: []Field{
			{Rule: "Year", Value: 2023},
			{Rule: "MonthOfYear", Value: 2},
			{Rule: "DayOfMonth", Value: 29},
		},
	}

	compiled, errs := Compile(req)
	require.Empty(t, errs)

	dt, _, err := compiled.Resolve()
	require.NoError(t, err)
	assert.Equal(t, "2023-03-01T00:00", dt.CanonicalString())
}
