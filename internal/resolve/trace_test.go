package resolve

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/almanac-go/almanac/internal/chrono"
)

// =============================================================================
// Render Grammar
// =============================================================================

func TestTrace_RenderSuccess(t *testing.T) {
	b := NewBuilder(chrono.ISO)
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindYear), 2024))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindMonthOfYear), 2))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindDayOfMonth), 29))

	_, tr, err := b.ResolveTraced(Strict)
	require.NoError(t, err)

	want := `chronology: ISO
strictness: strict
supplied Year = 2024
supplied MonthOfYear = 2
supplied DayOfMonth = 29
derived YearOfEra = 2024 from Year (round 1)
derived Era = 1 from Year (round 1)
resolved 2024-02-29T00:00
`
	assert.Equal(t, want, tr.Render())
}

// The era/year-of-era completion has no fixed-point round, so its step
// renders without a round suffix.
func TestTrace_RenderDerivedWithoutRound(t *testing.T) {
	b := NewBuilder(chrono.Minguo)
	require.NoError(t, b.AddFieldValue(chrono.Minguo.Rule(chrono.KindEra), 1))
	require.NoError(t, b.AddFieldValue(chrono.Minguo.Rule(chrono.KindYearOfEra), 113))
	require.NoError(t, b.AddFieldValue(chrono.Minguo.Rule(chrono.KindMonthOfYear), 1))
	require.NoError(t, b.AddFieldValue(chrono.Minguo.Rule(chrono.KindDayOfMonth), 1))

	_, tr, err := b.ResolveTraced(Strict)
	require.NoError(t, err)

	want := `chronology: Minguo
strictness: strict
supplied MinguoEra = 1
supplied MinguoYearOfEra = 113
supplied MinguoMonthOfYear = 1
supplied MinguoDayOfMonth = 1
derived MinguoYear = 113 from MinguoEra,MinguoYearOfEra
resolved Minguo ROC 113-01-01T00:00
`
	assert.Equal(t, want, tr.Render())
}

func TestTrace_RenderDefaulted(t *testing.T) {
	b := NewBuilder(chrono.ISO)
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindYear), 2024))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindMonthOfYear), 6))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindDayOfMonth), 15))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindHourOfDay), 9))

	_, tr, err := b.ResolveTraced(Strict)
	require.NoError(t, err)

	rendered := tr.Render()
	assert.Contains(t, rendered, "defaulted MinuteOfHour = 0\n")
	assert.Contains(t, rendered, "defaulted SecondOfMinute = 0\n")
	assert.Contains(t, rendered, "defaulted NanoOfSecond = 0\n")
	assert.Contains(t, rendered, "resolved 2024-06-15T09:00\n")
}

func TestTrace_RenderFailure(t *testing.T) {
	b := NewBuilder(chrono.ISO)
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindYear), 2024))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindMonthOfYear), 2))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindDayOfMonth), 29))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindDayOfYear), 100))

	_, tr, err := b.ResolveTraced(Strict)
	require.Error(t, err)
	require.NotNil(t, tr)

	rendered := tr.Render()
	assert.Contains(t, rendered, "supplied DayOfYear = 100\n")
	assert.Contains(t, rendered, "failed: "+err.Error()+"\n")
	assert.NotContains(t, rendered, "resolved")
	assert.Empty(t, tr.Canonical)
	assert.Equal(t, err.Error(), tr.Err)
}

// =============================================================================
// Determinism
// =============================================================================

// Identical inputs produce a byte-identical trace, run after run.
func TestTrace_Deterministic(t *testing.T) {
	build := func() *Trace {
		b := NewBuilder(chrono.Coptic)
		require.NoError(t, b.AddFieldValue(chrono.Coptic.Rule(chrono.KindYear), 1740))
		require.NoError(t, b.AddFieldValue(chrono.Coptic.Rule(chrono.KindDayOfYear), 171))
		_, tr, err := b.ResolveTraced(Strict)
		require.NoError(t, err)
		return tr
	}

	first := build()
	second := build()
	assert.Equal(t, first.Render(), second.Render())
	assert.Equal(t, first.Steps, second.Steps)
}

// =============================================================================
// JSON Shape
// =============================================================================

func TestTrace_JSONOmitsEmptyFields(t *testing.T) {
	b := NewBuilder(chrono.ISO)
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindYear), 2024))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindMonthOfYear), 2))
	require.NoError(t, b.AddFieldValue(chrono.ISO.Rule(chrono.KindDayOfMonth), 29))

	_, tr, err := b.ResolveTraced(Strict)
	require.NoError(t, err)

	data, err := json.Marshal(tr)
	require.NoError(t, err)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "ISO", decoded["chronology"])
	assert.Equal(t, "2024-02-29T00:00", decoded["canonical"])
	assert.NotContains(t, decoded, "error")

	steps, ok := decoded["steps"].([]interface{})
	require.True(t, ok)
	require.Len(t, steps, 5)

	supplied, ok := steps[0].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "supplied", supplied["kind"])
	assert.Equal(t, "Year", supplied["rule"])
	assert.NotContains(t, supplied, "from")
	assert.NotContains(t, supplied, "round")

	derived, ok := steps[3].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "derived", derived["kind"])
	assert.Equal(t, "Year", derived["from"])
	assert.Equal(t, float64(1), derived["round"])
}
