package chrono

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValueRange_Fixed(t *testing.T) {
	r := NewFixedValueRange(0, 23)
	assert.Equal(t, int64(0), r.Min())
	assert.Equal(t, int64(23), r.SmallestMax())
	assert.Equal(t, int64(23), r.Max())
	assert.True(t, r.IsFixed())
	assert.Equal(t, "0-23", r.String())
}

func TestValueRange_Variable(t *testing.T) {
	r := NewValueRange(1, 28, 31)
	assert.Equal(t, int64(1), r.Min())
	assert.Equal(t, int64(28), r.SmallestMax())
	assert.Equal(t, int64(31), r.Max())
	assert.False(t, r.IsFixed())
	assert.Equal(t, "1-28/31", r.String())
}

func TestValueRange_Contains(t *testing.T) {
	r := NewValueRange(1, 28, 31)
	assert.True(t, r.Contains(1))
	assert.True(t, r.Contains(28))
	// Contains admits the largest maximum; context-dependent tightening is
	// the caller's job.
	assert.True(t, r.Contains(31))
	assert.False(t, r.Contains(0))
	assert.False(t, r.Contains(32))
}

func TestValueRange_NegativeBounds(t *testing.T) {
	r := NewFixedValueRange(-9999, 9999)
	assert.True(t, r.Contains(-9999))
	assert.True(t, r.Contains(0))
	assert.False(t, r.Contains(-10000))
	assert.Equal(t, "-9999-9999", r.String())
}

func TestNewValueRange_PanicsOnInvalidOrder(t *testing.T) {
	assert.Panics(t, func() { NewValueRange(10, 5, 20) })
	assert.Panics(t, func() { NewValueRange(1, 30, 20) })
	assert.NotPanics(t, func() { NewValueRange(5, 5, 5) })
}
