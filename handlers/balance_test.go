package handlers

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestIsDust(t *testing.T) {
	assert.True(t, isDust(decimal.Zero))
	assert.True(t, isDust(decimal.RequireFromString("0.01")))
	assert.True(t, isDust(decimal.RequireFromString("-0.01")))
	// Sub-cent residue from per-group rounding must not surface as a
	// cross-group balance entry.
	assert.True(t, isDust(decimal.RequireFromString("0.003")))
	assert.True(t, isDust(decimal.RequireFromString("-0.007")))

	assert.False(t, isDust(decimal.RequireFromString("0.02")))
	assert.False(t, isDust(decimal.RequireFromString("-0.02")))
	assert.False(t, isDust(decimal.RequireFromString("10.00")))
}
