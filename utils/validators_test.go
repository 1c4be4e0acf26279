package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidCurrency(t *testing.T) {
	assert.True(t, ValidCurrency("VND"))
	assert.True(t, ValidCurrency("USD"))
	assert.True(t, ValidCurrency("EUR"))

	assert.False(t, ValidCurrency("vnd"))
	assert.False(t, ValidCurrency("GBP"))
	assert.False(t, ValidCurrency(""))
}

func TestValidPhone(t *testing.T) {
	assert.True(t, ValidPhone(""), "phone is optional")
	assert.True(t, ValidPhone("0912345678"))
	assert.True(t, ValidPhone("09123456789"))

	assert.False(t, ValidPhone("912345678"), "must start with 0")
	assert.False(t, ValidPhone("091234567"), "too short")
	assert.False(t, ValidPhone("091234567890"), "too long")
	assert.False(t, ValidPhone("09123a5678"))
}
