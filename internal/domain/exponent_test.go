package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDamageMultiplier_Table(t *testing.T) {
	tests := []struct {
		code string
		want float64
	}{
		{"", 0},
		{"+", 1},
		{"0", 10},
		{"1", 10},
		{"2", 10},
		{"3", 10},
		{"4", 10},
		{"5", 10},
		{"6", 10},
		{"7", 10},
		{"8", 10},
		{"h", 100},
		{"H", 100},
		{"k", 1e3},
		{"K", 1e3},
		{"m", 1e6},
		{"M", 1e6},
		{"b", 1e9},
		{"B", 1e9},
	}

	for _, tt := range tests {
		t.Run("code "+tt.code, func(t *testing.T) {
			mult, ok := DamageMultiplier(tt.code)
			assert.True(t, ok)
			assert.Equal(t, tt.want, mult)
		})
	}
}

func TestDamageMultiplier_Unmapped(t *testing.T) {
	// "-" and "?" are legacy junk entries: multiplier 0 but flagged so the
	// aggregator counts them. "9" is outside the documented digit range.
	for _, code := range []string{"-", "?", "9", "x", "Z", "kk", "q", "%"} {
		t.Run("code "+code, func(t *testing.T) {
			mult, ok := DamageMultiplier(code)
			assert.False(t, ok)
			assert.Zero(t, mult)
		})
	}
}

func TestDamageMultiplier_Pure(t *testing.T) {
	// Same code, same answer, every time.
	for range 3 {
		mult, ok := DamageMultiplier("K")
		assert.True(t, ok)
		assert.Equal(t, 1e3, mult)
	}
}
