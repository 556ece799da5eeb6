package model

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBand(t *testing.T) {
	low, high := Band(decimal.RequireFromString("100"))
	assert.Equal(t, "95", low.String())
	assert.Equal(t, "105", high.String())
}

func TestBand_NegativeAmountNormalized(t *testing.T) {
	low, high := Band(decimal.RequireFromString("-20"))
	assert.Equal(t, "-21", low.String())
	assert.Equal(t, "-19", high.String())
	assert.True(t, low.LessThan(high))
}

func TestMapping_Covers(t *testing.T) {
	m := Mapping{
		LowAmount:  decimal.RequireFromString("-21"),
		HighAmount: decimal.RequireFromString("-19"),
	}
	assert.True(t, m.Covers(decimal.RequireFromString("-20")))
	assert.True(t, m.Covers(decimal.RequireFromString("-21")))
	assert.True(t, m.Covers(decimal.RequireFromString("-19")))
	assert.False(t, m.Covers(decimal.RequireFromString("-18.99")))
	assert.False(t, m.Covers(decimal.RequireFromString("-50")))
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"-3.50", "-3.5"},
		{"£1,234.56", "1234.56"},
		{"$20.00", "20"},
		{" 100 ", "100"},
	}
	for _, tt := range tests {
		got, err := ParseAmount(tt.raw)
		require.NoError(t, err, tt.raw)
		assert.Equal(t, tt.want, got.String(), tt.raw)
	}
}

func TestParseAmount_Invalid(t *testing.T) {
	for _, raw := range []string{"", "POS", "01/01/2023", "Coffee"} {
		_, err := ParseAmount(raw)
		assert.Error(t, err, raw)
	}
}
