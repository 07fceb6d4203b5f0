package currency

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	tests := []struct {
		name   string
		code   string
		want   string
		amount float64
	}{
		{
			name:   "usd simple",
			code:   "USD",
			amount: 4.5,
			want:   "$4.50",
		},
		{
			name:   "usd thousands",
			code:   "USD",
			amount: 1234.5,
			want:   "$1,234.50",
		},
		{
			name:   "usd millions",
			code:   "USD",
			amount: 1234567.89,
			want:   "$1,234,567.89",
		},
		{
			name:   "euro",
			code:   "EUR",
			amount: 99.99,
			want:   "€99.99",
		},
		{
			name:   "canadian dollar prefix",
			code:   "CAD",
			amount: 10,
			want:   "C$10.00",
		},
		{
			name:   "negative amount",
			code:   "USD",
			amount: -42.5,
			want:   "-$42.50",
		},
		{
			name:   "zero",
			code:   "GBP",
			amount: 0,
			want:   "£0.00",
		},
		{
			name:   "unknown code falls back",
			code:   "CHF",
			amount: 12.3,
			want:   "12.30 CHF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Format(tt.amount, tt.code))
		})
	}
}

func TestSymbol(t *testing.T) {
	assert.Equal(t, "$", Symbol("USD"))
	assert.Equal(t, "₹", Symbol("INR"))
	assert.Equal(t, "XYZ", Symbol("XYZ"))
}

func TestCodes(t *testing.T) {
	codes := Codes()
	assert.Contains(t, codes, "USD")
	for _, code := range codes {
		assert.NotEqual(t, code, Symbol(code), "every listed code should have a symbol")
	}
}
