package utils

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatCurrency(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "0.00 ETB"},
		{"16", "16.00 ETB"},
		{"5.25", "5.25 ETB"},
		{"1234.5", "1,234.50 ETB"},
		{"1000000", "1,000,000.00 ETB"},
		{"-42.1", "-42.10 ETB"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatCurrency(decimal.RequireFromString(tt.in)))
		})
	}
}
