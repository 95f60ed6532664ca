package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		name     string
		currency string
		amount   int
		expected string
	}{
		{"zero", "$", 0, "$0"},
		{"below a thousand", "$", 999, "$999"},
		{"thousands", "$", 12500, "$12,500"},
		{"millions", "€", 1234567, "€1,234,567"},
		{"no symbol", "", 4200, "4,200"},
		{"negative", "$", -1500, "-$1,500"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatMoney(tt.currency, tt.amount))
		})
	}
}
