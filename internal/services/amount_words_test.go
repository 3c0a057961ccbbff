package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAmountInWords(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "CERO CON 00/100"},
		{"1", "UNO CON 00/100"},
		{"15", "QUINCE CON 00/100"},
		{"21", "VEINTIUNO CON 00/100"},
		{"45.5", "CUARENTA Y CINCO CON 50/100"},
		{"100", "CIEN CON 00/100"},
		{"101", "CIENTO UNO CON 00/100"},
		{"1500.50", "MIL QUINIENTOS CON 50/100"},
		{"21000", "VEINTIÚN MIL CON 00/100"},
		{"31000", "TREINTA Y UN MIL CON 00/100"},
		{"100000", "CIEN MIL CON 00/100"},
		{"1000000", "UN MILLÓN CON 00/100"},
		{"2350000.99", "DOS MILLONES TRESCIENTOS CINCUENTA MIL CON 99/100"},
		{"-12.345", "MENOS DOCE CON 35/100"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, AmountInWords(decimal.RequireFromString(tt.in)))
		})
	}
}
