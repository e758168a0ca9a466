package sunat_test

import (
	"testing"

	"github.com/paisasoft/mercado-api/pkg/sunat"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// TestAmountInWords cubre el rango soportado del deletreo: cero, unidades,
// decenas con conjunción "Y", la simplificación de centenas y el centinela
// por encima del tope.
func TestAmountInWords(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		want   string
	}{
		{"cero", "0", "SON CERO CON 00/100 SOLES"},
		{"unidad", "1.00", "SON UN CON 00/100 SOLES"},
		{"nueve con centimos", "9.50", "SON NUEVE CON 50/100 SOLES"},
		{"diez", "10", "SON DIEZ CON 00/100 SOLES"},
		{"quince", "15.25", "SON QUINCE CON 25/100 SOLES"},
		{"diecinueve", "19.99", "SON DIECINUEVE CON 99/100 SOLES"},
		{"veinte exacto", "20", "SON VEINTE CON 00/100 SOLES"},
		{"veintiuno con conjuncion", "21.00", "SON VEINTE Y UN CON 00/100 SOLES"},
		{"veintitres con sesenta", "23.60", "SON VEINTE Y TRES CON 60/100 SOLES"},
		{"noventa y nueve", "99.99", "SON NOVENTA Y NUEVE CON 99/100 SOLES"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			amount := decimal.RequireFromString(tc.amount)
			assert.Equal(t, tc.want, sunat.AmountInWords(amount))
		})
	}
}

// TestAmountInWords_CentenasSimplificadas fija la limitación documentada:
// a partir de 100 la centena se representa como "CIENTO <resto numérico>".
func TestAmountInWords_CentenasSimplificadas(t *testing.T) {
	assert.Equal(t, "SON CIENTO 17 CON 99/100 SOLES",
		sunat.AmountInWords(decimal.RequireFromString("117.99")))
	assert.Equal(t, "SON CIENTO 0 CON 00/100 SOLES",
		sunat.AmountInWords(decimal.RequireFromString("100")))
	assert.Equal(t, "SON CIENTO 50 CON 00/100 SOLES",
		sunat.AmountInWords(decimal.RequireFromString("4250.00")))
}

// TestAmountInWords_Tope valida el centinela para importes que exceden el
// límite de 999 999 999.
func TestAmountInWords_Tope(t *testing.T) {
	over := decimal.NewFromInt(1_000_000_000)
	assert.Equal(t, sunat.AmountInWordsOverLimit, sunat.AmountInWords(over))

	// El tope exacto todavía se deletrea (simplificado).
	atLimit := decimal.NewFromInt(999_999_999)
	assert.NotEqual(t, sunat.AmountInWordsOverLimit, sunat.AmountInWords(atLimit))
}
