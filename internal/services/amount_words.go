package services

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// AmountInWords spells an amount in Spanish the way it is written on
// contracts and checks: 1500.5 -> "MIL QUINIENTOS CON 50/100".
func AmountInWords(amount decimal.Decimal) string {
	amount = amount.Round(2)
	sign := ""
	if amount.IsNegative() {
		sign = "MENOS "
		amount = amount.Neg()
	}
	whole := amount.IntPart()
	cents := amount.Sub(decimal.NewFromInt(whole)).Mul(decimal.NewFromInt(100)).IntPart()
	return fmt.Sprintf("%s%s CON %02d/100", sign, spellInt(whole), cents)
}

func spellInt(n int64) string {
	switch {
	case n == 0:
		return "CERO"
	case n < 10:
		return wordUnits[n]
	case n < 30:
		return wordSpecials[n-10]
	case n < 100:
		if n%10 == 0 {
			return wordTens[n/10]
		}
		return wordTens[n/10] + " Y " + wordUnits[n%10]
	case n == 100:
		return "CIEN"
	case n < 1000:
		head := wordHundreds[n/100]
		if n%100 == 0 {
			return head
		}
		return head + " " + spellInt(n%100)
	case n < 1_000_000:
		return group(n/1000, "MIL", "MIL") + tail(n%1000)
	case n < 1_000_000_000_000:
		return group(n/1_000_000, "UN MILLÓN", "MILLONES") + tail(n%1_000_000)
	}
	return fmt.Sprintf("%d", n)
}

// group spells a multiplier before MIL or MILLONES, where "UNO" shortens to "UN".
func group(n int64, single, plural string) string {
	if n == 1 {
		return single
	}
	words := spellInt(n)
	switch {
	case strings.HasSuffix(words, "VEINTIUNO"):
		words = strings.TrimSuffix(words, "VEINTIUNO") + "VEINTIÚN"
	case strings.HasSuffix(words, "UNO"):
		words = strings.TrimSuffix(words, "UNO") + "UN"
	}
	return words + " " + plural
}

func tail(rest int64) string {
	if rest == 0 {
		return ""
	}
	return " " + spellInt(rest)
}

var wordUnits = []string{"", "UNO", "DOS", "TRES", "CUATRO", "CINCO", "SEIS", "SIETE", "OCHO", "NUEVE"}

var wordSpecials = []string{
	"DIEZ", "ONCE", "DOCE", "TRECE", "CATORCE", "QUINCE", "DIECISÉIS", "DIECISIETE", "DIECIOCHO", "DIECINUEVE",
	"VEINTE", "VEINTIUNO", "VEINTIDÓS", "VEINTITRÉS", "VEINTICUATRO", "VEINTICINCO", "VEINTISÉIS", "VEINTISIETE", "VEINTIOCHO", "VEINTINUEVE",
}

var wordTens = []string{"", "", "VEINTE", "TREINTA", "CUARENTA", "CINCUENTA", "SESENTA", "SETENTA", "OCHENTA", "NOVENTA"}

var wordHundreds = []string{
	"", "CIENTO", "DOSCIENTOS", "TRESCIENTOS", "CUATROCIENTOS", "QUINIENTOS",
	"SEISCIENTOS", "SETECIENTOS", "OCHOCIENTOS", "NOVECIENTOS",
}
