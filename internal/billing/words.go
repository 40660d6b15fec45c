package billing

import (
	"strings"

	"github.com/shopspring/decimal"
)

var ones = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen",
	"Sixteen", "Seventeen", "Eighteen", "Nineteen",
}

var tens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

const (
	lakh     = 100000
	thousand = 1000
)

var crore = decimal.NewFromInt(10000000)

// ToWords renders an amount as "INR <words> Only", adding an
// "And <paise> Paise" clause when the amount has a fractional part that
// rounds to at least one paisa.
func ToWords(amount decimal.Decimal) string {
	abs := amount.Abs()

	rupees := abs.Floor()
	paise := RoundHalfUp(abs.Sub(rupees).Mul(hundred)).IntPart()
	if paise >= 100 {
		rupees = rupees.Add(decimal.NewFromInt(1))
		paise -= 100
	}

	var b strings.Builder
	b.WriteString("INR ")
	if amount.IsNegative() && (!rupees.IsZero() || paise != 0) {
		b.WriteString("Minus ")
	}
	b.WriteString(integerWords(rupees))
	if paise > 0 {
		b.WriteString(" And ")
		b.WriteString(NumberToWords(paise))
		b.WriteString(" Paise")
	}
	b.WriteString(" Only")
	return b.String()
}

// NumberToWords spells an integer using lakh and crore grouping: the lowest
// three digits, then two-digit groups for thousand and lakh, with everything
// above a crore spelled recursively.
func NumberToWords(n int64) string {
	return integerWords(decimal.NewFromInt(n))
}

// integerWords spells the integer part of n. Crore groups are split off in
// decimal so amounts beyond int64 are spelled in full.
func integerWords(n decimal.Decimal) string {
	n = n.Truncate(0)
	if n.IsZero() {
		return "Zero"
	}
	if n.IsNegative() {
		return "Minus " + integerWords(n.Neg())
	}

	var parts []string
	if n.GreaterThanOrEqual(crore) {
		q, r := n.QuoRem(crore, 0)
		parts = append(parts, integerWords(q), "Crore")
		n = r
	}
	if rest := belowCrore(n.IntPart()); rest != "" {
		parts = append(parts, rest)
	}
	return strings.Join(parts, " ")
}

func belowCrore(n int64) string {
	var parts []string
	if n >= lakh {
		parts = append(parts, belowHundred(n/lakh), "Lakh")
		n %= lakh
	}
	if n >= thousand {
		parts = append(parts, belowHundred(n/thousand), "Thousand")
		n %= thousand
	}
	if n >= 100 {
		parts = append(parts, ones[n/100], "Hundred")
		n %= 100
	}
	if n > 0 {
		parts = append(parts, belowHundred(n))
	}
	return strings.Join(parts, " ")
}

func belowHundred(n int64) string {
	if n < 20 {
		return ones[n]
	}
	if n%10 == 0 {
		return tens[n/10]
	}
	return tens[n/10] + " " + ones[n%10]
}
