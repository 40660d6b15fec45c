package billing_test

import (
	"math"
	"testing"

	"gstinvoice/m/internal/billing"
)

func TestToWords(t *testing.T) {
	tests := []struct {
		amount string
		want   string
	}{
		{"0", "INR Zero Only"},
		{"1", "INR One Only"},
		{"19", "INR Nineteen Only"},
		{"40", "INR Forty Only"},
		{"101", "INR One Hundred One Only"},
		{"1050", "INR One Thousand Fifty Only"},
		{"99999", "INR Ninety Nine Thousand Nine Hundred Ninety Nine Only"},
		{"100000", "INR One Lakh Only"},
		{"1234567.50", "INR Twelve Lakh Thirty Four Thousand Five Hundred Sixty Seven And Fifty Paise Only"},
		{"10000000", "INR One Crore Only"},
		{"1000000000", "INR One Hundred Crore Only"},
		{"123456789", "INR Twelve Crore Thirty Four Lakh Fifty Six Thousand Seven Hundred Eighty Nine Only"},
		{"0.75", "INR Zero And Seventy Five Paise Only"},
		{"10.005", "INR Ten And One Paise Only"},
		{"10.004", "INR Ten Only"},
		{"9.999", "INR Ten Only"},
		{"-1050", "INR Minus One Thousand Fifty Only"},
		{"-2.5", "INR Minus Two And Fifty Paise Only"},
		// beyond int64
		{"9223372036854775808", "INR Ninety Two Thousand Two Hundred Thirty Three Crore Seventy Two Lakh Three Thousand Six Hundred Eighty Five Crore Forty Seven Lakh Seventy Five Thousand Eight Hundred Eight Only"},
		{"10000000000000000000", "INR One Lakh Crore Crore Only"},
		{"100000000000000000000", "INR Ten Lakh Crore Crore Only"},
		{"-100000000000000000000.25", "INR Minus Ten Lakh Crore Crore And Twenty Five Paise Only"},
	}

	for _, tt := range tests {
		t.Run(tt.amount, func(t *testing.T) {
			if got := billing.ToWords(dec(tt.amount)); got != tt.want {
				t.Errorf("ToWords(%s) = %q, want %q", tt.amount, got, tt.want)
			}
		})
	}
}

func TestToWords_Idempotent(t *testing.T) {
	a := billing.ToWords(dec("1234567.50"))
	b := billing.ToWords(dec("1234567.50"))
	if a != b {
		t.Errorf("repeated calls differ: %q vs %q", a, b)
	}
}

func TestNumberToWords(t *testing.T) {
	tests := []struct {
		n    int64
		want string
	}{
		{0, "Zero"},
		{15, "Fifteen"},
		{70, "Seventy"},
		{999, "Nine Hundred Ninety Nine"},
		{100100, "One Lakh One Hundred"},
		{2000001, "Twenty Lakh One"},
		{-7, "Minus Seven"},
		{math.MinInt64, "Minus Ninety Two Thousand Two Hundred Thirty Three Crore Seventy Two Lakh Three Thousand Six Hundred Eighty Five Crore Forty Seven Lakh Seventy Five Thousand Eight Hundred Eight"},
	}
	for _, tt := range tests {
		if got := billing.NumberToWords(tt.n); got != tt.want {
			t.Errorf("NumberToWords(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}
