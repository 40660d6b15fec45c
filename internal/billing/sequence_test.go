package billing_test

import (
	"testing"
	"time"

	"gstinvoice/m/internal/billing"
)

func march2024() time.Time {
	return time.Date(2024, time.March, 15, 10, 30, 0, 0, time.UTC)
}

func TestNextInvoiceNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		prefix   string
		now      time.Time
		want     string
	}{
		{
			name: "empty history",
			now:  march2024(), prefix: "INV",
			want: "INV/2024/03/0001",
		},
		{
			name:     "continues the current month",
			existing: []string{"INV/2024/03/0001", "INV/2024/03/0007", "INV/2024/02/0099"},
			now:      march2024(), prefix: "INV",
			want: "INV/2024/03/0008",
		},
		{
			name:     "month rollover restarts",
			existing: []string{"INV/2024/03/0001", "INV/2024/03/0007"},
			now:      time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC), prefix: "INV",
			want: "INV/2024/04/0001",
		},
		{
			name:     "year rollover restarts",
			existing: []string{"INV/2024/12/0042"},
			now:      time.Date(2025, time.December, 3, 0, 0, 0, 0, time.UTC), prefix: "INV",
			want: "INV/2025/12/0001",
		},
		{
			name:     "malformed numbers are skipped",
			existing: []string{"", "garbage", "INV/2024/03", "INV/2024/03/abc", "INV/20x4/03/0050", "INV/2024/03/0002"},
			now:      march2024(), prefix: "INV",
			want: "INV/2024/03/0003",
		},
		{
			name:     "empty prefix falls back to INV",
			existing: []string{"INV/2024/03/0004"},
			now:      march2024(),
			want:     "INV/2024/03/0005",
		},
		{
			name:     "other prefixes share the month scope",
			existing: []string{"GAS/2024/03/0010"},
			now:      march2024(), prefix: "INV",
			want: "INV/2024/03/0011",
		},
		{
			name:     "unpadded month still matches",
			existing: []string{"INV/2024/3/0009"},
			now:      march2024(), prefix: "INV",
			want: "INV/2024/03/0010",
		},
		{
			// Legacy SYYNNNN numbers carry no month, so the month scan ignores
			// them even though ParseSequence can read their sequence. Kept as
			// is until the intended behaviour for legacy history is settled.
			name:     "legacy numbers do not advance the sequence",
			existing: []string{"S240055", "S240056"},
			now:      march2024(), prefix: "INV",
			want: "INV/2024/03/0001",
		},
		{
			name:     "sequence grows past four digits",
			existing: []string{"INV/2024/03/9999"},
			now:      march2024(), prefix: "INV",
			want: "INV/2024/03/10000",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := billing.NextInvoiceNumber(tt.existing, tt.prefix, tt.now)
			if got != tt.want {
				t.Errorf("NextInvoiceNumber() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextInvoiceNumber_Idempotent(t *testing.T) {
	existing := []string{"INV/2024/03/0001", "INV/2024/03/0007"}
	a := billing.NextInvoiceNumber(existing, "INV", march2024())
	b := billing.NextInvoiceNumber(existing, "INV", march2024())
	if a != b {
		t.Errorf("repeated calls differ: %q vs %q", a, b)
	}
}

func TestParseSequence(t *testing.T) {
	tests := []struct {
		invoiceNo string
		want      int
	}{
		{"INV/2024/03/0007", 7},
		{"INV/2024/03/1234", 1234},
		{"S240056", 56},
		{"S249999", 9999},
		{"INV/2024/03/x", 0},
		{"INV/2024/03/-4", 0},
		{"S24005", 0},
		{"", 0},
	}
	for _, tt := range tests {
		if got := billing.ParseSequence(tt.invoiceNo); got != tt.want {
			t.Errorf("ParseSequence(%q) = %d, want %d", tt.invoiceNo, got, tt.want)
		}
	}
}
