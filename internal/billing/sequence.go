package billing

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultPrefix is used when no invoice prefix is configured.
const DefaultPrefix = "INV"

var legacyNumber = regexp.MustCompile(`S\d{2}(\d{4})$`)

// NextInvoiceNumber returns PREFIX/YYYY/MM/NNNN for the month of now, one past
// the highest sequence already issued in that month. Numbering restarts at
// 0001 every month.
//
// Only four-part slash numbers take part in the month scan; the prefix token
// of a stored number is not compared. Legacy SYYNNNN numbers carry no month
// and are never counted, even though ParseSequence understands them.
func NextInvoiceNumber(existing []string, prefix string, now time.Time) string {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	year, month := now.Year(), int(now.Month())

	maxSeq := 0
	for _, no := range existing {
		if !inScope(no, year, month) {
			continue
		}
		if seq := ParseSequence(no); seq > maxSeq {
			maxSeq = seq
		}
	}
	return FormatInvoiceNumber(prefix, year, month, maxSeq+1)
}

// FormatInvoiceNumber builds PREFIX/YYYY/MM/NNNN.
func FormatInvoiceNumber(prefix string, year, month, seq int) string {
	return fmt.Sprintf("%s/%04d/%02d/%04d", prefix, year, month, seq)
}

// ParseSequence extracts the running number from either PREFIX/YYYY/MM/NNNN or
// the legacy SYYNNNN form. Anything else yields 0.
func ParseSequence(invoiceNo string) int {
	if parts := strings.Split(invoiceNo, "/"); len(parts) == 4 {
		seq, err := strconv.Atoi(parts[3])
		if err != nil || seq < 0 {
			return 0
		}
		return seq
	}
	if m := legacyNumber.FindStringSubmatch(invoiceNo); m != nil {
		seq, _ := strconv.Atoi(m[1])
		return seq
	}
	return 0
}

func inScope(invoiceNo string, year, month int) bool {
	parts := strings.Split(invoiceNo, "/")
	if len(parts) != 4 {
		return false
	}
	y, err := strconv.Atoi(parts[1])
	if err != nil {
		return false
	}
	m, err := strconv.Atoi(parts[2])
	if err != nil {
		return false
	}
	return y == year && m == month
}
