package parse

import (
	"strings"

	"github.com/shopspring/decimal"
)

var currencySymbolReplacer = strings.NewReplacer("$", "", "£", "", "€", "")

// ParseDecimal turns detected monetary text into a decimal value. It copes with
// currency symbols, thousands separators in both US and European styles, and
// accounting-style parentheses for negatives. A nil result means the text held
// no usable number; the caller treats that as a missing value, not an error.
func ParseDecimal(raw string) *decimal.Decimal {
	s := strings.TrimSpace(currencySymbolReplacer.Replace(raw))
	if s == "" {
		return nil
	}

	hasComma := strings.Contains(s, ",")
	hasDot := strings.Contains(s, ".")

	switch {
	case hasComma && hasDot:
		// Whichever separator appears last is the decimal point; the other is
		// a thousands separator. Handles "1,234.56" and "1.234,56" alike.
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case hasComma:
		// A comma is a decimal separator only when it is the sole comma and the
		// digits after it do not look like a thousands group: "12,5" is 12.5 but
		// "1,234" is 1234 and "1,234,5" strips every comma.
		tail := s[strings.LastIndex(s, ",")+1:]
		if strings.Count(s, ",") == 1 && len(onlyDigits(tail)) != 3 {
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = s[1 : len(s)-1]
	}

	s = stripNonNumeric(s)

	// Keep only the first dot; OCR sometimes doubles the decimal point.
	if first := strings.Index(s, "."); first != -1 {
		s = s[:first+1] + strings.ReplaceAll(s[first+1:], ".", "")
	}

	if s == "" || s == "-" || s == "." {
		return nil
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil
	}
	if negative {
		d = d.Neg()
	}
	return &d
}

func onlyDigits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func stripNonNumeric(s string) string {
	var b strings.Builder
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
