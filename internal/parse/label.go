package parse

import (
	"regexp"
	"strings"
)

var (
	labelSeparators = regexp.MustCompile(`[\s.:()#]`)
	labelUnderscore = regexp.MustCompile(`_+`)
)

// NormalizeLabel canonicalizes a detected field label so it can be matched
// against candidate keys: uppercased, separator punctuation folded into single
// underscores, leading and trailing underscores trimmed.
//
// "Invoice No." becomes "INVOICE_NO", "Total (GBP)" becomes "TOTAL_GBP".
func NormalizeLabel(raw string) string {
	s := strings.ToUpper(strings.TrimSpace(raw))
	s = labelSeparators.ReplaceAllString(s, "_")
	s = labelUnderscore.ReplaceAllString(s, "_")
	return strings.Trim(s, "_")
}
