package parse

import (
	"fmt"
	"strings"

	"github.com/araddon/dateparse"
)

// ParseDate normalizes detected date text to ISO YYYY-MM-DD. Slash-separated
// dates are read day-first, the convention on UK and EU invoices; everything
// else (ISO, "May 4, 2023", dashed numerics) is read with the parser's default
// month-first preference.
func ParseDate(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty date")
	}

	var opts []dateparse.ParserOption
	if strings.Contains(s, "/") {
		opts = append(opts, dateparse.PreferMonthFirst(false))
	}

	t, err := dateparse.ParseAny(s, opts...)
	if err != nil {
		return "", fmt.Errorf("unparseable date %q: %w", s, err)
	}
	return t.Format("2006-01-02"), nil
}
