package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"slash dates read day first", "04/05/2023", "2023-05-04"},
		{"unambiguous slash date", "25/12/2023", "2023-12-25"},
		{"iso passthrough", "2023-05-04", "2023-05-04"},
		{"long form", "May 4, 2023", "2023-05-04"},
		{"day month year words", "4 May 2023", "2023-05-04"},
		{"two digit slash year", "04/05/23", "2023-05-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseDateUnparseable(t *testing.T) {
	for _, in := range []string{"", "   ", "not a date", "99/99/9999"} {
		t.Run("input "+in, func(t *testing.T) {
			_, err := ParseDate(in)
			assert.Error(t, err)
		})
	}
}
