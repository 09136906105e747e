package console

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitize(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"Plain", "2", "2", nil},
		{"Escape Sequence", "\x1b[31m1\x1b[0m", "[31m1[0m", nil},
		{"Keeps Tab", "\t3", "\t3", nil},
		{"Drops Newline", "1\r\n", "1", nil},
		{"Invalid UTF8", "\xff", "", ErrInvalidUTF8},
		{"Over Limit", strings.Repeat("a", DefaultMaxInputSize+1), "", ErrInputTooLarge},
		{"Exact Limit", strings.Repeat("a", DefaultMaxInputSize), strings.Repeat("a", DefaultMaxInputSize), nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Sanitize(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitize_EnvLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "4")
	_, err := Sanitize("12345")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	t.Setenv(EnvMaxInputSize, "bogus")
	_, err = Sanitize("12345")
	assert.NoError(t, err)
}
