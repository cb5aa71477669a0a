package errors

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateID(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"object id", "665f1c2e9b1d4a0012345678", false},
		{"uuid", "550e8400-e29b-41d4-a716-446655440000", false},
		{"short", "1", false},
		{"with underscore", "cat_42", false},

		{"empty", "", true},
		{"too long", strings.Repeat("a", 129), true},
		{"path traversal", "..", true},
		{"slash", "a/b", true},
		{"backslash", "a\\b", true},
		{"query", "a?b=1", true},
		{"fragment", "a#b", true},
		{"percent", "a%2Fb", true},
		{"space", "a b", true},
		{"null byte", "a\x00b", true},
		{"newline", "a\nb", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateID(tt.input)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, ErrCodeInvalidID, GetCode(err))
		})
	}
}

func TestValidateFormat(t *testing.T) {
	assert.NoError(t, ValidateFormat("svg", "svg", "dot", "json"))

	err := ValidateFormat("pdf", "svg", "dot", "json")
	require.Error(t, err)
	assert.True(t, Is(err, ErrCodeInvalidFormat))
	assert.Contains(t, err.Error(), "svg, dot, json")
}
