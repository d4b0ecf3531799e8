package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "already clean",
			input:    "alice",
			expected: "alice",
		},
		{
			name:     "invalid characters removed",
			input:    `a/b\c:d*e?f"g<h>i|j`,
			expected: "abcdefghij",
		},
		{
			name:     "whitespace normalized",
			input:    "some\tuser\nname",
			expected: "some user name",
		},
		{
			name:     "multiple spaces collapsed",
			input:    "a    b",
			expected: "a b",
		},
		{
			name:     "empty becomes untitled",
			input:    "   ",
			expected: "untitled",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

func TestSanitizeFilenameLimitsLength(t *testing.T) {
	long := strings.Repeat("x", 300)
	assert.LessOrEqual(t, len(SanitizeFilename(long)), 200)
}
