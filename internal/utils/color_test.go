package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseColor(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected int
		wantErr  bool
	}{
		{
			name:     "hash hex",
			input:    "#FF8800",
			expected: 0xFF8800,
			wantErr:  false,
		},
		{
			name:     "lowercase hash hex",
			input:    "#a0b1c2",
			expected: 0xA0B1C2,
			wantErr:  false,
		},
		{
			name:     "0x prefix",
			input:    "0xFFFFFF",
			expected: 0xFFFFFF,
			wantErr:  false,
		},
		{
			name:     "plain decimal",
			input:    "255",
			expected: 255,
			wantErr:  false,
		},
		{
			name:     "surrounding whitespace",
			input:    "  #000000 ",
			expected: 0,
			wantErr:  false,
		},
		{
			name:    "negative value",
			input:   "-1",
			wantErr: true,
		},
		{
			name:    "out of RGB range",
			input:   "0x1000000",
			wantErr: true,
		},
		{
			name:    "invalid input",
			input:   "not-a-color",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := ParseColor(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result)
		})
	}
}

func TestColorToHexRGB(t *testing.T) {
	tests := []struct {
		name     string
		color    int
		expected string
	}{
		{
			name:     "white",
			color:    0xFFFFFF,
			expected: "#FFFFFF",
		},
		{
			name:     "black",
			color:    0,
			expected: "#000000",
		},
		{
			name:     "leading zeros kept",
			color:    0x0000FF,
			expected: "#0000FF",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ColorToHexRGB(tt.color))
		})
	}
}

func TestParseColorRoundTrip(t *testing.T) {
	for _, color := range []int{0, 0x336699, 0xFFFFFF} {
		parsed, err := ParseColor(ColorToHexRGB(color))
		require.NoError(t, err)
		assert.Equal(t, color, parsed)
	}
}
