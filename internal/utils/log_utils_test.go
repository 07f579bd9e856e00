package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSanitizeLogString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "Empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "Normal string",
			input:    "Rapat Direksi",
			expected: "Rapat Direksi",
		},
		{
			name:     "Format specifiers are kept",
			input:    "Rapat %s dan %d",
			expected: "Rapat %s dan %d",
		},
		{
			name:     "String with newlines",
			input:    "First line\nSecond line\r\nThird line",
			expected: "First line Second line Third line",
		},
		{
			name:     "Long string truncation",
			input:    strings.Repeat("A", 300),
			expected: strings.Repeat("A", MaxLogStringLength) + "... (truncated)",
		},
		{
			name:     "String with control characters",
			input:    "Rapat\twith\x00control\x1Fcharacters",
			expected: "Rapat with control characters",
		},
		{
			name:     "String with script tags",
			input:    "Rapat <script>alert('hacked!');</script>",
			expected: "Rapat <script>alert('hacked!');</script>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeLogString(tt.input))
		})
	}
}

func TestSanitizeLogStringKeepsRunesIntact(t *testing.T) {
	// 199 ASCII bytes followed by a two byte rune straddling the limit
	input := strings.Repeat("a", MaxLogStringLength-1) + "é" + strings.Repeat("b", 10)

	result := SanitizeLogString(input)
	assert.Equal(t, strings.Repeat("a", MaxLogStringLength-1)+"... (truncated)", result)
}

func TestSafeString(t *testing.T) {
	field := SafeString("title", "Rapat\nDireksi")

	assert.Equal(t, "title", field.Key)
	assert.Equal(t, zapcore.StringType, field.Type)
	assert.Equal(t, "Rapat Direksi", field.String)
}
