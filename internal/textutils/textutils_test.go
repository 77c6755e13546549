package textutils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFixEncoding(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"Empty string", "", ""},
		{"Plain ASCII unchanged", "Lightning Bolt", "Lightning Bolt"},
		{"Mojibake umlaut repaired", "MÃ¼nchen", "München"},
		{"Mojibake sharp s repaired", "StraÃe", "Straße"},
		{"Proper UTF-8 left alone", "München", "München"},
		{"Rune outside Latin-1 left alone", "東京", "東京"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, FixEncoding(tc.input))
		})
	}
}

func TestCleanSpace(t *testing.T) {
	assert.Equal(t, "12345 Bad Homburg", CleanSpace("  12345   Bad  Homburg "))
	assert.Equal(t, "", CleanSpace("   "))
}
