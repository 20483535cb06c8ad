package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		// Typos within edit distance 2
		{"conert", "convert"},
		{"convrt", "convert"},
		{"chek", "check"},
		{"chekc", "check"},
		{"expresion", "expression"},
		{"mpc", "mcp"},
		{"versio", "version"},
		{"hep", "help"},

		// Too far - no suggestion (distance > 2)
		{"xyz", ""},
		{"foobar", ""},
		{"validate", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, suggestCommand(tt.input))
		})
	}
}

func TestEditDistance(t *testing.T) {
	assert.Equal(t, 0, editDistance("check", "check"))
	assert.Equal(t, 1, editDistance("check", "chek"))
	assert.Equal(t, 3, editDistance("", "mcp"))
	assert.Equal(t, 2, editDistance("ab", "ba"))
}

func TestRunUnknownCommand(t *testing.T) {
	err := run(context.Background(), "conert", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `did you mean "convert"?`)
}

func TestRunVersionAndHelp(t *testing.T) {
	assert.NoError(t, run(context.Background(), "version", []string{"--long"}))
	assert.NoError(t, run(context.Background(), "help", nil))
}
