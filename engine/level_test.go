package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLevel(t *testing.T) {
	tests := map[string]string{
		"1":        "1",
		"Level 1":  "1",
		"level-2":  "2",
		" 3 ":      "3",
		"Level 12": "12",
		"03":       "3",
		"Level 10 (final)": "10",
		"":        "",
		"intro":   "",
		"Level X": "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeLevel(in), "input %q", in)
	}
}

func TestLevelOrdinal(t *testing.T) {
	assert.Equal(t, 1, LevelOrdinal("Level 1"))
	assert.Equal(t, 12, LevelOrdinal("12"))
	assert.Equal(t, 0, LevelOrdinal("no digits"))
	assert.Equal(t, 0, LevelOrdinal(""))
}
