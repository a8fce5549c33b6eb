package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTableFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "patterns.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadScoreTable(t *testing.T) {
	path := writeTableFile(t, "# comment\n1111 10000\n0111 50\n\n2220 -80\n")
	table, err := LoadScoreTable(path)
	require.NoError(t, err)
	assert.Equal(t, 3, table.Len())
	assert.Equal(t, 10000, table.Score("1111"))
	assert.Equal(t, 50, table.Score("0111"))
	assert.Equal(t, -80, table.Score("2220"))
}

func TestScoreMissingPatternDefaultsToZero(t *testing.T) {
	table := NewScoreTable(map[string]int{"1111": 10000})
	assert.Equal(t, 0, table.Score("1212"))
	assert.Equal(t, 0, table.Score("0000"))
}

func TestLoadScoreTableMissingFile(t *testing.T) {
	_, err := LoadScoreTable(filepath.Join(t.TempDir(), "absent.txt"))
	assert.Error(t, err)
}

func TestLoadScoreTableMalformed(t *testing.T) {
	cases := []struct {
		name    string
		content string
	}{
		{"wrong field count", "1111 10000\n0111\n"},
		{"bad score", "1111 ten-thousand\n"},
		{"wrong pattern length", "111 50\n"},
		{"bad pattern symbol", "1131 50\n"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadScoreTable(writeTableFile(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line", "load error should identify the offending line")
		})
	}
}

func TestLoadScoreTableMalformedLineNumber(t *testing.T) {
	_, err := LoadScoreTable(writeTableFile(t, "1111 10000\n0111 50\nbogus line here\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "line 3")
}

func TestLoadDefaultKnowledgeBase(t *testing.T) {
	table, err := LoadScoreTable(filepath.Join("..", "..", "eval", "patterns.txt"))
	require.NoError(t, err)
	assert.Equal(t, 30, table.Len())
	assert.Equal(t, 10000, table.Score("1111"))
	assert.Equal(t, -10000, table.Score("2222"))
	assert.Equal(t, 0, table.Score("1212"), "mixed windows are not in the shipped table")
}
