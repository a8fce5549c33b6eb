package engine

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ScoreTable maps a player-relative line pattern to its desirability score.
// Patterns are WinLength characters over the alphabet '0' (empty), '1' (the
// evaluating player's pieces), '2' (opponent pieces). The table is built once
// at startup and read-only afterwards, so it is safe to share between
// concurrent evaluator calls.
type ScoreTable struct {
	scores map[string]int
}

// NewScoreTable builds a table from an in-memory map. Used by tests to drive
// the evaluator with synthetic scores.
func NewScoreTable(entries map[string]int) *ScoreTable {
	scores := make(map[string]int, len(entries))
	for pattern, score := range entries {
		scores[pattern] = score
	}
	return &ScoreTable{scores: scores}
}

// LoadScoreTable reads a knowledge-base file of "PATTERN SCORE" records, one
// per line. Blank lines and lines starting with '#' are skipped. The load is
// strict: a missing file or a malformed record fails with the offending line
// identified, rather than leaving a partially filled table behind.
func LoadScoreTable(path string) (*ScoreTable, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open score table: %w", err)
	}
	defer f.Close()

	scores := make(map[string]int)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("score table %s line %d: want \"PATTERN SCORE\", got %q", path, lineNo, line)
		}
		pattern := fields[0]
		if err := validatePattern(pattern); err != nil {
			return nil, fmt.Errorf("score table %s line %d: %w", path, lineNo, err)
		}
		score, err := strconv.Atoi(fields[1])
		if err != nil {
			return nil, fmt.Errorf("score table %s line %d: bad score %q", path, lineNo, fields[1])
		}
		scores[pattern] = score
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read score table %s: %w", path, err)
	}
	return &ScoreTable{scores: scores}, nil
}

func validatePattern(pattern string) error {
	if len(pattern) != WinLength {
		return fmt.Errorf("pattern %q: want length %d", pattern, WinLength)
	}
	for _, ch := range pattern {
		if ch != '0' && ch != '1' && ch != '2' {
			return fmt.Errorf("pattern %q: cell must be 0, 1 or 2", pattern)
		}
	}
	return nil
}

// Score returns the score for a pattern, or 0 when the pattern is not in the
// table. Missing patterns are not errors by contract.
func (t *ScoreTable) Score(pattern string) int {
	return t.scores[pattern]
}

// Len returns the number of loaded patterns.
func (t *ScoreTable) Len() int {
	return len(t.scores)
}
