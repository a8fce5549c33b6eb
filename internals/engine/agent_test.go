package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hybridAgent(t *testing.T, depth int) *Agent {
	t.Helper()
	return NewAgent(StrategyHybridSearch, depth, defaultEvaluator(t))
}

func TestParseStrategy(t *testing.T) {
	s, err := ParseStrategy("rule")
	require.NoError(t, err)
	assert.Equal(t, StrategyRuleBased, s)

	s, err = ParseStrategy("hybrid")
	require.NoError(t, err)
	assert.Equal(t, StrategyHybridSearch, s)

	_, err = ParseStrategy("alphazero")
	assert.Error(t, err)
}

func TestSelectMoveWinOutranksBlock(t *testing.T) {
	// Both sides have a completable vertical three. The hybrid policy takes
	// its own win instead of blocking: victory-now outranks loss aversion.
	b := NewBoard()
	playMoves(t, b,
		[2]int{1, 1}, [2]int{5, 2},
		[2]int{1, 1}, [2]int{5, 2},
		[2]int{1, 1}, [2]int{5, 2},
	)
	col, reason, err := hybridAgent(t, 4).SelectMove(b, PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, 1, col)
	assert.Equal(t, ReasonWin, reason)
}

func TestSelectMoveBlocksWithoutSearching(t *testing.T) {
	// PlayerTwo is one move from winning vertically in column 4. The block
	// comes from the detector: an agent whose searcher would fail loudly
	// proves the search engine is never invoked.
	b := NewBoard()
	playMoves(t, b,
		[2]int{4, 2}, [2]int{0, 1},
		[2]int{4, 2}, [2]int{1, 1},
		[2]int{4, 2},
	)
	agent := NewAgent(StrategyHybridSearch, 0, NewEvaluator(NewScoreTable(nil)))
	col, reason, err := agent.SelectMove(b, PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, 4, col)
	assert.Equal(t, ReasonBlock, reason)
}

func TestSelectMoveFallsBackToSearch(t *testing.T) {
	col, reason, err := hybridAgent(t, 4).SelectMove(NewBoard(), PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, 3, col)
	assert.Equal(t, ReasonSearch, reason)
}

func TestSelectMoveRuleBased(t *testing.T) {
	agent := NewAgent(StrategyRuleBased, 4, defaultEvaluator(t))
	col, reason, err := agent.SelectMove(NewBoard(), PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, 3, col)
	assert.Equal(t, ReasonRule, reason)
}

func TestSelectMoveFullBoard(t *testing.T) {
	b := NewBoard()
	fillWithoutWinner(t, b)
	for _, strategy := range []Strategy{StrategyRuleBased, StrategyHybridSearch} {
		agent := NewAgent(strategy, 4, defaultEvaluator(t))
		_, _, err := agent.SelectMove(b, PlayerOne)
		assert.ErrorIs(t, err, ErrNoMovesAvailable, "strategy %s", strategy)
	}
}

func TestSelectMoveDoubleThreatBlocksFirstColumn(t *testing.T) {
	// PlayerTwo holds 1,2,3 on the bottom row. The loss is unavoidable; the
	// policy still blocks the first threat it finds rather than recognizing
	// the double threat.
	b := NewBoard()
	playMoves(t, b,
		[2]int{6, 1}, [2]int{1, 2},
		[2]int{5, 1}, [2]int{2, 2},
		[2]int{6, 1}, [2]int{3, 2},
	)
	col, reason, err := hybridAgent(t, 4).SelectMove(b, PlayerOne)
	require.NoError(t, err)
	assert.Equal(t, 0, col)
	assert.Equal(t, ReasonBlock, reason)
}
