package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateEmptyBoardCountsEveryWindow(t *testing.T) {
	// With every window scoring 1, the result is the number of four-cell
	// windows on a 7x6 board: 24 horizontal + 21 vertical + 12 + 12 diagonal.
	eval := NewEvaluator(NewScoreTable(map[string]int{"0000": 1}))
	assert.Equal(t, 69, eval.Evaluate(NewBoard(), PlayerOne))
}

func TestEvaluateSinglePieceWindowMembership(t *testing.T) {
	table := NewScoreTable(map[string]int{
		"1000": 1, "0100": 1, "0010": 1, "0001": 1,
	})
	eval := NewEvaluator(table)

	b := NewBoard()
	_, err := b.Drop(3, PlayerOne)
	require.NoError(t, err)
	// The bottom-center cell sits in 4 horizontal, 1 vertical and 2 diagonal
	// windows.
	assert.Equal(t, 7, eval.Evaluate(b, PlayerOne))

	b = NewBoard()
	_, err = b.Drop(0, PlayerOne)
	require.NoError(t, err)
	// A corner cell only reaches 3 windows.
	assert.Equal(t, 3, eval.Evaluate(b, PlayerOne))
}

func TestEvaluateIsPlayerRelative(t *testing.T) {
	table := NewScoreTable(map[string]int{
		"1000": 5, "0100": 5, "0010": 5, "0001": 5,
		"2000": -1, "0200": -1, "0020": -1, "0002": -1,
	})
	eval := NewEvaluator(table)

	b := NewBoard()
	_, err := b.Drop(0, PlayerOne)
	require.NoError(t, err)

	// The same board reads differently per perspective: PlayerOne sees its
	// own piece (3 windows x 5), PlayerTwo sees an opponent piece.
	assert.Equal(t, 15, eval.Evaluate(b, PlayerOne))
	assert.Equal(t, -3, eval.Evaluate(b, PlayerTwo))
}

func TestEvaluateIsPure(t *testing.T) {
	table := NewScoreTable(map[string]int{"1100": 7, "0011": 7})
	eval := NewEvaluator(table)
	b := NewBoard()
	playMoves(t, b, [2]int{2, 1}, [2]int{5, 2}, [2]int{3, 1})

	first := eval.Evaluate(b, PlayerOne)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, eval.Evaluate(b, PlayerOne))
	}
}

func TestEvaluateDoesNotMutateBoard(t *testing.T) {
	eval := NewEvaluator(NewScoreTable(map[string]int{"1111": 10000}))
	b := NewBoard()
	playMoves(t, b, [2]int{3, 1}, [2]int{4, 2})
	snapshot := *b
	eval.Evaluate(b, PlayerOne)
	eval.Evaluate(b, PlayerTwo)
	assert.Equal(t, snapshot, *b)
}
