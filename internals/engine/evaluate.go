package engine

// Evaluator scores static positions by summing the table score of every
// four-cell window on the board. It holds a reference to the shared, read-only
// score table injected at construction time.
type Evaluator struct {
	table *ScoreTable
}

func NewEvaluator(table *ScoreTable) *Evaluator {
	return &Evaluator{table: table}
}

// Evaluate returns the position score from p's perspective. Every window of
// WinLength cells is visited in a fixed order (all horizontal, then vertical,
// then rising diagonals, then falling diagonals), translated into a pattern as
// seen by p ('1' own piece, '2' opponent, '0' empty), looked up in the table
// and summed. Purely a function of (board, player); patterns absent from the
// table contribute 0.
func (e *Evaluator) Evaluate(b *Board, p Player) int {
	score := 0
	var window [WinLength]byte

	// Horizontal
	for r := 0; r < Rows; r++ {
		for c := 0; c+WinLength <= Cols; c++ {
			for i := 0; i < WinLength; i++ {
				window[i] = cellSymbol(b.cells[r][c+i], p)
			}
			score += e.table.Score(string(window[:]))
		}
	}
	// Vertical
	for c := 0; c < Cols; c++ {
		for r := 0; r+WinLength <= Rows; r++ {
			for i := 0; i < WinLength; i++ {
				window[i] = cellSymbol(b.cells[r+i][c], p)
			}
			score += e.table.Score(string(window[:]))
		}
	}
	// Rising diagonal
	for r := 0; r+WinLength <= Rows; r++ {
		for c := 0; c+WinLength <= Cols; c++ {
			for i := 0; i < WinLength; i++ {
				window[i] = cellSymbol(b.cells[r+i][c+i], p)
			}
			score += e.table.Score(string(window[:]))
		}
	}
	// Falling diagonal
	for r := 0; r+WinLength <= Rows; r++ {
		for c := WinLength - 1; c < Cols; c++ {
			for i := 0; i < WinLength; i++ {
				window[i] = cellSymbol(b.cells[r+i][c-i], p)
			}
			score += e.table.Score(string(window[:]))
		}
	}
	return score
}

func cellSymbol(cell, p Player) byte {
	switch cell {
	case Empty:
		return '0'
	case p:
		return '1'
	}
	return '2'
}
