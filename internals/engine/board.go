package engine

import "errors"

// Board dimensions for a standard Connect-4 grid.
const (
	Rows      = 6
	Cols      = 7
	WinLength = 4
)

// Player identifies who owns a cell. Empty marks an unoccupied cell.
type Player int

const (
	Empty Player = iota
	PlayerOne
	PlayerTwo
)

var (
	ErrIllegalMove      = errors.New("illegal move: column is full or out of range")
	ErrEmptyColumn      = errors.New("cannot undo: column is empty")
	ErrNoMovesAvailable = errors.New("no moves available")
)

// Opponent returns the other player. Calling it on Empty returns Empty.
func (p Player) Opponent() Player {
	switch p {
	case PlayerOne:
		return PlayerTwo
	case PlayerTwo:
		return PlayerOne
	}
	return Empty
}

func (p Player) String() string {
	switch p {
	case PlayerOne:
		return "player1"
	case PlayerTwo:
		return "player2"
	}
	return "empty"
}

// Board is the game grid. Row 0 is the bottom row, so heights[c] is both the
// number of pieces in column c and the row the next piece in c lands on.
// Cells at or above heights[c] in a column are always Empty.
type Board struct {
	cells   [Rows][Cols]Player
	heights [Cols]int
	moves   int
}

func NewBoard() *Board {
	return &Board{}
}

// Cell returns the occupant of (row, col), row 0 at the bottom.
func (b *Board) Cell(row, col int) Player {
	return b.cells[row][col]
}

// MoveCount returns how many pieces have been dropped so far.
func (b *Board) MoveCount() int {
	return b.moves
}

// Height returns the number of pieces in a column.
func (b *Board) Height(col int) int {
	return b.heights[col]
}

// LegalMoves returns every non-full column in ascending order. The search
// iterates moves in exactly this order, so it also fixes which of several
// equally scored columns gets picked.
func (b *Board) LegalMoves() []int {
	moves := make([]int, 0, Cols)
	for c := 0; c < Cols; c++ {
		if b.heights[c] < Rows {
			moves = append(moves, c)
		}
	}
	return moves
}

// Drop places a piece for p into the lowest empty cell of col and returns the
// row it landed on. Returns ErrIllegalMove if col is out of range or full.
func (b *Board) Drop(col int, p Player) (int, error) {
	if col < 0 || col >= Cols || b.heights[col] >= Rows {
		return -1, ErrIllegalMove
	}
	row := b.heights[col]
	b.cells[row][col] = p
	b.heights[col]++
	b.moves++
	return row, nil
}

// Undo removes the topmost piece from col. It is the exact inverse of Drop:
// Undo after Drop on the same column restores the previous board.
func (b *Board) Undo(col int) error {
	if col < 0 || col >= Cols {
		return ErrIllegalMove
	}
	if b.heights[col] == 0 {
		return ErrEmptyColumn
	}
	b.heights[col]--
	b.cells[b.heights[col]][col] = Empty
	b.moves--
	return nil
}

// IsFull reports whether no legal moves remain.
func (b *Board) IsFull() bool {
	return b.moves == Rows*Cols
}

// HasWon scans the whole board for four in a row belonging to p.
func (b *Board) HasWon(p Player) bool {
	// Horizontal
	for r := 0; r < Rows; r++ {
		for c := 0; c+WinLength <= Cols; c++ {
			if b.cells[r][c] == p && b.cells[r][c+1] == p && b.cells[r][c+2] == p && b.cells[r][c+3] == p {
				return true
			}
		}
	}
	// Vertical
	for c := 0; c < Cols; c++ {
		for r := 0; r+WinLength <= Rows; r++ {
			if b.cells[r][c] == p && b.cells[r+1][c] == p && b.cells[r+2][c] == p && b.cells[r+3][c] == p {
				return true
			}
		}
	}
	// Rising diagonal
	for r := 0; r+WinLength <= Rows; r++ {
		for c := 0; c+WinLength <= Cols; c++ {
			if b.cells[r][c] == p && b.cells[r+1][c+1] == p && b.cells[r+2][c+2] == p && b.cells[r+3][c+3] == p {
				return true
			}
		}
	}
	// Falling diagonal
	for r := 0; r+WinLength <= Rows; r++ {
		for c := WinLength - 1; c < Cols; c++ {
			if b.cells[r][c] == p && b.cells[r+1][c-1] == p && b.cells[r+2][c-2] == p && b.cells[r+3][c-3] == p {
				return true
			}
		}
	}
	return false
}

// WinsAt reports whether the piece at (row, col) completes four in a row for p.
// Cheaper than HasWon when the last move is known.
func (b *Board) WinsAt(row, col int, p Player) bool {
	dirs := [4][2]int{
		{0, 1},  // horizontal
		{1, 0},  // vertical
		{1, 1},  // rising diagonal
		{1, -1}, // falling diagonal
	}
	for _, d := range dirs {
		count := 1
		for r, c := row+d[0], col+d[1]; r >= 0 && r < Rows && c >= 0 && c < Cols && b.cells[r][c] == p; r, c = r+d[0], c+d[1] {
			count++
		}
		for r, c := row-d[0], col-d[1]; r >= 0 && r < Rows && c >= 0 && c < Cols && b.cells[r][c] == p; r, c = r-d[0], c-d[1] {
			count++
		}
		if count >= WinLength {
			return true
		}
	}
	return false
}

// Clone returns an independent copy of the board. The search never needs this
// (it uses Drop/Undo), but sessions hand copies to the agent so a live game
// board is never mutated by a search in flight.
func (b *Board) Clone() *Board {
	copied := *b
	return &copied
}
