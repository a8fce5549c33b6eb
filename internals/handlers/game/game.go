package game

import (
	"fmt"
	"sync"
	"time"

	"connect4-agent/internals/engine"
)

// Game is one live match. Board state and rules live in the engine package;
// the session adds player identities, turn tracking and the move log.
type Game struct {
	ID        string
	Board     *engine.Board
	Player1   string
	Player2   string
	Turn      engine.Player
	Mutex     sync.Mutex
	Over      bool
	Moves     []string
	StartTime time.Time
}

func NewGame(id, p1, p2 string) *Game {
	return &Game{
		ID:        id,
		Board:     engine.NewBoard(),
		Player1:   p1,
		Player2:   p2,
		Turn:      engine.PlayerOne,
		Moves:     make([]string, 0),
		StartTime: time.Now(),
	}
}

// PlaceDisc drops a disc for player into col, appends it to the move log and
// passes the turn. Returns the landing row.
func (g *Game) PlaceDisc(player engine.Player, col int) (int, error) {
	if player != g.Turn {
		return -1, fmt.Errorf("not %s's turn", player)
	}
	row, err := g.Board.Drop(col, player)
	if err != nil {
		return -1, err
	}
	g.Moves = append(g.Moves, fmt.Sprintf("%d:%d", col, player))
	g.Turn = g.Turn.Opponent()
	return row, nil
}

// CheckWin reports whether the disc just placed at (row, col) won the game.
func (g *Game) CheckWin(row, col int, player engine.Player) bool {
	return g.Board.WinsAt(row, col, player)
}

// CheckDraw reports whether the board is full with no winner possible.
func (g *Game) CheckDraw() bool {
	return g.Board.IsFull()
}

// Grid renders the board as rows of cell values, top row first, for clients
// that draw the grid from the top down.
func (g *Game) Grid() [][]int {
	grid := make([][]int, engine.Rows)
	for r := 0; r < engine.Rows; r++ {
		rowCells := make([]int, engine.Cols)
		for c := 0; c < engine.Cols; c++ {
			rowCells[c] = int(g.Board.Cell(engine.Rows-1-r, c))
		}
		grid[r] = rowCells
	}
	return grid
}
