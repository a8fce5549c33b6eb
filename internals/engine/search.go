package engine

import "math"

// WinScore is the terminal win value. It must dominate any sum the evaluator
// can produce: the board has 69 four-cell windows and knowledge-base entries
// stay within ±10000, so any static score is within ±690000. A forced win is
// therefore always preferred over any non-terminal position, and a forced
// loss always avoided in favor of one.
const WinScore = 1_000_000

// Searcher runs a fixed-depth minimax with alpha-beta pruning, falling back
// to the injected evaluator at the depth frontier. It is stateless between
// calls; each BestMove invocation owns its board scratch space exclusively
// through the Drop/Undo protocol.
type Searcher struct {
	eval *Evaluator
}

func NewSearcher(eval *Evaluator) *Searcher {
	return &Searcher{eval: eval}
}

// BestMove returns the column with the highest minimax score for p at the
// given depth, ties broken by the lowest column. It fails with
// ErrNoMovesAvailable when maxDepth is not positive or the board is full;
// it never selects a full column.
func (s *Searcher) BestMove(b *Board, maxDepth int, p Player) (int, error) {
	move, _, err := s.BestMoveScore(b, maxDepth, p)
	return move, err
}

// BestMoveScore is BestMove plus the score of the chosen line, exposed for
// diagnostics and explanation strings.
func (s *Searcher) BestMoveScore(b *Board, maxDepth int, p Player) (int, int, error) {
	if maxDepth <= 0 {
		return -1, 0, ErrNoMovesAvailable
	}
	moves := b.LegalMoves()
	if len(moves) == 0 {
		return -1, 0, ErrNoMovesAvailable
	}

	bestCol := moves[0]
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt
	for _, col := range moves {
		b.Drop(col, p)
		score := s.search(b, p, maxDepth-1, false, alpha, beta)
		b.Undo(col)
		if score > bestScore {
			bestScore = score
			bestCol = col
		}
		if bestScore > alpha {
			alpha = bestScore
		}
	}
	return bestCol, bestScore, nil
}

// search is the recursive alpha-beta minimax. The maximizing side is always
// the player handed to BestMove; depth is plies remaining before the frontier.
// Terminal wins score WinScore + depth so that a shallower win (more depth
// left) beats a deeper one, and the mirrored loss value prefers the most
// delayed loss. Moves are explored in ascending column order and a node stops
// exploring once alpha >= beta.
func (s *Searcher) search(b *Board, p Player, depth int, maximizing bool, alpha, beta int) int {
	if b.HasWon(p) {
		return WinScore + depth
	}
	if b.HasWon(p.Opponent()) {
		return -(WinScore + depth)
	}
	if depth == 0 || b.IsFull() {
		return s.eval.Evaluate(b, p)
	}

	if maximizing {
		best := math.MinInt
		for _, col := range b.LegalMoves() {
			b.Drop(col, p)
			score := s.search(b, p, depth-1, false, alpha, beta)
			b.Undo(col)
			if score > best {
				best = score
			}
			if best > alpha {
				alpha = best
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := math.MaxInt
	for _, col := range b.LegalMoves() {
		b.Drop(col, p.Opponent())
		score := s.search(b, p, depth-1, true, alpha, beta)
		b.Undo(col)
		if score < best {
			best = score
		}
		if best < beta {
			beta = best
		}
		if alpha >= beta {
			break
		}
	}
	return best
}
