package engine

// Critical-move detection: one-ply scans that spot a move winning on the spot,
// or the move needed to deny the opponent one. These run before the deliberate
// search and short-circuit it entirely when they hit.

// FindWinningMove returns the first column (ascending order) where dropping a
// piece wins immediately for p, and whether such a column exists. Each
// candidate is applied hypothetically and undone before moving on.
func FindWinningMove(b *Board, p Player) (int, bool) {
	for _, col := range b.LegalMoves() {
		row, err := b.Drop(col, p)
		if err != nil {
			continue
		}
		won := b.WinsAt(row, col, p)
		b.Undo(col)
		if won {
			return col, true
		}
	}
	return -1, false
}

// FindBlockingMove returns the first column where p's opponent would win
// immediately if allowed to play it, i.e. the move p must take to block.
// When the opponent has more than one winning reply (a double threat) only
// the first is returned; the loss is then unavoidable and this detector makes
// no attempt to recognize that.
func FindBlockingMove(b *Board, p Player) (int, bool) {
	return FindWinningMove(b, p.Opponent())
}
