package engine

// Rule-based agent: scores each playable column directly from hand-written
// threat rules, with no lookahead and no dependence on the pattern table.
// This is the "fast, explicit" sibling of the hybrid agent.

const (
	ruleWinningLine  = 10000
	ruleOpenThree    = 5000
	ruleHalfThree    = 1000
	ruleFullColumn   = -99999
	ruleDefenseBoost = 1.1
)

// the four scan axes; the opposite direction is the negation.
var ruleAxes = [4][2]int{
	{0, 1},  // horizontal
	{1, 0},  // vertical
	{1, 1},  // rising diagonal
	{1, -1}, // falling diagonal
}

// RuleMove scores every column and returns the best one, ties broken by the
// lowest column. Each candidate landing cell is rated by the strongest line
// it would join for the mover, against the strongest opponent line it would
// block (weighted slightly heavier, favoring defense), minus a penalty for
// moves that hand the opponent a winning cell directly above. On a blank
// scoresheet the center columns win by default. Returns -1 when the board is
// full.
func RuleMove(b *Board, p Player) int {
	opp := p.Opponent()
	var scores [Cols]float64
	anyThreat := false
	anyLegal := false

	for c := 0; c < Cols; c++ {
		if b.heights[c] >= Rows {
			scores[c] = ruleFullColumn
			continue
		}
		anyLegal = true
		r := b.heights[c]

		attack := float64(lineThreat(b, r, c, p))
		defense := float64(lineThreat(b, r, c, opp)) * ruleDefenseBoost
		score := attack
		if defense > score {
			score = defense
		}
		score += float64(setupRisk(b, c, p))
		scores[c] = score
		if score != 0 {
			anyThreat = true
		}
	}
	if !anyLegal {
		return -1
	}

	// Opening position: nothing scored, prefer the center.
	if !anyThreat {
		defaults := [Cols]float64{1, 2, 5, 10, 5, 2, 1}
		for c := 0; c < Cols; c++ {
			if b.heights[c] < Rows {
				scores[c] = defaults[c]
			}
		}
	}

	bestCol := -1
	best := scores[0] - 1
	for c := 0; c < Cols; c++ {
		if scores[c] > best {
			best = scores[c]
			bestCol = c
		}
	}
	return bestCol
}

// lineThreat rates the strongest line player would hold if a piece landed on
// (row, col): a completed four, an open-ended three, or a half-open three.
// Shorter lines score nothing here.
func lineThreat(b *Board, row, col int, player Player) int {
	best := 0
	for _, axis := range ruleAxes {
		length := 1
		frontBlocked := false
		backBlocked := false

		r, c := row+axis[0], col+axis[1]
		for steps := 0; steps < WinLength-1; steps++ {
			if r < 0 || r >= Rows || c < 0 || c >= Cols {
				frontBlocked = true
				break
			}
			if b.cells[r][c] != player {
				frontBlocked = b.cells[r][c] != Empty
				break
			}
			length++
			r, c = r+axis[0], c+axis[1]
		}

		r, c = row-axis[0], col-axis[1]
		for steps := 0; steps < WinLength-1; steps++ {
			if r < 0 || r >= Rows || c < 0 || c >= Cols {
				backBlocked = true
				break
			}
			if b.cells[r][c] != player {
				backBlocked = b.cells[r][c] != Empty
				break
			}
			length++
			r, c = r-axis[0], c-axis[1]
		}

		score := 0
		switch {
		case length >= WinLength:
			score = ruleWinningLine
		case length == WinLength-1 && !frontBlocked && !backBlocked:
			score = ruleOpenThree
		case length == WinLength-1 && (!frontBlocked || !backBlocked):
			score = ruleHalfThree
		}
		if score > best {
			best = score
		}
	}
	return best
}

// setupRisk penalizes a move that makes the cell directly above it a winning
// spot for the opponent. The candidate piece is placed temporarily and
// removed again before returning.
func setupRisk(b *Board, col int, p Player) int {
	row := b.heights[col]
	if row >= Rows-1 {
		return 0
	}
	b.Drop(col, p)
	threat := lineThreat(b, row+1, col, p.Opponent())
	b.Undo(col)
	if threat >= ruleWinningLine {
		return -threat
	}
	return 0
}
