package engine

import "fmt"

// Strategy selects which of the two move-selection designs an Agent runs.
// The set is closed: no third strategy is anticipated.
type Strategy int

const (
	StrategyRuleBased Strategy = iota
	StrategyHybridSearch
)

// Explanation tags attached to each selected move.
const (
	ReasonWin    = "intuitive: winning pattern detected"
	ReasonBlock  = "intuitive: blocking forced loss"
	ReasonSearch = "analytical: deep search, no immediate threat found"
	ReasonRule   = "rule: weighted threat scoring"
)

// ParseStrategy maps a config string to a Strategy.
func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "rule":
		return StrategyRuleBased, nil
	case "hybrid":
		return StrategyHybridSearch, nil
	}
	return 0, fmt.Errorf("unknown strategy %q (want \"rule\" or \"hybrid\")", name)
}

func (s Strategy) String() string {
	if s == StrategyRuleBased {
		return "rule"
	}
	return "hybrid"
}

// Agent is a per-turn move selector. The hybrid strategy checks for critical
// moves first and only deliberates when none exist: an immediate win outranks
// an immediate block, which outranks the search. That ordering is an explicit
// precedence rule, not a score comparison.
type Agent struct {
	strategy Strategy
	depth    int
	searcher *Searcher
}

// NewAgent builds an agent. depth bounds the hybrid strategy's search; the
// rule strategy ignores it.
func NewAgent(strategy Strategy, depth int, eval *Evaluator) *Agent {
	return &Agent{
		strategy: strategy,
		depth:    depth,
		searcher: NewSearcher(eval),
	}
}

func (a *Agent) Strategy() Strategy {
	return a.strategy
}

// SelectMove picks a column for p along with a short explanation of why.
// Fails with ErrNoMovesAvailable on a full board.
func (a *Agent) SelectMove(b *Board, p Player) (int, string, error) {
	if len(b.LegalMoves()) == 0 {
		return -1, "", ErrNoMovesAvailable
	}

	if a.strategy == StrategyRuleBased {
		return RuleMove(b, p), ReasonRule, nil
	}

	if col, ok := FindWinningMove(b, p); ok {
		return col, ReasonWin, nil
	}
	if col, ok := FindBlockingMove(b, p); ok {
		return col, ReasonBlock, nil
	}
	col, err := a.searcher.BestMove(b, a.depth, p)
	if err != nil {
		return -1, "", err
	}
	return col, ReasonSearch, nil
}
