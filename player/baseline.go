package player

import (
	"context"
	"fmt"

	"lukechampine.com/frand"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
	"github.com/domino14/fishderby/heuristic"
)

const (
	AgentMinimax = "minimax"
	AgentGreedy  = "greedy"
	AgentRandom  = "random"
)

// RandomPlayer picks uniformly among the legal moves.
type RandomPlayer struct {
	rules *game.Rules
}

func NewRandomPlayer(rules *game.Rules) *RandomPlayer {
	return &RandomPlayer{rules: rules}
}

func (p *RandomPlayer) Name() string {
	return AgentRandom
}

func (p *RandomPlayer) Init(sd SessionData) error {
	return nil
}

func (p *RandomPlayer) NextMove(ctx context.Context, root *game.Node) game.Action {
	children := root.Children(p.rules)
	if len(children) == 0 {
		return game.ActionStay
	}
	return children[frand.Intn(len(children))].Move()
}

// GreedyPlayer looks one ply ahead and takes the move the static
// evaluator likes best. The first of equally good moves wins.
type GreedyPlayer struct {
	rules     *game.Rules
	evaluator *heuristic.Evaluator
}

func NewGreedyPlayer(rules *game.Rules, ev *heuristic.Evaluator) *GreedyPlayer {
	return &GreedyPlayer{rules: rules, evaluator: ev}
}

func (p *GreedyPlayer) Name() string {
	return AgentGreedy
}

func (p *GreedyPlayer) Init(sd SessionData) error {
	return nil
}

func (p *GreedyPlayer) NextMove(ctx context.Context, root *game.Node) game.Action {
	best := game.ActionStay
	var bestValue float64
	for i, c := range root.Children(p.rules) {
		v := p.evaluator.Evaluate(c.Position(), root.OnTurn())
		if i == 0 || v > bestValue {
			best, bestValue = c.Move(), v
		}
	}
	return best
}

// NewAgent creates an agent by name.
func NewAgent(name string, cfg *config.Config, rules *game.Rules) (Agent, error) {
	switch name {
	case AgentMinimax:
		p, err := NewMinimaxPlayer(cfg, rules)
		if err != nil {
			return nil, err
		}
		return p, nil
	case AgentGreedy:
		return NewGreedyPlayer(rules, heuristic.NewEvaluator(cfg.GetInt(config.ConfigWrapWidth))), nil
	case AgentRandom:
		return NewRandomPlayer(rules), nil
	}
	return nil, fmt.Errorf("unknown agent %q", name)
}
