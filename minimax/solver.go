// Package minimax picks a move for one side of a fishing derby position
// using depth-limited minimax with alpha-beta pruning, driven by iterative
// deepening under a time budget.
package minimax

import (
	"context"
	"errors"
	"math"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
)

// thanks Wikipedia:
/*
function alphabeta(node, depth, α, β, maximizingPlayer) is
    if depth = 0 or node is a terminal node then
        return the heuristic value of node
    if maximizingPlayer then
        value := −∞
        for each child of node do
            value := max(value, alphabeta(child, depth − 1, α, β, FALSE))
            α := max(α, value)
            if α ≥ β then
                break (* β cut-off *)
        return value
    else
        value := +∞
        for each child of node do
            value := min(value, alphabeta(child, depth − 1, α, β, TRUE))
            β := min(β, value)
            if α ≥ β then
                break (* α cut-off *)
        return value
*/

const (
	DefaultMinDepth = 2
	DefaultMaxDepth = 8
)

var (
	ErrNilRoot       = errors.New("cannot search a nil root")
	ErrBadDepthRange = errors.New("bad depth range")
)

// Mover is the side a search node is evaluated for.
type Mover int

const (
	Maximizer Mover = iota
	Minimizer
)

// Other returns the opposite mover.
func (m Mover) Other() Mover {
	return 1 - m
}

func (m Mover) String() string {
	if m == Maximizer {
		return "max"
	}
	return "min"
}

// Evaluator statically scores a position for a side.
type Evaluator interface {
	Evaluate(pos *game.Position, side game.Player) float64
}

// SearchResult is the value of a subtree and the move at its root that
// achieved it. Move is game.ActionNone at leaves, and when no child
// improved on the incoming bound.
type SearchResult struct {
	Value float64
	Move  game.Action
}

// Solver implements the minimax + alphabeta algorithm. It is not safe for
// concurrent use; give every goroutine its own.
type Solver struct {
	expander  game.Expander
	evaluator Evaluator
	ttable    *TranspositionTable
	orderer   *MoveOrderer

	// perspective is the maximizing player. Every static evaluation, at
	// leaves and for move ordering, is from this player's point of view.
	perspective game.Player

	minDepth             int
	maxDepth             int
	iterativeDeepeningOn bool
	disablePruning       bool

	aborted bool
	nodes   uint64
	cutoffs uint64
	ttHits  uint64
}

// Init initializes the solver. ttable may be nil, which disables caching.
func (s *Solver) Init(exp game.Expander, ev Evaluator, ttable *TranspositionTable, cfg *config.Config) error {
	s.expander = exp
	s.evaluator = ev
	s.ttable = ttable
	s.iterativeDeepeningOn = true
	s.minDepth = DefaultMinDepth
	s.maxDepth = DefaultMaxDepth
	if cfg != nil {
		s.minDepth = cfg.GetInt(config.ConfigMinDepth)
		s.maxDepth = cfg.GetInt(config.ConfigMaxDepth)
	}
	s.SetPerspective(game.PlayerOne)
	return s.checkDepths()
}

func (s *Solver) checkDepths() error {
	if s.minDepth < 1 || s.minDepth > s.maxDepth {
		return ErrBadDepthRange
	}
	return nil
}

// SetDepthRange sets the first and last iterative deepening depths.
func (s *Solver) SetDepthRange(minDepth, maxDepth int) error {
	s.minDepth = minDepth
	s.maxDepth = maxDepth
	return s.checkDepths()
}

// SetIterativeDeepening turns iterative deepening on or off. When off,
// Solve searches only at the maximum depth.
func (s *Solver) SetIterativeDeepening(i bool) {
	s.iterativeDeepeningOn = i
}

// SetPruningDisabled turns the search into plain minimax.
func (s *Solver) SetPruningDisabled(d bool) {
	s.disablePruning = d
}

// SetPerspective sets the maximizing player. Solve sets it to the player
// on turn at the root.
func (s *Solver) SetPerspective(p game.Player) {
	s.perspective = p
	s.orderer = NewMoveOrderer(s.evaluator, p)
}

// TranspositionTable returns the table the solver probes, possibly nil.
func (s *Solver) TranspositionTable() *TranspositionTable {
	return s.ttable
}

// Nodes is the number of nodes visited since Init.
func (s *Solver) Nodes() uint64 {
	return s.nodes
}

// Aborted reports whether the last Search ran out of time.
func (s *Solver) Aborted() bool {
	return s.aborted
}

func timeUp(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}

// Search runs alpha-beta from node to the given depth. The deadline in
// ctx is only checked between children: a subtree that has been entered
// is finished, and when time runs out the best value so far is returned
// and Aborted reports true.
func (s *Solver) Search(ctx context.Context, node *game.Node, depth int,
	α, β float64, mover Mover) SearchResult {

	s.nodes++
	if depth == 0 {
		return s.leaf(node)
	}
	children := node.Children(s.expander)
	if len(children) == 0 {
		return s.leaf(node)
	}

	best := SearchResult{Move: game.ActionNone}
	if mover == Maximizer {
		best.Value = math.Inf(-1)
	} else {
		best.Value = math.Inf(1)
	}

	for _, child := range s.orderer.Order(children, mover) {
		if timeUp(ctx) {
			s.aborted = true
			break
		}
		childValue, cached := s.probe(child, depth-1)
		if !cached {
			childValue = s.Search(ctx, child, depth-1, α, β, mover.Other()).Value
		}

		if mover == Maximizer {
			best.Value = max(best.Value, childValue)
			if best.Value > α {
				best.Move = child.Move()
			}
			α = max(α, best.Value)
		} else {
			best.Value = min(best.Value, childValue)
			if best.Value < β {
				best.Move = child.Move()
			}
			β = min(β, best.Value)
		}
		if !s.disablePruning && β <= α {
			s.cutoffs++
			break
		}
	}
	return best
}

func (s *Solver) leaf(node *game.Node) SearchResult {
	return SearchResult{
		Value: s.evaluator.Evaluate(node.Position(), s.perspective),
		Move:  game.ActionNone,
	}
}

func (s *Solver) probe(child *game.Node, depth int) (float64, bool) {
	if s.ttable == nil {
		return 0, false
	}
	v, ok := s.ttable.Probe(child.Position().Key(), depth)
	if ok {
		s.ttHits++
	}
	return v, ok
}
