package minimax

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/fishderby/game"
)

// DepthResult is what one iteration of the deepening loop found.
type DepthResult struct {
	Depth     int
	Value     float64
	Move      game.Action
	Completed bool
	// Estimated is set when the iteration was cut short before any value
	// reached the root; Value is then the static value of Move.
	Estimated bool
	Nodes     uint64
	Elapsed   time.Duration
}

// Decision is the outcome of Solve.
type Decision struct {
	Action game.Action
	// Best is the depth result the action was taken from; nil if the
	// search produced no move.
	Best   *DepthResult
	Depths []DepthResult
}

// Solve searches root at increasing depths until the maximum depth or the
// deadline in ctx, and returns the move of the depth with the highest
// value. That is deliberately not always the deepest depth: a shallower
// iteration wins whenever it reports a better value.
//
// Iterations cut short by the deadline are recorded but only considered
// when no iteration completed. A root without moves, or a search that
// never got to a move, yields game.ActionStay.
func (s *Solver) Solve(ctx context.Context, root *game.Node) (*Decision, error) {
	if root == nil {
		return nil, ErrNilRoot
	}
	if err := s.checkDepths(); err != nil {
		return nil, err
	}
	tstart := time.Now()
	s.SetPerspective(root.OnTurn())
	dec := &Decision{Action: game.ActionStay}

	if len(root.Children(s.expander)) == 0 {
		log.Warn().Stringer("position", root.Position()).Msg("root-has-no-moves")
		return dec, nil
	}

	start := s.minDepth
	if !s.iterativeDeepeningOn {
		start = s.maxDepth
	}
	for d := start; d <= s.maxDepth; d++ {
		if timeUp(ctx) {
			break
		}
		s.aborted = false
		nodesBefore, cutoffsBefore, hitsBefore := s.nodes, s.cutoffs, s.ttHits
		itStart := time.Now()

		res := s.Search(ctx, root, d, math.Inf(-1), math.Inf(1), Maximizer)

		dr := DepthResult{
			Depth:     d,
			Value:     res.Value,
			Move:      res.Move,
			Completed: !s.aborted,
			Nodes:     s.nodes - nodesBefore,
			Elapsed:   time.Since(itStart),
		}
		if !dr.Completed && dr.Move != game.ActionNone && math.IsInf(dr.Value, 0) {
			dr.Value = s.staticValue(root, dr.Move)
			dr.Estimated = true
		}
		dec.Depths = append(dec.Depths, dr)
		log.Debug().Int("depth", d).
			Float64("value", dr.Value).
			Stringer("move", dr.Move).
			Bool("completed", dr.Completed).
			Bool("estimated", dr.Estimated).
			Uint64("nodes", dr.Nodes).
			Uint64("cutoffs", s.cutoffs-cutoffsBefore).
			Uint64("tt-hits", s.ttHits-hitsBefore).
			Dur("elapsed", dr.Elapsed).
			Msg("deepening-iteratively")
	}

	best := selectBest(dec.Depths)
	if best == nil {
		log.Warn().Int("iterations", len(dec.Depths)).Msg("no-move-found")
		return dec, nil
	}
	dec.Best = best
	dec.Action = best.Move

	if s.ttable != nil && best.Completed {
		s.ttable.PutDepth(root.Position().Key(), best.Value, best.Depth)
	}
	log.Debug().Int("depth", best.Depth).
		Float64("value", best.Value).
		Stringer("action", dec.Action).
		Int("iterations", len(dec.Depths)).
		Dur("elapsed", time.Since(tstart)).
		Msg("solve-returning")
	return dec, nil
}

// staticValue evaluates the root child reached by move.
func (s *Solver) staticValue(root *game.Node, move game.Action) float64 {
	for _, c := range root.Children(s.expander) {
		if c.Move() == move {
			return s.leaf(c).Value
		}
	}
	return s.leaf(root).Value
}

// selectBest returns the result with the numerically highest value,
// preferring the shallowest on ties, among completed iterations if there
// are any.
func selectBest(results []DepthResult) *DepthResult {
	pick := func(completedOnly bool) *DepthResult {
		var best *DepthResult
		for i := range results {
			r := &results[i]
			if r.Move == game.ActionNone || (completedOnly && !r.Completed) {
				continue
			}
			if best == nil || r.Value > best.Value {
				best = r
			}
		}
		return best
	}
	if b := pick(true); b != nil {
		return b
	}
	return pick(false)
}
