// Package heuristic scores fishing derby positions without searching.
package heuristic

import (
	"math"

	"github.com/domino14/fishderby/game"
)

const (
	// DefaultWrapWidth is the board width the distance estimate assumes.
	DefaultWrapWidth = 19
	// MinDistanceFactor is the weight of a fish at (or beyond) the longest
	// distance on the board.
	MinDistanceFactor = 0.1
)

// Evaluator is a static position evaluator. The zero value is not usable;
// call NewEvaluator.
type Evaluator struct {
	wrapWidth   int
	maxDiagonal float64
}

// NewEvaluator returns an evaluator for a board of the given wrap width.
func NewEvaluator(wrapWidth int) *Evaluator {
	if wrapWidth <= 0 {
		wrapWidth = DefaultWrapWidth
	}
	n := float64(wrapWidth)
	return &Evaluator{
		wrapWidth:   wrapWidth,
		maxDiagonal: math.Sqrt((n/2)*(n/2) + n*n),
	}
}

// WrapWidth is the board width used for wraparound distances.
func (e *Evaluator) WrapWidth() int {
	return e.wrapWidth
}

// Distance estimates how far our hook is from a fish. If the opponent's
// hook sits between ours and the fish (ours < theirs < fish), our boat
// has to go around the world to get there.
func (e *Evaluator) Distance(ours, theirs, fish game.Coord) float64 {
	var dx int
	if ours.X < theirs.X && theirs.X < fish.X {
		dx = e.wrapWidth - fish.X + ours.X
	} else {
		dx = fish.X - ours.X
	}
	dy := fish.Y - ours.Y
	return math.Sqrt(float64(dx*dx + dy*dy))
}

// DistanceFactor maps a distance to a weight that decays linearly from 1
// at distance 0 to MinDistanceFactor at the board's longest diagonal, and
// stays there for anything farther.
func (e *Evaluator) DistanceFactor(distance float64) float64 {
	f := 1 - (1-MinDistanceFactor)*distance/e.maxDiagonal
	return max(MinDistanceFactor, min(1, f))
}

// Evaluate scores pos from side's point of view: the best distance-weighted
// fish within reach, half of every negatively weighted fish (they are
// hazards), and the score differential so far.
func (e *Evaluator) Evaluate(pos *game.Position, side game.Player) float64 {
	ours := pos.Hook(side)
	theirs := pos.Hook(side.Opponent())
	diff := float64(pos.Score(side) - pos.Score(side.Opponent()))

	ids := pos.FishIDs()
	if len(ids) == 0 {
		return diff
	}
	best := math.Inf(-1)
	negative := 0.0
	for _, id := range ids {
		c, _ := pos.FishAt(id)
		v := float64(pos.FishScore(id)) * e.DistanceFactor(e.Distance(ours, theirs, c))
		if v < 0 {
			negative += v
		}
		if v > best {
			best = v
		}
	}
	return best + negative/2 + diff
}
