package minimax

import (
	"slices"

	"github.com/samber/lo"

	"github.com/domino14/fishderby/game"
)

// MoveOrderer sorts children by a one-ply static evaluation so that the
// most promising moves are searched first and cut the rest off.
type MoveOrderer struct {
	evaluator   Evaluator
	perspective game.Player
}

// NewMoveOrderer scores children from perspective's point of view.
func NewMoveOrderer(e Evaluator, perspective game.Player) *MoveOrderer {
	return &MoveOrderer{evaluator: e, perspective: perspective}
}

// Order returns a permutation of children. Children with exactly the same
// evaluation form a bucket and keep their relative order; buckets come in
// descending value order for the maximizer and ascending for the minimizer.
func (o *MoveOrderer) Order(children []*game.Node, mover Mover) []*game.Node {
	if len(children) < 2 {
		return slices.Clone(children)
	}
	evals := make(map[*game.Node]float64, len(children))
	for _, c := range children {
		evals[c] = o.evaluator.Evaluate(c.Position(), o.perspective)
	}
	buckets := lo.GroupBy(children, func(c *game.Node) float64 {
		return evals[c]
	})
	values := lo.Uniq(lo.Map(children, func(c *game.Node, _ int) float64 {
		return evals[c]
	}))
	slices.Sort(values)
	if mover == Maximizer {
		slices.Reverse(values)
	}
	ordered := make([]*game.Node, 0, len(children))
	for _, v := range values {
		ordered = append(ordered, buckets[v]...)
	}
	return ordered
}
