package minimax

import (
	"github.com/domino14/fishderby/game"
)

// synthTree is a hand-built game tree. Every node is a position whose
// first player score is the node id, so ids survive the trip through
// game.Node and the transposition table.
type synthTree struct {
	kids       map[int][]int
	values     map[int]float64
	expansions map[int]int
	// onExpand, if set, runs before a node's children are built.
	onExpand func(id int)
}

func newSynthTree() *synthTree {
	return &synthTree{
		kids:       map[int][]int{},
		values:     map[int]float64{},
		expansions: map[int]int{},
	}
}

func synthPos(id int) *game.Position {
	return game.NewPosition([2]game.Coord{{X: 0, Y: 0}, {X: 1, Y: 0}}, nil, nil, [2]int{id, 0})
}

func synthID(pos *game.Position) int {
	return pos.Score(game.PlayerOne)
}

func (t *synthTree) root() *game.Node {
	return game.NewRootNode(synthPos(0), game.PlayerOne, 0)
}

func (t *synthTree) Expand(n *game.Node) []*game.Node {
	id := synthID(n.Position())
	t.expansions[id]++
	if t.onExpand != nil {
		t.onExpand(id)
	}
	var children []*game.Node
	for i, k := range t.kids[id] {
		children = append(children, game.NewChildNode(n, synthPos(k), game.Actions[i]))
	}
	return children
}

func (t *synthTree) Evaluate(pos *game.Position, side game.Player) float64 {
	return t.values[synthID(pos)]
}

// add links parent to children and gives each a value.
func (t *synthTree) add(parent int, children ...int) {
	t.kids[parent] = append(t.kids[parent], children...)
}

func (t *synthTree) set(values map[int]float64) {
	for k, v := range values {
		t.values[k] = v
	}
}
