package game

import "fmt"

// Expander materializes the legal-move children of a node. It is the only
// way the search learns about the game rules, so the search can run on
// synthetic trees in tests.
type Expander interface {
	Expand(n *Node) []*Node
}

// A Node wraps a position in the game tree. Children are produced lazily,
// the first time they are asked for; an empty slice marks a terminal node.
type Node struct {
	position *Position
	move     Action
	onTurn   Player
	turn     int

	parent   *Node
	children []*Node
	expanded bool
}

// NewRootNode creates the root of a decision cycle. The root has no move.
func NewRootNode(pos *Position, onTurn Player, turn int) *Node {
	return &Node{position: pos, move: ActionNone, onTurn: onTurn, turn: turn}
}

// NewChildNode creates the node reached from parent by playing move.
func NewChildNode(parent *Node, pos *Position, move Action) *Node {
	return &Node{
		position: pos,
		move:     move,
		onTurn:   parent.onTurn.Opponent(),
		turn:     parent.turn + 1,
		parent:   parent,
	}
}

func (n *Node) Position() *Position {
	return n.position
}

// Move is the action that produced this node, ActionNone for a root.
func (n *Node) Move() Action {
	return n.move
}

// OnTurn is the player who moves from this node.
func (n *Node) OnTurn() Player {
	return n.onTurn
}

func (n *Node) Turn() int {
	return n.turn
}

func (n *Node) Parent() *Node {
	return n.parent
}

// Expanded reports whether the children have been materialized.
func (n *Node) Expanded() bool {
	return n.expanded
}

// Children returns the children of n, asking exp for them on first access.
func (n *Node) Children(exp Expander) []*Node {
	if !n.expanded {
		n.children = exp.Expand(n)
		n.expanded = true
	}
	return n.children
}

func (n *Node) String() string {
	return fmt.Sprintf("<node move %v turn %d onturn %v %v>",
		n.move, n.turn, n.onTurn, n.position)
}
