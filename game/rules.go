package game

import (
	"errors"
	"maps"

	"github.com/domino14/fishderby/config"
)

const (
	DefaultBoardWidth  = 20
	DefaultBoardHeight = 20
	DefaultMaxTurns    = 150
)

var ErrBadBoard = errors.New("board dimensions must be positive")

// Rules is the local game-tree provider. Fish do not move; a hook that
// lands on a fish catches it. Hooks wrap around horizontally but cannot
// share a column, so a boat has to go the long way around its opponent.
type Rules struct {
	width    int
	height   int
	maxTurns int
}

// NewRules builds rules from explicit dimensions.
func NewRules(width, height, maxTurns int) (*Rules, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrBadBoard
	}
	return &Rules{width: width, height: height, maxTurns: maxTurns}, nil
}

// NewRulesFromConfig reads the board keys from cfg.
func NewRulesFromConfig(cfg *config.Config) (*Rules, error) {
	return NewRules(cfg.GetInt(config.ConfigBoardWidth),
		cfg.GetInt(config.ConfigBoardHeight),
		cfg.GetInt(config.ConfigMaxTurns))
}

func (r *Rules) Width() int {
	return r.width
}

func (r *Rules) Height() int {
	return r.height
}

func (r *Rules) MaxTurns() int {
	return r.maxTurns
}

// GameOver reports whether no move can be made from n.
func (r *Rules) GameOver(n *Node) bool {
	return n.position.NumFish() == 0 || (r.maxTurns > 0 && n.turn >= r.maxTurns)
}

// Destination returns where the on-turn hook ends up after a, and whether
// the move is legal.
func (r *Rules) Destination(pos *Position, pl Player, a Action) (Coord, bool) {
	dx, dy := a.delta()
	hook := pos.Hook(pl)
	dest := Coord{
		X: ((hook.X+dx)%r.width + r.width) % r.width,
		Y: hook.Y + dy,
	}
	if dest.Y < 0 || dest.Y >= r.height {
		return hook, false
	}
	if dx != 0 && dest.X == pos.Hook(pl.Opponent()).X {
		return hook, false
	}
	return dest, true
}

// Apply plays a for pl and returns the resulting position. Illegal moves
// return nil.
func (r *Rules) Apply(pos *Position, pl Player, a Action) *Position {
	dest, ok := r.Destination(pos, pl, a)
	if !ok {
		return nil
	}
	hooks := pos.hooks
	hooks[pl] = dest
	scores := pos.playerScores

	var fish map[FishID]Coord
	for _, id := range pos.fishIDs {
		if pos.fishCoords[id] != dest {
			continue
		}
		if fish == nil {
			fish = maps.Clone(pos.fishCoords)
		}
		delete(fish, id)
		scores[pl] += pos.fishScores[id]
	}
	if fish == nil {
		fish = pos.fishCoords
	}
	return NewPosition(hooks, fish, pos.fishScores, scores)
}

// Expand implements Expander.
func (r *Rules) Expand(n *Node) []*Node {
	if r.GameOver(n) {
		return nil
	}
	children := make([]*Node, 0, len(Actions))
	for _, a := range Actions {
		next := r.Apply(n.position, n.onTurn, a)
		if next == nil {
			continue
		}
		children = append(children, NewChildNode(n, next, a))
	}
	return children
}
