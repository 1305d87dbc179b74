package game

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// FishID identifies a fish for the whole session.
type FishID int

// Player indexes the two sides. Player 0 is the agent in a standard session.
type Player int

const (
	PlayerOne Player = 0
	PlayerTwo Player = 1
)

// Opponent returns the other side.
func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	return "p" + strconv.Itoa(int(p))
}

// Coord is a cell on the board. X wraps around, Y does not.
type Coord struct {
	X int
	Y int
}

func (c Coord) String() string {
	return strconv.Itoa(c.X) + "," + strconv.Itoa(c.Y)
}

// Position is an immutable snapshot of the game. Nothing in this package
// mutates a Position after construction; accessors hand out copies.
type Position struct {
	hooks        [2]Coord
	fishCoords   map[FishID]Coord
	fishScores   map[FishID]int
	playerScores [2]int

	// sorted once at construction, since every consumer iterates it.
	fishIDs []FishID
}

// NewPosition copies the given maps, so callers may keep mutating theirs.
func NewPosition(hooks [2]Coord, fishCoords map[FishID]Coord,
	fishScores map[FishID]int, playerScores [2]int) *Position {

	p := &Position{
		hooks:        hooks,
		fishCoords:   maps.Clone(fishCoords),
		fishScores:   make(map[FishID]int, len(fishCoords)),
		playerScores: playerScores,
	}
	if p.fishCoords == nil {
		p.fishCoords = map[FishID]Coord{}
	}
	for id := range p.fishCoords {
		p.fishScores[id] = fishScores[id]
	}
	p.fishIDs = slices.Sorted(maps.Keys(p.fishCoords))
	return p
}

// Hook returns the hook coordinate of the given player.
func (p *Position) Hook(pl Player) Coord {
	return p.hooks[pl]
}

// Hooks returns both hook coordinates.
func (p *Position) Hooks() [2]Coord {
	return p.hooks
}

// Score returns the cumulative score of the given player.
func (p *Position) Score(pl Player) int {
	return p.playerScores[pl]
}

// Scores returns both cumulative scores.
func (p *Position) Scores() [2]int {
	return p.playerScores
}

// FishIDs returns the ids of the fish still on the board, ascending.
func (p *Position) FishIDs() []FishID {
	return slices.Clone(p.fishIDs)
}

// NumFish is the number of fish still on the board.
func (p *Position) NumFish() int {
	return len(p.fishIDs)
}

// FishAt returns the coordinate of a fish and whether it is still on the board.
func (p *Position) FishAt(id FishID) (Coord, bool) {
	c, ok := p.fishCoords[id]
	return c, ok
}

// FishScore returns the score of a fish still on the board.
func (p *Position) FishScore(id FishID) int {
	return p.fishScores[id]
}

// FishPositions returns a copy of the fish coordinate map.
func (p *Position) FishPositions() map[FishID]Coord {
	return maps.Clone(p.fishCoords)
}

// FishScores returns a copy of the fish score map.
func (p *Position) FishScores() map[FishID]int {
	return maps.Clone(p.fishScores)
}

// ConfigurationKey is the canonical serialization of a position, used to
// detect transpositions.
type ConfigurationKey string

// Key builds the configuration key: fish coordinates ordered by fish id,
// then both hooks, then both scores. Two positions with the same content
// always produce the same key.
func (p *Position) Key() ConfigurationKey {
	var sb strings.Builder
	for i, id := range p.fishIDs {
		if i > 0 {
			sb.WriteByte(';')
		}
		c := p.fishCoords[id]
		sb.WriteByte('f')
		sb.WriteString(strconv.Itoa(int(id)))
		sb.WriteByte('@')
		sb.WriteString(c.String())
	}
	sb.WriteString("|h")
	sb.WriteString(p.hooks[0].String())
	sb.WriteByte(';')
	sb.WriteString(p.hooks[1].String())
	sb.WriteString("|s")
	sb.WriteString(strconv.Itoa(p.playerScores[0]))
	sb.WriteByte(',')
	sb.WriteString(strconv.Itoa(p.playerScores[1]))
	return ConfigurationKey(sb.String())
}

func (p *Position) String() string {
	return fmt.Sprintf("<position hooks %v scores %v fish %d>",
		p.hooks, p.playerScores, len(p.fishIDs))
}
