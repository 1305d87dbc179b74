package game

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/cespare/xxhash"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"
)

var (
	ErrHooksShareColumn = errors.New("hooks may not start in the same column")
	ErrOffBoard         = errors.New("coordinate is off the board")
	ErrDuplicateFish    = errors.New("duplicate fish id")
)

// FishSpec describes one fish of a scenario.
type FishSpec struct {
	ID    FishID `yaml:"id"`
	X     int    `yaml:"x"`
	Y     int    `yaml:"y"`
	Score int    `yaml:"score"`
	Type  int    `yaml:"type"`
}

// Scenario is a starting configuration. It is what the game server would
// send as the first observation of a session.
type Scenario struct {
	Name     string     `yaml:"name"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
	MaxTurns int        `yaml:"max_turns"`
	Hooks    [2]Coord   `yaml:"hooks"`
	Scores   [2]int     `yaml:"scores"`
	Fish     []FishSpec `yaml:"fish"`
}

// UnmarshalYAML lets hooks be written as [x, y] pairs.
func (c *Coord) UnmarshalYAML(value *yaml.Node) error {
	var xy []int
	if err := value.Decode(&xy); err != nil {
		return err
	}
	if len(xy) != 2 {
		return fmt.Errorf("coordinate needs two values, got %d", len(xy))
	}
	c.X, c.Y = xy[0], xy[1]
	return nil
}

func (c Coord) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	n.Content = []*yaml.Node{
		{Kind: yaml.ScalarNode, Value: fmt.Sprint(c.X)},
		{Kind: yaml.ScalarNode, Value: fmt.Sprint(c.Y)},
	}
	return n, nil
}

// ReadScenario parses a YAML scenario and validates it.
func ReadScenario(r io.Reader) (*Scenario, error) {
	sc := &Scenario{}
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(sc); err != nil {
		return nil, fmt.Errorf("decoding scenario: %w", err)
	}
	if sc.Width == 0 {
		sc.Width = DefaultBoardWidth
	}
	if sc.Height == 0 {
		sc.Height = DefaultBoardHeight
	}
	if err := sc.Validate(); err != nil {
		return nil, err
	}
	return sc, nil
}

// LoadScenario reads a scenario file from disk.
func LoadScenario(path string) (*Scenario, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sc, err := ReadScenario(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return sc, nil
}

// WriteScenario serializes sc as YAML.
func WriteScenario(w io.Writer, sc *Scenario) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(sc); err != nil {
		return err
	}
	return enc.Close()
}

func (sc *Scenario) onBoard(c Coord) bool {
	return c.X >= 0 && c.X < sc.Width && c.Y >= 0 && c.Y < sc.Height
}

// Validate checks that everything is on the board and hooks are apart.
func (sc *Scenario) Validate() error {
	if sc.Width <= 0 || sc.Height <= 0 {
		return ErrBadBoard
	}
	for i, h := range sc.Hooks {
		if !sc.onBoard(h) {
			return fmt.Errorf("hook %d at %v: %w", i, h, ErrOffBoard)
		}
	}
	if sc.Hooks[0].X == sc.Hooks[1].X {
		return ErrHooksShareColumn
	}
	seen := map[FishID]bool{}
	for _, f := range sc.Fish {
		if seen[f.ID] {
			return fmt.Errorf("fish %d: %w", f.ID, ErrDuplicateFish)
		}
		seen[f.ID] = true
		if !sc.onBoard(Coord{f.X, f.Y}) {
			return fmt.Errorf("fish %d at %d,%d: %w", f.ID, f.X, f.Y, ErrOffBoard)
		}
	}
	return nil
}

// Position builds the starting position of the scenario.
func (sc *Scenario) Position() *Position {
	coords := make(map[FishID]Coord, len(sc.Fish))
	scores := make(map[FishID]int, len(sc.Fish))
	for _, f := range sc.Fish {
		coords[f.ID] = Coord{f.X, f.Y}
		scores[f.ID] = f.Score
	}
	return NewPosition(sc.Hooks, coords, scores, sc.Scores)
}

// Rules returns the rules matching the scenario's board.
func (sc *Scenario) Rules() (*Rules, error) {
	return NewRules(sc.Width, sc.Height, sc.MaxTurns)
}

var fishScoreTable = []int{-10, -5, 1, 2, 3, 5, 6, 8, 10, 11, 12, 15}

// seedFor derives a 32-byte frand seed from a scenario name.
func seedFor(name string) []byte {
	seed := make([]byte, 32)
	h := xxhash.Sum64String(name)
	for i := 0; i < 4; i++ {
		binary.LittleEndian.PutUint64(seed[i*8:], h+uint64(i))
	}
	return seed
}

// RandomScenario lays out numFish fish on a width x height board. The
// layout is a pure function of name, so a match id always reproduces the
// same scenario.
func RandomScenario(name string, width, height, maxTurns, numFish int) *Scenario {
	rng := frand.NewCustom(seedFor(name), 1024, 12)
	sc := &Scenario{
		Name:     name,
		Width:    width,
		Height:   height,
		MaxTurns: maxTurns,
	}
	// boats sit at the surface, on opposite halves of the board.
	top := height - 1
	sc.Hooks[0] = Coord{X: rng.Intn(width / 2), Y: top}
	sc.Hooks[1] = Coord{X: width/2 + rng.Intn(width-width/2), Y: top}

	taken := map[Coord]bool{sc.Hooks[0]: true, sc.Hooks[1]: true}
	for i := 0; i < numFish && len(taken) < width*height; i++ {
		var c Coord
		for {
			c = Coord{X: rng.Intn(width), Y: rng.Intn(height)}
			if !taken[c] {
				break
			}
		}
		taken[c] = true
		tp := rng.Intn(len(fishScoreTable))
		sc.Fish = append(sc.Fish, FishSpec{
			ID:    FishID(i),
			X:     c.X,
			Y:     c.Y,
			Score: fishScoreTable[tp],
			Type:  tp,
		})
	}
	return sc
}
