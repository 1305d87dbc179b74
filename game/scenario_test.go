package game

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/matryer/is"
)

const wrapScenario = `
name: wraparound
width: 20
height: 20
max_turns: 40
hooks: [[0, 5], [10, 5]]
scores: [0, 0]
fish:
  - {id: 0, x: 15, y: 5, score: 10, type: 3}
  - {id: 1, x: 2, y: 1, score: -5, type: 1}
`

func TestReadScenario(t *testing.T) {
	is := is.New(t)
	sc, err := ReadScenario(strings.NewReader(wrapScenario))
	is.NoErr(err)
	is.Equal(sc.Name, "wraparound")
	is.Equal(sc.MaxTurns, 40)
	is.Equal(sc.Hooks, [2]Coord{{0, 5}, {10, 5}})
	is.Equal(len(sc.Fish), 2)

	pos := sc.Position()
	c, ok := pos.FishAt(1)
	is.True(ok)
	is.Equal(c, Coord{2, 1})
	is.Equal(pos.FishScore(1), -5)
}

func TestScenarioWriteRead(t *testing.T) {
	is := is.New(t)
	sc := RandomScenario("match-7", 20, 20, 100, 6)
	var buf bytes.Buffer
	is.NoErr(WriteScenario(&buf, sc))
	back, err := ReadScenario(&buf)
	is.NoErr(err)
	is.Equal(back.Position().Key(), sc.Position().Key())
}

func TestScenarioValidation(t *testing.T) {
	is := is.New(t)
	_, err := ReadScenario(strings.NewReader("hooks: [[3, 5], [3, 9]]\n"))
	is.True(errors.Is(err, ErrHooksShareColumn))

	_, err = ReadScenario(strings.NewReader(
		"hooks: [[0, 5], [3, 9]]\nfish:\n  - {id: 0, x: 25, y: 1, score: 1}\n"))
	is.True(errors.Is(err, ErrOffBoard))

	_, err = ReadScenario(strings.NewReader(
		"hooks: [[0, 5], [3, 9]]\nfish:\n  - {id: 0, x: 1, y: 1}\n  - {id: 0, x: 2, y: 1}\n"))
	is.True(errors.Is(err, ErrDuplicateFish))
}

func TestRandomScenarioDeterministic(t *testing.T) {
	is := is.New(t)
	a := RandomScenario("match-1", 20, 20, 100, 8)
	b := RandomScenario("match-1", 20, 20, 100, 8)
	c := RandomScenario("match-2", 20, 20, 100, 8)
	is.Equal(a, b)
	is.NoErr(a.Validate())
	is.NoErr(c.Validate())
	is.Equal(len(a.Fish), 8)
}
