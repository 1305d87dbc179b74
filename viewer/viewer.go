// Package viewer replays arena match records in the terminal.
package viewer

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"

	"github.com/domino14/fishderby/arena"
	"github.com/domino14/fishderby/game"
)

type match struct {
	id    string
	turns []arena.TurnRecord
}

// Model is the bubbletea model of the replay viewer.
type Model struct {
	matches  []match
	matchIdx int
	turnIdx  int
	showHelp bool
}

// NewModel groups records by match, keeping their order.
func NewModel(records []arena.TurnRecord) Model {
	ids := lo.Uniq(lo.Map(records, func(r arena.TurnRecord, _ int) string {
		return r.MatchID
	}))
	byID := lo.GroupBy(records, func(r arena.TurnRecord) string {
		return r.MatchID
	})
	m := Model{}
	for _, id := range ids {
		m.matches = append(m.matches, match{id: id, turns: byID[id]})
	}
	return m
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "right", "l":
			m.step(1)
		case "left", "h":
			m.step(-1)
		case "end", "G":
			if len(m.matches) > 0 {
				m.turnIdx = len(m.matches[m.matchIdx].turns) - 1
			}
		case "home", "g":
			m.turnIdx = 0
		case "down", "j", "n":
			m.switchMatch(1)
		case "up", "k", "p":
			m.switchMatch(-1)
		case "?":
			m.showHelp = !m.showHelp
		}
	}
	return m, nil
}

func (m *Model) step(d int) {
	if len(m.matches) == 0 {
		return
	}
	n := len(m.matches[m.matchIdx].turns)
	m.turnIdx = max(0, min(n-1, m.turnIdx+d))
}

func (m *Model) switchMatch(d int) {
	if len(m.matches) == 0 {
		return
	}
	m.matchIdx = (m.matchIdx + d + len(m.matches)) % len(m.matches)
	m.turnIdx = 0
}

// Current returns the record on screen.
func (m Model) Current() (arena.TurnRecord, bool) {
	if len(m.matches) == 0 {
		return arena.TurnRecord{}, false
	}
	turns := m.matches[m.matchIdx].turns
	if len(turns) == 0 {
		return arena.TurnRecord{}, false
	}
	return turns[m.turnIdx], true
}

func (m Model) View() string {
	rec, ok := m.Current()
	if !ok {
		return "no records to show (q to quit)\n"
	}
	var sb strings.Builder
	mt := m.matches[m.matchIdx]
	fmt.Fprintf(&sb, "%s (%d/%d)  turn %d/%d\n", mt.id, m.matchIdx+1, len(m.matches),
		m.turnIdx+1, len(mt.turns))
	sb.WriteString(game.ToDisplayText(rec.Position(), int(rec.Width), int(rec.Height),
		game.Player(rec.Player)))
	fmt.Fprintf(&sb, "\n%s (p%d) plays %s", rec.Agent, rec.Player, rec.Action)
	if rec.Depth > 0 {
		fmt.Fprintf(&sb, "  depth %d value %.3f", rec.Depth, rec.Value)
	}
	fmt.Fprintf(&sb, "  %dµs\n", rec.ElapsedUs)
	if m.showHelp {
		sb.WriteString("\n←/→ turn  ↑/↓ match  home/end first/last turn  q quit\n")
	} else {
		sb.WriteString("\n? help\n")
	}
	return sb.String()
}
