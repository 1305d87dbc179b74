package shell

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
)

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <scenario.yaml>")
	}
	s, err := game.LoadScenario(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.setScenario(s); err != nil {
		return nil, err
	}
	return msg(sc.display()), nil
}

func (sc *ShellController) random(cmd *shellcmd) (*Response, error) {
	name := cmd.options.String("name")
	if name == "" {
		name = fmt.Sprintf("shell-%d", time.Now().UnixNano())
	}
	nfish, err := cmd.options.IntDefault("fish", sc.config.GetInt(config.ConfigArenaFish))
	if err != nil {
		return nil, err
	}
	s := game.RandomScenario(name,
		sc.config.GetInt(config.ConfigBoardWidth),
		sc.config.GetInt(config.ConfigBoardHeight),
		sc.config.GetInt(config.ConfigMaxTurns),
		nfish)
	if err := sc.setScenario(s); err != nil {
		return nil, err
	}
	return msg("scenario " + name + "\n" + sc.display()), nil
}

// save writes the current position, not the starting one, as a scenario.
func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if sc.node == nil {
		return nil, errNoScenario
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <scenario.yaml>")
	}
	pos := sc.node.Position()
	s := &game.Scenario{
		Name:     sc.scenario.Name,
		Width:    sc.rules.Width(),
		Height:   sc.rules.Height(),
		MaxTurns: sc.rules.MaxTurns(),
		Hooks:    pos.Hooks(),
		Scores:   pos.Scores(),
	}
	types := map[game.FishID]int{}
	for _, f := range sc.scenario.Fish {
		types[f.ID] = f.Type
	}
	for _, id := range pos.FishIDs() {
		c, _ := pos.FishAt(id)
		s.Fish = append(s.Fish, game.FishSpec{ID: id, X: c.X, Y: c.Y,
			Score: pos.FishScore(id), Type: types[id]})
	}
	f, err := os.Create(cmd.args[0])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if err := game.WriteScenario(f, s); err != nil {
		return nil, err
	}
	return msg("saved to " + cmd.args[0]), nil
}

func (sc *ShellController) show(cmd *shellcmd) (*Response, error) {
	if sc.node == nil {
		return nil, errNoScenario
	}
	return msg(sc.display()), nil
}

// search runs one decision cycle for the side on turn and prints what
// every depth found, without playing the move.
func (sc *ShellController) search(cmd *shellcmd) (*Response, error) {
	if sc.node == nil {
		return nil, errNoScenario
	}
	root := game.NewRootNode(sc.node.Position(), sc.node.OnTurn(), sc.node.Turn())
	action, err := sc.mm.SearchBestNextMove(sc.ctx, root)
	if err != nil {
		return nil, err
	}
	dec := sc.mm.LastDecision()
	var sb strings.Builder
	fmt.Fprintf(&sb, "%-6s %-6s %10s %-9s %10s %12s\n",
		"depth", "move", "value", "complete", "nodes", "elapsed")
	for _, d := range dec.Depths {
		marker := " "
		if dec.Best != nil && d.Depth == dec.Best.Depth {
			marker = "*"
		}
		complete := fmt.Sprint(d.Completed)
		if d.Estimated {
			complete = "estimated"
		}
		fmt.Fprintf(&sb, "%-6s %-6v %10.4f %-9s %10d %12v\n",
			fmt.Sprintf("%d%s", d.Depth, marker), d.Move, d.Value, complete, d.Nodes, d.Elapsed)
	}
	created, lookups, hits, collisions := sc.mm.TranspositionTable().Stats()
	fmt.Fprintf(&sb, "cache: %d entries, %d lookups, %d hits, %d collisions\n",
		created, lookups, hits, collisions)
	fmt.Fprintf(&sb, "best move for %v: %v", sc.node.OnTurn(), action)
	return msg(sb.String()), nil
}

func (sc *ShellController) play(cmd *shellcmd) (*Response, error) {
	if sc.node == nil {
		return nil, errNoScenario
	}
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: play <stay|up|down|left|right>")
	}
	if sc.rules.GameOver(sc.node) {
		return nil, errors.New("the game is over")
	}
	a, err := game.ParseAction(cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.advance(a); err != nil {
		return nil, err
	}
	return msg(sc.display()), nil
}

func (sc *ShellController) undo(cmd *shellcmd) (*Response, error) {
	if len(sc.history) == 0 {
		return nil, errors.New("nothing to undo")
	}
	sc.node = sc.history[len(sc.history)-1]
	sc.history = sc.history[:len(sc.history)-1]
	return msg(sc.display()), nil
}

// auto lets the minimax player (first seat) and the configured opponent
// play until the game ends or the given number of turns have passed.
func (sc *ShellController) auto(cmd *shellcmd) (*Response, error) {
	if sc.node == nil {
		return nil, errNoScenario
	}
	turns, err := cmd.options.IntDefault("turns", 0)
	if err != nil {
		return nil, err
	}
	played := 0
	var sb strings.Builder
	for !sc.rules.GameOver(sc.node) && (turns == 0 || played < turns) {
		if err := sc.ctx.Err(); err != nil {
			return nil, err
		}
		root := game.NewRootNode(sc.node.Position(), sc.node.OnTurn(), sc.node.Turn())
		var a game.Action
		if sc.node.OnTurn() == game.PlayerOne {
			a = sc.mm.NextMove(sc.ctx, root)
		} else {
			a = sc.opponent.NextMove(sc.ctx, root)
		}
		fmt.Fprintf(&sb, "turn %d: %v plays %v\n", sc.node.Turn(), sc.node.OnTurn(), a)
		if err := sc.advance(a); err != nil {
			return nil, err
		}
		played++
	}
	sb.WriteString(sc.display())
	if sc.rules.GameOver(sc.node) {
		scores := sc.node.Position().Scores()
		fmt.Fprintf(&sb, "game over: %d - %d", scores[0], scores[1])
	}
	return msg(sb.String()), nil
}

// set changes a config value for the rest of the session. Agents pick the
// change up at the next load or random.
func (sc *ShellController) set(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 2 {
		return nil, errors.New("usage: set <key> <value>")
	}
	key, value := cmd.args[0], cmd.args[1]
	if !slices.Contains(sc.config.AllKeys(), key) {
		return nil, fmt.Errorf("unknown setting %q", key)
	}
	old := sc.config.Get(key)
	sc.config.Set(key, value)
	if err := sc.config.Validate(); err != nil {
		sc.config.Set(key, old)
		return nil, err
	}
	if key == config.ConfigDebug {
		if sc.config.GetBool(config.ConfigDebug) {
			zerolog.SetGlobalLevel(zerolog.DebugLevel)
		} else {
			zerolog.SetGlobalLevel(zerolog.InfoLevel)
		}
	}
	log.Debug().Str("key", key).Str("value", value).Msg("setting-changed")
	return msg("set " + key + " to " + value), nil
}

func (sc *ShellController) showConfig(cmd *shellcmd) (*Response, error) {
	var sb strings.Builder
	for _, k := range sc.config.AllKeys() {
		if k == "args" {
			continue
		}
		fmt.Fprintf(&sb, "%-24s %v\n", k, sc.config.Get(k))
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}
