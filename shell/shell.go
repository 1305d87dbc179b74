// Package shell is an interactive console for setting up fishing derby
// positions and watching the search play them.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog/log"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
	"github.com/domino14/fishderby/player"
)

type ShellController struct {
	l      *readline.Instance
	out    io.Writer
	ctx    context.Context
	config *config.Config

	scenario *game.Scenario
	rules    *game.Rules
	node     *game.Node
	history  []*game.Node

	mm       *player.MinimaxPlayer
	opponent player.Agent
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func NewShellController(cfg *config.Config) *ShellController {
	sc := &ShellController{config: cfg, ctx: context.Background()}
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[36mfishderby>\033[0m ",
		HistoryFile:     "/tmp/fishderby_readline.tmp",
		AutoComplete:    &ShellCompleter{sc: sc},
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	sc.out = l.Stdout()
	return sc
}

func (sc *ShellController) showMessage(msg string) {
	showMessage(msg, sc.out)
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

// setScenario makes sc the current game and gives both sides fresh agents.
func (sc *ShellController) setScenario(s *game.Scenario) error {
	if err := s.Validate(); err != nil {
		return err
	}
	rules, err := s.Rules()
	if err != nil {
		return err
	}
	mm, err := player.NewMinimaxPlayer(sc.config, rules)
	if err != nil {
		return err
	}
	opp, err := player.NewAgent(sc.config.GetString(config.ConfigArenaOpponent), sc.config, rules)
	if err != nil {
		return err
	}
	sd := player.SessionDataFromScenario(s)
	if err := mm.Init(sd); err != nil {
		return err
	}
	if err := opp.Init(sd); err != nil {
		return err
	}
	sc.scenario = s
	sc.rules = rules
	sc.mm = mm
	sc.opponent = opp
	sc.node = game.NewRootNode(s.Position(), game.PlayerOne, 0)
	sc.history = nil
	return nil
}

func (sc *ShellController) display() string {
	return game.ToDisplayText(sc.node.Position(), sc.rules.Width(), sc.rules.Height(),
		sc.node.OnTurn()) + fmt.Sprintf("turn %d of %d\n", sc.node.Turn(), sc.rules.MaxTurns())
}

// advance plays a for the side on turn and moves to the resulting position.
func (sc *ShellController) advance(a game.Action) error {
	next := sc.rules.Apply(sc.node.Position(), sc.node.OnTurn(), a)
	if next == nil {
		return fmt.Errorf("%v cannot play %v here", sc.node.OnTurn(), a)
	}
	sc.history = append(sc.history, sc.node)
	sc.node = game.NewRootNode(next, sc.node.OnTurn().Opponent(), sc.node.Turn()+1)
	return nil
}

func (sc *ShellController) standardModeSwitch(line string, sig chan os.Signal) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "exit":
		sig <- syscall.SIGINT
		return nil, errors.New("sending quit signal")
	case "help":
		if cmd.args == nil {
			return usage("standard")
		}
		return usageTopic(cmd.args[0])
	case "load":
		return sc.load(cmd)
	case "random":
		return sc.random(cmd)
	case "save":
		return sc.save(cmd)
	case "show":
		return sc.show(cmd)
	case "search":
		return sc.search(cmd)
	case "play":
		return sc.play(cmd)
	case "undo":
		return sc.undo(cmd)
	case "auto":
		return sc.auto(cmd)
	case "set":
		return sc.set(cmd)
	case "config":
		return sc.showConfig(cmd)
	default:
		log.Debug().Msgf("you said: %v", strconv.Quote(line))
		return nil, fmt.Errorf("unknown command %q; try help", cmd.cmd)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" {
			sig <- syscall.SIGINT
			break
		}
		tstart := time.Now()
		resp, err := sc.standardModeSwitch(line, sig)
		if err != nil {
			sc.showError(err)
		} else if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
		log.Debug().Dur("elapsed", time.Since(tstart)).Msg("command-done")
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs commands without readline, writing their output to w. It
// stops at the first failing command.
func Execute(ctx context.Context, cfg *config.Config, w io.Writer, lines []string) error {
	sc := &ShellController{config: cfg, out: w, ctx: ctx}
	sig := make(chan os.Signal, 1)
	for _, line := range lines {
		if err := ctx.Err(); err != nil {
			return err
		}
		resp, err := sc.standardModeSwitch(line, sig)
		if err != nil {
			return fmt.Errorf("%s: %w", line, err)
		}
		if resp != nil && resp.message != "" {
			sc.showMessage(resp.message)
		}
	}
	return nil
}
