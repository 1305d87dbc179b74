// Package player wraps the search into session-level agents: an agent is
// primed once with the fish of a session and then asked for one move per
// decision cycle.
package player

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
	"github.com/domino14/fishderby/heuristic"
	"github.com/domino14/fishderby/minimax"
)

var ErrNotInitialized = errors.New("player has not been initialized with session data")

// Agent chooses the move for the player on turn at root.
type Agent interface {
	Name() string
	Init(sd SessionData) error
	NextMove(ctx context.Context, root *game.Node) game.Action
}

// MinimaxPlayer is the alpha-beta agent. Its transposition table lives
// as long as the session, unless cache-per-cycle is set.
type MinimaxPlayer struct {
	rules     *game.Rules
	evaluator *heuristic.Evaluator
	ttable    *minimax.TranspositionTable
	solver    *minimax.Solver

	timeLimit       time.Duration
	cachePerCycle   bool
	cacheMemoryFrac float64

	session      SessionData
	cycles       int
	lastDecision *minimax.Decision
}

// NewMinimaxPlayer builds a player from cfg. rules is the expander the
// search walks the game tree with.
func NewMinimaxPlayer(cfg *config.Config, rules *game.Rules) (*MinimaxPlayer, error) {
	p := &MinimaxPlayer{
		rules:           rules,
		evaluator:       heuristic.NewEvaluator(cfg.GetInt(config.ConfigWrapWidth)),
		ttable:          minimax.NewTranspositionTable(cfg.GetBool(config.ConfigDepthAwareCache)),
		solver:          &minimax.Solver{},
		timeLimit:       time.Duration(cfg.GetInt(config.ConfigTimeLimitMs)) * time.Millisecond,
		cachePerCycle:   cfg.GetBool(config.ConfigCachePerCycle),
		cacheMemoryFrac: cfg.GetFloat64(config.ConfigCacheMemoryFraction),
	}
	if err := p.solver.Init(rules, p.evaluator, p.ttable, cfg); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *MinimaxPlayer) Name() string {
	return "minimax"
}

// Init starts a session. Anything cached from a previous session is
// dropped.
func (p *MinimaxPlayer) Init(sd SessionData) error {
	p.session = sd
	p.cycles = 0
	p.lastDecision = nil
	p.ttable.Reset()
	p.ttable.Presize(p.cacheMemoryFrac)
	log.Debug().Int("fish", len(sd)).
		Int("total-fish-score", sd.TotalScore()).
		Dur("time-limit", p.timeLimit).
		Bool("depth-aware-cache", p.ttable.DepthAware()).
		Msg("session-initialized")
	return nil
}

// SearchBestNextMove runs one decision cycle: it starts the time budget,
// searches, and returns the chosen action.
func (p *MinimaxPlayer) SearchBestNextMove(ctx context.Context, root *game.Node) (game.Action, error) {
	if p.session == nil {
		return game.ActionStay, ErrNotInitialized
	}
	p.cycles++
	ctx, cancel := context.WithTimeout(ctx, p.timeLimit)
	defer cancel()
	if p.cachePerCycle {
		p.ttable.Reset()
	}

	dec, err := p.solver.Solve(ctx, root)
	if err != nil {
		return game.ActionStay, err
	}
	p.lastDecision = dec
	created, lookups, hits, _ := p.ttable.Stats()
	log.Debug().Int("cycle", p.cycles).
		Stringer("action", dec.Action).
		Int("depths", len(dec.Depths)).
		Uint64("tt-entries", created).
		Uint64("tt-lookups", lookups).
		Uint64("tt-hits", hits).
		Msg("decision")
	return dec.Action, nil
}

// NextMove implements Agent. Errors are logged and turn into a stay.
func (p *MinimaxPlayer) NextMove(ctx context.Context, root *game.Node) game.Action {
	a, err := p.SearchBestNextMove(ctx, root)
	if err != nil {
		log.Err(err).Msg("search-best-next-move")
		return game.ActionStay
	}
	return a
}

// LastDecision is the full result of the most recent cycle, or nil.
func (p *MinimaxPlayer) LastDecision() *minimax.Decision {
	return p.lastDecision
}

// Solver exposes the underlying solver for tuning.
func (p *MinimaxPlayer) Solver() *minimax.Solver {
	return p.solver
}

func (p *MinimaxPlayer) TranspositionTable() *minimax.TranspositionTable {
	return p.ttable
}

// SetTimeLimit overrides the configured time budget.
func (p *MinimaxPlayer) SetTimeLimit(d time.Duration) {
	p.timeLimit = d
}
