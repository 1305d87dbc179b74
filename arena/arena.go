// Package arena plays the minimax player against a baseline opponent over
// many generated scenarios and summarizes how it did.
package arena

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/aybabtme/uniplot/histogram"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
	"github.com/domino14/fishderby/player"
	"github.com/domino14/fishderby/stats"
)

const histogramBins = 10

// MatchResult is the outcome of one match, seen from the minimax player.
type MatchResult struct {
	ID           string
	MinimaxSeat  game.Player
	Opponent     string
	Scores       [2]int
	Turns        int
	FishAtStart  int
	FishCaught   int
	MinimaxMoves int
}

// Margin is the minimax player's score minus the opponent's.
func (m *MatchResult) Margin() int {
	return m.Scores[m.MinimaxSeat] - m.Scores[m.MinimaxSeat.Opponent()]
}

// Report aggregates all matches of a run.
type Report struct {
	Matches []*MatchResult
	Wins    int
	Losses  int
	Draws   int
	Margins stats.Summary
	Elapsed time.Duration

	margins []float64
}

// Arena plays matches concurrently. Each match owns its players, so the
// solvers never share state.
type Arena struct {
	cfg      *config.Config
	matches  int
	threads  int
	numFish  int
	opponent string
	width    int
	height   int
	maxTurns int

	records   []TurnRecord
	keepTurns bool
}

func New(cfg *config.Config) *Arena {
	a := &Arena{
		cfg:      cfg,
		matches:  cfg.GetInt(config.ConfigArenaMatches),
		threads:  max(1, cfg.GetInt(config.ConfigArenaThreads)),
		numFish:  cfg.GetInt(config.ConfigArenaFish),
		opponent: cfg.GetString(config.ConfigArenaOpponent),
		width:    cfg.GetInt(config.ConfigBoardWidth),
		height:   cfg.GetInt(config.ConfigBoardHeight),
		maxTurns: cfg.GetInt(config.ConfigMaxTurns),
	}
	// fish never move, so a game without a turn limit may never end.
	if a.maxTurns <= 0 {
		a.maxTurns = game.DefaultMaxTurns
	}
	a.keepTurns = cfg.GetString(config.ConfigArenaOut) != ""
	return a
}

// SetKeepTurns makes the arena collect a TurnRecord for every move.
func (a *Arena) SetKeepTurns(k bool) {
	a.keepTurns = k
}

// Records returns the turn records collected by the last Run, ordered by
// match and turn.
func (a *Arena) Records() []TurnRecord {
	return a.records
}

func matchID(i int) string {
	return fmt.Sprintf("match-%04d", i)
}

// Run plays every match and aggregates the results.
func (a *Arena) Run(ctx context.Context) (*Report, error) {
	tstart := time.Now()
	results := make([]*MatchResult, a.matches)
	turns := make([][]TurnRecord, a.matches)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(a.threads)
	for i := 0; i < a.matches; i++ {
		g.Go(func() error {
			res, recs, err := a.PlayMatch(ctx, i)
			if err != nil {
				return fmt.Errorf("%s: %w", matchID(i), err)
			}
			results[i] = res
			turns[i] = recs
			log.Info().Str("match", res.ID).
				Int("margin", res.Margin()).
				Int("turns", res.Turns).
				Msg("match-finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	a.records = lo.Flatten(turns)

	rep := Summarize(results)
	rep.Elapsed = time.Since(tstart)
	return rep, nil
}

// PlayMatch plays match number i. The minimax player takes the first seat
// in even matches and the second seat in odd ones.
func (a *Arena) PlayMatch(ctx context.Context, i int) (*MatchResult, []TurnRecord, error) {
	id := matchID(i)
	sc := game.RandomScenario(id, a.width, a.height, a.maxTurns, a.numFish)
	rules, err := sc.Rules()
	if err != nil {
		return nil, nil, err
	}
	mm, err := player.NewMinimaxPlayer(a.cfg, rules)
	if err != nil {
		return nil, nil, err
	}
	opp, err := player.NewAgent(a.opponent, a.cfg, rules)
	if err != nil {
		return nil, nil, err
	}

	res := &MatchResult{
		ID:          id,
		MinimaxSeat: game.Player(i % 2),
		Opponent:    opp.Name(),
		FishAtStart: len(sc.Fish),
	}
	var agents [2]player.Agent
	agents[res.MinimaxSeat] = mm
	agents[res.MinimaxSeat.Opponent()] = opp

	sd := player.SessionDataFromScenario(sc)
	for _, ag := range agents {
		if err := ag.Init(sd); err != nil {
			return nil, nil, err
		}
	}

	var recs []TurnRecord
	node := game.NewRootNode(sc.Position(), game.PlayerOne, 0)
	for !rules.GameOver(node) {
		if err := ctx.Err(); err != nil {
			return nil, nil, err
		}
		onTurn := node.OnTurn()
		ag := agents[onTurn]
		t := time.Now()
		act := ag.NextMove(ctx, node)
		elapsed := time.Since(t)

		next := rules.Apply(node.Position(), onTurn, act)
		if next == nil {
			log.Warn().Str("match", id).Str("agent", ag.Name()).
				Stringer("action", act).Msg("illegal-move-replaced-by-stay")
			act = game.ActionStay
			next = rules.Apply(node.Position(), onTurn, act)
		}
		if a.keepTurns {
			rec := newTurnRecord(id, rules, node, ag.Name(), act)
			rec.ElapsedUs = elapsed.Microseconds()
			if onTurn == res.MinimaxSeat {
				if dec := mm.LastDecision(); dec != nil && dec.Best != nil {
					rec.Depth = int32(dec.Best.Depth)
					rec.Value = dec.Best.Value
				}
			}
			recs = append(recs, rec)
		}
		if onTurn == res.MinimaxSeat {
			res.MinimaxMoves++
		}
		node = game.NewRootNode(next, onTurn.Opponent(), node.Turn()+1)
	}
	res.Scores = node.Position().Scores()
	res.Turns = node.Turn()
	res.FishCaught = res.FishAtStart - node.Position().NumFish()
	return res, recs, nil
}

// Summarize tallies match results.
func Summarize(results []*MatchResult) *Report {
	rep := &Report{Matches: results}
	rep.margins = lo.Map(results, func(r *MatchResult, _ int) float64 {
		return float64(r.Margin())
	})
	for _, m := range rep.margins {
		switch {
		case m > 0:
			rep.Wins++
		case m < 0:
			rep.Losses++
		default:
			rep.Draws++
		}
	}
	rep.Margins = stats.Summarize(rep.margins)
	return rep
}

// WinRate counts a draw as half a win.
func (r *Report) WinRate() float64 {
	return stats.WinRate(r.Wins, r.Draws, len(r.Matches))
}

// Fprint writes a human-readable report with a histogram of margins.
func (r *Report) Fprint(w io.Writer) error {
	lo95, hi95 := r.Margins.ConfidenceInterval(95)
	fmt.Fprintf(w, "matches: %d  wins: %d  losses: %d  draws: %d  win rate: %.3f\n",
		len(r.Matches), r.Wins, r.Losses, r.Draws, r.WinRate())
	fmt.Fprintf(w, "margin: mean %.2f  stdev %.2f  min %.0f  max %.0f  95%% ci [%.2f, %.2f]\n",
		r.Margins.Mean, r.Margins.StdDev, r.Margins.Min, r.Margins.Max, lo95, hi95)
	if r.Elapsed > 0 {
		fmt.Fprintf(w, "elapsed: %v\n", r.Elapsed)
	}
	if len(r.margins) == 0 || r.Margins.Min == r.Margins.Max {
		return nil
	}
	fmt.Fprintln(w, "score margins:")
	h := histogram.Hist(histogramBins, r.margins)
	return histogram.Fprint(w, h, histogram.Linear(40))
}
