package arena

import (
	"bytes"
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
)

func smallArenaConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigArenaMatches, 4)
	cfg.Set(config.ConfigArenaThreads, 2)
	cfg.Set(config.ConfigArenaFish, 4)
	cfg.Set(config.ConfigArenaOpponent, "random")
	cfg.Set(config.ConfigMaxTurns, 12)
	cfg.Set(config.ConfigTimeLimitMs, 500)
	cfg.Set(config.ConfigMaxDepth, 3)
	return cfg
}

func TestSummarize(t *testing.T) {
	is := is.New(t)
	results := []*MatchResult{
		{MinimaxSeat: game.PlayerOne, Scores: [2]int{5, 2}},
		{MinimaxSeat: game.PlayerTwo, Scores: [2]int{4, 2}},
		{MinimaxSeat: game.PlayerOne, Scores: [2]int{1, 1}},
		{MinimaxSeat: game.PlayerTwo, Scores: [2]int{0, 5}},
	}
	rep := Summarize(results)
	is.Equal(rep.Wins, 2)
	is.Equal(rep.Losses, 1)
	is.Equal(rep.Draws, 1)
	assert.InDelta(t, 1.5, rep.Margins.Mean, 1e-9)
	is.Equal(rep.Margins.Min, -2.0)
	is.Equal(rep.Margins.Max, 5.0)
	assert.InDelta(t, 0.625, rep.WinRate(), 1e-9)

	var buf bytes.Buffer
	is.NoErr(rep.Fprint(&buf))
	is.True(strings.Contains(buf.String(), "matches: 4"))
	is.True(strings.Contains(buf.String(), "score margins:"))
}

func TestSummarizeEmpty(t *testing.T) {
	is := is.New(t)
	rep := Summarize(nil)
	is.Equal(rep.Wins+rep.Losses+rep.Draws, 0)
	var buf bytes.Buffer
	is.NoErr(rep.Fprint(&buf))
}

func TestRun(t *testing.T) {
	is := is.New(t)
	a := New(smallArenaConfig())
	a.SetKeepTurns(true)

	rep, err := a.Run(context.Background())
	is.NoErr(err)
	is.Equal(len(rep.Matches), 4)
	is.Equal(rep.Wins+rep.Losses+rep.Draws, 4)

	totalTurns := 0
	for i, m := range rep.Matches {
		is.Equal(m.ID, matchID(i))
		is.Equal(m.MinimaxSeat, game.Player(i%2))
		is.True(m.Turns <= 12)
		is.True(m.FishCaught <= m.FishAtStart)
		totalTurns += m.Turns
	}
	recs := a.Records()
	is.Equal(len(recs), totalTurns)
	for _, r := range recs {
		if r.Agent == "minimax" {
			is.True(r.Depth >= 2)
		}
	}
}

func TestPlayMatchIsReproducible(t *testing.T) {
	is := is.New(t)
	cfg := smallArenaConfig()
	cfg.Set(config.ConfigArenaOpponent, "greedy")
	a := New(cfg)

	first, _, err := a.PlayMatch(context.Background(), 3)
	is.NoErr(err)
	second, _, err := a.PlayMatch(context.Background(), 3)
	is.NoErr(err)
	is.Equal(first.FishAtStart, second.FishAtStart)
	is.Equal(first.Scores, second.Scores)
	is.Equal(first.Turns, second.Turns)
	is.Equal(first.MinimaxSeat, game.PlayerTwo)
}

func TestPlayMatchCancelled(t *testing.T) {
	is := is.New(t)
	a := New(smallArenaConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err := a.PlayMatch(ctx, 0)
	is.Equal(err, context.Canceled)
}

func TestRecordsRoundTrip(t *testing.T) {
	is := is.New(t)
	a := New(smallArenaConfig())
	a.SetKeepTurns(true)
	_, recs, err := a.PlayMatch(context.Background(), 1)
	is.NoErr(err)
	is.True(len(recs) > 0)

	path := filepath.Join(t.TempDir(), "out", "matches.parquet")
	is.NoErr(WriteRecords(path, recs))
	back, err := ReadRecords(path)
	is.NoErr(err)
	is.Equal(len(back), len(recs))
	for i := range recs {
		is.Equal(back[i].MatchID, recs[i].MatchID)
		is.Equal(back[i].Turn, recs[i].Turn)
		is.Equal(back[i].Action, recs[i].Action)
		is.Equal(back[i].Position().Key(), recs[i].Position().Key())
	}
}
