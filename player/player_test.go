package player

import (
	"context"
	"testing"
	"time"

	"github.com/matryer/is"

	"github.com/domino14/fishderby/config"
	"github.com/domino14/fishderby/game"
	"github.com/domino14/fishderby/minimax"
)

func adjacentFishRoot(onTurn game.Player) *game.Node {
	pos := game.NewPosition(
		[2]game.Coord{{X: 5, Y: 10}, {X: 15, Y: 19}},
		map[game.FishID]game.Coord{0: {X: 5, Y: 9}, 1: {X: 17, Y: 2}},
		map[game.FishID]int{0: 10, 1: 2},
		[2]int{0, 0})
	return game.NewRootNode(pos, onTurn, 0)
}

func testRules(t *testing.T) *game.Rules {
	rules, err := game.NewRules(20, 20, 0)
	if err != nil {
		t.Fatal(err)
	}
	return rules
}

var testSession = SessionData{0: {Score: 10, Type: 3}, 1: {Score: 2, Type: 1}}

func TestMinimaxPlayerNeedsSession(t *testing.T) {
	is := is.New(t)
	p, err := NewMinimaxPlayer(config.DefaultConfig(), testRules(t))
	is.NoErr(err)
	_, err = p.SearchBestNextMove(context.Background(), adjacentFishRoot(game.PlayerOne))
	is.Equal(err, ErrNotInitialized)
	is.Equal(p.NextMove(context.Background(), adjacentFishRoot(game.PlayerOne)), game.ActionStay)
}

func TestMinimaxPlayerCatchesFish(t *testing.T) {
	is := is.New(t)
	p, err := NewMinimaxPlayer(config.DefaultConfig(), testRules(t))
	is.NoErr(err)
	is.NoErr(p.Init(testSession))

	a, err := p.SearchBestNextMove(context.Background(), adjacentFishRoot(game.PlayerOne))
	is.NoErr(err)
	is.Equal(a, game.ActionDown)
	is.True(p.LastDecision() != nil)
	is.True(len(p.LastDecision().Depths) >= 1)
}

func TestCacheSurvivesCycles(t *testing.T) {
	is := is.New(t)
	rules := testRules(t)
	p, err := NewMinimaxPlayer(config.DefaultConfig(), rules)
	is.NoErr(err)
	is.NoErr(p.Init(testSession))

	root := adjacentFishRoot(game.PlayerOne)
	_, err = p.SearchBestNextMove(context.Background(), root)
	is.NoErr(err)
	is.True(p.TranspositionTable().Contains(root.Position().Key()))

	next := game.NewRootNode(rules.Apply(root.Position(), game.PlayerOne, game.ActionUp), game.PlayerOne, 2)
	_, err = p.SearchBestNextMove(context.Background(), next)
	is.NoErr(err)
	is.True(p.TranspositionTable().Contains(root.Position().Key()))
	is.True(p.TranspositionTable().Contains(next.Position().Key()))

	// a new session starts clean.
	is.NoErr(p.Init(testSession))
	is.Equal(p.TranspositionTable().Len(), 0)
}

func TestCachePerCycle(t *testing.T) {
	is := is.New(t)
	rules := testRules(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigCachePerCycle, true)
	p, err := NewMinimaxPlayer(cfg, rules)
	is.NoErr(err)
	is.NoErr(p.Init(testSession))

	root := adjacentFishRoot(game.PlayerOne)
	_, err = p.SearchBestNextMove(context.Background(), root)
	is.NoErr(err)

	next := game.NewRootNode(rules.Apply(root.Position(), game.PlayerOne, game.ActionUp), game.PlayerOne, 2)
	_, err = p.SearchBestNextMove(context.Background(), next)
	is.NoErr(err)
	is.True(!p.TranspositionTable().Contains(root.Position().Key()))
	is.Equal(p.TranspositionTable().Len(), 1)
}

func TestCachePerCycleStaysWithinBudget(t *testing.T) {
	is := is.New(t)
	rules := testRules(t)
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigCachePerCycle, true)
	p, err := NewMinimaxPlayer(cfg, rules)
	is.NoErr(err)
	budget := time.Duration(cfg.GetInt(config.ConfigTimeLimitMs)) * time.Millisecond

	ts := time.Now()
	is.NoErr(p.Init(testSession))
	is.True(time.Since(ts) < budget)
	is.True(p.TranspositionTable().SizeHint() <= minimax.MaxPresize)

	node := adjacentFishRoot(game.PlayerOne)
	for i := 0; i < 5; i++ {
		ts = time.Now()
		a, err := p.SearchBestNextMove(context.Background(), node)
		is.NoErr(err)
		elapsed := time.Since(ts)
		t.Logf("cycle %d took %v", i, elapsed)
		is.True(elapsed < budget+15*time.Millisecond)
		pos := rules.Apply(node.Position(), game.PlayerOne, a)
		node = game.NewRootNode(pos, game.PlayerOne, node.Turn()+2)
	}
}

func TestMinimaxPlayerSecondSeat(t *testing.T) {
	is := is.New(t)
	rules := testRules(t)
	p, err := NewMinimaxPlayer(config.DefaultConfig(), rules)
	is.NoErr(err)
	is.NoErr(p.Init(testSession))

	pos := game.NewPosition(
		[2]game.Coord{{X: 15, Y: 19}, {X: 5, Y: 10}},
		map[game.FishID]game.Coord{0: {X: 4, Y: 10}},
		map[game.FishID]int{0: 10},
		[2]int{0, 0})
	is.Equal(p.NextMove(context.Background(), game.NewRootNode(pos, game.PlayerTwo, 1)), game.ActionLeft)
}

func TestGreedyPlayer(t *testing.T) {
	is := is.New(t)
	a, err := NewAgent(AgentGreedy, config.DefaultConfig(), testRules(t))
	is.NoErr(err)
	is.Equal(a.Name(), AgentGreedy)
	is.Equal(a.NextMove(context.Background(), adjacentFishRoot(game.PlayerOne)), game.ActionDown)
}

func TestRandomPlayerPlaysLegalMoves(t *testing.T) {
	is := is.New(t)
	rules := testRules(t)
	a, err := NewAgent(AgentRandom, config.DefaultConfig(), rules)
	is.NoErr(err)
	root := adjacentFishRoot(game.PlayerOne)
	for i := 0; i < 50; i++ {
		m := a.NextMove(context.Background(), root)
		_, legal := rules.Destination(root.Position(), game.PlayerOne, m)
		is.True(legal)
	}
}

func TestUnknownAgent(t *testing.T) {
	is := is.New(t)
	_, err := NewAgent("oracle", config.DefaultConfig(), testRules(t))
	is.True(err != nil)
}

func TestSessionDataFromScenario(t *testing.T) {
	is := is.New(t)
	sc := game.RandomScenario("session", 20, 20, 0, 6)
	sd := SessionDataFromScenario(sc)
	is.Equal(len(sd), 6)
	total := 0
	for _, f := range sc.Fish {
		is.Equal(sd[f.ID], FishInfo{Score: f.Score, Type: f.Type})
		total += f.Score
	}
	is.Equal(sd.TotalScore(), total)
}
