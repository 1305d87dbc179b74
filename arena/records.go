package arena

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"

	"github.com/domino14/fishderby/game"
)

const recordSchema = "fishderby_turn_v1"

// TurnRecord is one move of an arena match. The position columns describe
// the board before the move was played.
type TurnRecord struct {
	MatchID  string `parquet:"match_id,dict"`
	Turn     int32  `parquet:"turn"`
	Player   int32  `parquet:"player"`
	Agent    string `parquet:"agent,dict"`
	Action   string `parquet:"action,dict"`
	Width    int32  `parquet:"width"`
	Height   int32  `parquet:"height"`
	MaxTurns int32  `parquet:"max_turns"`

	HookX  []int32 `parquet:"hook_x"`
	HookY  []int32 `parquet:"hook_y"`
	Scores []int32 `parquet:"scores"`

	FishID    []int32 `parquet:"fish_id"`
	FishX     []int32 `parquet:"fish_x"`
	FishY     []int32 `parquet:"fish_y"`
	FishScore []int32 `parquet:"fish_score"`

	// Search details, only filled in for the minimax agent.
	Depth     int32   `parquet:"depth"`
	Value     float64 `parquet:"value"`
	ElapsedUs int64   `parquet:"elapsed_us"`
}

func newTurnRecord(matchID string, rules *game.Rules, node *game.Node, agent string, a game.Action) TurnRecord {
	pos := node.Position()
	hooks := pos.Hooks()
	scores := pos.Scores()
	r := TurnRecord{
		MatchID:  matchID,
		Turn:     int32(node.Turn()),
		Player:   int32(node.OnTurn()),
		Agent:    agent,
		Action:   a.String(),
		Width:    int32(rules.Width()),
		Height:   int32(rules.Height()),
		MaxTurns: int32(rules.MaxTurns()),
		HookX:    []int32{int32(hooks[0].X), int32(hooks[1].X)},
		HookY:    []int32{int32(hooks[0].Y), int32(hooks[1].Y)},
		Scores:   []int32{int32(scores[0]), int32(scores[1])},
	}
	for _, id := range pos.FishIDs() {
		c, _ := pos.FishAt(id)
		r.FishID = append(r.FishID, int32(id))
		r.FishX = append(r.FishX, int32(c.X))
		r.FishY = append(r.FishY, int32(c.Y))
		r.FishScore = append(r.FishScore, int32(pos.FishScore(id)))
	}
	return r
}

// Position rebuilds the board the record was taken from.
func (r *TurnRecord) Position() *game.Position {
	coords := make(map[game.FishID]game.Coord, len(r.FishID))
	scores := make(map[game.FishID]int, len(r.FishID))
	for i, id := range r.FishID {
		coords[game.FishID(id)] = game.Coord{X: int(r.FishX[i]), Y: int(r.FishY[i])}
		scores[game.FishID(id)] = int(r.FishScore[i])
	}
	var hooks [2]game.Coord
	var pscores [2]int
	for i := 0; i < 2 && i < len(r.HookX) && i < len(r.HookY); i++ {
		hooks[i] = game.Coord{X: int(r.HookX[i]), Y: int(r.HookY[i])}
	}
	for i := 0; i < 2 && i < len(r.Scores); i++ {
		pscores[i] = int(r.Scores[i])
	}
	return game.NewPosition(hooks, coords, scores, pscores)
}

// WriteRecords writes rows to a zstd-compressed parquet file. The file
// appears at path only once it is complete.
func WriteRecords(path string, rows []TurnRecord) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	tmpPath := path + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, rows,
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", recordSchema),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

// ReadRecords reads every row of a file written by WriteRecords.
func ReadRecords(path string) ([]TurnRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	st, err := f.Stat()
	if err != nil {
		return nil, err
	}
	pf, err := parquet.OpenFile(f, st.Size())
	if err != nil {
		return nil, fmt.Errorf("open parquet: %w", err)
	}
	reader := parquet.NewGenericReader[TurnRecord](pf)
	defer reader.Close()

	rows := make([]TurnRecord, reader.NumRows())
	read := 0
	for read < len(rows) {
		n, err := reader.Read(rows[read:])
		read += n
		if err == io.EOF || (err == nil && n == 0) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read parquet: %w", err)
		}
	}
	return rows[:read], nil
}
