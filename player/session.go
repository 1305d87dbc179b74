package player

import (
	"github.com/domino14/fishderby/game"
)

// FishInfo is what the first observation of a session tells us about a fish.
type FishInfo struct {
	Score int `json:"score"`
	Type  int `json:"type"`
}

// SessionData maps every fish of a session to its score and type. It is
// known before the first decision and never changes.
type SessionData map[game.FishID]FishInfo

// SessionDataFromScenario extracts the session data a game server would
// announce for sc.
func SessionDataFromScenario(sc *game.Scenario) SessionData {
	sd := make(SessionData, len(sc.Fish))
	for _, f := range sc.Fish {
		sd[f.ID] = FishInfo{Score: f.Score, Type: f.Type}
	}
	return sd
}

// TotalScore is the sum of all fish scores, positive and negative.
func (sd SessionData) TotalScore() int {
	t := 0
	for _, f := range sd {
		t += f.Score
	}
	return t
}
