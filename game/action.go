package game

import (
	"errors"
	"strings"
)

// Action is one of the five hook moves. The numbering follows the wire
// protocol of the game server.
type Action int

const (
	ActionNone Action = iota - 1
	ActionStay
	ActionUp
	ActionDown
	ActionLeft
	ActionRight
)

// Actions lists every action in the order children are generated.
var Actions = [...]Action{ActionStay, ActionUp, ActionDown, ActionLeft, ActionRight}

var ErrUnknownAction = errors.New("unknown action")

var actionNames = map[Action]string{
	ActionNone:  "none",
	ActionStay:  "stay",
	ActionUp:    "up",
	ActionDown:  "down",
	ActionLeft:  "left",
	ActionRight: "right",
}

func (a Action) String() string {
	if s, ok := actionNames[a]; ok {
		return s
	}
	return "unknown"
}

// ParseAction converts the user-visible name back to an Action.
func ParseAction(s string) (Action, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, a := range Actions {
		if actionNames[a] == s {
			return a, nil
		}
	}
	return ActionNone, ErrUnknownAction
}

// delta returns the hook displacement for an action.
func (a Action) delta() (dx, dy int) {
	switch a {
	case ActionUp:
		return 0, 1
	case ActionDown:
		return 0, -1
	case ActionLeft:
		return -1, 0
	case ActionRight:
		return 1, 0
	}
	return 0, 0
}
