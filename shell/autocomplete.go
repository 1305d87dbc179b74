package shell

import (
	"strings"

	"github.com/kballard/go-shellquote"

	"github.com/domino14/fishderby/game"
)

var commandNames = []string{
	"load", "random", "save", "show", "search", "play", "undo",
	"auto", "set", "config", "help", "exit",
}

var helpTopics = []string{"search", "scenario", "set"}

// ShellCompleter implements readline.AutoCompleter.
type ShellCompleter struct {
	sc *ShellController
}

// Do completes command names, actions for play, setting keys for set and
// topics for help.
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string
	switch {
	case len(fields) == 0 || (len(fields) == 1 && !endsWithSpace):
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	case len(fields) == 1 || (len(fields) == 2 && !endsWithSpace):
		if !endsWithSpace {
			prefix = fields[1]
		}
		switch fields[0] {
		case "play":
			for _, a := range game.Actions {
				completions = append(completions, a.String())
			}
		case "help":
			completions = helpTopics
		case "set":
			if c.sc != nil && c.sc.config != nil {
				completions = c.sc.config.AllKeys()
			}
		}
	}

	var out [][]rune
	for _, cand := range completions {
		if strings.HasPrefix(cand, prefix) {
			out = append(out, []rune(cand[len(prefix):]+" "))
		}
	}
	return out, len([]rune(prefix))
}
