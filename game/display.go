package game

import (
	"fmt"
	"strings"
)

const sideTextWidth = 36

func splitSubN(s string, n int) []string {
	runes := []rune(s)
	var subs []string
	for len(runes) > n {
		subs = append(subs, string(runes[:n]))
		runes = runes[n:]
	}
	if len(runes) > 0 {
		subs = append(subs, string(runes))
	}
	return subs
}

// addText writes text to the right of the board, starting at row and
// wrapping onto the following rows.
func addText(lines []string, row int, hpad int, text string) int {
	for _, chunk := range splitSubN(text, sideTextWidth) {
		if row >= len(lines) {
			break
		}
		lines[row] = lines[row] + strings.Repeat(" ", hpad) + chunk
		row++
	}
	return row
}

func cellGlyph(pos *Position, c Coord, fishAt map[Coord]FishID) string {
	switch {
	case pos.hooks[0] == c:
		return "0"
	case pos.hooks[1] == c:
		return "1"
	}
	if id, ok := fishAt[c]; ok {
		if pos.fishScores[id] < 0 {
			return "x"
		}
		return "f"
	}
	return "."
}

// ToDisplayText draws pos on a width x height board, top row first, with
// the scores and fish listed alongside.
func ToDisplayText(pos *Position, width, height int, onTurn Player) string {
	fishAt := make(map[Coord]FishID, len(pos.fishIDs))
	for _, id := range pos.fishIDs {
		fishAt[pos.fishCoords[id]] = id
	}
	lines := make([]string, 0, height+1)
	header := "   "
	for x := 0; x < width; x++ {
		header += fmt.Sprintf("%-2d", x%100)
	}
	lines = append(lines, header)
	for y := height - 1; y >= 0; y-- {
		var sb strings.Builder
		fmt.Fprintf(&sb, "%2d ", y)
		for x := 0; x < width; x++ {
			sb.WriteString(cellGlyph(pos, Coord{X: x, Y: y}, fishAt))
			sb.WriteByte(' ')
		}
		lines = append(lines, sb.String())
	}

	hpad := 3
	row := 1
	for pi := PlayerOne; pi <= PlayerTwo; pi++ {
		marker := " "
		if pi == onTurn {
			marker = "*"
		}
		row = addText(lines, row, hpad, fmt.Sprintf("%s %v  hook %v  score %d",
			marker, pi, pos.hooks[pi], pos.playerScores[pi]))
	}
	row = addText(lines, row+1, hpad, fmt.Sprintf("Fish left: %d", len(pos.fishIDs)))
	for _, id := range pos.fishIDs {
		row = addText(lines, row, hpad, fmt.Sprintf("  #%d at %v worth %d",
			id, pos.fishCoords[id], pos.fishScores[id]))
	}
	return strings.Join(lines, "\n") + "\n"
}
