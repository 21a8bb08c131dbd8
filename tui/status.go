package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/davekch/textgame/types"
)

// roomDisplayName derives a human-readable name from a room ID.
// "field_0" -> "Field 0", "hidden_cave" -> "Hidden Cave".
func roomDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if len(w) > 0 {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

// renderStatusBar produces a full-width inverted status line showing
// current room, exits, score, turn count, and daytime.
func (m Model) renderStatusBar() string {
	w := m.engine.World
	p := m.engine.Player

	roomName := roomDisplayName(p.RoomID())

	var dirs []string
	if room := w.Room(p.RoomID()); room != nil {
		for _, dir := range types.Directions {
			if room.HasConnection(dir) {
				dirs = append(dirs, dir)
			}
		}
	}
	exitStr := strings.Join(dirs, ",")

	daytime := "day"
	if w.Night {
		daytime = "night"
	}

	left := fmt.Sprintf(" %s | Exits: %s", roomName, exitStr)
	right := fmt.Sprintf("Score: %d | T:%d (%s) ", p.Score(), w.Time, daytime)

	if n := len(p.InventoryIDs()); n > 0 {
		candidate := fmt.Sprintf("Inv: %d | ", n) + right
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
