package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/davekch/textgame/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleFail = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleInfo = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))
)

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindCombat
	kindFail
	kindInfo
)

// classifyCode maps an outcome code to a display kind. Codes carry their
// group in the identifier, so the narrative text itself never needs to be
// inspected.
func classifyCode(code types.Code) lineKind {
	s := string(code)
	switch {
	case strings.HasPrefix(s, "fighting."):
		return kindCombat
	case strings.Contains(s, ".fail_") || strings.Contains(s, ".no_") ||
		code == types.NotUnderstood || code == types.TooManyArguments:
		return kindFail
	case strings.HasPrefix(s, "info."):
		return kindInfo
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindCombat:
		return styleCombat.Render(line)
	case kindFail:
		return styleFail.Render(line)
	case kindInfo:
		return styleInfo.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
