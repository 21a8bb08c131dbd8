package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/davekch/textgame/engine"
	"github.com/davekch/textgame/engine/save"
	"github.com/davekch/textgame/messages"
	"github.com/davekch/textgame/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the textgame TUI.
type Model struct {
	engine   *engine.Engine
	messages *messages.Table

	viewport viewport.Model
	input    textinput.Model
	history  *History

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width    int
	height   int
	ready    bool
	quitting bool
	lastCmd  string
	saveDir  string
}

// gameOutputMsg carries output from the engine into the Update loop.
type gameOutputMsg struct {
	input    string    // echoed player input (empty for intro)
	lines    []rawLine // classified output lines
	isSystem bool      // true for meta-command output
}

// New creates a TUI model wired to the given engine.
func New(eng *engine.Engine, table *messages.Table) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	home, _ := os.UserHomeDir()
	return Model{
		engine:   eng,
		messages: table,
		input:    ti,
		history:  NewHistory(100),
		saveDir:  filepath.Join(home, ".textgame", "saves"),
	}
}

// Run starts the Bubble Tea program.
func Run(eng *engine.Engine, table *messages.Table) error {
	m := New(eng, table)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

// Init returns the initial command that produces intro text and first look.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.initialOutput())
}

func (m Model) initialOutput() tea.Cmd {
	return func() tea.Msg {
		game := m.engine.Defs.Game

		var lines []rawLine
		lines = append(lines, rawLine{text: game.Title + " v" + game.Version + " by " + game.Author})
		lines = append(lines, rawLine{})

		if game.Intro != "" {
			lines = append(lines, rawLine{text: game.Intro})
			lines = append(lines, rawLine{})
		}

		lines = append(lines, m.runCommand("look")...)

		return gameOutputMsg{lines: lines}
	}
}

// runCommand submits a game command and converts the result into
// classified output lines.
func (m Model) runCommand(input string) []rawLine {
	result, err := m.engine.Submit(input)
	if err != nil {
		return []rawLine{{text: fmt.Sprintf("Engine error: %v", err), isSystem: true}}
	}
	return m.resultLines(result)
}

func (m Model) resultLines(result types.Result) []rawLine {
	lines := make([]rawLine, 0, len(result.Outcomes))
	for _, o := range result.Outcomes {
		text := m.messages.Render(o)
		if text == "" {
			continue
		}
		lines = append(lines, rawLine{text: text, kind: classifyCode(o.Code)})
	}
	return lines
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		vpHeight := m.height - 2 // 1 status bar + 1 input line
		if vpHeight < 1 {
			vpHeight = 1
		}

		if !m.ready {
			m.viewport = viewport.New(m.width, vpHeight)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		} else {
			m.viewport.Width = m.width
			m.viewport.Height = vpHeight
		}

		m.refreshViewport()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "enter":
			return m.handleEnter()

		case "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case "pgup", "pgdown":
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	cmds = append(cmds, inputCmd)

	return m, tea.Batch(cmds...)
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// "again" / "g" repeats the last game command, except while a yes/no
	// question is pending.
	lower := strings.ToLower(input)
	if !m.engine.Pending() {
		if lower == "again" || lower == "g" {
			if m.lastCmd == "" {
				m = m.appendOutput(gameOutputMsg{
					input: input, lines: []rawLine{{text: "Nothing to repeat."}}, isSystem: true,
				})
				return m, nil
			}
			input = m.lastCmd
		} else {
			m.lastCmd = input
		}
	}

	// Meta-commands.
	if strings.HasPrefix(input, "/") {
		output, quit := m.handleMeta(input)
		m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m = m.appendOutput(gameOutputMsg{input: input, lines: m.runCommand(input)})
	return m, nil
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		if msg.isSystem {
			line.isSystem = true
		}
		m.rawLines = append(m.rawLines, line)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current width
// and updates the viewport content.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := m.width
	if width < 10 {
		width = 10
	}

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	words := strings.Fields(text)
	lineLen := 0

	for i, word := range words {
		wLen := len(word)

		if i == 0 {
			result.WriteString(word)
			lineLen = wLen
			continue
		}

		if lineLen+1+wLen > width {
			result.WriteString("\n")
			result.WriteString(word)
			lineLen = wLen
		} else {
			result.WriteString(" ")
			result.WriteString(word)
			lineLen += 1 + wLen
		}
	}

	return result.String()
}

// View renders the full TUI layout: viewport + status bar + input.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]rawLine, bool) {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		return system("Goodbye."), true

	case "/save":
		return m.cmdSave(arg), false

	case "/load":
		return m.cmdLoad(arg), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	default:
		return system(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)), false
	}
}

func system(texts ...string) []rawLine {
	lines := make([]rawLine, 0, len(texts))
	for _, t := range texts {
		lines = append(lines, rawLine{text: t, isSystem: true})
	}
	return lines
}

func (m *Model) cmdSave(name string) []rawLine {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Snapshot(m.engine)
	if err != nil {
		return system(fmt.Sprintf("Save failed: %v", err))
	}

	if err := os.MkdirAll(m.saveDir, 0o755); err != nil {
		return system(fmt.Sprintf("Save failed: %v", err))
	}

	path := filepath.Join(m.saveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return system(fmt.Sprintf("Save failed: %v", err))
	}

	return system(fmt.Sprintf("Game saved to %s.", name))
}

func (m *Model) cmdLoad(name string) []rawLine {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(m.saveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		return system(fmt.Sprintf("Load failed: %v", err))
	}

	sd, err := save.Load(data)
	if err != nil {
		return system(fmt.Sprintf("Load failed: %v", err))
	}

	if err := save.Apply(m.engine, sd); err != nil {
		return system(fmt.Sprintf("Load failed: %v", err))
	}

	output := system(fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.Turn))
	output = append(output, m.runCommand("look")...)
	return output
}

func (m *Model) cmdHelp() []rawLine {
	return system(
		"System:",
		"  /save [name]  — Save game (default: quicksave)",
		"  /load [name]  — Load game (default: quicksave)",
		"  /quit         — Exit game",
		"  /help         — Show this help",
		"  /state        — Debug: dump current state",
		"",
		"Game commands:",
		"  look (l)          — Describe the room",
		"  go <dir>          — Move (or just type n/s/e/w/u/d)",
		"  go back           — Return where you came from",
		"  take <item>       — Pick something up (take all works too)",
		"  drop <item>       — Put something down",
		"  open/close <dir>  — Open or close a door with a carried key",
		"  attack <monster>  — Fight",
		"  listen            — Listen to the room",
		"  inventory (i)     — Check what you're carrying",
		"  score             — Show your score",
		"  hint              — Ask for a hint (may cost points)",
		"  again (g)         — Repeat your last command",
		"",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	)
}

func (m *Model) cmdState() []rawLine {
	w := m.engine.World
	p := m.engine.Player
	daytime := "day"
	if w.Night {
		daytime = "night"
	}
	return system(
		fmt.Sprintf("Turn: %d (%s)", w.Time, daytime),
		fmt.Sprintf("Location: %s", p.RoomID()),
		fmt.Sprintf("Inventory: %v", p.InventoryIDs()),
		fmt.Sprintf("Score: %d", p.Score()),
		fmt.Sprintf("Alive: %v", p.Alive()),
	)
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (we use those for input history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
