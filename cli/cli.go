// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the textgame engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/davekch/textgame/engine"
	"github.com/davekch/textgame/engine/save"
	"github.com/davekch/textgame/messages"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Messages  *messages.Table
	In        io.Reader
	Out       io.Writer
	SaveDir   string
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine, table *messages.Table) *CLI {
	home, _ := os.UserHomeDir()
	saveDir := filepath.Join(home, ".textgame", "saves")
	return &CLI{
		Engine:   eng,
		Messages: table,
		In:       os.Stdin,
		Out:      os.Stdout,
		SaveDir:  saveDir,
	}
}

// Run starts the game loop. It shows the intro, describes the starting room,
// then loops: prompt → input → dispatch → output.
func (c *CLI) Run() {
	if intro := c.Engine.Defs.Game.Intro; intro != "" {
		c.printLine(intro)
		c.printLine("")
	}

	c.submit("look")

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command, except during a
		// pending question where the answer must go through as typed.
		lower := strings.ToLower(input)
		if !c.Engine.Pending() {
			if lower == "again" || lower == "g" {
				if c.lastCmd == "" {
					c.printLine("Nothing to repeat.")
					continue
				}
				input = c.lastCmd
			} else {
				c.lastCmd = input
			}
		}

		c.submit(input)
	}
}

func (c *CLI) submit(input string) {
	result, err := c.Engine.Submit(input)
	if err != nil {
		c.printSystem(fmt.Sprintf("Engine error: %v", err))
		return
	}
	for _, line := range c.Messages.RenderResult(result) {
		c.printLine(line)
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]
	var arg string
	if len(parts) > 1 {
		arg = parts[1]
	}

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/save":
		c.cmdSave(arg)

	case "/load":
		c.cmdLoad(arg)

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdSave(name string) {
	if name == "" {
		name = "quicksave"
	}

	data, err := save.Snapshot(c.Engine)
	if err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	if err := os.MkdirAll(c.SaveDir, 0o755); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	path := filepath.Join(c.SaveDir, name+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		c.printSystem(fmt.Sprintf("Save failed: %v", err))
		return
	}

	c.printSystem(fmt.Sprintf("Game saved to %s.", name))
}

func (c *CLI) cmdLoad(name string) {
	if name == "" {
		name = "quicksave"
	}

	path := filepath.Join(c.SaveDir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	sd, err := save.Load(data)
	if err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}

	if err := save.Apply(c.Engine, sd); err != nil {
		c.printSystem(fmt.Sprintf("Load failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Game loaded from %s (turn %d).", name, sd.Turn))

	// Show current room after loading.
	c.submit("look")
}

func (c *CLI) cmdHelp() {
	help := []string{
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
	}
	for _, line := range help {
		c.printLine(line)
	}
}

func (c *CLI) cmdState() {
	w := c.Engine.World
	p := c.Engine.Player
	daytime := "day"
	if w.Night {
		daytime = "night"
	}
	c.printSystem(fmt.Sprintf("Turn: %d (%s)", w.Time, daytime))
	c.printSystem(fmt.Sprintf("Location: %s", p.RoomID()))
	c.printSystem(fmt.Sprintf("Inventory: %v", p.InventoryIDs()))
	c.printSystem(fmt.Sprintf("Score: %d", p.Score()))
	c.printSystem(fmt.Sprintf("Alive: %v", p.Alive()))
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
