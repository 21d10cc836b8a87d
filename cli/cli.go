// Package cli provides terminal I/O, output formatting, and meta-command
// dispatch for the Crystal Kingdoms engine.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/crystalkingdoms/engine"
	"github.com/nathoo/crystalkingdoms/narrate"
	"github.com/nathoo/crystalkingdoms/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Engine    *engine.Engine
	Narrator  *narrate.Narrator
	In        io.Reader
	Out       io.Writer
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
}

// New creates a CLI wired to the given engine.
func New(eng *engine.Engine) *CLI {
	return &CLI{
		Engine:   eng,
		Narrator: narrate.New(eng.Catalog),
		In:       os.Stdin,
		Out:      os.Stdout,
	}
}

// Run starts the game loop. It shows the intro and the first prompt, then
// loops: prompt → input → step → output, until the session ends or input
// runs out. The only error returned is a corrupt-state error from the engine.
func (c *CLI) Run() error {
	c.printLines(c.Narrator.Banner())
	c.printResult(c.Engine.Start())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print("> ")
		if !scanner.Scan() {
			c.printLine("")
			return nil
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
				return nil // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result, err := c.Engine.Step(input)
		c.printLines(c.Narrator.Events(result.Events))
		if c.Trace {
			c.printLines(narrate.Trace(result))
		}
		if err != nil {
			return err
		}
		if result.Ending != types.EndNone {
			c.printLines(c.Narrator.Ending(result.Ending))
			return nil
		}
		c.printPrompt(result.Prompt)
	}
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/look":
		c.cmdLook()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdHelp() {
	c.printLines(HelpLines())
}

// HelpLines is the help text shared by the plain and full-screen front ends.
func HelpLines() []string {
	return []string{
		"System:",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /look         Describe where you are",
		"  /state        Debug: dump current state",
		"  /trace        Toggle debug trace output",
		"",
		"Answer each prompt with its number or name. Shortcuts:",
		"  explore (x)   use (i)   travel (m)   rest (r)   talk (t)   quit (q)",
		"  in combat:    attack (a)   defend (d)   use (i)   flee (f)",
		"  y / n         answer a question",
		"  0             cancel a list",
		"  again (g)     repeat your last command",
	}
}

func (c *CLI) cmdState() {
	p := c.Engine.Player
	if p == nil {
		c.printSystem("No character yet.")
		return
	}
	c.printSystem(fmt.Sprintf("Session: %s", c.Engine.SessionID))
	if rng, ok := c.Engine.RNG.(*engine.RNG); ok {
		c.printSystem(fmt.Sprintf("Seed: %d (draws: %d)", rng.Seed(), rng.Position()))
	}
	c.printSystem(fmt.Sprintf("%s the %s: health %d/%d, strength %d, agility %d, magic %d",
		p.Name, p.Class, p.Health, p.MaxHealth, p.Strength, p.Agility, p.Magic))
	c.printSystem(fmt.Sprintf("Location: %s", p.Location))
	c.printSystem(fmt.Sprintf("Inventory: %v", p.Inventory))
	if len(p.Journey) > 0 {
		c.printSystem(fmt.Sprintf("Journey: %v", p.Journey))
	}
	c.printSystem(fmt.Sprintf("Active: %v", p.ActiveQuests))
	c.printSystem(fmt.Sprintf("Progress: %v", p.QuestProgress))
	c.printSystem(fmt.Sprintf("Completed: %v", p.QuestsCompleted))
}

func (c *CLI) cmdLook() {
	loc, err := c.Engine.Describe()
	if err != nil {
		c.printSystem(err.Error())
		return
	}
	c.printLine(loc.Name)
	c.printLine(loc.Description)
	if len(loc.NPCs) > 0 {
		c.printLine("Here: " + strings.Join(loc.NPCs, ", "))
	}
}

func (c *CLI) printResult(result types.Result) {
	c.printLines(c.Narrator.Events(result.Events))
	c.printPrompt(result.Prompt)
}

func (c *CLI) printPrompt(p *types.Prompt) {
	var enemy *types.Enemy
	if en, ok := c.Engine.Enemy(); ok {
		enemy = &en
	}
	c.printLine("")
	c.printLines(c.Narrator.Prompt(p, c.Engine.Player, enemy))
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
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
