package tui

import (
	"fmt"
	"strings"

	"github.com/nathoo/crystalkingdoms/cli"
	"github.com/nathoo/crystalkingdoms/engine"
)

type metaFunc func(m *Model) (lines []string, quit bool)

var metaCommands = map[string]metaFunc{
	"/quit":  metaQuit,
	"/exit":  metaQuit,
	"/help":  (*Model).metaHelp,
	"/state": (*Model).metaState,
	"/look":  (*Model).metaLook,
	"/trace": (*Model).metaTrace,
}

// handleMeta runs a slash command and reports whether the program should quit.
func (m *Model) handleMeta(input string) ([]string, bool) {
	name := strings.ToLower(strings.Fields(input)[0])
	run, ok := metaCommands[name]
	if !ok {
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", name)}, false
	}
	return run(m)
}

func metaQuit(*Model) ([]string, bool) {
	return []string{"Farewell, traveller."}, true
}

func (m *Model) metaHelp() ([]string, bool) {
	return append(append(cli.HelpLines(), ""), keys.helpLines()...), false
}

func (m *Model) metaTrace() ([]string, bool) {
	m.trace = !m.trace
	if m.trace {
		return []string{"Trace output enabled."}, false
	}
	return []string{"Trace output disabled."}, false
}

// metaState shows the reproducibility header, the route taken so far and
// the full character sheet the compact menu leaves out.
func (m *Model) metaState() ([]string, bool) {
	p := m.engine.Player
	if p == nil {
		return []string{"No character yet."}, false
	}
	head := "Session " + m.engine.SessionID[:8]
	if rng, ok := m.engine.RNG.(*engine.RNG); ok {
		head += fmt.Sprintf(" | Seed: %d | %d draws", rng.Seed(), rng.Position())
	}

	route := []string{m.engine.Catalog.Game().Start}
	route = append(route, p.Journey...)
	for i, id := range route {
		route[i] = m.engine.Catalog.LocationName(id)
	}

	lines := []string{head, "Route: " + strings.Join(route, " -> "), ""}
	return append(lines, m.narrator.Status(p)...), false
}

func (m *Model) metaLook() ([]string, bool) {
	loc, err := m.engine.Describe()
	if err != nil {
		return []string{err.Error()}, false
	}
	lines := []string{loc.Name, loc.Description}
	if len(loc.NPCs) > 0 {
		lines = append(lines, "People here: "+strings.Join(loc.NPCs, ", "))
	}
	return lines, false
}
