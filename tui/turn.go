package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/crystalkingdoms/narrate"
	"github.com/nathoo/crystalkingdoms/types"
)

const exitHint = "[Press Enter to exit.]"

// handleEnter submits the input line. Once the session has ended, Enter
// leaves the program.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	if m.ended {
		m.quitting = true
		return m, tea.Quit
	}

	line := strings.TrimSpace(m.input.Value())
	m.input.Reset()
	if line == "" {
		return m, nil
	}
	m.history.Push(line)
	m.history.ResetCursor()

	cmd, ok := m.repeat(line)
	if !ok {
		m.write(line, kindMeta, "Nothing to repeat.")
		return m, nil
	}
	if strings.HasPrefix(cmd, "/") {
		out, quit := m.handleMeta(cmd)
		m.write(cmd, kindMeta, out...)
		if quit {
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	}

	m.lastCmd = cmd
	m.play(cmd)
	return m, nil
}

// repeat resolves "again" and "g" to the last game command. Meta-commands
// are never repeated.
func (m Model) repeat(line string) (string, bool) {
	switch strings.ToLower(line) {
	case "again", "g":
		return m.lastCmd, m.lastCmd != ""
	}
	return line, true
}

// play runs one engine step and writes its events plus either the next
// prompt or the closing lines.
func (m *Model) play(cmd string) {
	res, err := m.engine.Step(cmd)
	out := m.narrator.Events(res.Events)
	if m.trace {
		out = append(out, narrate.Trace(res)...)
	}

	switch {
	case err != nil:
		m.err = err
		m.ended = true
		out = append(out, "", "[The game state is corrupt: "+err.Error()+"]", exitHint)
	case res.Ending != types.EndNone:
		m.ended = true
		out = append(out, m.narrator.Ending(res.Ending)...)
		out = append(out, "", exitHint)
	default:
		out = append(out, "")
		out = append(out, m.promptLines(res.Prompt)...)
	}
	m.write(cmd, kindNarrative, out...)
}

func (m Model) promptLines(p *types.Prompt) []string {
	var enemy *types.Enemy
	if en, ok := m.engine.Enemy(); ok {
		enemy = &en
	}
	return m.narrator.Prompt(p, m.engine.Player, enemy)
}
