package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
)

type keyMap struct {
	Submit   key.Binding
	Older    key.Binding
	Newer    key.Binding
	PageUp   key.Binding
	PageDown key.Binding
	Quit     key.Binding
}

var keys = keyMap{
	Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("Enter", "send the command")),
	Older:    key.NewBinding(key.WithKeys("up"), key.WithHelp("Up", "recall earlier commands")),
	Newer:    key.NewBinding(key.WithKeys("down"), key.WithHelp("Down", "")),
	PageUp:   key.NewBinding(key.WithKeys("pgup"), key.WithHelp("PgUp", "scroll the story")),
	PageDown: key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("PgDn", "")),
	Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("Ctrl+C", "leave at once")),
}

// helpLines lists the bindings, pairing those that share a description.
func (k keyMap) helpLines() []string {
	rows := [][]key.Binding{{k.Submit}, {k.Older, k.Newer}, {k.PageUp, k.PageDown}, {k.Quit}}
	lines := []string{"Keys:"}
	for _, row := range rows {
		names := make([]string, len(row))
		for i, b := range row {
			names[i] = b.Help().Key
		}
		lines = append(lines, fmt.Sprintf("  %-12s  %s", strings.Join(names, "/"), row[0].Help().Desc))
	}
	return lines
}

// scrollKeys leaves only paging to the viewport; Up and Down belong to the
// input history.
func scrollKeys() viewport.KeyMap {
	off := key.NewBinding(key.WithDisabled())
	return viewport.KeyMap{
		PageUp:       keys.PageUp,
		PageDown:     keys.PageDown,
		HalfPageUp:   off,
		HalfPageDown: off,
		Up:           off,
		Down:         off,
	}
}

// handleKey reports handled=false for keys the text input should receive.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd, bool) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.quitting = true
		return m, tea.Quit, true
	case key.Matches(msg, keys.Submit):
		next, cmd := m.handleEnter()
		return next, cmd, true
	case key.Matches(msg, keys.Older):
		if line, ok := m.history.Prev(); ok {
			m.recall(line)
		}
		return m, nil, true
	case key.Matches(msg, keys.Newer):
		line, ok := m.history.Next()
		if !ok {
			m.history.ResetCursor()
		}
		m.recall(line)
		return m, nil, true
	case key.Matches(msg, keys.PageUp, keys.PageDown):
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd, true
	}
	return m, nil, false
}

func (m *Model) recall(line string) {
	m.input.SetValue(line)
	m.input.CursorEnd()
}
