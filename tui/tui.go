package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nathoo/crystalkingdoms/engine"
	"github.com/nathoo/crystalkingdoms/narrate"
)

// rawLine is one transcript line before wrapping and styling, kept so the
// transcript can be re-rendered when the terminal is resized.
type rawLine struct {
	text string
	kind lineKind
}

// Model is the Bubble Tea model for the Crystal Kingdoms TUI.
type Model struct {
	engine   *engine.Engine
	narrator *narrate.Narrator

	viewport viewport.Model
	input    textinput.Model
	history  *History
	rawLines []rawLine

	width    int
	height   int
	ready    bool
	trace    bool
	quitting bool
	ended    bool  // session over; the next Enter exits
	err      error // corrupt-state error that stopped the session
	lastCmd  string
}

// introMsg carries the banner and the first prompt.
type introMsg []string

// New creates a TUI model wired to the given engine. historySize bounds the
// input history.
func New(eng *engine.Engine, historySize int) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "type a number or a name"
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	n := narrate.New(eng.Catalog)
	n.Compact = true // the status bar carries location, health and inventory

	return Model{
		engine:   eng,
		narrator: n,
		input:    ti,
		history:  NewHistory(historySize),
	}
}

// Run starts the Bubble Tea program. It returns the engine's corrupt-state
// error if one ended the session.
func Run(eng *engine.Engine, historySize int) error {
	p := tea.NewProgram(New(eng, historySize), tea.WithAltScreen(), tea.WithMouseCellMotion())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.err
	}
	return nil
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.intro)
}

func (m Model) intro() tea.Msg {
	lines := m.narrator.Banner()
	res := m.engine.Start()
	lines = append(lines, m.narrator.Events(res.Events)...)
	return introMsg(append(lines, m.promptLines(res.Prompt)...))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil

	case introMsg:
		m.write("", kindNarrative, msg...)
		return m, nil

	case tea.MouseMsg:
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		if next, cmd, handled := m.handleKey(msg); handled {
			return next, cmd
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// resize lays out the viewport above the status bar and the input line.
func (m *Model) resize(width, height int) {
	m.width, m.height = width, height
	vpHeight := max(height-2, 1)
	if !m.ready {
		m.viewport = viewport.New(width, vpHeight)
		m.viewport.KeyMap = scrollKeys()
		m.ready = true
	} else {
		m.viewport.Width = width
		m.viewport.Height = vpHeight
	}
	m.refresh()
}

// write appends one exchange to the transcript: the echoed command, its
// output, then a blank separator. Lines other than kindMeta are classified
// for styling.
func (m *Model) write(cmd string, kind lineKind, lines ...string) {
	if cmd != "" {
		m.rawLines = append(m.rawLines, rawLine{text: "> " + cmd, kind: kindInput})
	}
	for _, line := range lines {
		k := kind
		if k != kindMeta {
			k = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rawLine{text: line, kind: k})
	}
	m.rawLines = append(m.rawLines, rawLine{})
	m.refresh()
}

// refresh re-wraps and re-styles the transcript at the current width and
// scrolls to the newest line.
func (m *Model) refresh() {
	if !m.ready {
		return
	}
	width := max(m.width, 10)
	styled := make([]string, len(m.rawLines))
	for i, rl := range m.rawLines {
		styled[i] = renderLine(wordWrap(rl.text, width), rl.kind)
	}
	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}
	return m.viewport.View() + "\n" + m.renderStatusBar() + "\n" + m.input.View()
}
