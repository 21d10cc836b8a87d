package tui

import (
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Crystal blues mark structure and input; warm tones mark combat and loot.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleStatusDanger = lipgloss.NewStyle().
				Background(lipgloss.Color("236")).
				Foreground(lipgloss.Color("203")).
				Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("86"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleHeader = lipgloss.NewStyle().
			Foreground(lipgloss.Color("117")).
			Bold(true)

	styleOptionNumber = lipgloss.NewStyle().
				Foreground(lipgloss.Color("75")).
				Bold(true)

	styleCombat = lipgloss.NewStyle().
			Foreground(lipgloss.Color("209"))

	styleReward = lipgloss.NewStyle().
			Foreground(lipgloss.Color("220"))

	styleDialogue = lipgloss.NewStyle().
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("80"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// lineKind selects the style of a transcript line.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindHeader
	kindOption
	kindCombat
	kindReward
	kindDialogue
	kindSystem
	kindError
	kindTrace
	kindInput // echoed player command
	kindMeta  // slash-command output, never classified
)

var optionLine = regexp.MustCompile(`^\d+\. `)

// classifyLine picks a style for a narrator line by its wording.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "==="),
		line == "Actions:", line == "Combat Options:", line == "Inventory:",
		line == "Available locations:", line == "NPCs:", line == "Available Classes:":
		return kindHeader
	case optionLine.MatchString(line):
		return kindOption
	case strings.HasPrefix(line, "Invalid"),
		strings.HasPrefix(line, "Please "),
		strings.HasPrefix(line, "You couldn't"),
		strings.HasPrefix(line, "You have fallen"),
		line == "Game Over!":
		return kindError
	case strings.Contains(line, " damage"),
		strings.HasPrefix(line, "You encounter"),
		strings.HasPrefix(line, "You defeated"),
		strings.HasSuffix(line, "final battle!"):
		return kindCombat
	case strings.HasPrefix(line, "Quest "),
		strings.HasPrefix(line, "Received reward"),
		strings.HasPrefix(line, "New quest available"),
		strings.HasPrefix(line, "You found"):
		return kindReward
	case isSpeech(line):
		return kindDialogue
	default:
		return kindNarrative
	}
}

// isSpeech reports an NPC line of the form "Proper Name: text".
func isSpeech(line string) bool {
	name, text, ok := strings.Cut(line, ": ")
	if !ok || text == "" || name == "" {
		return false
	}
	// Status lines such as "Health: 80/100" and "Dark Knight Health: 41/70"
	// are not speech.
	words := strings.Fields(name)
	if len(words) < 2 || strings.HasPrefix(name, " ") || words[len(words)-1] == "Health" {
		return false
	}
	for _, w := range words {
		if r := w[0]; r < 'A' || r > 'Z' {
			return false
		}
	}
	return true
}

// styledOption renders "3. Rest" with the number highlighted.
func styledOption(line string) string {
	loc := optionLine.FindStringIndex(line)
	if loc == nil {
		return styleNarrative.Render(line)
	}
	return styleOptionNumber.Render(line[:loc[1]]) + styleNarrative.Render(line[loc[1]:])
}

// renderLine styles an already wrapped line.
func renderLine(line string, kind lineKind) string {
	if line == "" {
		return ""
	}
	switch kind {
	case kindInput:
		return stylePlayerInput.Render(line)
	case kindMeta:
		return styleSystem.Render("[" + line + "]")
	case kindHeader:
		return styleHeader.Render(line)
	case kindOption:
		return styledOption(line)
	case kindCombat:
		return styleCombat.Render(line)
	case kindReward:
		return styleReward.Render(line)
	case kindDialogue:
		return styleDialogue.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	}
	return styleNarrative.Render(line)
}

// wordWrap breaks text at spaces so no line is wider than width cells.
// Continuation lines repeat the leading indentation.
func wordWrap(text string, width int) string {
	if width <= 0 || lipgloss.Width(text) <= width {
		return text
	}
	body := strings.TrimLeft(text, " ")
	indent := text[:len(text)-len(body)]

	var lines []string
	cur := indent
	for _, w := range strings.Fields(body) {
		switch {
		case cur == indent:
			cur += w
		case lipgloss.Width(cur)+1+lipgloss.Width(w) > width:
			lines = append(lines, cur)
			cur = indent + w
		default:
			cur += " " + w
		}
	}
	return strings.Join(append(lines, cur), "\n")
}
