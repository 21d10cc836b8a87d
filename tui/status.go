package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// lowHealth is the fraction of max health below which the bar turns red.
const lowHealth = 0.25

// renderStatusBar produces a full-width inverted status line showing
// location, health, the current foe, inventory and quest count.
func (m Model) renderStatusBar() string {
	p := m.engine.Player
	if p == nil {
		title := m.engine.Catalog.Game().Title
		return styleStatusBar.Width(m.width).Render(" " + title)
	}

	left := fmt.Sprintf(" %s | HP %d/%d", m.engine.Catalog.LocationName(p.Location), p.Health, p.MaxHealth)
	if en, ok := m.engine.Enemy(); ok {
		left += fmt.Sprintf(" | %s %d/%d", en.Name, en.CurrentHealth, en.Health)
	}

	quests := fmt.Sprintf("Q:%d/%d ", len(p.QuestsCompleted), m.engine.Catalog.QuestCount())
	right := quests

	// Show inventory items if they fit, otherwise just count.
	if len(p.Inventory) > 0 {
		candidate := fmt.Sprintf("Inv: %s | %s", m.narrator.Inventory(p), quests)
		if lipgloss.Width(left)+lipgloss.Width(candidate)+2 < m.width {
			right = candidate
		} else {
			right = fmt.Sprintf("Inv: %d | %s", len(p.Inventory), quests)
		}
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	style := styleStatusBar
	if float64(p.Health) < lowHealth*float64(p.MaxHealth) {
		style = styleStatusDanger
	}

	bar := left + strings.Repeat(" ", gap) + right
	return style.Width(m.width).Render(bar)
}
