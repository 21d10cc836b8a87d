package narrate

import (
	"fmt"
	"strings"

	"github.com/nathoo/crystalkingdoms/engine/quest"
	"github.com/nathoo/crystalkingdoms/engine/state"
	"github.com/nathoo/crystalkingdoms/types"
)

// Prompt renders a pending prompt. c is nil before character creation;
// enemy is nil outside combat.
func (n *Narrator) Prompt(p *types.Prompt, c *types.Character, enemy *types.Enemy) []string {
	if p == nil {
		return nil
	}
	switch p.Kind {
	case types.PromptName:
		return []string{"=== Character Creation ===", "Enter your character's name:"}

	case types.PromptClass:
		lines := []string{"Available Classes:"}
		for i, o := range p.Options {
			cl, _ := n.Catalog.Class(o.Key)
			lines = append(lines, fmt.Sprintf("%d. %s (Health %d, Strength %d, Agility %d, Magic %d)",
				i+1, Title(o.Key), cl.Health, cl.Strength, cl.Agility, cl.Magic))
		}
		return append(lines, "Choose your class:")

	case types.PromptMenu:
		var lines []string
		if !n.Compact && c != nil {
			lines = append(lines, n.Status(c)...)
			lines = append(lines, "")
		}
		return append(append(lines, "Actions:"), numbered(p)...)

	case types.PromptCombat:
		var lines []string
		if c != nil {
			lines = append(lines, fmt.Sprintf("Your Health: %d/%d", c.Health, c.MaxHealth))
		}
		if enemy != nil {
			lines = append(lines, fmt.Sprintf("%s Health: %d/%d", enemy.Name, enemy.CurrentHealth, enemy.Health))
		}
		return append(append(lines, "Combat Options:"), numbered(p)...)

	case types.PromptItem:
		return append([]string{"Inventory:"}, numbered(p)...)

	case types.PromptDiscard:
		name := n.Catalog.ItemName(p.Subject)
		return []string{
			fmt.Sprintf("The %s cannot be used.", name),
			fmt.Sprintf("Discard the %s? This cannot be undone. (y/n)", name),
		}

	case types.PromptTravel:
		return append([]string{"Available locations:"}, numbered(p)...)

	case types.PromptNPC:
		return append([]string{"NPCs:"}, numbered(p)...)

	case types.PromptTurnIn:
		return []string{
			"You can complete: " + p.Subject,
			"Turn it in now? (y/n)",
		}

	case types.PromptOffer:
		lines := []string{"- " + p.Subject}
		if q, ok := n.Catalog.Quest(p.Subject); ok && q.Description != "" {
			lines = append(lines, "  "+q.Description)
		}
		lines = append(lines, n.Requirements(p.Subject)...)
		return append(lines, "Would you like to accept this quest? (y/n)")

	case types.PromptQuit:
		return []string{"Are you sure you want to quit? (y/n)"}
	}
	return numbered(p)
}

func numbered(p *types.Prompt) []string {
	lines := make([]string, 0, len(p.Options)+1)
	for i, o := range p.Options {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, o.Label))
	}
	if p.AllowCancel {
		lines = append(lines, "0. Cancel")
	}
	return lines
}

// Status renders the character sheet shown above the main menu: location,
// health, inventory and the quest log.
func (n *Narrator) Status(c *types.Character) []string {
	lines := []string{
		"Location: " + n.Catalog.LocationName(c.Location),
		fmt.Sprintf("Health: %d/%d", c.Health, c.MaxHealth),
		"Inventory: " + n.Inventory(c),
	}

	if len(c.ActiveQuests) > 0 {
		lines = append(lines, "", "=== Active Quests ===")
		for _, id := range c.ActiveQuests {
			lines = append(lines, n.activeQuest(c, id)...)
		}
	}
	if len(c.QuestsCompleted) > 0 {
		lines = append(lines, "", "=== Completed Quests ===")
		for _, id := range c.QuestsCompleted {
			lines = append(lines, "✓ "+id)
		}
	}
	if avail := quest.Available(c, n.Catalog); len(avail) > 0 {
		lines = append(lines, "", "=== Available Quests ===")
		for _, id := range avail {
			lines = append(lines, "! "+id)
		}
	}
	return lines
}

// Inventory lists item display names in slot order, or "Empty".
func (n *Narrator) Inventory(c *types.Character) string {
	if len(c.Inventory) == 0 {
		return "Empty"
	}
	names := make([]string, len(c.Inventory))
	for i, id := range c.Inventory {
		names[i] = n.Catalog.ItemName(id)
	}
	return strings.Join(names, ", ")
}

// activeQuest shows the shared counter first; the per-enemy breakdown is
// informational and may not add up to it.
func (n *Narrator) activeQuest(c *types.Character, id string) []string {
	q, ok := n.Catalog.Quest(id)
	if !ok {
		return []string{"- " + id}
	}
	lines := []string{fmt.Sprintf("- %s (%d/%d)", id, c.QuestProgress[id], q.ProgressMax)}
	if len(q.Kills) > 0 {
		lines = append(lines, "  Required kills:")
		for _, k := range q.Kills {
			lines = append(lines, fmt.Sprintf("  - %s: %d/%d", n.enemyName(k.Enemy), min(c.QuestKills[id][k.Enemy], k.Count), k.Count))
		}
	}
	if len(q.ItemsNeeded) > 0 {
		lines = append(lines, "  Required items:")
		seen := map[string]bool{}
		for _, it := range q.ItemsNeeded {
			if seen[it] {
				continue
			}
			seen[it] = true
			have, need := state.CountItem(c, it), count(q.ItemsNeeded, it)
			mark := "✗"
			if have >= need {
				mark = "✓"
			}
			lines = append(lines, fmt.Sprintf("  - %s: %s", n.Catalog.ItemName(it), mark))
		}
	}
	if q.Reward != "" {
		lines = append(lines, "  Reward: "+n.Catalog.ItemName(q.Reward))
	}
	return lines
}

func count(list []string, s string) int {
	n := 0
	for _, v := range list {
		if v == s {
			n++
		}
	}
	return n
}
