// Package narrate turns engine events, prompts and character state into the
// lines shown to the player. It is shared by the plain CLI and the TUI and
// never touches game state.
package narrate

import (
	"fmt"
	"sort"
	"strings"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/engine/events"
	"github.com/nathoo/crystalkingdoms/types"
)

// Narrator renders text against a catalog.
type Narrator struct {
	Catalog *catalog.Catalog

	// Compact drops the status block above the main menu, for front ends
	// that show it elsewhere.
	Compact bool
}

// New returns a Narrator for the catalog.
func New(cat *catalog.Catalog) *Narrator {
	return &Narrator{Catalog: cat}
}

// Banner is the title line followed by the intro text.
func (n *Narrator) Banner() []string {
	g := n.Catalog.Game()
	lines := []string{fmt.Sprintf("%s v%s by %s", g.Title, g.Version, g.Author), ""}
	if g.Intro != "" {
		lines = append(lines, strings.Split(strings.TrimRight(g.Intro, "\n"), "\n")...)
		lines = append(lines, "")
	}
	return lines
}

// Events renders every event of a step in order.
func (n *Narrator) Events(evts []types.Event) []string {
	var lines []string
	for _, ev := range evts {
		lines = append(lines, n.Event(ev)...)
	}
	return lines
}

// Event renders a single event. Unknown event types render nothing.
func (n *Narrator) Event(ev types.Event) []string {
	str := func(k string) string { return events.String(ev, k) }
	num := func(k string) int { return events.Int(ev, k) }

	switch ev.Type {
	case events.CharacterCreated:
		return []string{
			fmt.Sprintf("Welcome, %s the %s!", str("name"), Title(str("class"))),
			fmt.Sprintf("You begin your journey in the %s...", n.Catalog.LocationName(str("location"))),
		}
	case events.InvalidInput:
		return []string{invalidText(str("kind"))}
	case events.Notice:
		return []string{n.notice(ev)}

	case events.Explored:
		if loc, ok := n.Catalog.Location(str("location")); ok && loc.Description != "" {
			return []string{loc.Description}
		}
		return nil
	case events.NothingFound:
		return []string{"You explore the area but find nothing of interest."}
	case events.ItemFound:
		return []string{fmt.Sprintf("You found a %s!", n.Catalog.ItemName(str("item")))}
	case events.ItemNeeded:
		return []string{"This item is needed for the quest: " + str("quest")}
	case events.ItemUsed:
		return []string{itemUsedText(types.EffectKind(str("effect")), num("gained"))}
	case events.ItemDiscarded:
		return []string{fmt.Sprintf("You discard the %s.", n.Catalog.ItemName(str("item")))}
	case events.Rested:
		return []string{fmt.Sprintf("You rest peacefully and recover %d health.", num("healed"))}
	case events.RestInterrupted:
		return []string{"Your rest is interrupted by strange noises..."}
	case events.Travelled:
		return []string{"Traveled to " + n.Catalog.LocationName(str("location"))}
	case events.NPCApproached:
		return []string{fmt.Sprintf("You approach %s.", str("npc"))}
	case events.NPCIdle:
		return []string{str("npc") + ": I have nothing for you at the moment."}

	case events.CombatStarted:
		if b, _ := ev.Data["boss"].(bool); b {
			return []string{fmt.Sprintf("%s rises before you. This is the final battle!", str("name"))}
		}
		return []string{fmt.Sprintf("You encounter a %s!", str("name"))}
	case events.PlayerAttacked:
		return []string{fmt.Sprintf("You deal %d damage!", num("damage"))}
	case events.PlayerDefended:
		return []string{fmt.Sprintf("You take a defensive stance and recover %d health!", num("healed"))}
	case events.FleeFailed:
		return []string{"You couldn't escape!"}
	case events.Fled:
		return []string{"You successfully fled!"}
	case events.EnemyAttacked:
		return []string{fmt.Sprintf("%s deals %d damage to you!", n.enemyName(str("enemy")), num("damage"))}
	case events.EnemyDefeated:
		return []string{fmt.Sprintf("You defeated the %s!", n.enemyName(str("enemy")))}
	case events.PlayerDefeated:
		return []string{"You have fallen in battle..."}

	case events.QuestAccepted:
		return append([]string{"Quest accepted: " + str("quest")}, n.Requirements(str("quest"))...)
	case events.QuestDeclined:
		return []string{"Maybe another time. (" + str("quest") + ")"}
	case events.QuestProgress:
		return []string{fmt.Sprintf("Quest progress updated: %s (%d/%d)", str("quest"), num("progress"), num("max"))}
	case events.QuestReady:
		giver := str("giver")
		if giver == "" {
			giver = "the quest giver"
		}
		return []string{
			"Quest requirements met for: " + str("quest"),
			fmt.Sprintf("Return to %s to complete the quest!", giver),
		}
	case events.QuestCompleted:
		lines := []string{"Quest completed: " + str("quest")}
		if r := str("reward"); r != "" {
			lines = append(lines, "Received reward: "+n.Catalog.ItemName(r))
		}
		return lines
	case events.QuestUnlocked:
		return []string{
			"New quest available: " + str("quest"),
			"Talk to the appropriate NPC to accept this quest.",
		}
	case events.Victory:
		return []string{fmt.Sprintf("All %d quests completed. Balance returns to the kingdoms!", num("quests"))}
	case events.GameQuit:
		return []string{fmt.Sprintf("Thanks for playing %s!", n.Catalog.Game().Title)}
	}
	return nil
}

func (n *Narrator) notice(ev types.Event) string {
	switch reason := events.String(ev, "reason"); reason {
	case events.ReasonEmptyInventory:
		return "Your inventory is empty!"
	case events.ReasonNoNPCs:
		return "There are no NPCs to talk to here."
	case events.ReasonAlreadyHere:
		return "You're already here!"
	case events.ReasonItemKept:
		return fmt.Sprintf("You keep the %s.", n.Catalog.ItemName(events.String(ev, "item")))
	case events.ReasonCancelled:
		return "Cancelling..."
	case events.ReasonNoBoss:
		return "There is nothing here to challenge."
	default:
		return sentence(reason)
	}
}

func invalidText(kind string) string {
	switch kind {
	case types.PromptName:
		return "Please enter a name."
	case types.PromptClass:
		return "Invalid class choice. Please try again."
	case types.PromptDiscard, types.PromptTurnIn, types.PromptOffer, types.PromptQuit:
		return "Please answer y or n."
	default:
		return "Invalid choice. Please try again."
	}
}

func itemUsedText(effect types.EffectKind, gained int) string {
	switch effect {
	case types.EffectHeal:
		return fmt.Sprintf("Healed for %d health!", gained)
	case types.EffectMagicBoost:
		return fmt.Sprintf("Magic increased by %d!", gained)
	case types.EffectStrengthBoost:
		return fmt.Sprintf("Strength increased by %d!", gained)
	}
	return "Nothing happens."
}

// Requirements lists what a quest asks for and what it pays.
func (n *Narrator) Requirements(questID string) []string {
	q, ok := n.Catalog.Quest(questID)
	if !ok {
		return nil
	}
	var lines []string
	if len(q.Kills) > 0 {
		lines = append(lines, fmt.Sprintf("  Enemies to defeat (%d in total):", q.ProgressMax))
		for _, k := range q.Kills {
			lines = append(lines, fmt.Sprintf("  - %s: %d", n.enemyName(k.Enemy), k.Count))
		}
	}
	if len(q.ItemsNeeded) > 0 {
		lines = append(lines, "  Items needed:")
		for _, it := range q.ItemsNeeded {
			lines = append(lines, "  - "+n.Catalog.ItemName(it))
		}
	}
	if q.Reward != "" {
		lines = append(lines, "  Reward: "+n.Catalog.ItemName(q.Reward))
	}
	return lines
}

func (n *Narrator) enemyName(id string) string {
	if en, ok := n.Catalog.Enemy(id); ok {
		return en.Name
	}
	return id
}

// Ending renders the closing line of a session.
func (n *Narrator) Ending(e types.Ending) []string {
	switch e {
	case types.EndDefeat:
		return []string{"Game Over!"}
	case types.EndVictory:
		return []string{fmt.Sprintf("You have restored %s. Thanks for playing!", n.Catalog.Game().Title)}
	}
	return nil
}

// Title turns an identifier into display case: "crystal_cave" → "Crystal Cave".
func Title(id string) string {
	words := strings.Fields(strings.ReplaceAll(id, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

func sentence(s string) string {
	if s == "" {
		return "Nothing happens."
	}
	s = strings.ToUpper(s[:1]) + s[1:]
	if !strings.HasSuffix(s, ".") {
		s += "."
	}
	return s
}

// Trace renders the raw events of a step for debugging.
func Trace(res types.Result) []string {
	if len(res.Events) == 0 {
		return nil
	}
	lines := []string{fmt.Sprintf("[trace] Events: %d", len(res.Events))}
	for _, e := range res.Events {
		keys := make([]string, 0, len(e.Data))
		for k := range e.Data {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		var parts []string
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, e.Data[k]))
		}
		lines = append(lines, strings.TrimRight(fmt.Sprintf("[trace]   %s %s", e.Type, strings.Join(parts, " ")), " "))
	}
	return lines
}
