// Package dialogue decides what an NPC has to say: quests ready to be
// turned in come first, then quests on offer.
package dialogue

import (
	"slices"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/engine/quest"
	"github.com/nathoo/crystalkingdoms/engine/state"
	"github.com/nathoo/crystalkingdoms/types"
)

// TurnIns returns the active quests this NPC gives that are completable,
// in the order they were accepted. Turn-in is only possible with the giver.
func TurnIns(c *types.Character, cat *catalog.Catalog, npcID string) []string {
	npc, ok := cat.NPC(npcID)
	if !ok {
		return nil
	}
	var out []string
	for _, id := range c.ActiveQuests {
		if slices.Contains(npc.Quests, id) && quest.IsCompletable(c, cat, id) {
			out = append(out, id)
		}
	}
	return out
}

// Offers returns the NPC's quests that can be accepted now, in the NPC's
// own order.
func Offers(c *types.Character, cat *catalog.Catalog, npcID string) []string {
	npc, ok := cat.NPC(npcID)
	if !ok {
		return nil
	}
	var out []string
	for _, id := range npc.Quests {
		if state.IsActive(c, id) || state.IsCompleted(c, id) {
			continue
		}
		if quest.CanTake(c, cat, id) {
			out = append(out, id)
		}
	}
	return out
}
