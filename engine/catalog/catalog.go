// Package catalog holds the immutable game content: classes, items, enemies,
// locations, NPCs and quests. A Catalog is built once and only read afterwards;
// every accessor returns a copy so callers cannot corrupt shared definitions.
package catalog

import (
	"slices"

	"github.com/nathoo/crystalkingdoms/types"
)

// Content is the raw, mutable input to New. Slices keep source order.
type Content struct {
	Game      types.GameDef
	Classes   []types.ClassDef
	Items     []types.ItemDef
	Enemies   []types.EnemyDef
	Locations []types.LocationDef
	NPCs      []types.NPCDef
	Quests    []types.QuestDef
}

// Catalog is the frozen form of Content.
type Catalog struct {
	game types.GameDef

	classOrder    []string
	locationOrder []string
	questOrder    []string

	classes   map[string]types.ClassDef
	items     map[string]types.ItemDef
	enemies   map[string]types.EnemyDef
	locations map[string]types.LocationDef
	npcs      map[string]types.NPCDef
	quests    map[string]types.QuestDef
	givers    map[string]string // quest → NPC
}

// New deep-copies content into a Catalog. Later duplicates of an ID replace
// earlier ones; the loader rejects duplicates before getting here.
func New(c Content) *Catalog {
	cat := &Catalog{
		game:      cloneGame(c.Game),
		classes:   map[string]types.ClassDef{},
		items:     map[string]types.ItemDef{},
		enemies:   map[string]types.EnemyDef{},
		locations: map[string]types.LocationDef{},
		npcs:      map[string]types.NPCDef{},
		quests:    map[string]types.QuestDef{},
		givers:    map[string]string{},
	}
	for _, cl := range c.Classes {
		if _, ok := cat.classes[cl.ID]; !ok {
			cat.classOrder = append(cat.classOrder, cl.ID)
		}
		cat.classes[cl.ID] = cl
	}
	for _, it := range c.Items {
		cat.items[it.ID] = it
	}
	for _, en := range c.Enemies {
		if en.Name == "" {
			en.Name = en.ID
		}
		cat.enemies[en.ID] = en
	}
	for _, loc := range c.Locations {
		if _, ok := cat.locations[loc.ID]; !ok {
			cat.locationOrder = append(cat.locationOrder, loc.ID)
		}
		cat.locations[loc.ID] = cloneLocation(loc)
	}
	for _, npc := range c.NPCs {
		npc.Quests = slices.Clone(npc.Quests)
		cat.npcs[npc.ID] = npc
		for _, q := range npc.Quests {
			if _, ok := cat.givers[q]; !ok {
				cat.givers[q] = npc.ID
			}
		}
	}
	for _, q := range c.Quests {
		if _, ok := cat.quests[q.ID]; !ok {
			cat.questOrder = append(cat.questOrder, q.ID)
		}
		cat.quests[q.ID] = cloneQuest(q)
	}
	return cat
}

// Game returns the game metadata.
func (c *Catalog) Game() types.GameDef { return cloneGame(c.game) }

// ClassIDs returns class IDs in source order.
func (c *Catalog) ClassIDs() []string { return slices.Clone(c.classOrder) }

// LocationIDs returns location IDs in source order.
func (c *Catalog) LocationIDs() []string { return slices.Clone(c.locationOrder) }

// QuestIDs returns quest IDs in source order.
func (c *Catalog) QuestIDs() []string { return slices.Clone(c.questOrder) }

// QuestCount is the number of quests needed for victory.
func (c *Catalog) QuestCount() int { return len(c.questOrder) }

func (c *Catalog) Class(id string) (types.ClassDef, bool) {
	cl, ok := c.classes[id]
	return cl, ok
}

func (c *Catalog) Item(id string) (types.ItemDef, bool) {
	it, ok := c.items[id]
	return it, ok
}

func (c *Catalog) Enemy(id string) (types.EnemyDef, bool) {
	en, ok := c.enemies[id]
	return en, ok
}

func (c *Catalog) Location(id string) (types.LocationDef, bool) {
	loc, ok := c.locations[id]
	if !ok {
		return types.LocationDef{}, false
	}
	return cloneLocation(loc), true
}

func (c *Catalog) NPC(id string) (types.NPCDef, bool) {
	npc, ok := c.npcs[id]
	if !ok {
		return types.NPCDef{}, false
	}
	npc.Quests = slices.Clone(npc.Quests)
	return npc, true
}

func (c *Catalog) Quest(id string) (types.QuestDef, bool) {
	q, ok := c.quests[id]
	if !ok {
		return types.QuestDef{}, false
	}
	return cloneQuest(q), true
}

// GiverOf returns the NPC that offers and accepts the quest.
func (c *Catalog) GiverOf(questID string) (string, bool) {
	npc, ok := c.givers[questID]
	return npc, ok
}

// ItemName returns the display name of an item, falling back to its ID.
func (c *Catalog) ItemName(id string) string {
	if it, ok := c.items[id]; ok && it.Name != "" {
		return it.Name
	}
	return id
}

// LocationName returns the display name of a location, falling back to its ID.
func (c *Catalog) LocationName(id string) string {
	if loc, ok := c.locations[id]; ok && loc.Name != "" {
		return loc.Name
	}
	return id
}

func cloneGame(g types.GameDef) types.GameDef {
	g.StartingItems = slices.Clone(g.StartingItems)
	return g
}

func cloneLocation(loc types.LocationDef) types.LocationDef {
	loc.Enemies = slices.Clone(loc.Enemies)
	loc.Items = slices.Clone(loc.Items)
	loc.NPCs = slices.Clone(loc.NPCs)
	if loc.Boss != nil {
		b := *loc.Boss
		loc.Boss = &b
	}
	return loc
}

func cloneQuest(q types.QuestDef) types.QuestDef {
	q.Requires = slices.Clone(q.Requires)
	q.Kills = slices.Clone(q.Kills)
	q.ItemsNeeded = slices.Clone(q.ItemsNeeded)
	return q
}
