package loader

import (
	"fmt"
	"log"
	"strings"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Effects each item type may carry.
var validEffects = map[types.ItemType]map[types.EffectKind]bool{
	types.ItemConsumable: {types.EffectHeal: true, types.EffectMagicBoost: true, types.EffectStrengthBoost: true},
	types.ItemWeapon:     {types.EffectStrengthBoost: true},
	types.ItemKey:        {types.EffectStory: true},
}

// index is a set of IDs per kind, built once for reference checks.
type index struct {
	classes, items, enemies, locations, npcs, quests map[string]bool
}

func buildIndex(c catalog.Content, ve *ValidationError) index {
	idx := index{
		classes:   map[string]bool{},
		items:     map[string]bool{},
		enemies:   map[string]bool{},
		locations: map[string]bool{},
		npcs:      map[string]bool{},
		quests:    map[string]bool{},
	}
	add := func(set map[string]bool, kind, id string) {
		if id == "" {
			ve.errorf("%s with empty ID", kind)
			return
		}
		if set[id] {
			ve.errorf("duplicate %s ID %q", kind, id)
		}
		set[id] = true
	}
	for _, d := range c.Classes {
		add(idx.classes, "class", d.ID)
	}
	for _, d := range c.Items {
		add(idx.items, "item", d.ID)
	}
	for _, d := range c.Enemies {
		add(idx.enemies, "enemy", d.ID)
	}
	for _, d := range c.Locations {
		add(idx.locations, "location", d.ID)
	}
	for _, d := range c.NPCs {
		add(idx.npcs, "npc", d.ID)
	}
	for _, d := range c.Quests {
		add(idx.quests, "quest", d.ID)
	}
	return idx
}

// validate checks compiled content for referential integrity and consistency.
func validate(c catalog.Content) error {
	ve := &ValidationError{}
	idx := buildIndex(c, ve)

	if c.Game.Title == "" {
		ve.errorf("Game.title is required")
	}
	if c.Game.Start == "" {
		ve.errorf("Game.start is required")
	} else if !idx.locations[c.Game.Start] {
		ve.errorf("start location %q not found in defined locations", c.Game.Start)
	}
	for _, item := range c.Game.StartingItems {
		if !idx.items[item] {
			ve.errorf("starting item %q is not defined", item)
		}
	}

	if len(c.Classes) == 0 {
		ve.errorf("at least one Class is required")
	}
	for _, cl := range c.Classes {
		if cl.Health <= 0 {
			ve.errorf("class %q health must be positive", cl.ID)
		}
		if cl.Strength < 0 || cl.Agility < 0 || cl.Magic < 0 {
			ve.errorf("class %q has a negative stat", cl.ID)
		}
	}

	for _, it := range c.Items {
		effects, ok := validEffects[it.Type]
		if !ok {
			ve.errorf("item %q has unknown type %q", it.ID, it.Type)
			continue
		}
		if !effects[it.Effect] {
			ve.errorf("item %q of type %s cannot have effect %q", it.ID, it.Type, it.Effect)
		}
		if it.Value < 0 {
			ve.errorf("item %q value must not be negative", it.ID)
		}
	}

	for _, en := range c.Enemies {
		if en.Health <= 0 {
			ve.errorf("enemy %q health must be positive", en.ID)
		}
		if en.Strength < 0 || en.Agility < 0 {
			ve.errorf("enemy %q has a negative stat", en.ID)
		}
	}

	validateLocations(c, idx, ve)
	validateQuests(c, idx, ve)

	for _, w := range ve.Warnings {
		log.Printf("loader: warning: %s", w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

func validateLocations(c catalog.Content, idx index, ve *ValidationError) {
	for _, loc := range c.Locations {
		for _, en := range loc.Enemies {
			if !idx.enemies[en] {
				ve.errorf("location %q references undefined enemy %q", loc.ID, en)
			}
		}
		for _, it := range loc.Items {
			if !idx.items[it] {
				ve.errorf("location %q references undefined item %q", loc.ID, it)
			}
		}
		for _, npc := range loc.NPCs {
			if !idx.npcs[npc] {
				ve.errorf("location %q references undefined npc %q", loc.ID, npc)
			}
		}
		if loc.Boss != nil {
			if !idx.enemies[loc.Boss.Enemy] {
				ve.errorf("location %q boss references undefined enemy %q", loc.ID, loc.Boss.Enemy)
			}
			if !idx.quests[loc.Boss.Quest] {
				ve.errorf("location %q boss references undefined quest %q", loc.ID, loc.Boss.Quest)
			}
		}
	}

	for _, npc := range c.NPCs {
		for _, q := range npc.Quests {
			if !idx.quests[q] {
				ve.errorf("npc %q offers undefined quest %q", npc.ID, q)
			}
		}
	}
}

func validateQuests(c catalog.Content, idx index, ve *ValidationError) {
	if len(c.Quests) == 0 {
		ve.errorf("at least one Quest is required")
	}

	givers := map[string][]string{}
	for _, npc := range c.NPCs {
		for _, q := range npc.Quests {
			givers[q] = append(givers[q], npc.ID)
		}
	}
	placed := map[string]bool{}
	for _, loc := range c.Locations {
		for _, en := range loc.Enemies {
			placed[en] = true
		}
		if loc.Boss != nil {
			placed[loc.Boss.Enemy] = true
		}
	}

	for _, q := range c.Quests {
		for _, req := range q.Requires {
			if !idx.quests[req] {
				ve.errorf("quest %q requires undefined quest %q", q.ID, req)
			}
		}
		for _, k := range q.Kills {
			if !idx.enemies[k.Enemy] {
				ve.errorf("quest %q counts kills of undefined enemy %q", q.ID, k.Enemy)
			} else if !placed[k.Enemy] {
				ve.warnf("quest %q counts kills of %q, which no location spawns", q.ID, k.Enemy)
			}
			if k.Count <= 0 {
				ve.errorf("quest %q kill count for %q must be positive", q.ID, k.Enemy)
			}
		}
		for _, it := range q.ItemsNeeded {
			if !idx.items[it] {
				ve.errorf("quest %q needs undefined item %q", q.ID, it)
			}
		}
		if q.Reward != "" && !idx.items[q.Reward] {
			ve.errorf("quest %q rewards undefined item %q", q.ID, q.Reward)
		}
		if q.ProgressMax < 0 {
			ve.errorf("quest %q progress must not be negative", q.ID)
		} else if q.ProgressMax > killTotal(q) {
			ve.errorf("quest %q progress %d is unreachable with %d countable kills",
				q.ID, q.ProgressMax, killTotal(q))
		}
		switch len(givers[q.ID]) {
		case 0:
			ve.warnf("quest %q has no giver and can never be turned in", q.ID)
		case 1:
		default:
			ve.errorf("quest %q is offered by several npcs %v", q.ID, givers[q.ID])
		}
	}

	if cyc := requiresCycle(c.Quests); cyc != "" {
		ve.errorf("quest prerequisites form a cycle through %q", cyc)
	}
}

// requiresCycle returns a quest on a prerequisite cycle, or "".
func requiresCycle(quests []types.QuestDef) string {
	reqs := map[string][]string{}
	for _, q := range quests {
		reqs[q.ID] = q.Requires
	}

	const (
		unvisited = iota
		visiting
		done
	)
	mark := map[string]int{}
	var visit func(id string) string
	visit = func(id string) string {
		switch mark[id] {
		case visiting:
			return id
		case done:
			return ""
		}
		mark[id] = visiting
		for _, r := range reqs[id] {
			if cyc := visit(r); cyc != "" {
				return cyc
			}
		}
		mark[id] = done
		return ""
	}

	for _, q := range quests {
		if cyc := visit(q.ID); cyc != "" {
			return cyc
		}
	}
	return ""
}
