package engine

import (
	"errors"
	"fmt"

	"github.com/nathoo/crystalkingdoms/engine/dialogue"
	"github.com/nathoo/crystalkingdoms/engine/effects"
	"github.com/nathoo/crystalkingdoms/engine/events"
	"github.com/nathoo/crystalkingdoms/engine/parser"
	"github.com/nathoo/crystalkingdoms/engine/quest"
	"github.com/nathoo/crystalkingdoms/engine/state"
	"github.com/nathoo/crystalkingdoms/types"
)

// Exploration odds.
const (
	EventChance  = 0.7 // any event at all
	CombatChance = 0.6 // combat rather than an item find, given an event
	RestChance   = 0.8 // undisturbed rest
	RestHeal     = 20
)

// prompt builds the Prompt for the pending state.
func (e *Engine) prompt() types.Prompt {
	switch e.pending.kind {
	case types.PromptName:
		return types.Prompt{Kind: types.PromptName, FreeText: true}
	case types.PromptClass:
		p := types.Prompt{Kind: types.PromptClass, Subject: e.pending.name}
		for _, id := range e.Catalog.ClassIDs() {
			p.Options = append(p.Options, types.Option{Key: id, Label: id})
		}
		return p
	case types.PromptCombat:
		return types.Prompt{Kind: types.PromptCombat, Subject: e.combat.Enemy.ID, Options: []types.Option{
			{Key: ActionAttack, Label: "Attack"},
			{Key: ActionDefend, Label: "Defend"},
			{Key: ActionUse, Label: "Use Item"},
			{Key: ActionFlee, Label: "Flee"},
		}}
	case types.PromptItem:
		p := types.Prompt{Kind: types.PromptItem, AllowCancel: true}
		for _, id := range e.Player.Inventory {
			p.Options = append(p.Options, types.Option{Key: id, Label: e.Catalog.ItemName(id)})
		}
		return p
	case types.PromptDiscard:
		return types.Prompt{Kind: types.PromptDiscard, Subject: e.Player.Inventory[e.pending.slot], YesNo: true}
	case types.PromptTravel:
		p := types.Prompt{Kind: types.PromptTravel, Subject: e.Player.Location, AllowCancel: true}
		for _, id := range e.Catalog.LocationIDs() {
			p.Options = append(p.Options, types.Option{Key: id, Label: e.Catalog.LocationName(id)})
		}
		return p
	case types.PromptNPC:
		loc, _ := e.Catalog.Location(e.Player.Location)
		p := types.Prompt{Kind: types.PromptNPC, Subject: loc.ID, AllowCancel: true}
		for _, id := range loc.NPCs {
			p.Options = append(p.Options, types.Option{Key: id, Label: id})
		}
		return p
	case types.PromptTurnIn, types.PromptOffer:
		return types.Prompt{Kind: e.pending.kind, Subject: e.pending.queue[0], YesNo: true}
	case types.PromptQuit:
		return types.Prompt{Kind: types.PromptQuit, YesNo: true}
	}

	p := types.Prompt{Kind: types.PromptMenu, Options: []types.Option{
		{Key: MenuExplore, Label: "Explore"},
		{Key: MenuUse, Label: "Use item"},
		{Key: MenuTravel, Label: "Move to new location"},
		{Key: MenuRest, Label: "Rest"},
		{Key: MenuTalk, Label: "Talk to NPCs"},
		{Key: MenuQuit, Label: "Quit game"},
	}}
	if boss, ok := e.bossAvailable(); ok {
		def, _ := e.Catalog.Enemy(boss.Enemy)
		p.Options = append(p.Options, types.Option{Key: MenuBoss, Label: "Fight " + def.Name})
	}
	return p
}

// explore rolls for an event: combat with a location enemy, an item find,
// or nothing.
func (e *Engine) explore() []types.Event {
	loc, _ := e.Catalog.Location(e.Player.Location)
	evts := []types.Event{events.New(events.Explored, "location", loc.ID)}

	if !Chance(e.RNG, EventChance) {
		return append(evts, events.New(events.NothingFound, "location", loc.ID))
	}
	if Chance(e.RNG, CombatChance) {
		if len(loc.Enemies) == 0 {
			return append(evts, events.New(events.NothingFound, "location", loc.ID))
		}
		id := loc.Enemies[e.RNG.Intn(len(loc.Enemies))]
		return append(evts, e.startCombat(id, false)...)
	}
	if len(loc.Items) == 0 {
		return append(evts, events.New(events.NothingFound, "location", loc.ID))
	}
	item := loc.Items[e.RNG.Intn(len(loc.Items))]
	state.AddItem(e.Player, item)
	return append(evts, events.New(events.ItemFound, "item", item, "location", loc.ID))
}

// rest heals a fixed amount most of the time; otherwise the rest is
// interrupted and an unplanned exploration happens instead.
func (e *Engine) rest() []types.Event {
	if Chance(e.RNG, RestChance) {
		gained := state.Heal(e.Player, RestHeal)
		return []types.Event{events.New(events.Rested, "healed", gained, "health", e.Player.Health)}
	}
	evts := []types.Event{events.New(events.RestInterrupted)}
	return append(evts, e.explore()...)
}

func (e *Engine) startCombat(enemyID string, boss bool) []types.Event {
	def, ok := e.Catalog.Enemy(enemyID)
	if !ok {
		return []types.Event{events.New(events.NothingFound, "location", e.Player.Location)}
	}
	e.combat = NewEncounter(def, boss)
	e.pending = pending{kind: types.PromptCombat}
	e.Log.Printf("combat started: %s (boss=%v) at %s", def.ID, boss, e.Player.Location)
	return e.combat.Start()
}

func (e *Engine) combatAction(action string) []types.Event {
	switch action {
	case ActionAttack:
		return e.endCombatTurn(e.combat.Attack(e.Player, e.RNG))
	case ActionDefend:
		return e.endCombatTurn(e.combat.Defend(e.Player, e.RNG))
	case ActionFlee:
		return e.endCombatTurn(e.combat.Flee(e.Player, e.RNG))
	case ActionUse:
		return e.openInventory(true)
	}
	return nil
}

// endCombatTurn returns to the combat prompt, or leaves combat once the
// encounter reached a terminal state.
func (e *Engine) endCombatTurn(evts []types.Event) []types.Event {
	if !e.combat.Done() {
		e.pending = pending{kind: types.PromptCombat}
		return evts
	}
	e.Log.Printf("combat ended: %s after %d rounds, %s", e.combat.Enemy.ID, e.combat.Rounds, e.combat.Outcome)
	e.combat = nil
	e.pending = pending{kind: types.PromptMenu}
	return evts
}

// afterItem finishes an item interaction. In combat the enemy acts
// whatever happened with the item.
func (e *Engine) afterItem(inCombat bool, evts []types.Event) []types.Event {
	if !inCombat || e.combat == nil {
		e.pending = pending{kind: types.PromptMenu}
		return evts
	}
	return e.endCombatTurn(append(evts, e.combat.EnemyTurn(e.Player, e.RNG)...))
}

func (e *Engine) openInventory(inCombat bool) []types.Event {
	if len(e.Player.Inventory) == 0 {
		evts := []types.Event{events.New(events.Notice, "reason", events.ReasonEmptyInventory)}
		return e.afterItem(inCombat, evts)
	}
	e.pending = pending{kind: types.PromptItem, inCombat: inCombat}
	return nil
}

func (e *Engine) chooseItem(ans parser.Answer) ([]types.Event, error) {
	inCombat := e.pending.inCombat
	if ans.Cancel {
		evts := []types.Event{events.New(events.Notice, "reason", events.ReasonCancelled)}
		return e.afterItem(inCombat, evts), nil
	}

	evts, err := effects.Use(e.Player, e.Catalog, ans.Index)
	if errors.Is(err, effects.ErrNotUsable) {
		e.pending = pending{kind: types.PromptDiscard, slot: ans.Index, inCombat: inCombat}
		return nil, nil
	}
	if err != nil {
		e.pending = pending{kind: types.PromptMenu}
		return nil, err
	}
	return e.afterItem(inCombat, evts), nil
}

func (e *Engine) confirmDiscard(yes bool) ([]types.Event, error) {
	inCombat := e.pending.inCombat
	if !yes {
		item := e.Player.Inventory[e.pending.slot]
		evts := []types.Event{events.New(events.Notice, "reason", events.ReasonItemKept, "item", item)}
		return e.afterItem(inCombat, evts), nil
	}
	evts, err := effects.Discard(e.Player, e.Catalog, e.pending.slot)
	if err != nil {
		e.pending = pending{kind: types.PromptMenu}
		return nil, err
	}
	return e.afterItem(inCombat, evts), nil
}

func (e *Engine) travel(ans parser.Answer) []types.Event {
	e.pending = pending{kind: types.PromptMenu}
	if ans.Cancel {
		return nil
	}
	if ans.Key == e.Player.Location {
		return []types.Event{events.New(events.Notice, "reason", events.ReasonAlreadyHere, "location", ans.Key)}
	}
	from := e.Player.Location
	e.Player.Location = ans.Key
	e.Player.Journey = append(e.Player.Journey, ans.Key)
	return []types.Event{events.New(events.Travelled, "from", from, "location", ans.Key)}
}

func (e *Engine) talk() []types.Event {
	loc, _ := e.Catalog.Location(e.Player.Location)
	if len(loc.NPCs) == 0 {
		return []types.Event{events.New(events.Notice, "reason", events.ReasonNoNPCs, "location", loc.ID)}
	}
	e.pending = pending{kind: types.PromptNPC}
	return nil
}

// approach starts a conversation: turn-ins first, then quest offers, and
// only when neither exists the NPC has nothing to say.
func (e *Engine) approach(ans parser.Answer) []types.Event {
	e.pending = pending{kind: types.PromptMenu}
	if ans.Cancel {
		return nil
	}
	npc := ans.Key
	evts := []types.Event{events.New(events.NPCApproached, "npc", npc)}

	if ready := dialogue.TurnIns(e.Player, e.Catalog, npc); len(ready) > 0 {
		e.pending = pending{kind: types.PromptTurnIn, npc: npc, queue: ready}
		return evts
	}
	if offers := dialogue.Offers(e.Player, e.Catalog, npc); len(offers) > 0 {
		e.pending = pending{kind: types.PromptOffer, npc: npc, queue: offers}
		return evts
	}
	return append(evts, events.New(events.NPCIdle, "npc", npc))
}

// turnIn answers one turn-in offer. A yes completes the quest and ends the
// conversation; a no moves on to the next ready quest.
func (e *Engine) turnIn(yes bool) ([]types.Event, error) {
	id := e.pending.queue[0]
	if !yes {
		return e.nextInQueue(events.New(events.QuestDeclined, "quest", id, "npc", e.pending.npc)), nil
	}
	e.pending = pending{kind: types.PromptMenu}
	evts, err := quest.Complete(e.Player, e.Catalog, id)
	if err != nil {
		return nil, err
	}
	e.Log.Printf("quest completed: %s", id)
	return evts, nil
}

// offer answers one quest offer. A yes accepts the quest and ends the
// conversation.
func (e *Engine) offer(yes bool) ([]types.Event, error) {
	id := e.pending.queue[0]
	if !yes {
		return e.nextInQueue(events.New(events.QuestDeclined, "quest", id, "npc", e.pending.npc)), nil
	}
	e.pending = pending{kind: types.PromptMenu}
	evts, err := quest.Accept(e.Player, e.Catalog, id)
	if err != nil {
		return nil, err
	}
	e.Log.Printf("quest accepted: %s", id)
	return evts, nil
}

func (e *Engine) nextInQueue(ev types.Event) []types.Event {
	e.pending.queue = e.pending.queue[1:]
	if len(e.pending.queue) == 0 {
		e.pending = pending{kind: types.PromptMenu}
	}
	return []types.Event{ev}
}

// bossAvailable reports the current location's boss while its quest is
// active and the boss has not yet been counted for it.
func (e *Engine) bossAvailable() (types.BossDef, bool) {
	if e.Player == nil {
		return types.BossDef{}, false
	}
	loc, ok := e.Catalog.Location(e.Player.Location)
	if !ok || loc.Boss == nil || !state.IsActive(e.Player, loc.Boss.Quest) {
		return types.BossDef{}, false
	}
	if e.Player.QuestKills[loc.Boss.Quest][loc.Boss.Enemy] > 0 {
		return types.BossDef{}, false
	}
	return *loc.Boss, true
}

func (e *Engine) confrontBoss() []types.Event {
	boss, ok := e.bossAvailable()
	if !ok {
		return []types.Event{events.New(events.Notice, "reason", events.ReasonNoBoss)}
	}
	return e.startCombat(boss.Enemy, true)
}

// Describe returns the location the player stands in.
func (e *Engine) Describe() (types.LocationDef, error) {
	if e.Player == nil {
		return types.LocationDef{}, fmt.Errorf("no character yet")
	}
	loc, ok := e.Catalog.Location(e.Player.Location)
	if !ok {
		return types.LocationDef{}, fmt.Errorf("unknown location %q", e.Player.Location)
	}
	return loc, nil
}
