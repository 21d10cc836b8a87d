// Package engine provides the Step() orchestrator that wires together
// parsing, combat, item effects, quests and events into a single turn.
//
// A session is a state machine over pending prompts: every Step answers the
// current prompt and returns the events it caused plus the next prompt.
// Invalid input re-issues the same prompt and changes nothing.
package engine

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/google/uuid"
	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/engine/events"
	"github.com/nathoo/crystalkingdoms/engine/parser"
	"github.com/nathoo/crystalkingdoms/engine/quest"
	"github.com/nathoo/crystalkingdoms/engine/state"
	"github.com/nathoo/crystalkingdoms/types"
)

// Main menu keys.
const (
	MenuExplore = "explore"
	MenuUse     = "use"
	MenuTravel  = "travel"
	MenuRest    = "rest"
	MenuTalk    = "talk"
	MenuQuit    = "quit"
	MenuBoss    = "boss"
)

// Engine holds the catalog and the mutable session state.
type Engine struct {
	Catalog   *catalog.Catalog
	Player    *types.Character // nil until character creation finishes
	RNG       Source
	Log       *log.Logger
	SessionID string

	pending  pending
	combat   *Encounter
	ending   types.Ending
	handlers []events.Handler
}

// pending is the prompt awaiting an answer and the context it needs.
type pending struct {
	kind     string
	name     string   // chosen name, between the name and class prompts
	slot     int      // inventory slot awaiting discard confirmation
	npc      string   // NPC being talked to
	queue    []string // quests still to be offered, first is current
	inCombat bool     // item prompts opened from a combat turn
}

// New creates a session awaiting character creation. The logger discards
// output until SetLogger is called.
func New(cat *catalog.Catalog, src Source) *Engine {
	e := &Engine{
		Catalog:   cat,
		RNG:       src,
		SessionID: uuid.NewString(),
		pending:   pending{kind: types.PromptName},
	}
	e.SetLogger(log.New(io.Discard, "", 0))
	e.handlers = []events.Handler{
		{EventType: events.EnemyDefeated, Handle: e.onEnemyDefeated},
		{EventType: events.ItemFound, Handle: e.onItemFound},
	}
	return e
}

// SetLogger routes engine logs to l, prefixed with the session id.
func (e *Engine) SetLogger(l *log.Logger) {
	e.Log = log.New(l.Writer(), fmt.Sprintf("%s[%s] ", l.Prefix(), e.SessionID[:8]), l.Flags())
}

// Start returns the first prompt of the session.
func (e *Engine) Start() types.Result {
	if rng, ok := e.RNG.(*RNG); ok {
		e.Log.Printf("session started, seed %d", rng.Seed())
	}
	p := e.prompt()
	return types.Result{Prompt: &p}
}

// Prompt returns the pending prompt, or nil once the session has ended.
func (e *Engine) Prompt() *types.Prompt {
	if e.ending != types.EndNone {
		return nil
	}
	p := e.prompt()
	return &p
}

// Ending returns how the session ended, or EndNone while it is running.
func (e *Engine) Ending() types.Ending {
	return e.ending
}

// Enemy returns a copy of the enemy of the running encounter, if any.
func (e *Engine) Enemy() (types.Enemy, bool) {
	if e.combat == nil {
		return types.Enemy{}, false
	}
	return e.combat.Enemy, true
}

// Step answers the pending prompt with one line of input. The returned error
// is non-nil only for a *quest.InvariantError, which means the session state
// is corrupt and must not continue.
func (e *Engine) Step(input string) (types.Result, error) {
	if e.ending != types.EndNone {
		return types.Result{Ending: e.ending}, nil
	}

	p := e.prompt()
	ans, err := parser.Parse(input, p)
	if err != nil {
		e.Log.Printf("%s prompt: %v", p.Kind, err)
		return types.Result{
			Events: []types.Event{events.New(events.InvalidInput, "kind", p.Kind, "reason", err.Error())},
			Prompt: &p,
		}, nil
	}

	evts, err := e.answer(ans)
	if err != nil {
		var ie *quest.InvariantError
		if errors.As(err, &ie) {
			e.Log.Printf("fatal: %v", err)
			return types.Result{Events: evts}, err
		}
		// Anything else is a refused action; report it and carry on.
		e.Log.Printf("%s prompt: %v", p.Kind, err)
		evts = append(evts, events.New(events.Notice, "reason", err.Error()))
	}

	// Handlers run once over the step's events; their output is not re-dispatched.
	evts = append(evts, events.Dispatch(evts, e.handlers)...)
	evts = append(evts, e.checkEnding()...)

	result := types.Result{Events: evts, Ending: e.ending}
	result.Prompt = e.Prompt()
	return result, nil
}

// answer routes a parsed answer to the handler of the pending prompt.
func (e *Engine) answer(ans parser.Answer) ([]types.Event, error) {
	switch e.pending.kind {
	case types.PromptName:
		e.pending = pending{kind: types.PromptClass, name: ans.Text}
		return nil, nil
	case types.PromptClass:
		return e.createCharacter(ans.Key)
	case types.PromptMenu:
		return e.menu(ans.Key)
	case types.PromptCombat:
		return e.combatAction(ans.Key), nil
	case types.PromptItem:
		return e.chooseItem(ans)
	case types.PromptDiscard:
		return e.confirmDiscard(ans.Yes)
	case types.PromptTravel:
		return e.travel(ans), nil
	case types.PromptNPC:
		return e.approach(ans), nil
	case types.PromptTurnIn:
		return e.turnIn(ans.Yes)
	case types.PromptOffer:
		return e.offer(ans.Yes)
	case types.PromptQuit:
		return e.quit(ans.Yes), nil
	}
	return nil, fmt.Errorf("no handler for prompt %q", e.pending.kind)
}

func (e *Engine) createCharacter(classID string) ([]types.Event, error) {
	c, err := state.NewCharacter(e.Catalog, e.pending.name, classID)
	if err != nil {
		return nil, err
	}
	e.Player = c
	e.pending = pending{kind: types.PromptMenu}
	e.Log.Printf("character %q created as %s", c.Name, c.Class)
	return []types.Event{events.New(events.CharacterCreated,
		"name", c.Name, "class", c.Class, "location", c.Location)}, nil
}

func (e *Engine) menu(key string) ([]types.Event, error) {
	switch key {
	case MenuExplore:
		return e.explore(), nil
	case MenuUse:
		return e.openInventory(false), nil
	case MenuTravel:
		e.pending = pending{kind: types.PromptTravel}
		return nil, nil
	case MenuRest:
		return e.rest(), nil
	case MenuTalk:
		return e.talk(), nil
	case MenuQuit:
		e.pending = pending{kind: types.PromptQuit}
		return nil, nil
	case MenuBoss:
		return e.confrontBoss(), nil
	}
	return nil, fmt.Errorf("unknown menu action %q", key)
}

func (e *Engine) quit(yes bool) []types.Event {
	e.pending = pending{kind: types.PromptMenu}
	if !yes {
		return nil
	}
	e.ending = types.EndQuit
	e.Log.Printf("player quit")
	return []types.Event{events.New(events.GameQuit)}
}

// checkEnding applies the session-end rules after a step: defeat first,
// then victory once every quest is completed.
func (e *Engine) checkEnding() []types.Event {
	if e.Player == nil || e.ending != types.EndNone {
		return nil
	}
	switch {
	case !state.Alive(e.Player):
		e.ending = types.EndDefeat
		e.combat = nil
		e.Log.Printf("player defeated at %s", e.Player.Location)
	case quest.Finished(e.Player, e.Catalog):
		e.ending = types.EndVictory
		e.Log.Printf("all %d quests completed", e.Catalog.QuestCount())
		return []types.Event{events.New(events.Victory, "quests", len(e.Player.QuestsCompleted))}
	}
	return nil
}

// onEnemyDefeated feeds a kill to the quest engine exactly once.
func (e *Engine) onEnemyDefeated(ev types.Event) []types.Event {
	evts := quest.RegisterKill(e.Player, e.Catalog, events.String(ev, "enemy"))
	return append(evts, quest.CheckAll(e.Player, e.Catalog)...)
}

// onItemFound reports the active quests that need the item. It never
// changes progress; item requirements are checked at turn-in.
func (e *Engine) onItemFound(ev types.Event) []types.Event {
	item := events.String(ev, "item")
	var evts []types.Event
	for _, id := range quest.NeededBy(e.Player, e.Catalog, item) {
		evts = append(evts, events.New(events.ItemNeeded, "item", item, "quest", id))
	}
	return append(evts, quest.CheckAll(e.Player, e.Catalog)...)
}
