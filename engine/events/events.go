// Package events implements single-pass event handler dispatch.
// Handlers may emit follow-up events but those are not re-dispatched.
package events

import "github.com/nathoo/crystalkingdoms/types"

// Event types emitted by the engine.
const (
	CharacterCreated = "character_created"
	InvalidInput     = "invalid_input"
	Notice           = "notice" // no-op conditions: empty inventory, no NPCs, already here
	Explored         = "explored"
	NothingFound     = "nothing_found"
	ItemFound        = "item_found"
	ItemNeeded       = "item_needed"
	ItemUsed         = "item_used"
	ItemDiscarded    = "item_discarded"
	Rested           = "rested"
	RestInterrupted  = "rest_interrupted"
	Travelled        = "travelled"
	NPCApproached    = "npc_approached"
	NPCIdle          = "npc_idle"

	CombatStarted  = "combat_started"
	PlayerAttacked = "player_attacked"
	PlayerDefended = "player_defended"
	FleeFailed     = "flee_failed"
	Fled           = "fled"
	EnemyAttacked  = "enemy_attacked"
	EnemyDefeated  = "enemy_defeated"
	PlayerDefeated = "player_defeated"

	QuestAccepted  = "quest_accepted"
	QuestDeclined  = "quest_declined"
	QuestProgress  = "quest_progress"
	QuestReady     = "quest_ready"
	QuestCompleted = "quest_completed"
	QuestUnlocked  = "quest_unlocked"
	Victory        = "victory"
	GameQuit       = "game_quit"
)

// Reasons carried by Notice events.
const (
	ReasonEmptyInventory = "empty_inventory"
	ReasonNoNPCs         = "no_npcs"
	ReasonAlreadyHere    = "already_here"
	ReasonItemKept       = "item_kept"
	ReasonCancelled      = "cancelled"
	ReasonNoBoss         = "no_boss"
)

// Handler reacts to one event type.
type Handler struct {
	EventType string
	Handle    func(types.Event) []types.Event
}

// Dispatch runs handlers against the emitted events. Single pass, no
// recursion. Returns the additional events produced by matching handlers,
// in event order then handler order.
func Dispatch(evts []types.Event, handlers []Handler) []types.Event {
	var result []types.Event

	for _, event := range evts {
		for _, handler := range handlers {
			if handler.EventType != event.Type {
				continue
			}
			result = append(result, handler.Handle(event)...)
		}
	}

	return result
}

// New builds an event with the given key/value pairs.
func New(typ string, kv ...any) types.Event {
	data := make(map[string]any, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		if k, ok := kv[i].(string); ok {
			data[k] = kv[i+1]
		}
	}
	return types.Event{Type: typ, Data: data}
}

// String returns a string field of an event, or "".
func String(e types.Event, key string) string {
	s, _ := e.Data[key].(string)
	return s
}

// Int returns an int field of an event, or 0.
func Int(e types.Event, key string) int {
	n, _ := e.Data[key].(int)
	return n
}
