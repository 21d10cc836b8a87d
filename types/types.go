// Package types defines the shared data structures for the Crystal Kingdoms engine.
// This package contains only type definitions: no logic, no methods.
package types

// ItemType classifies how an item behaves when used.
type ItemType string

const (
	ItemConsumable ItemType = "consumable"
	ItemWeapon     ItemType = "weapon"
	ItemKey        ItemType = "key_item"
)

// EffectKind names the stat change an item applies.
type EffectKind string

const (
	EffectHeal          EffectKind = "heal"
	EffectMagicBoost    EffectKind = "magic_boost"
	EffectStrengthBoost EffectKind = "strength_boost"
	EffectStory         EffectKind = "story"
)

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title         string
	Author        string
	Version       string
	Intro         string
	Start         string   // starting location ID
	StartingItems []string // inventory handed to a new character
}

// ClassDef is a character class template.
type ClassDef struct {
	ID       string
	Health   int
	Strength int
	Agility  int
	Magic    int
}

// ItemDef is an immutable catalog item.
type ItemDef struct {
	ID     string
	Name   string
	Type   ItemType
	Effect EffectKind
	Value  int
}

// EnemyDef is an enemy template. Encounters clone it.
type EnemyDef struct {
	ID       string
	Name     string
	Health   int
	Strength int
	Agility  int
}

// BossDef gates a location's boss encounter on an active quest.
type BossDef struct {
	Enemy string
	Quest string
}

// LocationDef is an explorable place.
type LocationDef struct {
	ID          string
	Name        string
	Description string
	Enemies     []string
	Items       []string
	NPCs        []string
	Boss        *BossDef // optional
}

// NPCDef is a quest giver. Only quests listed here can be offered or turned in by them.
type NPCDef struct {
	ID     string
	Quests []string
}

// KillReq is one enemy_kills entry of a quest.
type KillReq struct {
	Enemy string
	Count int
}

// QuestDef is an immutable quest definition.
type QuestDef struct {
	ID          string
	Description string
	Requires    []string
	Kills       []KillReq
	ItemsNeeded []string
	Reward      string // optional item ID
	ProgressMax int
}

// Character is the mutable player record.
type Character struct {
	Name            string
	Class           string
	Health          int
	MaxHealth       int
	Strength        int
	Agility         int
	Magic           int
	Inventory       []string
	Location        string
	Journey         []string // locations travelled to, in order
	QuestsCompleted []string
	ActiveQuests    []string
	QuestProgress   map[string]int
	QuestKills      map[string]map[string]int // quest → enemy → kills, display only
}

// Enemy is the ephemeral combatant of a single encounter.
type Enemy struct {
	EnemyDef
	CurrentHealth int
}

// Event is emitted by the engine after a state change.
type Event struct {
	Type string
	Data map[string]any
}

// Option is one selectable entry of a Prompt.
type Option struct {
	Key   string // stable identifier, e.g. "explore" or an item ID
	Label string
}

// Prompt kinds.
const (
	PromptName    = "name"
	PromptClass   = "class"
	PromptMenu    = "menu"
	PromptCombat  = "combat"
	PromptItem    = "item"
	PromptDiscard = "discard"
	PromptTravel  = "travel"
	PromptNPC     = "npc"
	PromptTurnIn  = "turn_in"
	PromptOffer   = "offer"
	PromptQuit    = "quit"
)

// Prompt is a pending decision the input provider must answer.
type Prompt struct {
	Kind        string
	Subject     string   // quest, item or NPC the question is about
	Options     []Option // empty for free-text and yes/no prompts
	AllowCancel bool     // "0" cancels
	YesNo       bool
	FreeText    bool
}

// Ending reports how a session finished.
type Ending string

const (
	EndNone    Ending = ""
	EndDefeat  Ending = "defeat"
	EndVictory Ending = "victory"
	EndQuit    Ending = "quit"
)

// Result is the output of a single game step.
type Result struct {
	Events []Event
	Prompt *Prompt
	Ending Ending
}
