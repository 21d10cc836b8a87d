// Package quest implements prerequisite checks, kill progress, completion
// and reward granting over a character and the immutable catalog.
package quest

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/engine/events"
	"github.com/nathoo/crystalkingdoms/engine/state"
	"github.com/nathoo/crystalkingdoms/types"
)

var (
	ErrUnknownQuest     = errors.New("unknown quest")
	ErrAlreadyActive    = errors.New("quest already active")
	ErrAlreadyCompleted = errors.New("quest already completed")
	ErrPrerequisites    = errors.New("quest prerequisites not met")
	ErrNotActive        = errors.New("quest not active")
	ErrNotCompletable   = errors.New("quest not completable")
)

// InvariantError reports corrupted state: a completion that passed the
// completability check but cannot be applied. It is not user-recoverable.
type InvariantError struct {
	Quest string
	Item  string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("invariant violated: quest %q needs %q but it is not in inventory", e.Quest, e.Item)
}

// CanTake reports whether every prerequisite of the quest is completed.
func CanTake(c *types.Character, cat *catalog.Catalog, questID string) bool {
	q, ok := cat.Quest(questID)
	if !ok {
		return false
	}
	for _, req := range q.Requires {
		if !state.IsCompleted(c, req) {
			return false
		}
	}
	return true
}

// Accept adds the quest to the active list with zero progress. Taking a
// quest twice or after completion is a no-op reported through the error.
func Accept(c *types.Character, cat *catalog.Catalog, questID string) ([]types.Event, error) {
	if _, ok := cat.Quest(questID); !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownQuest, questID)
	}
	if state.IsActive(c, questID) {
		return nil, ErrAlreadyActive
	}
	if state.IsCompleted(c, questID) {
		return nil, ErrAlreadyCompleted
	}
	if !CanTake(c, cat, questID) {
		return nil, ErrPrerequisites
	}

	c.ActiveQuests = append(c.ActiveQuests, questID)
	c.QuestProgress[questID] = 0
	c.QuestKills[questID] = map[string]int{}
	return []types.Event{events.New(events.QuestAccepted, "quest", questID)}, nil
}

// RegisterKill advances every active quest that counts the enemy. Progress
// is one shared counter per quest, clamped to ProgressMax. Call exactly once
// per defeated enemy.
func RegisterKill(c *types.Character, cat *catalog.Catalog, enemyID string) []types.Event {
	var evts []types.Event
	for _, id := range c.ActiveQuests {
		q, ok := cat.Quest(id)
		if !ok || !countsKill(q, enemyID) {
			continue
		}
		c.QuestProgress[id] = min(q.ProgressMax, c.QuestProgress[id]+1)
		if c.QuestKills[id] == nil {
			c.QuestKills[id] = map[string]int{}
		}
		c.QuestKills[id][enemyID]++
		evts = append(evts, events.New(events.QuestProgress,
			"quest", id, "progress", c.QuestProgress[id], "max", q.ProgressMax))
	}
	return evts
}

func countsKill(q types.QuestDef, enemyID string) bool {
	for _, k := range q.Kills {
		if k.Enemy == enemyID {
			return true
		}
	}
	return false
}

// IsCompletable reports whether kill progress is full and every needed item
// is held. Items are checked, not consumed.
func IsCompletable(c *types.Character, cat *catalog.Catalog, questID string) bool {
	q, ok := cat.Quest(questID)
	if !ok {
		return false
	}
	if c.QuestProgress[questID] < q.ProgressMax {
		return false
	}
	return missingItem(c, q) == ""
}

// missingItem returns the first needed item the inventory cannot cover,
// counting duplicates in ItemsNeeded.
func missingItem(c *types.Character, q types.QuestDef) string {
	need := map[string]int{}
	for _, item := range q.ItemsNeeded {
		need[item]++
		if state.CountItem(c, item) < need[item] {
			return item
		}
	}
	return ""
}

// Complete turns the quest in: needed items are removed, the reward granted
// and the quest moved to the completed list. Newly unlocked quests are
// reported but never auto-accepted. Nothing is mutated when an error is
// returned.
func Complete(c *types.Character, cat *catalog.Catalog, questID string) ([]types.Event, error) {
	q, ok := cat.Quest(questID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownQuest, questID)
	}
	if !state.IsActive(c, questID) {
		return nil, ErrNotActive
	}
	if c.QuestProgress[questID] < q.ProgressMax {
		return nil, ErrNotCompletable
	}
	if item := missingItem(c, q); item != "" {
		return nil, &InvariantError{Quest: questID, Item: item}
	}

	before := Available(c, cat)

	for _, item := range q.ItemsNeeded {
		state.RemoveItem(c, item)
	}
	if q.Reward != "" {
		state.AddItem(c, q.Reward)
	}
	c.ActiveQuests = slices.DeleteFunc(c.ActiveQuests, func(id string) bool { return id == questID })
	c.QuestsCompleted = append(c.QuestsCompleted, questID)

	evts := []types.Event{events.New(events.QuestCompleted, "quest", questID, "reward", q.Reward)}
	for _, id := range Available(c, cat) {
		if !slices.Contains(before, id) {
			evts = append(evts, events.New(events.QuestUnlocked, "quest", id))
		}
	}
	return evts, nil
}

// CheckAll reports every active quest that is ready to be turned in.
// It never completes anything; turn-in needs the quest's giver.
func CheckAll(c *types.Character, cat *catalog.Catalog) []types.Event {
	var evts []types.Event
	for _, id := range c.ActiveQuests {
		if IsCompletable(c, cat, id) {
			giver, _ := cat.GiverOf(id)
			evts = append(evts, events.New(events.QuestReady, "quest", id, "giver", giver))
		}
	}
	return evts
}

// Available returns quests, in catalog order, that are neither active nor
// completed and whose prerequisites are met.
func Available(c *types.Character, cat *catalog.Catalog) []string {
	var out []string
	for _, id := range cat.QuestIDs() {
		if state.IsActive(c, id) || state.IsCompleted(c, id) {
			continue
		}
		if CanTake(c, cat, id) {
			out = append(out, id)
		}
	}
	return out
}

// NeededBy returns the active quests that list the item in ItemsNeeded.
func NeededBy(c *types.Character, cat *catalog.Catalog, itemID string) []string {
	var out []string
	for _, id := range c.ActiveQuests {
		q, ok := cat.Quest(id)
		if ok && slices.Contains(q.ItemsNeeded, itemID) {
			out = append(out, id)
		}
	}
	return out
}

// Finished reports whether every catalog quest is completed.
func Finished(c *types.Character, cat *catalog.Catalog) bool {
	return cat.QuestCount() > 0 && len(c.QuestsCompleted) == cat.QuestCount()
}
