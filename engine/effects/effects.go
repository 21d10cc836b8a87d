// Package effects applies inventory items to the character. Every use is
// one atomic mutation: the stat change and the removal of the item happen
// together or not at all.
package effects

import (
	"errors"
	"fmt"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/engine/events"
	"github.com/nathoo/crystalkingdoms/engine/state"
	"github.com/nathoo/crystalkingdoms/types"
)

var (
	// ErrNoSuchSlot is returned for an inventory index out of range.
	ErrNoSuchSlot = errors.New("no such inventory slot")
	// ErrNotUsable is returned by Use for key items; they can only be discarded.
	ErrNotUsable = errors.New("item cannot be used")
	// ErrNotDiscardable is returned by Discard for anything but key items.
	ErrNotDiscardable = errors.New("only key items can be discarded")
)

// Usable reports whether the item has an effect when used. Key items don't.
func Usable(item types.ItemDef) bool {
	return item.Type != types.ItemKey
}

// Use applies the item in inventory slot i and removes it. Key items return
// ErrNotUsable without mutation; the caller offers a discard instead.
func Use(c *types.Character, cat *catalog.Catalog, slot int) ([]types.Event, error) {
	if slot < 0 || slot >= len(c.Inventory) {
		return nil, ErrNoSuchSlot
	}
	id := c.Inventory[slot]
	item, ok := cat.Item(id)
	if !ok {
		return nil, fmt.Errorf("unknown item %q", id)
	}
	if !Usable(item) {
		return nil, ErrNotUsable
	}

	gained := item.Value
	switch item.Effect {
	case types.EffectHeal:
		gained = state.Heal(c, item.Value)
	case types.EffectMagicBoost:
		c.Magic += item.Value
	case types.EffectStrengthBoost:
		c.Strength += item.Value
	default:
		return nil, fmt.Errorf("item %q has no usable effect %q", id, item.Effect)
	}
	state.RemoveItemAt(c, slot)

	return []types.Event{events.New(events.ItemUsed,
		"item", id, "effect", string(item.Effect), "value", item.Value, "gained", gained)}, nil
}

// Discard irreversibly removes the key item in slot i. Only call after the
// player confirmed.
func Discard(c *types.Character, cat *catalog.Catalog, slot int) ([]types.Event, error) {
	if slot < 0 || slot >= len(c.Inventory) {
		return nil, ErrNoSuchSlot
	}
	id := c.Inventory[slot]
	item, ok := cat.Item(id)
	if !ok {
		return nil, fmt.Errorf("unknown item %q", id)
	}
	if item.Type != types.ItemKey {
		return nil, ErrNotDiscardable
	}
	state.RemoveItemAt(c, slot)
	return []types.Event{events.New(events.ItemDiscarded, "item", id)}, nil
}
