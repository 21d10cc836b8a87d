// Package state manages the mutable player character: creation from a class
// template, inventory bookkeeping and health clamping.
package state

import (
	"errors"
	"fmt"
	"slices"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/types"
)

// ErrUnknownClass is returned by NewCharacter for a class the catalog lacks.
var ErrUnknownClass = errors.New("unknown class")

// NewCharacter creates a fresh character at the catalog's start location.
func NewCharacter(cat *catalog.Catalog, name, classID string) (*types.Character, error) {
	cl, ok := cat.Class(classID)
	if !ok {
		return nil, fmt.Errorf("%w %q", ErrUnknownClass, classID)
	}
	game := cat.Game()
	inv := game.StartingItems
	if inv == nil {
		inv = []string{}
	}
	return &types.Character{
		Name:            name,
		Class:           classID,
		Health:          cl.Health,
		MaxHealth:       cl.Health,
		Strength:        cl.Strength,
		Agility:         cl.Agility,
		Magic:           cl.Magic,
		Inventory:       inv,
		Location:        game.Start,
		Journey:         []string{},
		QuestsCompleted: []string{},
		ActiveQuests:    []string{},
		QuestProgress:   map[string]int{},
		QuestKills:      map[string]map[string]int{},
	}, nil
}

// HasItem returns true if the character holds at least one of the item.
func HasItem(c *types.Character, itemID string) bool {
	return slices.Contains(c.Inventory, itemID)
}

// CountItem returns how many of the item the character holds.
func CountItem(c *types.Character, itemID string) int {
	n := 0
	for _, id := range c.Inventory {
		if id == itemID {
			n++
		}
	}
	return n
}

// AddItem appends an item to the inventory.
func AddItem(c *types.Character, itemID string) {
	c.Inventory = append(c.Inventory, itemID)
}

// RemoveItem removes the first instance of an item. Returns false if absent.
func RemoveItem(c *types.Character, itemID string) bool {
	i := slices.Index(c.Inventory, itemID)
	if i < 0 {
		return false
	}
	c.Inventory = slices.Delete(c.Inventory, i, i+1)
	return true
}

// RemoveItemAt removes the inventory slot at index i.
func RemoveItemAt(c *types.Character, i int) (string, bool) {
	if i < 0 || i >= len(c.Inventory) {
		return "", false
	}
	id := c.Inventory[i]
	c.Inventory = slices.Delete(c.Inventory, i, i+1)
	return id, true
}

// Heal raises health by amount, capped at MaxHealth. Returns the amount gained.
func Heal(c *types.Character, amount int) int {
	if amount < 0 {
		amount = 0
	}
	before := c.Health
	c.Health = min(c.MaxHealth, c.Health+amount)
	if c.Health < before {
		// Health above max only happens with hand-built characters.
		c.Health = before
	}
	return c.Health - before
}

// Damage lowers health by amount, stopping at zero.
func Damage(c *types.Character, amount int) {
	if amount > 0 {
		c.Health = max(0, c.Health-amount)
	}
}

// Alive reports whether the character can still act.
func Alive(c *types.Character) bool {
	return c.Health > 0
}

// IsActive reports whether the quest is in the active list.
func IsActive(c *types.Character, questID string) bool {
	return slices.Contains(c.ActiveQuests, questID)
}

// IsCompleted reports whether the quest has been turned in.
func IsCompleted(c *types.Character, questID string) bool {
	return slices.Contains(c.QuestsCompleted, questID)
}
