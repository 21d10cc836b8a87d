package effects

import (
	"errors"
	"slices"
	"testing"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/engine/events"
	"github.com/nathoo/crystalkingdoms/types"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Content{
		Game: types.GameDef{Title: "Test", Start: "cave"},
		Items: []types.ItemDef{
			{ID: "health_potion", Name: "Health Potion", Type: types.ItemConsumable, Effect: types.EffectHeal, Value: 30},
			{ID: "magic_scroll", Name: "Magic Scroll", Type: types.ItemConsumable, Effect: types.EffectMagicBoost, Value: 5},
			{ID: "ancient_sword", Name: "Ancient Sword", Type: types.ItemWeapon, Effect: types.EffectStrengthBoost, Value: 3},
			{ID: "elven_heirloom", Name: "Elven Heirloom", Type: types.ItemKey, Effect: types.EffectStory},
		},
	})
}

func testCharacter(inv ...string) *types.Character {
	return &types.Character{
		Health: 50, MaxHealth: 100, Strength: 8, Agility: 5, Magic: 2,
		Inventory: inv,
	}
}

func TestUse(t *testing.T) {
	tests := []struct {
		name     string
		item     string
		health   int
		check    func(c *types.Character) bool
		wantGain int
	}{
		{"potion heals", "health_potion", 50, func(c *types.Character) bool { return c.Health == 80 }, 30},
		{"potion caps at max", "health_potion", 90, func(c *types.Character) bool { return c.Health == 100 }, 10},
		{"scroll boosts magic", "magic_scroll", 50, func(c *types.Character) bool { return c.Magic == 7 }, 5},
		{"sword boosts strength", "ancient_sword", 50, func(c *types.Character) bool { return c.Strength == 11 }, 3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cat := testCatalog()
			c := testCharacter("elven_heirloom", tt.item)
			c.Health = tt.health

			evts, err := Use(c, cat, 1)
			if err != nil {
				t.Fatalf("Use: %v", err)
			}
			if !tt.check(c) {
				t.Errorf("stats not applied: %+v", c)
			}
			if !slices.Equal(c.Inventory, []string{"elven_heirloom"}) {
				t.Errorf("inventory = %v, item should be consumed", c.Inventory)
			}
			if len(evts) != 1 || evts[0].Type != events.ItemUsed {
				t.Fatalf("events = %+v", evts)
			}
			if events.Int(evts[0], "gained") != tt.wantGain {
				t.Errorf("gained = %d, want %d", events.Int(evts[0], "gained"), tt.wantGain)
			}
		})
	}
}

func TestUse_KeyItemNotUsable(t *testing.T) {
	cat := testCatalog()
	c := testCharacter("elven_heirloom")

	if _, err := Use(c, cat, 0); !errors.Is(err, ErrNotUsable) {
		t.Errorf("err = %v, want ErrNotUsable", err)
	}
	if len(c.Inventory) != 1 {
		t.Error("key item must stay in inventory")
	}
}

func TestUse_BadSlot(t *testing.T) {
	cat := testCatalog()
	c := testCharacter("health_potion")
	for _, slot := range []int{-1, 1} {
		if _, err := Use(c, cat, slot); !errors.Is(err, ErrNoSuchSlot) {
			t.Errorf("slot %d err = %v", slot, err)
		}
	}
	if _, err := Use(testCharacter(), cat, 0); !errors.Is(err, ErrNoSuchSlot) {
		t.Errorf("empty inventory err = %v", err)
	}
}

func TestUse_RemovesChosenSlotOnly(t *testing.T) {
	cat := testCatalog()
	c := testCharacter("health_potion", "magic_scroll", "health_potion")
	if _, err := Use(c, cat, 2); err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(c.Inventory, []string{"health_potion", "magic_scroll"}) {
		t.Errorf("inventory = %v", c.Inventory)
	}
}

func TestDiscard_KeyItem(t *testing.T) {
	cat := testCatalog()
	c := testCharacter("health_potion", "elven_heirloom")

	evts, err := Discard(c, cat, 1)
	if err != nil {
		t.Fatalf("Discard: %v", err)
	}
	if !slices.Equal(c.Inventory, []string{"health_potion"}) {
		t.Errorf("inventory = %v", c.Inventory)
	}
	if len(evts) != 1 || evts[0].Type != events.ItemDiscarded || events.String(evts[0], "item") != "elven_heirloom" {
		t.Errorf("events = %+v", evts)
	}
}

func TestDiscard_OnlyKeyItems(t *testing.T) {
	cat := testCatalog()
	c := testCharacter("health_potion")
	if _, err := Discard(c, cat, 0); !errors.Is(err, ErrNotDiscardable) {
		t.Errorf("err = %v", err)
	}
	if len(c.Inventory) != 1 {
		t.Error("potion must not be discarded")
	}
}

func TestUsable(t *testing.T) {
	cat := testCatalog()
	for id, want := range map[string]bool{
		"health_potion": true, "ancient_sword": true, "elven_heirloom": false,
	} {
		item, _ := cat.Item(id)
		if Usable(item) != want {
			t.Errorf("Usable(%s) = %v", id, !want)
		}
	}
}
