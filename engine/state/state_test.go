package state

import (
	"errors"
	"slices"
	"testing"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/types"
)

func testCatalog() *catalog.Catalog {
	return catalog.New(catalog.Content{
		Game: types.GameDef{
			Title:         "Test Game",
			Start:         "crystal_cave",
			StartingItems: []string{"health_potion"},
		},
		Classes: []types.ClassDef{
			{ID: "warrior", Health: 100, Strength: 8, Agility: 5, Magic: 2},
			{ID: "rogue", Health: 80, Strength: 5, Agility: 8, Magic: 4},
		},
		Items: []types.ItemDef{
			{ID: "health_potion", Type: types.ItemConsumable, Effect: types.EffectHeal, Value: 30},
		},
		Locations: []types.LocationDef{{ID: "crystal_cave"}},
	})
}

func TestNewCharacter_FromClass(t *testing.T) {
	c, err := NewCharacter(testCatalog(), "Aria", "rogue")
	if err != nil {
		t.Fatalf("NewCharacter: %v", err)
	}

	if c.Name != "Aria" || c.Class != "rogue" {
		t.Errorf("name/class = %q/%q", c.Name, c.Class)
	}
	if c.Health != 80 || c.MaxHealth != 80 {
		t.Errorf("health = %d/%d, want 80/80", c.Health, c.MaxHealth)
	}
	if c.Strength != 5 || c.Agility != 8 || c.Magic != 4 {
		t.Errorf("stats = %d/%d/%d", c.Strength, c.Agility, c.Magic)
	}
	if c.Location != "crystal_cave" {
		t.Errorf("location = %q", c.Location)
	}
	if !slices.Equal(c.Inventory, []string{"health_potion"}) {
		t.Errorf("inventory = %v", c.Inventory)
	}
	if c.QuestProgress == nil || c.QuestKills == nil {
		t.Error("quest maps should be initialized")
	}
	if len(c.ActiveQuests) != 0 || len(c.QuestsCompleted) != 0 {
		t.Error("new character should have no quests")
	}
}

func TestNewCharacter_UnknownClass(t *testing.T) {
	_, err := NewCharacter(testCatalog(), "Aria", "bard")
	if !errors.Is(err, ErrUnknownClass) {
		t.Errorf("expected ErrUnknownClass, got %v", err)
	}
}

func TestNewCharacter_InventoryIsPrivate(t *testing.T) {
	cat := testCatalog()
	a, _ := NewCharacter(cat, "A", "warrior")
	b, _ := NewCharacter(cat, "B", "warrior")

	AddItem(a, "crystal_shard")
	if len(b.Inventory) != 1 {
		t.Errorf("characters share inventory storage: %v", b.Inventory)
	}
}

func TestInventory_Multiset(t *testing.T) {
	c := &types.Character{Inventory: []string{"shard", "potion", "shard"}}

	if !HasItem(c, "shard") {
		t.Error("expected shard")
	}
	if CountItem(c, "shard") != 2 {
		t.Errorf("CountItem = %d, want 2", CountItem(c, "shard"))
	}
	if !RemoveItem(c, "shard") {
		t.Fatal("RemoveItem returned false")
	}
	if !slices.Equal(c.Inventory, []string{"potion", "shard"}) {
		t.Errorf("only the first shard should be removed, got %v", c.Inventory)
	}
	if RemoveItem(c, "sword") {
		t.Error("removing a missing item should fail")
	}
}

func TestRemoveItemAt(t *testing.T) {
	c := &types.Character{Inventory: []string{"a", "b", "c"}}

	id, ok := RemoveItemAt(c, 1)
	if !ok || id != "b" {
		t.Errorf("RemoveItemAt(1) = %q, %v", id, ok)
	}
	if !slices.Equal(c.Inventory, []string{"a", "c"}) {
		t.Errorf("inventory = %v", c.Inventory)
	}
	for _, i := range []int{-1, 2, 10} {
		if _, ok := RemoveItemAt(c, i); ok {
			t.Errorf("RemoveItemAt(%d) should fail", i)
		}
	}
}

func TestHeal_Clamps(t *testing.T) {
	tests := []struct {
		health, max, amount int
		wantHealth, gained  int
	}{
		{50, 100, 20, 70, 20},
		{90, 100, 20, 100, 10},
		{100, 100, 5, 100, 0},
		{0, 100, 30, 30, 30},
		{-4, 100, 10, 6, 10},
		{50, 100, -10, 50, 0},
	}
	for _, tt := range tests {
		c := &types.Character{Health: tt.health, MaxHealth: tt.max}
		got := Heal(c, tt.amount)
		if c.Health != tt.wantHealth || got != tt.gained {
			t.Errorf("Heal(%d/%d, %d) → health %d gained %d, want %d/%d",
				tt.health, tt.max, tt.amount, c.Health, got, tt.wantHealth, tt.gained)
		}
		if c.Health > c.MaxHealth {
			t.Errorf("health %d exceeds max %d", c.Health, c.MaxHealth)
		}
	}
}

func TestDamageAndAlive(t *testing.T) {
	c := &types.Character{Health: 5, MaxHealth: 10}

	Damage(c, 3)
	if c.Health != 2 || !Alive(c) {
		t.Errorf("health = %d, alive = %v", c.Health, Alive(c))
	}
	Damage(c, -7)
	if c.Health != 2 {
		t.Errorf("negative damage should be ignored, health = %d", c.Health)
	}
	Damage(c, 4)
	if Alive(c) {
		t.Errorf("health %d should be defeated", c.Health)
	}
}

func TestDamage_FloorsAtZero(t *testing.T) {
	c := &types.Character{Health: 3, MaxHealth: 100}
	Damage(c, 15)
	if c.Health != 0 {
		t.Errorf("health = %d, want 0", c.Health)
	}
	if Alive(c) {
		t.Error("character at 0 health should be defeated")
	}
	Damage(c, 5)
	if c.Health != 0 {
		t.Errorf("health = %d after hitting a downed character", c.Health)
	}
}

func TestQuestMembership(t *testing.T) {
	c := &types.Character{
		ActiveQuests:    []string{"Purge"},
		QuestsCompleted: []string{"Cleanse"},
	}
	if !IsActive(c, "Purge") || IsActive(c, "Cleanse") {
		t.Error("IsActive wrong")
	}
	if !IsCompleted(c, "Cleanse") || IsCompleted(c, "Purge") {
		t.Error("IsCompleted wrong")
	}
}
