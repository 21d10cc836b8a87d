package loader

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/nathoo/crystalkingdoms/content"
	"github.com/nathoo/crystalkingdoms/types"
)

// writeGame writes Lua files into a temp directory and returns it.
func writeGame(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, src := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(src), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func TestLoad_MinimalGame(t *testing.T) {
	cat, err := Load("testdata/minimal")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cat.Game().Title != "Minimal Test Game" {
		t.Errorf("Title = %q, want %q", cat.Game().Title, "Minimal Test Game")
	}
	if cat.Game().Start != "hall" {
		t.Errorf("Start = %q, want %q", cat.Game().Start, "hall")
	}
	loc, ok := cat.Location("hall")
	if !ok {
		t.Fatal("location 'hall' not found")
	}
	if loc.Description != "A grand hall." {
		t.Errorf("hall description = %q", loc.Description)
	}

	q, ok := cat.Quest("Clear the Hall")
	if !ok {
		t.Fatal("quest not found")
	}
	if q.ProgressMax != 3 {
		t.Errorf("ProgressMax should default to the kill total 3, got %d", q.ProgressMax)
	}
	if giver, _ := cat.GiverOf(q.ID); giver != "Steward" {
		t.Errorf("giver = %q", giver)
	}
}

func TestLoad_DefaultContent(t *testing.T) {
	cat, err := LoadFS(content.Default())
	if err != nil {
		t.Fatalf("LoadFS failed: %v", err)
	}

	if cat.Game().Title != "The Crystal Kingdoms" {
		t.Errorf("Title = %q", cat.Game().Title)
	}
	if !slices.Equal(cat.ClassIDs(), []string{"warrior", "mage", "rogue"}) {
		t.Errorf("classes = %v", cat.ClassIDs())
	}
	if !slices.Equal(cat.LocationIDs(), []string{"crystal_cave", "haunted_forest", "corrupted_castle"}) {
		t.Errorf("locations = %v", cat.LocationIDs())
	}
	wantQuests := []string{
		"Cleanse the Corrupted Crystals",
		"Purge the Dark Forces",
		"Retrieve Stolen Elven Heirloom",
		"Reclaim the Corrupted Throne",
	}
	if !slices.Equal(cat.QuestIDs(), wantQuests) {
		t.Errorf("quests = %v", cat.QuestIDs())
	}

	warrior, _ := cat.Class("warrior")
	if warrior != (types.ClassDef{ID: "warrior", Health: 100, Strength: 8, Agility: 5, Magic: 2}) {
		t.Errorf("warrior = %+v", warrior)
	}

	guardian, _ := cat.Enemy("Crystal Guardian")
	if guardian.Health != 50 || guardian.Strength != 5 || guardian.Agility != 4 {
		t.Errorf("guardian = %+v", guardian)
	}

	cleanse, _ := cat.Quest("Cleanse the Corrupted Crystals")
	if cleanse.ProgressMax != 2 || cleanse.Reward != "purified_crystal" {
		t.Errorf("cleanse = %+v", cleanse)
	}
	purge, _ := cat.Quest("Purge the Dark Forces")
	if purge.ProgressMax != 4 || len(purge.Kills) != 2 || purge.Kills[0] != (types.KillReq{Enemy: "Dark Wisp", Count: 3}) {
		t.Errorf("purge = %+v", purge)
	}
	heirloom, _ := cat.Quest("Retrieve Stolen Elven Heirloom")
	if heirloom.ProgressMax != 0 || len(heirloom.Kills) != 0 {
		t.Errorf("heirloom quest should be item-gated, got %+v", heirloom)
	}
	throne, _ := cat.Quest("Reclaim the Corrupted Throne")
	if throne.ProgressMax != 2 || len(throne.Kills) != 3 || throne.Reward != "" {
		t.Errorf("throne = %+v", throne)
	}

	castle, _ := cat.Location("corrupted_castle")
	if castle.Boss == nil || castle.Boss.Enemy != "Emperor SkekSo" || castle.Boss.Quest != throne.ID {
		t.Errorf("castle boss = %+v", castle.Boss)
	}

	potion, _ := cat.Item("health_potion")
	if potion.Type != types.ItemConsumable || potion.Effect != types.EffectHeal || potion.Value != 30 {
		t.Errorf("potion = %+v", potion)
	}
	if !slices.Equal(cat.Game().StartingItems, []string{"health_potion"}) {
		t.Errorf("starting items = %v", cat.Game().StartingItems)
	}
}

func TestLoad_MissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"))
	if err == nil {
		t.Fatal("expected error for missing directory")
	}
}

func TestLoad_NoLuaFiles(t *testing.T) {
	dir := writeGame(t, map[string]string{"readme.txt": "hello"})
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "no .lua files") {
		t.Errorf("expected no .lua files error, got %v", err)
	}
}

func TestLoad_LuaSyntaxError(t *testing.T) {
	dir := writeGame(t, map[string]string{"game.lua": "Game { title = "})
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "game.lua") {
		t.Errorf("expected error naming game.lua, got %v", err)
	}
}

func TestLoad_MissingGame(t *testing.T) {
	dir := writeGame(t, map[string]string{"world.lua": `Class "x" { health = 1 }`})
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "no Game{}") {
		t.Errorf("expected missing Game error, got %v", err)
	}
}

func TestLoad_Sandboxed(t *testing.T) {
	tests := []string{
		`dofile("x.lua")`,
		`loadstring("return 1")()`,
		`math.randomseed(1)`,
		`os.exit(1)`,
		`io.write("x")`,
	}
	for _, src := range tests {
		dir := writeGame(t, map[string]string{"game.lua": src})
		if _, err := Load(dir); err == nil {
			t.Errorf("expected %q to fail in the sandbox", src)
		}
	}
}

func TestLoad_BadKillEntry(t *testing.T) {
	dir := writeGame(t, map[string]string{
		"game.lua": `Game { title = "T", start = "a" }
Quest "q" { kills = { "Rat" } }`,
	})
	_, err := Load(dir)
	if err == nil || !strings.Contains(err.Error(), "Kill(...)") {
		t.Errorf("expected kill entry error, got %v", err)
	}
}

func TestSortedLuaFiles(t *testing.T) {
	got := sortedLuaFiles([]string{"world.lua", "quests.lua", "game.lua", "items.lua"})
	want := []string{"game.lua", "items.lua", "quests.lua", "world.lua"}
	if !slices.Equal(got, want) {
		t.Errorf("sortedLuaFiles = %v, want %v", got, want)
	}

	got = sortedLuaFiles([]string{"b.lua", "a.lua"})
	if !slices.Equal(got, []string{"a.lua", "b.lua"}) {
		t.Errorf("without game.lua = %v", got)
	}
}
