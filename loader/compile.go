// Package loader loads Lua game content into the immutable catalog.
// The Lua VM is discarded after loading; no Lua runs during play.
package loader

import (
	"fmt"
	"sort"

	"github.com/nathoo/crystalkingdoms/engine/catalog"
	"github.com/nathoo/crystalkingdoms/types"
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	v := tbl.RawGetString(key)
	if s, ok := v.(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getNumber returns a numeric field from a Lua table, or 0 if missing.
func getNumber(tbl *lua.LTable, key string) float64 {
	v := tbl.RawGetString(key)
	if n, ok := v.(lua.LNumber); ok {
		return float64(n)
	}
	return 0
}

// getInt returns an int field from a Lua table, or 0 if missing.
func getInt(tbl *lua.LTable, key string) int {
	return int(getNumber(tbl, key))
}

// hasKey reports whether the field is set at all.
func hasKey(tbl *lua.LTable, key string) bool {
	return tbl.RawGetString(key) != lua.LNil
}

// getTable returns a table field from a Lua table, or nil if missing.
func getTable(tbl *lua.LTable, key string) *lua.LTable {
	v := tbl.RawGetString(key)
	if t, ok := v.(*lua.LTable); ok {
		return t
	}
	return nil
}

// tableToStrings converts the array part of a Lua table to strings,
// skipping non-string entries.
func tableToStrings(tbl *lua.LTable) []string {
	if tbl == nil {
		return nil
	}
	var out []string
	for i := 1; i <= tbl.MaxN(); i++ {
		if s, ok := tbl.RawGetInt(i).(lua.LString); ok {
			out = append(out, string(s))
		}
	}
	return out
}

// compile converts all collected Lua data into catalog content.
func compile(coll *collector) (catalog.Content, error) {
	var content catalog.Content

	if coll.game == nil {
		return content, fmt.Errorf("no Game{} definition found")
	}
	content.Game = compileGame(coll.game)

	for _, raw := range coll.classes {
		content.Classes = append(content.Classes, types.ClassDef{
			ID:       raw.id,
			Health:   getInt(raw.table, "health"),
			Strength: getInt(raw.table, "strength"),
			Agility:  getInt(raw.table, "agility"),
			Magic:    getInt(raw.table, "magic"),
		})
	}

	for _, raw := range coll.items {
		content.Items = append(content.Items, types.ItemDef{
			ID:     raw.id,
			Name:   getString(raw.table, "name"),
			Type:   types.ItemType(getString(raw.table, "type")),
			Effect: types.EffectKind(getString(raw.table, "effect")),
			Value:  getInt(raw.table, "value"),
		})
	}

	for _, raw := range coll.enemies {
		name := getString(raw.table, "name")
		if name == "" {
			name = raw.id
		}
		content.Enemies = append(content.Enemies, types.EnemyDef{
			ID:       raw.id,
			Name:     name,
			Health:   getInt(raw.table, "health"),
			Strength: getInt(raw.table, "strength"),
			Agility:  getInt(raw.table, "agility"),
		})
	}

	for _, raw := range coll.locations {
		content.Locations = append(content.Locations, compileLocation(raw))
	}

	for _, raw := range coll.npcs {
		content.NPCs = append(content.NPCs, types.NPCDef{
			ID:     raw.id,
			Quests: tableToStrings(getTable(raw.table, "quests")),
		})
	}

	for _, raw := range coll.quests {
		q, err := compileQuest(raw)
		if err != nil {
			return content, fmt.Errorf("compiling quest %s: %w", raw.id, err)
		}
		content.Quests = append(content.Quests, q)
	}

	return content, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:         getString(tbl, "title"),
		Author:        getString(tbl, "author"),
		Version:       getString(tbl, "version"),
		Start:         getString(tbl, "start"),
		Intro:         getString(tbl, "intro"),
		StartingItems: tableToStrings(getTable(tbl, "starting_items")),
	}
}

func compileLocation(raw rawDef) types.LocationDef {
	tbl := raw.table
	loc := types.LocationDef{
		ID:          raw.id,
		Name:        getString(tbl, "name"),
		Description: getString(tbl, "description"),
		Enemies:     tableToStrings(getTable(tbl, "enemies")),
		Items:       tableToStrings(getTable(tbl, "items")),
		NPCs:        tableToStrings(getTable(tbl, "npcs")),
	}
	if boss := getTable(tbl, "boss"); boss != nil {
		loc.Boss = &types.BossDef{
			Enemy: getString(boss, "enemy"),
			Quest: getString(boss, "quest"),
		}
	}
	return loc
}

// compileQuest compiles a quest. When progress is omitted it is the sum of
// the kill counts.
func compileQuest(raw rawDef) (types.QuestDef, error) {
	tbl := raw.table
	q := types.QuestDef{
		ID:          raw.id,
		Description: getString(tbl, "description"),
		Requires:    tableToStrings(getTable(tbl, "requires")),
		ItemsNeeded: tableToStrings(getTable(tbl, "items")),
		Reward:      getString(tbl, "reward"),
	}

	if kills := getTable(tbl, "kills"); kills != nil {
		for i := 1; i <= kills.MaxN(); i++ {
			k, ok := kills.RawGetInt(i).(*lua.LTable)
			if !ok {
				return q, fmt.Errorf("kills[%d] is not a Kill(...) entry", i)
			}
			q.Kills = append(q.Kills, types.KillReq{
				Enemy: getString(k, "enemy"),
				Count: getInt(k, "count"),
			})
		}
	}

	if hasKey(tbl, "progress") {
		q.ProgressMax = getInt(tbl, "progress")
	} else {
		q.ProgressMax = killTotal(q)
	}
	return q, nil
}

func killTotal(q types.QuestDef) int {
	total := 0
	for _, k := range q.Kills {
		total += k.Count
	}
	return total
}

// sortedLuaFiles returns .lua files with game.lua first and the rest sorted
// alphabetically.
func sortedLuaFiles(files []string) []string {
	var gameFile string
	var others []string
	for _, f := range files {
		if f == "game.lua" {
			gameFile = f
		} else {
			others = append(others, f)
		}
	}
	sort.Strings(others)
	if gameFile != "" {
		return append([]string{gameFile}, others...)
	}
	return others
}
