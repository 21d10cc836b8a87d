package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers all Lua constructors and helpers as globals.
func registerAPI(L *lua.LState, coll *collector) {
	registerConstructors(L, coll)
	registerHelpers(L)
}

func registerConstructors(L *lua.LState, coll *collector) {
	// Game { title = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		return 0
	}))

	// Kind "id" { ... } is curried: Kind("id") returns a function taking the table.
	L.SetGlobal("Class", curried(L, &coll.classes))
	L.SetGlobal("Item", curried(L, &coll.items))
	L.SetGlobal("Enemy", curried(L, &coll.enemies))
	L.SetGlobal("Location", curried(L, &coll.locations))
	L.SetGlobal("NPC", curried(L, &coll.npcs))
	L.SetGlobal("Quest", curried(L, &coll.quests))
}

func curried(L *lua.LState, dst *[]rawDef) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			*dst = append(*dst, rawDef{id: id, table: tbl})
			return 0
		}))
		return 1
	})
}

func registerHelpers(L *lua.LState) {
	// Kill("enemy", count)
	L.SetGlobal("Kill", L.NewFunction(func(L *lua.LState) int {
		enemy := L.CheckString(1)
		count := L.CheckInt(2)
		tbl := L.NewTable()
		tbl.RawSetString("enemy", lua.LString(enemy))
		tbl.RawSetString("count", lua.LNumber(count))
		L.Push(tbl)
		return 1
	}))

	// Boss("enemy", "quest"): confrontable while the quest is active.
	L.SetGlobal("Boss", L.NewFunction(func(L *lua.LState) int {
		enemy := L.CheckString(1)
		quest := L.CheckString(2)
		tbl := L.NewTable()
		tbl.RawSetString("enemy", lua.LString(enemy))
		tbl.RawSetString("quest", lua.LString(quest))
		L.Push(tbl)
		return 1
	}))
}
