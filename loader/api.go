package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// registerAPI registers the Lua constructors as globals. All entity
// constructors are curried: Room("id") returns a function that takes the
// definition table, so game files can write Room "yard" { ... }.
func registerAPI(L *lua.LState, coll *collector) {
	// Game { title = "...", start = "...", ... }
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		coll.game = tbl
		return 0
	}))

	L.SetGlobal("Room", curried(L, func(id string, tbl *lua.LTable) {
		coll.rooms = append(coll.rooms, rawDef{id: id, table: tbl})
	}))

	L.SetGlobal("Item", curried(L, func(id string, tbl *lua.LTable) {
		coll.items = append(coll.items, rawDef{id: id, table: tbl})
	}))

	L.SetGlobal("Weapon", curried(L, func(id string, tbl *lua.LTable) {
		coll.weapons = append(coll.weapons, rawDef{id: id, table: tbl})
	}))

	L.SetGlobal("Monster", curried(L, func(id string, tbl *lua.LTable) {
		coll.monsters = append(coll.monsters, rawDef{id: id, table: tbl})
	}))

	// Locked { closed = true, key = 123 } — pass-through, returns the table.
	L.SetGlobal("Locked", L.NewFunction(func(L *lua.LState) int {
		tbl := L.CheckTable(1)
		L.Push(tbl)
		return 1
	}))
}

func curried(L *lua.LState, collect func(id string, tbl *lua.LTable)) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.CheckTable(1)
			collect(id, tbl)
			return 0
		}))
		return 1
	})
}
