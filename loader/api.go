package loader

import (
	lua "github.com/yuin/gopher-lua"
)

// rawDef holds a named definition table before compilation.
type rawDef struct {
	id    string
	table *lua.LTable
}

// registerAPI registers the content constructors as globals.
//
//	Dungeon { title = "...", width = 60, ... }
//	Cell "floor" { sprite = "floor", passable = true, ... }
//	Item "spear" { sprite = "spear", damage = 3 }
//	Monster "ant" { sprite = "ant", hp = 3, ... }
//	Object "door" { kind = "door", ... }
//	Spawn { monster = "ant", weight = 3, count = 4 }
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Dungeon", L.NewFunction(func(L *lua.LState) int {
		coll.dungeon = L.CheckTable(1)
		return 0
	}))

	L.SetGlobal("Cell", curried(L, &coll.cells))
	L.SetGlobal("Item", curried(L, &coll.items))
	L.SetGlobal("Monster", curried(L, &coll.monsters))
	L.SetGlobal("Object", curried(L, &coll.objects))

	L.SetGlobal("Spawn", L.NewFunction(func(L *lua.LState) int {
		coll.spawns = append(coll.spawns, L.CheckTable(1))
		return 0
	}))
}

// curried returns a constructor of the form Name "id" { ... } that appends
// to defs.
func curried(L *lua.LState, defs *[]rawDef) *lua.LFunction {
	return L.NewFunction(func(L *lua.LState) int {
		id := L.CheckString(1)
		L.Push(L.NewFunction(func(L *lua.LState) int {
			*defs = append(*defs, rawDef{id: id, table: L.CheckTable(1)})
			return 0
		}))
		return 1
	})
}
