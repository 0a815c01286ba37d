package loader

import (
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/eradicate/types"
)

// registerAPI registers the Lua constructors and the read-only name lists.
//
//	Game { title = "...", starting_blood = 3 }
//	Mosquitoes { enabled = true }
//	Human "Orange" {}
//	Ground "KiddiePool" { eggs = 3 }
func registerAPI(L *lua.LState, coll *collector) {
	L.SetGlobal("Game", L.NewFunction(func(L *lua.LState) int {
		coll.game = L.CheckTable(1)
		coll.gameCalls++
		return 0
	}))

	L.SetGlobal("Mosquitoes", L.NewFunction(func(L *lua.LState) int {
		coll.mosquito = L.CheckTable(1)
		return 0
	}))

	// Human "Orange" { ... }: curried, Human("Orange") returns a function
	// that takes the table.
	L.SetGlobal("Human", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		file := coll.file
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.OptTable(1, L.NewTable())
			coll.humans = append(coll.humans, rawHuman{name: name, file: file, table: tbl})
			return 0
		}))
		return 1
	}))

	// Ground "KiddiePool" { eggs = 3 }: curried.
	L.SetGlobal("Ground", L.NewFunction(func(L *lua.LState) int {
		name := L.CheckString(1)
		file := coll.file
		L.Push(L.NewFunction(func(L *lua.LState) int {
			tbl := L.OptTable(1, L.NewTable())
			coll.grounds = append(coll.grounds, rawGround{name: name, file: file, table: tbl})
			return 0
		}))
		return 1
	}))

	colors := L.NewTable()
	for _, c := range types.AllHumanColors() {
		colors.Append(lua.LString(c.String()))
	}
	L.SetGlobal("HumanColors", colors)

	grounds := L.NewTable()
	for _, g := range types.AllGroundTypes() {
		grounds.Append(lua.LString(g.String()))
	}
	L.SetGlobal("GroundTypes", grounds)
}
