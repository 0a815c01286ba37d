// Package loader loads Lua game content into Go structs at startup.
// The Lua VM is discarded after loading; nothing runs Lua during play.
package loader

import (
	"fmt"
	"sort"

	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

const (
	defaultStartingBlood = 3
	defaultStartingEggs  = 3
)

// rawHuman holds a Human declaration before compilation.
type rawHuman struct {
	name  string
	file  string
	table *lua.LTable
}

// rawGround holds a Ground declaration before compilation.
type rawGround struct {
	name  string
	file  string
	table *lua.LTable
}

// getString returns a string field from a Lua table, or "" if missing.
func getString(tbl *lua.LTable, key string) string {
	if s, ok := tbl.RawGetString(key).(lua.LString); ok {
		return string(s)
	}
	return ""
}

// getBool returns a bool field from a Lua table, or the default if missing.
func getBool(tbl *lua.LTable, key string, def bool) bool {
	if b, ok := tbl.RawGetString(key).(lua.LBool); ok {
		return bool(b)
	}
	return def
}

// getInt returns an integer field from a Lua table, or the default if
// missing. Fractions truncate toward zero.
func getInt(tbl *lua.LTable, key string, def int) int {
	if n, ok := tbl.RawGetString(key).(lua.LNumber); ok {
		return int(n)
	}
	return def
}

// compile converts validated Lua data into a Defs struct. Negative counts
// clamp to zero; validate has already warned about them.
func compile(coll *collector) (*state.Defs, error) {
	if coll.game == nil {
		return nil, fmt.Errorf("no Game{} definition found")
	}

	defs := &state.Defs{
		Game:     compileGame(coll.game),
		Mosquito: compileMosquito(coll.mosquito),
	}

	for _, raw := range coll.humans {
		c, ok := types.ParseHumanColor(raw.name)
		if !ok {
			return nil, fmt.Errorf("compiling human %s: unknown color", raw.name)
		}
		defs.Humans = append(defs.Humans, c)
	}

	for _, raw := range coll.grounds {
		g, ok := types.ParseGroundType(raw.name)
		if !ok {
			return nil, fmt.Errorf("compiling ground %s: unknown type", raw.name)
		}
		defs.Grounds = append(defs.Grounds, types.GroundDef{
			Type:         g,
			StartingEggs: max(0, getInt(raw.table, "eggs", defaultStartingEggs)),
		})
	}

	return defs, nil
}

func compileGame(tbl *lua.LTable) types.GameDef {
	return types.GameDef{
		Title:         getString(tbl, "title"),
		Author:        getString(tbl, "author"),
		Version:       getString(tbl, "version"),
		Intro:         getString(tbl, "intro"),
		StartingBlood: max(0, getInt(tbl, "starting_blood", defaultStartingBlood)),
	}
}

// compileMosquito reads the Mosquitoes table. A game without one gets the
// standard mosquito phase.
func compileMosquito(tbl *lua.LTable) types.MosquitoDef {
	def := types.MosquitoDef{Enabled: true, BitesPerActiveGround: 1, BreedsPerActiveGround: 1}
	if tbl == nil {
		return def
	}
	def.Enabled = getBool(tbl, "enabled", true)
	def.BitesPerActiveGround = getInt(tbl, "bites_per_ground", 1)
	def.BreedsPerActiveGround = getInt(tbl, "breeds_per_ground", 1)
	return def
}

// sortedLuaFiles returns .lua files with game.lua first and the rest
// sorted alphabetically.
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
