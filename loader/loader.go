package loader

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/eradicate/engine/state"
)

// collector accumulates Lua definitions during file execution.
type collector struct {
	game      *lua.LTable
	mosquito  *lua.LTable
	humans    []rawHuman
	grounds   []rawGround
	gameCalls int
	file      string
}

// Option customizes Load.
type Option func(*options)

type options struct {
	log zerolog.Logger
}

// WithLogger sets the logger that receives validation warnings. The
// default writes them to stderr.
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.log = l }
}

// Load reads all .lua files from dir, validates the collected definitions,
// and compiles them into the immutable Defs. The Lua VM is discarded after
// loading.
func Load(dir string, opts ...Option) (*state.Defs, error) {
	o := options{
		log: zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).Level(zerolog.WarnLevel),
	}
	for _, opt := range opts {
		opt(&o)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading game directory %s: %w", dir, err)
	}

	var luaFiles []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".lua") {
			luaFiles = append(luaFiles, e.Name())
		}
	}
	if len(luaFiles) == 0 {
		return nil, fmt.Errorf("no .lua files found in %s", dir)
	}

	// game.lua first, rest alphabetical.
	luaFiles = sortedLuaFiles(luaFiles)

	L := lua.NewState(lua.Options{SkipOpenLibs: true})
	defer L.Close()
	openSafeLibs(L)
	sandbox(L)

	coll := &collector{}
	registerAPI(L, coll)

	for _, f := range luaFiles {
		coll.file = f
		if err := L.DoFile(filepath.Join(dir, f)); err != nil {
			return nil, fmt.Errorf("executing %s: %w", f, err)
		}
	}

	if err := validate(coll, o.log); err != nil {
		return nil, err
	}

	defs, err := compile(coll)
	if err != nil {
		return nil, fmt.Errorf("compiling game data: %w", err)
	}

	o.log.Debug().
		Str("title", defs.Game.Title).
		Int("humans", len(defs.Humans)).
		Int("grounds", len(defs.Grounds)).
		Int("files", len(luaFiles)).
		Msg("game loaded")

	return defs, nil
}

// openSafeLibs opens base, table, string and math only. No io, os or
// package access.
func openSafeLibs(L *lua.LState) {
	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)
}

// sandbox strips the base globals that reach the filesystem, bypass
// metatables or seed the Lua RNG.
func sandbox(L *lua.LState) {
	for _, name := range []string{
		"dofile", "loadfile", "load", "loadstring",
		"rawset", "rawget", "rawequal",
		"collectgarbage", "require", "module",
	} {
		L.SetGlobal(name, lua.LNil)
	}

	if tbl, ok := L.GetGlobal("math").(*lua.LTable); ok {
		tbl.RawSetString("randomseed", lua.LNil)
	}
}
