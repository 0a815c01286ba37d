package loader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	lua "github.com/yuin/gopher-lua"

	"github.com/nathoo/eradicate/types"
)

// ValidationError collects all validation errors and warnings.
type ValidationError struct {
	Errors   []string
	Warnings []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed with %d error(s):\n  %s",
		len(e.Errors), strings.Join(e.Errors, "\n  "))
}

func (e *ValidationError) errorf(format string, args ...any) {
	e.Errors = append(e.Errors, fmt.Sprintf(format, args...))
}

func (e *ValidationError) warnf(format string, args ...any) {
	e.Warnings = append(e.Warnings, fmt.Sprintf(format, args...))
}

// Known fields per constructor. Anything else is most likely a typo.
var (
	gameFields     = fieldSet("title", "author", "version", "intro", "starting_blood")
	mosquitoFields = fieldSet("enabled", "bites_per_ground", "breeds_per_ground")
	humanFields    = fieldSet()
	groundFields   = fieldSet("eggs")
)

func fieldSet(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

// validate checks the collected declarations before compilation. Warnings
// are logged; errors are returned together as a *ValidationError.
func validate(coll *collector, log zerolog.Logger) error {
	ve := &ValidationError{}

	if coll.game == nil {
		ve.errorf("no Game{} definition found")
	} else {
		if coll.gameCalls > 1 {
			ve.warnf("Game{} defined %d times; the last one wins", coll.gameCalls)
		}
		if getString(coll.game, "title") == "" {
			ve.errorf("Game.title is required")
		}
		switch blood := getInt(coll.game, "starting_blood", defaultStartingBlood); {
		case blood < 0:
			ve.warnf("Game.starting_blood %d is negative; clamped to 0", blood)
		case blood == 0:
			ve.warnf("Game.starting_blood is 0; every human starts eliminated")
		}
		checkFields(ve, "Game", coll.game, gameFields)
	}

	if coll.mosquito != nil {
		for _, key := range []string{"bites_per_ground", "breeds_per_ground"} {
			if n := getInt(coll.mosquito, key, 1); n < 1 {
				ve.warnf("Mosquitoes.%s %d is below 1", key, n)
			}
		}
		checkFields(ve, "Mosquitoes", coll.mosquito, mosquitoFields)
	}

	seenHumans := map[types.HumanColor]string{}
	for _, raw := range coll.humans {
		c, ok := types.ParseHumanColor(raw.name)
		if !ok {
			ve.errorf("%s: unknown human color %q (want one of %s)", raw.file, raw.name, humanColorList())
			continue
		}
		if prev, dup := seenHumans[c]; dup {
			ve.errorf("%s: human %s already declared in %s", raw.file, c, prev)
			continue
		}
		seenHumans[c] = raw.file
		checkFields(ve, "Human "+c.String(), raw.table, humanFields)
	}
	if len(coll.humans) == 0 {
		ve.warnf("no Human declared; the game starts lost")
	}

	seenGrounds := map[types.GroundType]string{}
	for _, raw := range coll.grounds {
		g, ok := types.ParseGroundType(raw.name)
		if !ok {
			ve.errorf("%s: unknown breeding ground %q (want one of %s)", raw.file, raw.name, groundTypeList())
			continue
		}
		if prev, dup := seenGrounds[g]; dup {
			ve.errorf("%s: ground %s already declared in %s", raw.file, g, prev)
			continue
		}
		seenGrounds[g] = raw.file
		if eggs := getInt(raw.table, "eggs", defaultStartingEggs); eggs < 0 {
			ve.warnf("%s: ground %s eggs %d is negative; clamped to 0", raw.file, g, eggs)
		}
		checkFields(ve, "Ground "+g.String(), raw.table, groundFields)
	}
	if len(coll.grounds) == 0 {
		ve.warnf("no Ground declared; the game starts won")
	}

	for _, w := range ve.Warnings {
		log.Warn().Msg(w)
	}

	if len(ve.Errors) > 0 {
		return ve
	}
	return nil
}

// checkFields warns about string keys the constructor does not use.
func checkFields(ve *ValidationError, owner string, tbl *lua.LTable, known map[string]bool) {
	if tbl == nil {
		return
	}
	var unknown []string
	tbl.ForEach(func(k, _ lua.LValue) {
		if ks, ok := k.(lua.LString); ok && !known[string(ks)] {
			unknown = append(unknown, string(ks))
		}
	})
	sort.Strings(unknown)
	for _, key := range unknown {
		ve.warnf("%s: unknown field %q ignored", owner, key)
	}
}

func humanColorList() string {
	names := make([]string, 0, types.NumHumanColors)
	for _, c := range types.AllHumanColors() {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func groundTypeList() string {
	names := make([]string, 0, types.NumGroundTypes)
	for _, g := range types.AllGroundTypes() {
		names = append(names, g.String())
	}
	return strings.Join(names, ", ")
}
