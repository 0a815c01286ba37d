// Eradicate! is a turn-based mosquito control game: each round you protect
// humans or clear breeding grounds, then the mosquitoes act.
// Usage: eradicate [--version] [--plain] [--script <file>] [--seed <n>] [--config <dir>] [--trace] <game_directory>
package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/nathoo/eradicate/cli"
	"github.com/nathoo/eradicate/config"
	"github.com/nathoo/eradicate/engine"
	"github.com/nathoo/eradicate/engine/session"
	"github.com/nathoo/eradicate/loader"
	"github.com/nathoo/eradicate/logging"
	"github.com/nathoo/eradicate/tui"
)

// Set via -ldflags at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = "Usage: eradicate [--version] [--plain] [--script <file>] [--seed <n>] [--config <dir>] [--trace] <game_directory>\n"

func main() {
	plain := false
	trace := false
	var gameDir, scriptFile, configDir string
	var seed int64
	seedSet := false

	args := os.Args[1:]
	for i := 0; i < len(args); i++ {
		switch args[i] {
		case "--version":
			fmt.Printf("eradicate %s (commit %s, built %s)\n", version, commit, date)
			return
		case "--plain":
			plain = true
		case "--trace":
			trace = true
		case "--script", "--seed", "--config":
			if i+1 >= len(args) {
				fmt.Fprintf(os.Stderr, "%s requires a value\n", args[i])
				os.Exit(1)
			}
			flag := args[i]
			i++
			switch flag {
			case "--script":
				scriptFile = args[i]
			case "--config":
				configDir = args[i]
			case "--seed":
				n, err := strconv.ParseInt(args[i], 10, 64)
				if err != nil {
					fmt.Fprintf(os.Stderr, "--seed: %v\n", err)
					os.Exit(1)
				}
				seed, seedSet = n, true
			}
		default:
			if gameDir == "" {
				gameDir = args[i]
			}
		}
	}

	if gameDir == "" {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(1)
	}

	settings, err := config.Load(configDir)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading settings: %v\n", err)
		os.Exit(1)
	}
	log := logging.New(os.Stderr, settings.LogLevel, trace)

	// Load and compile Lua game content.
	defs, err := loader.Load(gameDir, loader.WithLogger(log))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading game: %v\n", err)
		os.Exit(1)
	}

	if !seedSet {
		seed = settings.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	log.Debug().Int64("seed", seed).Str("game", defs.Game.Title).Msg("starting")

	eng := engine.New(engine.ConfigFromDefs(defs),
		engine.WithRandom(engine.NewRNG(seed)),
		engine.WithLogger(log))
	s := session.New(eng, defs, seed)

	// Script mode: open file, force plain, echo commands.
	if scriptFile != "" {
		f, err := os.Open(scriptFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening script: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		runPlain(s, settings.ReportDir, trace, func(c *cli.CLI) {
			c.In = f
			c.EchoInput = true
		})
		return
	}

	// Use plain CLI if asked to, or if stdout is not a terminal.
	if plain || settings.UI == config.UIPlain || (settings.UI == config.UIAuto && !isTerminal()) {
		runPlain(s, settings.ReportDir, trace, nil)
		return
	}

	if err := tui.Run(s, settings.ReportDir); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func runPlain(s *session.Session, reportDir string, trace bool, setup func(*cli.CLI)) {
	g := s.Defs.Game
	fmt.Printf("%s v%s by %s\n\n", g.Title, g.Version, g.Author)
	c := cli.New(s, reportDir)
	c.Trace = trace
	if setup != nil {
		setup(c)
	}
	c.Run()
}

// isTerminal returns true if stdout is a terminal (not piped/redirected).
func isTerminal() bool {
	fi, err := os.Stdout.Stat()
	if err != nil {
		return false
	}
	return fi.Mode()&os.ModeCharDevice != 0
}
