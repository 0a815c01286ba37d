// Package report implements JSON export of a finished or in-progress game:
// the setup, every confirmed round, and the command log that produced it.
// Reports are write-only; nothing reads them back into an engine.
package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

// Game is the JSON-serializable report format.
type Game struct {
	Version       string              `json:"version"`
	Title         string              `json:"title"`
	GameID        string              `json:"game_id"`
	Seed          int64               `json:"seed"`
	StartingBlood int                 `json:"starting_blood"`
	Humans        []types.HumanColor  `json:"humans"`
	Grounds       []types.GroundDef   `json:"grounds"`
	Rounds        []types.RoundReport `json:"rounds"`
	Outcome       types.Outcome       `json:"outcome"`
	CommandLog    []string            `json:"command_log"`
}

// New starts a report for a game built from defs.
func New(defs *state.Defs, gameID string, seed int64) *Game {
	return &Game{
		Version:       defs.Game.Version,
		Title:         defs.Game.Title,
		GameID:        gameID,
		Seed:          seed,
		StartingBlood: defs.Game.StartingBlood,
		Humans:        slices.Clone(defs.Humans),
		Grounds:       slices.Clone(defs.Grounds),
		Rounds:        []types.RoundReport{},
		CommandLog:    []string{},
	}
}

// AddRound appends a confirmed round and takes its outcome as the game's.
func (g *Game) AddRound(r types.RoundReport) {
	g.Rounds = append(g.Rounds, r)
	g.Outcome = r.Outcome
}

// LogCommand records a player command.
func (g *Game) LogCommand(cmd string) {
	g.CommandLog = append(g.CommandLog, cmd)
}

// Bites totals the bites that drew blood over every round.
func (g *Game) Bites() int {
	n := 0
	for _, r := range g.Rounds {
		n += r.Bites()
	}
	return n
}

// Breeds totals the eggs laid over every round.
func (g *Game) Breeds() int {
	n := 0
	for _, r := range g.Rounds {
		n += r.Breeds()
	}
	return n
}

// Marshal serializes a report to indented JSON.
func Marshal(g *Game) ([]byte, error) {
	return json.MarshalIndent(g, "", "  ")
}

// Write stores the report as <dir>/<game_id>.json, creating dir if needed,
// and returns the file path.
func Write(dir string, g *Game) (string, error) {
	if g.GameID == "" {
		return "", fmt.Errorf("writing report: empty game id")
	}
	data, err := Marshal(g)
	if err != nil {
		return "", fmt.Errorf("encoding report: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report dir: %w", err)
	}
	path := filepath.Join(dir, g.GameID+".json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}
