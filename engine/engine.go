// Package engine provides the RoundEngine, the authoritative state machine
// for a game of Eradicate!: intent selection, confirmation, and the
// randomized mosquito phase. Views read state through the accessors and
// re-render when notified; they never hold references into engine storage.
package engine

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/nathoo/eradicate/engine/effects"
	"github.com/nathoo/eradicate/engine/events"
	"github.com/nathoo/eradicate/engine/rules"
	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

// Config holds the construction-time tunables.
//
// BitesPerActiveGround and BreedsPerActiveGround are carried for the game
// definitions but not consumed: the mosquito phase always performs exactly
// one action per active ground.
type Config struct {
	MosquitoPhase         bool
	BitesPerActiveGround  int
	BreedsPerActiveGround int
}

// DefaultConfig returns the tunables of the standard game.
func DefaultConfig() Config {
	return Config{
		MosquitoPhase:         true,
		BitesPerActiveGround:  1,
		BreedsPerActiveGround: 1,
	}
}

// ConfigFromDefs builds a Config from loaded game definitions.
func ConfigFromDefs(defs *state.Defs) Config {
	return Config{
		MosquitoPhase:         defs.Mosquito.Enabled,
		BitesPerActiveGround:  defs.Mosquito.BitesPerActiveGround,
		BreedsPerActiveGround: defs.Mosquito.BreedsPerActiveGround,
	}
}

// Option customizes a RoundEngine.
type Option func(*RoundEngine)

// WithRandom sets the random source for the mosquito phase.
func WithRandom(r Random) Option {
	return func(e *RoundEngine) { e.rnd = r }
}

// WithLogger sets the engine logger. The default discards everything.
func WithLogger(l zerolog.Logger) Option {
	return func(e *RoundEngine) { e.log = l }
}

// WithIDGenerator sets the function producing game IDs.
func WithIDGenerator(f func() string) Option {
	return func(e *RoundEngine) { e.newID = f }
}

// RoundEngine owns all entity and intent state. It is not safe for
// concurrent use; every method runs to completion on the caller's
// goroutine, and notifications are delivered inline after state is
// committed, so listeners may call back into the engine.
type RoundEngine struct {
	cfg   Config
	rnd   Random
	log   zerolog.Logger
	newID func() string
	bus   events.Bus

	board   *state.Board
	phase   types.Phase
	outcome types.Outcome
	round   int
	gameID  string

	protectIntents   [types.NumHumanColors]bool
	clearIntents     [types.NumGroundTypes]bool
	clearedThisRound map[types.GroundType]bool
	actionsAvailable int
	actionsTaken     int

	lastRound    types.RoundReport
	hasLastRound bool
}

// New creates an engine with no game in progress. Every intent and
// confirmation is rejected until StartNewGame is called.
func New(cfg Config, opts ...Option) *RoundEngine {
	e := &RoundEngine{
		cfg:              cfg,
		log:              zerolog.Nop(),
		newID:            uuid.NewString,
		board:            state.NewBoard(nil, nil, 0),
		phase:            types.GameOver,
		clearedThisRound: map[types.GroundType]bool{},
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.rnd == nil {
		e.rnd = NewRNG(time.Now().UnixNano())
	}
	if cfg.BitesPerActiveGround != 1 || cfg.BreedsPerActiveGround != 1 {
		e.log.Debug().
			Int("bites_per_ground", cfg.BitesPerActiveGround).
			Int("breeds_per_ground", cfg.BreedsPerActiveGround).
			Msg("per-ground multipliers are ignored; one mosquito action per active ground")
	}
	return e
}

// StartNewGame discards any previous state and builds a fresh board from
// the rosters. If the board already meets an end condition (no breeding
// ground with eggs, or no human with blood) the game starts over.
func (e *RoundEngine) StartNewGame(humans []types.HumanColor, grounds []types.GroundDef, startingBloodPerHuman int) {
	e.board = state.NewBoard(humans, grounds, startingBloodPerHuman)
	e.gameID = e.newID()
	e.round = 1
	e.outcome = types.OutcomeNone
	e.lastRound = types.RoundReport{}
	e.hasLastRound = false

	e.beginSelectActionsPhase()

	if outcome := rules.Evaluate(e.board); outcome != types.OutcomeNone {
		e.phase = types.GameOver
		e.outcome = outcome
	}

	e.log.Info().
		Str("game", e.gameID).
		Int("humans", len(e.board.Humans())).
		Int("grounds", len(e.board.Grounds())).
		Int("starting_blood", startingBloodPerHuman).
		Str("phase", e.phase.String()).
		Msg("new game")

	e.bus.Publish()
}

// StartFromDefs starts a new game from loaded definitions.
func (e *RoundEngine) StartFromDefs(defs *state.Defs) {
	e.StartNewGame(defs.Humans, defs.Grounds, defs.Game.StartingBlood)
}

func (e *RoundEngine) beginSelectActionsPhase() {
	clear(e.clearedThisRound)
	e.phase = types.SelectActions
	e.board.ResetProtection()
	e.resetIntents()
	e.actionsAvailable = e.board.CountActiveHumans()
}

func (e *RoundEngine) resetIntents() {
	e.protectIntents = [types.NumHumanColors]bool{}
	e.clearIntents = [types.NumGroundTypes]bool{}
	e.actionsTaken = 0
}

// TryToggleHuman toggles the protect intent for a human and reports
// whether anything changed.
func (e *RoundEngine) TryToggleHuman(c types.HumanColor) bool {
	return e.ToggleHuman(c) == nil
}

// TryToggleBreedingGround toggles the clear intent for a ground and reports
// whether anything changed.
func (e *RoundEngine) TryToggleBreedingGround(g types.GroundType) bool {
	return e.ToggleBreedingGround(g) == nil
}

// ToggleHuman toggles the protect intent for a human. Selecting is subject
// to the action budget; deselecting always succeeds. The returned error
// wraps one of the rules sentinels.
func (e *RoundEngine) ToggleHuman(c types.HumanColor) error {
	if err := rules.CheckPhase(e.phase); err != nil {
		return e.reject("toggle human", err)
	}
	if err := rules.CheckHuman(e.board, c); err != nil {
		return e.reject("toggle human", err)
	}

	if e.protectIntents[c] {
		e.protectIntents[c] = false
		e.actionsTaken = max(0, e.actionsTaken-1)
		e.bus.Publish()
		return nil
	}

	if err := rules.CheckBudget(e.actionsTaken, e.actionsAvailable); err != nil {
		return e.reject("toggle human", err)
	}
	e.protectIntents[c] = true
	e.actionsTaken++
	e.bus.Publish()
	return nil
}

// ToggleBreedingGround toggles the clear intent for a ground, with the same
// contract as ToggleHuman.
func (e *RoundEngine) ToggleBreedingGround(g types.GroundType) error {
	if err := rules.CheckPhase(e.phase); err != nil {
		return e.reject("toggle ground", err)
	}
	if err := rules.CheckGround(e.board, g); err != nil {
		return e.reject("toggle ground", err)
	}

	if e.clearIntents[g] {
		e.clearIntents[g] = false
		e.actionsTaken = max(0, e.actionsTaken-1)
		e.bus.Publish()
		return nil
	}

	if err := rules.CheckBudget(e.actionsTaken, e.actionsAvailable); err != nil {
		return e.reject("toggle ground", err)
	}
	e.clearIntents[g] = true
	e.actionsTaken++
	e.bus.Publish()
	return nil
}

// Confirm resolves the round if every action is assigned and reports
// whether it did. It is a silent no-op otherwise; check CanConfirm first.
func (e *RoundEngine) Confirm() bool {
	_, err := e.ConfirmRound()
	return err == nil
}

// ConfirmRound applies the round's intents, runs the mosquito phase, checks
// the end conditions and returns the record of what happened. It fails
// without side effects unless the phase is SelectActions and ActionsTaken
// equals ActionsAvailable.
func (e *RoundEngine) ConfirmRound() (types.RoundReport, error) {
	if err := rules.CheckConfirm(e.phase, e.actionsTaken, e.actionsAvailable); err != nil {
		return types.RoundReport{}, e.reject("confirm", err)
	}

	e.phase = types.ResolvingActions
	report := types.RoundReport{Round: e.round}

	for _, h := range e.board.Humans() {
		if !e.protectIntents[h.Color] {
			continue
		}
		if effects.Apply(e.board, types.Effect{Type: types.EffectProtect, Human: h.Color}) == types.ResultApplied {
			report.Protected = append(report.Protected, h.Color)
		}
	}

	clear(e.clearedThisRound)
	for _, g := range e.board.Grounds() {
		if !e.clearIntents[g.Type] {
			continue
		}
		if effects.Apply(e.board, types.Effect{Type: types.EffectClear, Ground: g.Type}) != types.ResultApplied {
			continue
		}
		e.clearedThisRound[g.Type] = true
		left, _ := e.board.Ground(g.Type)
		report.Cleared = append(report.Cleared, types.ClearedGround{Type: g.Type, EggsLeft: left.Eggs})
	}

	if e.cfg.MosquitoPhase {
		report.Mosquito = MosquitoPhase(e.board, e.clearedThisRound, e.rnd)
	}

	if outcome := rules.Evaluate(e.board); outcome != types.OutcomeNone {
		e.phase = types.GameOver
		e.outcome = outcome
		e.resetIntents()
	} else {
		e.round++
		e.beginSelectActionsPhase()
	}

	report.Phase = e.phase
	report.Outcome = e.outcome
	e.lastRound = report
	e.hasLastRound = true

	e.log.Info().
		Str("game", e.gameID).
		Int("round", report.Round).
		Int("protected", len(report.Protected)).
		Int("cleared", len(report.Cleared)).
		Int("bites", report.Bites()).
		Int("breeds", report.Breeds()).
		Str("outcome", report.Outcome.String()).
		Msg("round resolved")
	if e.phase == types.GameOver {
		e.log.Info().Str("game", e.gameID).Str("outcome", e.outcome.String()).Msg("game over")
	}

	e.bus.Publish()
	return report, nil
}

func (e *RoundEngine) reject(op string, err error) error {
	e.log.Debug().Str("game", e.gameID).Str("op", op).Err(err).Msg("rejected")
	return err
}

// Subscribe registers a state-changed listener. Listeners run
// synchronously, in subscription order, once per successful mutation.
func (e *RoundEngine) Subscribe(listener func()) events.Handle {
	return e.bus.Subscribe(listener)
}

// Unsubscribe removes a listener registered with Subscribe.
func (e *RoundEngine) Unsubscribe(h events.Handle) bool {
	return e.bus.Unsubscribe(h)
}

// GetHuman returns a snapshot of the human, or false if not in play.
func (e *RoundEngine) GetHuman(c types.HumanColor) (types.Human, bool) {
	return e.board.Human(c)
}

// GetGround returns a snapshot of the ground, or false if not in play.
func (e *RoundEngine) GetGround(g types.GroundType) (types.BreedingGround, bool) {
	return e.board.Ground(g)
}

// Humans returns snapshots of every human in roster order.
func (e *RoundEngine) Humans() []types.Human {
	return e.board.Humans()
}

// Grounds returns snapshots of every breeding ground in roster order.
func (e *RoundEngine) Grounds() []types.BreedingGround {
	return e.board.Grounds()
}

// HasProtectIntent reports whether the human is selected for protection.
func (e *RoundEngine) HasProtectIntent(c types.HumanColor) bool {
	return c.Valid() && e.protectIntents[c]
}

// HasClearIntent reports whether the ground is selected for clearing.
func (e *RoundEngine) HasClearIntent(g types.GroundType) bool {
	return g.Valid() && e.clearIntents[g]
}

// Phase returns the current phase.
func (e *RoundEngine) Phase() types.Phase { return e.phase }

// ActionsAvailable returns this round's action budget.
func (e *RoundEngine) ActionsAvailable() int { return e.actionsAvailable }

// ActionsTaken returns the number of intents currently selected.
func (e *RoundEngine) ActionsTaken() int { return e.actionsTaken }

// CanConfirm reports whether Confirm would resolve the round.
func (e *RoundEngine) CanConfirm() bool {
	return rules.CheckConfirm(e.phase, e.actionsTaken, e.actionsAvailable) == nil
}

// Round returns the 1-based number of the current (or final) round.
func (e *RoundEngine) Round() int { return e.round }

// Outcome returns how the game ended, or OutcomeNone while it runs.
func (e *RoundEngine) Outcome() types.Outcome { return e.outcome }

// GameID returns the identifier assigned by the last StartNewGame.
func (e *RoundEngine) GameID() string { return e.gameID }

// Config returns the engine tunables.
func (e *RoundEngine) Config() Config { return e.cfg }

// LastRound returns the report of the most recent confirmed round, or
// false if no round has been confirmed in this game.
func (e *RoundEngine) LastRound() (types.RoundReport, bool) {
	r := e.lastRound
	r.Protected = slices.Clone(r.Protected)
	r.Cleared = slices.Clone(r.Cleared)
	r.Mosquito = slices.Clone(r.Mosquito)
	return r, e.hasLastRound
}
