package rules

import (
	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

// Evaluate returns the game outcome for the board. Eradication is checked
// first, so clearing the last ground wins even if the last human fell in
// the same round.
func Evaluate(b *state.Board) types.Outcome {
	if b.AllGroundsEradicated() {
		return types.Victory
	}
	if !b.AnyHumanActive() {
		return types.Defeat
	}
	return types.OutcomeNone
}

// IsOver reports whether the board satisfies any end condition.
func IsOver(b *state.Board) bool {
	return Evaluate(b) != types.OutcomeNone
}
