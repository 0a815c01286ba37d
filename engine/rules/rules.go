// Package rules holds the legality checks for player actions and the end
// conditions of a game. Checks never mutate; they only report why an
// operation must be rejected.
package rules

import (
	"errors"
	"fmt"

	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

// Rejection reasons. Callers match with errors.Is.
var (
	ErrInvalidPhase     = errors.New("not allowed in the current phase")
	ErrUnknownEntity    = errors.New("not in play")
	ErrInactiveEntity   = errors.New("already out of the game")
	ErrBudgetExhausted  = errors.New("no actions left this round")
	ErrBudgetIncomplete = errors.New("actions still unassigned")
)

// CheckPhase rejects anything outside the selection phase.
func CheckPhase(p types.Phase) error {
	if p != types.SelectActions {
		return fmt.Errorf("phase %s: %w", p, ErrInvalidPhase)
	}
	return nil
}

// CheckHuman rejects a human that is not in play or has no blood left.
func CheckHuman(b *state.Board, c types.HumanColor) error {
	h, ok := b.Human(c)
	if !ok {
		return fmt.Errorf("human %s: %w", c, ErrUnknownEntity)
	}
	if !h.IsActive() {
		return fmt.Errorf("human %s: %w", c, ErrInactiveEntity)
	}
	return nil
}

// CheckGround rejects a ground that is not in play or already eradicated.
func CheckGround(b *state.Board, g types.GroundType) error {
	bg, ok := b.Ground(g)
	if !ok {
		return fmt.Errorf("ground %s: %w", g, ErrUnknownEntity)
	}
	if !bg.IsActive() {
		return fmt.Errorf("ground %s: %w", g, ErrInactiveEntity)
	}
	return nil
}

// CheckBudget rejects a new intent once every action is assigned.
// Removing an intent is never subject to this check.
func CheckBudget(taken, available int) error {
	if taken >= available {
		return fmt.Errorf("%d/%d actions taken: %w", taken, available, ErrBudgetExhausted)
	}
	return nil
}

// CheckConfirm allows confirmation only in the selection phase with every
// action assigned.
func CheckConfirm(p types.Phase, taken, available int) error {
	if err := CheckPhase(p); err != nil {
		return err
	}
	if taken != available {
		return fmt.Errorf("%d/%d actions taken: %w", taken, available, ErrBudgetIncomplete)
	}
	return nil
}
