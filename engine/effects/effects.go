// Package effects implements centralized board mutation via the Apply
// function. Every effect type is one atomic operation; choosing targets is
// the caller's job.
package effects

import (
	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

// Apply applies a single effect to the board and reports what happened.
// Blood and eggs never drop below zero, and an inactive target is never
// touched.
func Apply(b *state.Board, eff types.Effect) types.ActionResult {
	switch eff.Type {
	case types.EffectProtect:
		h := b.HumanRef(eff.Human)
		if h == nil || !h.IsActive() {
			return types.ResultWasted
		}
		h.ProtectedThisRound = true
		return types.ResultApplied

	case types.EffectClear:
		g := b.GroundRef(eff.Ground)
		if g == nil || !g.IsActive() {
			return types.ResultWasted
		}
		g.Eggs = max(0, g.Eggs-1)
		return types.ResultApplied

	case types.EffectBite:
		h := b.HumanRef(eff.Human)
		if h == nil || !h.IsActive() {
			return types.ResultWasted
		}
		if h.ProtectedThisRound {
			return types.ResultBlocked
		}
		h.Blood = max(0, h.Blood-1)
		return types.ResultApplied

	case types.EffectBreed:
		// Eradicated grounds stay eradicated.
		g := b.GroundRef(eff.Ground)
		if g == nil || !g.IsActive() {
			return types.ResultWasted
		}
		g.Eggs++
		return types.ResultApplied

	default:
		return types.ResultWasted
	}
}
