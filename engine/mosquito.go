package engine

import (
	"github.com/nathoo/eradicate/engine/effects"
	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

// breedChance is the probability that an action breeds when the bitten
// pool allows it.
const breedChance = 0.5

// MosquitoPhase runs one mosquito action per active ground and returns what
// each action did, in order. Grounds in cleared cannot receive eggs. The
// bitten pool starts empty every phase: a bite that draws blood adds one, a
// breed spends one, and breeding is impossible while the pool is empty.
func MosquitoPhase(b *state.Board, cleared map[types.GroundType]bool, rnd Random) []types.MosquitoAction {
	activeGrounds := b.CountActiveGrounds()
	if activeGrounds == 0 {
		return nil
	}

	actions := make([]types.MosquitoAction, 0, activeGrounds)
	bittenPool := 0

	for i := 0; i < activeGrounds; i++ {
		canBreed := bittenPool > 0
		doBreed := rnd.Float64() < breedChance && canBreed

		if doBreed {
			action := types.MosquitoAction{Kind: types.EffectBreed, Result: types.ResultWasted}
			if target, ok := pickBreedTarget(b, cleared, rnd); ok {
				action.Target = target.String()
				action.Result = effects.Apply(b, types.Effect{Type: types.EffectBreed, Ground: target})
				if action.Result == types.ResultApplied {
					bittenPool--
				}
			}
			actions = append(actions, action)
			continue
		}

		action := types.MosquitoAction{Kind: types.EffectBite, Result: types.ResultWasted}
		if target, ok := pickBiteTarget(b, rnd); ok {
			action.Target = target.String()
			action.Result = effects.Apply(b, types.Effect{Type: types.EffectBite, Human: target})
			if action.Result == types.ResultApplied {
				bittenPool++
			}
		}
		actions = append(actions, action)
	}

	return actions
}

// pickBreedTarget selects uniformly among active grounds not cleared this
// round.
func pickBreedTarget(b *state.Board, cleared map[types.GroundType]bool, rnd Random) (types.GroundType, bool) {
	candidates := b.ActiveGrounds(cleared)
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rnd.Intn(len(candidates))], true
}

// pickBiteTarget selects uniformly among active humans. Protected humans
// stay eligible; protection only blocks the damage.
func pickBiteTarget(b *state.Board, rnd Random) (types.HumanColor, bool) {
	candidates := b.ActiveHumans()
	if len(candidates) == 0 {
		return 0, false
	}
	return candidates[rnd.Intn(len(candidates))], true
}
