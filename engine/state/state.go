// Package state holds the game definitions and the mutable board: humans
// and breeding grounds stored in fixed arrays indexed by their enumerant.
package state

import "github.com/nathoo/eradicate/types"

// Defs holds the immutable game definitions loaded from Lua.
type Defs struct {
	Game     types.GameDef
	Mosquito types.MosquitoDef
	Humans   []types.HumanColor
	Grounds  []types.GroundDef
}

// Board is the authoritative entity storage. A slot whose in-play flag is
// false is "not in play" and must never be reported as an entity.
type Board struct {
	humans      [types.NumHumanColors]types.Human
	humanInPlay [types.NumHumanColors]bool
	humanOrder  []types.HumanColor

	grounds      [types.NumGroundTypes]types.BreedingGround
	groundInPlay [types.NumGroundTypes]bool
	groundOrder  []types.GroundType
}

// NewBoard builds a board from rosters. Duplicate or unknown roster entries
// are skipped; negative starting values clamp to zero.
func NewBoard(humans []types.HumanColor, grounds []types.GroundDef, startingBlood int) *Board {
	b := &Board{}
	blood := max(0, startingBlood)
	for _, c := range humans {
		if !c.Valid() || b.humanInPlay[c] {
			continue
		}
		b.humans[c] = types.Human{Color: c, Blood: blood}
		b.humanInPlay[c] = true
		b.humanOrder = append(b.humanOrder, c)
	}
	for _, def := range grounds {
		g := def.Type
		if !g.Valid() || b.groundInPlay[g] {
			continue
		}
		b.grounds[g] = types.BreedingGround{Type: g, Eggs: max(0, def.StartingEggs)}
		b.groundInPlay[g] = true
		b.groundOrder = append(b.groundOrder, g)
	}
	return b
}

// Human returns a copy of the human, or false if that color is not in play.
func (b *Board) Human(c types.HumanColor) (types.Human, bool) {
	if !c.Valid() || !b.humanInPlay[c] {
		return types.Human{}, false
	}
	return b.humans[c], true
}

// Ground returns a copy of the ground, or false if that type is not in play.
func (b *Board) Ground(g types.GroundType) (types.BreedingGround, bool) {
	if !g.Valid() || !b.groundInPlay[g] {
		return types.BreedingGround{}, false
	}
	return b.grounds[g], true
}

// HumanRef returns a pointer into the board for mutation by the effects
// package. Callers outside the engine must use Human instead.
func (b *Board) HumanRef(c types.HumanColor) *types.Human {
	if !c.Valid() || !b.humanInPlay[c] {
		return nil
	}
	return &b.humans[c]
}

// GroundRef returns a pointer into the board for mutation by the effects
// package.
func (b *Board) GroundRef(g types.GroundType) *types.BreedingGround {
	if !g.Valid() || !b.groundInPlay[g] {
		return nil
	}
	return &b.grounds[g]
}

// Humans returns copies of every human in roster order.
func (b *Board) Humans() []types.Human {
	out := make([]types.Human, 0, len(b.humanOrder))
	for _, c := range b.humanOrder {
		out = append(out, b.humans[c])
	}
	return out
}

// Grounds returns copies of every ground in roster order.
func (b *Board) Grounds() []types.BreedingGround {
	out := make([]types.BreedingGround, 0, len(b.groundOrder))
	for _, g := range b.groundOrder {
		out = append(out, b.grounds[g])
	}
	return out
}

// ActiveHumans returns the colors of humans with blood left, in roster order.
func (b *Board) ActiveHumans() []types.HumanColor {
	var out []types.HumanColor
	for _, c := range b.humanOrder {
		if b.humans[c].IsActive() {
			out = append(out, c)
		}
	}
	return out
}

// ActiveGrounds returns the grounds with eggs left, in roster order,
// skipping any ground in exclude.
func (b *Board) ActiveGrounds(exclude map[types.GroundType]bool) []types.GroundType {
	var out []types.GroundType
	for _, g := range b.groundOrder {
		if !b.grounds[g].IsActive() || exclude[g] {
			continue
		}
		out = append(out, g)
	}
	return out
}

// CountActiveHumans returns the number of humans with blood left.
func (b *Board) CountActiveHumans() int {
	n := 0
	for _, c := range b.humanOrder {
		if b.humans[c].IsActive() {
			n++
		}
	}
	return n
}

// CountActiveGrounds returns the number of grounds with eggs left.
func (b *Board) CountActiveGrounds() int {
	n := 0
	for _, g := range b.groundOrder {
		if b.grounds[g].IsActive() {
			n++
		}
	}
	return n
}

// AllGroundsEradicated is true when no ground has eggs. Vacuously true for
// an empty roster.
func (b *Board) AllGroundsEradicated() bool {
	return b.CountActiveGrounds() == 0
}

// AnyHumanActive is true when at least one human has blood.
func (b *Board) AnyHumanActive() bool {
	return b.CountActiveHumans() > 0
}

// ResetProtection clears every human's per-round protection.
func (b *Board) ResetProtection() {
	for _, c := range b.humanOrder {
		b.humans[c].ProtectedThisRound = false
	}
}
