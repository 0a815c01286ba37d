package effects

import (
	"testing"

	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

func testBoard() *state.Board {
	return state.NewBoard(
		[]types.HumanColor{types.Orange, types.Blue},
		[]types.GroundDef{
			{Type: types.Tarp, StartingEggs: 1},
			{Type: types.KiddiePool, StartingEggs: 0},
		},
		1,
	)
}

func TestApply_Protect(t *testing.T) {
	b := testBoard()
	got := Apply(b, types.Effect{Type: types.EffectProtect, Human: types.Orange})
	if got != types.ResultApplied {
		t.Fatalf("result = %s, want applied", got)
	}
	h, _ := b.Human(types.Orange)
	if !h.ProtectedThisRound {
		t.Error("expected Orange protected")
	}
}

func TestApply_ProtectNotInPlay(t *testing.T) {
	b := testBoard()
	if got := Apply(b, types.Effect{Type: types.EffectProtect, Human: types.Green}); got != types.ResultWasted {
		t.Errorf("result = %s, want wasted", got)
	}
}

func TestApply_Clear(t *testing.T) {
	b := testBoard()
	if got := Apply(b, types.Effect{Type: types.EffectClear, Ground: types.Tarp}); got != types.ResultApplied {
		t.Fatalf("result = %s, want applied", got)
	}
	g, _ := b.Ground(types.Tarp)
	if g.Eggs != 0 {
		t.Errorf("eggs = %d, want 0", g.Eggs)
	}

	// Already eradicated: no change, never negative.
	if got := Apply(b, types.Effect{Type: types.EffectClear, Ground: types.Tarp}); got != types.ResultWasted {
		t.Errorf("second clear = %s, want wasted", got)
	}
	g, _ = b.Ground(types.Tarp)
	if g.Eggs != 0 {
		t.Errorf("eggs = %d after second clear, want 0", g.Eggs)
	}
}

func TestApply_Bite(t *testing.T) {
	b := testBoard()
	if got := Apply(b, types.Effect{Type: types.EffectBite, Human: types.Blue}); got != types.ResultApplied {
		t.Fatalf("result = %s, want applied", got)
	}
	h, _ := b.Human(types.Blue)
	if h.Blood != 0 || h.IsActive() {
		t.Errorf("Blue = %+v, want eliminated", h)
	}

	if got := Apply(b, types.Effect{Type: types.EffectBite, Human: types.Blue}); got != types.ResultWasted {
		t.Errorf("bite on eliminated = %s, want wasted", got)
	}
}

func TestApply_BiteBlockedByProtection(t *testing.T) {
	b := testBoard()
	Apply(b, types.Effect{Type: types.EffectProtect, Human: types.Orange})

	if got := Apply(b, types.Effect{Type: types.EffectBite, Human: types.Orange}); got != types.ResultBlocked {
		t.Fatalf("result = %s, want blocked", got)
	}
	h, _ := b.Human(types.Orange)
	if h.Blood != 1 {
		t.Errorf("blood = %d, want 1", h.Blood)
	}
}

func TestApply_Breed(t *testing.T) {
	b := testBoard()
	if got := Apply(b, types.Effect{Type: types.EffectBreed, Ground: types.Tarp}); got != types.ResultApplied {
		t.Fatalf("result = %s, want applied", got)
	}
	g, _ := b.Ground(types.Tarp)
	if g.Eggs != 2 {
		t.Errorf("eggs = %d, want 2", g.Eggs)
	}
}

func TestApply_BreedOnEradicatedGround(t *testing.T) {
	b := testBoard()
	if got := Apply(b, types.Effect{Type: types.EffectBreed, Ground: types.KiddiePool}); got != types.ResultWasted {
		t.Errorf("result = %s, want wasted", got)
	}
	g, _ := b.Ground(types.KiddiePool)
	if g.Eggs != 0 {
		t.Errorf("eggs = %d, want 0", g.Eggs)
	}
}

func TestApply_UnknownType(t *testing.T) {
	b := testBoard()
	if got := Apply(b, types.Effect{Type: "teleport"}); got != types.ResultWasted {
		t.Errorf("result = %s, want wasted", got)
	}
}
