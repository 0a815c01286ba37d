// Package types defines the shared data structures for the Eradicate engine.
// Apart from enum names and trivial derived predicates, it holds no logic.
package types

import "strings"

// HumanColor identifies a human card. The set is fixed and dense so it can
// index arrays directly.
type HumanColor int

const (
	Orange HumanColor = iota
	Blue
	Purple
	Green
)

// NumHumanColors is the size of the HumanColor domain.
const NumHumanColors = 4

var humanColorNames = [NumHumanColors]string{"Orange", "Blue", "Purple", "Green"}

func (c HumanColor) String() string {
	if !c.Valid() {
		return "HumanColor(?)"
	}
	return humanColorNames[c]
}

// Valid reports whether c is one of the known colors.
func (c HumanColor) Valid() bool {
	return c >= 0 && int(c) < NumHumanColors
}

// MarshalText encodes the color by name.
func (c HumanColor) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// AllHumanColors returns every color in declaration order.
func AllHumanColors() []HumanColor {
	out := make([]HumanColor, NumHumanColors)
	for i := range out {
		out[i] = HumanColor(i)
	}
	return out
}

// ParseHumanColor matches a color name case-insensitively.
func ParseHumanColor(s string) (HumanColor, bool) {
	key := normalizeName(s)
	for i, name := range humanColorNames {
		if normalizeName(name) == key {
			return HumanColor(i), true
		}
	}
	return 0, false
}

// GroundType identifies a breeding ground card.
type GroundType int

const (
	Tarp GroundType = iota
	Wheelbarrow
	TrashCan
	KiddiePool
	Tire
)

// NumGroundTypes is the size of the GroundType domain.
const NumGroundTypes = 5

var groundTypeNames = [NumGroundTypes]string{"Tarp", "Wheelbarrow", "TrashCan", "KiddiePool", "Tire"}

func (g GroundType) String() string {
	if !g.Valid() {
		return "GroundType(?)"
	}
	return groundTypeNames[g]
}

// Valid reports whether g is one of the known ground types.
func (g GroundType) Valid() bool {
	return g >= 0 && int(g) < NumGroundTypes
}

// MarshalText encodes the ground type by name.
func (g GroundType) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// AllGroundTypes returns every ground type in declaration order.
func AllGroundTypes() []GroundType {
	out := make([]GroundType, NumGroundTypes)
	for i := range out {
		out[i] = GroundType(i)
	}
	return out
}

// ParseGroundType matches a ground name, ignoring case, spaces and
// underscores ("kiddie pool", "trash_can").
func ParseGroundType(s string) (GroundType, bool) {
	key := normalizeName(s)
	for i, name := range groundTypeNames {
		if normalizeName(name) == key {
			return GroundType(i), true
		}
	}
	return 0, false
}

func normalizeName(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, "_", "")
	return strings.ReplaceAll(s, "-", "")
}

// Phase is the round state machine position.
type Phase int

const (
	SelectActions Phase = iota
	ResolvingActions
	GameOver
)

func (p Phase) String() string {
	switch p {
	case SelectActions:
		return "SelectActions"
	case ResolvingActions:
		return "ResolvingActions"
	case GameOver:
		return "GameOver"
	default:
		return "Phase(?)"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// Outcome is how a game ended, if it has.
type Outcome int

const (
	OutcomeNone Outcome = iota
	Victory             // every breeding ground eradicated
	Defeat              // every human eliminated
)

func (o Outcome) String() string {
	switch o {
	case Victory:
		return "victory"
	case Defeat:
		return "defeat"
	default:
		return "none"
	}
}

// MarshalText encodes the outcome by name.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Human is a value snapshot of a human card.
type Human struct {
	Color              HumanColor `json:"color"`
	Blood              int        `json:"blood"`
	ProtectedThisRound bool       `json:"protected_this_round"`
}

// IsActive reports whether the human still has blood.
func (h Human) IsActive() bool { return h.Blood > 0 }

// BreedingGround is a value snapshot of a breeding ground card.
type BreedingGround struct {
	Type GroundType `json:"type"`
	Eggs int        `json:"eggs"`
}

// IsActive reports whether the ground still has eggs. Zero means eradicated.
func (g BreedingGround) IsActive() bool { return g.Eggs > 0 }

// GroundDef is one roster entry for a breeding ground.
type GroundDef struct {
	Type         GroundType `json:"type"`
	StartingEggs int        `json:"starting_eggs"`
}

// GameDef holds game metadata from Lua.
type GameDef struct {
	Title         string
	Author        string
	Version       string
	Intro         string
	StartingBlood int
}

// MosquitoDef holds the mosquito phase tunables from Lua.
type MosquitoDef struct {
	Enabled               bool
	BitesPerActiveGround  int
	BreedsPerActiveGround int
}

// Command is the parsed representation of a player's text input.
type Command struct {
	Verb   string
	Object string // optional
}

// EffectType names a single atomic board mutation.
type EffectType string

const (
	EffectProtect EffectType = "protect"
	EffectClear   EffectType = "clear"
	EffectBite    EffectType = "bite"
	EffectBreed   EffectType = "breed"
)

// Effect is a single atomic board mutation instruction. Human is used by
// protect and bite, Ground by clear and breed.
type Effect struct {
	Type   EffectType
	Human  HumanColor
	Ground GroundType
}

// ActionResult describes what applying an effect actually did.
type ActionResult string

const (
	ResultApplied ActionResult = "applied"
	ResultBlocked ActionResult = "blocked" // bite on a protected human
	ResultWasted  ActionResult = "wasted"  // no eligible target
)

// MosquitoAction records one action of the mosquito phase.
type MosquitoAction struct {
	Kind   EffectType   `json:"kind"`
	Target string       `json:"target,omitempty"`
	Result ActionResult `json:"result"`
}

// ClearedGround records a ground cleared by the player during a round.
type ClearedGround struct {
	Type     GroundType `json:"type"`
	EggsLeft int        `json:"eggs_left"`
}

// RoundReport is the record of one confirmed round.
type RoundReport struct {
	Round     int              `json:"round"`
	Protected []HumanColor     `json:"protected"`
	Cleared   []ClearedGround  `json:"cleared"`
	Mosquito  []MosquitoAction `json:"mosquito"`
	Phase     Phase            `json:"phase"`
	Outcome   Outcome          `json:"outcome"`
}

// Bites counts mosquito bites that drew blood.
func (r RoundReport) Bites() int {
	return r.count(EffectBite, ResultApplied)
}

// Breeds counts eggs laid by the mosquito phase.
func (r RoundReport) Breeds() int {
	return r.count(EffectBreed, ResultApplied)
}

func (r RoundReport) count(kind EffectType, result ActionResult) int {
	n := 0
	for _, a := range r.Mosquito {
		if a.Kind == kind && a.Result == result {
			n++
		}
	}
	return n
}
