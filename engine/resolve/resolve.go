// Package resolve maps names typed by the player to humans and breeding
// grounds in play.
package resolve

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/nathoo/eradicate/types"
)

// Roster is the read side of the game the resolver searches. Both
// *engine.RoundEngine and *state.Board satisfy it.
type Roster interface {
	Humans() []types.Human
	Grounds() []types.BreedingGround
}

// Kind says which entity kinds a lookup may return.
type Kind int

const (
	KindHuman Kind = 1 << iota
	KindGround
	KindAny = KindHuman | KindGround
)

func (k Kind) String() string {
	switch k {
	case KindHuman:
		return "human"
	case KindGround:
		return "breeding ground"
	default:
		return "human or breeding ground"
	}
}

// Target is a resolved entity: exactly one of Human or Ground is meaningful,
// selected by Kind.
type Target struct {
	Kind   Kind
	Human  types.HumanColor
	Ground types.GroundType
}

func (t Target) String() string {
	if t.Kind == KindHuman {
		return t.Human.String()
	}
	return t.Ground.String()
}

// AmbiguityError indicates multiple entities matched a name.
type AmbiguityError struct {
	Name       string
	Candidates []string
}

func (e *AmbiguityError) Error() string {
	names := strings.Join(e.Candidates, ", ")
	return fmt.Sprintf("which %s? (%s)", e.Name, names)
}

// NotFoundError indicates no entity in play matched a name.
type NotFoundError struct {
	Name string
	Kind Kind
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no %s called %q in play", e.Kind, e.Name)
}

// Human resolves a name to a human in play.
func Human(r Roster, name string) (types.HumanColor, error) {
	t, err := Resolve(r, name, KindHuman)
	return t.Human, err
}

// Ground resolves a name to a breeding ground in play.
func Ground(r Roster, name string) (types.GroundType, error) {
	t, err := Resolve(r, name, KindGround)
	return t.Ground, err
}

// Resolve maps a name to a single entity of the allowed kinds. Matching is
// case-insensitive and ignores spaces, underscores and hyphens; failing an
// exact match, a query matching one word of a name ("pool" for KiddiePool)
// or a prefix of it ("kid") is accepted when it is unique.
func Resolve(r Roster, name string, kinds Kind) (Target, error) {
	query := normalize(name)
	if query == "" {
		return Target{}, &NotFoundError{Name: name, Kind: kinds}
	}

	candidates := candidatesFor(r, kinds)

	// 1. Exact name match.
	for _, c := range candidates {
		if normalize(c.String()) == query {
			return c, nil
		}
	}

	// 2. Word or prefix match.
	var matches []Target
	for _, c := range candidates {
		if matchesPartial(c.String(), query) {
			matches = append(matches, c)
		}
	}

	switch len(matches) {
	case 0:
		return Target{}, &NotFoundError{Name: name, Kind: kinds}
	case 1:
		return matches[0], nil
	default:
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.String()
		}
		return Target{}, &AmbiguityError{Name: name, Candidates: names}
	}
}

func candidatesFor(r Roster, kinds Kind) []Target {
	var out []Target
	if kinds&KindHuman != 0 {
		for _, h := range r.Humans() {
			out = append(out, Target{Kind: KindHuman, Human: h.Color})
		}
	}
	if kinds&KindGround != 0 {
		for _, g := range r.Grounds() {
			out = append(out, Target{Kind: KindGround, Ground: g.Type})
		}
	}
	return out
}

// matchesPartial checks whether the query equals one word of the
// CamelCase name or is a prefix of the whole name.
func matchesPartial(name, query string) bool {
	if strings.HasPrefix(normalize(name), query) {
		return true
	}
	for _, word := range splitWords(name) {
		if word == query {
			return true
		}
	}
	return false
}

// splitWords breaks "KiddiePool" into ["kiddie", "pool"].
func splitWords(name string) []string {
	var words []string
	var cur strings.Builder
	for _, r := range name {
		if unicode.IsUpper(r) && cur.Len() > 0 {
			words = append(words, cur.String())
			cur.Reset()
		}
		cur.WriteRune(unicode.ToLower(r))
	}
	if cur.Len() > 0 {
		words = append(words, cur.String())
	}
	return words
}

func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Map(func(r rune) rune {
		if r == ' ' || r == '_' || r == '-' {
			return -1
		}
		return r
	}, s)
}
