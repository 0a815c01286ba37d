// Package session runs the per-command pipeline shared by the views:
// parse the player's text, resolve names, drive the RoundEngine, and narrate
// what happened. It also keeps the report of the game in progress.
package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/nathoo/eradicate/engine"
	"github.com/nathoo/eradicate/engine/parser"
	"github.com/nathoo/eradicate/engine/report"
	"github.com/nathoo/eradicate/engine/resolve"
	"github.com/nathoo/eradicate/engine/rules"
	"github.com/nathoo/eradicate/engine/state"
	"github.com/nathoo/eradicate/types"
)

// Result is the outcome of one player command.
type Result struct {
	Output []string
	Round  *types.RoundReport // set when the command resolved a round
}

// Session binds an engine to the definitions it plays.
type Session struct {
	Engine *engine.RoundEngine
	Defs   *state.Defs
	Seed   int64
	Report *report.Game
}

// New creates a session. Call Start before Step.
func New(eng *engine.RoundEngine, defs *state.Defs, seed int64) *Session {
	return &Session{Engine: eng, Defs: defs, Seed: seed}
}

// Start begins a new game from the definitions and returns the opening
// text: intro, then the board.
func (s *Session) Start() []string {
	s.Engine.StartFromDefs(s.Defs)
	s.Report = report.New(s.Defs, s.Engine.GameID(), s.Seed)

	var out []string
	if s.Defs.Game.Intro != "" {
		out = append(out, s.Defs.Game.Intro, "")
	}
	if s.Engine.Phase() == types.GameOver {
		return append(out, outcomeLine(s.Engine.Outcome()))
	}
	return append(out, s.StatusLines()...)
}

// Step executes one line of player input.
func (s *Session) Step(input string) Result {
	cmd := parser.Parse(input)
	if cmd.Verb == "" {
		return Result{}
	}

	var res Result
	switch cmd.Verb {
	case "protect":
		res = s.toggle(cmd, resolve.KindHuman)
	case "clear":
		res = s.toggle(cmd, resolve.KindGround)
	case "toggle":
		res = s.toggle(cmd, resolve.KindAny)
	case "confirm":
		res = s.confirm()
	case "status":
		res = Result{Output: s.StatusLines()}
	case "help":
		return Result{Output: HelpLines()}
	default:
		return Result{Output: []string{fmt.Sprintf("I don't know how to %q. Type help for commands.", cmd.Verb)}}
	}

	if s.Report != nil {
		s.Report.LogCommand(strings.TrimSpace(input))
	}
	return res
}

func (s *Session) toggle(cmd types.Command, kinds resolve.Kind) Result {
	if cmd.Object == "" {
		return say(fmt.Sprintf("%s what? Name a %s.", capitalize(cmd.Verb), kinds))
	}

	target, err := resolve.Resolve(s.Engine, cmd.Object, kinds)
	if err != nil {
		return say(err.Error())
	}

	if target.Kind == resolve.KindHuman {
		if err := s.Engine.ToggleHuman(target.Human); err != nil {
			return say(s.rejection(target, err))
		}
		if s.Engine.HasProtectIntent(target.Human) {
			return say(fmt.Sprintf("%s will be protected this round.", target), s.budgetLine())
		}
		return say(fmt.Sprintf("%s is no longer selected for protection.", target), s.budgetLine())
	}

	if err := s.Engine.ToggleBreedingGround(target.Ground); err != nil {
		return say(s.rejection(target, err))
	}
	if s.Engine.HasClearIntent(target.Ground) {
		return say(fmt.Sprintf("%s will be cleared this round.", target), s.budgetLine())
	}
	return say(fmt.Sprintf("%s is no longer selected for clearing.", target), s.budgetLine())
}

func (s *Session) confirm() Result {
	round, err := s.Engine.ConfirmRound()
	if err != nil {
		return say(s.rejection(resolve.Target{}, err))
	}
	if s.Report != nil {
		s.Report.AddRound(round)
	}

	out := NarrateRound(round)
	if round.Phase == types.GameOver {
		out = append(out, "", outcomeLine(round.Outcome))
	} else {
		out = append(out, "")
		out = append(out, s.StatusLines()...)
	}
	return Result{Output: out, Round: &round}
}

// rejection turns an engine rejection into player-facing text.
func (s *Session) rejection(target resolve.Target, err error) string {
	switch {
	case errors.Is(err, rules.ErrInvalidPhase):
		return "The game is over. Type /new to play again."
	case errors.Is(err, rules.ErrInactiveEntity):
		if target.Kind == resolve.KindHuman {
			return fmt.Sprintf("%s has no blood left.", target)
		}
		return fmt.Sprintf("%s is already eradicated.", target)
	case errors.Is(err, rules.ErrUnknownEntity):
		return fmt.Sprintf("%s is not in this game.", target)
	case errors.Is(err, rules.ErrBudgetExhausted):
		return fmt.Sprintf("No actions left this round (%d/%d). Deselect something first.",
			s.Engine.ActionsTaken(), s.Engine.ActionsAvailable())
	case errors.Is(err, rules.ErrBudgetIncomplete):
		return fmt.Sprintf("Assign every action before confirming (%d/%d).",
			s.Engine.ActionsTaken(), s.Engine.ActionsAvailable())
	default:
		return err.Error()
	}
}

func (s *Session) budgetLine() string {
	return fmt.Sprintf("Actions: %d/%d.", s.Engine.ActionsTaken(), s.Engine.ActionsAvailable())
}

// StatusLines describes the board and the current selection.
func (s *Session) StatusLines() []string {
	e := s.Engine
	out := []string{fmt.Sprintf("Round %d. Actions: %d/%d.", e.Round(), e.ActionsTaken(), e.ActionsAvailable())}

	out = append(out, "Humans:")
	for _, h := range e.Humans() {
		line := fmt.Sprintf("  %-8s blood %d", h.Color, h.Blood)
		switch {
		case !h.IsActive():
			line += "  (eliminated)"
		case e.HasProtectIntent(h.Color):
			line += "  [protect]"
		}
		out = append(out, line)
	}

	out = append(out, "Breeding grounds:")
	for _, g := range e.Grounds() {
		line := fmt.Sprintf("  %-12s eggs %d", g.Type, g.Eggs)
		switch {
		case !g.IsActive():
			line += "  (eradicated)"
		case e.HasClearIntent(g.Type):
			line += "  [clear]"
		}
		out = append(out, line)
	}
	return out
}

// NarrateRound describes a resolved round, one line per event.
func NarrateRound(r types.RoundReport) []string {
	out := []string{fmt.Sprintf("--- Round %d ---", r.Round)}
	for _, c := range r.Protected {
		out = append(out, fmt.Sprintf("You protect %s.", c))
	}
	for _, c := range r.Cleared {
		if c.EggsLeft == 0 {
			out = append(out, fmt.Sprintf("You clear the %s. It is eradicated!", c.Type))
		} else {
			out = append(out, fmt.Sprintf("You clear the %s (%d eggs left).", c.Type, c.EggsLeft))
		}
	}
	for _, a := range r.Mosquito {
		out = append(out, narrateMosquito(a))
	}
	return out
}

func narrateMosquito(a types.MosquitoAction) string {
	switch {
	case a.Kind == types.EffectBite && a.Result == types.ResultApplied:
		return fmt.Sprintf("A mosquito bites %s.", a.Target)
	case a.Kind == types.EffectBite && a.Result == types.ResultBlocked:
		return fmt.Sprintf("A mosquito goes for %s, but they are protected.", a.Target)
	case a.Kind == types.EffectBite:
		return "A mosquito finds no one to bite."
	case a.Kind == types.EffectBreed && a.Result == types.ResultApplied:
		return fmt.Sprintf("Mosquitoes lay eggs in the %s.", a.Target)
	default:
		return "Mosquitoes find nowhere to lay eggs."
	}
}

func outcomeLine(o types.Outcome) string {
	switch o {
	case types.Victory:
		return "Every breeding ground is eradicated. You win!"
	case types.Defeat:
		return "Every human has been bled dry. The mosquitoes win."
	default:
		return ""
	}
}

// HelpLines lists the game commands.
func HelpLines() []string {
	return []string{
		"Game commands:",
		"  protect <human> (p, guard)    Select a human to protect",
		"  clear <ground> (c, empty)     Select a breeding ground to clear",
		"  toggle <name> (t)             Select or deselect either kind",
		"  confirm (done, end, go)       Resolve the round",
		"  status (s, look)              Show the board",
	}
}

func say(lines ...string) Result {
	return Result{Output: lines}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
