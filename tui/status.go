package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/eradicate/engine"
	"github.com/nathoo/eradicate/engine/resolve"
	"github.com/nathoo/eradicate/types"
)

// card is one human or breeding ground as shown on the board.
type card struct {
	name     string
	kind     resolve.Kind
	human    types.HumanColor
	value    int // blood or eggs
	active   bool
	selected bool
}

// board caches the card row rendering. It is shared by pointer across
// Model copies so the engine listener can rebuild it in place.
type board struct {
	eng      *engine.RoundEngine
	cards    []card
	cursor   int
	width    int
	rendered string
	rebuilds int
}

func newBoard(eng *engine.RoundEngine) *board {
	return &board{eng: eng}
}

// rebuild re-reads the engine and re-renders the cards. Registered as the
// engine's state-changed listener.
func (b *board) rebuild() {
	b.cards = b.cards[:0]
	for _, h := range b.eng.Humans() {
		b.cards = append(b.cards, card{
			name:     h.Color.String(),
			kind:     resolve.KindHuman,
			human:    h.Color,
			value:    h.Blood,
			active:   h.IsActive(),
			selected: b.eng.HasProtectIntent(h.Color),
		})
	}
	for _, g := range b.eng.Grounds() {
		b.cards = append(b.cards, card{
			name:     g.Type.String(),
			kind:     resolve.KindGround,
			value:    g.Eggs,
			active:   g.IsActive(),
			selected: b.eng.HasClearIntent(g.Type),
		})
	}
	if b.cursor >= len(b.cards) {
		b.cursor = 0
	}
	b.rebuilds++
	b.render()
}

func (b *board) render() {
	var humans, grounds []string
	for i, c := range b.cards {
		cell := renderCard(c, i == b.cursor)
		if c.kind == resolve.KindHuman {
			humans = append(humans, cell)
		} else {
			grounds = append(grounds, cell)
		}
	}

	var rows []string
	if len(humans) > 0 {
		rows = append(rows, b.row("Humans", humans))
	}
	if len(grounds) > 0 {
		rows = append(rows, b.row("Grounds", grounds))
	}
	b.rendered = lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// row lays cards out horizontally, wrapping onto extra lines when the
// terminal is too narrow.
func (b *board) row(label string, cells []string) string {
	perLine := len(cells)
	if b.width > 0 {
		cw := lipgloss.Width(cells[0])
		if fit := (b.width - 8) / cw; fit >= 1 && fit < perLine {
			perLine = fit
		}
	}

	var lines []string
	for start := 0; start < len(cells); start += perLine {
		end := min(start+perLine, len(cells))
		l := ""
		if start == 0 {
			l = label
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Center,
			styleRowLabel.Render(l),
			lipgloss.JoinHorizontal(lipgloss.Top, cells[start:end]...)))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func renderCard(c card, focused bool) string {
	style := styleCard
	switch {
	case focused:
		style = styleCardCursor
	case c.selected:
		style = styleCardSelected
	}

	title := c.name
	if c.kind == resolve.KindHuman {
		title = lipgloss.NewStyle().Foreground(humanPalette[c.human]).Bold(true).Render(c.name)
	}

	var body string
	switch {
	case !c.active && c.kind == resolve.KindHuman:
		body = styleCardInactive.Render("drained")
	case !c.active:
		body = styleCardInactive.Render("eradicated")
	case c.kind == resolve.KindHuman:
		body = fmt.Sprintf("blood %d", c.value)
	default:
		body = fmt.Sprintf("eggs %d", c.value)
	}

	mark := " "
	if c.selected {
		mark = "*"
	}
	return style.Render(title + "\n" + mark + body)
}

// focused returns the card under the cursor.
func (b *board) focused() (card, bool) {
	if len(b.cards) == 0 {
		return card{}, false
	}
	return b.cards[b.cursor], true
}

// move shifts the cursor by delta, wrapping around.
func (b *board) move(delta int) {
	n := len(b.cards)
	if n == 0 {
		return
	}
	b.cursor = ((b.cursor+delta)%n + n) % n
	b.render()
}

// renderStatusBar produces a full-width inverted status line showing
// the title, round, phase and action budget.
func (m Model) renderStatusBar() string {
	e := m.session.Engine

	left := fmt.Sprintf(" %s | Round %d", m.session.Defs.Game.Title, e.Round())

	var right string
	switch {
	case e.Outcome() == types.Victory:
		right = "Victory "
	case e.Outcome() == types.Defeat:
		right = "Defeat "
	case e.Phase() == types.GameOver:
		right = "Game over "
	case e.CanConfirm():
		right = fmt.Sprintf("Actions %d/%d | ready ", e.ActionsTaken(), e.ActionsAvailable())
	default:
		right = fmt.Sprintf("Actions %d/%d ", e.ActionsTaken(), e.ActionsAvailable())
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 0 {
		gap = 0
	}

	bar := left + strings.Repeat(" ", gap) + right
	return styleStatusBar.Width(m.width).Render(bar)
}
