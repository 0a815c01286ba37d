// Package tui provides a Bubble Tea terminal UI for Eradicate!: a card
// board above a scrolling narrative, with a command line underneath.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/eradicate/engine/events"
	"github.com/nathoo/eradicate/engine/report"
	"github.com/nathoo/eradicate/engine/session"
	"github.com/nathoo/eradicate/types"
)

// rawLine stores an unstyled output line with its classification,
// so we can re-wrap and re-style when the terminal is resized.
type rawLine struct {
	text     string
	kind     lineKind
	isInput  bool // true for echoed player input
	isSystem bool // true for system messages
}

// Model is the Bubble Tea model for the Eradicate! TUI.
type Model struct {
	session *session.Session
	board   *board
	handle  events.Handle

	viewport viewport.Model
	input    textinput.Model
	history  *History
	help     help.Model
	keys     keyMap

	rawLines []rawLine // accumulated narrative lines (unstyled, for re-wrapping)

	width     int
	height    int
	ready     bool
	trace     bool
	quitting  bool
	lastCmd   string
	reportDir string
}

// gameOutputMsg carries output from the session into the Update loop.
type gameOutputMsg struct {
	input    string   // echoed player input (empty for intro)
	lines    []string // output lines
	isSystem bool     // true for meta-command output
}

// New creates a TUI model wired to the given session and starts a game.
// The board listens for engine notifications until the model quits.
func New(s *session.Session, reportDir string) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Focus()
	ti.CharLimit = 256
	ti.PromptStyle = styleInputPrompt

	b := newBoard(s.Engine)
	m := Model{
		session:   s,
		board:     b,
		handle:    s.Engine.Subscribe(b.rebuild),
		input:     ti,
		history:   NewHistory(100),
		help:      help.New(),
		keys:      defaultKeyMap(),
		reportDir: reportDir,
	}
	return m.appendOutput(gameOutputMsg{lines: m.openingLines()})
}

// Run starts the Bubble Tea program.
func Run(s *session.Session, reportDir string) error {
	m := New(s, reportDir)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}

func (m Model) openingLines() []string {
	g := m.session.Defs.Game
	header := g.Title
	if g.Version != "" {
		header += " v" + g.Version
	}
	if g.Author != "" {
		header += " by " + g.Author
	}
	return append([]string{header, ""}, m.session.Start()...)
}

// Init starts the cursor blinking.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update handles messages (key presses, window resize, game output).
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.board.width = msg.Width
		m.board.render()

		if !m.ready {
			m.viewport = viewport.New(m.width, 1)
			m.viewport.KeyMap = viewportKeyMap()
			m.ready = true
		}
		m.refreshViewport()

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m.quit()

		case key.Matches(msg, m.keys.Submit):
			return m.handleEnter()

		case key.Matches(msg, m.keys.NextCard):
			m.board.move(1)
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, m.keys.PrevCard):
			m.board.move(-1)
			m.refreshViewport()
			return m, nil

		case key.Matches(msg, m.keys.Toggle):
			c, ok := m.board.focused()
			if !ok {
				return m, nil
			}
			return m.runGame("toggle " + c.name), nil

		case key.Matches(msg, m.keys.Confirm):
			return m.runGame("confirm"), nil

		case key.Matches(msg, m.keys.NewGame):
			return m.runMeta("/new")

		case msg.String() == "up":
			if prev, ok := m.history.Prev(); ok {
				m.input.SetValue(prev)
				m.input.CursorEnd()
			}
			return m, nil

		case msg.String() == "down":
			if next, ok := m.history.Next(); ok {
				m.input.SetValue(next)
				m.input.CursorEnd()
			} else {
				m.input.SetValue("")
				m.history.ResetCursor()
			}
			return m, nil

		case key.Matches(msg, m.keys.Scroll):
			var vpCmd tea.Cmd
			m.viewport, vpCmd = m.viewport.Update(msg)
			return m, vpCmd
		}

	case gameOutputMsg:
		m = m.appendOutput(msg)
	}

	var inputCmd tea.Cmd
	m.input, inputCmd = m.input.Update(msg)
	return m, inputCmd
}

// handleEnter processes the submitted input line.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.input.Value())
	m.input.SetValue("")

	if input == "" {
		return m, nil
	}

	m.history.Push(input)
	m.history.ResetCursor()

	// Handle "again" / "g".
	lower := strings.ToLower(input)
	if lower == "again" || lower == "g" {
		if m.lastCmd == "" {
			m = m.appendOutput(gameOutputMsg{
				input: input, lines: []string{"Nothing to repeat."}, isSystem: true,
			})
			return m, nil
		}
		input = m.lastCmd
	} else if !strings.HasPrefix(input, "/") {
		m.lastCmd = input
	}

	if strings.HasPrefix(input, "/") {
		return m.runMeta(input)
	}
	return m.runGame(input), nil
}

// runGame sends one command through the session and shows the result.
func (m Model) runGame(input string) Model {
	result := m.session.Step(input)
	output := result.Output
	if result.Round != nil {
		if m.trace {
			output = append(output, formatTrace(*result.Round)...)
		}
		if result.Round.Phase == types.GameOver {
			output = append(output, "[Game over. Press ctrl+n for a new game or /report to export.]")
		}
	}
	return m.appendOutput(gameOutputMsg{input: input, lines: output})
}

func (m Model) runMeta(input string) (tea.Model, tea.Cmd) {
	output, quit := m.handleMeta(input)
	m = m.appendOutput(gameOutputMsg{input: input, lines: output, isSystem: true})
	if quit {
		return m.quit()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	m.session.Engine.Unsubscribe(m.handle)
	m.quitting = true
	return m, tea.Quit
}

// appendOutput adds lines to the narrative and refreshes the viewport.
func (m Model) appendOutput(msg gameOutputMsg) Model {
	if msg.input != "" {
		m.rawLines = append(m.rawLines, rawLine{
			text: "> " + msg.input, isInput: true,
		})
	}

	for _, line := range msg.lines {
		rl := rawLine{text: line, isSystem: msg.isSystem}
		if !msg.isSystem {
			rl.kind = classifyLine(line)
		}
		m.rawLines = append(m.rawLines, rl)
	}

	// Blank line separator between turns.
	m.rawLines = append(m.rawLines, rawLine{})

	m.refreshViewport()

	return m
}

// refreshViewport re-wraps and re-styles all raw lines at the current
// width and sizes the viewport to whatever the board leaves free.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}

	width := max(m.width, 10)

	// board + status bar + input + help line
	chrome := lipgloss.Height(m.board.rendered) + 3
	m.viewport.Width = m.width
	m.viewport.Height = max(m.height-chrome, 1)

	var styled []string
	for _, rl := range m.rawLines {
		if rl.text == "" {
			styled = append(styled, "")
			continue
		}

		wrapped := wordWrap(rl.text, width)

		switch {
		case rl.isInput:
			styled = append(styled, stylePlayerInput.Render(wrapped))
		case rl.isSystem:
			styled = append(styled, styledSystemMsg(wrapped))
		default:
			styled = append(styled, renderLineKind(wrapped, rl.kind))
		}
	}

	m.viewport.SetContent(strings.Join(styled, "\n"))
	m.viewport.GotoBottom()
}

// wordWrap wraps text to fit within the given width, breaking at word
// boundaries.
func wordWrap(text string, width int) string {
	if width <= 0 || len(text) <= width {
		return text
	}

	var result strings.Builder
	lineLen := 0
	for i, word := range strings.Fields(text) {
		switch {
		case i == 0:
			lineLen = len(word)
		case lineLen+1+len(word) > width:
			result.WriteString("\n")
			lineLen = len(word)
		default:
			result.WriteString(" ")
			lineLen += 1 + len(word)
		}
		result.WriteString(word)
	}
	return result.String()
}

// View renders the full TUI layout: board, narrative, status bar, input
// and key help.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	return m.board.rendered + "\n" +
		m.viewport.View() + "\n" +
		m.renderStatusBar() + "\n" +
		m.input.View() + "\n" +
		m.help.View(m.keys)
}

// handleMeta dispatches meta-commands. Returns output lines and quit flag.
func (m *Model) handleMeta(input string) ([]string, bool) {
	cmd := strings.Fields(input)[0]

	switch cmd {
	case "/quit", "/exit":
		return []string{"Goodbye."}, true

	case "/new", "/restart":
		m.lastCmd = ""
		return m.openingLines(), false

	case "/report":
		return m.cmdReport(), false

	case "/help":
		return m.cmdHelp(), false

	case "/state":
		return m.cmdState(), false

	case "/trace":
		m.trace = !m.trace
		if m.trace {
			return []string{"Trace output enabled."}, false
		}
		return []string{"Trace output disabled."}, false

	default:
		return []string{fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd)}, false
	}
}

func (m *Model) cmdReport() []string {
	if m.session.Report == nil {
		return []string{"No game to report."}
	}
	path, err := report.Write(m.reportDir, m.session.Report)
	if err != nil {
		return []string{fmt.Sprintf("Report failed: %v", err)}
	}
	return []string{fmt.Sprintf("Report written to %s.", path)}
}

func (m *Model) cmdHelp() []string {
	out := []string{
		"System:",
		"  /new          Start a new game (ctrl+n)",
		"  /report       Export this game as JSON",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump engine state",
		"  /trace        Toggle mosquito trace output",
		"",
	}
	out = append(out, session.HelpLines()...)
	return append(out,
		"  again (g)                     Repeat your last command",
		"",
		"Board: tab/shift+tab to move, ctrl+t to select, ctrl+e to end the round",
		"Navigation: PgUp/PgDn to scroll, Up/Down for command history",
	)
}

func (m *Model) cmdState() []string {
	e := m.session.Engine
	out := []string{
		fmt.Sprintf("Game: %s (seed %d)", e.GameID(), m.session.Seed),
		fmt.Sprintf("Phase: %s  Outcome: %s", e.Phase(), e.Outcome()),
		fmt.Sprintf("Round: %d  Actions: %d/%d", e.Round(), e.ActionsTaken(), e.ActionsAvailable()),
	}
	for _, h := range e.Humans() {
		out = append(out, fmt.Sprintf("Human %s: blood=%d protect=%v", h.Color, h.Blood, e.HasProtectIntent(h.Color)))
	}
	for _, g := range e.Grounds() {
		out = append(out, fmt.Sprintf("Ground %s: eggs=%d clear=%v", g.Type, g.Eggs, e.HasClearIntent(g.Type)))
	}
	return out
}

func formatTrace(r types.RoundReport) []string {
	lines := []string{fmt.Sprintf("[trace] Mosquito actions: %d (bites %d, breeds %d)", len(r.Mosquito), r.Bites(), r.Breeds())}
	for _, a := range r.Mosquito {
		target := a.Target
		if target == "" {
			target = "-"
		}
		lines = append(lines, fmt.Sprintf("[trace]   %s %s %s", a.Kind, target, a.Result))
	}
	return lines
}
