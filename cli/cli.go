// Package cli provides the line-oriented terminal view: prompt, output
// formatting, and meta-command dispatch for Eradicate!.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/nathoo/eradicate/engine/report"
	"github.com/nathoo/eradicate/engine/session"
	"github.com/nathoo/eradicate/types"
)

// CLI handles terminal interaction with the player.
type CLI struct {
	Session   *session.Session
	In        io.Reader
	Out       io.Writer
	ReportDir string
	Trace     bool
	EchoInput bool   // echo each input line after the prompt (for script playback)
	lastCmd   string // for "again"/"g" repeat
	prompt    string
}

// New creates a CLI wired to the given session.
func New(s *session.Session, reportDir string) *CLI {
	return &CLI{
		Session:   s,
		In:        os.Stdin,
		Out:       os.Stdout,
		ReportDir: reportDir,
	}
}

// Run starts the game and loops: prompt, input, dispatch, output. The
// prompt shows the action budget and is rebuilt on every engine
// notification.
func (c *CLI) Run() {
	c.prompt = "> "
	h := c.Session.Engine.Subscribe(c.refreshPrompt)
	defer c.Session.Engine.Unsubscribe(h)

	c.printLines(c.Session.Start())

	scanner := bufio.NewScanner(c.In)
	for {
		c.print(c.prompt)
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		// Skip comment lines (for script files).
		if strings.HasPrefix(input, "#") {
			continue
		}
		if c.EchoInput {
			c.printLine(input)
		}

		// Meta-commands start with '/'.
		if strings.HasPrefix(input, "/") {
			if c.handleMeta(input) {
				return // /quit
			}
			continue
		}

		// "again" / "g" repeats the last game command.
		lower := strings.ToLower(input)
		if lower == "again" || lower == "g" {
			if c.lastCmd == "" {
				c.printLine("Nothing to repeat.")
				continue
			}
			input = c.lastCmd
		} else {
			c.lastCmd = input
		}

		result := c.Session.Step(input)
		c.printLines(result.Output)

		if c.Trace && result.Round != nil {
			c.printTrace(*result.Round)
		}
		if result.Round != nil && result.Round.Phase == types.GameOver {
			c.printSystem("Game over. Type /new to play again or /report to export this game.")
		}
	}
}

func (c *CLI) refreshPrompt() {
	e := c.Session.Engine
	if e.Phase() != types.SelectActions {
		c.prompt = "> "
		return
	}
	c.prompt = fmt.Sprintf("[%d/%d] > ", e.ActionsTaken(), e.ActionsAvailable())
}

// handleMeta dispatches meta-commands. Returns true if the game should exit.
func (c *CLI) handleMeta(input string) bool {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case "/quit", "/exit":
		c.printSystem("Goodbye.")
		return true

	case "/new", "/restart":
		c.lastCmd = ""
		c.printLines(c.Session.Start())

	case "/report":
		c.cmdReport()

	case "/help":
		c.cmdHelp()

	case "/state":
		c.cmdState()

	case "/trace":
		c.Trace = !c.Trace
		if c.Trace {
			c.printSystem("Trace output enabled.")
		} else {
			c.printSystem("Trace output disabled.")
		}

	default:
		c.printSystem(fmt.Sprintf("Unknown command: %s. Type /help for available commands.", cmd))
	}

	return false
}

func (c *CLI) cmdReport() {
	if c.Session.Report == nil {
		c.printSystem("No game to report.")
		return
	}
	path, err := report.Write(c.ReportDir, c.Session.Report)
	if err != nil {
		c.printSystem(fmt.Sprintf("Report failed: %v", err))
		return
	}
	c.printSystem(fmt.Sprintf("Report written to %s.", path))
}

func (c *CLI) cmdHelp() {
	help := []string{
		"System:",
		"  /new          Start a new game",
		"  /report       Export this game as JSON",
		"  /quit         Exit game",
		"  /help         Show this help",
		"  /state        Debug: dump engine state",
		"  /trace        Toggle mosquito trace output",
		"",
	}
	help = append(help, session.HelpLines()...)
	help = append(help, "  again (g)                     Repeat your last command")
	c.printLines(help)
}

func (c *CLI) cmdState() {
	e := c.Session.Engine
	c.printSystem(fmt.Sprintf("Game: %s (seed %d)", e.GameID(), c.Session.Seed))
	c.printSystem(fmt.Sprintf("Phase: %s  Outcome: %s", e.Phase(), e.Outcome()))
	c.printSystem(fmt.Sprintf("Round: %d  Actions: %d/%d", e.Round(), e.ActionsTaken(), e.ActionsAvailable()))
	for _, h := range e.Humans() {
		c.printSystem(fmt.Sprintf("Human %s: blood=%d protect=%v", h.Color, h.Blood, e.HasProtectIntent(h.Color)))
	}
	for _, g := range e.Grounds() {
		c.printSystem(fmt.Sprintf("Ground %s: eggs=%d clear=%v", g.Type, g.Eggs, e.HasClearIntent(g.Type)))
	}
}

func (c *CLI) printTrace(r types.RoundReport) {
	c.printSystem(fmt.Sprintf("[trace] Mosquito actions: %d (bites %d, breeds %d)", len(r.Mosquito), r.Bites(), r.Breeds()))
	for _, a := range r.Mosquito {
		target := a.Target
		if target == "" {
			target = "-"
		}
		c.printSystem(fmt.Sprintf("[trace]   %s %s %s", a.Kind, target, a.Result))
	}
}

func (c *CLI) printLines(lines []string) {
	for _, line := range lines {
		c.printLine(line)
	}
}

func (c *CLI) printLine(text string) {
	fmt.Fprintln(c.Out, text)
}

func (c *CLI) print(text string) {
	fmt.Fprint(c.Out, text)
}

func (c *CLI) printSystem(text string) {
	fmt.Fprintf(c.Out, "[%s]\n", text)
}
