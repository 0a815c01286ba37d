package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nathoo/eradicate/types"
)

// Styles used throughout the TUI.
var (
	styleStatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("252")).
			Bold(true)

	styleInputPrompt = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleNarrative = lipgloss.NewStyle().
			Foreground(lipgloss.Color("255"))

	styleRoundHeader = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("252"))

	styleBite = lipgloss.NewStyle().
			Foreground(lipgloss.Color("203"))

	styleBlocked = lipgloss.NewStyle().
			Foreground(lipgloss.Color("78"))

	styleBreed = lipgloss.NewStyle().
			Foreground(lipgloss.Color("179"))

	styleOutcome = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("228"))

	styleSystem = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243"))

	styleError = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	stylePlayerInput = lipgloss.NewStyle().
				Foreground(lipgloss.Color("34"))

	styleTrace = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	styleCard = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1).
			Width(cardWidth)

	styleCardSelected = styleCard.
				BorderForeground(lipgloss.Color("34"))

	styleCardCursor = styleCard.
			BorderStyle(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color("252"))

	styleCardInactive = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Strikethrough(true)

	styleRowLabel = lipgloss.NewStyle().
			Foreground(lipgloss.Color("243")).
			Width(8)
)

const cardWidth = 14

var humanPalette = map[types.HumanColor]lipgloss.Color{
	types.Orange: lipgloss.Color("208"),
	types.Blue:   lipgloss.Color("33"),
	types.Purple: lipgloss.Color("135"),
	types.Green:  lipgloss.Color("70"),
}

// lineKind identifies the type of an output line for styling.
type lineKind int

const (
	kindNarrative lineKind = iota
	kindRoundHeader
	kindBite
	kindBlocked
	kindBreed
	kindOutcome
	kindSystem
	kindError
	kindTrace
)

// classifyLine determines what kind of output line this is.
func classifyLine(line string) lineKind {
	switch {
	case strings.HasPrefix(line, "[trace]"):
		return kindTrace
	case strings.HasPrefix(line, "[") && strings.HasSuffix(line, "]"):
		return kindSystem
	case strings.HasPrefix(line, "--- Round"):
		return kindRoundHeader
	case strings.HasSuffix(line, "You win!"),
		strings.HasSuffix(line, "The mosquitoes win."):
		return kindOutcome
	case strings.Contains(line, "but they are protected"):
		return kindBlocked
	case strings.HasPrefix(line, "A mosquito bites"):
		return kindBite
	case strings.HasPrefix(line, "Mosquitoes lay eggs"):
		return kindBreed
	case strings.HasPrefix(line, "I don't know"),
		strings.HasPrefix(line, "No actions left"),
		strings.HasPrefix(line, "Assign every action"),
		strings.HasPrefix(line, "no human called"),
		strings.HasPrefix(line, "no breeding ground called"),
		strings.HasPrefix(line, "no human or breeding ground called"),
		strings.HasPrefix(line, "which "),
		strings.HasPrefix(line, "The game is over"):
		return kindError
	default:
		return kindNarrative
	}
}

// renderLineKind applies the style for a given lineKind.
func renderLineKind(line string, kind lineKind) string {
	switch kind {
	case kindRoundHeader:
		return styleRoundHeader.Render(line)
	case kindBite:
		return styleBite.Render(line)
	case kindBlocked:
		return styleBlocked.Render(line)
	case kindBreed:
		return styleBreed.Render(line)
	case kindOutcome:
		return styleOutcome.Render(line)
	case kindSystem:
		return styleSystem.Render(line)
	case kindError:
		return styleError.Render(line)
	case kindTrace:
		return styleTrace.Render(line)
	default:
		return styleNarrative.Render(line)
	}
}

// styledSystemMsg renders a system message in gray with brackets.
func styledSystemMsg(text string) string {
	return styleSystem.Render("[" + text + "]")
}
