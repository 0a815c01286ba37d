package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
)

// keyMap holds the bindings that act on the board rather than the
// command line. It satisfies help.KeyMap.
type keyMap struct {
	NextCard key.Binding
	PrevCard key.Binding
	Toggle   key.Binding
	Confirm  key.Binding
	NewGame  key.Binding
	Submit   key.Binding
	Scroll   key.Binding
	Quit     key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		NextCard: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next card")),
		PrevCard: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev card")),
		Toggle:   key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "select card")),
		Confirm:  key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "end round")),
		NewGame:  key.NewBinding(key.WithKeys("ctrl+n"), key.WithHelp("ctrl+n", "new game")),
		Submit:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "run command")),
		Scroll:   key.NewBinding(key.WithKeys("pgup", "pgdown"), key.WithHelp("pgup/pgdn", "scroll")),
		Quit:     key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.NextCard, k.Toggle, k.Confirm, k.NewGame, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.NextCard, k.PrevCard, k.Toggle, k.Confirm},
		{k.Submit, k.Scroll, k.NewGame, k.Quit},
	}
}

// viewportKeyMap returns a viewport keymap with Up/Down disabled
// (those recall command history).
func viewportKeyMap() viewport.KeyMap {
	return viewport.KeyMap{
		PageDown:     key.NewBinding(key.WithKeys("pgdown")),
		PageUp:       key.NewBinding(key.WithKeys("pgup")),
		HalfPageDown: key.NewBinding(key.WithKeys("ctrl+d")),
		HalfPageUp:   key.NewBinding(key.WithKeys("ctrl+u")),
		Up:           key.NewBinding(key.WithDisabled()),
		Down:         key.NewBinding(key.WithDisabled()),
	}
}
