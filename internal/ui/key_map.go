package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up     key.Binding
	down   key.Binding
	toggle key.Binding
	borrow key.Binding
	ret    key.Binding
	oldest key.Binding
	quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		toggle: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "catalog/held")),
		borrow: key.NewBinding(key.WithKeys("b", "enter"), key.WithHelp("b", "borrow")),
		ret:    key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "return")),
		oldest: key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "return oldest")),
		quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.borrow, k.ret, k.oldest, k.toggle, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.toggle},
		{k.borrow, k.ret, k.oldest},
		{k.quit},
	}
}
