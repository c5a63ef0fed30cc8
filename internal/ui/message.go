package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgClearStatus MsgKind = iota
)

const statusTimeout = 4 * time.Second

// clearStatusMsg is the constructor for [MsgClearStatus]; seq ties it to the status it clears.
func clearStatusMsg(seq int) Msg {
	return Msg{kind: MsgClearStatus, data: seq}
}

func clearStatusAfter(seq int, d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg(seq) })
}
