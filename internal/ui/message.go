package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/daylight/internal/theme"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var _ tea.Msg = Msg{}

const (
	MsgThemeChanged MsgKind = iota
	MsgThemeLoaded
	MsgWatcherClosed
)

// themeChangedMsg is the constructor for [MsgThemeChanged]
func themeChangedMsg() Msg {
	return Msg{kind: MsgThemeChanged}
}

// themeLoadedMsg is the constructor for [MsgThemeLoaded]
func themeLoadedMsg(colors *theme.Colors, err error) Msg {
	return Msg{
		kind: MsgThemeLoaded,
		data: struct {
			colors *theme.Colors
			err    error
		}{colors, err},
	}
}

// watcherClosedMsg is the constructor for [MsgWatcherClosed]
func watcherClosedMsg() Msg {
	return Msg{kind: MsgWatcherClosed}
}
