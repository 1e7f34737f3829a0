// Package ui contains the terminal presentation layer: the lipgloss palette
// used by command output and the bubbletea model behind
// `daylight theme watch --tui`, a live view of the GTK palette that reloads
// whenever the theme watcher reports a change.
package ui
