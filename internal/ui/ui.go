package ui

import (
	"fmt"
	"sort"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/desertthunder/daylight/internal/theme"
)

var _ list.Item = colorItem{}

// colorItem wraps one @define-color entry to implement [list.Item].
type colorItem struct {
	name  string
	value string
}

func (i colorItem) FilterValue() string { return i.name }
func (i colorItem) Title() string       { return i.name }
func (i colorItem) Description() string {
	if swatch := Swatch(i.value); swatch != "" {
		return fmt.Sprintf("%s %s", i.value, swatch)
	}
	return i.value
}

// Model is the live GTK palette viewer.
//
// It shows the current theme colors and reloads them whenever the watcher
// signals a change on the changes channel.
type Model struct {
	list    list.Model
	colors  *theme.Colors
	changes <-chan struct{}
	width   int
	height  int
	err     error
	keys    keyMap
}

// NewModel creates a theme viewer for the given palette; changes may be nil
// for a static view.
func NewModel(colors *theme.Colors, changes <-chan struct{}) Model {
	l := list.New(colorItems(colors), list.NewDefaultDelegate(), 0, 0)
	l.Title = themeTitle(colors)
	l.SetShowStatusBar(false)

	return Model{
		list:    l,
		colors:  colors,
		changes: changes,
		keys:    newKeyMap(),
	}
}

func colorItems(colors *theme.Colors) []list.Item {
	names := make([]string, 0, len(colors.Colors))
	for name := range colors.Colors {
		names = append(names, name)
	}
	sort.Strings(names)

	items := make([]list.Item, 0, len(names))
	for _, name := range names {
		items = append(items, colorItem{name: name, value: colors.Colors[name]})
	}
	return items
}

func themeTitle(colors *theme.Colors) string {
	mode := "light"
	if colors.PreferDark {
		mode = "dark"
	}
	if colors.ThemePath == "" {
		return fmt.Sprintf("GTK theme (%s, no palette found)", mode)
	}
	return fmt.Sprintf("GTK theme (%s) — %s", mode, colors.ThemePath)
}

// waitForChange blocks on the watcher channel and reports the next change.
func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	return func() tea.Msg {
		if _, ok := <-m.changes; !ok {
			return watcherClosedMsg()
		}
		return themeChangedMsg()
	}
}

func loadTheme() tea.Msg {
	colors, err := theme.Load()
	return themeLoadedMsg(colors, err)
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-1)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.refresh):
			return m, loadTheme
		}

	case Msg:
		switch msg.kind {
		case MsgThemeChanged:
			return m, tea.Batch(loadTheme, m.waitForChange())
		case MsgThemeLoaded:
			data := msg.data.(struct {
				colors *theme.Colors
				err    error
			})
			if data.err != nil {
				m.err = data.err
				return m, nil
			}
			m.err = nil
			m.colors = data.colors
			m.list.Title = themeTitle(data.colors)
			return m, m.list.SetItems(colorItems(data.colors))
		case MsgWatcherClosed:
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.err != nil {
		return styles.err.Render(fmt.Sprintf("failed to reload theme: %v", m.err))
	}
	return m.list.View()
}
