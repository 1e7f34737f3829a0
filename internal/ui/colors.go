package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#7D56F4", "#04B575", "#FF0000", "#FFA500", "#626262")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title lipgloss.Style
	ok    lipgloss.Style
	err   lipgloss.Style
	warn  lipgloss.Style
	help  lipgloss.Style
}

func NewPalette(t, s, e, w, h string) *Palette {
	return &Palette{
		title: NewBold(t).MarginBottom(1),
		ok:    NewBold(s),
		err:   NewBold(e),
		warn:  NewStyle(w),
		help:  NewEm(h),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}

// Title renders s in the palette's title style.
func Title(s string) string {
	return styles.title.Render(s)
}

// OK renders s in the palette's success style.
func OK(s string) string {
	return styles.ok.Render(s)
}

// Swatch renders a colored block for hex color values, or nothing for
// symbolic GTK values like @theme_bg_color.
func Swatch(value string) string {
	if !strings.HasPrefix(value, "#") {
		return ""
	}
	return lipgloss.NewStyle().Background(lipgloss.Color(value)).Render("   ")
}
