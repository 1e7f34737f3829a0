package theme

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Colors is the resolved GTK theme palette.
type Colors struct {
	Colors     map[string]string `json:"colors"`
	PreferDark bool              `json:"prefer_dark"`
	ThemePath  string            `json:"theme_path,omitempty"`
}

// gtkDir returns the GTK4 configuration directory (~/.config/gtk-4.0).
func gtkDir() string {
	return filepath.Join(xdg.ConfigHome, "gtk-4.0")
}

// Load resolves and parses the active GTK4 theme.
//
// A missing gtk.css is not an error; it yields an empty palette with only the
// dark preference populated.
func Load() (*Colors, error) {
	return loadFrom(gtkDir())
}

func loadFrom(dir string) (*Colors, error) {
	themePath, found := resolveThemePath(dir)

	colors := map[string]string{}
	if found {
		css, err := os.ReadFile(themePath)
		if err != nil {
			return nil, fmt.Errorf("failed to read theme CSS: %w", err)
		}
		colors = parseDefineColors(string(css))
	}

	return &Colors{
		Colors:     colors,
		PreferDark: readDarkPreference(dir),
		ThemePath:  themePath,
	}, nil
}

// resolveThemePath finds the CSS file holding the active theme's colors.
//
// gtk.css either @imports the theme file or carries @define-color lines
// itself. Relative and ~-prefixed import paths resolve against the gtk.css
// directory and the home directory respectively.
func resolveThemePath(dir string) (string, bool) {
	gtkCSS := filepath.Join(dir, "gtk.css")
	data, err := os.ReadFile(gtkCSS)
	if err != nil {
		return "", false
	}
	content := string(data)

	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		rest, isImport := strings.CutPrefix(trimmed, "@import")
		if !isImport {
			continue
		}

		target := importTarget(rest)
		if target == "" {
			continue
		}

		if strings.HasPrefix(target, "~/") {
			if home, err := os.UserHomeDir(); err == nil {
				target = filepath.Join(home, strings.TrimPrefix(target, "~/"))
			}
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(dir, target)
		}

		if _, err := os.Stat(target); err == nil {
			return target, true
		}
	}

	// No usable @import; fall back to gtk.css itself when it defines colors
	if strings.Contains(content, "@define-color") {
		return gtkCSS, true
	}

	return "", false
}

// importTarget extracts the path from an `url("...")` clause.
func importTarget(rest string) string {
	start := strings.Index(rest, "url(")
	if start < 0 {
		return ""
	}

	var target strings.Builder
	for _, c := range rest[start+4:] {
		if c == '"' || c == '\'' {
			if target.Len() == 0 {
				continue
			}
			break
		}
		if c == ')' {
			break
		}
		target.WriteRune(c)
	}

	return target.String()
}

// parseDefineColors collects every @define-color declaration in css.
func parseDefineColors(css string) map[string]string {
	colors := make(map[string]string)
	for _, line := range strings.Split(css, "\n") {
		trimmed := strings.TrimSpace(line)
		rest, found := strings.CutPrefix(trimmed, "@define-color ")
		if !found {
			continue
		}

		// Format: name value;
		name, value, found := strings.Cut(rest, " ")
		if !found {
			continue
		}
		colors[name] = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(value), ";"))
	}
	return colors
}

// readDarkPreference reads gtk-application-prefer-dark-theme from settings.ini.
//
// Any read or parse failure means "not dark".
func readDarkPreference(dir string) bool {
	data, err := os.ReadFile(filepath.Join(dir, "settings.ini"))
	if err != nil {
		return false
	}

	for _, line := range strings.Split(string(data), "\n") {
		trimmed := strings.TrimSpace(line)
		rest, found := strings.CutPrefix(trimmed, "gtk-application-prefer-dark-theme")
		if !found {
			continue
		}

		_, value, found := strings.Cut(rest, "=")
		if !found {
			continue
		}

		v := strings.ToLower(strings.TrimSpace(value))
		return v == "true" || v == "1"
	}

	return false
}
