package theme

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

func TestParseDefineColors(t *testing.T) {
	tc := []struct {
		name string
		css  string
		want map[string]string
	}{
		{
			name: "basic declarations",
			css:  "@define-color window_bg_color #242424;\n@define-color accent_color #78aeed;",
			want: map[string]string{"window_bg_color": "#242424", "accent_color": "#78aeed"},
		},
		{
			name: "indented with surrounding rules",
			css:  "window { color: red; }\n  @define-color view_bg_color rgb(30, 30, 46);  \n",
			want: map[string]string{"view_bg_color": "rgb(30, 30, 46)"},
		},
		{
			name: "symbolic value",
			css:  "@define-color headerbar_bg_color @window_bg_color;",
			want: map[string]string{"headerbar_bg_color": "@window_bg_color"},
		},
		{
			name: "no declarations",
			css:  "window { background: #fff; }",
			want: map[string]string{},
		},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			got := parseDefineColors(tt.css)
			if len(got) != len(tt.want) {
				t.Fatalf("parseDefineColors() = %v, want %v", got, tt.want)
			}
			for name, value := range tt.want {
				if got[name] != value {
					t.Errorf("color %s = %q, want %q", name, got[name], value)
				}
			}
		})
	}
}

func TestResolveThemePath(t *testing.T) {
	t.Run("Import With Relative Path", func(t *testing.T) {
		dir := t.TempDir()
		theme := writeFile(t, dir, "catppuccin.css", "@define-color accent #89b4fa;")
		writeFile(t, dir, "gtk.css", `@import url("catppuccin.css");`)

		got, found := resolveThemePath(dir)
		if !found {
			t.Fatal("expected a resolved theme path")
		}
		if got != theme {
			t.Errorf("resolved %q, want %q", got, theme)
		}
	})

	t.Run("Import With Absolute Path", func(t *testing.T) {
		dir := t.TempDir()
		themeDir := t.TempDir()
		theme := writeFile(t, themeDir, "colors.css", "@define-color accent #89b4fa;")
		writeFile(t, dir, "gtk.css", "@import url('"+theme+"');")

		got, found := resolveThemePath(dir)
		if !found || got != theme {
			t.Errorf("resolved (%q, %v), want (%q, true)", got, found, theme)
		}
	})

	t.Run("Inline Definitions", func(t *testing.T) {
		dir := t.TempDir()
		gtkCSS := writeFile(t, dir, "gtk.css", "@define-color window_bg_color #1e1e2e;")

		got, found := resolveThemePath(dir)
		if !found || got != gtkCSS {
			t.Errorf("resolved (%q, %v), want (%q, true)", got, found, gtkCSS)
		}
	})

	t.Run("Broken Import Without Definitions", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "gtk.css", `@import url("missing.css");`)

		if _, found := resolveThemePath(dir); found {
			t.Error("expected no resolved path for a dangling import")
		}
	})

	t.Run("Missing gtk.css", func(t *testing.T) {
		if _, found := resolveThemePath(t.TempDir()); found {
			t.Error("expected no resolved path without gtk.css")
		}
	})
}

func TestLoadFrom(t *testing.T) {
	t.Run("Colors And Dark Preference", func(t *testing.T) {
		dir := t.TempDir()
		writeFile(t, dir, "gtk.css", "@define-color window_bg_color #242424;")
		writeFile(t, dir, "settings.ini", "[Settings]\ngtk-application-prefer-dark-theme=true\n")

		colors, err := loadFrom(dir)
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if colors.Colors["window_bg_color"] != "#242424" {
			t.Errorf("unexpected palette %v", colors.Colors)
		}
		if !colors.PreferDark {
			t.Error("expected PreferDark to be true")
		}
		if colors.ThemePath == "" {
			t.Error("expected a theme path")
		}
	})

	t.Run("Empty Directory", func(t *testing.T) {
		colors, err := loadFrom(t.TempDir())
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if len(colors.Colors) != 0 || colors.PreferDark || colors.ThemePath != "" {
			t.Errorf("expected an empty palette, got %+v", colors)
		}
	})
}

func TestReadDarkPreference(t *testing.T) {
	tc := []struct {
		name     string
		settings string
		want     bool
	}{
		{"true value", "gtk-application-prefer-dark-theme=true", true},
		{"numeric value", "gtk-application-prefer-dark-theme = 1", true},
		{"false value", "gtk-application-prefer-dark-theme=false", false},
		{"unrelated keys", "gtk-theme-name=Adwaita", false},
	}

	for _, tt := range tc {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "settings.ini", "[Settings]\n"+tt.settings+"\n")

			if got := readDarkPreference(dir); got != tt.want {
				t.Errorf("readDarkPreference() = %v, want %v", got, tt.want)
			}
		})
	}

	t.Run("missing settings.ini", func(t *testing.T) {
		if readDarkPreference(t.TempDir()) {
			t.Error("expected false without settings.ini")
		}
	})
}
