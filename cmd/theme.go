package main

import (
	"context"
	"fmt"
	"os/signal"
	"sort"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/daylight/internal/theme"
	"github.com/desertthunder/daylight/internal/ui"
)

// ThemeColors prints the resolved GTK theme palette.
func (r *Runner) ThemeColors(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")

	colors, err := theme.Load()
	if err != nil {
		return fmt.Errorf("failed to load GTK theme: %w", err)
	}

	if useJSON {
		return r.writeJSON(colors, cmd.Bool("pretty"))
	}

	mode := "light"
	if colors.PreferDark {
		mode = "dark"
	}
	r.writePlain("%s\n", ui.Title(fmt.Sprintf("GTK theme (%s)", mode)))
	if colors.ThemePath != "" {
		r.writePlain("Source: %s\n\n", colors.ThemePath)
	}

	if len(colors.Colors) == 0 {
		r.writePlain("No @define-color declarations found.\n")
		return nil
	}

	names := make([]string, 0, len(colors.Colors))
	for name := range colors.Colors {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		value := colors.Colors[name]
		if swatch := ui.Swatch(value); swatch != "" {
			r.writePlain("%-32s %s %s\n", name, value, swatch)
		} else {
			r.writePlain("%-32s %s\n", name, value)
		}
	}

	return nil
}

// ThemeWatch watches the GTK theme directories and emits a notification per
// coalesced change, either as log lines or in a live TUI.
func (r *Runner) ThemeWatch(ctx context.Context, cmd *cli.Command) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if cmd.Bool("tui") {
		return r.themeWatchTUI(ctx)
	}

	watcher := theme.NewWatcher(func() {
		r.logger.Info("gtk theme changed")
		r.writePlain("theme-changed\n")
	}, r.logger)

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start theme watcher: %w", err)
	}
	defer watcher.Close()

	r.writePlain("→ Watching GTK theme for changes (Ctrl-C to stop)...\n")
	<-ctx.Done()

	return nil
}

func (r *Runner) themeWatchTUI(ctx context.Context) error {
	colors, err := theme.Load()
	if err != nil {
		return fmt.Errorf("failed to load GTK theme: %w", err)
	}

	changes := make(chan struct{}, 1)
	watcher := theme.NewWatcher(func() {
		select {
		case changes <- struct{}{}:
		default:
		}
	}, r.logger)

	if err := watcher.Start(); err != nil {
		return fmt.Errorf("failed to start theme watcher: %w", err)
	}
	defer watcher.Close()

	program := tea.NewProgram(ui.NewModel(colors, changes), tea.WithContext(ctx), tea.WithAltScreen())
	if _, err := program.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("theme viewer failed: %w", err)
	}

	return nil
}

// themeCommand handles GTK theme inspection
func themeCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "Inspect the GTK4 theme",
		Commands: []*cli.Command{
			{
				Name:  "colors",
				Usage: "Print the active theme's color palette",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
					&cli.BoolFlag{
						Name:  "pretty",
						Usage: "Pretty-print output",
					},
				},
				Action: r.ThemeColors,
			},
			{
				Name:  "watch",
				Usage: "Watch for theme changes",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "tui",
						Usage: "Show a live palette viewer",
					},
				},
				Action: r.ThemeWatch,
			},
		},
	}
}
