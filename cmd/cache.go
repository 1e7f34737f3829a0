package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/daylight/internal/repositories"
	"github.com/desertthunder/daylight/internal/shared"
)

// withFetchCache opens the cache database for a command invocation.
func (r *Runner) withFetchCache(configPath string, fn func(*repositories.FetchCache) error) error {
	config := r.loadConfig(configPath)

	db, err := shared.NewDatabase(config.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open cache database: %w", err)
	}
	defer db.Close()

	return fn(repositories.NewFetchCache(db))
}

// CacheList prints the URLs currently held in the fetch cache.
func (r *Runner) CacheList(ctx context.Context, cmd *cli.Command) error {
	return r.withFetchCache(cmd.String("config"), func(cache *repositories.FetchCache) error {
		pages, err := cache.List()
		if err != nil {
			return err
		}

		if cmd.Bool("json") {
			return r.writeJSON(pages, true)
		}

		if len(pages) == 0 {
			r.writePlain("Fetch cache is empty.\n")
			return nil
		}

		r.writePlain("Cached pages (%d):\n\n", len(pages))
		for _, page := range pages {
			r.writePlain("  %s (fetched %s)\n", page.URL, page.FetchedAt.Format("2006-01-02 15:04:05"))
		}
		return nil
	})
}

// CacheClear empties the fetch cache.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	return r.withFetchCache(cmd.String("config"), func(cache *repositories.FetchCache) error {
		removed, err := cache.Clear()
		if err != nil {
			return err
		}

		r.logger.Infof("cleared %d cached pages", removed)
		return r.writePlain("✓ Removed %d cached pages\n", removed)
	})
}

// cacheCommand manages the local fetch cache
func cacheCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Manage the local fetch cache",
		Commands: []*cli.Command{
			{
				Name:  "list",
				Usage: "List cached pages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.BoolFlag{
						Name:  "json",
						Usage: "Output raw JSON",
					},
				},
				Action: r.CacheList,
			},
			{
				Name:  "clear",
				Usage: "Remove all cached pages",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
				},
				Action: r.CacheClear,
			},
		},
	}
}
