package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/desertthunder/daylight/internal/repositories"
	"github.com/desertthunder/daylight/internal/shared"
)

// FetchURL performs a GET request on behalf of the front end and prints the
// body as text.
//
// With --cache, the body is served from and written through to the local
// SQLite cache.
func (r *Runner) FetchURL(ctx context.Context, cmd *cli.Command) error {
	rawURL := cmd.StringArg("url")
	if rawURL == "" {
		return fmt.Errorf("%w: url", shared.ErrMissingArgument)
	}

	useCache := cmd.Bool("cache")
	configPath := cmd.String("config")
	config := r.loadConfig(configPath)

	var cache *repositories.FetchCache
	if useCache {
		db, err := shared.NewDatabase(config.Database.Path)
		if err != nil {
			return fmt.Errorf("failed to open cache database: %w", err)
		}
		defer db.Close()
		cache = repositories.NewFetchCache(db)

		page, err := cache.Get(rawURL)
		if err != nil {
			r.logger.Warn("fetch cache read failed", "error", err)
		} else if page != nil {
			r.logger.Info("serving fetch from cache", "url", rawURL, "fetched_at", page.FetchedAt)
			return r.writePlain("%s", page.Body)
		}
	}

	r.logger.Infof("fetching %v", rawURL)

	body, err := r.fetcher.Fetch(ctx, rawURL)
	if err != nil {
		return err
	}

	if cache != nil {
		if err := cache.Put(rawURL, body); err != nil {
			r.logger.Warn("fetch cache write failed", "error", err)
		}
	}

	return r.writePlain("%s", body)
}

// fetchCommand handles generic URL fetching
func fetchCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "fetch",
		Usage: "Fetch a URL and print the response body",
		Arguments: []cli.Argument{
			&cli.StringArg{
				Name: "url",
			},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to configuration file",
				Value:   "config.toml",
			},
			&cli.BoolFlag{
				Name:  "cache",
				Usage: "Read and write the local fetch cache",
			},
		},
		Action: r.FetchURL,
	}
}
