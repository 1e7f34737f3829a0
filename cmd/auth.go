package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"
	"golang.org/x/oauth2"

	"github.com/desertthunder/daylight/internal/shared"
)

// AuthLogin performs the OAuth2 authorization-code capture flow.
//
// Starts the loopback listener, opens the browser at the provider's
// authorization URL with the listener's port in the redirect URI, and waits
// for the redirect to deliver a code. Exchanging the code for tokens is the
// front end's business; this command only captures and prints it.
func (r *Runner) AuthLogin(ctx context.Context, cmd *cli.Command) error {
	configPath := cmd.String("config")
	timeout := time.Duration(cmd.Int("timeout")) * time.Millisecond

	config := r.loadConfig(configPath)
	if config.OAuth.ClientID == "" {
		return fmt.Errorf("%w: oauth client_id must be set in config.toml", shared.ErrInvalidArgument)
	}
	if config.OAuth.AuthURL == "" {
		return fmt.Errorf("%w: oauth auth_url must be set in config.toml", shared.ErrInvalidArgument)
	}

	state, err := shared.GenerateState()
	if err != nil {
		return fmt.Errorf("failed to generate state token: %w", err)
	}

	port, err := r.capture.Start()
	if err != nil {
		return fmt.Errorf("failed to start oauth listener: %w", err)
	}

	redirectPath := config.OAuth.RedirectPath
	if redirectPath == "" {
		redirectPath = "/callback"
	}

	oauthConf := &oauth2.Config{
		ClientID:    config.OAuth.ClientID,
		Scopes:      config.OAuth.Scopes,
		RedirectURL: fmt.Sprintf("http://127.0.0.1:%d%s", port, redirectPath),
		Endpoint:    oauth2.Endpoint{AuthURL: config.OAuth.AuthURL},
	}
	authURL := oauthConf.AuthCodeURL(state)

	r.logger.Info("oauth listener bound", "port", port)

	r.writePlain("→ Opening browser for authorization...\n")
	if err := shared.OpenBrowser(authURL); err != nil {
		r.logger.Warnf("failed to open browser automatically %v", err)
		r.writePlainln("⚠ Could not open browser automatically.")
		r.writePlain("Please open this URL in your browser:\n%s\n\n", authURL)
	}

	r.writePlain("→ Waiting for authorization (%v timeout)...\n", timeout)

	code, err := r.capture.Await(ctx, timeout)
	if err != nil {
		switch {
		case errors.Is(err, shared.ErrTimeout):
			return fmt.Errorf("authorization timed out: %w", err)
		case errors.Is(err, shared.ErrListenerClosed):
			return fmt.Errorf("listener closed before a code arrived: %w", err)
		default:
			return err
		}
	}

	r.writePlainln("✓ Authorization complete")
	r.writePlain("Authorization code: %s\n", code)

	return nil
}

// authCommand handles the desktop authorization flow
func authCommand(r *Runner) *cli.Command {
	return &cli.Command{
		Name:  "auth",
		Usage: "Authorize with the identity provider",
		Commands: []*cli.Command{
			{
				Name:  "login",
				Usage: "Capture an authorization code via a loopback redirect",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "Path to configuration file",
						Value:   "config.toml",
					},
					&cli.IntFlag{
						Name:  "timeout",
						Usage: "Milliseconds to wait for the redirect",
						Value: 120000,
					},
				},
				Action: r.AuthLogin,
			},
		},
	}
}
