package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/desertthunder/daylight/internal/capture"
	"github.com/desertthunder/daylight/internal/fetch"
	"github.com/desertthunder/daylight/internal/shared"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	config     *shared.Config
	capture    *capture.Listener
	fetcher    *fetch.Client
	httpClient *http.Client
	logger     *log.Logger
	output     io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Config     *shared.Config
	Capture    *capture.Listener
	Fetcher    *fetch.Client
	HTTPClient *http.Client
	Logger     *log.Logger
	Output     io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Config == nil {
		opts.Config = shared.DefaultConfig()
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = http.DefaultClient
	}
	if opts.Capture == nil {
		opts.Capture = capture.NewListener(opts.Logger)
	}
	if opts.Fetcher == nil {
		timeout := time.Duration(opts.Config.Fetch.TimeoutSeconds) * time.Second
		opts.Fetcher = fetch.NewClient(nil, timeout, opts.Config.Fetch.RequestsPerSecond)
	}

	return &Runner{
		config:     opts.Config,
		capture:    opts.Capture,
		fetcher:    opts.Fetcher,
		httpClient: opts.HTTPClient,
		logger:     opts.Logger,
		output:     opts.Output,
	}
}

func (r *Runner) register() []*cli.Command {
	commands := []*cli.Command{}
	for _, fn := range [](func(*Runner) *cli.Command){
		setupCommand, authCommand, fetchCommand, themeCommand, cacheCommand,
	} {
		commands = append(commands, fn(r))
	}

	return commands
}

// loadConfig resolves the effective config for a command invocation,
// preferring the Runner's, then the --config file, then defaults.
func (r *Runner) loadConfig(configPath string) *shared.Config {
	if r.config != nil {
		return r.config
	}

	if _, err := os.Stat(configPath); err == nil {
		config, err := shared.LoadConfig(configPath)
		if err == nil {
			return config
		}
		r.logger.Warnf("failed to load config, using defaults %v", err)
	}

	return shared.DefaultConfig()
}

func (r *Runner) writeJSON(data any, pretty bool) error {
	var output []byte
	var err error

	if pretty {
		output, err = json.MarshalIndent(data, "", "  ")
	} else {
		output, err = json.Marshal(data)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	if _, err := r.output.Write(output); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}

	if _, err := r.output.Write([]byte("\n")); err != nil {
		return fmt.Errorf("failed to write newline: %w", err)
	}

	return nil
}

func (r *Runner) writePlain(format string, args ...any) error {
	text := fmt.Sprintf(format, args...)
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

func (r *Runner) writePlainln(format string, args ...any) error {
	text := "\n" + fmt.Sprintf(format, args...) + "\n"
	if _, err := r.output.Write([]byte(text)); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
