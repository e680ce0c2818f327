package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/Overboard/AskMinstrel/internal/auth"
	"github.com/Overboard/AskMinstrel/internal/cache"
	"github.com/Overboard/AskMinstrel/internal/catalog"
	"github.com/Overboard/AskMinstrel/internal/provider"
	"github.com/Overboard/AskMinstrel/internal/shared"
	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"
)

// Runner holds all dependencies for CLI commands and provides methods for each command action.
type Runner struct {
	logger *log.Logger
	output io.Writer
}

// RunnerOpts contains configuration options for creating a Runner.
type RunnerOpts struct {
	Logger *log.Logger
	Output io.Writer
}

// NewRunner creates a new Runner with the provided configuration
func NewRunner(opts RunnerOpts) *Runner {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	if opts.Output == nil {
		opts.Output = os.Stdout
	}
	return &Runner{logger: opts.Logger, output: opts.Output}
}

// loadConfig resolves the configuration for a command, falling back to the
// embedded defaults when the file does not exist.
func (r *Runner) loadConfig(cmd *cli.Command) *shared.Config {
	path := cmd.String("config")
	if _, err := os.Stat(path); err != nil {
		r.logger.Debug("no config file, using defaults", "path", path)
		return shared.DefaultConfig()
	}

	config, err := shared.LoadConfig(path)
	if err != nil {
		r.logger.Warn("unreadable config file, using defaults", "path", path, "err", err)
		return shared.DefaultConfig()
	}
	return config
}

// setup wires config → credentials → token manager → cache store → catalog
// client → provider for one command invocation.
func (r *Runner) setup(cmd *cli.Command) (*provider.Provider, error) {
	config := r.loadConfig(cmd)

	creds, err := auth.LoadCredentials(config.Credentials.Path)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewManager(creds, config.Catalog.TokenURL, config.Token.Path, r.logger)
	if err != nil {
		return nil, err
	}

	store, err := cache.NewStore(config.Cache.Dir, r.logger)
	if err != nil {
		return nil, err
	}
	if cmd.Bool("no-cache") || !config.Cache.Enabled {
		if err := store.Clear(); err != nil {
			return nil, err
		}
	}

	client, err := catalog.NewClient(catalog.ClientOpts{
		BaseURL:   config.Catalog.BaseURL,
		Tokens:    tokens,
		RateLimit: config.Catalog.RateLimit,
		Timeout:   time.Duration(config.Catalog.TimeoutSeconds) * time.Second,
		Logger:    r.logger,
	})
	if err != nil {
		return nil, err
	}

	return provider.New(client, store, r.logger), nil
}

// writeJSON writes data as JSON to the runner's output
func (r *Runner) writeJSON(data any, pretty bool) error {
	encoder := json.NewEncoder(r.output)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	return encoder.Encode(data)
}

// SearchCatalog performs a single-type catalog search and prints the summary records.
func (r *Runner) SearchCatalog(ctx context.Context, cmd *cli.Command) error {
	entityType := cmd.StringArg("type")
	query := cmd.StringArg("query")
	if entityType == "" || query == "" {
		return fmt.Errorf("%w: search needs a type and a query", shared.ErrMissingArgument)
	}

	p, err := r.setup(cmd)
	if err != nil {
		return err
	}

	records, err := p.Search(ctx, entityType, query)
	if err != nil {
		return err
	}
	return r.writeJSON(records, cmd.Bool("pretty"))
}

// ArtistDetail prints an artist's detail record and album summaries.
func (r *Runner) ArtistDetail(ctx context.Context, cmd *cli.Command) error {
	return r.entityDetail(ctx, cmd, "artist")
}

// AlbumDetail prints an album's detail record and track summaries.
func (r *Runner) AlbumDetail(ctx context.Context, cmd *cli.Command) error {
	return r.entityDetail(ctx, cmd, "album")
}

func (r *Runner) entityDetail(ctx context.Context, cmd *cli.Command, entityType string) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: %s ID is required", shared.ErrMissingArgument, entityType)
	}

	p, err := r.setup(cmd)
	if err != nil {
		return err
	}

	detail, err := p.EntityDetail(ctx, entityType, id)
	if err != nil {
		return err
	}
	return r.writeJSON(detail, cmd.Bool("pretty"))
}

// TrackDetail prints a track's detail record and audio features.
func (r *Runner) TrackDetail(ctx context.Context, cmd *cli.Command) error {
	id := cmd.StringArg("id")
	if id == "" {
		return fmt.Errorf("%w: track ID is required", shared.ErrMissingArgument)
	}

	p, err := r.setup(cmd)
	if err != nil {
		return err
	}

	info, err := p.TrackDetail(ctx, id)
	if err != nil {
		return err
	}
	return r.writeJSON(info, cmd.Bool("pretty"))
}

// CacheClear removes the on-disk cache.
func (r *Runner) CacheClear(ctx context.Context, cmd *cli.Command) error {
	config := r.loadConfig(cmd)

	store, err := cache.NewStore(config.Cache.Dir, r.logger)
	if err != nil {
		return err
	}
	if err := store.Clear(); err != nil {
		return err
	}

	fmt.Fprintf(r.output, "cleared cache at %s\n", store.Root())
	return nil
}

// ConfigInit writes the example configuration to the given path.
func (r *Runner) ConfigInit(ctx context.Context, cmd *cli.Command) error {
	path := cmd.String("config")
	if err := shared.CreateConfigFile(path); err != nil {
		return err
	}

	fmt.Fprintf(r.output, "wrote %s\n", path)
	return nil
}
