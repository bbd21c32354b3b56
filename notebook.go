package notebook

import (
	"io"
	"log/slog"

	"github.com/TimRka/Notes-manager-PL/internal/platform"
	"github.com/TimRka/Notes-manager-PL/pkg/commands"
	"github.com/TimRka/Notes-manager-PL/pkg/core"
)

// --- Configuration ---

// Option defines a functional option for configuring the notebook.
type Option = platform.Option

// Config is the on-disk configuration of the CLI.
type Config = platform.Config

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithRepository injects a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithAdapter selects the storage adapter by name ("fs", "json", "yaml", "sqlite").
func WithAdapter(name string) Option {
	return platform.WithAdapter(name)
}

// WithIDPolicy selects how new note ids are derived.
func WithIDPolicy(policy core.IDPolicy) Option {
	return platform.WithIDPolicy(policy)
}

// WithStrict makes loading fail on malformed records instead of skipping them.
func WithStrict(strict bool) Option {
	return platform.WithStrict(strict)
}

// WithVersioning commits the flat-file store to Git after every change.
func WithVersioning(enabled bool) Option {
	return platform.WithVersioning(enabled)
}

// WithSystemDir sets the bookkeeping directory next to a flat-file store.
func WithSystemDir(name string) Option {
	return platform.WithSystemDir(name)
}

// ResolveConfig finds and loads the CLI configuration.
func ResolveConfig(explicit string) (*Config, error) {
	return platform.ResolveConfig(explicit)
}

// NewLogger builds the logger described by the config's log section.
func NewLogger(c *Config, console io.Writer, verbose bool) (*slog.Logger, io.Closer) {
	return platform.NewLogger(c, console, verbose)
}

// --- Factory ---

// New creates a notebook service over the store at path.
func New(path string, opts ...Option) (*core.Service, error) {
	return platform.New(path, opts...)
}

// Init initializes a repository explicitly.
func Init(path string, opts ...Option) (core.Repository, error) {
	return platform.Init(path, opts...)
}

// Open creates the text command layer over the store at path.
func Open(path string, opts ...Option) (*commands.Commands, error) {
	svc, err := New(path, opts...)
	if err != nil {
		return nil, err
	}
	return commands.New(svc), nil
}
