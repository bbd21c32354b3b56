package platform

import (
	"log/slog"

	"github.com/TimRka/Notes-manager-PL/pkg/core"
)

// Adapter names accepted by WithAdapter.
const (
	// AdapterFS picks the flat-file format from the store extension.
	AdapterFS     = "fs"
	AdapterJSON   = "json"
	AdapterYAML   = "yaml"
	AdapterSQLite = "sqlite"
)

// Adapters lists every adapter name.
var Adapters = []string{AdapterFS, AdapterJSON, AdapterYAML, AdapterSQLite}

// options holds the internal configuration for the notebook service.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	adapter    string
	config     map[string]any
}

// Option defines a functional option for configuring the notebook.
type Option func(*options)

// defaultOptions returns the default configuration.
func defaultOptions() *options {
	return &options{
		adapter: AdapterFS,
		config:  make(map[string]any),
	}
}

func applyOptions(opts []Option) *options {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger for the service and its adapter.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRepository injects a custom storage adapter (e.g. a mock).
// If provided, the adapter selected by WithAdapter is skipped.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithAdapter selects the storage adapter by name: "fs", "json", "yaml" or "sqlite".
// Defaults to "fs".
func WithAdapter(name string) Option {
	return func(o *options) {
		o.adapter = name
	}
}

// WithIDPolicy selects how new ids are derived. Defaults to core.IDPolicyMax.
func WithIDPolicy(policy core.IDPolicy) Option {
	return func(o *options) {
		o.config["id_policy"] = policy
	}
}

// WithStrict makes loading fail on malformed records instead of skipping them.
func WithStrict(strict bool) Option {
	return func(o *options) {
		o.config["strict"] = strict
	}
}

// WithVersioning commits the flat-file store to Git after every change.
// Ignored by the sqlite adapter.
func WithVersioning(enabled bool) Option {
	return func(o *options) {
		o.config["versioning"] = enabled
	}
}

// WithSystemDir sets the bookkeeping directory next to a flat-file store.
// Defaults to ".notebook".
func WithSystemDir(name string) Option {
	return func(o *options) {
		o.config["system_dir"] = name
	}
}
