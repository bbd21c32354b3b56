package platform

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/TimRka/Notes-manager-PL/pkg/adapters/fs"
	"github.com/TimRka/Notes-manager-PL/pkg/adapters/sqlite"
	"github.com/TimRka/Notes-manager-PL/pkg/core"
)

// Init builds and initializes the repository selected by the options.
// The uri argument is adapter-specific: the store file for the flat-file
// adapters, the database file for sqlite.
func Init(uri string, opts ...Option) (core.Repository, error) {
	o := applyOptions(opts)

	if o.repository != nil {
		return o.repository, nil
	}

	var repo core.Repository
	var err error

	o.adapter = strings.ToLower(strings.TrimSpace(o.adapter))
	switch o.adapter {
	case AdapterFS, AdapterJSON, AdapterYAML, "yml":
		repo, err = initFS(uri, o)
	case AdapterSQLite:
		repo, err = initSQLite(uri, o)
	default:
		return nil, core.NewError(core.KindValidation,
			fmt.Sprintf("invalid adapter '%s'. Allowed values: %s", o.adapter, strings.Join(Adapters, ", ")))
	}
	if err != nil {
		return nil, err
	}

	if err := repo.Initialize(context.Background()); err != nil {
		return nil, err
	}
	return repo, nil
}

func idPolicy(o *options) core.IDPolicy {
	if p, ok := o.config["id_policy"].(core.IDPolicy); ok && p != "" {
		return p
	}
	return core.IDPolicyMax
}

func loggerOf(o *options) *slog.Logger {
	if o.logger != nil {
		return o.logger
	}
	return slog.New(slog.DiscardHandler)
}

// initFS handles the initialization logic for the flat-file adapters.
func initFS(path string, o *options) (core.Repository, error) {
	if path == "" {
		return nil, core.NewError(core.KindValidation, "store path must not be empty")
	}
	strict, _ := o.config["strict"].(bool)
	versioning, _ := o.config["versioning"].(bool)
	systemDir, _ := o.config["system_dir"].(string)

	var serializer fs.Serializer
	if o.adapter != AdapterFS {
		var err error
		if serializer, err = fs.SerializerByName(o.adapter); err != nil {
			return nil, err
		}
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve store path: %w", err)
	}

	return fs.NewRepository(fs.Config{
		Path:       absPath,
		SystemDir:  systemDir,
		Serializer: serializer,
		IDPolicy:   idPolicy(o),
		Strict:     strict,
		Versioning: versioning,
		Logger:     loggerOf(o),
	}), nil
}

// initSQLite handles the initialization logic for the SQLite adapter.
func initSQLite(path string, o *options) (core.Repository, error) {
	if path == "" {
		return nil, core.NewError(core.KindValidation, "database path must not be empty")
	}
	strict, _ := o.config["strict"].(bool)
	if versioning, _ := o.config["versioning"].(bool); versioning {
		loggerOf(o).Warn("versioning is not supported by the sqlite adapter, ignoring")
	}

	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve database path: %w", err)
	}

	return sqlite.NewRepository(sqlite.Config{
		Path:     absPath,
		IDPolicy: idPolicy(o),
		Strict:   strict,
		Logger:   loggerOf(o),
	}), nil
}
