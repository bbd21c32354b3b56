package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path       string     `json:"path"`
	Format     string     `json:"format"`
	SystemDir  string     `json:"system_dir"`
	IDPolicy   string     `json:"id_policy"`
	Strict     bool       `json:"strict"`
	Versioning bool       `json:"versioning"`
	Notes      int        `json:"notes"`
	Skipped    int        `json:"skipped,omitempty"`
	LastSave   *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:       r.Path,
		Format:     r.serializer.Name(),
		SystemDir:  r.config.SystemDir,
		IDPolicy:   string(r.config.IDPolicy),
		Strict:     r.config.Strict,
		Versioning: r.config.Versioning,
		Notes:      r.loaded,
		Skipped:    r.skipped,
		LastSave:   r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
