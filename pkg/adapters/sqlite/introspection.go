package sqlite

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path     string     `json:"path"`
	Open     bool       `json:"open"`
	IDPolicy string     `json:"id_policy"`
	Strict   bool       `json:"strict"`
	Notes    int        `json:"notes"`
	Skipped  int        `json:"skipped,omitempty"`
	LastSave *time.Time `json:"last_save,omitempty"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.Lock()
	defer r.mu.Unlock()

	return RepositoryState{
		Path:     r.Path,
		Open:     r.db != nil,
		IDPolicy: string(r.config.IDPolicy),
		Strict:   r.config.Strict,
		Notes:    r.loaded,
		Skipped:  r.skipped,
		LastSave: r.lastSave,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "sqlite-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)
