package core

import (
	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType  string `json:"repository_type"`
	RepositoryState any    `json:"repository_state,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	repoType := "repository"
	var repoState any
	if comp, ok := s.repo.(introspection.Component); ok {
		repoType = comp.ComponentType()
	}
	if in, ok := s.repo.(introspection.Introspectable); ok {
		repoState = in.State()
	}

	return ServiceState{
		RepositoryType:  repoType,
		RepositoryState: repoState,
	}
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
