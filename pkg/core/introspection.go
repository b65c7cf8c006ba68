package core

import (
	"time"

	"github.com/aretw0/introspection"
)

// ServiceState exposes internal state for observability.
type ServiceState struct {
	RepositoryType string     `json:"repository_type"`
	Repository     any        `json:"repository,omitempty"`
	Linter         any        `json:"linter,omitempty"`
	ValidationJobs int        `json:"validation_jobs"`
	SampleTimeout  string     `json:"sample_timeout,omitempty"`
	LastDocuments  int        `json:"last_documents"`
	LastProblems   int        `json:"last_problems"`
	LastCheck      *time.Time `json:"last_check,omitempty"`
}

// State implements introspection.Introspectable.
func (s *Service) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()

	state := ServiceState{
		RepositoryType: "unknown",
		LastDocuments:  s.lastDocuments,
		LastProblems:   s.lastProblems,
		LastCheck:      s.lastCheck,
	}
	if s.repo != nil {
		state.RepositoryType = "repository"
		if comp, ok := s.repo.(introspection.Component); ok {
			state.RepositoryType = comp.ComponentType()
		}
		if in, ok := s.repo.(introspection.Introspectable); ok {
			state.Repository = in.State()
		}
	}
	if s.validator != nil {
		if in, ok := s.validator.linter.(introspection.Introspectable); ok {
			state.Linter = in.State()
		}
		state.ValidationJobs = s.validator.jobs
		if s.validator.timeout > 0 {
			state.SampleTimeout = s.validator.timeout.String()
		}
	}
	return state
}

// ComponentType implements introspection.Component.
func (s *Service) ComponentType() string {
	return "service"
}

var _ introspection.Introspectable = (*Service)(nil)
var _ introspection.Component = (*Service)(nil)
