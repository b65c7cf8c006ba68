package fs

import (
	"time"

	"github.com/aretw0/introspection"
)

// RepositoryState exposes internal state for observability.
type RepositoryState struct {
	Path          string     `json:"path"`
	Pattern       string     `json:"pattern"`
	Jobs          int        `json:"jobs"`
	WatcherActive bool       `json:"watcher_active"`
	LastList      *time.Time `json:"last_list,omitempty"`
	LastCount     int        `json:"last_count"`
}

// State implements introspection.Introspectable.
func (r *Repository) State() any {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return RepositoryState{
		Path:          r.Path,
		Pattern:       r.config.Pattern,
		Jobs:          r.config.Jobs,
		WatcherActive: r.watcherActive,
		LastList:      r.lastList,
		LastCount:     r.lastCount,
	}
}

// ComponentType implements introspection.Component.
func (r *Repository) ComponentType() string {
	return "fs-repository"
}

var _ introspection.Introspectable = (*Repository)(nil)
var _ introspection.Component = (*Repository)(nil)

func (r *Repository) setWatcherActive(active bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.watcherActive = active
}
