package core

import "context"

// Repository defines the contract for loading the documentation corpus.
// Adhering to this interface allows the core to be independent of where
// the markdown files live.
type Repository interface {
	// List returns every document of the corpus, in no particular order.
	List(ctx context.Context) ([]Document, error)
}

// Watchable defines an interface for repositories that can report changes.
type Watchable interface {
	// Watch emits an event whenever a document is created, modified or
	// deleted. The channel is closed when ctx is done.
	Watch(ctx context.Context) (<-chan Event, error)
}
