// Package core holds the error documentation domain: the parsed document
// model, the linter ports, the corpus validator and the renderer.
package core

import "fmt"

// EventType represents the type of change in the documentation directory.
type EventType string

const (
	EventCreate EventType = "CREATE"
	EventModify EventType = "MODIFY"
	EventDelete EventType = "DELETE"
)

// Event represents a change to a document file.
type Event struct {
	Type      EventType
	Path      string
	Timestamp int64 // Unix timestamp
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s", e.Type, e.Path)
}
