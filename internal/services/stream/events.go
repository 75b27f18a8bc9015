package stream

import (
	"time"

	"github.com/temirov/dirtree/internal/types"
)

const SchemaVersion = 1

type EventKind string

const (
	EventKindStart   EventKind = "start"
	EventKindEntry   EventKind = "entry"
	EventKindWarning EventKind = "warning"
	EventKindDone    EventKind = "done"
)

// Event is one step of a traversal as seen by a renderer.
type Event struct {
	Version   int               `json:"version"`
	Kind      EventKind         `json:"kind"`
	Path      string            `json:"path,omitempty"`
	EmittedAt time.Time         `json:"emittedAt,omitempty"`
	Start     *StartEvent       `json:"start,omitempty"`
	Entry     *types.TreeRecord `json:"entry,omitempty"`
	Message   *LogEvent         `json:"message,omitempty"`
}

// StartEvent describes the traversal configuration.
type StartEvent struct {
	MaxDepth       int      `json:"maxDepth"`
	IgnorePatterns []string `json:"ignorePatterns,omitempty"`
}

type LogEvent struct {
	Level   string `json:"level,omitempty"`
	Message string `json:"message"`
}
