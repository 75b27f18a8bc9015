// Package stream runs a tree traversal and publishes it as a channel of events.
package stream

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/types"
)

const warningLevel = "warning"

// TreeOptions configures StreamTree.
type TreeOptions struct {
	Root           string
	MaxDepth       int
	IgnorePatterns []string
	FileSystem     afero.Fs
}

type emitter struct {
	ctx context.Context
	out chan<- Event
}

func newEmitter(ctx context.Context, out chan<- Event) *emitter {
	if ctx == nil {
		ctx = context.Background()
	}
	return &emitter{ctx: ctx, out: out}
}

func (e *emitter) send(event Event) error {
	if e.out == nil {
		return fmt.Errorf("stream: event channel is nil")
	}
	event.Version = SchemaVersion
	if event.EmittedAt.IsZero() {
		event.EmittedAt = time.Now().UTC()
	}
	select {
	case <-e.ctx.Done():
		return e.ctx.Err()
	case e.out <- event:
		return nil
	}
}

func (e *emitter) warn(message string) {
	trimmed := strings.TrimRight(message, "\n")
	if trimmed == "" {
		return
	}
	_ = e.send(Event{
		Kind:    EventKindWarning,
		Message: &LogEvent{Level: warningLevel, Message: trimmed},
	})
}

// StreamTree emits a start event, one entry event per visited record in traversal
// order, warning events for skipped subdirectories, and a final done event.
// It returns early with the context error once ctx is cancelled.
func StreamTree(ctx context.Context, opts TreeOptions, out chan<- Event) error {
	if opts.Root == "" {
		return fmt.Errorf("stream: tree root path is empty")
	}

	emitter := newEmitter(ctx, out)
	startEvent := Event{
		Kind: EventKindStart,
		Path: opts.Root,
		Start: &StartEvent{
			MaxDepth:       opts.MaxDepth,
			IgnorePatterns: append([]string(nil), opts.IgnorePatterns...),
		},
	}
	if err := emitter.send(startEvent); err != nil {
		return err
	}

	walkOptions := commands.TreeStreamOptions{
		Root:           opts.Root,
		MaxDepth:       opts.MaxDepth,
		IgnorePatterns: opts.IgnorePatterns,
		FileSystem:     opts.FileSystem,
		Warn:           emitter.warn,
	}
	walkErr := commands.StreamTree(walkOptions, func(record types.TreeRecord) error {
		entry := record
		return emitter.send(Event{Kind: EventKindEntry, Path: record.Path, Entry: &entry})
	})
	if walkErr != nil {
		return walkErr
	}

	return emitter.send(Event{Kind: EventKindDone, Path: opts.Root})
}
