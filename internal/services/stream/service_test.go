package stream_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/services/stream"
	"github.com/temirov/dirtree/internal/types"
)

func memoryTree(t *testing.T) afero.Fs {
	t.Helper()
	fileSystem := afero.NewMemMapFs()
	require.NoError(t, fileSystem.MkdirAll("/root/nested", 0o755))
	require.NoError(t, afero.WriteFile(fileSystem, "/root/nested/example.txt", []byte("tree"), 0o600))
	require.NoError(t, afero.WriteFile(fileSystem, "/root/skip.log", []byte("log"), 0o600))
	return fileSystem
}

func collectEvents(t *testing.T, produce func(chan<- stream.Event) error) ([]stream.Event, error) {
	t.Helper()
	events := make(chan stream.Event)
	done := make(chan error, 1)
	go func() {
		defer close(events)
		done <- produce(events)
	}()
	var collected []stream.Event
	for event := range events {
		collected = append(collected, event)
	}
	return collected, <-done
}

func TestStreamTreeEmitsOrderedEvents(t *testing.T) {
	fileSystem := memoryTree(t)

	events, err := collectEvents(t, func(ch chan<- stream.Event) error {
		options := stream.TreeOptions{
			Root:           "/root",
			MaxDepth:       commands.UnlimitedDepth,
			IgnorePatterns: []string{"*.log"},
			FileSystem:     fileSystem,
		}
		return stream.StreamTree(context.Background(), options, ch)
	})
	require.NoError(t, err)

	require.Len(t, events, 4)
	require.Equal(t, stream.EventKindStart, events[0].Kind)
	require.Equal(t, "/root", events[0].Path)
	require.NotNil(t, events[0].Start)
	require.Equal(t, commands.UnlimitedDepth, events[0].Start.MaxDepth)
	require.Equal(t, []string{"*.log"}, events[0].Start.IgnorePatterns)

	require.Equal(t, stream.EventKindEntry, events[1].Kind)
	require.Equal(t, types.TreeRecord{Depth: 0, Kind: types.EntryKindDirectory, Name: "nested", Path: filepath.Join("/root", "nested")}, *events[1].Entry)
	require.Equal(t, stream.EventKindEntry, events[2].Kind)
	require.Equal(t, types.TreeRecord{Depth: 1, Kind: types.EntryKindLeaf, Name: "example.txt", Path: filepath.Join("/root", "nested", "example.txt")}, *events[2].Entry)

	require.Equal(t, stream.EventKindDone, events[3].Kind)
	for _, event := range events {
		require.Equal(t, stream.SchemaVersion, event.Version)
		require.False(t, event.EmittedAt.IsZero())
	}
}

func TestStreamTreeReturnsRootErrors(t *testing.T) {
	events, err := collectEvents(t, func(ch chan<- stream.Event) error {
		return stream.StreamTree(context.Background(), stream.TreeOptions{Root: "/missing", FileSystem: afero.NewMemMapFs()}, ch)
	})
	require.Error(t, err)
	require.Len(t, events, 1)
	require.Equal(t, stream.EventKindStart, events[0].Kind)
}

func TestStreamTreeRejectsEmptyRoot(t *testing.T) {
	err := stream.StreamTree(context.Background(), stream.TreeOptions{}, make(chan stream.Event))
	require.Error(t, err)
}

func TestStreamTreeHonorsCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := stream.StreamTree(ctx, stream.TreeOptions{Root: "/root", FileSystem: memoryTree(t)}, make(chan stream.Event))
	require.ErrorIs(t, err, context.Canceled)
}
