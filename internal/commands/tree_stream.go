// Package commands contains the core directory traversal behind the tree command.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/temirov/dirtree/internal/types"
	"github.com/temirov/dirtree/internal/utils"
)

// UnlimitedDepth disables the depth ceiling.
const UnlimitedDepth = -1

const (
	// warningSkipSubdirFormat is used when a subdirectory cannot be listed.
	warningSkipSubdirFormat = "Warning: Skipping subdirectory %s due to error: %v"

	errorNilHandler          = "tree stream handler is nil"
	errorStatRootFormat      = "reading tree root %s: %w"
	errorRootNotDirFormat    = "tree root %s is not a directory"
	errorReadDirectoryFormat = "reading directory %s: %w"
)

// TreeStreamOptions configures a traversal.
//
// MaxDepth is the deepest depth whose entries are emitted; a directory at depth d
// is descended into only when d < MaxDepth. UnlimitedDepth (or any negative value)
// removes the ceiling. IgnorePatterns are matched against bare entry names at every depth.
type TreeStreamOptions struct {
	Root           string
	MaxDepth       int
	IgnorePatterns []string
	FileSystem     afero.Fs
	Warn           func(message string)
}

// DefaultTreeStreamOptions returns options with no depth ceiling and no patterns.
func DefaultTreeStreamOptions(root string) TreeStreamOptions {
	return TreeStreamOptions{
		Root:     root,
		MaxDepth: UnlimitedDepth,
	}
}

type treeStreamContext struct {
	options TreeStreamOptions
	handler func(types.TreeRecord) error
}

// StreamTree walks options.Root depth-first in pre-order and calls handler once per
// non-ignored entry. The root itself is not emitted; its children are at depth 0.
// Failing to list the root is an error. Failing to list a nested directory is reported
// through Warn and the traversal continues with that directory's siblings.
// A handler error stops the traversal and is returned unchanged.
func StreamTree(options TreeStreamOptions, handler func(types.TreeRecord) error) error {
	if handler == nil {
		return errors.New(errorNilHandler)
	}

	ctx := treeStreamContext{options: options, handler: handler}
	if ctx.options.FileSystem == nil {
		ctx.options.FileSystem = afero.NewOsFs()
	}
	if ctx.options.Warn == nil {
		ctx.options.Warn = func(string) {}
	}

	rootInfo, statErr := ctx.options.FileSystem.Stat(options.Root)
	if statErr != nil {
		return fmt.Errorf(errorStatRootFormat, options.Root, statErr)
	}
	if !rootInfo.IsDir() {
		return fmt.Errorf(errorRootNotDirFormat, options.Root)
	}

	return ctx.walkDirectory(options.Root, 0)
}

func (ctx *treeStreamContext) walkDirectory(path string, depth int) error {
	entries, readErr := afero.ReadDir(ctx.options.FileSystem, path)
	if readErr != nil {
		if depth == 0 {
			return fmt.Errorf(errorReadDirectoryFormat, path, readErr)
		}
		ctx.options.Warn(fmt.Sprintf(warningSkipSubdirFormat, path, readErr))
		return nil
	}

	for _, entry := range entries {
		entryName := entry.Name()
		if utils.MatchesAnyPattern(entryName, ctx.options.IgnorePatterns) {
			continue
		}

		childPath := filepath.Join(path, entryName)
		record := types.TreeRecord{
			Depth: depth,
			Kind:  classifyEntry(entry),
			Name:  entryName,
			Path:  childPath,
		}
		if err := ctx.handler(record); err != nil {
			return err
		}

		if !record.IsDirectory() || !ctx.canDescend(depth) {
			continue
		}
		if err := ctx.walkDirectory(childPath, depth+1); err != nil {
			return err
		}
	}

	return nil
}

func (ctx *treeStreamContext) canDescend(depth int) bool {
	return ctx.options.MaxDepth < 0 || depth < ctx.options.MaxDepth
}

// classifyEntry relies on lstat information, so a symbolic link is a leaf even when it points at a directory.
func classifyEntry(entry os.FileInfo) types.EntryKind {
	if entry.IsDir() {
		return types.EntryKindDirectory
	}
	return types.EntryKindLeaf
}
