package commands

import (
	"errors"
	"iter"
	"strings"

	"github.com/temirov/dirtree/internal/types"
)

const (
	// indentUnit is repeated once per depth level.
	indentUnit = "  "
	// directoryConnector prefixes directory lines.
	directoryConnector = "├── "
	// leafConnector prefixes leaf lines.
	leafConnector = "└── "
	// directoryMarker terminates directory names.
	directoryMarker = "/"
)

var errStopIteration = errors.New("tree iteration stopped")

// CollectTree walks the tree and returns every emitted record in traversal order.
func CollectTree(options TreeStreamOptions) ([]types.TreeRecord, error) {
	var records []types.TreeRecord
	streamError := StreamTree(options, func(record types.TreeRecord) error {
		records = append(records, record)
		return nil
	})
	if streamError != nil {
		return nil, streamError
	}
	return records, nil
}

// TreeRecords returns a lazy sequence over the traversal. The walk advances only as the
// consumer pulls records; breaking out of the loop stops it. A traversal error is yielded
// once as the final pair.
func TreeRecords(options TreeStreamOptions) iter.Seq2[types.TreeRecord, error] {
	return func(yield func(types.TreeRecord, error) bool) {
		streamError := StreamTree(options, func(record types.TreeRecord) error {
			if !yield(record, nil) {
				return errStopIteration
			}
			return nil
		})
		if streamError != nil && !errors.Is(streamError, errStopIteration) {
			yield(types.TreeRecord{}, streamError)
		}
	}
}

// FormatTreeLine renders a record as one indented tree line without a trailing newline.
func FormatTreeLine(record types.TreeRecord) string {
	var builder strings.Builder
	builder.WriteString(strings.Repeat(indentUnit, record.Depth))
	if record.IsDirectory() {
		builder.WriteString(directoryConnector)
		builder.WriteString(record.Name)
		builder.WriteString(directoryMarker)
		return builder.String()
	}
	builder.WriteString(leafConnector)
	builder.WriteString(record.Name)
	return builder.String()
}

// RenderTreeLines renders records in order, one line each.
func RenderTreeLines(records []types.TreeRecord) []string {
	lines := make([]string, 0, len(records))
	for _, record := range records {
		lines = append(lines, FormatTreeLine(record))
	}
	return lines
}
