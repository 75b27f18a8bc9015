// Package output renders traversal event streams as text, JSON, or XML.
package output

import (
	"fmt"
	"io"

	"github.com/temirov/dirtree/internal/services/stream"
	"github.com/temirov/dirtree/internal/types"
)

// StreamRenderer consumes events in order and writes the final output on Flush.
type StreamRenderer interface {
	Handle(event stream.Event) error
	Flush() error
}

// NewStreamRenderer returns the renderer for the requested format.
func NewStreamRenderer(format string, stdout, stderr io.Writer) (StreamRenderer, error) {
	switch format {
	case types.FormatRaw:
		return NewRawStreamRenderer(stdout, stderr), nil
	case types.FormatJSON:
		return NewJSONStreamRenderer(stdout, stderr), nil
	case types.FormatXML:
		return NewXMLStreamRenderer(stdout, stderr), nil
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
}

// documentCollector accumulates events into a TreeDocument for the structured renderers.
type documentCollector struct {
	stderr   io.Writer
	document types.TreeDocument
}

func newDocumentCollector(stderr io.Writer) documentCollector {
	return documentCollector{
		stderr:   stderr,
		document: types.TreeDocument{Entries: []types.TreeRecord{}},
	}
}

func (collector *documentCollector) handle(event stream.Event) {
	switch event.Kind {
	case stream.EventKindStart:
		collector.document.Root = event.Path
		if event.Start != nil {
			collector.document.MaxDepth = event.Start.MaxDepth
			collector.document.Ignored = append([]string(nil), event.Start.IgnorePatterns...)
		}
	case stream.EventKindEntry:
		if event.Entry != nil {
			collector.document.Entries = append(collector.document.Entries, *event.Entry)
		}
	case stream.EventKindWarning:
		if event.Message != nil && collector.stderr != nil {
			fmt.Fprintln(collector.stderr, event.Message.Message)
		}
	}
}
