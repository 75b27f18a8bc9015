package output

import (
	"encoding/json"
	"io"

	"github.com/temirov/dirtree/internal/services/stream"
)

type jsonStreamRenderer struct {
	stdout    io.Writer
	collector documentCollector
}

// NewJSONStreamRenderer buffers entries and writes a single indented JSON document on Flush.
func NewJSONStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &jsonStreamRenderer{stdout: stdout, collector: newDocumentCollector(stderr)}
}

func (renderer *jsonStreamRenderer) Handle(event stream.Event) error {
	renderer.collector.handle(event)
	return nil
}

func (renderer *jsonStreamRenderer) Flush() error {
	encoder := json.NewEncoder(renderer.stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(renderer.collector.document)
}
