package output

import (
	"encoding/xml"
	"io"

	"github.com/temirov/dirtree/internal/services/stream"
)

type xmlStreamRenderer struct {
	stdout    io.Writer
	collector documentCollector
}

// NewXMLStreamRenderer buffers entries and writes a single indented XML document on Flush.
func NewXMLStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &xmlStreamRenderer{stdout: stdout, collector: newDocumentCollector(stderr)}
}

func (renderer *xmlStreamRenderer) Handle(event stream.Event) error {
	renderer.collector.handle(event)
	return nil
}

func (renderer *xmlStreamRenderer) Flush() error {
	if _, err := io.WriteString(renderer.stdout, xml.Header); err != nil {
		return err
	}
	encoder := xml.NewEncoder(renderer.stdout)
	encoder.Indent("", "  ")
	if err := encoder.Encode(renderer.collector.document); err != nil {
		return err
	}
	if err := encoder.Flush(); err != nil {
		return err
	}
	_, err := io.WriteString(renderer.stdout, "\n")
	return err
}
