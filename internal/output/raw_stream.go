package output

import (
	"fmt"
	"io"

	"github.com/temirov/dirtree/internal/commands"
	"github.com/temirov/dirtree/internal/services/stream"
)

const (
	// rawHeaderFormat introduces the rendered tree.
	rawHeaderFormat = "Directory structure of: %s\n"
	// RawSeparator is printed under the header line.
	RawSeparator = "────────────────────────────"
)

type rawStreamRenderer struct {
	stdout io.Writer
	stderr io.Writer
}

// NewRawStreamRenderer writes the header and one indented line per entry as events arrive.
func NewRawStreamRenderer(stdout, stderr io.Writer) StreamRenderer {
	return &rawStreamRenderer{stdout: stdout, stderr: stderr}
}

func (renderer *rawStreamRenderer) Handle(event stream.Event) error {
	switch event.Kind {
	case stream.EventKindStart:
		if _, err := fmt.Fprintf(renderer.stdout, rawHeaderFormat, event.Path); err != nil {
			return err
		}
		_, err := fmt.Fprintln(renderer.stdout, RawSeparator)
		return err
	case stream.EventKindEntry:
		if event.Entry == nil {
			return nil
		}
		_, err := fmt.Fprintln(renderer.stdout, commands.FormatTreeLine(*event.Entry))
		return err
	case stream.EventKindWarning:
		if event.Message != nil && renderer.stderr != nil {
			fmt.Fprintln(renderer.stderr, event.Message.Message)
		}
	}
	return nil
}

func (renderer *rawStreamRenderer) Flush() error {
	return nil
}
