// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// Renderer provides plain text output without colors or styling
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

// RenderResult prints one line per record and a summary, e.g.
//
//	applied    mkdir("/home/me/bin")
func (r *Renderer) RenderResult(result *pipeline.Result) error {
	for _, rec := range result.Records {
		line := fmt.Sprintf("%-10s %s", rec.Status, rec)
		if rec.Message != "" {
			line += ": " + rec.Message
		}
		if _, err := fmt.Fprintln(r.output, line); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintln(r.output, result.Summary())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "Error: %v\n", err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
