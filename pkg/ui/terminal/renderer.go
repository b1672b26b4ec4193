// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	"github.com/arthur-debert/polkadot/pkg/ui/styles"
)

// Renderer provides rich terminal output using the style registry
type Renderer struct {
	output io.Writer
	styles styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer) *Renderer {
	return &Renderer{output: w, styles: styles.Default}
}

// RenderResult renders a styled line per record followed by the summary
func (r *Renderer) RenderResult(result *pipeline.Result) error {
	var b strings.Builder
	if result.DryRun {
		b.WriteString(r.styles.Get("Header").Render("Dry run, nothing was changed"))
		b.WriteString("\n")
	}
	for _, rec := range result.Records {
		b.WriteString(r.line(rec))
		b.WriteString("\n")
	}
	b.WriteString(r.styles.Get("Summary").Render(result.Summary()))
	b.WriteString("\n")

	_, err := io.WriteString(r.output, b.String())
	return err
}

func (r *Renderer) line(rec pipeline.Record) string {
	badge := r.styles.Get(statusStyle(rec.Status)).Render(string(rec.Status))

	args := make([]string, 0, len(rec.Args))
	for _, arg := range rec.Args {
		args = append(args, fmt.Sprintf("%s=%v", arg.Name, arg.Value))
	}

	parts := []string{
		badge,
		r.styles.Get("Operation").Render(rec.Operation),
		r.styles.Get("FilePath").Render(rec.Path),
	}
	if len(args) > 0 {
		parts = append(parts, r.styles.Get("Muted").Render(strings.Join(args, " ")))
	}
	if rec.Message != "" {
		parts = append(parts, r.styles.Get("Muted").Render(rec.Message))
	}
	return strings.Join(parts, " ")
}

func statusStyle(s pipeline.Status) string {
	switch s {
	case pipeline.StatusApplied:
		return "Applied"
	case pipeline.StatusSkipped:
		return "Skipped"
	case pipeline.StatusFailed:
		return "Failed"
	default:
		return "Described"
	}
}

// RenderError renders an error, one configuration problem per line
func (r *Renderer) RenderError(err error) error {
	label := r.styles.Get("Error").Render("Error")
	if problems, ok := errors.GetErrorDetails(err)["problems"].([]string); ok && len(problems) > 0 {
		var b strings.Builder
		fmt.Fprintf(&b, "%s: invalid configuration [%s]\n", label, errors.GetErrorCode(err))
		for _, p := range problems {
			fmt.Fprintf(&b, "  %s\n", r.styles.Get("Muted").Render(p))
		}
		_, werr := io.WriteString(r.output, b.String())
		return werr
	}
	_, werr := fmt.Fprintf(r.output, "%s: %v\n", label, err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
