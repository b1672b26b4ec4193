// Package json provides machine-readable JSON output
package json

import (
	"encoding/json"
	"io"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
)

// Renderer provides JSON output for machine consumption
type Renderer struct {
	encoder *json.Encoder
}

// New creates a new JSON renderer
func New(output io.Writer) *Renderer {
	encoder := json.NewEncoder(output)
	encoder.SetIndent("", "  ")
	return &Renderer{encoder: encoder}
}

// RenderResult renders the result as a single JSON document
func (r *Renderer) RenderResult(result *pipeline.Result) error {
	return r.encoder.Encode(result)
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.encoder.Encode(map[string]interface{}{
		"error":   err.Error(),
		"code":    errors.GetErrorCode(err),
		"details": errors.GetErrorDetails(err),
	})
}

// RenderMessage renders a simple message as JSON
func (r *Renderer) RenderMessage(msg string) error {
	return r.encoder.Encode(map[string]string{"message": msg})
}
