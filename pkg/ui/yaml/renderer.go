// Package yaml provides machine-readable YAML output
package yaml

import (
	"io"

	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/pipeline"
	yamlv3 "gopkg.in/yaml.v3"
)

// Renderer writes one YAML document per call
type Renderer struct {
	output io.Writer
}

// New creates a new YAML renderer
func New(output io.Writer) *Renderer {
	return &Renderer{output: output}
}

func (r *Renderer) encode(v interface{}) error {
	encoder := yamlv3.NewEncoder(r.output)
	encoder.SetIndent(2)
	if err := encoder.Encode(v); err != nil {
		return err
	}
	return encoder.Close()
}

// RenderResult renders the result as a YAML document
func (r *Renderer) RenderResult(result *pipeline.Result) error {
	return r.encode(result)
}

// RenderError renders an error with its code and details
func (r *Renderer) RenderError(err error) error {
	return r.encode(map[string]interface{}{
		"error":   err.Error(),
		"code":    string(errors.GetErrorCode(err)),
		"details": errors.GetErrorDetails(err),
	})
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	return r.encode(map[string]string{"message": msg})
}
