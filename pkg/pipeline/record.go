package pipeline

import (
	"fmt"
	"strings"
)

// Status classifies a Record.
type Status string

const (
	// StatusDescribed marks the single record a unit emits under dry-run
	StatusDescribed Status = "described"
	// StatusApplied marks a performed effect
	StatusApplied Status = "applied"
	// StatusSkipped marks a benign contained failure, such as an existing clone
	StatusSkipped Status = "skipped"
	// StatusFailed marks a contained failure that was logged and not propagated
	StatusFailed Status = "failed"
)

// Arg is one bound argument of an operation.
type Arg struct {
	Name  string      `json:"name" yaml:"name"`
	Value interface{} `json:"value" yaml:"value"`
}

// Record is one result emitted while draining a unit.
type Record struct {
	Operation string `json:"operation" yaml:"operation"`
	Path      string `json:"path" yaml:"path"`
	Args      []Arg  `json:"args,omitempty" yaml:"args,omitempty"`
	Status    Status `json:"status" yaml:"status"`
	Message   string `json:"message,omitempty" yaml:"message,omitempty"`
}

// String renders the record as a call, e.g. copy("/home/me/.vim/*", source="vim/*", template=true).
func (r Record) String() string {
	parts := []string{fmt.Sprintf("%q", r.Path)}
	for _, arg := range r.Args {
		parts = append(parts, fmt.Sprintf("%s=%s", arg.Name, formatValue(arg.Value)))
	}
	return fmt.Sprintf("%s(%s)", r.Operation, strings.Join(parts, ", "))
}

func formatValue(v interface{}) string {
	switch val := v.(type) {
	case string:
		return fmt.Sprintf("%q", val)
	default:
		return fmt.Sprintf("%v", val)
	}
}

// Emit receives records as units produce them.
type Emit func(Record)
