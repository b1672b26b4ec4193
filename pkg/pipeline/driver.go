package pipeline

import (
	"fmt"

	"github.com/arthur-debert/polkadot/pkg/logging"
	"github.com/rs/zerolog"
)

// Result is everything a run emitted, in order.
type Result struct {
	Records []Record `json:"records" yaml:"records"`
	DryRun  bool     `json:"dry_run" yaml:"dry_run"`
}

// Count returns how many records have the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, rec := range r.Records {
		if rec.Status == status {
			n++
		}
	}
	return n
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithObserver registers fn to see every record as it is emitted.
func WithObserver(fn Emit) DriverOption {
	return func(d *Driver) {
		d.observers = append(d.observers, fn)
	}
}

// Driver runs top-level units sequentially in declaration order.
type Driver struct {
	logger    zerolog.Logger
	observers []Emit
}

// NewDriver creates a Driver.
func NewDriver(opts ...DriverOption) *Driver {
	d := &Driver{logger: logging.GetLogger("pipeline.driver")}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Run fully drives each unit in order. The first fault stops the run; the
// records emitted up to that point are returned with the error.
func (d *Driver) Run(units []Unit, ctx *Context) (*Result, error) {
	done := logging.LogOperationStart(d.logger, "run")
	defer done()

	result := &Result{DryRun: ctx.DryRun()}
	emit := func(rec Record) {
		result.Records = append(result.Records, rec)
		for _, observe := range d.observers {
			observe(rec)
		}
	}

	d.logger.Info().
		Int("units", len(units)).
		Bool("dryRun", ctx.DryRun()).
		Str("home", ctx.HomeDirectory()).
		Msg("Starting pipeline")

	for i, u := range units {
		if err := Drive(u, ctx, emit); err != nil {
			d.logger.Error().
				Err(err).
				Int("index", i).
				Str("operation", u.Name()).
				Int("remaining", len(units)-i-1).
				Msg("Pipeline aborted")
			return result, err
		}
	}

	d.logger.Info().
		Int("records", len(result.Records)).
		Int("failed", result.Count(StatusFailed)).
		Int("skipped", result.Count(StatusSkipped)).
		Msg("Pipeline completed")
	return result, nil
}

// Summary is a one line tally of the run.
func (r *Result) Summary() string {
	if r.DryRun {
		return fmt.Sprintf("dry run: %d operation(s) described", r.Count(StatusDescribed))
	}
	return fmt.Sprintf("%d applied, %d skipped, %d failed",
		r.Count(StatusApplied), r.Count(StatusSkipped), r.Count(StatusFailed))
}
