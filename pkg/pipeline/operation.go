package pipeline

import (
	"github.com/arthur-debert/polkadot/pkg/errors"
	"github.com/arthur-debert/polkadot/pkg/logging"
)

// Effect is the part of an operation that differs between kinds.
type Effect interface {
	// Name is the operation kind used in records and logs.
	Name() string
	// Args are the bound arguments, destination excluded, in display order.
	Args() []Arg
	// Apply performs the real side effect on the resolved destination.
	// Contained failures are emitted as records; a returned error is a fault.
	Apply(ctx *Context, dest string, emit Emit) error
}

// Operation adapts an Effect to the Unit protocol.
type Operation struct {
	effect Effect
	path   string
	deps   []Unit

	state State
	ctx   *Context
	dest  string
}

// NewOperation declares an operation on path. Nothing runs until it is driven.
func NewOperation(effect Effect, path string, deps ...Unit) *Operation {
	return &Operation{
		effect: effect,
		path:   path,
		deps:   deps,
	}
}

func (o *Operation) Name() string         { return o.effect.Name() }
func (o *Operation) State() State         { return o.state }
func (o *Operation) Dependencies() []Unit { return o.deps }

// Path is the destination as declared.
func (o *Operation) Path() string { return o.path }

// Destination is the resolved destination, empty until Bind.
func (o *Operation) Destination() string { return o.dest }

// Prime readies the unit for Bind.
func (o *Operation) Prime() error {
	if o.state != StatePending {
		return o.stateError("prime", StatePending)
	}
	o.state = StatePrimed
	return nil
}

// Bind stores the context and resolves the destination.
func (o *Operation) Bind(ctx *Context) error {
	if o.state != StatePrimed {
		return o.stateError("bind", StatePrimed)
	}
	if ctx == nil {
		return errors.Newf(errors.ErrUnitState, "%s %s: bind requires a context", o.Name(), o.path)
	}
	o.ctx = ctx
	o.dest = ctx.Resolve(o.path)
	o.state = StateBound
	return nil
}

// Drain drives the dependencies, then applies or describes the effect.
func (o *Operation) Drain(emit Emit) error {
	if o.state != StateBound {
		return o.stateError("drain", StateBound)
	}
	if emit == nil {
		emit = func(Record) {}
	}
	o.state = StateDraining

	logger := logging.GetLogger("pipeline.operation").With().
		Str("operation", o.Name()).
		Str("path", o.dest).
		Logger()

	for _, dep := range o.deps {
		if err := Drive(dep, o.ctx, emit); err != nil {
			o.state = StateFailed
			return err
		}
	}

	if o.ctx.DryRun() {
		record := o.Describe()
		logger.Info().Str("call", record.String()).Msg("Dry run")
		emit(record)
		o.state = StateDone
		return nil
	}

	if err := o.effect.Apply(o.ctx, o.dest, emit); err != nil {
		o.state = StateFailed
		logger.Debug().Err(err).Msg("Operation faulted")
		return errors.Wrapf(err, errors.ErrUnitFault, "%s %s", o.Name(), o.dest)
	}

	o.state = StateDone
	return nil
}

// Describe returns the dry-run record for the bound unit.
func (o *Operation) Describe() Record {
	return Record{
		Operation: o.Name(),
		Path:      o.dest,
		Args:      o.effect.Args(),
		Status:    StatusDescribed,
	}
}

func (o *Operation) stateError(call string, want State) error {
	return errors.Newf(errors.ErrUnitState, "%s %s: cannot %s while %s (want %s)", o.Name(), o.path, call, o.state, want).
		WithDetail("state", o.state.String())
}
