package pipeline

// State is a unit's position in the drive protocol.
type State int

const (
	StatePending State = iota
	StatePrimed
	StateBound
	StateDraining
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StatePrimed:
		return "primed"
	case StateBound:
		return "bound"
	case StateDraining:
		return "draining"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Unit is a suspended operation driven through Prime, Bind and Drain.
type Unit interface {
	// Name is the operation kind, e.g. "mkdir".
	Name() string
	// State reports where the unit is in the protocol.
	State() State
	// Dependencies are drained, in order, before the unit's own effect.
	Dependencies() []Unit

	Prime() error
	Bind(ctx *Context) error
	Drain(emit Emit) error
}

// Drive runs u to completion with ctx. A unit that is already done is left alone.
func Drive(u Unit, ctx *Context, emit Emit) error {
	if u.State() == StateDone {
		return nil
	}
	if err := u.Prime(); err != nil {
		return err
	}
	if err := u.Bind(ctx); err != nil {
		return err
	}
	return u.Drain(emit)
}
