// Package pipeline implements polkadot's lazy, dependency-aware operation pipeline.
//
// # Units
//
// Every declared operation is a Unit: a suspended piece of work that does
// nothing when constructed. A driver moves a unit through three calls, always
// in the same order:
//
//  1. Prime readies the unit. Nothing observable happens.
//  2. Bind hands over the run's Context. The unit now knows its resolved
//     destination: relative paths are joined onto the home directory.
//  3. Drain drives every dependency (Prime, Bind, Drain, in declaration order)
//     and then performs the unit's own effect, emitting Records as it goes.
//     Under dry-run the effect is replaced by exactly one "described" Record.
//
// A unit that is already done is skipped when it is driven again. This lets a
// dependency be shared by reference between several declarations and run once.
// Cycles are not detected up front; re-entering a unit that is still draining
// fails with an UNIT_STATE error.
//
// # Failures
//
// Operations contain anticipated failures themselves (an existing clone, a
// failed download) and report them as skipped or failed Records. Any error
// returned from Drain is a fault: it aborts the parent unit and the Driver,
// and nothing already done is rolled back.
//
// # Driver
//
// Driver.Run walks the top-level units in declaration order, one at a time,
// and returns the concatenation of every Record emitted.
package pipeline
