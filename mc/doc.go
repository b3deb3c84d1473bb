// Package mc provides the core constant-NPT Monte Carlo engine for a
// hard-sphere fluid in a cubic periodic box.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - config.go: the box-scaled configuration (box length plus positions in [-0.5, 0.5))
//   - moves.go: trial move generation (single-particle translation, isotropic volume rescale)
//   - driver.go: the run state machine (initialize → block loop → finalize)
//
// # Architecture
//
// The mc package defines interfaces and value types; implementations live
// in sub-packages:
//   - mc/overlap/: overlap oracles (direct pair scan, link-cell)
//   - mc/cnf/: configuration snapshot files (cnf.inp, cnf.out, block checkpoints)
//   - mc/averages/: block and run averaging with error estimates
//
// The cmd package binds one implementation of each interface per run, so the
// kernel never depends on a concrete oracle, store, or accumulator.
//
// # Key Interfaces
//
// The extension points are small interfaces:
//   - Oracle: hard-sphere overlap queries (whole configuration, single atom)
//   - Store: tagged snapshot persistence in physical units
//   - Statistics: block/run accumulation over the per-step observables
//
// Hard spheres have no potential energy, so Metropolis acceptance reduces to
// an overlap gate for particle moves; only the volume move weighs a real
// exponent (pressure-volume work plus the log-volume Jacobian).
package mc
