package mc

import (
	"math"
	"math/rand"
)

// exponentGuard caps the argument of the Metropolis exponential. Deltas
// above it are rejected without drawing: the acceptance probability there
// (~2.6e-33) is beyond any statistical resolution, and the guard keeps
// exp out of subnormal range.
const exponentGuard = 75.0

// Metropolis conducts the acceptance test for a dimensionless energy-like
// delta (kT = 1). Downhill and flat moves (delta <= 0) accept without
// consuming a random draw; uphill moves accept with probability
// exp(-delta), decided against one fresh uniform sample from rng.
func Metropolis(delta float64, rng *rand.Rand) bool {
	if delta > exponentGuard {
		return false
	}
	if delta <= 0.0 {
		return true
	}
	return math.Exp(-delta) > rng.Float64()
}
