package mc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// countingSource wraps a rand.Source and counts every draw, so tests can
// assert exactly which code paths consume randomness.
type countingSource struct {
	src   rand.Source
	calls int
}

func (c *countingSource) Int63() int64 {
	c.calls++
	return c.src.Int63()
}

func (c *countingSource) Seed(seed int64) {
	c.src.Seed(seed)
}

func newCountingRand(seed int64) (*rand.Rand, *countingSource) {
	src := &countingSource{src: rand.NewSource(seed)}
	return rand.New(src), src
}

// === Metropolis Tests ===

func TestMetropolis_DownhillAcceptsWithoutDraw(t *testing.T) {
	// BDD: delta <= 0 accepts unconditionally and consumes no randomness
	rng, src := newCountingRand(1)

	for _, delta := range []float64{0.0, -0.001, -5.0, -1e9} {
		if !Metropolis(delta, rng) {
			t.Errorf("Metropolis(%v) = false, want true", delta)
		}
	}
	assert.Equal(t, 0, src.calls, "downhill moves must not draw")
}

func TestMetropolis_GuardRejectsWithoutDraw(t *testing.T) {
	// BDD: deltas beyond the exponent guard reject before drawing
	rng, src := newCountingRand(1)

	for _, delta := range []float64{75.001, 100.0, math.Inf(1)} {
		if Metropolis(delta, rng) {
			t.Errorf("Metropolis(%v) = true, want false", delta)
		}
	}
	assert.Equal(t, 0, src.calls, "guarded moves must not draw")
}

func TestMetropolis_UphillDrawsExactlyOnce(t *testing.T) {
	rng, src := newCountingRand(2)

	const trials = 100
	for i := 0; i < trials; i++ {
		Metropolis(0.5, rng)
	}
	assert.Equal(t, trials, src.calls, "one uniform draw per uphill decision")
}

func TestMetropolis_UphillAcceptanceFrequency(t *testing.T) {
	// BDD: Uphill moves accept with probability exp(-delta)
	rng := rand.New(rand.NewSource(42))

	const (
		delta  = 1.0
		trials = 100000
	)
	accepted := 0
	for i := 0; i < trials; i++ {
		if Metropolis(delta, rng) {
			accepted++
		}
	}

	got := float64(accepted) / float64(trials)
	want := math.Exp(-delta)
	assert.InDelta(t, want, got, 0.01, "acceptance frequency far from exp(-delta)")
}

func TestMetropolis_SteepUphillRarelyAccepts(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	accepted := 0
	for i := 0; i < 10000; i++ {
		if Metropolis(20.0, rng) {
			accepted++
		}
	}
	assert.Zero(t, accepted, "delta=20 acceptance probability ~2e-9, accepting in 1e4 trials is a defect")
}
