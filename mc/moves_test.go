package mc

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// === RandomTranslate Tests ===

func TestRandomTranslate_BoundedDisplacement(t *testing.T) {
	// BDD: Each component moves at most drMax before wrapping
	rng := rand.New(rand.NewSource(11))
	const drMax = 0.1
	origin := Vec3{0, 0, 0}

	for i := 0; i < 1000; i++ {
		moved := RandomTranslate(drMax, origin, rng)
		for k := 0; k < 3; k++ {
			if math.Abs(moved[k]) > drMax {
				t.Fatalf("trial %d component %d displaced by %v, max %v", i, k, moved[k], drMax)
			}
		}
	}
}

func TestRandomTranslate_WrapsAtBoundary(t *testing.T) {
	// BDD: Moves off the cell face re-enter on the opposite side
	rng := rand.New(rand.NewSource(12))
	near := Vec3{0.499, 0.499, 0.499}

	for i := 0; i < 1000; i++ {
		moved := RandomTranslate(0.05, near, rng)
		for k := 0; k < 3; k++ {
			if moved[k] < -0.5 || moved[k] >= 0.5 {
				t.Fatalf("component %d = %v outside [-0.5, 0.5)", k, moved[k])
			}
		}
	}
}

func TestRandomTranslate_Deterministic(t *testing.T) {
	a := RandomTranslate(0.15, Vec3{0.1, 0.2, 0.3}, rand.New(rand.NewSource(5)))
	b := RandomTranslate(0.15, Vec3{0.1, 0.2, 0.3}, rand.New(rand.NewSource(5)))
	assert.Equal(t, a, b)
}

func TestRandomTranslate_ConsumesThreeDraws(t *testing.T) {
	rng, src := newCountingRand(6)
	RandomTranslate(0.15, Vec3{}, rng)
	assert.Equal(t, 3, src.calls)
}

// === ProposeRescale Tests ===

func TestProposeRescale_ZeroAmplitudeIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(8))
	boxNew, denScale := ProposeRescale(6.5, 0.0, rng)
	assert.Equal(t, 6.5, boxNew)
	assert.Equal(t, 1.0, denScale)
}

func TestProposeRescale_BoundsAndConsistency(t *testing.T) {
	// BDD: ln(box) moves by at most dbMax, and denScale is exactly (V/V')
	rng := rand.New(rand.NewSource(9))
	const (
		box   = 5.0
		dbMax = 0.1
	)
	lo := box * math.Exp(-dbMax)
	hi := box * math.Exp(dbMax)

	for i := 0; i < 1000; i++ {
		boxNew, denScale := ProposeRescale(box, dbMax, rng)
		if boxNew < lo || boxNew > hi {
			t.Fatalf("trial %d: boxNew %v outside [%v, %v]", i, boxNew, lo, hi)
		}
		wantScale := math.Pow(box/boxNew, 3)
		assert.InDelta(t, wantScale, denScale, 1e-12)
	}
}

func TestProposeRescale_ConsumesOneDraw(t *testing.T) {
	rng, src := newCountingRand(10)
	ProposeRescale(5.0, 0.005, rng)
	assert.Equal(t, 1, src.calls)
}

// === RescaleDelta Tests ===

func TestRescaleDelta_HandComputed(t *testing.T) {
	// n=2, P=1.5, box 1 -> 2: delta = 1.5*(8-1) + 3*ln(1/8)
	denScale := 1.0 / 8.0
	got := RescaleDelta(2, 1.5, 1.0, 2.0, denScale)
	want := 1.5*7.0 + 3.0*math.Log(denScale)
	assert.InDelta(t, want, got, 1e-12)
}

func TestRescaleDelta_IdentityRescaleIsFree(t *testing.T) {
	got := RescaleDelta(100, 4.0, 3.0, 3.0, 1.0)
	assert.Equal(t, 0.0, got)
}

func TestRescaleDelta_JacobianPenalizesCompressionAtZeroPressure(t *testing.T) {
	// BDD: With P=0 the only contribution is the (n+1)ln(V/V') sampling
	// weight, which opposes compression and favors expansion
	boxNew := 2.9
	denScale := math.Pow(3.0/boxNew, 3)
	assert.Positive(t, RescaleDelta(10, 0.0, 3.0, boxNew, denScale))

	boxNew = 3.1
	denScale = math.Pow(3.0/boxNew, 3)
	assert.Negative(t, RescaleDelta(10, 0.0, 3.0, boxNew, denScale))
}

func TestRescaleDelta_ExponentScalesWithParticleCountPlusOne(t *testing.T) {
	// Doubling ln(V/V')'s prefactor requires 2(n+1)-1 particles, not 2n
	denScale := 0.5
	base := RescaleDelta(0, 0.0, 1.0, 1.0, denScale) // 1*ln(denScale)
	assert.InDelta(t, math.Log(denScale), base, 1e-12)

	n9 := RescaleDelta(9, 0.0, 1.0, 1.0, denScale) // 10*ln(denScale)
	assert.InDelta(t, 10.0*math.Log(denScale), n9, 1e-12)
}
