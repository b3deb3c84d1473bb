package mc

import (
	"math"
	"math/rand"
)

// RandomTranslate returns old displaced by a random vector whose
// components are uniform in [-drMax, +drMax], wrapped back into the
// periodic cell. drMax is in fractional (box = 1) units; three chain
// draws are consumed per call.
func RandomTranslate(drMax float64, old Vec3, rng *rand.Rand) Vec3 {
	var d Vec3
	for k := 0; k < 3; k++ {
		d[k] = (2.0*rng.Float64() - 1.0) * drMax
	}
	return old.Add(d).Wrap()
}

// ProposeRescale samples an isotropic volume move: ln(box) is displaced
// uniformly in [-dbMax, +dbMax), consuming one chain draw. It returns the
// proposed box edge and the density-scale factor V/V' that enters the
// acceptance exponent. Fractional positions are unchanged by a uniform
// rescale; only the box edge moves.
func ProposeRescale(box, dbMax float64, rng *rand.Rand) (boxNew, denScale float64) {
	zeta := 2.0*rng.Float64() - 1.0
	scale := math.Exp(zeta * dbMax)
	return box * scale, 1.0 / (scale * scale * scale)
}

// RescaleDelta is the dimensionless NPT acceptance exponent for a feasible
// rescale of n spheres from box to boxNew at fixed pressure (kT = 1):
//
//	delta = P*(V' - V) + (n+1)*ln(V/V')
//
// The n+1 factor is consistent with uniform log-volume sampling; n would
// match uniform volume sampling, which is not what ProposeRescale does.
func RescaleDelta(n int, pressure, box, boxNew, denScale float64) float64 {
	delta := pressure * (boxNew*boxNew*boxNew - box*box*box)
	return delta + float64(n+1)*math.Log(denScale)
}
