package mc

import "math"

// Vec3 is a position or displacement in fractional (box = 1) coordinates.
type Vec3 [3]float64

// Add returns v + w componentwise.
func (v Vec3) Add(w Vec3) Vec3 {
	return Vec3{v[0] + w[0], v[1] + w[1], v[2] + w[2]}
}

// Sub returns v - w componentwise.
func (v Vec3) Sub(w Vec3) Vec3 {
	return Vec3{v[0] - w[0], v[1] - w[1], v[2] - w[2]}
}

// Scale returns v with every component multiplied by s.
func (v Vec3) Scale(s float64) Vec3 {
	return Vec3{v[0] * s, v[1] * s, v[2] * s}
}

// NormSq returns the squared Euclidean length of v.
func (v Vec3) NormSq() float64 {
	return v[0]*v[0] + v[1]*v[1] + v[2]*v[2]
}

// Wrap maps every component into the half-open interval [-0.5, 0.5), the
// canonical image under cubic periodic boundaries. Every Configuration
// position satisfies this after any update.
func (v Vec3) Wrap() Vec3 {
	return Vec3{wrap(v[0]), wrap(v[1]), wrap(v[2])}
}

// MinImage maps a separation vector onto its nearest periodic image,
// every component in [-0.5, 0.5].
func (v Vec3) MinImage() Vec3 {
	return Vec3{
		v[0] - math.RoundToEven(v[0]),
		v[1] - math.RoundToEven(v[1]),
		v[2] - math.RoundToEven(v[2]),
	}
}

// wrap maps x into [-0.5, 0.5). Unlike round-half-even folding, the
// floor form keeps the interval strictly half-open: wrap(0.5) == -0.5.
func wrap(x float64) float64 {
	return x - math.Floor(x+0.5)
}
