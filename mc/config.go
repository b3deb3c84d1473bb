package mc

// Configuration is the complete mutable state of the Markov chain: N hard
// spheres of unit diameter in a cubic periodic box of edge Box, positions
// held in fractional coordinates in [-0.5, 0.5).
//
// One Configuration is created per run from the initial snapshot, mutated
// in place by every accepted move, and snapshotted (in physical units) at
// block ends and at run end. The Driver is its only writer.
type Configuration struct {
	N   int     // particle count, fixed for the run
	Box float64 // cubic cell edge length in sigma units
	R   []Vec3  // fractional positions, len N
}

// NewConfiguration builds a Configuration from a snapshot given in
// physical (sigma) units: positions are divided by box and wrapped into
// the periodic cell.
func NewConfiguration(box float64, physical []Vec3) *Configuration {
	r := make([]Vec3, len(physical))
	for i, p := range physical {
		r[i] = p.Scale(1.0 / box).Wrap()
	}
	return &Configuration{N: len(r), Box: box, R: r}
}

// Volume returns the cell volume box^3.
func (c *Configuration) Volume() float64 {
	return c.Box * c.Box * c.Box
}

// Density returns the number density n/box^3.
func (c *Configuration) Density() float64 {
	return float64(c.N) / c.Volume()
}

// Physical returns a fresh copy of the positions scaled back to physical
// (sigma) units, for snapshot writes.
func (c *Configuration) Physical() []Vec3 {
	out := make([]Vec3, len(c.R))
	for i, ri := range c.R {
		out[i] = ri.Scale(c.Box)
	}
	return out
}
