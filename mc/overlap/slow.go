// Package overlap implements the hard-sphere overlap oracles. The slow
// oracle is a direct pair scan; the fast oracle sorts atoms into link
// cells first. Both answer exactly the same queries: two spheres overlap
// when their minimum-image separation is below one diameter.
package overlap

import "github.com/hardsphere-sim/hardsphere-sim/mc"

// Slow checks overlaps by scanning every candidate pair directly.
type Slow struct{}

// NewSlow returns the direct-scan oracle.
func NewSlow() *Slow {
	return &Slow{}
}

// Describe identifies the oracle in run output.
func (s *Slow) Describe() string {
	return "Slow overlap checking"
}

// Overlap reports whether any pair of atoms in r overlaps.
func (s *Slow) Overlap(box float64, r []mc.Vec3) bool {
	for i := 0; i < len(r)-1; i++ {
		if s.OverlapOne(r[i], box, r[i+1:]) {
			return true
		}
	}
	return false
}

// OverlapOne reports whether the atom at ri overlaps any atom in others.
func (s *Slow) OverlapOne(ri mc.Vec3, box float64, others []mc.Vec3) bool {
	boxSq := box * box
	for _, rj := range others {
		rij := ri.Sub(rj).MinImage()
		if rij.NormSq()*boxSq < 1.0 {
			return true
		}
	}
	return false
}
