package mc

// Oracle answers hard-sphere overlap queries against a configuration in
// box-scaled coordinates. Implementations live under mc/overlap; the slow
// and fast variants are interchangeable and must agree on every input.
type Oracle interface {
	// Overlap reports whether any pair of atoms in r overlaps at the
	// given box length. Sphere diameters are the unit of length.
	Overlap(box float64, r []Vec3) bool

	// OverlapOne reports whether the single atom at ri overlaps any atom
	// in others. The caller excludes the moving atom itself from others.
	OverlapOne(ri Vec3, box float64, others []Vec3) bool
}
