package mc

// Store persists configurations as tagged snapshot files. Positions cross
// this boundary in physical units (box lengths and coordinates in sphere
// diameters); the box-scaled representation is internal to the simulation.
type Store interface {
	// Read loads the snapshot carrying the given tag.
	Read(tag string) (n int, box float64, r []Vec3, err error)

	// Write saves a snapshot under the given tag, replacing any previous
	// snapshot with the same tag.
	Write(tag string, box float64, r []Vec3) error
}
