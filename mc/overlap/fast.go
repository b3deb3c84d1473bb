package overlap

import (
	"math"

	"github.com/hardsphere-sim/hardsphere-sim/mc"
)

// minCells is the smallest grid the link-cell scheme supports. Below it
// the 27-cell neighborhood wraps onto itself, so the oracle falls back to
// the direct scan.
const minCells = 3

// Fast checks overlaps through a link-cell grid. Cells are at least one
// sphere diameter wide, so every overlap partner of an atom lies in the
// 27-cell neighborhood of its cell. The grid is rebuilt per query, which
// keeps the oracle stateless and interchangeable with the direct scan.
type Fast struct{}

// NewFast returns the link-cell oracle.
func NewFast() *Fast {
	return &Fast{}
}

// Describe identifies the oracle in run output.
func (f *Fast) Describe() string {
	return "Fast overlap checking"
}

// Overlap reports whether any pair of atoms in r overlaps.
func (f *Fast) Overlap(box float64, r []mc.Vec3) bool {
	sc := cellsPerSide(box)
	if sc < minCells {
		var slow Slow
		return slow.Overlap(box, r)
	}
	cl := newCellList(sc, r)
	boxSq := box * box
	for i := range r {
		ci := cl.cellOf(r[i])
		for dx := -1; dx <= 1; dx++ {
			for dy := -1; dy <= 1; dy++ {
				for dz := -1; dz <= 1; dz++ {
					idx := cl.index(wrapCell(ci[0]+dx, sc), wrapCell(ci[1]+dy, sc), wrapCell(ci[2]+dz, sc))
					for j := cl.head[idx]; j >= 0; j = cl.next[j] {
						if j <= i {
							continue
						}
						if r[i].Sub(r[j]).MinImage().NormSq()*boxSq < 1.0 {
							return true
						}
					}
				}
			}
		}
	}
	return false
}

// OverlapOne reports whether the atom at ri overlaps any atom in others.
func (f *Fast) OverlapOne(ri mc.Vec3, box float64, others []mc.Vec3) bool {
	sc := cellsPerSide(box)
	if sc < minCells {
		var slow Slow
		return slow.OverlapOne(ri, box, others)
	}
	cl := newCellList(sc, others)
	boxSq := box * box
	ci := cl.cellOf(ri)
	for dx := -1; dx <= 1; dx++ {
		for dy := -1; dy <= 1; dy++ {
			for dz := -1; dz <= 1; dz++ {
				idx := cl.index(wrapCell(ci[0]+dx, sc), wrapCell(ci[1]+dy, sc), wrapCell(ci[2]+dz, sc))
				for j := cl.head[idx]; j >= 0; j = cl.next[j] {
					if ri.Sub(others[j]).MinImage().NormSq()*boxSq < 1.0 {
						return true
					}
				}
			}
		}
	}
	return false
}

// cellsPerSide sizes the grid so each cell spans at least one sphere
// diameter: floor(box) cells across a box of length box diameters.
func cellsPerSide(box float64) int {
	return int(box)
}

// cellList is a head/next linked list of atom indices per cell.
type cellList struct {
	sc   int
	head []int
	next []int
}

func newCellList(sc int, r []mc.Vec3) *cellList {
	cl := &cellList{
		sc:   sc,
		head: make([]int, sc*sc*sc),
		next: make([]int, len(r)),
	}
	for i := range cl.head {
		cl.head[i] = -1
	}
	for i := range r {
		ci := cl.cellOf(r[i])
		idx := cl.index(ci[0], ci[1], ci[2])
		cl.next[i] = cl.head[idx]
		cl.head[idx] = i
	}
	return cl
}

// cellOf bins a canonical-image position into its cell. Indices are
// clamped so float rounding at the upper box face cannot escape the grid.
func (cl *cellList) cellOf(v mc.Vec3) [3]int {
	var ci [3]int
	for k := 0; k < 3; k++ {
		c := int(math.Floor((v[k] + 0.5) * float64(cl.sc)))
		if c < 0 {
			c = 0
		} else if c >= cl.sc {
			c = cl.sc - 1
		}
		ci[k] = c
	}
	return ci
}

func (cl *cellList) index(x, y, z int) int {
	return (x*cl.sc+y)*cl.sc + z
}

// wrapCell folds a neighbor cell coordinate back onto the periodic grid.
func wrapCell(c, sc int) int {
	if c < 0 {
		return c + sc
	}
	if c >= sc {
		return c - sc
	}
	return c
}
