// Package grid describes regular 3D lattices of cells.
package grid

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// refineTolerance is how far L/H may stray from an
// integer before a refinement is rejected.
const refineTolerance = 1e-9

// A Grid is a regular lattice with Mx*My*Mz cells of size
// Hx*Hy*Hz spanning a box of size Lx*Ly*Lz.
type Grid struct {
	Mx, My, Mz int
	Hx, Hy, Hz float64
	Lx, Ly, Lz float64
}

// New creates a grid with unit cells, so that the
// physical lengths equal the cell counts.
func New(x, y, z int) (*Grid, error) {
	if x <= 0 || y <= 0 || z <= 0 {
		return nil, errors.Errorf("new grid: dimensions must be positive, got (%d, %d, %d)",
			x, y, z)
	}
	return &Grid{
		Mx: x, My: y, Mz: z,
		Hx: 1, Hy: 1, Hz: 1,
		Lx: float64(x), Ly: float64(y), Lz: float64(z),
	}, nil
}

// Refine scales the cell size by factor while keeping the
// physical lengths fixed.
//
// A factor below 1 produces more, smaller cells.
// If the result does not tile the box with a whole number
// of cells, an error is returned and g is left unchanged.
func (g *Grid) Refine(factor float64) error {
	if !(factor > 0) || math.IsInf(factor, 1) {
		return errors.Errorf("refine grid: factor must be positive and finite, got %v", factor)
	}
	hs := [3]float64{g.Hx * factor, g.Hy * factor, g.Hz * factor}
	ls := [3]float64{g.Lx, g.Ly, g.Lz}
	var ms [3]int
	for i, h := range hs {
		exact := ls[i] / h
		rounded := math.Round(exact)
		if math.Abs(exact-rounded) > refineTolerance*math.Max(1, exact) {
			return errors.Errorf("refine grid: length %v is not a multiple of spacing %v",
				ls[i], h)
		}
		if rounded < 1 {
			return errors.Errorf("refine grid: spacing %v exceeds length %v", h, ls[i])
		}
		ms[i] = int(rounded)
	}
	g.Mx, g.My, g.Mz = ms[0], ms[1], ms[2]
	g.Hx, g.Hy, g.Hz = hs[0], hs[1], hs[2]
	return nil
}

// Shape gets the cell counts as an array.
func (g *Grid) Shape() [3]int {
	return [3]int{g.Mx, g.My, g.Mz}
}

// Lengths gets the physical lengths as an array.
func (g *Grid) Lengths() [3]float64 {
	return [3]float64{g.Lx, g.Ly, g.Lz}
}

// Spacings gets the cell sizes as an array.
func (g *Grid) Spacings() [3]float64 {
	return [3]float64{g.Hx, g.Hy, g.Hz}
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(mx=%d, my=%d, mz=%d, hx=%g, hy=%g, hz=%g, lx=%g, ly=%g, lz=%g)",
		g.Mx, g.My, g.Mz, g.Hx, g.Hy, g.Hz, g.Lx, g.Ly, g.Lz)
}
