// Package isosurface turns scalar fields into triangle
// meshes.
package isosurface

import (
	"math"

	"github.com/pkg/errors"
	"github.com/unixpickle/langmuir-surface/surface"
	"github.com/unixpickle/model3d/model3d"
)

// marchingCubesIters is the number of bisection steps used
// to place each mesh vertex on the isosurface.
const marchingCubesIters = 8

// A FieldSolid is a model3d.Solid containing every point
// where a trilinear interpolation of a field is at least
// Threshold.
type FieldSolid struct {
	Field *surface.Field

	// Spacing is the physical size of a cell along each
	// axis.
	Spacing [3]float64

	Threshold float64
}

// NewFieldSolid creates a solid for a field whose samples
// are spaced by spacing along each axis.
func NewFieldSolid(f *surface.Field, spacing [3]float64, threshold float64) (*FieldSolid, error) {
	if f.Mx < 2 || f.My < 2 || f.Mz < 2 {
		return nil, errors.Errorf("field solid: need at least 2 samples per axis, got %v",
			f.Shape())
	}
	for _, h := range spacing {
		if !(h > 0) {
			return nil, errors.Errorf("field solid: spacing must be positive, got %v", spacing)
		}
	}
	return &FieldSolid{Field: f, Spacing: spacing, Threshold: threshold}, nil
}

// Min gets the minimum of the bounding box.
func (f *FieldSolid) Min() model3d.Coord3D {
	return model3d.Coord3D{}
}

// Max gets the maximum of the bounding box, which is the
// position of the last sample along each axis.
func (f *FieldSolid) Max() model3d.Coord3D {
	return model3d.Coord3D{
		X: float64(f.Field.Mx-1) * f.Spacing[0],
		Y: float64(f.Field.My-1) * f.Spacing[1],
		Z: float64(f.Field.Mz-1) * f.Spacing[2],
	}
}

// Contains checks if the value at the point is at least
// the threshold.
//
// Points outside the bounding box are never contained, so
// that the resulting mesh is closed at the box faces.
func (f *FieldSolid) Contains(c model3d.Coord3D) bool {
	min, max := f.Min(), f.Max()
	if c.X < min.X || c.Y < min.Y || c.Z < min.Z || c.X > max.X || c.Y > max.Y || c.Z > max.Z {
		return false
	}
	return f.Interp(c) >= f.Threshold
}

// Interp gets a trilinear interpolated value for the field
// at the given point.
func (f *FieldSolid) Interp(c model3d.Coord3D) float64 {
	xs, xFracs := roundedCoords(c.X / f.Spacing[0])
	ys, yFracs := roundedCoords(c.Y / f.Spacing[1])
	zs, zFracs := roundedCoords(c.Z / f.Spacing[2])
	var value float64
	for i, x := range xs {
		xFrac := xFracs[i]
		for j, y := range ys {
			yFrac := yFracs[j]
			for k, z := range zs {
				zFrac := zFracs[k]
				value += xFrac * yFrac * zFrac * f.Get(x, y, z)
			}
		}
	}
	return value
}

// Get gets the exact value at integer coordinates.
// Out of bounds coordinates are clamped to the nearest
// sample.
func (f *FieldSolid) Get(x, y, z int) float64 {
	return f.Field.At(clamp(x, f.Field.Mx), clamp(y, f.Field.My), clamp(z, f.Field.Mz))
}

// Mesh extracts the isosurface as a triangle mesh.
func (f *FieldSolid) Mesh() *model3d.Mesh {
	delta := 0.5 * math.Min(math.Min(f.Spacing[0], f.Spacing[1]), f.Spacing[2])
	return model3d.MarchingCubesSearch(f, delta, marchingCubesIters)
}

// SaveSTL extracts the threshold isosurface of a field and
// saves it as an STL file.
func SaveSTL(path string, field *surface.Field, spacing [3]float64, threshold float64) error {
	solid, err := NewFieldSolid(field, spacing, threshold)
	if err != nil {
		return err
	}
	return errors.Wrap(solid.Mesh().SaveGroupedSTL(path), "save stl")
}

func clamp(i, size int) int {
	if i < 0 {
		return 0
	} else if i >= size {
		return size - 1
	}
	return i
}

func roundedCoords(c float64) (vals [2]int, fracs [2]float64) {
	min := int(math.Floor(c))
	max := min + 1
	minFrac := float64(max) - c
	maxFrac := 1 - minFrac
	return [2]int{min, max}, [2]float64{minFrac, maxFrac}
}
