package surface

import (
	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// A Field is a scalar value for every cell of a grid.
//
// Values are stored in row-major order with x as the
// slowest axis, matching a NumPy array of shape
// (Mx, My, Mz).
type Field struct {
	Mx, My, Mz int
	Data       []float64
}

// NewField creates a zero field.
func NewField(mx, my, mz int) *Field {
	return &Field{
		Mx:   mx,
		My:   my,
		Mz:   mz,
		Data: make([]float64, mx*my*mz),
	}
}

// Shape gets the array shape of the field.
func (f *Field) Shape() []int {
	return []int{f.Mx, f.My, f.Mz}
}

// Index gets the offset of a cell in Data.
func (f *Field) Index(i, j, k int) int {
	return (i*f.My+j)*f.Mz + k
}

// At gets the value at integer coordinates.
func (f *Field) At(i, j, k int) float64 {
	return f.Data[f.Index(i, j, k)]
}

// Set sets the value at integer coordinates.
func (f *Field) Set(i, j, k int, v float64) {
	f.Data[f.Index(i, j, k)] = v
}

// Mask creates a field which is 1 wherever f is at least
// threshold and 0 elsewhere.
func (f *Field) Mask(threshold float64) *Field {
	res := NewField(f.Mx, f.My, f.Mz)
	for i, v := range f.Data {
		if v >= threshold {
			res.Data[i] = 1
		}
	}
	return res
}

// Stats summarizes the values of a field.
type Stats struct {
	Min  float64
	Max  float64
	Mean float64

	// Fraction is the fraction of cells whose value is at
	// least the threshold.
	Fraction float64
}

// Stats computes summary statistics of the field.
func (f *Field) Stats(threshold float64) Stats {
	if len(f.Data) == 0 {
		return Stats{}
	}
	var above int
	for _, v := range f.Data {
		if v >= threshold {
			above++
		}
	}
	return Stats{
		Min:      floats.Min(f.Data),
		Max:      floats.Max(f.Data),
		Mean:     stat.Mean(f.Data, nil),
		Fraction: float64(above) / float64(len(f.Data)),
	}
}

// sample fills a field by evaluating fn at the physical
// coordinates of every cell.
func sample(mx, my, mz int, wx, wy, wz WaveDimensions,
	fn func(x, y, z float64) float64) *Field {
	f := NewField(mx, my, mz)
	xs := axis(mx, wx)
	ys := axis(my, wy)
	zs := axis(mz, wz)
	essentials.ConcurrentMap(0, mx, func(i int) {
		x := xs[i]
		for j, y := range ys {
			offset := f.Index(i, j, 0)
			for k, z := range zs {
				f.Data[offset+k] = fn(x, y, z)
			}
		}
	})
	return f
}

// axis gets the phases omega*x of every cell along one
// axis, where cells are spread evenly over the length.
func axis(m int, w WaveDimensions) []float64 {
	res := make([]float64, m)
	step := w.Length / float64(m)
	for i := range res {
		res[i] = w.Omega * float64(i) * step
	}
	return res
}
