package main

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/unixpickle/langmuir-surface/grid"
	"github.com/unixpickle/langmuir-surface/isosurface"
	"github.com/unixpickle/langmuir-surface/npy"
	"github.com/unixpickle/langmuir-surface/output"
	"github.com/unixpickle/langmuir-surface/surface"
	"github.com/unixpickle/langmuir-surface/vtk"
)

const outputName = "image"

// Options configures a single surface generation.
type Options struct {
	Size    [3]int
	Width   [3]int
	Surface string

	Stub    string
	Spacing float64

	// Threshold is the level used for the summary, the VTK
	// mask, and the STL isosurface.
	Threshold float64

	VTK bool
	STL bool
	NPZ bool
}

// Validate checks that every band width divides the grid
// size along its axis.
func (o *Options) Validate() error {
	for i := range o.Size {
		if o.Width[i] <= 0 || o.Size[i]%o.Width[i] != 0 {
			return errors.New("lambda must be a multiple of grid size")
		}
	}
	return nil
}

// Generate samples the surface and writes every requested
// output file, printing progress to w.
func Generate(o *Options, w io.Writer) error {
	fn, ok := surface.Lookup(o.Surface)
	if !ok {
		return errors.Errorf("unknown surface: %s", o.Surface)
	}
	if !(o.Spacing > 0) {
		return &usageError{
			status: statusUsage,
			err:    errors.Errorf("spacing must be positive, got %v", o.Spacing),
		}
	}

	g, err := grid.New(o.Size[0], o.Size[1], o.Size[2])
	if err != nil {
		return err
	}
	if err := g.Refine(1.0 / o.Spacing); err != nil {
		return &usageError{status: statusUsage, err: err}
	}
	fmt.Fprintln(w, g)

	lengths := g.Lengths()
	var waves [3]surface.WaveDimensions
	for i := range waves {
		waves[i], err = surface.BandWaveDimensions(lengths[i], o.Width[i])
		if err != nil {
			return err
		}
		fmt.Fprintln(w, waves[i])
	}

	field := fn(g.Mx, g.My, g.Mz, waves[0], waves[1], waves[2])
	stats := field.Stats(o.Threshold)
	fmt.Fprintf(w, "field: min=%.6g, max=%.6g, mean=%.6g, fraction>=%g: %.6g\n",
		stats.Min, stats.Max, stats.Mean, o.Threshold, stats.Fraction)

	path := output.FormatOutput(o.Stub, outputName, "npy")
	if err := output.EnsureDir(path); err != nil {
		return err
	}
	if err := npy.Save(path, field.Shape(), field.Data); err != nil {
		return err
	}
	fmt.Fprintf(w, "saved: %s\n", path)

	if o.VTK {
		path := output.FormatOutput(o.Stub, outputName, "vtk")
		title := fmt.Sprintf("%s surface, threshold %g", o.Surface, o.Threshold)
		err := vtk.Save(path, title, g.Spacings(),
			vtk.Array{Name: outputName, Field: field},
			vtk.Array{Name: "mask", Field: field.Mask(o.Threshold)})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "saved: %s\n", path)
	}

	if o.NPZ {
		path := output.FormatOutput(o.Stub, outputName, "npz")
		mask := field.Mask(o.Threshold)
		err := npy.SaveArchive(path,
			npy.NamedArray{Name: outputName, Shape: field.Shape(), Data: field.Data},
			npy.NamedArray{Name: "mask", Shape: mask.Shape(), Data: mask.Data})
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "saved: %s\n", path)
	}

	if o.STL {
		path := output.FormatOutput(o.Stub, outputName, "stl")
		if err := isosurface.SaveSTL(path, field, g.Spacings(), o.Threshold); err != nil {
			return err
		}
		fmt.Fprintf(w, "saved: %s\n", path)
	}

	return nil
}
