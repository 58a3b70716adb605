// Package vtk writes scalar fields as legacy VTK files
// which can be opened in ParaView.
package vtk

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/unixpickle/langmuir-surface/surface"
)

// An Array is a named scalar field stored in a VTK file.
type Array struct {
	Name  string
	Field *surface.Field
}

// Write encodes one or more fields of the same shape as an
// ASCII STRUCTURED_POINTS dataset.
func Write(w io.Writer, title string, spacing [3]float64, arrays ...Array) error {
	if len(arrays) == 0 {
		return errors.New("write vtk: no arrays")
	}
	shape := arrays[0].Field.Shape()
	for _, a := range arrays[1:] {
		s := a.Field.Shape()
		if s[0] != shape[0] || s[1] != shape[1] || s[2] != shape[2] {
			return errors.Errorf("write vtk: array %q has shape %v, expected %v", a.Name, s, shape)
		}
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, "# vtk DataFile Version 3.0")
	fmt.Fprintln(bw, title)
	fmt.Fprintln(bw, "ASCII")
	fmt.Fprintln(bw, "DATASET STRUCTURED_POINTS")
	fmt.Fprintf(bw, "DIMENSIONS %d %d %d\n", shape[0], shape[1], shape[2])
	fmt.Fprintln(bw, "ORIGIN 0 0 0")
	fmt.Fprintf(bw, "SPACING %g %g %g\n", spacing[0], spacing[1], spacing[2])
	fmt.Fprintf(bw, "POINT_DATA %d\n", shape[0]*shape[1]*shape[2])

	for _, a := range arrays {
		fmt.Fprintf(bw, "SCALARS %s double 1\n", a.Name)
		fmt.Fprintln(bw, "LOOKUP_TABLE default")

		// VTK points are ordered with x varying fastest.
		f := a.Field
		for k := 0; k < f.Mz; k++ {
			for j := 0; j < f.My; j++ {
				for i := 0; i < f.Mx; i++ {
					bw.WriteString(strconv.FormatFloat(f.At(i, j, k), 'g', -1, 64))
					bw.WriteByte('\n')
				}
			}
		}
	}
	return errors.Wrap(bw.Flush(), "write vtk")
}

// Save writes fields to a new VTK file at path.
func Save(path, title string, spacing [3]float64, arrays ...Array) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save vtk")
	}
	if err := Write(w, title, spacing, arrays...); err != nil {
		w.Close()
		return err
	}
	return errors.Wrap(w.Close(), "save vtk")
}
