// Command grid_to_stl converts a scalar field saved as a
// NumPy array (.npy or .npz) into a triangle mesh and
// saves it as an STL file.
//
// The array must be three dimensional and stored in C
// order with shape (x, y, z), as written by ideal_surface.
// The mesh encloses every point where the field is at
// least the threshold.
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/langmuir-surface/isosurface"
	"github.com/unixpickle/langmuir-surface/npy"
	"github.com/unixpickle/langmuir-surface/surface"
)

func main() {
	if err := newCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newCommand() *cobra.Command {
	var threshold float64
	var spacing float64
	var outputPath string

	cmd := &cobra.Command{
		Use:   "grid_to_stl [flags] <input.npy>",
		Short: "Convert a scalar field into an STL isosurface",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !(spacing > 0) {
				return errors.Errorf("spacing must be positive, got %v", spacing)
			}
			log.Println("Converting", args[0], "...")
			field, err := LoadField(args[0])
			if err != nil {
				return err
			}
			hs := [3]float64{spacing, spacing, spacing}
			if err := isosurface.SaveSTL(outputPath, field, hs, threshold); err != nil {
				return err
			}
			log.Println("Saved", outputPath)
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	flags := cmd.Flags()
	flags.Float64Var(&threshold, "threshold", 0, "minimum value for containment")
	flags.Float64Var(&spacing, "spacing", 1, "distance between samples")
	flags.StringVar(&outputPath, "output", "output.stl", "output STL file")
	essentials.Must(cmd.MarkFlagFilename("output", "stl"))
	return cmd
}

// LoadField reads a 3D array from a .npy file, or the
// "image" member (else the first member) of a .npz file.
func LoadField(path string) (*surface.Field, error) {
	var shape []int
	var data []float64
	if filepath.Ext(path) == ".npz" {
		arrays, err := npy.LoadArchive(path)
		if err != nil {
			return nil, err
		}
		if len(arrays) == 0 {
			return nil, errors.Errorf("load field: archive %s is empty", path)
		}
		chosen := arrays[0]
		for _, a := range arrays {
			if a.Name == "image" {
				chosen = a
				break
			}
		}
		shape, data = chosen.Shape, chosen.Data
	} else {
		var err error
		shape, data, err = npy.Load(path)
		if err != nil {
			return nil, err
		}
	}
	if len(shape) != 3 {
		return nil, errors.Errorf("load field: expected 3 dimensions, got shape %v", shape)
	}
	return &surface.Field{Mx: shape[0], My: shape[1], Mz: shape[2], Data: data}, nil
}
