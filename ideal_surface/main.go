// Command ideal_surface samples an ideal implicit surface
// over a regular grid and saves it as a NumPy array.
//
// Each band width must evenly divide the corresponding
// grid dimension. The field is written to image.npy, or
// to <stub>_image.npy when a stub is given.
package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/unixpickle/langmuir-surface/surface"
)

const (
	statusError   = 1
	statusUsage   = 2
	statusInvalid = -1
)

// A usageError is a problem with the command line itself,
// as opposed to a failure while generating output.
type usageError struct {
	status   int
	showHelp bool
	err      error
}

func (u *usageError) Error() string {
	return u.err.Error()
}

func (u *usageError) Unwrap() error {
	return u.err
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command and returns the process exit
// status.
func run(args []string, stdout, stderr io.Writer) int {
	cmd := newCommand()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.Execute()
	if err == nil {
		return 0
	}
	var uerr *usageError
	if errors.As(err, &uerr) {
		if uerr.showHelp {
			cmd.SetOut(stderr)
			_ = cmd.Help()
			fmt.Fprintln(stderr)
			fmt.Fprintln(stderr, uerr.Error())
		} else {
			fmt.Fprintln(stderr, "Error:", uerr.Error())
			fmt.Fprint(stderr, cmd.UsageString())
		}
		return uerr.status
	}
	fmt.Fprintf(stderr, "Error: %v\n", err)
	return statusError
}

func newCommand() *cobra.Command {
	opts := &Options{}
	cmd := &cobra.Command{
		Use:   "ideal_surface [flags] xsize ysize zsize xwidth ywidth zwidth surface",
		Short: "Create surface using ideal function",
		Long: `Create surface using ideal function.

The grid has xsize*ysize*zsize cells. Each width is the size of
the bands along one axis (half a wavelength) and must evenly
divide the grid size along that axis.

Surfaces: ` + strings.Join(surface.Names(), ", "),
		Args: func(cmd *cobra.Command, args []string) error {
			return opts.parseArgs(args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.Validate(); err != nil {
				return &usageError{status: statusInvalid, showHelp: true, err: err}
			}
			return Generate(opts, cmd.OutOrStdout())
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return &usageError{status: statusUsage, err: err}
	})

	flags := cmd.Flags()
	flags.StringVar(&opts.Stub, "stub", "", "output file stub")
	flags.Float64Var(&opts.Spacing, "spacing", 1.0, "grid spacing")
	flags.Float64Var(&opts.Threshold, "threshold", 0.0, "threshold value")
	flags.BoolVar(&opts.VTK, "vtk", false, "save vtk files for paraview")
	flags.BoolVar(&opts.NPZ, "npz", false, "also save the field and threshold mask as an npz archive")
	flags.BoolVar(&opts.STL, "stl", false, "save the threshold isosurface as an stl file")
	return cmd
}

// parseArgs fills in the positional arguments.
func (o *Options) parseArgs(args []string) error {
	if len(args) != 7 {
		return &usageError{
			status: statusUsage,
			err:    errors.Errorf("expected 7 positional arguments, got %d", len(args)),
		}
	}
	names := []string{"xsize", "ysize", "zsize", "xwidth", "ywidth", "zwidth"}
	var values [6]int
	for i, name := range names {
		v, err := strconv.Atoi(args[i])
		if err != nil {
			return &usageError{
				status: statusUsage,
				err:    errors.Errorf("argument %s: invalid int value: %q", name, args[i]),
			}
		}
		if v <= 0 {
			return &usageError{
				status: statusUsage,
				err:    errors.Errorf("argument %s: must be positive, got %d", name, v),
			}
		}
		values[i] = v
	}
	copy(o.Size[:], values[:3])
	copy(o.Width[:], values[3:])

	if _, ok := surface.Lookup(args[6]); !ok {
		return &usageError{
			status: statusUsage,
			err: errors.Errorf("argument surface: invalid choice: %q (choose from %s)",
				args[6], strings.Join(surface.Names(), ", ")),
		}
	}
	o.Surface = args[6]
	return nil
}
