package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/unixpickle/langmuir-surface/npy"
	"github.com/unixpickle/langmuir-surface/surface"
)

func runCommand(t *testing.T, args ...string) (status int, stdout, stderr string) {
	var outBuf, errBuf bytes.Buffer
	status = run(args, &outBuf, &errBuf)
	return status, outBuf.String(), errBuf.String()
}

func TestGyroidDefaults(t *testing.T) {
	chdir(t, t.TempDir())

	status, stdout, stderr := runCommand(t, "8", "8", "8", "2", "2", "2", "gyroid")
	require.Equal(t, 0, status, stderr)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	require.Len(t, lines, 6)
	assert.Equal(t, "Grid(mx=8, my=8, mz=8, hx=1, hy=1, hz=1, lx=8, ly=8, lz=8)", lines[0])
	for _, line := range lines[1:4] {
		assert.True(t, strings.HasPrefix(line, "WaveDimensions(length=8, nodes=2, wavelength=4,"),
			line)
	}
	assert.True(t, strings.HasPrefix(lines[4], "field: "), lines[4])
	assert.Equal(t, "saved: image.npy", lines[5])

	shape, data, err := npy.Load("image.npy")
	require.NoError(t, err)
	assert.Equal(t, []int{8, 8, 8}, shape)
	assert.Len(t, data, 512)
}

func TestIndivisibleWidth(t *testing.T) {
	chdir(t, t.TempDir())

	status, stdout, stderr := runCommand(t, "8", "8", "8", "3", "2", "2", "gyroid")
	assert.Equal(t, statusInvalid, status)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Usage:")
	assert.True(t, strings.HasSuffix(stderr, "\nlambda must be a multiple of grid size\n"), stderr)

	_, err := os.Stat("image.npy")
	assert.True(t, os.IsNotExist(err))
}

func TestIndivisibleWidthEveryAxis(t *testing.T) {
	dir := t.TempDir()
	cases := [][]string{
		{"9", "8", "8", "2", "2", "2"},
		{"8", "9", "8", "2", "2", "2"},
		{"8", "8", "9", "2", "2", "2"},
		{"8", "8", "8", "2", "2", "5"},
	}
	for _, c := range cases {
		args := append(append([]string{}, c...), "p_surf", "--stub", dir+"/")
		status, _, _ := runCommand(t, args...)
		assert.Equal(t, statusInvalid, status, "args %v", c)
	}
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSpacing(t *testing.T) {
	cases := []struct {
		spacing string
		shape   []int
	}{
		{"1.0", []int{8, 4, 6}},
		{"2.0", []int{16, 8, 12}},
		{"0.5", []int{4, 2, 3}},
	}
	for _, c := range cases {
		t.Run(c.spacing, func(t *testing.T) {
			stub := filepath.Join(t.TempDir(), "run")
			status, _, stderr := runCommand(t, "8", "4", "6", "2", "2", "3", "sin_x",
				"--spacing", c.spacing, "--stub", stub)
			require.Equal(t, 0, status, stderr)

			shape, _, err := npy.Load(stub + "_image.npy")
			require.NoError(t, err)
			assert.Equal(t, c.shape, shape)
		})
	}
}

func TestEverySurface(t *testing.T) {
	for _, name := range surface.Names() {
		t.Run(name, func(t *testing.T) {
			stub := filepath.Join(t.TempDir(), name)
			status, stdout, stderr := runCommand(t, "4", "4", "4", "2", "2", "1", name,
				"--stub", stub)
			require.Equal(t, 0, status, stderr)
			assert.Contains(t, stdout, "saved: "+stub+"_image.npy")
		})
	}
}

func TestUsageErrors(t *testing.T) {
	cases := map[string][]string{
		"unknown surface": {"8", "8", "8", "2", "2", "2", "torus"},
		"too few":         {"8", "8", "8", "2", "2", "gyroid"},
		"too many":        {"8", "8", "8", "2", "2", "2", "gyroid", "extra"},
		"not an int":      {"8", "eight", "8", "2", "2", "2", "gyroid"},
		"zero width":      {"8", "8", "8", "0", "2", "2", "gyroid"},
		"unknown flag":    {"8", "8", "8", "2", "2", "2", "gyroid", "--color"},
		"bad spacing":     {"8", "8", "8", "2", "2", "2", "gyroid", "--spacing", "abc"},
		"zero spacing":    {"8", "8", "8", "2", "2", "2", "gyroid", "--spacing", "0"},
	}
	for name, args := range cases {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			args = append(append([]string{}, args...), "--stub", dir+"/")
			status, _, stderr := runCommand(t, args...)
			assert.Equal(t, statusUsage, status)
			assert.Contains(t, stderr, "Error:")

			entries, err := os.ReadDir(dir)
			require.NoError(t, err)
			assert.Empty(t, entries)
		})
	}
}

func TestExtraOutputs(t *testing.T) {
	dir := t.TempDir()
	stub := filepath.Join(dir, "extra")
	status, stdout, stderr := runCommand(t, "--vtk", "--stl", "--npz", "--threshold", "0.5",
		"--stub", stub, "8", "8", "8", "4", "4", "4", "p_surf")
	require.Equal(t, 0, status, stderr)

	for _, ext := range []string{"npy", "vtk", "npz", "stl"} {
		path := stub + "_image." + ext
		assert.Contains(t, stdout, "saved: "+path)
		info, err := os.Stat(path)
		require.NoError(t, err, ext)
		assert.NotZero(t, info.Size(), ext)
	}

	vtkData, err := os.ReadFile(stub + "_image.vtk")
	require.NoError(t, err)
	assert.Contains(t, string(vtkData), "DIMENSIONS 8 8 8\n")
	assert.Contains(t, string(vtkData), "SCALARS mask double 1\n")

	arrays, err := npy.LoadArchive(stub + "_image.npz")
	require.NoError(t, err)
	require.Len(t, arrays, 2)
	assert.Equal(t, "mask", arrays[1].Name)
	assert.Equal(t, []int{8, 8, 8}, arrays[1].Shape)
}

// chdir changes the working directory for the duration of the test,
// restoring it on cleanup (equivalent to testing.T.Chdir from Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
