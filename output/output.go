// Package output computes paths for generated files.
package output

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// FormatOutput joins a stub, a name, and an extension into
// an output path of the form stub_name.ext.
//
// An empty stub yields name.ext, and a stub ending in a
// path separator places name.ext inside that directory.
func FormatOutput(stub, name, ext string) string {
	ext = strings.TrimPrefix(ext, ".")
	base := name
	if ext != "" {
		base += "." + ext
	}
	if stub == "" {
		return base
	}
	if strings.HasSuffix(stub, "/") || strings.HasSuffix(stub, string(filepath.Separator)) {
		return filepath.Join(stub, base)
	}
	return strings.TrimSuffix(stub, "_") + "_" + base
}

// EnsureDir creates the parent directory of path if it
// does not already exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." {
		return nil
	}
	return errors.Wrap(os.MkdirAll(dir, 0755), "create output directory")
}
