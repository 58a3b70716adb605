// Package npy reads and writes NumPy .npy array files.
package npy

import (
	"archive/zip"
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const magic = "\x93NUMPY"

// headerAlign is the alignment of the full preamble
// (magic, version, length, and header dict).
const headerAlign = 64

// MaxElements bounds the number of values Read will
// allocate for a single array.
const MaxElements = 1 << 30

var (
	descrExpr   = regexp.MustCompile(`'descr'\s*:\s*'([^']*)'`)
	fortranExpr = regexp.MustCompile(`'fortran_order'\s*:\s*(True|False)`)
	shapeExpr   = regexp.MustCompile(`'shape'\s*:\s*\(([^)]*)\)`)
)

// Write encodes a C-order float64 array as a version 1.0
// .npy file.
func Write(w io.Writer, shape []int, data []float64) error {
	size := 1
	for _, s := range shape {
		size *= s
	}
	if size != len(data) {
		return errors.Errorf("write npy: shape %v does not match %d values", shape, len(data))
	}

	bw := bufio.NewWriter(w)
	if _, err := bw.Write(EncodeHeader("<f8", shape)); err != nil {
		return errors.Wrap(err, "write npy")
	}
	var buf [8]byte
	for _, x := range data {
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(x))
		if _, err := bw.Write(buf[:]); err != nil {
			return errors.Wrap(err, "write npy")
		}
	}
	return errors.Wrap(bw.Flush(), "write npy")
}

// EncodeHeader creates the preamble of a C-order .npy file
// with the given dtype descriptor.
func EncodeHeader(descr string, shape []int) []byte {
	dims := make([]string, len(shape))
	for i, s := range shape {
		dims[i] = strconv.Itoa(s)
	}
	shapeStr := strings.Join(dims, ", ")
	if len(shape) == 1 {
		shapeStr += ","
	}
	header := fmt.Sprintf("{'descr': '%s', 'fortran_order': False, 'shape': (%s), }",
		descr, shapeStr)

	// Pad with spaces so that the data starts aligned, with
	// a newline as the last header byte.
	prefix := len(magic) + 4
	total := prefix + len(header) + 1
	if rem := total % headerAlign; rem != 0 {
		header += strings.Repeat(" ", headerAlign-rem)
	}
	header += "\n"

	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write([]byte{1, 0})
	binary.Write(&buf, binary.LittleEndian, uint16(len(header)))
	buf.WriteString(header)
	return buf.Bytes()
}

// Read decodes a C-order .npy array, converting the values
// to float64.
func Read(r io.Reader) (shape []int, data []float64, err error) {
	defer func() {
		err = errors.Wrap(err, "read npy")
	}()

	br := bufio.NewReader(r)
	var prefix [len(magic) + 2]byte
	if _, err := io.ReadFull(br, prefix[:]); err != nil {
		return nil, nil, err
	}
	if string(prefix[:len(magic)]) != magic {
		return nil, nil, errors.New("missing magic string")
	}
	var headerLen int
	switch major := prefix[len(magic)]; major {
	case 1:
		var n uint16
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, nil, err
		}
		headerLen = int(n)
	case 2, 3:
		var n uint32
		if err := binary.Read(br, binary.LittleEndian, &n); err != nil {
			return nil, nil, err
		}
		headerLen = int(n)
	default:
		return nil, nil, errors.Errorf("unsupported version %d", major)
	}
	header := make([]byte, headerLen)
	if _, err := io.ReadFull(br, header); err != nil {
		return nil, nil, err
	}

	descr, shape, err := parseHeader(string(header))
	if err != nil {
		return nil, nil, err
	}
	size := 1
	for _, s := range shape {
		if s != 0 && size > MaxElements/s {
			return nil, nil, errors.Errorf("shape %v exceeds %d elements", shape, MaxElements)
		}
		size *= s
	}

	data = make([]float64, size)
	switch descr {
	case "<f8":
		var buf [8]byte
		for i := range data {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return nil, nil, err
			}
			data[i] = math.Float64frombits(binary.LittleEndian.Uint64(buf[:]))
		}
	case "<f4":
		var buf [4]byte
		for i := range data {
			if _, err := io.ReadFull(br, buf[:]); err != nil {
				return nil, nil, err
			}
			data[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(buf[:])))
		}
	case "|b1", "|u1":
		raw := make([]byte, size)
		if _, err := io.ReadFull(br, raw); err != nil {
			return nil, nil, err
		}
		for i, b := range raw {
			data[i] = float64(b)
		}
	default:
		return nil, nil, errors.Errorf("unsupported dtype %q", descr)
	}
	return shape, data, nil
}

func parseHeader(header string) (descr string, shape []int, err error) {
	m := descrExpr.FindStringSubmatch(header)
	if m == nil {
		return "", nil, errors.New("header has no descr")
	}
	descr = m[1]

	m = fortranExpr.FindStringSubmatch(header)
	if m == nil {
		return "", nil, errors.New("header has no fortran_order")
	} else if m[1] == "True" {
		return "", nil, errors.New("fortran order is not supported")
	}

	m = shapeExpr.FindStringSubmatch(header)
	if m == nil {
		return "", nil, errors.New("header has no shape")
	}
	for _, part := range strings.Split(m[1], ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return "", nil, errors.Errorf("invalid shape entry %q", part)
		}
		shape = append(shape, n)
	}
	return descr, shape, nil
}

// Save writes an array to a new file at path.
func Save(path string, shape []int, data []float64) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save npy")
	}
	if err := Write(w, shape, data); err != nil {
		w.Close()
		return err
	}
	return errors.Wrap(w.Close(), "save npy")
}

// Load reads an array from a file.
func Load(path string) (shape []int, data []float64, err error) {
	r, err := os.Open(path)
	if err != nil {
		return nil, nil, errors.Wrap(err, "load npy")
	}
	defer r.Close()
	return Read(r)
}

// A NamedArray is one member of a .npz archive.
type NamedArray struct {
	Name  string
	Shape []int
	Data  []float64
}

// SaveArchive writes arrays into an uncompressed .npz
// archive, storing each array as <name>.npy.
func SaveArchive(path string, arrays ...NamedArray) error {
	w, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "save npz")
	}
	defer w.Close()
	zipWriter := zip.NewWriter(w)
	for _, a := range arrays {
		fileWriter, err := zipWriter.Create(a.Name + ".npy")
		if err != nil {
			return errors.Wrap(err, "save npz")
		}
		if err := Write(fileWriter, a.Shape, a.Data); err != nil {
			return err
		}
	}
	if err := zipWriter.Close(); err != nil {
		return errors.Wrap(err, "save npz")
	}
	return errors.Wrap(w.Close(), "save npz")
}

// LoadArchive reads every array from a .npz archive.
func LoadArchive(path string) ([]NamedArray, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Wrap(err, "load npz")
	}
	defer r.Close()
	var res []NamedArray
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			return nil, errors.Wrap(err, "load npz")
		}
		shape, data, err := Read(rc)
		rc.Close()
		if err != nil {
			return nil, errors.Wrapf(err, "load npz member %s", f.Name)
		}
		res = append(res, NamedArray{
			Name:  strings.TrimSuffix(f.Name, ".npy"),
			Shape: shape,
			Data:  data,
		})
	}
	return res, nil
}
