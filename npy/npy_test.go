package npy

import (
	"bytes"
	"encoding/binary"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeHeader(t *testing.T) {
	for _, shape := range [][]int{{8, 8, 8}, {3}, {1000, 2000, 3000}} {
		header := EncodeHeader("<f8", shape)
		assert.Equal(t, 0, len(header)%headerAlign, "shape %v", shape)
		assert.Equal(t, magic, string(header[:6]))
		assert.Equal(t, []byte{1, 0}, header[6:8])
		assert.Equal(t, len(header)-10, int(binary.LittleEndian.Uint16(header[8:10])))
		assert.Equal(t, byte('\n'), header[len(header)-1])
	}
	assert.Contains(t, string(EncodeHeader("<f8", []int{8, 8, 8})), "'shape': (8, 8, 8), }")
	assert.Contains(t, string(EncodeHeader("<f8", []int{3})), "'shape': (3,), }")
}

func TestRoundTrip(t *testing.T) {
	shape := []int{2, 3, 4}
	data := make([]float64, 24)
	for i := range data {
		data[i] = float64(i)*0.5 - 3
	}
	var buf bytes.Buffer
	require.NoError(t, Write(&buf, shape, data))
	assert.Equal(t, len(EncodeHeader("<f8", shape))+24*8, buf.Len())

	gotShape, gotData, err := Read(&buf)
	require.NoError(t, err)
	if diff := cmp.Diff(shape, gotShape); diff != "" {
		t.Errorf("shape (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(data, gotData); diff != "" {
		t.Errorf("data (-want +got):\n%s", diff)
	}
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.npy")
	require.NoError(t, Save(path, []int{2, 2}, []float64{1, 2, 3, 4}))
	shape, data, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, shape)
	assert.Equal(t, []float64{1, 2, 3, 4}, data)
}

func TestReadBool(t *testing.T) {
	var buf bytes.Buffer
	buf.Write(EncodeHeader("|b1", []int{2, 2}))
	buf.Write([]byte{0, 1, 1, 0})
	shape, data, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, shape)
	assert.Equal(t, []float64{0, 1, 1, 0}, data)
}

func TestWriteShapeMismatch(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Write(&buf, []int{2, 2}, []float64{1, 2, 3}))
}

func TestReadErrors(t *testing.T) {
	_, _, err := Read(strings.NewReader("not numpy at all"))
	assert.Error(t, err)

	var buf bytes.Buffer
	buf.Write(EncodeHeader("<c16", []int{1}))
	buf.Write(make([]byte, 16))
	_, _, err = Read(&buf)
	assert.Error(t, err)

	buf.Reset()
	buf.Write(EncodeHeader("<f8", []int{4}))
	buf.Write(make([]byte, 8))
	_, _, err = Read(&buf)
	assert.Error(t, err)
}

func TestArchive(t *testing.T) {
	path := filepath.Join(t.TempDir(), "image.npz")
	err := SaveArchive(path,
		NamedArray{Name: "image", Shape: []int{2, 1}, Data: []float64{-1, 1}},
		NamedArray{Name: "mask", Shape: []int{2, 1}, Data: []float64{0, 1}})
	require.NoError(t, err)

	arrays, err := LoadArchive(path)
	require.NoError(t, err)
	require.Len(t, arrays, 2)
	assert.Equal(t, "image", arrays[0].Name)
	assert.Equal(t, []float64{-1, 1}, arrays[0].Data)
	assert.Equal(t, "mask", arrays[1].Name)
	assert.Equal(t, []int{2, 1}, arrays[1].Shape)
}

func TestReadOversizedShape(t *testing.T) {
	for _, shape := range [][]int{
		{1 << 40, 1 << 40},
		{MaxElements, 2},
		{1 << 62, 1 << 62, 4},
	} {
		var buf bytes.Buffer
		buf.Write(EncodeHeader("<f8", shape))
		_, _, err := Read(&buf)
		assert.Error(t, err, "shape %v", shape)
	}

	var buf bytes.Buffer
	buf.Write(EncodeHeader("<f8", []int{0, 1 << 40}))
	shape, data, err := Read(&buf)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1 << 40}, shape)
	assert.Empty(t, data)
}
