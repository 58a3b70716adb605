package surface

import (
	"fmt"
	"math"

	"github.com/pkg/errors"
)

// WaveDimensions describes a standing wave along one axis
// of a box of a given length.
type WaveDimensions struct {
	Length float64

	// Nodes is the number of full wavelengths that fit in
	// Length.
	Nodes float64

	Wavelength float64
	Frequency  float64
	Omega      float64
}

// NewWaveDimensions creates a wave with the given number
// of nodes along the length.
func NewWaveDimensions(length, nodes float64) (WaveDimensions, error) {
	if !(length > 0) {
		return WaveDimensions{}, errors.Errorf("wave dimensions: length must be positive, got %v",
			length)
	}
	if !(nodes > 0) {
		return WaveDimensions{}, errors.Errorf("wave dimensions: nodes must be positive, got %v",
			nodes)
	}
	wavelength := length / nodes
	return WaveDimensions{
		Length:     length,
		Nodes:      nodes,
		Wavelength: wavelength,
		Frequency:  1 / wavelength,
		Omega:      2 * math.Pi / wavelength,
	}, nil
}

// BandWaveDimensions creates a wave whose half-period is
// width, so that the sign of the wave alternates in bands
// of the given width.
func BandWaveDimensions(length float64, width int) (WaveDimensions, error) {
	if width <= 0 {
		return WaveDimensions{}, errors.Errorf("wave dimensions: width must be positive, got %d",
			width)
	}
	return NewWaveDimensions(length, length/(2*float64(width)))
}

func (w WaveDimensions) String() string {
	return fmt.Sprintf("WaveDimensions(length=%.6g, nodes=%.6g, wavelength=%.6g, frequency=%.6g, omega=%.6g)",
		w.Length, w.Nodes, w.Wavelength, w.Frequency, w.Omega)
}
