// Package surface samples analytic implicit surfaces over
// regular grids.
//
// Every surface is a function of the phases X = wx.Omega*x,
// Y = wy.Omega*y, and Z = wz.Omega*z, evaluated at the
// corner of every grid cell.
package surface

import "math"

// A Func samples a surface over an mx*my*mz grid.
type Func func(mx, my, mz int, wx, wy, wz WaveDimensions) *Field

// Surface is a named entry of the surface table.
type Surface struct {
	Name string
	Func Func
}

var surfaces = []Surface{
	{"gyroid", Gyroid},
	{"scherk", ScherkFirstSurface},
	{"p_surf", SchwarzPSurface},
	{"d_surf", SchwarzDSurface},
	{"band_xy", BandXY},
	{"band_yz", BandYZ},
	{"band_xz", BandXZ},
	{"sin_x", SinX},
	{"sin_y", SinY},
	{"sin_z", SinZ},
	{"cos_x", CosX},
	{"cos_y", CosY},
	{"cos_z", CosZ},
}

// Surfaces gets every known surface in a fixed order.
func Surfaces() []Surface {
	return append([]Surface{}, surfaces...)
}

// Names gets the names of every known surface, in the same
// order as Surfaces.
func Names() []string {
	res := make([]string, len(surfaces))
	for i, s := range surfaces {
		res[i] = s.Name
	}
	return res
}

// Lookup finds a surface by name.
func Lookup(name string) (Func, bool) {
	for _, s := range surfaces {
		if s.Name == name {
			return s.Func, true
		}
	}
	return nil, false
}

// Gyroid samples Schoen's gyroid.
func Gyroid(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Sin(x)*math.Cos(y) + math.Sin(y)*math.Cos(z) + math.Sin(z)*math.Cos(x)
	})
}

// ScherkFirstSurface samples Scherk's first surface,
// exp(z)*cos(y) = cos(x), with z measured from the center
// of the box and wrapped into one period so that the field
// stays finite and periodic.
func ScherkFirstSurface(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	cz := wz.Omega * wz.Length / 2
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Exp(math.Remainder(z-cz, 2*math.Pi))*math.Cos(y) - math.Cos(x)
	})
}

// SchwarzPSurface samples the Schwarz P (primitive)
// surface.
func SchwarzPSurface(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Cos(x) + math.Cos(y) + math.Cos(z)
	})
}

// SchwarzDSurface samples the Schwarz D (diamond)
// surface.
func SchwarzDSurface(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		sx, cx := math.Sincos(x)
		sy, cy := math.Sincos(y)
		sz, cz := math.Sincos(z)
		return sx*sy*sz + sx*cy*cz + cx*sy*cz + cx*cy*sz
	})
}

// BandXY samples a checkerboard of columns running along
// the z axis.
func BandXY(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Sin(x) * math.Sin(y)
	})
}

// BandYZ samples a checkerboard of columns running along
// the x axis.
func BandYZ(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Sin(y) * math.Sin(z)
	})
}

// BandXZ samples a checkerboard of columns running along
// the y axis.
func BandXZ(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Sin(x) * math.Sin(z)
	})
}

func SinX(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Sin(x)
	})
}

func SinY(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Sin(y)
	})
}

func SinZ(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Sin(z)
	})
}

func CosX(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Cos(x)
	})
}

func CosY(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Cos(y)
	})
}

func CosZ(mx, my, mz int, wx, wy, wz WaveDimensions) *Field {
	return sample(mx, my, mz, wx, wy, wz, func(x, y, z float64) float64 {
		return math.Cos(z)
	})
}
