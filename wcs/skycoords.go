package wcs

import (
	"math"

	"github.com/golang/geo/r3"
)

// SkyCoords is a set of positions on the sky tagged with their frame.
// Lon and Lat are parallel slices in radians: (l, b) in the galactic frame,
// (ra, dec) in the others.
type SkyCoords struct {
	Frame Frame
	Lon   []float64
	Lat   []float64
}

// Len returns the number of positions in the set.
func (c SkyCoords) Len() int {
	return len(c.Lon)
}

// Vectors returns the positions as unit direction vectors.
func (c SkyCoords) Vectors() []r3.Vector {
	vectors := make([]r3.Vector, len(c.Lon))
	for i := range c.Lon {
		cosLat := math.Cos(c.Lat[i])
		vectors[i] = r3.Vector{
			X: cosLat * math.Cos(c.Lon[i]),
			Y: cosLat * math.Sin(c.Lon[i]),
			Z: math.Sin(c.Lat[i]),
		}
	}
	return vectors
}

// InFrame returns the same positions expressed in another frame.
func (c SkyCoords) InFrame(to Frame) (SkyCoords, error) {
	if c.Frame == to {
		return c, nil
	}
	converted := SkyCoords{
		Frame: to,
		Lon:   make([]float64, len(c.Lon)),
		Lat:   make([]float64, len(c.Lat)),
	}
	for i, v := range c.Vectors() {
		rotated, err := ConvertVector(v, c.Frame, to)
		if err != nil {
			return SkyCoords{}, err
		}
		converted.Lon[i] = math.Atan2(rotated.Y, rotated.X)
		if converted.Lon[i] < 0 {
			converted.Lon[i] += 2 * math.Pi
		}
		converted.Lat[i] = math.Asin(rotated.Z / rotated.Norm())
	}
	return converted, nil
}
