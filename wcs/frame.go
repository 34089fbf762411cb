package wcs

import (
	"encoding/json"
	"fmt"
	"math"

	"github.com/golang/geo/r3"
)

// Frame identifies a sky coordinate reference frame.
type Frame string

const (
	ICRS     Frame = "icrs"
	Galactic Frame = "galactic"
	Ecliptic Frame = "ecliptic"
)

func (f *Frame) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	return f.UnmarshalJSONFromMap(s)
}

func (f *Frame) UnmarshalJSONFromMap(data interface{}) error {
	dataString, ok := data.(string)
	if !ok {
		return fmt.Errorf(`Frame data is not a string but a %T`, data)
	}
	switch dataString {
	case string(ICRS):
		*f = ICRS
	case "":
		fallthrough
	case string(Galactic):
		*f = Galactic
	case string(Ecliptic):
		*f = Ecliptic
	default:
		return fmt.Errorf(`unknown Frame: %v`, data)
	}
	return nil
}

// Galactic frame definition in ICRS terms (Hipparcos realization): the ICRS
// position of the north galactic pole and the galactic longitude of the
// celestial pole, in degrees.
const (
	galacticPoleRA             = 192.8594812065348
	galacticPoleDec            = 27.12825118085622
	galacticLonOfCelestialPole = 122.9319185680026
)

// ICRS to galactic rotation, built from the pole angles so the conversion
// matches the defining values to machine precision. Rows are the galactic
// x, y, z axes expressed in ICRS coordinates.
var galacticFromICRS = matmul(
	rotationZ(180-galacticLonOfCelestialPole),
	matmul(rotationY(90-galacticPoleDec), rotationZ(galacticPoleRA)),
)

// rotationZ and rotationY rotate the coordinate frame by the given angle
// about the axis, i.e. they map a vector's old-frame components to its
// components in the rotated frame.
func rotationZ(deg float64) [3][3]float64 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return [3][3]float64{
		{cos, sin, 0},
		{-sin, cos, 0},
		{0, 0, 1},
	}
}

func rotationY(deg float64) [3][3]float64 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return [3][3]float64{
		{cos, 0, -sin},
		{0, 1, 0},
		{sin, 0, cos},
	}
}

func matmul(a, b [3][3]float64) [3][3]float64 {
	var m [3][3]float64
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			for k := 0; k < 3; k++ {
				m[i][j] += a[i][k] * b[k][j]
			}
		}
	}
	return m
}

// Mean obliquity of the ecliptic at J2000 (IAU 2006), 84381.406 arcsec.
const obliquityJ2000 = 84381.406 / 3600 * math.Pi / 180

var eclipticFromICRS = [3][3]float64{
	{1, 0, 0},
	{0, +math.Cos(obliquityJ2000), +math.Sin(obliquityJ2000)},
	{0, -math.Sin(obliquityJ2000), +math.Cos(obliquityJ2000)},
}

func rotate(m [3][3]float64, v r3.Vector) r3.Vector {
	return r3.Vector{
		X: m[0][0]*v.X + m[0][1]*v.Y + m[0][2]*v.Z,
		Y: m[1][0]*v.X + m[1][1]*v.Y + m[1][2]*v.Z,
		Z: m[2][0]*v.X + m[2][1]*v.Y + m[2][2]*v.Z,
	}
}

func transposed(m [3][3]float64) [3][3]float64 {
	return [3][3]float64{
		{m[0][0], m[1][0], m[2][0]},
		{m[0][1], m[1][1], m[2][1]},
		{m[0][2], m[1][2], m[2][2]},
	}
}

// ConvertVector rotates a direction vector between frames. All conversions
// route through ICRS.
func ConvertVector(v r3.Vector, from, to Frame) (r3.Vector, error) {
	if from == to {
		return v, nil
	}
	icrs, err := toICRS(v, from)
	if err != nil {
		return r3.Vector{}, err
	}
	return fromICRS(icrs, to)
}

func toICRS(v r3.Vector, from Frame) (r3.Vector, error) {
	switch from {
	case ICRS:
		return v, nil
	case Galactic:
		return rotate(transposed(galacticFromICRS), v), nil
	case Ecliptic:
		return rotate(transposed(eclipticFromICRS), v), nil
	default:
		return r3.Vector{}, fmt.Errorf("unknown frame: %v", from)
	}
}

func fromICRS(v r3.Vector, to Frame) (r3.Vector, error) {
	switch to {
	case ICRS:
		return v, nil
	case Galactic:
		return rotate(galacticFromICRS, v), nil
	case Ecliptic:
		return rotate(eclipticFromICRS, v), nil
	default:
		return r3.Vector{}, fmt.Errorf("unknown frame: %v", to)
	}
}
