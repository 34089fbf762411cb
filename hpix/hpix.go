// Package hpix wraps the HEALPix pixelization library with the small amount of
// boundary and angle glue the tile code needs. All pixel geometry is delegated
// to github.com/owlpinetech/healpix; this package only turns pixel boundaries
// into corner vectors and angles.
package hpix

import (
	"fmt"
	"math"

	"github.com/golang/geo/r3"
	"github.com/owlpinetech/healpix"

	"github.com/astromap/hips/mathhelp"
)

// Pixels returns the total number of pixels of a HEALPix map, 12*nside^2.
func Pixels(nside int) int {
	return 12 * nside * nside
}

// NsideToOrder returns the order for which nside = 2^order.
// ok is false if nside is not a valid HEALPix resolution.
func NsideToOrder(nside int) (order int, ok bool) {
	if nside < 1 {
		return 0, false
	}
	for n := nside; n > 1; n >>= 1 {
		order++
	}
	if int(mathhelp.Pow2(uint(order))) != nside || !healpix.IsValidOrder(order) {
		return 0, false
	}
	return order, true
}

// Equatorial base faces sit side by side in the projection plane, so half
// their center spacing along x is the corner half-diagonal of an order-0
// pixel. Deriving it this way keeps us independent of the plane's scaling.
var baseHalfDiagonal = func() float64 {
	h := healpix.NewHealpixOrder(0)
	a := healpix.NewFacePixel(4, 0, 0).ToProjectionCoordinate(h)
	b := healpix.NewFacePixel(5, 0, 0).ToProjectionCoordinate(h)
	return math.Abs(b.X()-a.X()) / 2
}()

// PixelBoundaryVectors returns the unit vectors pointing at the four corners
// of the given pixel's boundary, in north, west, south, east order. nest
// selects NESTED ordering for ipix, otherwise RING ordering is assumed.
func PixelBoundaryVectors(nside, ipix int, nest bool) ([4]r3.Vector, error) {
	var corners [4]r3.Vector

	order, ok := NsideToOrder(nside)
	if !ok {
		return corners, fmt.Errorf("nside %d is not a valid HEALPix resolution", nside)
	}
	if !mathhelp.BetweenInc(int64(ipix), 0, int64(Pixels(nside))-1) {
		return corners, fmt.Errorf("pixel index %d out of range [0, %d) for nside %d", ipix, Pixels(nside), nside)
	}

	h := healpix.NewHealpixOrder(order)
	var pixel healpix.FacePixel
	if nest {
		pixel = healpix.NestPixel(ipix).ToFacePixel(h)
	} else {
		pixel = healpix.RingPixel(ipix).ToFacePixel(h)
	}

	// Every pixel is a congruent diamond in the projection plane. Its corners
	// sit a half-diagonal from the center, straight along the plane's axes.
	center := pixel.ToProjectionCoordinate(h)
	d := baseHalfDiagonal / float64(nside)
	offsets := [4][2]float64{{0, d}, {-d, 0}, {0, -d}, {d, 0}} // N, W, S, E
	// Tolerance absorbs rounding in center+offset; the nearest legitimate
	// corner below the apex sits a whole half-diagonal lower.
	yApex := 2 * baseHalfDiagonal * (1 - 1e-12)
	for i, offset := range offsets {
		x := wrapPlaneX(center.X() + offset[0])
		y := center.Y() + offset[1]
		// The projection pinches the top and bottom plane edges into the
		// poles, so corners landing there map straight to the pole vector
		// instead of going through the degenerate inverse projection.
		switch {
		case y >= yApex:
			corners[i] = r3.Vector{Z: 1}
		case y <= -yApex:
			corners[i] = r3.Vector{Z: -1}
		default:
			corner := healpix.NewProjectionCoordinate(x, y)
			corners[i] = sphereVector(corner.ToSphereCoordinate(h))
		}
	}
	return corners, nil
}

// The projection plane is periodic in x. Corner offsets can push the west and
// east corners of pixels on the zero meridian out of the base period, so fold
// them back in.
func wrapPlaneX(x float64) float64 {
	period := 8 * baseHalfDiagonal
	if x < 0 {
		return x + period
	}
	if x >= period {
		return x - period
	}
	return x
}

// VectorsToAngles converts direction vectors to spherical angles, with theta
// the colatitude in [0, pi] and phi the longitude in [0, 2*pi).
func VectorsToAngles(vectors []r3.Vector) (theta, phi []float64) {
	theta = make([]float64, len(vectors))
	phi = make([]float64, len(vectors))
	for i, v := range vectors {
		theta[i] = math.Acos(v.Z / v.Norm())
		phi[i] = math.Atan2(v.Y, v.X)
		if phi[i] < 0 {
			phi[i] += 2 * math.Pi
		}
	}
	return theta, phi
}

// Boundaries returns the colatitude and longitude, in radians, of the four
// corners of the given pixel, in north, west, south, east order.
func Boundaries(nside, ipix int, nest bool) (theta, phi [4]float64, err error) {
	vectors, err := PixelBoundaryVectors(nside, ipix, nest)
	if err != nil {
		return theta, phi, err
	}
	thetas, phis := VectorsToAngles(vectors[:])
	copy(theta[:], thetas)
	copy(phi[:], phis)
	return theta, phi, nil
}

func sphereVector(c healpix.SphereCoordinate) r3.Vector {
	colatitude := math.Pi/2 - c.Latitude()
	sin := math.Sin(colatitude)
	return r3.Vector{
		X: sin * math.Cos(c.Longitude()),
		Y: sin * math.Sin(c.Longitude()),
		Z: math.Cos(colatitude),
	}
}
