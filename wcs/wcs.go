// Package wcs maps sky coordinates onto image pixel planes. It implements the
// one projection HiPS consumers use, the gnomonic (TAN) projection of the FITS
// WCS convention, plus the frame rotations needed to feed it.
package wcs

import (
	"fmt"
	"math"

	"github.com/go-spatial/geom"
)

// WCS describes the world coordinate system of a target image: a gnomonic
// projection with reference value CRVal (degrees), reference pixel CRPix
// (1-based, FITS convention) and linear transformation matrix CD
// (degrees per pixel).
type WCS struct {
	Frame          Frame
	CRVal1, CRVal2 float64
	CRPix1, CRPix2 float64
	CD             [2][2]float64
}

// ToPixel projects sky positions into the image plane and returns 0-based
// pixel coordinates. Positions are converted into the WCS frame first.
// Positions 90 degrees or more from the projection center have no gnomonic
// image and yield an error.
func (w *WCS) ToPixel(coords SkyCoords) ([]geom.Point, error) {
	coords, err := coords.InFrame(w.Frame)
	if err != nil {
		return nil, err
	}

	det := w.CD[0][0]*w.CD[1][1] - w.CD[0][1]*w.CD[1][0]
	if det == 0 {
		return nil, fmt.Errorf("singular CD matrix")
	}

	lon0 := w.CRVal1 * math.Pi / 180
	lat0 := w.CRVal2 * math.Pi / 180
	sinLat0, cosLat0 := math.Sincos(lat0)

	points := make([]geom.Point, coords.Len())
	for i := range points {
		sinLat, cosLat := math.Sincos(coords.Lat[i])
		sinDLon, cosDLon := math.Sincos(coords.Lon[i] - lon0)

		// Cosine of the angular distance to the projection center.
		cosC := sinLat0*sinLat + cosLat0*cosLat*cosDLon
		if cosC <= 0 {
			return nil, fmt.Errorf("position %d is outside the projection plane", i)
		}

		// Intermediate world coordinates in degrees.
		xi := cosLat * sinDLon / cosC * 180 / math.Pi
		eta := (cosLat0*sinLat - sinLat0*cosLat*cosDLon) / cosC * 180 / math.Pi

		// Invert the CD matrix and shift to 0-based pixels.
		dx := (w.CD[1][1]*xi - w.CD[0][1]*eta) / det
		dy := (w.CD[0][0]*eta - w.CD[1][0]*xi) / det
		points[i] = geom.Point{w.CRPix1 + dx - 1, w.CRPix2 + dy - 1}
	}
	return points, nil
}
