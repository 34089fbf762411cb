// Package tiles computes per-tile metadata for HiPS (Hierarchical Progressive
// Survey) tiles: file naming, HEALPix pixel geometry, sky corner coordinates
// and the projective transform that maps a tile onto a target image frame.
package tiles

import (
	"math"
	"path"
	"strconv"

	"github.com/creasty/defaults"
	"github.com/go-playground/validator/v10"
	"github.com/go-spatial/geom"
	"github.com/perimeterx/marshmallow"

	"github.com/astromap/hips/geomhelp"
	"github.com/astromap/hips/hpix"
	"github.com/astromap/hips/mathhelp"
	"github.com/astromap/hips/warp"
	"github.com/astromap/hips/wcs"
)

// Meta describes one HiPS tile. It is a value object: construct it, read the
// derived properties, discard it. The zero frame means galactic and a zero
// tile width means 512; both defaults are applied when unmarshalling from
// JSON, a hand-built Meta stores whatever the caller put in.
type Meta struct {
	// HEALPix hierarchical depth
	Order int `validate:"min=0" json:"order"`
	// HEALPix pixel index at that depth, in [0, 12*4^order)
	Ipix int `validate:"min=0" json:"ipix"`
	// Tile encoding
	FileFormat FileFormat `validate:"required,oneof=fits jpg png" json:"fileFormat"`
	// Sky coordinate reference frame of the survey
	Frame wcs.Frame `default:"galactic" validate:"omitempty,oneof=icrs galactic ecliptic" json:"frame,omitempty"`
	// Tile width and height in pixels, tiles are square
	TileWidth int `default:"512" validate:"required,min=1" json:"tileWidth"`
}

func (m *Meta) UnmarshalJSON(data []byte) error {
	err := defaults.Set(m)
	if err != nil {
		return err
	}

	_, err = marshmallow.Unmarshal(data, m, marshmallow.WithExcludeKnownFieldsFromMap(true))
	if err != nil {
		return err
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	return validate.Struct(m)
}

// Equal reports whether two tile descriptions refer to the same stored tile.
// Frame deliberately takes no part in the comparison, so two tiles that
// differ only in frame compare equal. Surprising, but relied upon.
func (m Meta) Equal(other Meta) bool {
	return m.Order == other.Order &&
		m.Ipix == other.Ipix &&
		m.FileFormat == other.FileFormat &&
		m.TileWidth == other.TileWidth
}

// Path returns the tile storage directory. A fixed test-data location for
// now, not a storage convention.
func (m Meta) Path() string {
	return path.Join("hips", "tiles", "tests", "data")
}

// Filename returns the canonical tile file name, e.g. "Npix450.fits".
func (m Meta) Filename() string {
	return "Npix" + strconv.Itoa(m.Ipix) + "." + string(m.FileFormat)
}

// FullPath returns Path joined with Filename.
func (m Meta) FullPath() string {
	return path.Join(m.Path(), m.Filename())
}

// Nside returns the HEALPix resolution of the tile's order, 2^order.
func (m Meta) Nside() int {
	return int(mathhelp.Pow2(uint(m.Order)))
}

// Dst returns the tile's corners in the (x, y) pixel plane of the tile image.
// The order matches the corner order of SkyCorners, which is what makes the
// estimated projective transform come out right.
func (m Meta) Dst() [4]geom.Point {
	w := float64(m.TileWidth)
	return [4]geom.Point{
		{w - 1, 0},
		{w - 1, w - 1},
		{0, w - 1},
		{0, 0},
	}
}

// SkyCorners returns the sky coordinates of the tile's four corners, tagged
// with the tile's frame: (l, b) for galactic, (ra, dec) otherwise. The
// latitude is pi/2 minus the boundary colatitude.
func (m Meta) SkyCorners() (wcs.SkyCoords, error) {
	theta, phi, err := hpix.Boundaries(m.Nside(), m.Ipix, false)
	if err != nil {
		return wcs.SkyCoords{}, err
	}
	frame := m.Frame
	if frame == "" {
		frame = wcs.Galactic
	}
	corners := wcs.SkyCoords{
		Frame: frame,
		Lon:   make([]float64, len(phi)),
		Lat:   make([]float64, len(theta)),
	}
	for i := range theta {
		corners.Lon[i] = phi[i]
		corners.Lat[i] = math.Pi/2 - theta[i]
	}
	return corners, nil
}

// ApplyProjection estimates the projective transform that maps the tile's
// corners, as seen in the pixel plane of the target WCS, onto Dst. The
// returned transform is reusable for resampling the whole tile.
func (m Meta) ApplyProjection(target *wcs.WCS) (*warp.Projective, error) {
	corners, err := m.SkyCorners()
	if err != nil {
		return nil, err
	}
	src, err := target.ToPixel(corners)
	if err != nil {
		return nil, err
	}
	dst := m.Dst()
	return warp.EstimateProjective(src, dst[:])
}

// ChildPixels returns the NESTED indices of the pixels shiftOrder levels
// below the tile, laid out as the grid of the tile's image samples.
// Ipix is interpreted in NESTED ordering here.
func (m Meta) ChildPixels(shiftOrder uint) [][]int {
	return hpix.NestedIndexGrid(m.Ipix, shiftOrder)
}

// CornersWKT renders the tile's sky corner quad as a WKT polygon in degrees,
// truncated to maxLen characters if maxLen > 0. Debug aid.
func (m Meta) CornersWKT(maxLen uint) (string, error) {
	corners, err := m.SkyCorners()
	if err != nil {
		return "", err
	}
	var quad [4]geom.Point
	for i := range quad {
		quad[i] = geom.Point{
			corners.Lon[i] * 180 / math.Pi,
			corners.Lat[i] * 180 / math.Pi,
		}
	}
	return geomhelp.WktMustEncode(geomhelp.QuadToPolygon(quad), maxLen), nil
}
