package geomhelp

import (
	"github.com/go-spatial/geom"
	"github.com/go-spatial/geom/encoding/wkt"
	"github.com/muesli/reflow/truncate"
)

// QuadToPolygon closes a four-corner quad into a single-ring polygon.
func QuadToPolygon(quad [4]geom.Point) geom.Polygon {
	ring := make([][2]float64, len(quad))
	for i := range quad {
		ring[i] = quad[i]
	}
	return geom.Polygon{ring}
}

func WktMustEncode(g geom.Geometry, maxLen uint) string {
	if maxLen == 0 {
		return wkt.MustEncode(g)
	}
	return truncate.StringWithTail(wkt.MustEncode(g), maxLen, "...")
}
