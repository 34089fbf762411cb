package wcs

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func radians(deg float64) float64 {
	return deg * math.Pi / 180
}

func Test_WCS_ToPixel_referenceCoordinate(t *testing.T) {
	w := &WCS{
		Frame:  Galactic,
		CRVal1: 264.375, CRVal2: -30,
		CRPix1: 256.5, CRPix2: 256.5,
		CD: [2][2]float64{{-0.02, 0}, {0, 0.02}},
	}
	points, err := w.ToPixel(SkyCoords{
		Frame: Galactic,
		Lon:   []float64{radians(264.375)},
		Lat:   []float64{radians(-30)},
	})
	require.NoError(t, err)
	require.Len(t, points, 1)
	require.InDelta(t, 255.5, points[0].X(), 1e-9)
	require.InDelta(t, 255.5, points[0].Y(), 1e-9)
}

func Test_WCS_ToPixel_offsetAlongAxis(t *testing.T) {
	// One CD step north of the reference coordinate lands one pixel up.
	w := &WCS{
		Frame:  ICRS,
		CRVal1: 0, CRVal2: 0,
		CRPix1: 1, CRPix2: 1,
		CD: [2][2]float64{{-0.01, 0}, {0, 0.01}},
	}
	points, err := w.ToPixel(SkyCoords{
		Frame: ICRS,
		Lon:   []float64{0},
		Lat:   []float64{radians(0.01)},
	})
	require.NoError(t, err)
	require.InDelta(t, 0, points[0].X(), 1e-5)
	require.InDelta(t, 1, points[0].Y(), 1e-5)
}

func Test_WCS_ToPixel_outsideProjectionPlane(t *testing.T) {
	w := &WCS{
		Frame:  ICRS,
		CRVal1: 0, CRVal2: 0,
		CRPix1: 1, CRPix2: 1,
		CD: [2][2]float64{{-0.01, 0}, {0, 0.01}},
	}
	_, err := w.ToPixel(SkyCoords{
		Frame: ICRS,
		Lon:   []float64{math.Pi},
		Lat:   []float64{0},
	})
	require.Error(t, err)
}

func Test_WCS_ToPixel_singularCD(t *testing.T) {
	w := &WCS{
		Frame:  ICRS,
		CRVal1: 0, CRVal2: 0,
		CRPix1: 1, CRPix2: 1,
		CD: [2][2]float64{{0.01, 0.01}, {0.01, 0.01}},
	}
	_, err := w.ToPixel(SkyCoords{Frame: ICRS, Lon: []float64{0}, Lat: []float64{0}})
	require.Error(t, err)
}

func Test_ConvertVector_galacticPole(t *testing.T) {
	// The rotation is built from the defining pole angles, so converting the
	// poles must reproduce them to machine precision, not just roughly.
	pole := SkyCoords{Frame: Galactic, Lon: []float64{0}, Lat: []float64{math.Pi / 2}}
	got, err := pole.InFrame(ICRS)
	require.NoError(t, err)
	require.InDelta(t, 192.8594812065348, got.Lon[0]*180/math.Pi, 1e-9)
	require.InDelta(t, 27.12825118085622, got.Lat[0]*180/math.Pi, 1e-9)
}

func Test_ConvertVector_celestialPoleInGalactic(t *testing.T) {
	pole := SkyCoords{Frame: ICRS, Lon: []float64{0}, Lat: []float64{math.Pi / 2}}
	got, err := pole.InFrame(Galactic)
	require.NoError(t, err)
	require.InDelta(t, 122.9319185680026, got.Lon[0]*180/math.Pi, 1e-9)
	require.InDelta(t, 27.12825118085622, got.Lat[0]*180/math.Pi, 1e-9)
}

func Test_ConvertVector_celestialPoleInEcliptic(t *testing.T) {
	// The celestial pole sits one obliquity from the ecliptic pole.
	pole := SkyCoords{Frame: ICRS, Lon: []float64{0}, Lat: []float64{math.Pi / 2}}
	got, err := pole.InFrame(Ecliptic)
	require.NoError(t, err)
	require.InDelta(t, 90-84381.406/3600, got.Lat[0]*180/math.Pi, 1e-9)
}

func Test_SkyCoords_InFrame_roundTrip(t *testing.T) {
	coords := SkyCoords{
		Frame: Galactic,
		Lon:   []float64{radians(264.375), radians(258.75), radians(12.5), radians(359.9)},
		Lat:   []float64{radians(-24.6), radians(-30), radians(89.5), radians(0.1)},
	}
	for _, frame := range []Frame{ICRS, Ecliptic} {
		t.Run(string(frame), func(t *testing.T) {
			there, err := coords.InFrame(frame)
			require.NoError(t, err)
			require.Equal(t, frame, there.Frame)
			back, err := there.InFrame(Galactic)
			require.NoError(t, err)
			for i := range coords.Lon {
				require.InDeltaf(t, coords.Lon[i], back.Lon[i], 1e-12, "lon[%d]", i)
				require.InDeltaf(t, coords.Lat[i], back.Lat[i], 1e-12, "lat[%d]", i)
			}
		})
	}
}

func Test_Frame_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		json    string
		want    Frame
		wantErr bool
	}{
		{json: `"icrs"`, want: ICRS},
		{json: `"galactic"`, want: Galactic},
		{json: `"ecliptic"`, want: Ecliptic},
		{json: `""`, want: Galactic},
		{json: `"fk5"`, wantErr: true},
		{json: `5`, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%v", tt.json), func(t *testing.T) {
			var frame Frame
			err := frame.UnmarshalJSON([]byte(tt.json))
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
				require.Equal(t, tt.want, frame)
			}
		})
	}
}
