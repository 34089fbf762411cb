// Package warp estimates the planar transforms used to resample a sky tile
// into a target image frame.
package warp

import (
	"fmt"

	"github.com/go-spatial/geom"
	"gonum.org/v1/gonum/mat"
)

// Projective is a planar projective transform (homography), stored as a 3x3
// homogeneous matrix with the bottom-right element fixed to 1.
type Projective struct {
	m [3][3]float64
}

// EstimateProjective fits the projective transform mapping src[i] onto dst[i].
// Four correspondences give an exact fit, more give the least squares fit.
// Degenerate correspondences (e.g. collinear points) make the underlying
// system singular and surface as an error.
func EstimateProjective(src, dst []geom.Point) (*Projective, error) {
	if len(src) != len(dst) {
		return nil, fmt.Errorf("mismatched point counts: %d vs %d", len(src), len(dst))
	}
	if len(src) < 4 {
		return nil, fmt.Errorf("need at least 4 point pairs, got %d", len(src))
	}

	// Direct linear transformation: each pair yields two equations in the
	// eight unknown matrix elements.
	n := len(src)
	a := mat.NewDense(2*n, 8, nil)
	b := mat.NewVecDense(2*n, nil)
	for i := range src {
		x, y := src[i].X(), src[i].Y()
		u, v := dst[i].X(), dst[i].Y()
		a.SetRow(2*i, []float64{x, y, 1, 0, 0, 0, -u * x, -u * y})
		a.SetRow(2*i+1, []float64{0, 0, 0, x, y, 1, -v * x, -v * y})
		b.SetVec(2*i, u)
		b.SetVec(2*i+1, v)
	}

	var p mat.VecDense
	if err := p.SolveVec(a, b); err != nil {
		return nil, fmt.Errorf("estimating projective transform: %w", err)
	}

	return &Projective{m: [3][3]float64{
		{p.AtVec(0), p.AtVec(1), p.AtVec(2)},
		{p.AtVec(3), p.AtVec(4), p.AtVec(5)},
		{p.AtVec(6), p.AtVec(7), 1},
	}}, nil
}

// Apply maps a point through the transform.
func (t *Projective) Apply(p geom.Point) geom.Point {
	x, y := p.X(), p.Y()
	w := t.m[2][0]*x + t.m[2][1]*y + t.m[2][2]
	return geom.Point{
		(t.m[0][0]*x + t.m[0][1]*y + t.m[0][2]) / w,
		(t.m[1][0]*x + t.m[1][1]*y + t.m[1][2]) / w,
	}
}

// Inverse returns the inverse transform.
func (t *Projective) Inverse() (*Projective, error) {
	var inv mat.Dense
	err := inv.Inverse(mat.NewDense(3, 3, []float64{
		t.m[0][0], t.m[0][1], t.m[0][2],
		t.m[1][0], t.m[1][1], t.m[1][2],
		t.m[2][0], t.m[2][1], t.m[2][2],
	}))
	if err != nil {
		return nil, fmt.Errorf("inverting projective transform: %w", err)
	}
	scale := inv.At(2, 2)
	if scale == 0 {
		return nil, fmt.Errorf("inverse transform is not normalizable")
	}
	var out Projective
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			out.m[i][j] = inv.At(i, j) / scale
		}
	}
	return &out, nil
}

// Matrix returns the homogeneous matrix of the transform.
func (t *Projective) Matrix() [3][3]float64 {
	return t.m
}
