package preprocessing

import (
	"math"

	"github.com/gomlx/bsplines"
	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// bsplineDegree is the degree of the smoothing basis. Degree 3 supports
// analytic derivatives up to order 2.
const bsplineDegree = 3

// bsplineFitter fits a least-squares B-spline to curves sampled on a fixed
// evenly spaced grid and evaluates derivatives of the fit on the same grid.
// The design matrix and its QR factorization inputs depend only on the grid,
// so one fitter is shared across all rows of a curve matrix.
type bsplineFitter struct {
	grid   []float64
	basis  *bsplines.BSpline
	design *mat.Dense // len(grid) x nCtrl basis design matrix
	nCtrl  int
	// expanded (clamped) knot vector, length nCtrl + degree + 1
	knots []float64
}

// newBSplineFitter builds the degree-3 basis and design matrix for grid.
// The knot count is chosen so the least-squares system never has more control
// points than grid points: square at the 4-point minimum, overdetermined
// above it.
func newBSplineFitter(grid []float64) (*bsplineFitter, error) {
	L := len(grid)
	if L < bsplineDegree+1 {
		return nil, errors.NewValidationError("grid",
			"bspline fit requires at least 4 grid points", L)
	}

	// nCtrl = numKnots + degree - 1 must not exceed L.
	numKnots := L - bsplineDegree - 1
	if numKnots < 2 {
		numKnots = 2
	}
	knots := EvenGrid(grid[0], grid[L-1], numKnots)
	basis := bsplines.New(bsplineDegree, knots)
	nCtrl := numKnots + bsplineDegree - 1

	design := mat.NewDense(L, nCtrl, nil)
	for i, x := range grid {
		xe := basisEvalPoint(x, grid[L-1])
		for j := 0; j < nCtrl; j++ {
			design.Set(i, j, basis.BasisFunction(j, bsplineDegree, xe))
		}
	}

	// Clamped knot vector: degree copies of the end knots on each side.
	expanded := make([]float64, 0, len(knots)+2*bsplineDegree)
	for i := 0; i < bsplineDegree; i++ {
		expanded = append(expanded, knots[0])
	}
	expanded = append(expanded, knots...)
	for i := 0; i < bsplineDegree; i++ {
		expanded = append(expanded, knots[len(knots)-1])
	}

	return &bsplineFitter{
		grid:   grid,
		basis:  basis,
		design: design,
		nCtrl:  nCtrl,
		knots:  expanded,
	}, nil
}

// derivRow fits control points to one curve and evaluates the order-th
// derivative of the fitted spline at every grid point.
func (f *bsplineFitter) derivRow(y []float64, order int) ([]float64, error) {
	rhs := mat.NewDense(len(y), 1, append([]float64(nil), y...))
	var sol mat.Dense
	if err := sol.Solve(f.design, rhs); err != nil {
		return nil, errors.Wrap(err, "least-squares bspline fit failed")
	}

	coeffs := make([]float64, f.nCtrl)
	for j := range coeffs {
		coeffs[j] = sol.At(j, 0)
	}

	// Differentiate the spline analytically: each derivative level replaces
	// the coefficients by scaled differences and lowers the basis degree.
	// After r levels, coefficients are defined for j = r..nCtrl-1 with basis
	// B_{j, degree-r} over the clamped knot vector.
	deg := bsplineDegree
	for r := 1; r <= order; r++ {
		next := make([]float64, f.nCtrl)
		for j := r; j < f.nCtrl; j++ {
			den := f.knots[j+deg] - f.knots[j]
			if den == 0 {
				continue
			}
			next[j] = float64(deg) * (coeffs[j] - coeffs[j-1]) / den
		}
		coeffs = next
		deg--
	}

	out := make([]float64, len(f.grid))
	hi := f.grid[len(f.grid)-1]
	for i, x := range f.grid {
		xe := basisEvalPoint(x, hi)
		sum := 0.0
		for j := order; j < f.nCtrl; j++ {
			if coeffs[j] == 0 {
				continue
			}
			sum += coeffs[j] * f.basis.BasisFunction(j, deg, xe)
		}
		out[i] = sum
	}
	return out, nil
}

// basisEvalPoint maps an evaluation abscissa into the half-open support of
// the basis functions. The degree-0 intervals are [t_i, t_{i+1}), so every
// basis function is 0 at the domain endpoint itself; the endpoint is
// evaluated as a left limit instead, which the continuity of the basis makes
// exact up to rounding.
func basisEvalPoint(x, hi float64) float64 {
	if x >= hi {
		return math.Nextafter(hi, math.Inf(-1))
	}
	return x
}
