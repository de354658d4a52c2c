package preprocessing

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

func unitGrid(n int) []float64 {
	return EvenGrid(1, float64(n), n)
}

// linearCurves returns r rows of a*t + offset_i on the given grid.
func linearCurves(grid []float64, slopes, offsets []float64) *mat.Dense {
	X := mat.NewDense(len(slopes), len(grid), nil)
	for i := range slopes {
		for j, t := range grid {
			X.Set(i, j, slopes[i]*t+offsets[i])
		}
	}
	return X
}

func TestTransformIdentityOnCleanData(t *testing.T) {
	grid := unitGrid(10)
	X := linearCurves(grid, []float64{1, 2}, []float64{0, 3})

	p, err := NewCurveProcessor(grid)
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	out, err := p.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	if !mat.EqualApprox(out, X, 1e-12) {
		t.Error("order-0 transform of clean evenly spaced data must be the identity")
	}
}

func TestTransformDimensionMismatch(t *testing.T) {
	p, err := NewCurveProcessor(unitGrid(10))
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}

	_, err = p.Transform(mat.NewDense(2, 8, nil))
	if err == nil {
		t.Fatal("expected error on column mismatch")
	}
	var de *errors.DimensionError
	if !errors.As(err, &de) {
		t.Fatalf("expected DimensionError, got %T", err)
	}
	if de.Expected != 10 || de.Got != 8 {
		t.Errorf("unexpected fields: %+v", de)
	}
}

func TestDifferenceDerivative(t *testing.T) {
	grid := unitGrid(10)
	X := linearCurves(grid, []float64{2, -1}, []float64{0, 5})

	p, err := NewCurveProcessor(grid, WithDerivOrder(1))
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	out, err := p.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	r, c := out.Dims()
	if r != 2 || c != 9 {
		t.Fatalf("difference derivative should shrink columns by 1, got %dx%d", r, c)
	}
	for j := 0; j < c; j++ {
		if math.Abs(out.At(0, j)-2) > 1e-12 {
			t.Errorf("derivative of 2t should be 2, got %v at col %d", out.At(0, j), j)
		}
		if math.Abs(out.At(1, j)+1) > 1e-12 {
			t.Errorf("derivative of -t+5 should be -1, got %v at col %d", out.At(1, j), j)
		}
	}

	if got := len(p.OutputGrid()); got != 9 {
		t.Errorf("output grid length = %d, want 9", got)
	}
}

func TestSecondDifferenceOfLinearIsZero(t *testing.T) {
	grid := unitGrid(8)
	X := linearCurves(grid, []float64{3}, []float64{1})

	p, err := NewCurveProcessor(grid, WithDerivOrder(2))
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	out, err := p.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	_, c := out.Dims()
	if c != 6 {
		t.Fatalf("second difference should shrink columns by 2, got %d", c)
	}
	for j := 0; j < c; j++ {
		if math.Abs(out.At(0, j)) > 1e-10 {
			t.Errorf("second derivative of a line should be 0, got %v", out.At(0, j))
		}
	}
}

func TestTransformRejectsInfiniteValues(t *testing.T) {
	grid := unitGrid(10)
	X := linearCurves(grid, []float64{1, 2}, []float64{0, 3})
	X.Set(0, 3, math.Inf(1))

	p, err := NewCurveProcessor(grid)
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	_, err = p.Transform(X)
	if err == nil {
		t.Fatal("expected error for infinite input value")
	}
	var nie *errors.NumericalInstabilityError
	if !errors.As(err, &nie) {
		t.Fatalf("expected NumericalInstabilityError, got %T: %v", err, err)
	}
	if nie.TrainRow != 0 || nie.QueryCol != 3 {
		t.Errorf("entry position not carried: %+v", nie)
	}
}

func TestMissingFill(t *testing.T) {
	var warned error
	errors.SetWarningHandler(func(w error) { warned = w })
	defer errors.SetWarningHandler(nil)

	grid := unitGrid(10)
	X := linearCurves(grid, []float64{2}, []float64{1})
	X.Set(0, 4, math.NaN())

	p, err := NewCurveProcessor(grid)
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	out, err := p.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	// Cubic splines reproduce linear data exactly, so the filled value must
	// match the underlying line.
	want := 2*grid[4] + 1
	if math.Abs(out.At(0, 4)-want) > 1e-9 {
		t.Errorf("filled value = %v, want %v", out.At(0, 4), want)
	}

	if warned == nil {
		t.Fatal("expected a MissingValuesWarning")
	}
	var mvw *errors.MissingValuesWarning
	if !errors.As(warned, &mvw) {
		t.Fatalf("expected MissingValuesWarning, got %T", warned)
	}
	if mvw.Filled != 1 || mvw.Rows != 1 {
		t.Errorf("unexpected warning fields: %+v", mvw)
	}
}

func TestMissingFillDisabled(t *testing.T) {
	grid := unitGrid(5)
	X := mat.NewDense(1, 5, []float64{1, 2, math.NaN(), 4, 5})

	p, err := NewCurveProcessor(grid, WithMissingFill(false))
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	if _, err := p.Transform(X); err == nil {
		t.Error("expected error when filling is disabled and data has NaN")
	}
}

func TestRespaceUnevenGrid(t *testing.T) {
	var warned error
	errors.SetWarningHandler(func(w error) { warned = w })
	defer errors.SetWarningHandler(nil)

	grid := []float64{1, 2, 3, 5, 8, 10}
	X := linearCurves(grid, []float64{2}, []float64{-1})

	p, err := NewCurveProcessor(grid)
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	out, err := p.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	var igw *errors.IrregularGridWarning
	if warned == nil || !errors.As(warned, &igw) {
		t.Fatalf("expected IrregularGridWarning, got %v", warned)
	}

	outGrid := p.OutputGrid()
	if !IsEvenlySpaced(outGrid) {
		t.Error("output grid must be evenly spaced after re-sampling")
	}
	// Linear curves survive spline re-sampling exactly.
	for j, x := range outGrid {
		want := 2*x - 1
		if math.Abs(out.At(0, j)-want) > 1e-9 {
			t.Errorf("respaced value at %v = %v, want %v", x, out.At(0, j), want)
		}
	}
}

func TestBSplineDerivativeOfLine(t *testing.T) {
	grid := unitGrid(12)
	X := linearCurves(grid, []float64{1.5}, []float64{2})

	p, err := NewCurveProcessor(grid, WithDerivOrder(1), WithDerivMethod(DerivBSpline))
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	out, err := p.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	r, c := out.Dims()
	if r != 1 || c != 12 {
		t.Fatalf("bspline derivative must preserve shape, got %dx%d", r, c)
	}
	// Degree-3 splines contain linear functions, so the fitted derivative is
	// the exact slope at every grid point, both endpoints included.
	for j := 0; j < c; j++ {
		if math.Abs(out.At(0, j)-1.5) > 1e-6 {
			t.Errorf("derivative at col %d = %v, want 1.5", j, out.At(0, j))
		}
	}
}

func TestBSplineDerivativeMinimumGrid(t *testing.T) {
	// The documented minimum of 4 grid points yields a square 4x4 fit; it
	// must solve cleanly and recover the slope at all four points.
	grid := unitGrid(4)
	X := linearCurves(grid, []float64{2}, []float64{1})

	p, err := NewCurveProcessor(grid, WithDerivOrder(1), WithDerivMethod(DerivBSpline))
	if err != nil {
		t.Fatalf("NewCurveProcessor failed: %v", err)
	}
	out, err := p.Transform(X)
	if err != nil {
		t.Fatalf("Transform failed: %v", err)
	}

	_, c := out.Dims()
	if c != 4 {
		t.Fatalf("bspline derivative must preserve shape, got %d columns", c)
	}
	for j := 0; j < c; j++ {
		if math.Abs(out.At(0, j)-2) > 1e-6 {
			t.Errorf("derivative at col %d = %v, want 2", j, out.At(0, j))
		}
	}
}

func TestProcessorValidation(t *testing.T) {
	grid := unitGrid(10)

	if _, err := NewCurveProcessor(grid, WithDerivOrder(-1)); err == nil {
		t.Error("negative derivative order must be rejected")
	}
	if _, err := NewCurveProcessor(grid, WithDerivOrder(3), WithDerivMethod(DerivBSpline)); err == nil {
		t.Error("bspline method must reject orders above 2")
	}
	if _, err := NewCurveProcessor(grid, WithDerivOrder(10)); err == nil {
		t.Error("difference method must reject orders >= grid length")
	}
	if _, err := NewCurveProcessor([]float64{3, 2, 1}); err == nil {
		t.Error("decreasing grid must be rejected")
	}
}
