package preprocessing

import (
	"math"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// evenSpacingTol is the relative tolerance on the step spread below which
// a grid is treated as evenly spaced.
const evenSpacingTol = 1e-8

// CheckGrid はグリッドが有効（長さ2以上、狭義単調増加、有限値）かどうかを検証する
func CheckGrid(grid []float64) error {
	if len(grid) < 2 {
		return errors.NewValidationError("grid", "must contain at least 2 points", len(grid))
	}
	for i, g := range grid {
		if math.IsNaN(g) || math.IsInf(g, 0) {
			return errors.NewValidationError("grid", "must contain only finite values", g)
		}
		if i > 0 && grid[i-1] >= g {
			return errors.WithStack(errors.ErrGridNotIncreasing)
		}
	}
	return nil
}

// GridSpread はグリッドステップの相対的なばらつき (max-min)/mean を返す。
// 0に近いほど等間隔に近い。
func GridSpread(grid []float64) float64 {
	minStep := math.Inf(1)
	maxStep := math.Inf(-1)
	for i := 1; i < len(grid); i++ {
		step := grid[i] - grid[i-1]
		minStep = math.Min(minStep, step)
		maxStep = math.Max(maxStep, step)
	}
	mean := (grid[len(grid)-1] - grid[0]) / float64(len(grid)-1)
	return (maxStep - minStep) / mean
}

// IsEvenlySpaced はグリッドが（許容誤差内で）等間隔かどうかを返す
func IsEvenlySpaced(grid []float64) bool {
	return GridSpread(grid) <= evenSpacingTol
}

// EvenGrid は[lo, hi]をn点で等分したグリッドを生成する
func EvenGrid(lo, hi float64, n int) []float64 {
	grid := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range grid {
		grid[i] = lo + float64(i)*step
	}
	grid[n-1] = hi
	return grid
}
