package semimetrics

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

func dist(t *testing.T, m Metric, x, y []float64) float64 {
	t.Helper()
	d, err := m.Distance(x, y, 0, 0)
	require.NoError(t, err)
	return d
}

func TestKnownValues(t *testing.T) {
	x := []float64{0, 0}
	y := []float64{3, 4}

	assert.InDelta(t, 5, dist(t, NewEuclidean(), x, y), 1e-12)
	assert.InDelta(t, 7, dist(t, NewManhattan(), x, y), 1e-12)
	assert.InDelta(t, 4, dist(t, NewSupremum(), x, y), 1e-12)
	// Minkowski with p=2 agrees with Euclidean.
	assert.InDelta(t, 5, dist(t, NewMinkowski(2), x, y), 1e-12)
	// p=3: (27+64)^(1/3)
	assert.InDelta(t, math.Pow(91, 1.0/3.0), dist(t, NewMinkowski(3), x, y), 1e-12)
	// mean difference: |0 - 3.5|
	assert.InDelta(t, 3.5, dist(t, NewMean(), x, y), 1e-12)
}

func TestIdentityAndSymmetry(t *testing.T) {
	x := []float64{1, 4, 2, 8, 5, 7}
	y := []float64{2, 2, 3, 6, 9, 1}

	metrics := []Metric{
		NewEuclidean(),
		NewManhattan(),
		NewMinkowski(3),
		NewSupremum(),
		NewShortEuclidean(0.2, 0.8),
		NewMean(),
		NewRelAreas(0, 0.5, 0.5, 1),
		NewJump(0, 1),
		NewGlobMax(),
		NewGlobMin(),
		NewPoints(nil),
		NewPoints([]float64{0, 0.5, 1}),
		NewDTW(0),
		NewDTW(2),
	}
	for _, m := range metrics {
		t.Run(m.Name(), func(t *testing.T) {
			require.NoError(t, m.Validate())
			assert.Zero(t, dist(t, m, x, x), "d(x, x) must be 0")
			assert.InDelta(t, dist(t, m, x, y), dist(t, m, y, x), 1e-12, "d must be symmetric")
			assert.GreaterOrEqual(t, dist(t, m, x, y), 0.0)
		})
	}
}

func TestGlobMaxIgnoresPosition(t *testing.T) {
	// Same maximum at different positions: these curves are indistinguishable
	// to globMax, which is what makes it a semimetric rather than a metric.
	x := []float64{9, 1, 1, 1}
	y := []float64{1, 1, 9, 1}
	assert.Zero(t, dist(t, NewGlobMax(), x, y))
	assert.Zero(t, dist(t, NewGlobMin(), x, y))
}

func TestShortEuclideanWindow(t *testing.T) {
	// Differences only outside the window must not contribute.
	x := []float64{100, 0, 0, 0, 100}
	y := []float64{-50, 0, 0, 0, -50}
	m := NewShortEuclidean(0.25, 0.75)
	assert.Zero(t, dist(t, m, x, y))

	full := NewShortEuclidean(0, 1)
	assert.InDelta(t, dist(t, NewEuclidean(), x, y), dist(t, full, x, y), 1e-12)
}

func TestJump(t *testing.T) {
	x := []float64{0, 1, 2, 5}
	y := []float64{3, 1, 2, 3}
	// Increment over the full span: x jumps by 5, y by 0.
	assert.InDelta(t, 5, dist(t, NewJump(0, 1), x, y), 1e-12)
}

func TestPointsSubset(t *testing.T) {
	x := []float64{1, 0, 0, 0, 1}
	y := []float64{3, 9, 9, 9, 3}
	// Only the endpoints are inspected: mean of |1-3| and |1-3|.
	assert.InDelta(t, 2, dist(t, NewPoints([]float64{0, 1}), x, y), 1e-12)
}

func TestDTWShiftInvariance(t *testing.T) {
	// A shifted copy of the same shape is much closer under DTW than under
	// the pointwise Euclidean distance.
	x := []float64{0, 0, 1, 2, 1, 0, 0, 0}
	y := []float64{0, 0, 0, 1, 2, 1, 0, 0}
	dtwDist := dist(t, NewDTW(0), x, y)
	eucDist := dist(t, NewEuclidean(), x, y)
	assert.Less(t, dtwDist, eucDist)
}

func TestParseMetric(t *testing.T) {
	for _, name := range KnownMetrics() {
		m, err := ParseMetric(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, m.Name())
		assert.NoError(t, m.Validate(), name)
	}

	_, err := ParseMetric("nope")
	var ume *errors.UnknownMetricError
	require.ErrorAs(t, err, &ume)
	assert.Equal(t, "nope", ume.Name)
	assert.Equal(t, KnownMetrics(), ume.Known)

	_, err = ParseMetric("custom.metric")
	var ve *errors.ValidationError
	assert.ErrorAs(t, err, &ve, "custom.metric must be built via NewCustom")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		m    Metric
	}{
		{"minkowski p below 1", NewMinkowski(0.5)},
		{"shortEuclidean inverted window", NewShortEuclidean(0.8, 0.2)},
		{"shortEuclidean out of range", NewShortEuclidean(-0.1, 1)},
		{"relAreas bad second window", NewRelAreas(0, 0.5, 0.9, 0.4)},
		{"jump equal positions", NewJump(0.5, 0.5)},
		{"points out of range", NewPoints([]float64{0.5, 1.2})},
		{"dtw negative window", NewDTW(-1)},
		{"custom nil function", NewCustom(nil)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, tt.m.Validate())
		})
	}
}

func TestCustomMetric(t *testing.T) {
	m := NewCustom(func(x, y []float64) float64 {
		return math.Abs(x[0] - y[0])
	})
	require.NoError(t, m.Validate())
	assert.InDelta(t, 2, dist(t, m, []float64{3, 0}, []float64{1, 9}), 1e-12)
}

func TestCustomMetricFailures(t *testing.T) {
	x := []float64{1, 2}
	y := []float64{3, 4}

	nan := NewCustom(func(_, _ []float64) float64 { return math.NaN() })
	_, err := nan.Distance(x, y, 2, 5)
	require.Error(t, err)
	var nie *errors.NumericalInstabilityError
	require.ErrorAs(t, err, &nie)
	assert.Equal(t, 2, nie.TrainRow)
	assert.Equal(t, 5, nie.QueryCol)

	neg := NewCustom(func(_, _ []float64) float64 { return -1 })
	_, err = neg.Distance(x, y, 0, 0)
	assert.Error(t, err, "negative distances must be rejected")

	panics := NewCustom(func(_, _ []float64) float64 { panic("boom") })
	_, err = panics.Distance(x, y, 0, 0)
	require.Error(t, err)
	var pe *errors.PanicError
	assert.ErrorAs(t, err, &pe)
}

func TestDistanceLengthMismatch(t *testing.T) {
	_, err := NewEuclidean().Distance([]float64{1, 2, 3}, []float64{1, 2}, 0, 0)
	var de *errors.DimensionError
	require.ErrorAs(t, err, &de)
}
