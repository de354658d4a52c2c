package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

func TestWeightMatrix(t *testing.T) {
	D := mat.NewDense(2, 3, []float64{
		0, 1, 2,
		0.5, 1.5, 3,
	})

	W, err := WeightMatrix(D, 2, NewEpanechnikov())
	require.NoError(t, err)

	r, c := W.Dims()
	require.Equal(t, 2, r)
	require.Equal(t, 3, c)

	k := NewEpanechnikov()
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			assert.InDelta(t, k.Weight(D.At(i, j)/2), W.At(i, j), 1e-12)
		}
	}
	// d=3, h=2 lies outside the support.
	assert.Zero(t, W.At(1, 2))
}

func TestWeightMatrixBandwidthScaling(t *testing.T) {
	D := mat.NewDense(1, 1, []float64{2})

	// With h=1 the distance is outside the compact support; with h=10 it is
	// well inside, so the weight must be strictly larger.
	small, err := WeightMatrix(D, 1, NewUniform())
	require.NoError(t, err)
	large, err := WeightMatrix(D, 10, NewUniform())
	require.NoError(t, err)

	assert.Zero(t, small.At(0, 0))
	assert.Greater(t, large.At(0, 0), 0.0)
}

func TestWeightMatrixInvalidBandwidth(t *testing.T) {
	D := mat.NewDense(1, 1, []float64{1})

	for _, h := range []float64{0, -1} {
		_, err := WeightMatrix(D, h, NewNormal())
		var ve *errors.ValidationError
		require.ErrorAs(t, err, &ve, "h=%v", h)
		assert.Equal(t, "bandwidth", ve.ParamName)
	}
}

func TestWeightMatrixCustomFailures(t *testing.T) {
	D := mat.NewDense(1, 2, []float64{1, 2})

	nan := NewCustom(func(_ float64) float64 { return math.NaN() })
	_, err := WeightMatrix(D, 1, nan)
	var nie *errors.NumericalInstabilityError
	require.ErrorAs(t, err, &nie)
	assert.Equal(t, "kernel_weight", nie.Operation)

	neg := NewCustom(func(_ float64) float64 { return -0.5 })
	_, err = WeightMatrix(D, 1, neg)
	assert.Error(t, err, "negative weights must be rejected")

	panics := NewCustom(func(_ float64) float64 { panic("boom") })
	_, err = WeightMatrix(D, 1, panics)
	require.Error(t, err)
	var pe *errors.PanicError
	assert.ErrorAs(t, err, &pe)
}
