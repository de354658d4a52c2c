package kernels

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

func TestWeightAtZero(t *testing.T) {
	tests := []struct {
		name string
		k    Kernel
		want float64
	}{
		{"Ker.norm", NewNormal(), 1 / math.Sqrt(2*math.Pi)},
		{"Ker.cos", NewCosine(), math.Pi / 4},
		{"Ker.epa", NewEpanechnikov(), 0.75},
		{"Ker.tri", NewTriangular(), 1},
		{"Ker.quar", NewQuartic(), 15.0 / 16.0},
		{"Ker.triw", NewTriweight(), 35.0 / 32.0},
		{"Ker.unif", NewUniform(), 0.5},
		{"AKer.norm", Kernel{Kind: ANormal}, 2 / math.Sqrt(2*math.Pi)},
		{"AKer.cos", Kernel{Kind: ACosine}, math.Pi / 2},
		{"AKer.epa", Kernel{Kind: AEpanechnikov}, 1.5},
		{"AKer.unif", Kernel{Kind: AUniform}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.k.Name())
			assert.InDelta(t, tt.want, tt.k.Weight(0), 1e-12)
		})
	}
}

func TestCompactSupport(t *testing.T) {
	compact := []Kernel{
		NewCosine(), NewEpanechnikov(), NewTriangular(), NewQuartic(),
		NewTriweight(), NewUniform(),
		{Kind: ACosine}, {Kind: AEpanechnikov}, {Kind: AUniform},
	}
	for _, k := range compact {
		t.Run(k.Name(), func(t *testing.T) {
			assert.Zero(t, k.Weight(1.5), "weight outside the support must be 0")
			assert.GreaterOrEqual(t, k.Weight(0.5), 0.0)
		})
	}

	// The normal kernel has unbounded support.
	assert.Greater(t, NewNormal().Weight(1.5), 0.0)
	assert.Greater(t, Kernel{Kind: ANormal}.Weight(1.5), 0.0)
}

func TestWeightMonotoneDecreasing(t *testing.T) {
	kernels := []Kernel{
		NewNormal(), NewCosine(), NewEpanechnikov(), NewTriangular(),
		NewQuartic(), NewTriweight(),
	}
	for _, k := range kernels {
		t.Run(k.Name(), func(t *testing.T) {
			prev := k.Weight(0)
			for u := 0.1; u <= 1.0; u += 0.1 {
				w := k.Weight(u)
				assert.LessOrEqual(t, w, prev, "weight must not increase with distance (u=%v)", u)
				prev = w
			}
		})
	}
}

func TestAsymmetricRejectNegative(t *testing.T) {
	for _, k := range []Kernel{{Kind: ANormal}, {Kind: ACosine}, {Kind: AEpanechnikov}, {Kind: AUniform}} {
		assert.Zero(t, k.Weight(-0.5), "%s must be 0 for negative u", k.Name())
	}
	// Symmetric kernels mirror.
	assert.Equal(t, NewEpanechnikov().Weight(0.5), NewEpanechnikov().Weight(-0.5))
}

func TestParseKernel(t *testing.T) {
	for _, name := range KnownKernels() {
		k, err := ParseKernel(name)
		require.NoError(t, err, name)
		assert.Equal(t, name, k.Name())
		assert.NoError(t, k.Validate())
	}

	_, err := ParseKernel("Ker.bogus")
	var uke *errors.UnknownKernelError
	require.ErrorAs(t, err, &uke)
	assert.Equal(t, "Ker.bogus", uke.Name)

	_, err = ParseKernel("custom.ker")
	var ve *errors.ValidationError
	assert.ErrorAs(t, err, &ve, "custom.ker must be built via NewCustom")
}

func TestCustomKernel(t *testing.T) {
	k := NewCustom(func(u float64) float64 { return math.Exp(-u) })
	require.NoError(t, k.Validate())
	assert.Equal(t, "custom.ker", k.Name())
	assert.InDelta(t, math.Exp(-2), k.Weight(2), 1e-12)

	assert.Error(t, NewCustom(nil).Validate())
}
