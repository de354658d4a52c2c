package kernels

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// WeightMatrix applies the kernel elementwise to a distance matrix scaled by
// the bandwidth h: W[i,j] = k.Weight(D[i,j] / h).
//
// h must be > 0; a zero bandwidth is a configuration error (division by
// zero), never silently corrected. Custom kernel outputs are validated to be
// finite and non-negative, with the offending observation pair reported;
// panics inside the custom function are recovered into errors.
func WeightMatrix(D mat.Matrix, h float64, k Kernel) (*mat.Dense, error) {
	if err := k.Validate(); err != nil {
		return nil, err
	}
	if h <= 0 {
		return nil, errors.NewValidationError("bandwidth", "must be > 0", h)
	}

	r, c := D.Dims()
	W := mat.NewDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			w, err := safeWeight(k, D.At(i, j)/h)
			if err != nil {
				return nil, errors.Wrapf(err, "classifunc: custom kernel failed for pair (train=%d, query=%d)", i, j)
			}
			if err := errors.CheckDistance("kernel_weight", w, i, j); err != nil {
				return nil, err
			}
			W.Set(i, j, w)
		}
	}
	return W, nil
}

func safeWeight(k Kernel, u float64) (w float64, err error) {
	if k.Kind == CustomKer {
		defer errors.Recover(&err, "custom kernel")
	}
	w = k.Weight(u)
	return w, nil
}
