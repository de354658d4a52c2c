package semimetrics

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// PairwiseDistances computes the full distance matrix between two curve sets
// under the given metric. Rows index train observations, columns index query
// observations. A nil query computes the symmetric train-vs-train matrix,
// evaluating each unordered pair once.
//
// Every entry is validated to be finite and non-negative; a violating value
// (typically from a custom metric) is reported as an error carrying the
// offending observation pair, never silently coerced.
//
// Complexity is O(n*m*L) for n train rows, m query rows and grid length L.
// Functional samples are small, so no indexing structure is used.
func PairwiseDistances(train, query mat.Matrix, m Metric) (*mat.Dense, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	n, L := train.Dims()
	if n == 0 || L == 0 {
		return nil, errors.NewModelError("semimetrics.PairwiseDistances", "empty data", errors.ErrEmptyData)
	}

	trainRows := extractRows(train)

	if query == nil {
		D := mat.NewDense(n, n, nil)
		for i := 0; i < n; i++ {
			for j := i; j < n; j++ {
				d, err := m.Distance(trainRows[i], trainRows[j], i, j)
				if err != nil {
					return nil, err
				}
				D.Set(i, j, d)
				D.Set(j, i, d)
			}
		}
		return D, nil
	}

	q, Lq := query.Dims()
	if Lq != L {
		return nil, errors.NewDimensionError("semimetrics.PairwiseDistances", L, Lq, 1)
	}
	queryRows := extractRows(query)

	D := mat.NewDense(n, q, nil)
	for i := 0; i < n; i++ {
		for j := 0; j < q; j++ {
			d, err := m.Distance(trainRows[i], queryRows[j], i, j)
			if err != nil {
				return nil, err
			}
			D.Set(i, j, d)
		}
	}
	return D, nil
}

func extractRows(X mat.Matrix) [][]float64 {
	r, _ := X.Dims()
	rows := make([][]float64, r)
	for i := range rows {
		rows[i] = mat.Row(nil, i, X)
	}
	return rows
}
