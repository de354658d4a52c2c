// Vote aggregation: turning a distance or kernel-weight matrix into per-class
// scores and final labels or probabilities.
//
// Both classifiers share the same score-table shape: one row per class level
// (in the encoder's stable order), one column per query observation.
package neighbors

import (
	"sort"

	"gonum.org/v1/gonum/mat"
)

// knnScores builds the class score table for k-NN voting. For each query
// column the k training rows with the smallest distances vote with weight 1.
// Distance ties are broken by original row order (stable ascending sort).
// excludeSelf skips the diagonal entry; it is only meaningful when dist is
// the square train-vs-train matrix.
func knnScores(dist *mat.Dense, yIdx []int, nClasses, k int, excludeSelf bool) *mat.Dense {
	n, q := dist.Dims()
	scores := mat.NewDense(nClasses, q, nil)

	order := make([]int, n)
	for col := 0; col < q; col++ {
		order = order[:0]
		for i := 0; i < n; i++ {
			if excludeSelf && i == col {
				continue
			}
			order = append(order, i)
		}
		sort.SliceStable(order, func(a, b int) bool {
			return dist.At(order[a], col) < dist.At(order[b], col)
		})

		for _, i := range order[:k] {
			class := yIdx[i]
			scores.Set(class, col, scores.At(class, col)+1)
		}
	}
	return scores
}

// kernelScores builds the class score table for kernel voting: every training
// row contributes its kernel weight to its own class, for every query column.
func kernelScores(weights *mat.Dense, yIdx []int, nClasses int, excludeSelf bool) *mat.Dense {
	n, q := weights.Dims()
	scores := mat.NewDense(nClasses, q, nil)

	for col := 0; col < q; col++ {
		for i := 0; i < n; i++ {
			if excludeSelf && i == col {
				continue
			}
			class := yIdx[i]
			scores.Set(class, col, scores.At(class, col)+weights.At(i, col))
		}
	}
	return scores
}

// scoresToLabels picks the winning class per query column. Score ties are
// broken by the first-occurring maximum in class-level order, which keeps
// predictions deterministic.
func scoresToLabels(scores *mat.Dense, levels []string) []string {
	nClasses, q := scores.Dims()
	labels := make([]string, q)
	for col := 0; col < q; col++ {
		best := 0
		for class := 1; class < nClasses; class++ {
			if scores.At(class, col) > scores.At(best, col) {
				best = class
			}
		}
		labels[col] = levels[best]
	}
	return labels
}

// normalizeScores converts a class score table into per-column probabilities.
// A column whose scores sum to zero (every kernel weight vanished because the
// query lies outside the kernel support) falls back to the uniform
// distribution over all classes. That fallback is documented behavior, not an
// error, and keeps every probability column summing to 1.
func normalizeScores(scores *mat.Dense) *mat.Dense {
	nClasses, q := scores.Dims()
	probs := mat.NewDense(nClasses, q, nil)

	for col := 0; col < q; col++ {
		total := 0.0
		for class := 0; class < nClasses; class++ {
			total += scores.At(class, col)
		}
		if total == 0 {
			uniform := 1 / float64(nClasses)
			for class := 0; class < nClasses; class++ {
				probs.Set(class, col, uniform)
			}
			continue
		}
		for class := 0; class < nClasses; class++ {
			probs.Set(class, col, scores.At(class, col)/total)
		}
	}
	return probs
}
