package errors

import (
	"math"
)

// CheckScalar checks a single scalar value for numerical instability.
// trainRow and queryCol identify the observation pair that produced the value;
// pass -1 when not applicable.
func CheckScalar(operation string, value float64, trainRow, queryCol int) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return NewNumericalInstabilityError(operation, []float64{value}, trainRow, queryCol)
	}
	return nil
}

// CheckDistance checks that a distance value is finite and non-negative.
// Used to validate entries produced by custom metric functions.
func CheckDistance(operation string, value float64, trainRow, queryCol int) error {
	if err := CheckScalar(operation, value, trainRow, queryCol); err != nil {
		return err
	}
	if value < 0 {
		return NewNumericalInstabilityError(operation, []float64{value}, trainRow, queryCol)
	}
	return nil
}

// CheckMatrix checks all values in a matrix for numerical instability.
// The offending row/column pair is reported on the error.
func CheckMatrix(operation string, matrix interface{ At(int, int) float64 }, rows, cols int) error {
	for i := 0; i < rows; i++ {
		for j := 0; j < cols; j++ {
			if err := CheckScalar(operation, matrix.At(i, j), i, j); err != nil {
				return err
			}
		}
	}
	return nil
}

// SafeDivide performs division with protection against division by zero.
// Returns 0 if denominator is zero or close to zero.
func SafeDivide(numerator, denominator float64) float64 {
	if math.Abs(denominator) < 1e-10 {
		return 0
	}
	return numerator / denominator
}
