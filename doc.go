// Package classifunc provides supervised classification for functional data:
// observations that are curves sampled on a common grid rather than plain
// feature vectors.
//
// Two classifiers are included, both built on a configurable semimetric
// between curves:
//
// - KNNClassifier: k-nearest-neighbor voting over the curve distances
// - KernelClassifier: kernel-weighted voting with a bandwidth parameter
//
// Curves can be compared directly or through their derivatives, with missing
// values filled by spline interpolation and irregular grids re-sampled
// automatically.
//
// # Installation
//
//	go get github.com/pfistfl/classiFunc
//
// # Quick Start
//
// Nearest-neighbor classification of curves:
//
//	package main
//
//	import (
//	    "fmt"
//	    "log"
//
//	    "github.com/pfistfl/classiFunc/neighbors"
//	    "gonum.org/v1/gonum/mat"
//	)
//
//	func main() {
//	    // Four curves sampled at five grid points, two per class.
//	    X := mat.NewDense(4, 5, []float64{
//	        1, 2, 3, 4, 5,
//	        1.1, 2.1, 3.1, 4.1, 5.1,
//	        2, 4, 6, 8, 10,
//	        2.1, 4.2, 6.1, 8.2, 10.1,
//	    })
//	    y := []string{"flat", "flat", "steep", "steep"}
//
//	    clf := neighbors.NewKNNClassifier(neighbors.WithK(1))
//	    if err := clf.Fit(X, y); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    query := mat.NewDense(1, 5, []float64{1, 2.1, 2.9, 4, 5.2})
//	    pred, err := clf.Predict(query)
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(pred) // [flat]
//	}
//
// # Packages
//
// - neighbors: the KNNClassifier and KernelClassifier estimators
// - semimetrics: distances between curves (Lp, windowed, DTW, custom, ...)
// - kernels: kernel shapes turning distances into voting weights
// - preprocessing: grid handling, missing-value filling and derivatives
// - metrics: accuracy and the confusion matrix
//
// # Error Handling
//
// Configuration problems (unknown metric names, non-positive bandwidths, k
// out of range) surface at Fit time as typed errors from pkg/errors, with
// stack traces attached. Data-quality issues that can be repaired (missing
// values, irregular grids) are repaired and reported through the warning
// handler instead of failing the fit.
package classifunc
