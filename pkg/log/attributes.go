// Package log defines standard attribute keys for functional-data classification.
//
// Using these keys consistently across fit, transform and predict operations
// enables structured log analysis and filtering. The keys follow a hierarchical
// naming convention (e.g. "model.name", "data.samples").

package log

// Model and Operation Context
const (
	// ModelNameKey identifies the type of classifier or transformer.
	// Examples: "KNNClassifier", "KernelClassifier", "CurveProcessor"
	ModelNameKey = "model.name"

	// OperationKey specifies the operation being performed.
	// Standard values: "fit", "predict", "predict_proba", "transform", "score"
	OperationKey = "ml.operation"

	// ComponentKey identifies which package is performing the operation.
	// Examples: "neighbors", "preprocessing", "semimetrics", "kernels"
	ComponentKey = "ml.component"
)

// Data Shape and Characteristics
const (
	// SamplesKey indicates the number of curves (rows) in the dataset.
	SamplesKey = "data.samples"

	// GridPointsKey indicates the number of grid points (columns) per curve.
	GridPointsKey = "data.grid_points"

	// QueriesKey indicates the number of query curves in a predict call.
	QueriesKey = "data.queries"

	// ClassesKey indicates the number of distinct class levels.
	ClassesKey = "data.classes"

	// MissingKey indicates the number of missing values filled during transform.
	MissingKey = "data.missing_filled"
)

// Classifier Configuration
const (
	// MetricKey records the semimetric used for the distance matrix.
	// Examples: "Euclidean", "globMax", "dtw", "custom.metric"
	MetricKey = "config.metric"

	// KernelKey records the kernel shape used by the kernel classifier.
	// Examples: "Ker.norm", "Ker.unif", "custom.ker"
	KernelKey = "config.kernel"

	// BandwidthKey records the kernel bandwidth h.
	BandwidthKey = "config.bandwidth"

	// NeighborsKey records k, the number of neighbors.
	NeighborsKey = "config.k"

	// DerivOrderKey records the derivative order applied before the distance.
	DerivOrderKey = "config.deriv_order"

	// DerivMethodKey records the derivative method ("difference" or "bspline").
	DerivMethodKey = "config.deriv_method"
)

// Performance Metrics
const (
	// DurationMsKey records the execution time of an operation in milliseconds.
	DurationMsKey = "perf.duration_ms"

	// AccuracyKey records classification accuracy for score operations.
	AccuracyKey = "metrics.accuracy"
)
