// Package semimetrics implements the distance and semimetric registry used to
// compare functional observations (curves sampled on a common grid).
//
// A semimetric is a distance-like function of two equal-length vectors that may
// violate strict metric axioms (e.g. the identity of indiscernibles for
// "globMax") but is still meaningful for ranking similarity between curves.
// Window and point parameters are expressed as fractions of the domain in
// [0, 1], so they stay valid regardless of grid length.
package semimetrics

import (
	"math"

	"github.com/katalvlaran/lvlath/dtw"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// Kind enumerates the built-in semimetric family plus the custom escape hatch.
// Dispatch happens via switch on Kind, so adding a variant without handling it
// everywhere is a compile-visible gap rather than a runtime string miss.
type Kind int

const (
	// Euclidean is the plain L2 distance between the two curves.
	Euclidean Kind = iota
	// Manhattan is the L1 distance.
	Manhattan
	// Minkowski is the Lp distance with configurable order P.
	Minkowski
	// Supremum is the L-infinity (Chebyshev) distance.
	Supremum
	// ShortEuclidean is the L2 distance restricted to the window [DMin, DMax].
	ShortEuclidean
	// Mean is the absolute difference of the curve means.
	Mean
	// RelAreas compares the ratios of the trapezoid areas over two windows.
	RelAreas
	// Jump compares the value increments between positions T1 and T2.
	Jump
	// GlobMax is the absolute difference of the global maxima.
	GlobMax
	// GlobMin is the absolute difference of the global minima.
	GlobMin
	// Points is the mean absolute difference at the points of interest POI.
	Points
	// DTW is the dynamic time warping distance with optional Sakoe-Chiba window.
	DTW
	// Custom applies a user-supplied pairwise function ("custom.metric").
	Custom
)

// Func is a user-supplied pairwise distance function for the custom.metric
// escape hatch. It must return a finite, non-negative value.
type Func func(x, y []float64) float64

// Metric is a tagged semimetric selection: a Kind plus the parameters the
// chosen variant reads. Construct via the New* constructors or ParseMetric.
type Metric struct {
	Kind Kind

	// P is the Minkowski order (P >= 1).
	P float64

	// DMin, DMax bound the ShortEuclidean window as fractions of the domain.
	DMin, DMax float64

	// DMin1..DMax2 bound the two RelAreas windows.
	DMin1, DMax1, DMin2, DMax2 float64

	// T1, T2 locate the Jump positions.
	T1, T2 float64

	// POI are the Points positions; empty means every grid point.
	POI []float64

	// Window is the DTW Sakoe-Chiba band half-width; 0 means unconstrained.
	Window int

	// Fn holds the custom.metric function.
	Fn Func
}

// NewEuclidean returns the L2 metric.
func NewEuclidean() Metric { return Metric{Kind: Euclidean} }

// NewManhattan returns the L1 metric.
func NewManhattan() Metric { return Metric{Kind: Manhattan} }

// NewMinkowski returns the Lp metric of order p.
func NewMinkowski(p float64) Metric { return Metric{Kind: Minkowski, P: p} }

// NewSupremum returns the L-infinity metric.
func NewSupremum() Metric { return Metric{Kind: Supremum} }

// NewShortEuclidean returns the windowed L2 semimetric. dmin and dmax are
// fractions of the domain; the defaults in ParseMetric are 0 and 1.
func NewShortEuclidean(dmin, dmax float64) Metric {
	return Metric{Kind: ShortEuclidean, DMin: dmin, DMax: dmax}
}

// NewMean returns the mean-difference semimetric.
func NewMean() Metric { return Metric{Kind: Mean} }

// NewRelAreas returns the relative-areas semimetric comparing the windows
// [dmin1, dmax1] and [dmin2, dmax2].
func NewRelAreas(dmin1, dmax1, dmin2, dmax2 float64) Metric {
	return Metric{Kind: RelAreas, DMin1: dmin1, DMax1: dmax1, DMin2: dmin2, DMax2: dmax2}
}

// NewJump returns the jump-height semimetric between positions t1 and t2.
func NewJump(t1, t2 float64) Metric { return Metric{Kind: Jump, T1: t1, T2: t2} }

// NewGlobMax returns the global-maximum semimetric.
func NewGlobMax() Metric { return Metric{Kind: GlobMax} }

// NewGlobMin returns the global-minimum semimetric.
func NewGlobMin() Metric { return Metric{Kind: GlobMin} }

// NewPoints returns the points-of-interest semimetric. poi positions are
// fractions of the domain; nil means all grid points.
func NewPoints(poi []float64) Metric {
	return Metric{Kind: Points, POI: append([]float64(nil), poi...)}
}

// NewDTW returns the dynamic time warping semimetric. window is the
// Sakoe-Chiba band half-width; 0 disables the constraint.
func NewDTW(window int) Metric { return Metric{Kind: DTW, Window: window} }

// NewCustom returns the custom.metric escape hatch wrapping fn.
func NewCustom(fn Func) Metric { return Metric{Kind: Custom, Fn: fn} }

// metricNames maps the string surface (ParseMetric) to constructors with the
// documented default parameters.
var metricNames = map[string]func() Metric{
	"Euclidean":      NewEuclidean,
	"Manhattan":      NewManhattan,
	"Minkowski":      func() Metric { return NewMinkowski(2) },
	"supremum":       NewSupremum,
	"shortEuclidean": func() Metric { return NewShortEuclidean(0, 1) },
	"mean":           NewMean,
	"relAreas":       func() Metric { return NewRelAreas(0, 0.5, 0.5, 1) },
	"jump":           func() Metric { return NewJump(0, 1) },
	"globMax":        NewGlobMax,
	"globMin":        NewGlobMin,
	"points":         func() Metric { return NewPoints(nil) },
	"dtw":            func() Metric { return NewDTW(0) },
}

// KnownMetrics returns the names accepted by ParseMetric, in stable order.
func KnownMetrics() []string {
	return []string{
		"Euclidean", "Manhattan", "Minkowski", "supremum", "shortEuclidean",
		"mean", "relAreas", "jump", "globMax", "globMin", "points", "dtw",
	}
}

// ParseMetric resolves a metric name to a Metric with default parameters.
// The name "custom.metric" is rejected here: custom metrics carry a function
// value and must be built with NewCustom.
func ParseMetric(name string) (Metric, error) {
	if name == "custom.metric" {
		return Metric{}, errors.NewValidationError("metric",
			"custom.metric requires a function; use NewCustom", name)
	}
	ctor, ok := metricNames[name]
	if !ok {
		return Metric{}, errors.NewUnknownMetricError(name, KnownMetrics())
	}
	return ctor(), nil
}

// Name returns the registry name of the metric.
func (m Metric) Name() string {
	switch m.Kind {
	case Euclidean:
		return "Euclidean"
	case Manhattan:
		return "Manhattan"
	case Minkowski:
		return "Minkowski"
	case Supremum:
		return "supremum"
	case ShortEuclidean:
		return "shortEuclidean"
	case Mean:
		return "mean"
	case RelAreas:
		return "relAreas"
	case Jump:
		return "jump"
	case GlobMax:
		return "globMax"
	case GlobMin:
		return "globMin"
	case Points:
		return "points"
	case DTW:
		return "dtw"
	case Custom:
		return "custom.metric"
	default:
		return "unknown"
	}
}

// Validate checks the metric configuration. Configuration problems are
// reported here, at fit time, rather than surfacing mid-prediction.
func (m Metric) Validate() error {
	switch m.Kind {
	case Euclidean, Manhattan, Supremum, Mean, GlobMax, GlobMin:
		return nil
	case Minkowski:
		if m.P < 1 {
			return errors.NewValidationError("metric.P", "Minkowski order must be >= 1", m.P)
		}
	case ShortEuclidean:
		return checkWindow("metric", m.DMin, m.DMax)
	case RelAreas:
		if err := checkWindow("metric.window1", m.DMin1, m.DMax1); err != nil {
			return err
		}
		return checkWindow("metric.window2", m.DMin2, m.DMax2)
	case Jump:
		return checkWindow("metric", m.T1, m.T2)
	case Points:
		for _, t := range m.POI {
			if t < 0 || t > 1 {
				return errors.NewValidationError("metric.POI", "positions must lie in [0, 1]", t)
			}
		}
	case DTW:
		if m.Window < 0 {
			return errors.NewValidationError("metric.Window", "DTW window must be >= 0", m.Window)
		}
	case Custom:
		if m.Fn == nil {
			return errors.NewValidationError("metric", "custom.metric requires a non-nil function", nil)
		}
	default:
		return errors.NewUnknownMetricError(m.Name(), KnownMetrics())
	}
	return nil
}

func checkWindow(param string, lo, hi float64) error {
	if lo < 0 || hi > 1 || lo >= hi {
		return errors.NewValidationError(param,
			"window bounds must satisfy 0 <= lo < hi <= 1", []float64{lo, hi})
	}
	return nil
}

// Distance evaluates the semimetric on two equal-length vectors.
// trainRow and queryCol identify the observation pair for error reporting.
func (m Metric) Distance(x, y []float64, trainRow, queryCol int) (float64, error) {
	if len(x) != len(y) {
		return 0, errors.NewDimensionError("semimetrics.Distance", len(x), len(y), 1)
	}

	var d float64
	switch m.Kind {
	case Euclidean:
		d = lpDist(x, y, 2)
	case Manhattan:
		d = lpDist(x, y, 1)
	case Minkowski:
		d = lpDist(x, y, m.P)
	case Supremum:
		for i := range x {
			d = math.Max(d, math.Abs(x[i]-y[i]))
		}
	case ShortEuclidean:
		lo, hi := windowIdx(len(x), m.DMin, m.DMax)
		d = lpDist(x[lo:hi], y[lo:hi], 2)
	case Mean:
		d = math.Abs(meanOf(x) - meanOf(y))
	case RelAreas:
		d = math.Abs(relArea(x, m) - relArea(y, m))
	case Jump:
		i1 := posIdx(len(x), m.T1)
		i2 := posIdx(len(x), m.T2)
		d = math.Abs((x[i2] - x[i1]) - (y[i2] - y[i1]))
	case GlobMax:
		d = math.Abs(maxOf(x) - maxOf(y))
	case GlobMin:
		d = math.Abs(minOf(x) - minOf(y))
	case Points:
		d = pointsDist(x, y, m.POI)
	case DTW:
		// Our Window uses 0 for "unconstrained"; lvlath uses DefaultWindow (-1).
		window := m.Window
		if window == 0 {
			window = dtw.DefaultWindow
		}
		dist, _, err := dtw.DTW(x, y, &dtw.Options{
			Window:     window,
			MemoryMode: dtw.TwoRows,
		})
		if err != nil {
			return 0, errors.Wrap(err, "classifunc: dtw distance failed")
		}
		d = dist
	case Custom:
		var err error
		d, err = m.callCustom(x, y)
		if err != nil {
			return 0, errors.Wrapf(err, "classifunc: custom metric failed for pair (train=%d, query=%d)", trainRow, queryCol)
		}
	default:
		return 0, errors.NewUnknownMetricError(m.Name(), KnownMetrics())
	}

	if err := errors.CheckDistance("pairwise_distance", d, trainRow, queryCol); err != nil {
		return 0, err
	}
	return d, nil
}

// callCustom invokes the user function with panic recovery; a panicking
// metric surfaces as an error on the offending pair instead of aborting
// the whole prediction.
func (m Metric) callCustom(x, y []float64) (d float64, err error) {
	defer errors.Recover(&err, "custom metric")
	d = m.Fn(x, y)
	return d, nil
}

func lpDist(x, y []float64, p float64) float64 {
	if p == 2 {
		sum := 0.0
		for i := range x {
			diff := x[i] - y[i]
			sum += diff * diff
		}
		return math.Sqrt(sum)
	}
	if p == 1 {
		sum := 0.0
		for i := range x {
			sum += math.Abs(x[i] - y[i])
		}
		return sum
	}
	sum := 0.0
	for i := range x {
		sum += math.Pow(math.Abs(x[i]-y[i]), p)
	}
	return math.Pow(sum, 1/p)
}

func meanOf(x []float64) float64 {
	sum := 0.0
	for _, v := range x {
		sum += v
	}
	return sum / float64(len(x))
}

func maxOf(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		m = math.Max(m, v)
	}
	return m
}

func minOf(x []float64) float64 {
	m := x[0]
	for _, v := range x[1:] {
		m = math.Min(m, v)
	}
	return m
}

// windowIdx maps fractional window bounds onto index bounds [lo, hi) with at
// least one point inside.
func windowIdx(n int, dmin, dmax float64) (int, int) {
	lo := int(math.Floor(dmin * float64(n-1)))
	hi := int(math.Ceil(dmax*float64(n-1))) + 1
	if hi > n {
		hi = n
	}
	if hi <= lo {
		hi = lo + 1
	}
	return lo, hi
}

// posIdx maps a fractional position onto the nearest grid index.
func posIdx(n int, t float64) int {
	i := int(math.Round(t * float64(n-1)))
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// relArea is the ratio of the trapezoid areas of |x| over the two windows.
// A zero second-window area yields 0 via the guarded division.
func relArea(x []float64, m Metric) float64 {
	lo1, hi1 := windowIdx(len(x), m.DMin1, m.DMax1)
	lo2, hi2 := windowIdx(len(x), m.DMin2, m.DMax2)
	return errors.SafeDivide(trapezoid(x[lo1:hi1]), trapezoid(x[lo2:hi2]))
}

// trapezoid integrates |x| with unit spacing.
func trapezoid(x []float64) float64 {
	if len(x) < 2 {
		if len(x) == 1 {
			return math.Abs(x[0])
		}
		return 0
	}
	sum := 0.0
	for i := 1; i < len(x); i++ {
		sum += (math.Abs(x[i-1]) + math.Abs(x[i])) / 2
	}
	return sum
}

// pointsDist is the mean absolute difference at the points of interest.
func pointsDist(x, y []float64, poi []float64) float64 {
	if len(poi) == 0 {
		sum := 0.0
		for i := range x {
			sum += math.Abs(x[i] - y[i])
		}
		return sum / float64(len(x))
	}
	sum := 0.0
	for _, t := range poi {
		i := posIdx(len(x), t)
		sum += math.Abs(x[i] - y[i])
	}
	return sum / float64(len(poi))
}
