// Package neighbors implements the two supervised classifiers for functional
// data: a k-nearest-neighbor classifier (KNNClassifier) and a kernel-weighted
// classifier (KernelClassifier).
//
// Both operate on a semimetric between curves, optionally computed on a
// derivative of the curves, and share the same pipeline: preprocess the
// curves, build the train-vs-query distance matrix, aggregate votes by class
// and normalize into labels or probabilities.
package neighbors

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/core/model"
	"github.com/pfistfl/classiFunc/metrics"
	"github.com/pfistfl/classiFunc/pkg/errors"
	"github.com/pfistfl/classiFunc/pkg/log"
	"github.com/pfistfl/classiFunc/preprocessing"
	"github.com/pfistfl/classiFunc/semimetrics"
)

// KNNClassifier は関数データに対するk近傍分類器。
// 学習済み状態は前処理済みの訓練曲線・ラベル・設定のみで、Predictは状態を変更しない。
type KNNClassifier struct {
	state *model.StateManager

	// Hyperparameters
	k           int
	metric      semimetrics.Metric
	grid        []float64 // nil: Fit時に1..Lの等間隔グリッドを使用
	derivOrder  int
	derivMethod preprocessing.DerivMethod
	leaveOneOut bool // X==nilの予測で自分自身の投票を除外する

	// Fitted state
	proc      *preprocessing.CurveProcessor
	trainProc *mat.Dense
	enc       *classEncoder
	yIdx      []int

	logger log.Logger
}

// KNNOption is a functional option for KNNClassifier.
type KNNOption func(*KNNClassifier)

// WithK sets the number of neighbors (default: 1).
func WithK(k int) KNNOption {
	return func(c *KNNClassifier) {
		c.k = k
	}
}

// WithMetric sets the semimetric (default: Euclidean).
func WithMetric(m semimetrics.Metric) KNNOption {
	return func(c *KNNClassifier) {
		c.metric = m
	}
}

// WithGrid sets the grid the training curves are sampled on. When unset, an
// evenly spaced unit grid 1..L is assumed at Fit time.
func WithGrid(grid []float64) KNNOption {
	return func(c *KNNClassifier) {
		c.grid = append([]float64(nil), grid...)
	}
}

// WithDerivative makes the classifier compare the order-th derivative of the
// curves instead of the curves themselves (default: order 0, difference
// method).
func WithDerivative(order int, method preprocessing.DerivMethod) KNNOption {
	return func(c *KNNClassifier) {
		c.derivOrder = order
		c.derivMethod = method
	}
}

// WithLeaveOneOut controls in-sample prediction (Predict with nil input).
// By default every training row votes, including on itself; with leave-one-out
// enabled a training row is excluded when voting on its own column.
func WithLeaveOneOut(loo bool) KNNOption {
	return func(c *KNNClassifier) {
		c.leaveOneOut = loo
	}
}

// NewKNNClassifier creates a new KNNClassifier.
func NewKNNClassifier(opts ...KNNOption) *KNNClassifier {
	c := &KNNClassifier{
		state:       model.NewStateManager(),
		k:           1,
		metric:      semimetrics.NewEuclidean(),
		derivMethod: preprocessing.DerivDifference,
		logger:      log.GetLoggerWithName("neighbors"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit はモデルを訓練データで学習させる。設定の検証はすべてここで行われ、
// 不正な設定（未知の距離、範囲外のkなど）は即座にエラーになる。
func (c *KNNClassifier) Fit(X mat.Matrix, y []string) error {
	n, L, err := validateTrainingData(X, y, c.grid)
	if err != nil {
		return err
	}
	if c.k < 1 || c.k > n {
		return errors.NewValidationError("k", "must be in [1, n_train]", c.k)
	}
	if err := c.metric.Validate(); err != nil {
		return err
	}

	grid := c.grid
	if grid == nil {
		grid = preprocessing.EvenGrid(1, float64(L), L)
	}
	proc, err := preprocessing.NewCurveProcessor(grid,
		preprocessing.WithDerivOrder(c.derivOrder),
		preprocessing.WithDerivMethod(c.derivMethod),
	)
	if err != nil {
		return err
	}

	processed, err := proc.Transform(X)
	if err != nil {
		return err
	}

	enc, err := newClassEncoder(y)
	if err != nil {
		return err
	}

	c.proc = proc
	c.trainProc = mat.DenseCopyOf(processed)
	c.enc = enc
	c.yIdx = enc.encode(y)
	c.state.SetDimensions(n, L)
	c.state.SetFitted()

	c.logger.Info("fit completed",
		log.ModelNameKey, "KNNClassifier",
		log.OperationKey, "fit",
		log.SamplesKey, n,
		log.GridPointsKey, L,
		log.ClassesKey, len(enc.levels),
		log.NeighborsKey, c.k,
		log.MetricKey, c.metric.Name(),
		log.DerivOrderKey, c.derivOrder,
	)
	return nil
}

// Predict は各クエリ曲線の予測ラベルを返す。
// Xがnilの場合は訓練データ自身に対する予測を行う（デフォルトでは自己除外なし、
// WithLeaveOneOut(true)で除外あり）。
func (c *KNNClassifier) Predict(X mat.Matrix) ([]string, error) {
	scores, err := c.classScores(X)
	if err != nil {
		return nil, err
	}
	return scoresToLabels(scores, c.enc.levels), nil
}

// PredictProba は行=クラスレベル（Classesの順）、列=クエリ曲線の確率行列を返す。
// 各列の合計は1になる。
func (c *KNNClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	scores, err := c.classScores(X)
	if err != nil {
		return nil, err
	}
	return normalizeScores(scores), nil
}

// Classes は学習時に観測されたクラスレベルを辞書順で返す
func (c *KNNClassifier) Classes() []string {
	if c.enc == nil {
		return nil
	}
	return append([]string(nil), c.enc.levels...)
}

// Score は与えられたデータに対する正解率を返す
func (c *KNNClassifier) Score(X mat.Matrix, y []string) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, pred)
}

// classScores builds the raw vote-count table for the query set.
func (c *KNNClassifier) classScores(X mat.Matrix) (*mat.Dense, error) {
	if !c.state.IsFitted() {
		return nil, errors.NewNotFittedError("KNNClassifier", "Predict")
	}

	dist, excludeSelf, err := queryDistances(c.trainProc, X, c.proc, c.metric, c.leaveOneOut)
	if err != nil {
		return nil, err
	}

	n, _ := dist.Dims()
	if excludeSelf && c.k > n-1 {
		return nil, errors.NewValidationError("k",
			"leave-one-out prediction requires k <= n_train-1", c.k)
	}
	return knnScores(dist, c.yIdx, len(c.enc.levels), c.k, excludeSelf), nil
}

// queryDistances computes the train-vs-query distance matrix, applying the
// fitted preprocessing to the query curves. A nil query compares the training
// set against itself.
func queryDistances(trainProc *mat.Dense, X mat.Matrix, proc *preprocessing.CurveProcessor,
	m semimetrics.Metric, leaveOneOut bool,
) (*mat.Dense, bool, error) {
	if X == nil {
		dist, err := semimetrics.PairwiseDistances(trainProc, nil, m)
		return dist, leaveOneOut, err
	}

	queryProc, err := proc.Transform(X)
	if err != nil {
		return nil, false, err
	}
	dist, err := semimetrics.PairwiseDistances(trainProc, queryProc, m)
	return dist, false, err
}

// validateTrainingData checks the common fit-time invariants of both
// classifiers and returns the training dimensions.
func validateTrainingData(X mat.Matrix, y []string, grid []float64) (n, L int, err error) {
	if X == nil {
		return 0, 0, errors.NewModelError("Fit", "empty data", errors.ErrEmptyData)
	}
	n, L = X.Dims()
	if n == 0 || L == 0 {
		return 0, 0, errors.NewModelError("Fit", "empty data", errors.ErrEmptyData)
	}
	if len(y) != n {
		return 0, 0, errors.NewDimensionError("Fit", n, len(y), 0)
	}
	if grid != nil && len(grid) != L {
		return 0, 0, errors.NewDimensionError("Fit", L, len(grid), 1)
	}
	return n, L, nil
}

var _ model.Classifier = (*KNNClassifier)(nil)
