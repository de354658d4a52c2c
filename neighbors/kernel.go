package neighbors

import (
	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/core/model"
	"github.com/pfistfl/classiFunc/kernels"
	"github.com/pfistfl/classiFunc/metrics"
	"github.com/pfistfl/classiFunc/pkg/errors"
	"github.com/pfistfl/classiFunc/pkg/log"
	"github.com/pfistfl/classiFunc/preprocessing"
	"github.com/pfistfl/classiFunc/semimetrics"
)

// KernelClassifier は関数データに対するカーネル重み付き分類器。
// k近傍と違い、すべての訓練曲線が距離に応じたカーネル重みで投票する。
type KernelClassifier struct {
	state *model.StateManager

	// Hyperparameters
	bandwidth   float64
	kernel      kernels.Kernel
	metric      semimetrics.Metric
	grid        []float64
	derivOrder  int
	derivMethod preprocessing.DerivMethod
	leaveOneOut bool

	// Fitted state
	proc      *preprocessing.CurveProcessor
	trainProc *mat.Dense
	enc       *classEncoder
	yIdx      []int

	logger log.Logger
}

// KernelOption is a functional option for KernelClassifier.
type KernelOption func(*KernelClassifier)

// WithBandwidth sets the kernel bandwidth h (default: 1). h must be > 0.
func WithBandwidth(h float64) KernelOption {
	return func(c *KernelClassifier) {
		c.bandwidth = h
	}
}

// WithKernel sets the kernel shape (default: Gaussian).
func WithKernel(k kernels.Kernel) KernelOption {
	return func(c *KernelClassifier) {
		c.kernel = k
	}
}

// WithKernelMetric sets the semimetric (default: Euclidean).
func WithKernelMetric(m semimetrics.Metric) KernelOption {
	return func(c *KernelClassifier) {
		c.metric = m
	}
}

// WithKernelGrid sets the grid the training curves are sampled on.
func WithKernelGrid(grid []float64) KernelOption {
	return func(c *KernelClassifier) {
		c.grid = append([]float64(nil), grid...)
	}
}

// WithKernelDerivative makes the classifier compare the order-th derivative
// of the curves.
func WithKernelDerivative(order int, method preprocessing.DerivMethod) KernelOption {
	return func(c *KernelClassifier) {
		c.derivOrder = order
		c.derivMethod = method
	}
}

// WithKernelLeaveOneOut controls self-exclusion for in-sample prediction,
// mirroring WithLeaveOneOut on the k-NN classifier.
func WithKernelLeaveOneOut(loo bool) KernelOption {
	return func(c *KernelClassifier) {
		c.leaveOneOut = loo
	}
}

// NewKernelClassifier creates a new KernelClassifier.
func NewKernelClassifier(opts ...KernelOption) *KernelClassifier {
	c := &KernelClassifier{
		state:       model.NewStateManager(),
		bandwidth:   1,
		kernel:      kernels.NewNormal(),
		metric:      semimetrics.NewEuclidean(),
		derivMethod: preprocessing.DerivDifference,
		logger:      log.GetLoggerWithName("neighbors"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Fit はモデルを訓練データで学習させる。
// 帯域幅・カーネル・距離の検証はここで行われ、予測時まで持ち越されない。
func (c *KernelClassifier) Fit(X mat.Matrix, y []string) error {
	n, L, err := validateTrainingData(X, y, c.grid)
	if err != nil {
		return err
	}
	if c.bandwidth <= 0 {
		return errors.NewValidationError("bandwidth", "must be > 0", c.bandwidth)
	}
	if err := c.kernel.Validate(); err != nil {
		return err
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
		log.ModelNameKey, "KernelClassifier",
		log.OperationKey, "fit",
		log.SamplesKey, n,
		log.GridPointsKey, L,
		log.ClassesKey, len(enc.levels),
		log.KernelKey, c.kernel.Name(),
		log.BandwidthKey, c.bandwidth,
		log.MetricKey, c.metric.Name(),
		log.DerivOrderKey, c.derivOrder,
	)
	return nil
}

// Predict は各クエリ曲線の予測ラベルを返す。Xがnilの場合は訓練データ自身に対する予測。
func (c *KernelClassifier) Predict(X mat.Matrix) ([]string, error) {
	scores, err := c.classScores(X)
	if err != nil {
		return nil, err
	}
	return scoresToLabels(scores, c.enc.levels), nil
}

// PredictProba は行=クラスレベル、列=クエリ曲線の確率行列を返す。
// すべてのカーネル重みが0になった列は全クラス一様分布にフォールバックする。
func (c *KernelClassifier) PredictProba(X mat.Matrix) (mat.Matrix, error) {
	scores, err := c.classScores(X)
	if err != nil {
		return nil, err
	}
	return normalizeScores(scores), nil
}

// Classes は学習時に観測されたクラスレベルを辞書順で返す
func (c *KernelClassifier) Classes() []string {
	if c.enc == nil {
		return nil
	}
	return append([]string(nil), c.enc.levels...)
}

// Score は与えられたデータに対する正解率を返す
func (c *KernelClassifier) Score(X mat.Matrix, y []string) (float64, error) {
	pred, err := c.Predict(X)
	if err != nil {
		return 0, err
	}
	return metrics.Accuracy(y, pred)
}

// classScores builds the summed kernel-weight table for the query set.
func (c *KernelClassifier) classScores(X mat.Matrix) (*mat.Dense, error) {
	if !c.state.IsFitted() {
		return nil, errors.NewNotFittedError("KernelClassifier", "Predict")
	}

	dist, excludeSelf, err := queryDistances(c.trainProc, X, c.proc, c.metric, c.leaveOneOut)
	if err != nil {
		return nil, err
	}

	weights, err := kernels.WeightMatrix(dist, c.bandwidth, c.kernel)
	if err != nil {
		return nil, err
	}
	return kernelScores(weights, c.yIdx, len(c.enc.levels), excludeSelf), nil
}

var _ model.Classifier = (*KernelClassifier)(nil)
