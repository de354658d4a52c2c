// Package preprocessing は関数データ（グリッド上で標本化された曲線）の前処理を提供します。
// scikit-learnのTransformer規約に倣い、学習時に構成した変換を新しいデータへ
// そのまま再適用できるようにします。
package preprocessing

import (
	"math"

	"gonum.org/v1/gonum/interp"
	"gonum.org/v1/gonum/mat"

	"github.com/pfistfl/classiFunc/core/model"
	"github.com/pfistfl/classiFunc/pkg/errors"
)

// DerivMethod は微分の計算方式
type DerivMethod int

const (
	// DerivDifference は等間隔グリッド上の前方差分をd回適用する方式。
	// 出力の列数はdだけ減り、出力グリッドは入力グリッドの先頭L-d点に対応する。
	DerivDifference DerivMethod = iota
	// DerivBSpline はB-スプライン基底への最小二乗フィットを解析的に微分する方式。
	// 列数は保存される。次数3の基底を使うため、対応する微分階数は2まで。
	DerivBSpline
)

// String はDerivMethodの名前を返す
func (m DerivMethod) String() string {
	switch m {
	case DerivDifference:
		return "difference"
	case DerivBSpline:
		return "bspline"
	default:
		return "unknown"
	}
}

// CurveProcessor は曲線行列の前処理器。
// グリッド・微分階数・欠損値補間の設定を構築時に固定し、Transformで
// 任意の曲線行列（学習データでも新規データでも）に同一の変換を適用する。
//
// 変換は3段階:
//  1. 欠損値(NaN)を行ごとの3次スプラインで補間（MissingValuesWarningを発行）
//  2. グリッドが等間隔でなければ同数の等間隔グリッドへ再標本化（IrregularGridWarningを発行）
//  3. 指定された方式・階数で微分
//
// 等間隔・完全なデータに対する階数0の変換は恒等写像になる。
type CurveProcessor struct {
	grid     []float64 // 入力グリッド（学習時に固定）
	workGrid []float64 // 等間隔の作業グリッド（gridが等間隔ならそのまま）
	even     bool
	spread   float64

	derivOrder  int
	method      DerivMethod
	fillMissing bool
}

// ProcessorOption はCurveProcessorの設定オプション
type ProcessorOption func(*CurveProcessor)

// WithDerivOrder は微分階数を設定する（デフォルト: 0）
func WithDerivOrder(order int) ProcessorOption {
	return func(p *CurveProcessor) {
		p.derivOrder = order
	}
}

// WithDerivMethod は微分方式を設定する（デフォルト: DerivDifference）
func WithDerivMethod(method DerivMethod) ProcessorOption {
	return func(p *CurveProcessor) {
		p.method = method
	}
}

// WithMissingFill は欠損値のスプライン補間を有効/無効にする（デフォルト: 有効）。
// 無効にした場合、NaNを含む入力はエラーになる。
func WithMissingFill(fill bool) ProcessorOption {
	return func(p *CurveProcessor) {
		p.fillMissing = fill
	}
}

// NewCurveProcessor は新しいCurveProcessorを作成する。
// gridは狭義単調増加でなければならない。設定の検証はここで行われ、
// 不正な設定はTransformまで持ち越されない。
func NewCurveProcessor(grid []float64, opts ...ProcessorOption) (*CurveProcessor, error) {
	if err := CheckGrid(grid); err != nil {
		return nil, err
	}

	p := &CurveProcessor{
		grid:        append([]float64(nil), grid...),
		fillMissing: true,
	}
	for _, opt := range opts {
		opt(p)
	}

	if p.derivOrder < 0 {
		return nil, errors.NewValidationError("derivOrder", "must be a non-negative integer", p.derivOrder)
	}
	switch p.method {
	case DerivDifference:
		if p.derivOrder >= len(grid) {
			return nil, errors.NewValidationError("derivOrder",
				"difference method requires derivOrder < number of grid points", p.derivOrder)
		}
	case DerivBSpline:
		if p.derivOrder > bsplineDegree-1 {
			return nil, errors.NewValidationError("derivOrder",
				"bspline method supports derivative orders up to 2", p.derivOrder)
		}
		if len(grid) < bsplineDegree+1 {
			return nil, errors.NewValidationError("grid",
				"bspline method requires at least 4 grid points", len(grid))
		}
	default:
		return nil, errors.NewValidationError("derivMethod", "unknown derivative method", int(p.method))
	}

	p.spread = GridSpread(grid)
	p.even = p.spread <= evenSpacingTol
	if p.even {
		p.workGrid = p.grid
	} else {
		p.workGrid = EvenGrid(grid[0], grid[len(grid)-1], len(grid))
	}

	return p, nil
}

// Grid は構築時に指定された入力グリッドを返す
func (p *CurveProcessor) Grid() []float64 {
	return append([]float64(nil), p.grid...)
}

// OutputGrid はTransformの出力列に対応するグリッドを返す。
// 差分方式では作業グリッドの先頭L-d点、それ以外では作業グリッド全体。
func (p *CurveProcessor) OutputGrid() []float64 {
	if p.method == DerivDifference {
		return append([]float64(nil), p.workGrid[:len(p.workGrid)-p.derivOrder]...)
	}
	return append([]float64(nil), p.workGrid...)
}

// DerivOrder は微分階数を返す
func (p *CurveProcessor) DerivOrder() int {
	return p.derivOrder
}

// Method は微分方式を返す
func (p *CurveProcessor) Method() DerivMethod {
	return p.method
}

// Transform は曲線行列を変換する。
// Xの列数は構築時のグリッド長と一致しなければならない。
func (p *CurveProcessor) Transform(X mat.Matrix) (mat.Matrix, error) {
	r, c := X.Dims()
	if r == 0 || c == 0 {
		return nil, errors.NewModelError("CurveProcessor.Transform", "empty data", errors.ErrEmptyData)
	}
	if c != len(p.grid) {
		return nil, errors.NewDimensionError("CurveProcessor.Transform", len(p.grid), c, 1)
	}

	out := mat.NewDense(r, c, nil)
	out.Copy(X)

	if err := p.handleMissing(out); err != nil {
		return nil, err
	}

	if !p.even {
		if err := p.respace(out); err != nil {
			return nil, err
		}
		errors.Warn(errors.NewIrregularGridWarning("CurveProcessor.Transform", len(p.grid), p.spread))
	}

	var result mat.Matrix = out
	switch p.method {
	case DerivDifference:
		result = p.differenceDeriv(out)
	case DerivBSpline:
		if p.derivOrder > 0 {
			deriv, err := p.bsplineDeriv(out)
			if err != nil {
				return nil, err
			}
			result = deriv
		}
	}

	// NaN入力は補間で処理済みなので、ここで引っかかるのは入力に混入した
	// Infか発散した微分のみ。
	rOut, cOut := result.Dims()
	if err := errors.CheckMatrix("CurveProcessor.Transform", result, rOut, cOut); err != nil {
		return nil, err
	}
	return result, nil
}

// handleMissing は欠損値をスプライン補間で埋める。補間が行われた場合は警告を発行する。
func (p *CurveProcessor) handleMissing(X *mat.Dense) error {
	r, c := X.Dims()
	rowsWithNA := 0
	filled := 0

	for i := 0; i < r; i++ {
		row := X.RawRowView(i)
		missing := 0
		for _, v := range row {
			if math.IsNaN(v) {
				missing++
			}
		}
		if missing == 0 {
			continue
		}
		if !p.fillMissing {
			return errors.NewValueError("CurveProcessor.Transform",
				"input contains missing values and missing-value filling is disabled")
		}
		if c-missing < 2 {
			return errors.NewValueError("CurveProcessor.Transform",
				"a curve must have at least 2 observed values for spline filling")
		}

		xs := make([]float64, 0, c-missing)
		ys := make([]float64, 0, c-missing)
		for j, v := range row {
			if !math.IsNaN(v) {
				xs = append(xs, p.grid[j])
				ys = append(ys, v)
			}
		}
		var spline interp.NaturalCubic
		if err := spline.Fit(xs, ys); err != nil {
			return errors.Wrap(err, "classifunc: spline fit for missing-value filling failed")
		}
		for j, v := range row {
			if math.IsNaN(v) {
				X.Set(i, j, spline.Predict(p.grid[j]))
			}
		}

		rowsWithNA++
		filled += missing
	}

	if filled > 0 {
		errors.Warn(errors.NewMissingValuesWarning("CurveProcessor.Transform", rowsWithNA, filled))
	}
	return nil
}

// respace は各行を等間隔な作業グリッドへスプラインで再標本化する
func (p *CurveProcessor) respace(X *mat.Dense) error {
	r, _ := X.Dims()
	for i := 0; i < r; i++ {
		row := append([]float64(nil), X.RawRowView(i)...)
		var spline interp.NaturalCubic
		if err := spline.Fit(p.grid, row); err != nil {
			return errors.Wrap(err, "classifunc: spline fit for grid re-sampling failed")
		}
		for j, x := range p.workGrid {
			X.Set(i, j, spline.Predict(x))
		}
	}
	return nil
}

// differenceDeriv は前方差分をderivOrder回適用する。列数は1回につき1減る。
func (p *CurveProcessor) differenceDeriv(X *mat.Dense) *mat.Dense {
	if p.derivOrder == 0 {
		return X
	}

	r, c := X.Dims()
	step := p.workGrid[1] - p.workGrid[0]
	cur := X
	for d := 0; d < p.derivOrder; d++ {
		next := mat.NewDense(r, c-d-1, nil)
		for i := 0; i < r; i++ {
			for j := 0; j < c-d-1; j++ {
				next.Set(i, j, (cur.At(i, j+1)-cur.At(i, j))/step)
			}
		}
		cur = next
	}
	return cur
}

var _ model.CurveTransformer = (*CurveProcessor)(nil)

// bsplineDeriv はB-スプライン基底フィットの解析微分を各行に適用する
func (p *CurveProcessor) bsplineDeriv(X *mat.Dense) (mat.Matrix, error) {
	r, c := X.Dims()
	out := mat.NewDense(r, c, nil)
	fit, err := newBSplineFitter(p.workGrid)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		deriv, err := fit.derivRow(X.RawRowView(i), p.derivOrder)
		if err != nil {
			return nil, errors.Wrapf(err, "classifunc: bspline derivative failed for curve %d", i)
		}
		out.SetRow(i, deriv)
	}
	return out, nil
}
