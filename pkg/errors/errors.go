// Package errors はプロジェクト全体のエラーハンドリングと警告システムを提供します。
// Rのwarning/stopの仕組みにインスパイアされており、構造化されたエラー情報を提供します。
package errors

import (
	"fmt"
	"log"
	"sync"

	"github.com/cockroachdb/errors"
	"github.com/rs/zerolog"
)

// ===========================================================================
//
//	グローバル警告ハンドリング
//
// ===========================================================================
var (
	warningMutex   sync.Mutex
	warningHandler = func(w error) {
		// デフォルトのハンドラは標準エラー出力にログを出す
		log.Printf("classiFunc-Warning: %v\n", w)
	}
	// zerologロガー（循環importを避けるため遅延初期化）
	zerologWarnFunc func(warning error)
)

// SetWarningHandler はライブラリ全体の警告ハンドラを設定します。
// これにより、MissingValuesWarningなどのデータ品質警告の処理方法を制御できます。
//
// 例:
//
//	errors.SetWarningHandler(func(w error) {
//	    // 警告を無視する
//	})
func SetWarningHandler(handler func(w error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	warningHandler = handler
}

// SetZerologWarnFunc はzerolog警告関数を設定します（循環importを避けるため）。
func SetZerologWarnFunc(warnFunc func(warning error)) {
	warningMutex.Lock()
	defer warningMutex.Unlock()
	zerologWarnFunc = warnFunc
}

// Warn は警告を発生させます。
// zerologが利用可能な場合は構造化ログとして出力し、そうでなければ従来のハンドラを使用します。
func Warn(w error) {
	warningMutex.Lock()
	defer warningMutex.Unlock()

	// zerologが設定されている場合は優先的に使用
	if zerologWarnFunc != nil {
		zerologWarnFunc(w)
		return
	}

	// フォールバック: 従来のハンドラ
	if warningHandler != nil {
		warningHandler(w)
	}
}

// ===========================================================================
//
//	データ品質警告型（処理は続行される）
//
// ===========================================================================

// MissingValuesWarning は曲線データに欠損値が含まれ、スプライン補間で埋められた場合の警告です。
type MissingValuesWarning struct {
	Op      string
	Rows    int // 欠損値を含む行数
	Filled  int // 補間された値の総数
	Message string
}

func (w *MissingValuesWarning) Error() string {
	if w.Message != "" {
		return fmt.Sprintf("%s: filled %d missing values across %d curves: %s", w.Op, w.Filled, w.Rows, w.Message)
	}
	return fmt.Sprintf("%s: filled %d missing values across %d curves via spline interpolation", w.Op, w.Filled, w.Rows)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *MissingValuesWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("rows", w.Rows).
		Int("filled", w.Filled).
		Str("type", "MissingValuesWarning")
}

// NewMissingValuesWarning は新しいMissingValuesWarningを作成します。
func NewMissingValuesWarning(op string, rows, filled int) *MissingValuesWarning {
	return &MissingValuesWarning{Op: op, Rows: rows, Filled: filled}
}

// IrregularGridWarning はグリッドが等間隔でなく、等間隔グリッドへ再標本化された場合の警告です。
type IrregularGridWarning struct {
	Op        string
	GridLen   int
	MaxSpread float64 // 最大ステップと最小ステップの相対差
}

func (w *IrregularGridWarning) Error() string {
	return fmt.Sprintf("%s: grid of length %d is not evenly spaced (relative step spread %.3g); curves were re-sampled onto an evenly spaced grid", w.Op, w.GridLen, w.MaxSpread)
}

// MarshalZerologObject はzerologのイベントに構造化された警告情報を追加します。
func (w *IrregularGridWarning) MarshalZerologObject(e *zerolog.Event) {
	e.Str("operation", w.Op).
		Int("grid_len", w.GridLen).
		Float64("max_spread", w.MaxSpread).
		Str("type", "IrregularGridWarning")
}

// NewIrregularGridWarning は新しいIrregularGridWarningを作成します。
func NewIrregularGridWarning(op string, gridLen int, maxSpread float64) *IrregularGridWarning {
	return &IrregularGridWarning{Op: op, GridLen: gridLen, MaxSpread: maxSpread}
}

// ===========================================================================
//
//	構造化されたエラー型
//
// ===========================================================================

// NotFittedError はモデルが未学習の状態で `Predict` や `Transform` を呼び出した場合のエラーです。
type NotFittedError struct {
	ModelName string
	Method    string
}

func (e *NotFittedError) Error() string {
	return fmt.Sprintf("classifunc: %s: this model is not fitted yet. Call Fit() before using %s()", e.ModelName, e.Method)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NotFittedError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("model_name", e.ModelName).
		Str("method", e.Method).
		Str("type", "NotFittedError")
}

// NewNotFittedError は新しいNotFittedErrorを作成し、スタックトレースを付与します。
func NewNotFittedError(modelName, method string) error {
	err := &NotFittedError{ModelName: modelName, Method: method}
	return errors.WithStack(err)
}

// DimensionError は入力データの次元が期待値と異なる場合のエラーです。
// グリッド長と曲線行列の列数の不一致などを表します。
type DimensionError struct {
	Op       string
	Expected int
	Got      int
	Axis     int // 0 for rows, 1 for columns/grid points
}

func (e *DimensionError) Error() string {
	axisName := "grid points"
	if e.Axis == 0 {
		axisName = "rows"
	}
	return fmt.Sprintf("classifunc: %s: dimension mismatch on axis %d (%s). Expected %d, got %d", e.Op, e.Axis, axisName, e.Expected, e.Got)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *DimensionError) MarshalZerologObject(event *zerolog.Event) {
	axisName := "grid points"
	if e.Axis == 0 {
		axisName = "rows"
	}
	event.Str("operation", e.Op).
		Int("expected", e.Expected).
		Int("got", e.Got).
		Int("axis", e.Axis).
		Str("axis_name", axisName).
		Str("type", "DimensionError")
}

// NewDimensionError は新しいDimensionErrorを作成し、スタックトレースを付与します。
func NewDimensionError(op string, expected, got, axis int) error {
	err := &DimensionError{Op: op, Expected: expected, Got: got, Axis: axis}
	return errors.WithStack(err)
}

// ValidationError は入力パラメータの検証に失敗した場合のエラーです。
// 帯域幅が正でない、kが[1, n]の範囲外、微分階数が負などの設定ミスを表します。
type ValidationError struct {
	ParamName string
	Reason    string
	Value     interface{}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("classifunc: validation failed for parameter '%s': %s (got: %v)", e.ParamName, e.Reason, e.Value)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *ValidationError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("param_name", e.ParamName).
		Str("reason", e.Reason).
		Interface("value", e.Value).
		Str("type", "ValidationError")
}

// NewValidationError は新しいValidationErrorを作成し、スタックトレースを付与します。
func NewValidationError(param, reason string, value interface{}) error {
	err := &ValidationError{ParamName: param, Reason: reason, Value: value}
	return errors.WithStack(err)
}

// UnknownMetricError は距離レジストリに存在しない距離名が指定された場合のエラーです。
type UnknownMetricError struct {
	Name  string
	Known []string
}

func (e *UnknownMetricError) Error() string {
	return fmt.Sprintf("classifunc: unknown metric %q. Known metrics: %v (or use the custom.metric escape hatch)", e.Name, e.Known)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UnknownMetricError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("metric", e.Name).
		Strs("known", e.Known).
		Str("type", "UnknownMetricError")
}

// NewUnknownMetricError は新しいUnknownMetricErrorを作成し、スタックトレースを付与します。
func NewUnknownMetricError(name string, known []string) error {
	err := &UnknownMetricError{Name: name, Known: known}
	return errors.WithStack(err)
}

// UnknownKernelError はカーネルレジストリに存在しないカーネル名が指定された場合のエラーです。
type UnknownKernelError struct {
	Name  string
	Known []string
}

func (e *UnknownKernelError) Error() string {
	return fmt.Sprintf("classifunc: unknown kernel %q. Known kernels: %v (or use the custom.ker escape hatch)", e.Name, e.Known)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *UnknownKernelError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("kernel", e.Name).
		Strs("known", e.Known).
		Str("type", "UnknownKernelError")
}

// NewUnknownKernelError は新しいUnknownKernelErrorを作成し、スタックトレースを付与します。
func NewUnknownKernelError(name string, known []string) error {
	err := &UnknownKernelError{Name: name, Known: known}
	return errors.WithStack(err)
}

// ValueError は引数の値が不適切または不正な場合に発生するエラーです。
type ValueError struct {
	Op      string
	Message string
}

func (e *ValueError) Error() string {
	return fmt.Sprintf("classifunc: %s: %s", e.Op, e.Message)
}

// NewValueError は新しいValueErrorを作成し、スタックトレースを付与します。
func NewValueError(op, message string) error {
	err := &ValueError{Op: op, Message: message}
	return errors.WithStack(err)
}

// ModelError は分類モデルに関する一般的なエラーです。
type ModelError struct {
	Op   string
	Kind string
	Err  error
}

func (e *ModelError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("classifunc: %s: %s: %v", e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("classifunc: %s: %s", e.Op, e.Kind)
}

func (e *ModelError) Unwrap() error {
	return e.Err
}

// NewModelError は新しいModelErrorを作成し、スタックトレースを付与します。
func NewModelError(op, kind string, err error) error {
	modelErr := &ModelError{Op: op, Kind: kind, Err: err}
	return errors.WithStack(modelErr)
}

// ===========================================================================
//
//	数値計算エラー型
//
// ===========================================================================

// NumericalInstabilityError はカスタム距離・カーネル関数がNaNやInfを返した場合など、
// 数値計算が不安定になった場合のエラーです。問題の観測ペアを特定します。
type NumericalInstabilityError struct {
	Operation string    // 発生した操作（例: "pairwise_distance", "kernel_weight"）
	Values    []float64 // 問題のある値
	TrainRow  int       // 訓練側の観測インデックス（該当しない場合は-1）
	QueryCol  int       // クエリ側の観測インデックス（該当しない場合は-1）
}

func (e *NumericalInstabilityError) Error() string {
	valStr := ""
	for i, v := range e.Values {
		if i > 0 {
			valStr += ", "
		}
		if i >= 5 {
			valStr += "..."
			break
		}
		valStr += fmt.Sprintf("%.6g", v)
	}
	if e.TrainRow >= 0 || e.QueryCol >= 0 {
		return fmt.Sprintf("classifunc: numerical instability detected in %s for observation pair (train=%d, query=%d). Values: [%s]",
			e.Operation, e.TrainRow, e.QueryCol, valStr)
	}
	return fmt.Sprintf("classifunc: numerical instability detected in %s. Values: [%s]", e.Operation, valStr)
}

// MarshalZerologObject はzerologのイベントに構造化されたエラー情報を追加します。
func (e *NumericalInstabilityError) MarshalZerologObject(event *zerolog.Event) {
	event.Str("operation", e.Operation).
		Floats64("values", e.Values).
		Int("train_row", e.TrainRow).
		Int("query_col", e.QueryCol).
		Str("type", "NumericalInstabilityError")
}

// NewNumericalInstabilityError は新しいNumericalInstabilityErrorを作成します。
// 観測ペアが特定できない場合はtrainRow, queryColに-1を渡します。
func NewNumericalInstabilityError(operation string, values []float64, trainRow, queryCol int) error {
	err := &NumericalInstabilityError{
		Operation: operation,
		Values:    values,
		TrainRow:  trainRow,
		QueryCol:  queryCol,
	}
	return errors.WithStack(err)
}

// ===========================================================================
//
//	cockroachdb/errors ラッパー関数
//
// ===========================================================================

// Is はエラーが特定のターゲットエラーかどうかを判定します。
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As はエラーが特定の型にキャスト可能かどうかを判定します。
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Wrap は既存のエラーをメッセージ付きでラップします。
func Wrap(err error, message string) error {
	return errors.Wrap(err, message)
}

// Wrapf は既存のエラーをフォーマット文字列でラップします。
func Wrapf(err error, format string, args ...interface{}) error {
	return errors.Wrapf(err, format, args...)
}

// New は新しいエラーを作成します。
func New(message string) error {
	return errors.New(message)
}

// WithStack はエラーにスタックトレースを付与します。
func WithStack(err error) error {
	return errors.WithStack(err)
}

// ===========================================================================
//
//	共通エラー変数
//
// ===========================================================================

var (
	// ErrEmptyData は空のデータが渡された場合のエラーです。
	ErrEmptyData = New("empty data")

	// ErrGridNotIncreasing はグリッドが狭義単調増加でない場合のエラーです。
	ErrGridNotIncreasing = New("grid values must be strictly increasing")
)
