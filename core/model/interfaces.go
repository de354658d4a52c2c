// Package model provides the core interfaces shared by classiFunc estimators.
package model

import (
	"gonum.org/v1/gonum/mat"
)

// Fitter は曲線データとクラスラベルから学習可能なモデルのインターフェース
type Fitter interface {
	// Fit はモデルを訓練データで学習させる。
	// Xの各行が1本の曲線、yは行ごとのクラスラベル。
	Fit(X mat.Matrix, y []string) error
}

// Predictor はクラスラベルを予測可能なモデルのインターフェース
type Predictor interface {
	// Predict は入力された曲線ごとのクラスラベルを返す。
	// Xがnilの場合は訓練データ自身に対する予測を行う。
	Predict(X mat.Matrix) ([]string, error)
}

// Classifier combines the interfaces implemented by both functional classifiers.
type Classifier interface {
	Fitter
	Predictor

	// PredictProba returns per-class probability estimates, one row per class
	// level (in the order of Classes) and one column per query curve.
	PredictProba(X mat.Matrix) (mat.Matrix, error)

	// Classes returns the class levels seen during fitting, in stable order.
	Classes() []string

	// Score returns the mean accuracy on the given curves and labels.
	Score(X mat.Matrix, y []string) (float64, error)
}

// CurveTransformer はデータ変換のインターフェース。
// 学習時に構成したパラメータで、新しい曲線行列にも同一の変換を再適用できる。
type CurveTransformer interface {
	// Transform はデータを変換する
	Transform(X mat.Matrix) (mat.Matrix, error)
}
