// Package metrics は分類結果の評価指標を提供します。
package metrics

import (
	"sort"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// Accuracy は正解率 = 一致したラベル数 / 全ラベル数 を計算する
//
// パラメータ:
//   - yTrue: 正解ラベル
//   - yPred: 予測ラベル
//
// 戻り値:
//   - float64: [0, 1]の正解率
//   - error: 長さが一致しない、または空の場合
func Accuracy(yTrue, yPred []string) (float64, error) {
	if len(yTrue) == 0 {
		return 0, errors.NewModelError("metrics.Accuracy", "empty data", errors.ErrEmptyData)
	}
	if len(yTrue) != len(yPred) {
		return 0, errors.NewDimensionError("metrics.Accuracy", len(yTrue), len(yPred), 0)
	}

	correct := 0
	for i := range yTrue {
		if yTrue[i] == yPred[i] {
			correct++
		}
	}
	return float64(correct) / float64(len(yTrue)), nil
}

// ConfusionMatrix は混同行列を計算する。
// 戻り値の行列はlevels[i]が正解でlevels[j]と予測された回数をmatrix[i][j]に持つ。
// levelsは観測された全ラベルの辞書順。
func ConfusionMatrix(yTrue, yPred []string) (levels []string, matrix [][]int, err error) {
	if len(yTrue) == 0 {
		return nil, nil, errors.NewModelError("metrics.ConfusionMatrix", "empty data", errors.ErrEmptyData)
	}
	if len(yTrue) != len(yPred) {
		return nil, nil, errors.NewDimensionError("metrics.ConfusionMatrix", len(yTrue), len(yPred), 0)
	}

	seen := make(map[string]bool)
	for _, label := range yTrue {
		seen[label] = true
	}
	for _, label := range yPred {
		seen[label] = true
	}
	levels = make([]string, 0, len(seen))
	for label := range seen {
		levels = append(levels, label)
	}
	sort.Strings(levels)

	index := make(map[string]int, len(levels))
	for i, label := range levels {
		index[label] = i
	}

	matrix = make([][]int, len(levels))
	for i := range matrix {
		matrix[i] = make([]int, len(levels))
	}
	for i := range yTrue {
		matrix[index[yTrue[i]]][index[yPred[i]]]++
	}
	return levels, matrix, nil
}
