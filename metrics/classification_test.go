package metrics

import (
	"math"
	"testing"
)

func TestAccuracy(t *testing.T) {
	tests := []struct {
		name    string
		yTrue   []string
		yPred   []string
		want    float64
		wantErr bool
	}{
		{
			name:  "Perfect prediction",
			yTrue: []string{"A", "A", "B", "B"},
			yPred: []string{"A", "A", "B", "B"},
			want:  1.0,
		},
		{
			name:  "Half correct",
			yTrue: []string{"A", "A", "B", "B"},
			yPred: []string{"A", "B", "A", "B"},
			want:  0.5,
		},
		{
			name:  "All wrong",
			yTrue: []string{"A", "B"},
			yPred: []string{"B", "A"},
			want:  0.0,
		},
		{
			name:    "Length mismatch",
			yTrue:   []string{"A", "B"},
			yPred:   []string{"A"},
			wantErr: true,
		},
		{
			name:    "Empty input",
			yTrue:   nil,
			yPred:   nil,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Accuracy(tt.yTrue, tt.yPred)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Accuracy failed: %v", err)
			}
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Accuracy = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestConfusionMatrix(t *testing.T) {
	yTrue := []string{"A", "A", "B", "B", "C"}
	yPred := []string{"A", "B", "B", "B", "A"}

	levels, matrix, err := ConfusionMatrix(yTrue, yPred)
	if err != nil {
		t.Fatalf("ConfusionMatrix failed: %v", err)
	}

	wantLevels := []string{"A", "B", "C"}
	for i, l := range wantLevels {
		if levels[i] != l {
			t.Fatalf("levels = %v, want %v", levels, wantLevels)
		}
	}

	want := [][]int{
		{1, 1, 0}, // true A: predicted A once, B once
		{0, 2, 0}, // true B: predicted B twice
		{1, 0, 0}, // true C: predicted A once
	}
	for i := range want {
		for j := range want[i] {
			if matrix[i][j] != want[i][j] {
				t.Errorf("matrix[%d][%d] = %d, want %d", i, j, matrix[i][j], want[i][j])
			}
		}
	}
}

func TestConfusionMatrixShapeMismatch(t *testing.T) {
	if _, _, err := ConfusionMatrix([]string{"A"}, []string{"A", "B"}); err == nil {
		t.Error("expected error on length mismatch")
	}
}
