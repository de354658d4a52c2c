package neighbors

import (
	"sort"

	"github.com/pfistfl/classiFunc/pkg/errors"
)

// classEncoder maps string class labels onto stable level indices.
// Levels are sorted lexicographically, matching the conventional factor-level
// ordering of categorical data; this order is also the documented tie-break
// order for label selection.
type classEncoder struct {
	levels []string
	index  map[string]int
}

func newClassEncoder(y []string) (*classEncoder, error) {
	seen := make(map[string]bool, len(y))
	for i, label := range y {
		if label == "" {
			return nil, errors.NewValidationError("y", "class labels must not be empty", i)
		}
		seen[label] = true
	}

	levels := make([]string, 0, len(seen))
	for label := range seen {
		levels = append(levels, label)
	}
	sort.Strings(levels)

	index := make(map[string]int, len(levels))
	for i, label := range levels {
		index[label] = i
	}
	return &classEncoder{levels: levels, index: index}, nil
}

// encode maps labels to level indices.
func (e *classEncoder) encode(y []string) []int {
	idx := make([]int, len(y))
	for i, label := range y {
		idx[i] = e.index[label]
	}
	return idx
}
