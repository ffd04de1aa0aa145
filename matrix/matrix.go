// Package matrix adds consistent-hash support for gonum matrices.
//
// Importing the package registers a codec handling any mat.Matrix
// (mat.Dense, mat.VecDense, mat.SymDense, ...). The canonical form covers
// shape and element contents; under approximation, a seeded subsample of
// rows stands in for the full contents while the true shape is always
// retained. A blank import is enough:
//
//	import _ "github.com/dicthash/dicthash/matrix"
package matrix

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/dicthash/dicthash"
)

// Approximation bounds, matching the frame package: at most 50 columns and
// a 50-row sample drawn with a fixed seed.
const (
	maxCols    = 50
	maxRows    = 50
	sampleSeed = 42
)

type codec struct{}

func init() {
	dicthash.RegisterCodec(codec{})
}

func (codec) Match(value any) bool {
	_, ok := value.(mat.Matrix)
	return ok
}

func (codec) Decompose(value any, approximate bool) (any, error) {
	m, ok := value.(mat.Matrix)
	if !ok {
		return nil, fmt.Errorf("matrix codec: unexpected %T", value)
	}
	rows, cols := m.Dims()

	keptCols := cols
	if approximate && keptCols > maxCols {
		keptCols = maxCols
	}
	rowIndex := sampleRows(rows, approximate)

	contents := make([][]float64, len(rowIndex))
	for i, r := range rowIndex {
		row := make([]float64, keptCols)
		for j := 0; j < keptCols; j++ {
			row[j] = m.At(r, j)
		}
		contents[i] = row
	}

	// Shape always reflects the full matrix, so a sampled 1000x3 matrix
	// can never collide with a full 50x3 one.
	return map[string]any{
		"hash":  contents,
		"shape": []int{rows, cols},
	}, nil
}

// sampleRows returns the row indices to read: all of them, or a seeded
// random sample of maxRows when approximating a taller matrix.
func sampleRows(rows int, approximate bool) []int {
	if !approximate || rows <= maxRows {
		all := make([]int, rows)
		for i := range all {
			all[i] = i
		}
		return all
	}
	rng := rand.New(rand.NewSource(sampleSeed))
	return rng.Perm(rows)[:maxRows]
}
