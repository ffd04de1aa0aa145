// Package frame adds consistent-hash support for gota dataframes and
// series.
//
// The canonical form of a dataframe covers column names, column order,
// column types, cell contents, and shape; row order is significant and
// preserved. Under approximation, rows are subsampled with a fixed seed and
// at most 50 columns are kept, while the true shape is always retained.
// Register by blank import:
//
//	import _ "github.com/dicthash/dicthash/frame"
package frame

import (
	"fmt"
	"math/rand"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/dicthash/dicthash"
)

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
	switch value.(type) {
	case dataframe.DataFrame, series.Series:
		return true
	}
	return false
}

func (codec) Decompose(value any, approximate bool) (any, error) {
	switch v := value.(type) {
	case dataframe.DataFrame:
		return decomposeFrame(v, approximate)
	case series.Series:
		return decomposeSeries(v, approximate)
	}
	return nil, fmt.Errorf("frame codec: unexpected %T", value)
}

func decomposeFrame(df dataframe.DataFrame, approximate bool) (any, error) {
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("frame codec: %w", err)
	}
	nrow, ncol := df.Nrow(), df.Ncol()

	if approximate && ncol > maxCols {
		df = df.Select(df.Names()[:maxCols])
	}
	if approximate && nrow > maxRows {
		df = df.Subset(sampleRows(nrow))
	}
	if err := df.Error(); err != nil {
		return nil, fmt.Errorf("frame codec: %w", err)
	}

	names := df.Names()
	types := df.Types()
	typeNames := make([]string, len(types))
	for i, t := range types {
		typeNames[i] = string(t)
	}
	columns := make(map[string]any, len(names))
	for _, name := range names {
		columns[name] = df.Col(name).Records()
	}

	return map[string]any{
		"hash":    columns,
		"columns": names,
		"types":   typeNames,
		"shape":   []int{nrow, ncol},
	}, nil
}

func decomposeSeries(s series.Series, approximate bool) (any, error) {
	if s.Err != nil {
		return nil, fmt.Errorf("frame codec: %w", s.Err)
	}
	n := s.Len()

	if approximate && n > maxRows {
		s = s.Subset(sampleRows(n))
		if s.Err != nil {
			return nil, fmt.Errorf("frame codec: %w", s.Err)
		}
	}

	return map[string]any{
		"hash":  s.Records(),
		"name":  s.Name,
		"type":  string(s.Type()),
		"shape": []int{n},
	}, nil
}

// sampleRows draws the seeded row sample used under approximation.
func sampleRows(n int) []int {
	rng := rand.New(rand.NewSource(sampleSeed))
	return rng.Perm(n)[:maxRows]
}
