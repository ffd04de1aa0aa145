package frame

import (
	"strconv"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dicthash/dicthash"
)

func people() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"name", "age"},
		{"alice", "30"},
		{"bob", "25"},
	})
}

func tallFrame(rows int) dataframe.DataFrame {
	records := make([][]string, 0, rows+1)
	records = append(records, []string{"id", "value"})
	for i := 0; i < rows; i++ {
		records = append(records, []string{strconv.Itoa(i), strconv.Itoa(i * i)})
	}
	return dataframe.LoadRecords(records)
}

func TestFrameHashing(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		h1, err := dicthash.SHA256(people(), nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(people(), nil)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("Row order is significant", func(t *testing.T) {
		swapped := dataframe.LoadRecords([][]string{
			{"name", "age"},
			{"bob", "25"},
			{"alice", "30"},
		})
		h1, err := dicthash.SHA256(people(), nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(swapped, nil)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("Column names are significant", func(t *testing.T) {
		renamed := dataframe.LoadRecords([][]string{
			{"name", "years"},
			{"alice", "30"},
			{"bob", "25"},
		})
		h1, err := dicthash.SHA256(people(), nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(renamed, nil)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("Cell contents are significant", func(t *testing.T) {
		older := dataframe.LoadRecords([][]string{
			{"name", "age"},
			{"alice", "31"},
			{"bob", "25"},
		})
		h1, err := dicthash.SHA256(people(), nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(older, nil)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestSeriesHashing(t *testing.T) {
	t.Run("Deterministic", func(t *testing.T) {
		h1, err := dicthash.SHA256(series.New([]int{1, 2, 3}, series.Int, "a"), nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(series.New([]int{1, 2, 3}, series.Int, "a"), nil)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("Name is significant", func(t *testing.T) {
		h1, err := dicthash.SHA256(series.New([]int{1, 2, 3}, series.Int, "a"), nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(series.New([]int{1, 2, 3}, series.Int, "b"), nil)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})

	t.Run("Element type is significant", func(t *testing.T) {
		h1, err := dicthash.SHA256(series.New([]int{1, 2, 3}, series.Int, "a"), nil)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(series.New([]string{"1", "2", "3"}, series.String, "a"), nil)
		require.NoError(t, err)
		assert.NotEqual(t, h1, h2)
	})
}

func TestFrameApproximation(t *testing.T) {
	approx := &dicthash.Options{UseApproximation: true}

	t.Run("Stable within a run", func(t *testing.T) {
		h1, err := dicthash.SHA256(tallFrame(120), approx)
		require.NoError(t, err)
		h2, err := dicthash.SHA256(tallFrame(120), approx)
		require.NoError(t, err)
		assert.Equal(t, h1, h2)
	})

	t.Run("Differs from the full hash on tall frames", func(t *testing.T) {
		full, err := dicthash.SHA256(tallFrame(120), nil)
		require.NoError(t, err)
		sampled, err := dicthash.SHA256(tallFrame(120), approx)
		require.NoError(t, err)
		assert.NotEqual(t, full, sampled)
	})

	t.Run("Short frames are unaffected", func(t *testing.T) {
		full, err := dicthash.SHA256(people(), nil)
		require.NoError(t, err)
		sampled, err := dicthash.SHA256(people(), approx)
		require.NoError(t, err)
		assert.Equal(t, full, sampled)
	})
}
