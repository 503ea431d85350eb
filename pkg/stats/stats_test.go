package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMean(t *testing.T) {
	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 2.0, Mean([]float64{1, 2, 3}))
	assert.Equal(t, 5.0, Mean([]float64{5}))
}

func TestCorrelation(t *testing.T) {
	t.Run("perfect positive", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		y := []float64{2, 4, 6, 8}
		assert.InDelta(t, 1.0, Correlation(x, y), 1e-9)
	})

	t.Run("perfect negative", func(t *testing.T) {
		x := []float64{1, 2, 3, 4}
		y := []float64{8, 6, 4, 2}
		assert.InDelta(t, -1.0, Correlation(x, y), 1e-9)
	})

	t.Run("fewer than two pairs", func(t *testing.T) {
		assert.Equal(t, 0.0, Correlation([]float64{1}, []float64{2}))
		assert.Equal(t, 0.0, Correlation(nil, nil))
	})

	t.Run("mismatched lengths", func(t *testing.T) {
		assert.Equal(t, 0.0, Correlation([]float64{1, 2}, []float64{1, 2, 3}))
	})

	t.Run("zero variance never produces NaN", func(t *testing.T) {
		got := Correlation([]float64{3, 3, 3}, []float64{1, 2, 3})
		assert.Equal(t, 0.0, got)
		assert.False(t, math.IsNaN(got))
	})
}

func TestPercentile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}

	assert.Equal(t, 0.0, Percentile(nil, 50))
	assert.Equal(t, 6.0, Percentile(sorted, 50))
	assert.Equal(t, 10.0, Percentile(sorted, 100))
	assert.Equal(t, 1.0, Percentile(sorted, 0))
}
