package calculator

import (
	"math"
	"testing"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func weeks(n int) []time.Time {
	start := time.Date(2024, 1, 7, 0, 0, 0, 0, time.UTC)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = start.AddDate(0, 0, 7*i)
	}
	return out
}

func alignedPair(t1, t2 string, v1, v2 []float64) domain.AlignedPair {
	return domain.AlignedPair{
		Ticker1: t1,
		Ticker2: t2,
		Dates:   weeks(len(v1)),
		Values1: v1,
		Values2: v2,
	}
}

func TestBuildSpread(t *testing.T) {
	aligned := alignedPair("A", "B", []float64{10, 12, 14}, []float64{9, 9, 9})
	spread := BuildSpread(aligned)

	require.Equal(t, "", cmp.Diff(domain.SpreadSeries{
		Dates:  weeks(3),
		Values: []float64{1, 3, 5},
	}, spread))
}

func TestCalculatePairMetrics(t *testing.T) {
	t.Run("trending leg against a flat leg", func(t *testing.T) {
		aligned := alignedPair(
			"A", "B",
			[]float64{10, 12, 14, 16, 18, 20},
			[]float64{9, 9, 9, 9, 9, 9},
		)
		metrics, err := CalculatePairMetrics(aligned, BuildSpread(aligned))
		require.NoError(t, err)

		require.Equal(t, 11.0, metrics.Highest)
		require.Equal(t, 1.0, metrics.Lowest)
		require.Equal(t, 11.0, metrics.Current)
		require.Equal(t, 6.0, metrics.SpreadMean)
		require.InDelta(t, math.Sqrt(14), metrics.SpreadStdev, 1e-12)
		require.InDelta(t, 5/math.Sqrt(14), metrics.ZScore, 1e-12)
		require.InDelta(t, 1-5/math.Sqrt(14)/3, metrics.MeanReversionProb, 1e-12)

		// a zero-variance leg correlates at 0
		require.NotNil(t, metrics.Correlation)
		require.Equal(t, 0.0, *metrics.Correlation)
		require.NotNil(t, metrics.TotalScore)
		require.InDelta(t, 3.0, *metrics.TotalScore, 1e-9)
	})

	t.Run("flat spread has zero z-score", func(t *testing.T) {
		aligned := alignedPair(
			"A", "B",
			[]float64{10, 11, 12, 13},
			[]float64{5, 6, 7, 8},
		)
		metrics, err := CalculatePairMetrics(aligned, BuildSpread(aligned))
		require.NoError(t, err)

		require.Equal(t, 0.0, metrics.SpreadStdev)
		require.Equal(t, 0.0, metrics.ZScore)
		require.False(t, math.IsNaN(metrics.ZScore))
		require.Equal(t, 1.0, metrics.MeanReversionProb)
		require.InDelta(t, 1.0, *metrics.Correlation, 1e-12)
		require.InDelta(t, 5.0, *metrics.TotalScore, 1e-12)
	})

	t.Run("single point leaves correlation undefined", func(t *testing.T) {
		aligned := alignedPair("A", "B", []float64{10}, []float64{4})
		metrics, err := CalculatePairMetrics(aligned, BuildSpread(aligned))
		require.NoError(t, err)

		require.Nil(t, metrics.Correlation)
		require.Nil(t, metrics.TotalScore)
		require.Equal(t, 6.0, metrics.Current)
		require.Equal(t, 0.0, metrics.ZScore)
	})

	t.Run("empty spread", func(t *testing.T) {
		_, err := CalculatePairMetrics(domain.AlignedPair{}, domain.SpreadSeries{})
		require.Error(t, err)
	})

	t.Run("swapping legs mirrors the spread", func(t *testing.T) {
		v1 := []float64{10, 12, 14, 16, 18, 20}
		v2 := []float64{9, 9.5, 9, 10, 9.5, 10}

		ab := alignedPair("A", "B", v1, v2)
		ba := alignedPair("B", "A", v2, v1)
		mAB, err := CalculatePairMetrics(ab, BuildSpread(ab))
		require.NoError(t, err)
		mBA, err := CalculatePairMetrics(ba, BuildSpread(ba))
		require.NoError(t, err)

		require.InDelta(t, *mAB.Correlation, *mBA.Correlation, 1e-12)
		require.InDelta(t, mAB.ZScore, -mBA.ZScore, 1e-12)
		require.InDelta(t, *mAB.TotalScore, *mBA.TotalScore, 1e-12)
		require.Equal(t, mAB.Highest, -mBA.Lowest)
		require.Equal(t, mAB.Lowest, -mBA.Highest)
	})
}

func TestMeanReversionProbability(t *testing.T) {
	require.Equal(t, 1.0, MeanReversionProbability(0))
	require.InDelta(t, 0.5, MeanReversionProbability(1.5), 1e-12)
	require.InDelta(t, 0.5, MeanReversionProbability(-1.5), 1e-12)
	require.Equal(t, 0.0, MeanReversionProbability(3))
	require.Equal(t, 0.0, MeanReversionProbability(-7))
}

func TestZScore(t *testing.T) {
	require.Equal(t, 0.0, ZScore(5, 5, 0))
	require.Equal(t, 0.0, ZScore(5, 5, math.NaN()))
	require.Equal(t, 2.0, ZScore(7, 5, 1))
}
