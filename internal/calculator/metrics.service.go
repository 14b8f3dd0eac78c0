package calculator

import (
	"fmt"
	"math"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"

	"github.com/montanaflynn/stats"
)

// PairMetrics describes one spread series. Correlation and TotalScore are nil
// when fewer than two aligned points exist.
type PairMetrics struct {
	Highest           float64
	Lowest            float64
	Current           float64
	Correlation       *float64
	SpreadMean        float64
	SpreadStdev       float64
	ZScore            float64
	MeanReversionProb float64
	TotalScore        *float64
}

// BuildSpread computes ticker1 - ticker2 on every aligned date
func BuildSpread(aligned domain.AlignedPair) domain.SpreadSeries {
	values := make([]float64, len(aligned.Dates))
	for i := range aligned.Dates {
		values[i] = aligned.Values1[i] - aligned.Values2[i]
	}
	dates := make([]time.Time, len(aligned.Dates))
	copy(dates, aligned.Dates)

	return domain.SpreadSeries{
		Dates:  dates,
		Values: values,
	}
}

// CalculatePairMetrics computes the spread statistics used for scoring. The
// aligned pair supplies the legs for correlation.
func CalculatePairMetrics(aligned domain.AlignedPair, spread domain.SpreadSeries) (*PairMetrics, error) {
	if spread.Len() == 0 {
		return nil, fmt.Errorf("cannot calculate metrics on empty spread")
	}
	if spread.Len() != aligned.Len() {
		return nil, fmt.Errorf("spread has %d points but aligned pair has %d", spread.Len(), aligned.Len())
	}

	highest, err := stats.Max(spread.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate spread max: %w", err)
	}
	lowest, err := stats.Min(spread.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate spread min: %w", err)
	}
	mean, err := stats.Mean(spread.Values)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate spread mean: %w", err)
	}
	// sample stdev is undefined for a single point
	stdev := math.NaN()
	if spread.Len() > 1 {
		stdev, err = stats.StandardDeviationSample(spread.Values)
		if err != nil {
			return nil, fmt.Errorf("failed to calculate spread stdev: %w", err)
		}
	}
	current := spread.Values[spread.Len()-1]

	zScore := ZScore(current, mean, stdev)
	prob := MeanReversionProbability(zScore)

	out := &PairMetrics{
		Highest:           highest,
		Lowest:            lowest,
		Current:           current,
		SpreadMean:        mean,
		SpreadStdev:       stdev,
		ZScore:            zScore,
		MeanReversionProb: prob,
	}

	if aligned.Len() < 2 {
		return out, nil
	}

	// stats.Correlation returns 0 when either leg has zero variance
	correlation, err := stats.Correlation(aligned.Values1, aligned.Values2)
	if err != nil {
		return nil, fmt.Errorf("failed to calculate correlation between %s and %s: %w", aligned.Ticker1, aligned.Ticker2, err)
	}
	score := TotalScore(correlation, prob, zScore)
	out.Correlation = &correlation
	out.TotalScore = &score

	return out, nil
}

// ZScore is exactly 0 when the stdev is 0 or undefined
func ZScore(current, mean, stdev float64) float64 {
	if stdev == 0 || math.IsNaN(stdev) {
		return 0.0
	}
	return (current - mean) / stdev
}

// MeanReversionProbability maps |z| linearly from 1 at z=0 to 0 at |z|>=3
func MeanReversionProbability(zScore float64) float64 {
	p := 1 - math.Abs(zScore)/3
	return math.Max(math.Min(p, 1), 0)
}

func TotalScore(correlation, meanReversionProb, zScore float64) float64 {
	return math.Abs(correlation)*2 +
		meanReversionProb*3 +
		math.Abs(zScore)*1
}
