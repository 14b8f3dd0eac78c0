package calculator

import (
	"fmt"
	"math"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
)

// extremeThreshold is how close (as a fraction of the extreme's magnitude)
// the current spread must be to its high or low to count as "at" it
const extremeThreshold = 0.05

type Classification struct {
	SignalType domain.SignalType
	Risk       float64
	Reward     float64
}

// ClassifySpread returns nil when the current spread is not near either
// historical extreme. When it is near both, AtMax wins.
func ClassifySpread(highest, lowest, current float64) *Classification {
	isMax := (highest - current) <= extremeThreshold*math.Abs(highest)
	isMin := (current - lowest) <= extremeThreshold*math.Abs(lowest)

	if isMax {
		return &Classification{
			SignalType: domain.SignalType_AtMax,
			Risk:       highest - current,
			Reward:     current - lowest,
		}
	}
	if isMin {
		return &Classification{
			SignalType: domain.SignalType_AtMin,
			Risk:       current - lowest,
			Reward:     highest - current,
		}
	}
	return nil
}

type NewPairSignalInput struct {
	Ticker1        string
	Ticker2        string
	Spread         domain.SpreadSeries
	Metrics        PairMetrics
	Classification Classification
	Correlation    float64
	TotalScore     float64
}

// NewPairSignal assembles the signal record. A spread at its max is expected
// to fall, so ticker2 is bought and ticker1 sold; at its min the reverse.
func NewPairSignal(in NewPairSignalInput) domain.PairSignal {
	long, short := in.Ticker1, in.Ticker2
	if in.Classification.SignalType == domain.SignalType_AtMax {
		long, short = in.Ticker2, in.Ticker1
	}

	signal := domain.PairSignal{
		Ticker1:           in.Ticker1,
		Ticker2:           in.Ticker2,
		SignalType:        in.Classification.SignalType,
		Correlation:       in.Correlation,
		ZScore:            in.Metrics.ZScore,
		MeanReversionProb: in.Metrics.MeanReversionProb,
		Risk:              in.Classification.Risk,
		Reward:            in.Classification.Reward,
		TotalScore:        in.TotalScore,
		Long:              long,
		Short:             short,
		Spread:            in.Spread,
	}
	signal.Message = FormatSignalMessage(signal)

	return signal
}

func FormatSignalMessage(s domain.PairSignal) string {
	return fmt.Sprintf(
		"%s & %s pair reached %s.\n"+
			"Risk = %.2f, Reward = %.2f\n"+
			"Correlation: %.2f\n"+
			"Z-Score: %.2f\n"+
			"Mean-Reversion Prob.: %.1f%%\n"+
			"Total Score: %.2f\n\n",
		s.Ticker1, s.Ticker2, s.SignalType,
		s.Risk, s.Reward,
		s.Correlation,
		s.ZScore,
		s.MeanReversionProb*100,
		s.TotalScore,
	)
}
