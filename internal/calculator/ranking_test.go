package calculator

import (
	"testing"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func signal(t1, t2 string, score float64, signalType domain.SignalType) domain.PairSignal {
	long, short := t1, t2
	if signalType == domain.SignalType_AtMax {
		long, short = t2, t1
	}
	return domain.PairSignal{
		Ticker1:    t1,
		Ticker2:    t2,
		SignalType: signalType,
		TotalScore: score,
		Long:       long,
		Short:      short,
		Message:    t1 + "/" + t2 + "\n\n",
	}
}

func pairNames(signals []domain.PairSignal) []string {
	out := []string{}
	for _, s := range signals {
		out = append(out, s.Ticker1+"/"+s.Ticker2)
	}
	return out
}

func TestRankSignals(t *testing.T) {
	t.Run("descending by score", func(t *testing.T) {
		ranked := RankSignals([]domain.PairSignal{
			signal("A", "B", 3.1, domain.SignalType_AtMax),
			signal("A", "C", 4.2, domain.SignalType_AtMin),
			signal("B", "C", 3.5, domain.SignalType_AtMax),
		})
		require.Equal(t, []string{"A/C", "B/C", "A/B"}, pairNames(ranked))
	})

	t.Run("ties keep discovery order", func(t *testing.T) {
		input := []domain.PairSignal{
			signal("A", "B", 3, domain.SignalType_AtMax),
			signal("A", "C", 5, domain.SignalType_AtMin),
			signal("A", "D", 3, domain.SignalType_AtMax),
			signal("B", "C", 3, domain.SignalType_AtMin),
		}
		ranked := RankSignals(input)
		require.Equal(t, []string{"A/C", "A/B", "A/D", "B/C"}, pairNames(ranked))

		// input untouched
		require.Equal(t, []string{"A/B", "A/C", "A/D", "B/C"}, pairNames(input))
	})

	t.Run("empty", func(t *testing.T) {
		require.Empty(t, RankSignals(nil))
	})
}

func TestTallyPositions(t *testing.T) {
	t.Run("counts sorted by count then symbol", func(t *testing.T) {
		signals := []domain.PairSignal{
			signal("A", "B", 3, domain.SignalType_AtMax), // long B short A
			signal("A", "C", 3, domain.SignalType_AtMin), // long A short C
			signal("B", "C", 3, domain.SignalType_AtMin), // long B short C
		}
		summary := TallyPositions(signals)

		require.Equal(t, "", cmp.Diff(domain.PositionSummary{
			Longs: []domain.PositionCount{
				{Symbol: "B", Count: 2},
				{Symbol: "A", Count: 1},
			},
			Shorts: []domain.PositionCount{
				{Symbol: "C", Count: 2},
				{Symbol: "A", Count: 1},
			},
		}, summary))

		longTotal, shortTotal := 0, 0
		for _, c := range summary.Longs {
			longTotal += c.Count
		}
		for _, c := range summary.Shorts {
			shortTotal += c.Count
		}
		require.Equal(t, len(signals), longTotal)
		require.Equal(t, len(signals), shortTotal)
	})

	t.Run("empty", func(t *testing.T) {
		summary := TallyPositions(nil)
		require.Empty(t, summary.Longs)
		require.Empty(t, summary.Shorts)
	})
}

func TestRenderPositionSummary(t *testing.T) {
	sep := "============================================================"

	t.Run("with positions", func(t *testing.T) {
		out := RenderPositionSummary(domain.PositionSummary{
			Longs:  []domain.PositionCount{{Symbol: "B", Count: 2}, {Symbol: "A", Count: 1}},
			Shorts: []domain.PositionCount{{Symbol: "C", Count: 3}},
		})
		require.Equal(t,
			"\n"+sep+"\nPOSITION SUMMARY\n"+sep+"\n\n"+
				"LONGS:\nB (2)\nA (1)\n"+
				"\nSHORTS:\nC (3)\n",
			out,
		)
	})

	t.Run("none", func(t *testing.T) {
		out := RenderPositionSummary(domain.PositionSummary{})
		require.Equal(t,
			"\n"+sep+"\nPOSITION SUMMARY\n"+sep+"\n\n"+
				"LONGS:\nNone\n"+
				"\nSHORTS:\nNone\n",
			out,
		)
	})
}

func TestRenderReport(t *testing.T) {
	t.Run("no signals", func(t *testing.T) {
		require.Equal(t, "No pair signals detected.\n", RenderReport(nil, "ignored"))
	})

	t.Run("signals then summary", func(t *testing.T) {
		out := RenderReport([]domain.PairSignal{
			signal("A", "C", 5, domain.SignalType_AtMin),
			signal("A", "B", 3, domain.SignalType_AtMax),
		}, "<summary>")
		require.Equal(t,
			"PAIR TRADING SIGNALS (SORTED BY SCORE)\n"+
				"============================================================\n\n"+
				"A/C\n\nA/B\n\n<summary>",
			out,
		)
	})
}
