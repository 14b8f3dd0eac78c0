package calculator

import (
	"fmt"
	"sort"
	"strings"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
)

const (
	reportHeader    = "PAIR TRADING SIGNALS (SORTED BY SCORE)"
	noSignalsReport = "No pair signals detected.\n"
)

var separator = strings.Repeat("=", 60)

// RankSignals returns a copy of signals sorted by total score, highest first.
// Equal scores keep discovery order.
func RankSignals(signals []domain.PairSignal) []domain.PairSignal {
	ranked := make([]domain.PairSignal, len(signals))
	copy(ranked, signals)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].TotalScore > ranked[j].TotalScore
	})
	return ranked
}

// TallyPositions counts how often each symbol is recommended long and short.
// Both lists are ordered by count desc, then symbol asc.
func TallyPositions(signals []domain.PairSignal) domain.PositionSummary {
	longs := map[string]int{}
	shorts := map[string]int{}
	for _, s := range signals {
		longs[s.Long]++
		shorts[s.Short]++
	}
	return domain.PositionSummary{
		Longs:  sortedCounts(longs),
		Shorts: sortedCounts(shorts),
	}
}

func sortedCounts(counts map[string]int) []domain.PositionCount {
	out := make([]domain.PositionCount, 0, len(counts))
	for symbol, count := range counts {
		out = append(out, domain.PositionCount{
			Symbol: symbol,
			Count:  count,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Symbol < out[j].Symbol
	})
	return out
}

func RenderPositionSummary(summary domain.PositionSummary) string {
	var sb strings.Builder
	sb.WriteString("\n" + separator + "\n")
	sb.WriteString("POSITION SUMMARY\n")
	sb.WriteString(separator + "\n\n")

	sb.WriteString("LONGS:\n")
	writeCounts(&sb, summary.Longs)

	sb.WriteString("\nSHORTS:\n")
	writeCounts(&sb, summary.Shorts)

	return sb.String()
}

func writeCounts(sb *strings.Builder, counts []domain.PositionCount) {
	if len(counts) == 0 {
		sb.WriteString("None\n")
		return
	}
	for _, c := range counts {
		sb.WriteString(fmt.Sprintf("%s (%d)\n", c.Symbol, c.Count))
	}
}

// RenderReport builds the text report from ranked signals. Without signals
// the report is a single line.
func RenderReport(ranked []domain.PairSignal, positionSummary string) string {
	if len(ranked) == 0 {
		return noSignalsReport
	}

	var sb strings.Builder
	sb.WriteString(reportHeader + "\n")
	sb.WriteString(separator + "\n\n")
	for _, s := range ranked {
		sb.WriteString(s.Message)
	}
	sb.WriteString(positionSummary)

	return sb.String()
}
