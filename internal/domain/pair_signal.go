package domain

import (
	"time"

	"github.com/google/uuid"
)

type SignalType string

const (
	SignalType_AtMax SignalType = "Max level"
	SignalType_AtMin SignalType = "Min level"
)

func (s SignalType) String() string {
	return string(s)
}

type SkipReason string

const (
	SkipReason_MissingData          SkipReason = "missing_data"
	SkipReason_NoOverlap            SkipReason = "no_overlap"
	SkipReason_UndefinedCorrelation SkipReason = "undefined_correlation"
	SkipReason_InvalidScore         SkipReason = "invalid_score"
)

// SpreadSeries is ticker1 minus ticker2 on every shared date
type SpreadSeries struct {
	Dates  []time.Time `json:"dates"`
	Values []float64   `json:"values"`
}

func (s SpreadSeries) Len() int {
	return len(s.Values)
}

// PairSignal is produced once per pair whose spread sits at a historical
// extreme. Ticker1 - Ticker2 defines the spread sign.
type PairSignal struct {
	Ticker1           string       `json:"ticker1"`
	Ticker2           string       `json:"ticker2"`
	SignalType        SignalType   `json:"signalType"`
	Correlation       float64      `json:"correlation"`
	ZScore            float64      `json:"zScore"`
	MeanReversionProb float64      `json:"meanReversionProb"`
	Risk              float64      `json:"risk"`
	Reward            float64      `json:"reward"`
	TotalScore        float64      `json:"totalScore"`
	Long              string       `json:"long"`
	Short             string       `json:"short"`
	Message           string       `json:"message"`
	Spread            SpreadSeries `json:"spread"`
}

type PositionCount struct {
	Symbol string `json:"symbol"`
	Count  int    `json:"count"`
}

type PositionSummary struct {
	Longs  []PositionCount `json:"longs"`
	Shorts []PositionCount `json:"shorts"`
}

type SkippedPair struct {
	Ticker1 string     `json:"ticker1"`
	Ticker2 string     `json:"ticker2"`
	Reason  SkipReason `json:"reason"`
}

type ScanResult struct {
	ScanID              uuid.UUID       `json:"scanID"`
	Start               time.Time       `json:"start"`
	End                 time.Time       `json:"end"`
	Tickers             []string        `json:"tickers"`
	PairSignals         []PairSignal    `json:"pairSignals"`
	Longs               []PositionCount `json:"longs"`
	Shorts              []PositionCount `json:"shorts"`
	PositionSummaryText string          `json:"positionSummaryText"`
	Report              string          `json:"report"`
	Skipped             []SkippedPair   `json:"skipped"`
	Profile             *Profile        `json:"profile,omitempty"`
}
