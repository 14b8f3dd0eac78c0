package l3_service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/calculator"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/logger"
	l1_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l1"
	l2_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l2"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	pairsAnalyzed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pairscan_pairs_analyzed_total",
		Help: "Instrument pairs considered by the scanner.",
	})
	pairsSkipped = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairscan_pairs_skipped_total",
		Help: "Instrument pairs skipped before classification, by reason.",
	}, []string{"reason"})
	signalsEmitted = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pairscan_signals_total",
		Help: "Pair signals emitted, by signal type.",
	}, []string{"signal_type"})
)

type PairScanInput struct {
	Tickers []string
	Start   time.Time
	End     time.Time
	// ScoreExpression replaces the default composite score when set
	ScoreExpression string
}

type PairScanService interface {
	Scan(ctx context.Context, in PairScanInput) (*domain.ScanResult, error)
}

func NewPairScanService(priceService l1_service.PriceService, scoreExpressionService l2_service.ScoreExpressionService) PairScanService {
	return pairScanServiceHandler{
		PriceService:           priceService,
		ScoreExpressionService: scoreExpressionService,
	}
}

type pairScanServiceHandler struct {
	PriceService           l1_service.PriceService
	ScoreExpressionService l2_service.ScoreExpressionService
}

// Scan analyses every pair of distinct tickers in input order. Repeated
// tickers are dropped after their first occurrence. Missing data and
// degenerate pairs are skipped, never fatal; only bad input or a cancelled
// context returns an error.
func (h pairScanServiceHandler) Scan(ctx context.Context, in PairScanInput) (*domain.ScanResult, error) {
	log := logger.FromContext(ctx)
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()

	in.Tickers = distinctTickers(in.Tickers)
	if len(in.Tickers) == 0 {
		return nil, fmt.Errorf("no tickers provided")
	}
	if in.End.Before(in.Start) {
		return nil, fmt.Errorf("end date cannot be before start date")
	}
	if in.ScoreExpression != "" {
		if err := h.ScoreExpressionService.Validate(in.ScoreExpression); err != nil {
			return nil, err
		}
	}

	scanID := uuid.New()
	log = log.With("scanID", scanID.String())
	ctx = logger.NewContext(ctx, log)

	profile.StartNewSpan("load weekly prices")
	cache, err := h.PriceService.LoadWeeklySeries(ctx, in.Tickers, in.Start, in.End)
	if err != nil {
		return nil, err
	}

	profile.StartNewSpan("analyze pairs")
	signals := []domain.PairSignal{}
	skipped := []domain.SkippedPair{}
	for i := 0; i < len(in.Tickers); i++ {
		for j := i + 1; j < len(in.Tickers); j++ {
			pairsAnalyzed.Inc()
			t1, t2 := in.Tickers[i], in.Tickers[j]

			signal, reason := h.analyzePair(ctx, cache, t1, t2, in.ScoreExpression)
			if reason != nil {
				pairsSkipped.WithLabelValues(string(*reason)).Inc()
				log.Infow("skipping pair", "pair", t1+"/"+t2, "reason", string(*reason))
				skipped = append(skipped, domain.SkippedPair{
					Ticker1: t1,
					Ticker2: t2,
					Reason:  *reason,
				})
				continue
			}
			if signal != nil {
				signalsEmitted.WithLabelValues(signal.SignalType.String()).Inc()
				signals = append(signals, *signal)
			}
		}
	}

	profile.StartNewSpan("rank signals")
	ranked := calculator.RankSignals(signals)
	summary := calculator.TallyPositions(ranked)
	summaryText := calculator.RenderPositionSummary(summary)

	log.Infow("pair scan complete", "numTickers", len(in.Tickers), "numSignals", len(ranked), "numSkipped", len(skipped))

	return &domain.ScanResult{
		ScanID:              scanID,
		Start:               in.Start,
		End:                 in.End,
		Tickers:             in.Tickers,
		PairSignals:         ranked,
		Longs:               summary.Longs,
		Shorts:              summary.Shorts,
		PositionSummaryText: summaryText,
		Report:              calculator.RenderReport(ranked, summaryText),
		Skipped:             skipped,
		Profile:             profile,
	}, nil
}

func distinctTickers(tickers []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, t := range tickers {
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// analyzePair returns a signal, nothing (spread not at an extreme), or the
// reason the pair could not be scored
func (h pairScanServiceHandler) analyzePair(
	ctx context.Context,
	cache *l1_service.WeeklySeriesCache,
	ticker1, ticker2 string,
	scoreExpression string,
) (*domain.PairSignal, *domain.SkipReason) {
	log := logger.FromContext(ctx)
	skip := func(r domain.SkipReason) (*domain.PairSignal, *domain.SkipReason) {
		return nil, &r
	}

	s1, err1 := cache.Get(ticker1)
	s2, err2 := cache.Get(ticker2)
	if err1 != nil || err2 != nil {
		return skip(domain.SkipReason_MissingData)
	}

	aligned, err := domain.Align(s1, s2)
	if errors.Is(err, domain.ErrNoOverlap) {
		return skip(domain.SkipReason_NoOverlap)
	} else if err != nil {
		log.Errorw("failed to align pair", "pair", ticker1+"/"+ticker2, "error", err.Error())
		return skip(domain.SkipReason_MissingData)
	}

	spread := calculator.BuildSpread(*aligned)
	metrics, err := calculator.CalculatePairMetrics(*aligned, spread)
	if err != nil {
		log.Errorw("failed to calculate pair metrics", "pair", ticker1+"/"+ticker2, "error", err.Error())
		return skip(domain.SkipReason_MissingData)
	}
	if metrics.Correlation == nil || metrics.TotalScore == nil {
		return skip(domain.SkipReason_UndefinedCorrelation)
	}

	classification := calculator.ClassifySpread(metrics.Highest, metrics.Lowest, metrics.Current)
	if classification == nil {
		return nil, nil
	}

	score := *metrics.TotalScore
	if scoreExpression != "" {
		score, err = h.ScoreExpressionService.Evaluate(scoreExpression, l2_service.ScoreInputs{
			Correlation:       *metrics.Correlation,
			ZScore:            metrics.ZScore,
			MeanReversionProb: metrics.MeanReversionProb,
			Risk:              classification.Risk,
			Reward:            classification.Reward,
		})
		if err != nil {
			log.Warnw("failed to evaluate score expression", "pair", ticker1+"/"+ticker2, "error", err.Error())
			return skip(domain.SkipReason_InvalidScore)
		}
	}

	signal := calculator.NewPairSignal(calculator.NewPairSignalInput{
		Ticker1:        ticker1,
		Ticker2:        ticker2,
		Spread:         spread,
		Metrics:        *metrics,
		Classification: *classification,
		Correlation:    *metrics.Correlation,
		TotalScore:     score,
	})

	return &signal, nil
}
