package l1_service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/logger"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/repository"

	"golang.org/x/time/rate"
)

/**

every symbol is fetched once per scan, resampled to weekly closes and kept
in memory. a fetch that errors or comes back empty is never fatal - the
symbol is recorded as missing and every pair that contains it gets skipped

*/

type PriceService interface {
	LoadWeeklySeries(ctx context.Context, symbols []string, start, end time.Time) (*WeeklySeriesCache, error)
}

// WeeklySeriesCache is filled completely before any pair is analysed and is
// read-only afterwards
type WeeklySeriesCache struct {
	series  map[string]domain.PriceSeries
	missing map[string]error
}

// Get returns the weekly series for symbol, or an error wrapping
// domain.ErrNoData
func (c *WeeklySeriesCache) Get(symbol string) (domain.PriceSeries, error) {
	if s, ok := c.series[symbol]; ok {
		return s, nil
	}
	if err, ok := c.missing[symbol]; ok {
		return domain.PriceSeries{}, err
	}
	return domain.PriceSeries{}, fmt.Errorf("%s was never loaded: %w", symbol, domain.ErrNoData)
}

func NewPriceService(adjPriceRepository repository.AdjustedPriceRepository, numWorkers int, requestsPerSecond float64) PriceService {
	if numWorkers < 1 {
		numWorkers = 1
	}
	limit := rate.Inf
	if requestsPerSecond > 0 {
		limit = rate.Limit(requestsPerSecond)
	}
	return &priceServiceHandler{
		AdjPriceRepository: adjPriceRepository,
		Limiter:            rate.NewLimiter(limit, 1),
		NumWorkers:         numWorkers,
	}
}

type priceServiceHandler struct {
	AdjPriceRepository repository.AdjustedPriceRepository
	Limiter            *rate.Limiter
	NumWorkers         int
}

func (h priceServiceHandler) LoadWeeklySeries(ctx context.Context, symbols []string, start, end time.Time) (*WeeklySeriesCache, error) {
	cache := &WeeklySeriesCache{
		series:  map[string]domain.PriceSeries{},
		missing: map[string]error{},
	}
	var mu sync.Mutex

	inputCh := make(chan string, len(symbols))
	for _, s := range symbols {
		inputCh <- s
	}
	close(inputCh)

	var wg sync.WaitGroup
	wg.Add(h.NumWorkers)
	for i := 0; i < h.NumWorkers; i++ {
		go func() {
			defer wg.Done()
			for symbol := range inputCh {
				series, err := h.loadWeeklySeries(ctx, symbol, start, end)
				mu.Lock()
				if err != nil {
					cache.missing[symbol] = err
				} else {
					cache.series[symbol] = series
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}

	return cache, nil
}

// loadWeeklySeries converts every failure into an error wrapping
// domain.ErrNoData
func (h priceServiceHandler) loadWeeklySeries(ctx context.Context, symbol string, start, end time.Time) (domain.PriceSeries, error) {
	log := logger.FromContext(ctx)

	if err := h.Limiter.Wait(ctx); err != nil {
		return domain.PriceSeries{}, fmt.Errorf("%s: %w: %s", symbol, domain.ErrNoData, err.Error())
	}

	prices, err := h.AdjPriceRepository.List(ctx, symbol, start, end)
	if errors.Is(err, domain.ErrNoData) {
		log.Warnw("no price data found", "symbol", symbol)
		return domain.PriceSeries{}, err
	} else if err != nil {
		log.Warnw("failed to fetch prices", "symbol", symbol, "error", err.Error())
		return domain.PriceSeries{}, fmt.Errorf("%s: %w: %s", symbol, domain.ErrNoData, err.Error())
	}

	weekly := domain.NewPriceSeries(symbol, prices).ResampleWeekly()
	if weekly.IsEmpty() {
		log.Warnw("no usable prices after resampling", "symbol", symbol)
		return domain.PriceSeries{}, fmt.Errorf("%s has no usable prices: %w", symbol, domain.ErrNoData)
	}

	return weekly, nil
}
