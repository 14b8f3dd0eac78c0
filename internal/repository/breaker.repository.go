package repository

import (
	"context"
	"errors"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"

	"github.com/sony/gobreaker"
)

// NewBreakerPriceRepository stops calling a failing remote source after
// repeated errors. "No data" answers count as successes.
func NewBreakerPriceRepository(name string, inner AdjustedPriceRepository) AdjustedPriceRepository {
	st := gobreaker.Settings{Name: name}
	st.Interval = 60 * time.Second
	st.Timeout = 60 * time.Second
	st.ReadyToTrip = func(counts gobreaker.Counts) bool {
		if counts.ConsecutiveFailures >= 3 {
			return true
		}
		if counts.Requests < 20 {
			return false
		}
		return float64(counts.TotalFailures)/float64(counts.Requests) > 0.25
	}
	st.IsSuccessful = func(err error) bool {
		return err == nil || errors.Is(err, domain.ErrNoData)
	}

	return breakerPriceRepositoryHandler{
		Inner:   inner,
		Breaker: gobreaker.NewCircuitBreaker(st),
	}
}

type breakerPriceRepositoryHandler struct {
	Inner   AdjustedPriceRepository
	Breaker *gobreaker.CircuitBreaker
}

func (h breakerPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	result, err := h.Breaker.Execute(func() (interface{}, error) {
		return h.Inner.List(ctx, symbol, start, end)
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.AssetPrice), nil
}
