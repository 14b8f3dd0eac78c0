package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"

	"github.com/alpacahq/alpaca-trade-api-go/v3/marketdata"
)

// alpacaBarsClient is the slice of marketdata.Client this repository uses
type alpacaBarsClient interface {
	GetBars(symbol string, req marketdata.GetBarsRequest) ([]marketdata.Bar, error)
}

func NewAlpacaPriceRepository(apiKey, apiSecret string, endpoint string) AdjustedPriceRepository {
	mdClient := marketdata.NewClient(marketdata.ClientOpts{
		BaseURL:   endpoint,
		APIKey:    apiKey,
		APISecret: apiSecret,
	})

	return alpacaPriceRepositoryHandler{
		MdClient: mdClient,
	}
}

type alpacaPriceRepositoryHandler struct {
	MdClient alpacaBarsClient
}

func (h alpacaPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	bars, err := h.MdClient.GetBars(symbol, marketdata.GetBarsRequest{
		TimeFrame:  marketdata.OneDay,
		Adjustment: marketdata.All,
		Start:      start,
		End:        end.AddDate(0, 0, 1),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get alpaca bars for %s: %w", symbol, err)
	}

	out := []domain.AssetPrice{}
	for _, bar := range bars {
		if bar.Close == 0 {
			continue
		}
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Date:   bar.Timestamp.UTC(),
			Price:  bar.Close,
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("alpaca returned no bars for %s: %w", symbol, domain.ErrNoData)
	}

	return out, nil
}
