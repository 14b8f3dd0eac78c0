package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"

	finance "github.com/piquette/finance-go"
	"github.com/piquette/finance-go/chart"
	"github.com/piquette/finance-go/datetime"
)

// AdjustedPriceRepository lists daily adjusted closes for one symbol between
// start and end, inclusive. Implementations return domain.ErrNoData (wrapped
// or bare) when the source has nothing for the symbol.
type AdjustedPriceRepository interface {
	List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error)
}

func NewYahooPriceRepository() AdjustedPriceRepository {
	return yahooPriceRepositoryHandler{}
}

type yahooPriceRepositoryHandler struct{}

func (h yahooPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	// chart end is exclusive
	chartEnd := end.AddDate(0, 0, 1)
	params := &chart.Params{
		Start:    datetime.New(&start),
		End:      datetime.New(&chartEnd),
		Symbol:   symbol,
		Interval: datetime.OneDay,
	}
	iter := chart.Get(params)

	out := []domain.AssetPrice{}
	for iter.Next() {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		bar := iter.Bar()
		// missing closes come back as zero
		if bar.AdjClose.IsZero() {
			continue
		}
		date := exchangeDate(bar.Timestamp, iter.Meta())
		if date.Before(start) || !util.DateLte(date, end) {
			continue
		}
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Date:   date,
			Price:  bar.AdjClose.InexactFloat64(),
		})
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", symbol, err)
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("yahoo returned no bars for %s: %w", symbol, domain.ErrNoData)
	}

	return out, nil
}

// exchangeDate converts a bar timestamp to the calendar date it traded on at
// the listing exchange, returned as midnight UTC
func exchangeDate(timestamp int, meta finance.ChartMeta) time.Time {
	loc := time.UTC
	if meta.ExchangeTimezoneName != "" {
		if l, err := time.LoadLocation(meta.ExchangeTimezoneName); err == nil {
			loc = l
		} else {
			loc = time.FixedZone(meta.Timezone, meta.Gmtoffset)
		}
	} else if meta.Gmtoffset != 0 {
		loc = time.FixedZone(meta.Timezone, meta.Gmtoffset)
	}

	t := time.Unix(int64(timestamp), 0).In(loc)
	return util.NewDate(t.Year(), int(t.Month()), t.Day())
}
