package repository

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"
)

// csvPriceRow matches the Yahoo Finance history export
type csvPriceRow struct {
	Date     string `csv:"Date"`
	AdjClose string `csv:"Adj Close"`
}

// NewCsvPriceRepository reads <dir>/<SYMBOL>.csv files
func NewCsvPriceRepository(dir string) AdjustedPriceRepository {
	return csvPriceRepositoryHandler{
		Dir: dir,
	}
}

type csvPriceRepositoryHandler struct {
	Dir string
}

func (h csvPriceRepositoryHandler) List(ctx context.Context, symbol string, start, end time.Time) ([]domain.AssetPrice, error) {
	path := filepath.Join(h.Dir, strings.ToUpper(symbol)+".csv")
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("no csv for %s at %s: %w", symbol, path, domain.ErrNoData)
	} else if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows := []csvPriceRow{}
	if err := gocsv.UnmarshalFile(f, &rows); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	out := []domain.AssetPrice{}
	for _, row := range rows {
		date, err := time.Parse(time.DateOnly, strings.TrimSpace(row.Date))
		if err != nil {
			return nil, fmt.Errorf("bad date %q in %s: %w", row.Date, path, err)
		}
		if date.Before(start) || !util.DateLte(date, end) {
			continue
		}
		// yahoo writes "null" for missing closes
		price, err := decimal.NewFromString(strings.TrimSpace(row.AdjClose))
		if err != nil {
			continue
		}
		out = append(out, domain.AssetPrice{
			Symbol: symbol,
			Date:   date,
			Price:  price.InexactFloat64(),
		})
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no rows for %s between %s and %s: %w", symbol, start.Format(time.DateOnly), end.Format(time.DateOnly), domain.ErrNoData)
	}

	return out, nil
}
