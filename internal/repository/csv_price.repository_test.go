package repository

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

const aaplCsv = `Date,Open,High,Low,Close,Adj Close,Volume
2024-01-02,187.15,188.44,183.89,185.64,184.73,82488700
2024-01-03,184.22,185.88,183.43,184.25,183.35,58414500
2024-01-04,182.15,183.09,180.88,181.91,null,71983600
2024-01-05,181.99,182.76,180.17,181.18,180.29,62303300
`

func TestCsvPriceRepository_List(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "AAPL.csv"), []byte(aaplCsv), 0o644))
	repo := NewCsvPriceRepository(dir)

	t.Run("reads adjusted closes and skips nulls", func(t *testing.T) {
		prices, err := repo.List(context.Background(), "AAPL", util.NewDate(2024, 1, 1), util.NewDate(2024, 1, 31))
		require.NoError(t, err)
		require.Equal(t, "", cmp.Diff([]domain.AssetPrice{
			{Symbol: "AAPL", Date: util.NewDate(2024, 1, 2), Price: 184.73},
			{Symbol: "AAPL", Date: util.NewDate(2024, 1, 3), Price: 183.35},
			{Symbol: "AAPL", Date: util.NewDate(2024, 1, 5), Price: 180.29},
		}, prices))
	})

	t.Run("range is inclusive", func(t *testing.T) {
		prices, err := repo.List(context.Background(), "AAPL", util.NewDate(2024, 1, 3), util.NewDate(2024, 1, 3))
		require.NoError(t, err)
		require.Len(t, prices, 1)
		require.Equal(t, 183.35, prices[0].Price)
	})

	t.Run("nothing in range", func(t *testing.T) {
		_, err := repo.List(context.Background(), "AAPL", util.NewDate(2020, 1, 1), util.NewDate(2020, 12, 31))
		require.ErrorIs(t, err, domain.ErrNoData)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := repo.List(context.Background(), "MSFT", util.NewDate(2024, 1, 1), util.NewDate(2024, 1, 31))
		require.ErrorIs(t, err, domain.ErrNoData)
	})
}
