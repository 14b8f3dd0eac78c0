package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseDateRange(t *testing.T) {
	now := time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

	t.Run("defaults", func(t *testing.T) {
		start, end, err := ParseDateRange("", "", now)
		require.NoError(t, err)
		require.Equal(t, NewDate(2024, 6, 15), end)
		require.Equal(t, NewDate(2024, 6, 15).AddDate(0, 0, -5*365), start)
	})

	t.Run("explicit", func(t *testing.T) {
		start, end, err := ParseDateRange("2020-01-01", "2021-01-01", now)
		require.NoError(t, err)
		require.Equal(t, NewDate(2020, 1, 1), start)
		require.Equal(t, NewDate(2021, 1, 1), end)
	})

	t.Run("end before start", func(t *testing.T) {
		_, _, err := ParseDateRange("2021-01-01", "2020-01-01", now)
		require.Error(t, err)
	})

	t.Run("bad date", func(t *testing.T) {
		_, _, err := ParseDateRange("01/01/2020", "", now)
		require.Error(t, err)
	})
}

func TestParseTickers(t *testing.T) {
	require.Equal(t, []string{"AAPL", "MSFT", "KO"}, ParseTickers(" aapl, MSFT ,,ko, aapl "))
	require.Equal(t, []string{}, ParseTickers(""))
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file gives defaults", func(t *testing.T) {
		cfg, err := LoadConfig(filepath.Join(t.TempDir(), "nope.json"))
		require.NoError(t, err)
		require.Equal(t, DefaultConfig(), *cfg)
	})

	t.Run("json overlay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"dataSource":"csv","csvDir":"data","fetchWorkers":2}`), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, DataSource_Csv, cfg.DataSource)
		require.Equal(t, "data", cfg.CsvDir)
		require.Equal(t, 2, cfg.FetchWorkers)
		require.Equal(t, "pair_trade_messages.txt", cfg.OutputFile)
	})

	t.Run("yaml overlay", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		require.NoError(t, os.WriteFile(path, []byte("dataSource: alpaca\nalpaca:\n  apiKey: k\n  apiSecret: s\n"), 0o644))

		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		require.Equal(t, DataSource_Alpaca, cfg.DataSource)
		require.Equal(t, "k", cfg.Alpaca.ApiKey)
	})

	t.Run("invalid source", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"dataSource":"bloomberg"}`), 0o644))

		_, err := LoadConfig(path)
		require.Error(t, err)
	})
}
