package cmd

import (
	"fmt"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/app"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/repository"
	l1_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l1"
	l2_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l2"
	l3_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l3"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"
)

func NewPriceRepository(cfg util.Config) (repository.AdjustedPriceRepository, error) {
	switch cfg.DataSource {
	case util.DataSource_Yahoo:
		return repository.NewBreakerPriceRepository("yahoo", repository.NewYahooPriceRepository()), nil
	case util.DataSource_Alpaca:
		return repository.NewBreakerPriceRepository(
			"alpaca",
			repository.NewAlpacaPriceRepository(cfg.Alpaca.ApiKey, cfg.Alpaca.ApiSecret, cfg.Alpaca.Endpoint),
		), nil
	case util.DataSource_Csv:
		return repository.NewCsvPriceRepository(cfg.CsvDir), nil
	}
	return nil, fmt.Errorf("unknown data source %q", cfg.DataSource)
}

// InitializeDependencies wires the scan pipeline. The api leaves
// writeReports off since results go back in the response.
func InitializeDependencies(cfg util.Config, writeReports bool) (*app.PairScanHandler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	priceRepository, err := NewPriceRepository(cfg)
	if err != nil {
		return nil, err
	}

	priceService := l1_service.NewPriceService(priceRepository, cfg.FetchWorkers, cfg.RequestsPerSecond)
	scoreExpressionService := l2_service.NewScoreExpressionService()
	pairScanService := l3_service.NewPairScanService(priceService, scoreExpressionService)

	handler := &app.PairScanHandler{
		PairScanService: pairScanService,
	}
	if writeReports {
		handler.ReportRepository = repository.NewReportRepository(cfg.OutputFile, cfg.JsonOutputFile)
	}

	return handler, nil
}
