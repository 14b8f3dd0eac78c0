package app

import (
	"context"
	"fmt"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/logger"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/repository"
	l3_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l3"
)

type PairScanHandler struct {
	PairScanService  l3_service.PairScanService
	ReportRepository repository.ReportRepository
}

// Run scans every pair and persists the report. A report that cannot be
// written is returned as an error alongside the result, so callers can still
// show what was found.
func (h PairScanHandler) Run(ctx context.Context, in l3_service.PairScanInput) (*domain.ScanResult, error) {
	log := logger.FromContext(ctx)
	profile, endProfile := domain.GetProfile(ctx)
	defer endProfile()
	ctx = domain.NewCtxWithProfile(ctx, profile)

	result, err := h.PairScanService.Scan(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("failed to scan pairs: %w", err)
	}

	profile.StartNewSpan("write report")
	if h.ReportRepository != nil {
		if err := h.ReportRepository.Write(ctx, *result); err != nil {
			return result, fmt.Errorf("failed to write report: %w", err)
		}
	}

	log.Infow("pair scan finished", "scanID", result.ScanID.String(), "numSignals", len(result.PairSignals))

	return result, nil
}
