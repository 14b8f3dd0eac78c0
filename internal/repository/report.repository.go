package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
)

type ReportRepository interface {
	Write(ctx context.Context, result domain.ScanResult) error
}

// NewReportRepository writes the text report to textPath and, when jsonPath is
// set, the full scan result as indented JSON
func NewReportRepository(textPath, jsonPath string) ReportRepository {
	return reportRepositoryHandler{
		TextPath: textPath,
		JsonPath: jsonPath,
	}
}

type reportRepositoryHandler struct {
	TextPath string
	JsonPath string
}

func (h reportRepositoryHandler) Write(ctx context.Context, result domain.ScanResult) error {
	if h.TextPath != "" {
		if err := os.WriteFile(h.TextPath, []byte(result.Report), 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", h.TextPath, err)
		}
	}

	if h.JsonPath != "" {
		bytes, err := json.MarshalIndent(result, "", "    ")
		if err != nil {
			return fmt.Errorf("failed to marshal scan result: %w", err)
		}
		if err := os.WriteFile(h.JsonPath, bytes, 0o644); err != nil {
			return fmt.Errorf("failed to write scan result to %s: %w", h.JsonPath, err)
		}
	}

	return nil
}
