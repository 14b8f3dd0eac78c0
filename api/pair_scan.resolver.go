package api

import (
	"errors"
	"strings"
	"time"

	"github.com/denizbek-commits/stat-arb-preferreds/internal/domain"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/logger"
	l2_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l2"
	l3_service "github.com/denizbek-commits/stat-arb-preferreds/internal/service/l3"
	"github.com/denizbek-commits/stat-arb-preferreds/internal/util"

	"github.com/gin-gonic/gin"
)

type PairScanRequest struct {
	Tickers         []string `json:"tickers" binding:"required,min=1"`
	Start           string   `json:"start"`
	End             string   `json:"end"`
	ScoreExpression string   `json:"scoreExpression"`
}

type PairScanResponse struct {
	ScanID      string                 `json:"scanID"`
	PairSignals []domain.PairSignal    `json:"pairSignals"`
	Longs       []domain.PositionCount `json:"longs"`
	Shorts      []domain.PositionCount `json:"shorts"`
	Skipped     []domain.SkippedPair   `json:"skipped"`
	// PositionSummaryText is the LONGS/SHORTS block that ends Report
	PositionSummaryText string          `json:"positionSummaryText"`
	Report              string          `json:"report"`
	Profile             *domain.Profile `json:"profile,omitempty"`
}

func (h ApiHandler) pairScan(c *gin.Context) {
	var requestBody PairScanRequest
	if err := c.ShouldBindJSON(&requestBody); err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	tickers := util.ParseTickers(strings.Join(requestBody.Tickers, ","))
	if len(tickers) == 0 {
		returnErrorJsonCode(errors.New("no valid tickers provided"), c, 400)
		return
	}

	start, end, err := util.ParseDateRange(requestBody.Start, requestBody.End, time.Now())
	if err != nil {
		returnErrorJsonCode(err, c, 400)
		return
	}

	profile, endProfile := domain.NewProfile()
	defer endProfile()
	ctx := domain.NewCtxWithProfile(c.Request.Context(), profile)
	ctx = logger.NewContext(ctx, logger.FromContext(c))

	result, err := h.PairScanHandler.Run(ctx, l3_service.PairScanInput{
		Tickers:         tickers,
		Start:           start,
		End:             end,
		ScoreExpression: requestBody.ScoreExpression,
	})
	if err != nil {
		if errors.Is(err, l2_service.ErrInvalidScoreExpression) {
			returnErrorJsonCode(err, c, 400)
			return
		}
		returnErrorJson(err, c)
		return
	}
	profile.End()

	c.JSON(200, PairScanResponse{
		ScanID:              result.ScanID.String(),
		PairSignals:         result.PairSignals,
		Longs:               result.Longs,
		Shorts:              result.Shorts,
		Skipped:             result.Skipped,
		PositionSummaryText: result.PositionSummaryText,
		Report:              result.Report,
		Profile:             profile,
	})
}
