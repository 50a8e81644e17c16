package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
	portsrepo "github.com/vyapaarhq/ledger_backend/internal/core/ports/repositories"
	portssvc "github.com/vyapaarhq/ledger_backend/internal/core/ports/services"
	"github.com/vyapaarhq/ledger_backend/internal/dto"
	"github.com/vyapaarhq/ledger_backend/internal/middleware"
)

// insightsService aggregates stock purchases for reporting.
type insightsService struct {
	ledgerRepo portsrepo.LedgerRepositoryFacade
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(ledgerRepo portsrepo.LedgerRepositoryFacade) portssvc.InsightsSvcFacade {
	return &insightsService{ledgerRepo: ledgerRepo}
}

var _ portssvc.InsightsSvcFacade = (*insightsService)(nil)

// windowStart translates a time frame into the inclusive lower bound of the
// reporting window. Nil means the whole ledger; unrecognized frames fall
// through to it. The bound is truncated to midnight because entries carry a
// date, not a timestamp, and the boundary day counts in full.
func windowStart(frame domain.TimeFrame, now time.Time) *time.Time {
	var days int
	switch frame {
	case domain.TimeFrameToday:
		days = 0
	case domain.TimeFrameWeekly:
		days = 7
	case domain.TimeFrameMonthly:
		days = 30
	default:
		return nil
	}
	day := now.AddDate(0, 0, -days)
	since := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, now.Location())
	return &since
}

// GetPurchaseInsights aggregates stock purchases over the requested window,
// grouped by (entry date, quality type), newest date first.
func (s *insightsService) GetPurchaseInsights(ctx context.Context, params dto.InsightsParams) (*dto.InsightsResponse, error) {
	since := windowStart(domain.TimeFrame(params.TimeFrame), time.Now().UTC())

	groups, summary, err := s.ledgerRepo.GetPurchaseInsights(ctx, since, params.QualityTypes)
	if err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("Failed to aggregate purchase insights", slog.String("error", err.Error()), slog.String("time_frame", params.TimeFrame))
		return nil, fmt.Errorf("failed to aggregate purchase insights: %w", err)
	}

	res := dto.ToInsightsResponse(params.TimeFrame, groups, summary)
	return &res, nil
}
