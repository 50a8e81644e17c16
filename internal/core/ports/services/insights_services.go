package services

import (
	"context"

	"github.com/vyapaarhq/ledger_backend/internal/dto"
)

// InsightsSvcFacade defines the purchase insights reporting operations.
type InsightsSvcFacade interface {
	// GetPurchaseInsights aggregates stock purchases over the requested time
	// frame, grouped by (entry date, quality type), newest date first.
	GetPurchaseInsights(ctx context.Context, params dto.InsightsParams) (*dto.InsightsResponse, error)
}
