package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/vyapaarhq/ledger_backend/internal/core/domain"
)

// InsightsParams defines query parameters for the purchase insights endpoint.
type InsightsParams struct {
	// Unknown time frame values fall back to the all-time window.
	TimeFrame    string   `form:"timeFrame,default=all"`
	QualityTypes []string `form:"qualityType"`
}

// InsightGroupResponse is one (date, quality type) bucket of purchases.
type InsightGroupResponse struct {
	EntryDate     time.Time       `json:"entryDate"`
	QualityType   string          `json:"qualityType"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// InsightSummaryResponse is the rollup across all returned buckets.
type InsightSummaryResponse struct {
	TotalPurchases int64           `json:"totalPurchases"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity"`
}

// InsightsResponse wraps the grouped purchase insights.
type InsightsResponse struct {
	TimeFrame string                 `json:"timeFrame"`
	Groups    []InsightGroupResponse `json:"groups"`
	Summary   InsightSummaryResponse `json:"summary"`
}

// ToInsightsResponse converts the domain insight groups and summary to the response DTO.
func ToInsightsResponse(timeFrame string, groups []domain.InsightGroup, summary domain.InsightSummary) InsightsResponse {
	res := InsightsResponse{
		TimeFrame: timeFrame,
		Groups:    make([]InsightGroupResponse, len(groups)),
		Summary: InsightSummaryResponse{
			TotalPurchases: summary.TotalPurchases,
			TotalAmount:    summary.TotalAmount,
			TotalQuantity:  summary.TotalQuantity,
		},
	}
	for i, g := range groups {
		res.Groups[i] = InsightGroupResponse{
			EntryDate:     g.EntryDate,
			QualityType:   g.QualityType,
			TotalQuantity: g.TotalQuantity,
			TotalAmount:   g.TotalAmount,
		}
	}
	return res
}
