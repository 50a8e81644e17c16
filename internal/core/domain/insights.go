package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TimeFrame selects the reporting window for purchase insights.
type TimeFrame string

const (
	TimeFrameToday   TimeFrame = "today"
	TimeFrameWeekly  TimeFrame = "weekly"
	TimeFrameMonthly TimeFrame = "monthly"
	TimeFrameAll     TimeFrame = "all"
)

// InsightGroup is one (date, quality type) bucket of stock purchases.
type InsightGroup struct {
	EntryDate     time.Time       `json:"entryDate"`
	QualityType   string          `json:"qualityType"`
	TotalQuantity decimal.Decimal `json:"totalQuantity"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
}

// InsightSummary is the rollup across the whole filtered window.
type InsightSummary struct {
	TotalPurchases int64           `json:"totalPurchases"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	TotalQuantity  decimal.Decimal `json:"totalQuantity"`
}
