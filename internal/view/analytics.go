package view

import (
	"context"

	"url-shortener-console/internal/domain"
)

const (
	MsgAnalyticsFailed = "Failed to load analytics"
	MsgNoClicks        = "No clicks yet"
)

// ClickRow is one line of the recent click history
type ClickRow struct {
	Number    int
	Timestamp string
	IPAddress string
}

// AnalyticsView shows the click summary of a single short code
type AnalyticsView struct {
	api API

	Status    Status
	ShortCode string
	Summary   *domain.AnalyticsSummary
}

// NewAnalyticsView creates an unloaded analytics view
func NewAnalyticsView(api API) *AnalyticsView {
	return &AnalyticsView{api: api}
}

// Load fetches the summary for shortCode once
func (v *AnalyticsView) Load(ctx context.Context, shortCode string) {
	v.ShortCode = shortCode
	v.Status = StatusLoading
	v.Summary = nil

	summary, ok := v.api.GetAnalytics(ctx, shortCode)
	if !ok || summary == nil {
		v.Status = StatusFailed
		return
	}

	v.Summary = summary
	v.Status = StatusLoaded
}

// Rows returns the recent clicks, newest first, numbered newest-highest
func (v *AnalyticsView) Rows() []ClickRow {
	if v.Summary == nil {
		return nil
	}
	rows := make([]ClickRow, 0, len(v.Summary.RecentClicks))
	for i, click := range v.Summary.RecentClicks {
		rows = append(rows, ClickRow{
			Number:    v.Summary.ClickNumber(i),
			Timestamp: domain.FormatTimestamp(click.Timestamp),
			IPAddress: click.IPAddress,
		})
	}
	return rows
}
