package domain

// ClickEvent is a single recorded visit to a short link.
// Click events are immutable and owned by the backend.
type ClickEvent struct {
	Timestamp string `json:"timestamp"`
	IPAddress string `json:"ipAddress"`
}

// AnalyticsSummary is a short link's public fields plus its click history.
// RecentClicks is ordered newest first.
type AnalyticsSummary struct {
	OriginalURL  string       `json:"originalUrl"`
	ShortCode    string       `json:"shortCode"`
	ShortURL     string       `json:"shortUrl"`
	TotalClicks  int64        `json:"totalClicks"`
	CreatedAt    string       `json:"createdAt"`
	RecentClicks []ClickEvent `json:"recentClicks"`
}

// RecentCount returns how many recent clicks the backend reported.
func (a *AnalyticsSummary) RecentCount() int {
	return len(a.RecentClicks)
}

// HasClicks reports whether there is any recent click to list.
func (a *AnalyticsSummary) HasClicks() bool {
	return len(a.RecentClicks) > 0
}

// ClickNumber returns the ordinal shown next to the click at index i.
// The newest click (index 0) gets the highest number.
func (a *AnalyticsSummary) ClickNumber(i int) int {
	return len(a.RecentClicks) - i
}
