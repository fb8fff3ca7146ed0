package domain

import "time"

// ShortLink is a persisted record associating an original URL with its
// short code and click statistics. It is created, mutated and deleted by the
// backend; the console only carries it through to the views.
type ShortLink struct {
	ID          string `json:"_id"`
	OriginalURL string `json:"originalUrl"`
	ShortCode   string `json:"shortCode"`
	ShortURL    string `json:"shortUrl"`
	Clicks      int64  `json:"clicks"`
	CreatedAt   string `json:"createdAt"` // ISO-8601, kept verbatim
}

// ShortenResult is the outcome of a shorten request.
// Exactly one of Link and Error is meaningful, depending on Success.
type ShortenResult struct {
	Success bool
	Link    *ShortLink
	Error   string
}

// displayLayout is how timestamps are shown in the views.
const displayLayout = "2006-01-02 15:04:05"

// FormatTimestamp renders an ISO-8601 timestamp in local time.
// Strings that do not parse are returned unchanged.
func FormatTimestamp(ts string) string {
	t, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return ts
	}
	return t.Local().Format(displayLayout)
}
