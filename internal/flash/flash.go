// Package flash keeps one-shot notices for a browser session across a
// POST/redirect/GET round trip.
package flash

import (
	"context"

	"url-shortener-console/internal/view"
)

// Store holds pending notices per session ID
type Store interface {
	// Push appends notices for sid
	Push(ctx context.Context, sid string, notices ...view.Notice) error
	// Pop returns and clears every pending notice for sid
	Pop(ctx context.Context, sid string) ([]view.Notice, error)
}
