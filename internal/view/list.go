package view

import (
	"context"

	"url-shortener-console/internal/domain"
)

const (
	MsgDeleted      = "URL deleted successfully"
	MsgDeleteFailed = "Failed to delete URL"
	MsgEmptyList    = "No URLs yet. Create your first shortened URL above!"
)

// ListView is the table of previously created links
type ListView struct {
	api API

	Status Status
	Links  []domain.ShortLink
	// PendingDelete is the short code awaiting confirmation, empty when the
	// confirmation prompt is closed.
	PendingDelete string
	Notices       []Notice
}

// NewListView creates an unloaded list
func NewListView(api API) *ListView {
	return &ListView{api: api}
}

// Refresh re-fetches the full collection. A failed fetch looks like an
// empty collection.
func (v *ListView) Refresh(ctx context.Context) {
	v.Status = StatusLoading
	v.Links = v.api.ListAll(ctx)
	v.Status = StatusLoaded
}

// IsEmpty reports whether the loaded collection has no rows
func (v *ListView) IsEmpty() bool {
	return len(v.Links) == 0
}

// RequestDelete opens the confirmation prompt for shortCode.
// Nothing is sent to the backend.
func (v *ListView) RequestDelete(shortCode string) {
	v.PendingDelete = shortCode
}

// CancelDelete closes the confirmation prompt
func (v *ListView) CancelDelete() {
	v.PendingDelete = ""
}

// ConfirmDelete deletes the link awaiting confirmation and re-fetches on
// success. It does nothing unless RequestDelete was called first.
func (v *ListView) ConfirmDelete(ctx context.Context) bool {
	code := v.PendingDelete
	if code == "" {
		return false
	}
	v.PendingDelete = ""

	if !v.api.DeleteByCode(ctx, code) {
		v.Notices = append(v.Notices, failure(MsgDeleteFailed))
		return false
	}

	v.Notices = append(v.Notices, success(MsgDeleted))
	v.Refresh(ctx)
	return true
}

// Pending returns the row awaiting delete confirmation, if it is loaded
func (v *ListView) Pending() (domain.ShortLink, bool) {
	for _, link := range v.Links {
		if link.ShortCode == v.PendingDelete && v.PendingDelete != "" {
			return link, true
		}
	}
	return domain.ShortLink{}, false
}
