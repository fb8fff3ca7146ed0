package view

import (
	"context"
	"errors"
	"strings"

	"url-shortener-console/internal/domain"
	"url-shortener-console/internal/metrics"
	"url-shortener-console/pkg/validator"
)

const (
	MsgEnterURL        = "Please enter a URL"
	MsgInvalidURL      = "Please enter a valid URL (include http:// or https://)"
	MsgShortenFailed   = "Failed to shorten URL"
	MsgShortenComplete = "URL shortened successfully!"
)

// CreationView is the "shorten a URL" form
type CreationView struct {
	api       API
	onCreated func(ctx context.Context)

	Status  Status
	Input   string
	Error   string
	Result  *domain.ShortLink
	Notices []Notice
}

// NewCreationView creates the form. onCreated, if set, runs after every
// successful shorten so dependent views can refresh.
func NewCreationView(api API, onCreated func(ctx context.Context)) *CreationView {
	return &CreationView{api: api, onCreated: onCreated}
}

// Submit validates input and, when it is an absolute URL, shortens it.
// Invalid input never reaches the backend.
func (v *CreationView) Submit(ctx context.Context, input string) {
	v.Input = input
	trimmed := strings.TrimSpace(input)

	if err := validator.ValidateURL(trimmed); err != nil {
		metrics.RecordValidationReject()
		if errors.Is(err, validator.ErrEmptyURL) {
			v.Error = MsgEnterURL
		} else {
			v.Error = MsgInvalidURL
		}
		return
	}

	v.Status = StatusLoading
	v.Error = ""
	v.Result = nil

	result := v.api.Shorten(ctx, trimmed)

	if result.Success && result.Link != nil {
		v.Status = StatusLoaded
		v.Result = result.Link
		v.Input = ""
		v.Notices = append(v.Notices, success(MsgShortenComplete))
		if v.onCreated != nil {
			v.onCreated(ctx)
		}
		return
	}

	msg := result.Error
	if msg == "" {
		msg = MsgShortenFailed
	}
	v.Status = StatusFailed
	v.Error = msg
	v.Notices = append(v.Notices, failure(msg))
}
