// Package view holds the state behind the console's three views: the
// creation form, the link table and the analytics page.
//
// Each view moves from idle to loading, then to loaded or failed. The only
// way back to loading is a fresh fetch.
package view

import (
	"context"

	"url-shortener-console/internal/domain"
)

// API is the subset of the backend client the views call
type API interface {
	Shorten(ctx context.Context, originalURL string) domain.ShortenResult
	ListAll(ctx context.Context) []domain.ShortLink
	GetAnalytics(ctx context.Context, shortCode string) (*domain.AnalyticsSummary, bool)
	DeleteByCode(ctx context.Context, shortCode string) bool
}

// Status is the fetch lifecycle of a view
type Status int

const (
	StatusIdle Status = iota
	StatusLoading
	StatusLoaded
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusLoaded:
		return "loaded"
	case StatusFailed:
		return "failed"
	default:
		return "idle"
	}
}

// NoticeKind distinguishes success from error notices
type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
)

// Notice is a transient message shown once to the user
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

func success(msg string) Notice { return Notice{Kind: NoticeSuccess, Message: msg} }

func failure(msg string) Notice { return Notice{Kind: NoticeError, Message: msg} }
