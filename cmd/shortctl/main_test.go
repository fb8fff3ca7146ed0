package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"url-shortener-console/internal/domain"
	"url-shortener-console/internal/view"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockAPI struct {
	mock.Mock
}

func (m *MockAPI) Shorten(ctx context.Context, originalURL string) domain.ShortenResult {
	args := m.Called(ctx, originalURL)
	return args.Get(0).(domain.ShortenResult)
}

func (m *MockAPI) ListAll(ctx context.Context) []domain.ShortLink {
	args := m.Called(ctx)
	return args.Get(0).([]domain.ShortLink)
}

func (m *MockAPI) GetAnalytics(ctx context.Context, shortCode string) (*domain.AnalyticsSummary, bool) {
	args := m.Called(ctx, shortCode)
	if args.Get(0) == nil {
		return nil, args.Bool(1)
	}
	return args.Get(0).(*domain.AnalyticsSummary), args.Bool(1)
}

func (m *MockAPI) DeleteByCode(ctx context.Context, shortCode string) bool {
	args := m.Called(ctx, shortCode)
	return args.Bool(0)
}

func TestRun_Shorten(t *testing.T) {
	api := new(MockAPI)
	link := &domain.ShortLink{ShortCode: "abc123", ShortURL: "http://sho.rt/abc123"}
	api.On("Shorten", mock.Anything, "https://example.com").
		Return(domain.ShortenResult{Success: true, Link: link})

	var out bytes.Buffer
	err := run(context.Background(), api, []string{"shorten", "https://example.com"}, nil, &out)

	require.NoError(t, err)
	assert.Equal(t, "http://sho.rt/abc123\n", out.String())
	api.AssertExpectations(t)
}

func TestRun_ShortenInvalidURL(t *testing.T) {
	api := new(MockAPI)

	var out bytes.Buffer
	err := run(context.Background(), api, []string{"shorten", "not a url"}, nil, &out)

	require.Error(t, err)
	assert.Equal(t, view.MsgInvalidURL, err.Error())
	api.AssertNotCalled(t, "Shorten", mock.Anything, mock.Anything)
}

func TestRun_ListEmpty(t *testing.T) {
	api := new(MockAPI)
	api.On("ListAll", mock.Anything).Return([]domain.ShortLink{})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), api, []string{"list"}, nil, &out))

	assert.Contains(t, out.String(), view.MsgEmptyList)
}

func TestRun_ListRows(t *testing.T) {
	api := new(MockAPI)
	api.On("ListAll", mock.Anything).Return([]domain.ShortLink{
		{ShortCode: "a1", ShortURL: "http://sho.rt/a1", OriginalURL: "https://a.example", Clicks: 3},
		{ShortCode: "b2", ShortURL: "http://sho.rt/b2", OriginalURL: "https://b.example"},
	})

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), api, []string{"list"}, nil, &out))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	assert.Len(t, lines, 3) // header + two rows
	assert.Contains(t, lines[1], "https://a.example")
}

func TestRun_AnalyticsNoClicks(t *testing.T) {
	api := new(MockAPI)
	api.On("GetAnalytics", mock.Anything, "abc123").
		Return(&domain.AnalyticsSummary{ShortCode: "abc123", RecentClicks: []domain.ClickEvent{}}, true)

	var out bytes.Buffer
	require.NoError(t, run(context.Background(), api, []string{"analytics", "abc123"}, nil, &out))

	assert.Contains(t, out.String(), "Total clicks:  0")
	assert.Contains(t, out.String(), view.MsgNoClicks)
}

func TestRun_AnalyticsFailed(t *testing.T) {
	api := new(MockAPI)
	api.On("GetAnalytics", mock.Anything, "missing").Return(nil, false)

	err := run(context.Background(), api, []string{"analytics", "missing"}, nil, &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, view.MsgAnalyticsFailed, err.Error())
}

func TestRun_DeleteAsksFirst(t *testing.T) {
	tests := []struct {
		name       string
		answer     string
		wantDelete bool
	}{
		{name: "yes", answer: "y\n", wantDelete: true},
		{name: "long yes", answer: "YES\n", wantDelete: true},
		{name: "no", answer: "n\n", wantDelete: false},
		{name: "blank", answer: "\n", wantDelete: false},
		{name: "eof", answer: "", wantDelete: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := new(MockAPI)
			api.On("DeleteByCode", mock.Anything, "abc123").Return(true)
			api.On("ListAll", mock.Anything).Return([]domain.ShortLink{})

			var out bytes.Buffer
			err := run(context.Background(), api, []string{"delete", "abc123"}, strings.NewReader(tt.answer), &out)
			require.NoError(t, err)

			if tt.wantDelete {
				api.AssertCalled(t, "DeleteByCode", mock.Anything, "abc123")
				assert.Contains(t, out.String(), view.MsgDeleted)
			} else {
				api.AssertNotCalled(t, "DeleteByCode", mock.Anything, mock.Anything)
				assert.Contains(t, out.String(), "Cancelled")
			}
		})
	}
}

func TestRun_DeleteWithYesFlag(t *testing.T) {
	api := new(MockAPI)
	api.On("DeleteByCode", mock.Anything, "abc123").Return(false)

	err := run(context.Background(), api, []string{"delete", "-yes", "abc123"}, strings.NewReader(""), &bytes.Buffer{})

	require.Error(t, err)
	assert.Equal(t, view.MsgDeleteFailed, err.Error())
	api.AssertExpectations(t)
}

func TestRun_Usage(t *testing.T) {
	assert.ErrorIs(t, run(context.Background(), new(MockAPI), nil, nil, &bytes.Buffer{}), errUsage)
	assert.ErrorIs(t, run(context.Background(), new(MockAPI), []string{"export"}, nil, &bytes.Buffer{}), errUsage)
	assert.Error(t, run(context.Background(), new(MockAPI), []string{"shorten"}, nil, &bytes.Buffer{}))
}
