package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"url-shortener-console/internal/domain"
	"url-shortener-console/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== HELPER FUNCTIONS ====================

func setupBackend(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", server.Client(), nil)
}

// closedBackend returns a client whose backend is no longer listening
func closedBackend(t *testing.T) *Client {
	t.Helper()
	server := httptest.NewServer(http.NotFoundHandler())
	baseURL := server.URL
	server.Close()
	return NewClient(baseURL, nil, nil)
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	io.WriteString(w, body)
}

// ==================== SHORTEN TESTS ====================

func TestShorten_Success(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/shorten", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var req map[string]string
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "https://example.com", req["originalUrl"])

		writeJSON(w, http.StatusCreated, `{"success":true,"data":{"originalUrl":"https://example.com","shortCode":"abc123","shortUrl":"http://sho.rt/abc123","clicks":0,"createdAt":"2025-01-01T00:00:00.000Z"}}`)
	})

	result := c.Shorten(context.Background(), "https://example.com")

	require.True(t, result.Success)
	require.NotNil(t, result.Link)
	assert.Equal(t, "abc123", result.Link.ShortCode)
	assert.Equal(t, "http://sho.rt/abc123", result.Link.ShortURL)
	assert.Empty(t, result.Error)
}

func TestShorten_BackendRejects(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusTooManyRequests, `{"success":false,"error":"Rate limit exceeded"}`)
	})

	result := c.Shorten(context.Background(), "https://example.com")

	assert.False(t, result.Success)
	assert.Nil(t, result.Link)
	assert.Equal(t, "Rate limit exceeded", result.Error)
}

func TestShorten_TransportFailure(t *testing.T) {
	c := closedBackend(t)

	result := c.Shorten(context.Background(), "https://example.com")

	assert.False(t, result.Success)
	assert.Equal(t, ErrConnect, result.Error)
}

func TestShorten_MalformedJSON(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "<html>bad gateway</html>")
	})

	result := c.Shorten(context.Background(), "https://example.com")

	assert.False(t, result.Success)
	assert.Equal(t, ErrConnect, result.Error)
}

func TestShorten_ForwardsRequestID(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-42", r.Header.Get("X-Request-ID"))
		writeJSON(w, http.StatusOK, `{"success":false}`)
	})

	ctx := logger.ContextWithRequestID(context.Background(), "req-42")
	c.Shorten(ctx, "https://example.com")
}

// ==================== LIST TESTS ====================

func TestListAll_Success(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/urls", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":[
			{"_id":"1","originalUrl":"https://a.example","shortCode":"aaa","shortUrl":"http://sho.rt/aaa","clicks":3,"createdAt":"2025-01-01T00:00:00Z"},
			{"_id":"2","originalUrl":"https://b.example","shortCode":"bbb","shortUrl":"http://sho.rt/bbb","clicks":0,"createdAt":"2025-01-02T00:00:00Z"}
		]}`)
	})

	links := c.ListAll(context.Background())

	require.Len(t, links, 2)
	assert.Equal(t, domain.ShortLink{
		ID:          "1",
		OriginalURL: "https://a.example",
		ShortCode:   "aaa",
		ShortURL:    "http://sho.rt/aaa",
		Clicks:      3,
		CreatedAt:   "2025-01-01T00:00:00Z",
	}, links[0])
}

func TestListAll_FailuresAreEmpty(t *testing.T) {
	tests := []struct {
		name    string
		handler http.HandlerFunc
	}{
		{
			name: "success false",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusInternalServerError, `{"success":false,"error":"db down"}`)
			},
		},
		{
			name: "null data",
			handler: func(w http.ResponseWriter, r *http.Request) {
				writeJSON(w, http.StatusOK, `{"success":true,"data":null}`)
			},
		},
		{
			name: "not json",
			handler: func(w http.ResponseWriter, r *http.Request) {
				io.WriteString(w, "oops")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupBackend(t, tt.handler)

			links := c.ListAll(context.Background())

			assert.NotNil(t, links)
			assert.Empty(t, links)
		})
	}
}

func TestListAll_TransportFailure(t *testing.T) {
	links := closedBackend(t).ListAll(context.Background())

	assert.NotNil(t, links)
	assert.Empty(t, links)
}

// ==================== ANALYTICS TESTS ====================

func TestGetAnalytics_Success(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/abc123", r.URL.Path)
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"originalUrl":"https://example.com","shortCode":"abc123","shortUrl":"http://sho.rt/abc123","totalClicks":2,"createdAt":"2025-01-01T00:00:00Z","recentClicks":[
			{"timestamp":"2025-01-03T00:00:00Z","ipAddress":"10.0.0.2"},
			{"timestamp":"2025-01-02T00:00:00Z","ipAddress":"10.0.0.1"}
		]}}`)
	})

	summary, ok := c.GetAnalytics(context.Background(), "abc123")

	require.True(t, ok)
	assert.Equal(t, int64(2), summary.TotalClicks)
	require.Len(t, summary.RecentClicks, 2)
	assert.Equal(t, "10.0.0.2", summary.RecentClicks[0].IPAddress)
}

func TestGetAnalytics_NullRecentClicks(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"success":true,"data":{"shortCode":"abc123","totalClicks":0,"recentClicks":null}}`)
	})

	summary, ok := c.GetAnalytics(context.Background(), "abc123")

	require.True(t, ok)
	assert.NotNil(t, summary.RecentClicks)
	assert.False(t, summary.HasClicks())
}

func TestGetAnalytics_NotFound(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, `{"success":false,"error":"URL not found"}`)
	})

	summary, ok := c.GetAnalytics(context.Background(), "missing")

	assert.False(t, ok)
	assert.Nil(t, summary)
}

func TestGetAnalytics_EscapesShortCode(t *testing.T) {
	c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/analytics/a%2Fb", r.URL.EscapedPath())
		writeJSON(w, http.StatusNotFound, `{"success":false}`)
	})

	_, ok := c.GetAnalytics(context.Background(), "a/b")
	assert.False(t, ok)
}

func TestGetAnalytics_TransportFailure(t *testing.T) {
	summary, ok := closedBackend(t).GetAnalytics(context.Background(), "abc123")

	assert.False(t, ok)
	assert.Nil(t, summary)
}

// ==================== DELETE TESTS ====================

func TestDeleteByCode(t *testing.T) {
	tests := []struct {
		name string
		body string
		want bool
	}{
		{name: "success", body: `{"success":true}`, want: true},
		{name: "rejected", body: `{"success":false,"error":"URL not found"}`, want: false},
		{name: "missing success field", body: `{}`, want: false},
		{name: "malformed", body: `{`, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := setupBackend(t, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodDelete, r.Method)
				assert.Equal(t, "/api/urls/abc123", r.URL.Path)
				writeJSON(w, http.StatusOK, tt.body)
			})

			assert.Equal(t, tt.want, c.DeleteByCode(context.Background(), "abc123"))
		})
	}
}

func TestDeleteByCode_TransportFailure(t *testing.T) {
	assert.False(t, closedBackend(t).DeleteByCode(context.Background(), "abc123"))
}

func TestNewClient_TrimsBaseURL(t *testing.T) {
	c := NewClient("http://localhost:5000///", nil, nil)
	assert.Equal(t, "http://localhost:5000", c.BaseURL())
}
