package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"url-shortener-console/internal/flash"
	"url-shortener-console/internal/metrics"
	"url-shortener-console/internal/view"
	"url-shortener-console/pkg/logger"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// Site describes the console for the page chrome
type Site struct {
	Brand string
	// Origin is the public scheme://host of the console. Empty means it is
	// derived from each request.
	Origin string
}

// Handler renders the console pages.
// Views are built per request; the handler keeps no view state between
// requests except flash notices.
type Handler struct {
	api        view.API
	flashes    flash.Store
	logger     *slog.Logger
	pages      *template.Template
	site       Site
	cookieName string
	now        func() time.Time
}

// NewHandler creates the page handler
func NewHandler(api view.API, flashes flash.Store, logger *slog.Logger, site Site, cookieName string) (*Handler, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	if cookieName == "" {
		cookieName = "flash_sid"
	}
	return &Handler{
		api:        api,
		flashes:    flashes,
		logger:     logger,
		pages:      pages,
		site:       site,
		cookieName: cookieName,
		now:        time.Now,
	}, nil
}

// pageData is what the layout template renders
type pageData struct {
	Title   string
	Site    Site
	Year    int
	JSONLD  []template.JS
	Notices []view.Notice

	Creation  *view.CreationView
	List      *view.ListView
	Analytics *view.AnalyticsView

	EmptyListMessage       string
	NoClicksMessage        string
	AnalyticsFailedMessage string
}

// Index handles GET /
func (h *Handler) Index(w http.ResponseWriter, r *http.Request) {
	list := view.NewListView(h.api)
	list.Refresh(r.Context())

	h.renderHome(w, r, view.NewCreationView(h.api, nil), list, nil)
}

// Shorten handles POST /shorten
func (h *Handler) Shorten(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid form body")
		return
	}

	list := view.NewListView(h.api)
	creation := view.NewCreationView(h.api, list.Refresh)
	creation.Submit(r.Context(), r.PostFormValue("url"))

	// a successful submit already refreshed the list through onCreated
	if list.Status != view.StatusLoaded {
		list.Refresh(r.Context())
	}

	if creation.Result != nil {
		logger.FromContext(r.Context(), h.logger).Info("URL shortened",
			"short_code", creation.Result.ShortCode,
		)
	}

	h.renderHome(w, r, creation, list, creation.Notices)
}

// ConfirmDelete handles GET /urls/{shortCode}/delete.
// It only opens the confirmation prompt.
func (h *Handler) ConfirmDelete(w http.ResponseWriter, r *http.Request) {
	list := view.NewListView(h.api)
	list.Refresh(r.Context())
	list.RequestDelete(chi.URLParam(r, "shortCode"))

	h.renderHome(w, r, view.NewCreationView(h.api, nil), list, nil)
}

// Delete handles POST /urls/{shortCode}/delete.
// The link is deleted only when the confirmation form was submitted.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		respondError(w, r, http.StatusBadRequest, "Invalid form body")
		return
	}

	shortCode := chi.URLParam(r, "shortCode")
	if r.PostFormValue("confirm") != "yes" {
		h.ConfirmDelete(w, r)
		return
	}

	list := view.NewListView(h.api)
	list.RequestDelete(shortCode)
	if list.ConfirmDelete(r.Context()) {
		logger.FromContext(r.Context(), h.logger).Info("URL deleted", "short_code", shortCode)
	}

	h.pushFlash(w, r, list.Notices)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// Analytics handles GET /analytics/{shortCode}
func (h *Handler) Analytics(w http.ResponseWriter, r *http.Request) {
	analytics := view.NewAnalyticsView(h.api)
	analytics.Load(r.Context(), chi.URLParam(r, "shortCode"))

	data := h.basePage(r, "Analytics", nil)
	data.Analytics = analytics
	h.render(w, r, data)
}

// HealthCheck handles GET /health/live
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, r, http.StatusOK, map[string]string{
		"status": "ok",
		"time":   h.now().Format(time.RFC3339),
	})
}

// NotFound answers unknown routes
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	respondError(w, r, http.StatusNotFound, "Page not found")
}

func (h *Handler) renderHome(w http.ResponseWriter, r *http.Request, creation *view.CreationView, list *view.ListView, notices []view.Notice) {
	data := h.basePage(r, "Shorten Your URLs Instantly", notices)
	data.Creation = creation
	data.List = list
	data.Notices = append(data.Notices, list.Notices...)
	h.render(w, r, data)
}

// basePage fills the layout fields shared by every page, including any
// flash notices left by a previous redirect
func (h *Handler) basePage(r *http.Request, title string, notices []view.Notice) *pageData {
	site := h.site
	if site.Origin == "" {
		site.Origin = requestOrigin(r)
	}

	data := &pageData{
		Title:                  title,
		Site:                   site,
		Year:                   h.now().Year(),
		JSONLD:                 structuredData(site),
		EmptyListMessage:       view.MsgEmptyList,
		NoClicksMessage:        view.MsgNoClicks,
		AnalyticsFailedMessage: view.MsgAnalyticsFailed,
	}
	data.Notices = append(h.popFlash(r), notices...)
	return data
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, data *pageData) {
	// render into a buffer so a template error never leaves half a page
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.FromContext(r.Context(), h.logger).Error("Failed to render page", "error", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	buf.WriteTo(w)
}

// sessionID returns the flash session of the browser, issuing one if needed
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) string {
	if c, err := r.Cookie(h.cookieName); err == nil && c.Value != "" {
		return c.Value
	}
	sid := uuid.New().String()
	http.SetCookie(w, &http.Cookie{
		Name:     h.cookieName,
		Value:    sid,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func (h *Handler) pushFlash(w http.ResponseWriter, r *http.Request, notices []view.Notice) {
	if len(notices) == 0 {
		return
	}
	if err := h.flashes.Push(r.Context(), h.sessionID(w, r), notices...); err != nil {
		metrics.RecordFlashError("push")
		logger.FromContext(r.Context(), h.logger).Warn("Failed to store flash notices", "error", err)
	}
}

func (h *Handler) popFlash(r *http.Request) []view.Notice {
	c, err := r.Cookie(h.cookieName)
	if err != nil || c.Value == "" {
		return nil
	}
	notices, err := h.flashes.Pop(r.Context(), c.Value)
	if err != nil {
		metrics.RecordFlashError("pop")
		logger.FromContext(r.Context(), h.logger).Warn("Failed to read flash notices", "error", err)
		return nil
	}
	return notices
}

func requestOrigin(r *http.Request) string {
	scheme := "http"
	if r.TLS != nil || strings.EqualFold(r.Header.Get("X-Forwarded-Proto"), "https") {
		scheme = "https"
	}
	return scheme + "://" + r.Host
}

// structuredData returns the schema.org Organization and WebSite blocks
// for the page head
func structuredData(site Site) []template.JS {
	organization := map[string]any{
		"@context": "https://schema.org",
		"@type":    "Organization",
		"name":     site.Brand,
		"url":      site.Origin,
	}
	website := map[string]any{
		"@context":    "https://schema.org",
		"@type":       "WebSite",
		"url":         site.Origin,
		"name":        site.Brand,
		"description": site.Brand + " is a free and fast URL shortener that lets you instantly create short links. No login required.",
	}

	blocks := make([]template.JS, 0, 2)
	for _, block := range []map[string]any{organization, website} {
		// json.Marshal escapes <, > and &, so the output is safe inside <script>
		data, err := json.Marshal(block)
		if err != nil {
			continue
		}
		blocks = append(blocks, template.JS(data))
	}
	return blocks
}
