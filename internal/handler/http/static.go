package http

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"url-shortener-console/internal/domain"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// parseTemplates loads the page templates compiled into the binary
func parseTemplates() (*template.Template, error) {
	return template.New("pages").
		Funcs(template.FuncMap{
			"formatTime": domain.FormatTimestamp,
		}).
		ParseFS(templateFS, "templates/*.html")
}

// StaticHandler serves the embedded stylesheet under /static/
func StaticHandler() http.Handler {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		// the embed pattern guarantees the directory exists
		panic(err)
	}
	return http.StripPrefix("/static/", http.FileServer(http.FS(sub)))
}
