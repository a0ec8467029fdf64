// Package web renders the static pages of the site: the informational pages
// and the shells the data-backed pages load into.
package web

import (
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/rekabarchive/memorial-service/internal/config"
	webassets "github.com/rekabarchive/memorial-service/web"
)

// PageData is passed to every page template.
type PageData struct {
	Title  string
	Path   string
	Embeds config.Embeds
}

type Handler struct {
	templates *template.Template
	embeds    config.Embeds
}

func NewHandler(embeds config.Embeds) (*Handler, error) {
	sub, err := fs.Sub(webassets.TemplatesFS, "templates")
	if err != nil {
		return nil, err
	}

	templates, err := template.ParseFS(sub, "*.html")
	if err != nil {
		return nil, err
	}

	return &Handler{templates: templates, embeds: embeds}, nil
}

// Page renders the named template as a full page.
func (h *Handler) Page(name, title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusOK, name, PageData{
			Title:  title,
			Path:   r.URL.Path,
			Embeds: h.embeds,
		})
	}
}

// NotFound is the catch-all for unknown routes.
func (h *Handler) NotFound() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, http.StatusNotFound, "notfound", PageData{
			Title: "Page Not Found",
			Path:  r.URL.Path,
		})
	}
}

func (h *Handler) render(w http.ResponseWriter, status int, name string, data PageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := h.templates.ExecuteTemplate(w, name+".html", data); err != nil {
		slog.Error("Failed to render page", slog.String("page", name), slog.String("error", err.Error()))
	}
}
