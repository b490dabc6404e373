// Package render executes the embedded HTML templates. Templates are parsed
// once at startup; a parse failure is a boot error, not a request error.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/taskmaster/taskboard/internal/session"
)

//go:embed templates
var templatesFS embed.FS

var pages = []string{
	"tasks.html",
	"register.html",
	"login.html",
	"profile.html",
	"add_task.html",
	"edit_task.html",
	"categories.html",
	"add_category.html",
	"edit_category.html",
}

// Page is the root context every template executes against.
type Page struct {
	User    string
	Flashes []string
	Data    any
}

// Renderer renders pages with the current session user and any pending flash
// messages.
type Renderer struct {
	templates map[string]*template.Template
	sessions  *session.Manager
}

// New parses every page template against the base layout.
func New(sessions *session.Manager) (*Renderer, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, page := range pages {
		tmpl, err := template.ParseFS(templatesFS, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		templates[page] = tmpl
	}
	return &Renderer{templates: templates, sessions: sessions}, nil
}

// Render writes the named page. Pending flash messages are consumed from the
// request, and extra messages may be passed for pages rendered directly
// instead of via a redirect (e.g. the duplicate-username registration form).
func (rn *Renderer) Render(w http.ResponseWriter, r *http.Request, name string, data any, extraFlashes ...string) {
	tmpl, ok := rn.templates[name]
	if !ok {
		log.Error().Str("template", name).Msg("Unknown template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	user, _ := rn.sessions.Current(r)
	page := Page{
		User:    user,
		Flashes: append(session.TakeFlash(w, r), extraFlashes...),
		Data:    data,
	}

	// Render to a buffer first so a template failure never produces a
	// half-written page.
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", page); err != nil {
		log.Error().Err(err).Str("template", name).Msg("Failed to render template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	buf.WriteTo(w)
}
