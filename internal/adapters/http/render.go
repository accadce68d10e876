package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/gorilla/csrf"

	"hotelchain/internal/adapters/http/middleware"
	"hotelchain/internal/domain/user"
)

//go:embed templates static
var assets embed.FS

// internalError logs the real error and returns a generic message to the client.
func internalError(w http.ResponseWriter, err error) {
	slog.Error("internal_error", "error", err.Error())
	http.Error(w, "internal server error", http.StatusInternalServerError)
}

// renderTemplate executes layout.html plus the page template into a buffer and
// writes it with the given status. Nothing is written if execution fails.
func renderTemplate(w http.ResponseWriter, r *http.Request, status int, templateName string, data map[string]any) {
	sess, ok := middleware.GetSessionFromContext(r.Context())

	funcMap := template.FuncMap{
		"currentRole":  func() string { return sess.Role },
		"currentEmail": func() string { return sess.Email },
		"isLoggedIn":   func() bool { return ok },
		"csrfField":    func() template.HTML { return csrf.TemplateField(r) },
		"dashboardPath": func() string {
			path, _ := user.LandingPath(sess.Role)
			return path
		},
		"percent": func(v float64) string { return fmt.Sprintf("%.2f%%", v) },
	}

	tpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(assets,
		"templates/layout.html",
		"templates/partials.html",
		"templates/"+templateName,
	)
	if err != nil {
		internalError(w, fmt.Errorf("parse %s: %w", templateName, err))
		return
	}

	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		internalError(w, fmt.Errorf("render %s: %w", templateName, err))
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
}
