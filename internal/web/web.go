// Package web holds the embedded templates and static assets of the public site.
package web

import (
	"embed"
	"html/template"
	"io/fs"
	"time"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// FuncMap is available to every page template
var FuncMap = template.FuncMap{
	"formatDate": func(t time.Time) string {
		if t.IsZero() {
			return ""
		}
		return t.Format("January 2, 2006")
	},
}

// Templates parses every page template
func Templates() (*template.Template, error) {
	return template.New("").Funcs(FuncMap).ParseFS(templateFS, "templates/*.html")
}

// Static returns the static asset tree rooted at static/
func Static() (fs.FS, error) {
	return fs.Sub(staticFS, "static")
}
