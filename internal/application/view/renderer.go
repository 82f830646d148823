package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/labstack/echo/v4"

	"taskboard/pkg/util/dateutils"
)

const (
	IndexPage = "index.html"
	AddPage   = "add.html"
	ErrorPage = "error.html"
)

//go:embed templates/*.html
var templates embed.FS

var funcs = template.FuncMap{
	"date": dateutils.FormatDate,
}

// Renderer renders the embedded pages, each wrapped in the base layout.
type Renderer struct {
	pages map[string]*template.Template
}

var _ echo.Renderer = (*Renderer)(nil)

func NewRenderer() (*Renderer, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{IndexPage, AddPage, ErrorPage} {
		tmpl, err := template.New(page).Funcs(funcs).ParseFS(templates, "templates/base.html", "templates/"+page)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}
	return &Renderer{pages: pages}, nil
}

func (r *Renderer) Render(w io.Writer, name string, data interface{}, _ echo.Context) error {
	tmpl, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("unknown template %s", name)
	}
	return tmpl.ExecuteTemplate(w, "base", data)
}
