package http

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"net/http"

	"github.com/DRSN-tech/storefront/pkg/e"
	"github.com/jimlawless/whereami"
)

//go:embed templates/*.html
var templatesFS embed.FS

//go:embed static
var staticFS embed.FS

// PlaceholderSVG возвращает встроенный плейсхолдер изображения.
func PlaceholderSVG() ([]byte, error) {
	return staticFS.ReadFile("static/placeholder.svg")
}

func staticHandler() (http.Handler, error) {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, e.Wrap(whereami.WhereAmI(), err)
	}

	return http.StripPrefix("/static/", http.FileServer(http.FS(sub))), nil
}

// Views хранит распарсенные шаблоны страниц.
type Views struct {
	pages map[string]*template.Template
}

func NewViews() (*Views, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{"grid.html", "product.html", "error.html"} {
		t, err := template.ParseFS(templatesFS, "templates/layout.html", "templates/"+page)
		if err != nil {
			return nil, e.Wrap(whereami.WhereAmI(), err)
		}
		pages[page] = t
	}

	return &Views{pages: pages}, nil
}

// Render отрисовывает страницу в буфер целиком, чтобы ошибка шаблона не оставила полуответ.
func (v *Views) Render(w http.ResponseWriter, status int, page string, data any) error {
	t, ok := v.pages[page]
	if !ok {
		return e.Wrap(page, e.ErrInternalServerError)
	}

	var buf bytes.Buffer
	if err := t.ExecuteTemplate(&buf, page, data); err != nil {
		return e.Wrap(whereami.WhereAmI(), err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err := buf.WriteTo(w)
	return err
}
