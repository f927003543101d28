package inventory

import (
	"fmt"
	"html/template"
	"io/fs"
	"strings"
)

// Renderer turns a named template and its data into an HTML document.
type Renderer interface {
	Render(name string, data map[string]any) (string, error)
}

type TemplateRenderer struct {
	t *template.Template
}

// NewTemplateRenderer parses every file in fsys matching pattern. Templates
// are addressed by their base file name.
func NewTemplateRenderer(fsys fs.FS, pattern string) (*TemplateRenderer, error) {
	t, err := template.New("").Funcs(template.FuncMap{
		"price": formatPrice,
	}).ParseFS(fsys, pattern)
	if err != nil {
		return nil, fmt.Errorf("parse templates %q: %w", pattern, err)
	}
	return &TemplateRenderer{t: t}, nil
}

func (r *TemplateRenderer) Render(name string, data map[string]any) (string, error) {
	var b strings.Builder
	if err := r.t.ExecuteTemplate(&b, name, data); err != nil {
		return "", err
	}
	return b.String(), nil
}
