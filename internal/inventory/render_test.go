package inventory_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"Inventario/internal/inventory"
	"Inventario/web"
)

func TestTemplateRenderer_Embedded(t *testing.T) {
	r, err := inventory.NewTemplateRenderer(web.Templates, web.TemplatesPattern)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}

	out, err := r.Render("index.html", map[string]any{
		"title":    "Inventario",
		"products": inventory.DefaultProducts(),
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	for _, want := range []string{"<title>Inventario</title>", "Hot Dog", "$2.50"} {
		if !strings.Contains(out, want) {
			t.Fatalf("rendered page missing %q", want)
		}
	}
}

func TestTemplateRenderer_UnknownTemplate(t *testing.T) {
	fsys := fstest.MapFS{"a.html": {Data: []byte(`<p>{{ .title }}</p>`)}}
	r, err := inventory.NewTemplateRenderer(fsys, "*.html")
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render("missing.html", nil); err == nil {
		t.Fatalf("expected error for unknown template")
	}
}

func TestNewTemplateRenderer_NoMatches(t *testing.T) {
	if _, err := inventory.NewTemplateRenderer(fstest.MapFS{}, "*.html"); err == nil {
		t.Fatalf("expected error when no templates match")
	}
}
