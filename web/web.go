// Package web holds the HTML templates compiled into the binary.
package web

import "embed"

// TemplatesPattern matches every page template inside Templates.
const TemplatesPattern = "templates/*.html"

//go:embed templates/*.html
var Templates embed.FS
