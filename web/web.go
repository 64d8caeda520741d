// Package web holds the console's HTML templates.
package web

import "embed"

//go:embed templates/*.html
var FS embed.FS
