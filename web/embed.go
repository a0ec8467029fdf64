// Package web provides the embedded HTML templates for the presentation shell.
package web

import "embed"

// TemplatesFS contains the embedded page templates.
//
//go:embed all:templates
var TemplatesFS embed.FS
