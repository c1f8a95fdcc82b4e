// web/web.go

// Package web holds the invoice form served at the site root.
package web

import (
	"embed"
	"html/template"
)

//go:embed templates
var templates embed.FS

// FormData is passed to the form template.
type FormData struct {
	Endpoint       string
	IssueDate      string
	DueDate        string
	DefaultTaxRate string
}

// FormTemplate parses the embedded form.
func FormTemplate() (*template.Template, error) {
	return template.ParseFS(templates, "templates/index.html")
}
