package web

import (
	"embed"
	"html/template"
	"io/fs"
)

// TemplatesFS server-rendered pages
//
//go:embed templates/*.html
var TemplatesFS embed.FS

// StaticFS css served under /static/
//
//go:embed static/*
var StaticFS embed.FS

// Templates parses every page template into one set
func Templates() (*template.Template, error) {
	return template.New("").ParseFS(TemplatesFS, "templates/*.html")
}

// MustTemplates panics when a template does not parse
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static returns the static directory as a filesystem rooted at its files
func Static() fs.FS {
	sub, err := fs.Sub(StaticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
