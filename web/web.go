package web

import (
	"embed"
	"html/template"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Templates parses the page templates.
func Templates() *template.Template {
	return template.Must(template.ParseFS(assets, "templates/*.html"))
}

// Static serves the stylesheet and dashboard script.
func Static() http.FileSystem {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}
