package web

import (
	"bytes"
	"embed"
	"html/template"
	"io/fs"
	"log"
	"net/http"
)

//go:embed templates/*.html static
var assets embed.FS

var (
	pages    = template.Must(template.New("").ParseFS(assets, "templates/*.html"))
	staticFS = mustSub(assets, "static")
)

func mustSub(fsys fs.FS, dir string) fs.FS {
	sub, err := fs.Sub(fsys, dir)
	if err != nil {
		panic(err)
	}
	return sub
}

func renderConsole(w http.ResponseWriter, status int, data pageData) {
	render(w, status, "console", data)
}

func renderLogin(w http.ResponseWriter, status int, data loginData) {
	render(w, status, "login", data)
}

// render buffers the page and answers 500 if the template fails.
func render(w http.ResponseWriter, status int, name string, data any) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, name, data); err != nil {
		log.Printf("template render failed: template=%s error=%v", name, err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}
