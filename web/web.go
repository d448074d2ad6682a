// Package web holds the HTML templates and static assets, embedded so the
// binary runs from any working directory.
package web

import (
	"embed"
	"io/fs"
	"net/http"

	html "github.com/gofiber/template/html/v2"
)

//go:embed templates public
var files embed.FS

// Layout wraps every rendered page.
const Layout = "layouts/main"

// Engine returns a template engine over the embedded templates. Names are
// paths without the extension, e.g. "fruits/index".
func Engine() *html.Engine {
	return html.NewFileSystem(http.FS(sub("templates")), ".html")
}

// Public serves dir when set, the embedded assets otherwise.
func Public(dir string) http.FileSystem {
	if dir != "" {
		return http.Dir(dir)
	}
	return http.FS(sub("public"))
}

func sub(dir string) fs.FS {
	f, err := fs.Sub(files, dir)
	if err != nil {
		panic(err)
	}
	return f
}
