// Package client serves the static files used by the HTML pages.
package client

import (
	"embed"
	"io/fs"
	"net/http"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"

	"github.com/starquake/quizgame/internal/config"
)

// Prefix is the URL path the static files are served under.
const Prefix = "/static"

//go:embed static/*
var staticFS embed.FS

// Handler returns an [http.Handler] that serves the embedded static files below Prefix.
// Stylesheets are minified when cfg is a production configuration.
func Handler(cfg *config.Config) http.Handler {
	fsys, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}

	fileServer := http.FileServer(http.FS(fsys))

	if cfg.IsProduction() {
		m := minify.New()
		m.AddFunc("text/css", css.Minify)

		return http.StripPrefix(Prefix, m.Middleware(fileServer))
	}

	return http.StripPrefix(Prefix, fileServer)
}
