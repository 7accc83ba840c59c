// Package app serves the embedded demo front-end: an upload page that posts
// an image to the caption API and renders the returned captions.
package app

import (
	"embed"
	"net/http"

	"github.com/recaplabs/recap/pkg/web"
)

//go:embed layouts/*.html
var layoutFS embed.FS

//go:embed views/*.html
var viewFS embed.FS

//go:embed static
var staticFS embed.FS

var indexView = web.ViewDef{
	Route:    "/",
	Template: "index.html",
	Title:    "Recap",
	Bundle:   "app",
}

// Handler builds the front-end handler: the index page plus static assets.
func Handler() (http.Handler, error) {
	ts, err := web.NewTemplateSet(layoutFS, viewFS, "layouts/*.html", "views", "", []web.ViewDef{indexView})
	if err != nil {
		return nil, err
	}

	router := web.NewRouter()
	router.HandleFunc("GET /{$}", ts.PageHandler("base", indexView))
	router.HandleFunc("GET /static/", web.DistServer(staticFS, "static", "/static"))

	return router, nil
}
