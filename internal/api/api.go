// Package api assembles the HTTP modules with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/recaplabs/recap/internal/config"
	"github.com/recaplabs/recap/internal/infrastructure"
	"github.com/recaplabs/recap/pkg/middleware"
	"github.com/recaplabs/recap/pkg/module"
	"github.com/recaplabs/recap/pkg/routes"
)

// Modules bundles the prefix-mounted HTTP modules that expose the caption domain.
type Modules struct {
	Upload *module.Module
	Files  *module.Module
}

// NewModules creates the upload and file-serving modules with all domain
// handlers and middleware.
func NewModules(cfg *config.Config, infra *infrastructure.Infrastructure) *Modules {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(cfg, runtime)

	handler := domain.Captions.Handler(cfg.API.MaxUploadSizeBytes())

	uploadMux := http.NewServeMux()
	routes.Register(uploadMux, handler.UploadRoutes())

	filesMux := http.NewServeMux()
	routes.Register(filesMux, handler.FileRoutes())

	upload := module.New("/upload", uploadMux)
	files := module.New("/uploads", filesMux)

	for _, m := range []*module.Module{upload, files} {
		m.Use(middleware.CORS(&cfg.API.CORS))
		m.Use(middleware.RequestID())
		m.Use(middleware.Logger(runtime.Logger))
	}

	return &Modules{
		Upload: upload,
		Files:  files,
	}
}

// Mount registers both modules on the router.
func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.Upload)
	router.Mount(m.Files)
}
