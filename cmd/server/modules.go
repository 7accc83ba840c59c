package main

import (
	"encoding/json"
	"net/http"

	"github.com/recaplabs/recap/internal/api"
	"github.com/recaplabs/recap/internal/config"
	"github.com/recaplabs/recap/internal/infrastructure"
	"github.com/recaplabs/recap/pkg/module"
	"github.com/recaplabs/recap/web/app"
)

func buildRouter(infra *infrastructure.Infrastructure, cfg *config.Config) (*module.Router, error) {
	router := module.NewRouter()

	modules := api.NewModules(cfg, infra)
	modules.Mount(router)

	front, err := app.Handler()
	if err != nil {
		return nil, err
	}
	router.Handle("/", front)

	router.HandleNative("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	})

	router.HandleNative("GET /readyz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if !infra.Lifecycle.Ready() {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(map[string]string{"status": "ready"})
	})

	return router, nil
}
