// Package api assembles the API module with all domain systems and route registration.
package api

import (
	"net/http"

	"github.com/JaimeStill/sage/internal/config"
	"github.com/JaimeStill/sage/internal/infrastructure"
	"github.com/JaimeStill/sage/pkg/middleware"
	"github.com/JaimeStill/sage/pkg/module"
	"github.com/JaimeStill/sage/pkg/openapi"
)

// NewModule creates the API module with all domain handlers and middleware.
func NewModule(cfg *config.Config, infra *infrastructure.Infrastructure) (*module.Module, error) {
	runtime := NewRuntime(cfg, infra)
	domain := NewDomain(runtime)

	mux := http.NewServeMux()
	registerRoutes(mux, domain, cfg, runtime)

	specBytes, err := buildSpec(cfg)
	if err != nil {
		return nil, err
	}
	mux.HandleFunc("GET /openapi.json", openapi.ServeSpec(specBytes))

	m := module.New(cfg.API.BasePath, mux)
	m.Use(middleware.CORS(&cfg.API.CORS))
	m.Use(middleware.BodyLimit(cfg.API.MaxBodySizeBytes()))
	m.Use(middleware.Logger(runtime.Infrastructure.Logger))

	return m, nil
}
