package api

import (
	"github.com/JaimeStill/sage/internal/config"
	"github.com/JaimeStill/sage/internal/infrastructure"
	"github.com/JaimeStill/sage/pkg/pagination"
)

// Runtime extends Infrastructure with API-specific configuration.
type Runtime struct {
	*infrastructure.Infrastructure
	Pagination pagination.Config
	Pipeline   config.PipelineConfig
	Cache      config.CacheConfig
}

// NewRuntime creates an API runtime with a module-scoped logger.
func NewRuntime(cfg *config.Config, infra *infrastructure.Infrastructure) *Runtime {
	return &Runtime{
		Infrastructure: &infrastructure.Infrastructure{
			Agent:     cfg.Agent,
			Lifecycle: infra.Lifecycle,
			Logger:    infra.Logger.With("module", "api"),
			Database:  infra.Database,
			Storage:   infra.Storage,
		},
		Pagination: cfg.API.Pagination,
		Pipeline:   cfg.Pipeline,
		Cache:      cfg.Cache,
	}
}
