package api

import (
	"net/http"

	"github.com/JaimeStill/sage/internal/config"
	"github.com/JaimeStill/sage/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	routes.Register(
		mux,
		domain.Queries.Handler().Routes(),
	)

	routes.Register(
		mux,
		domain.Prompts.Handler().Routes(),
	)

	routes.Register(
		mux,
		domain.Conversations.Handler().Routes(),
	)

	notesHandler := newNotesHandler(domain.Notes, runtime.Logger)
	routes.Register(mux, notesHandler.routes())
}
