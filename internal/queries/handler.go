package queries

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/sage/internal/pipeline"
	"github.com/JaimeStill/sage/pkg/handlers"
	"github.com/JaimeStill/sage/pkg/routes"
)

// Handler provides HTTP endpoints for query runs.
type Handler struct {
	sys    System
	logger *slog.Logger
}

// NewHandler creates a Handler with the given system and logger.
func NewHandler(sys System, logger *slog.Logger) *Handler {
	return &Handler{
		sys:    sys,
		logger: logger.With("handler", "queries"),
	}
}

// Routes returns the route group definition for query endpoints.
func (h *Handler) Routes() routes.Group {
	return routes.Group{
		Prefix: "/queries",
		Routes: []routes.Route{
			{Method: "POST", Pattern: "", Handler: h.Run},
			{Method: "GET", Pattern: "/stats", Handler: h.Stats},
		},
	}
}

// Run accepts a JSON body with the query text and optional session, runs the
// pipeline, and returns the full result.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	var cmd RunCommand
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	result, err := h.sys.Run(r.Context(), cmd)
	if err != nil {
		handlers.RespondError(w, h.logger, mapHTTPStatus(err), err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}

// Stats returns cache effectiveness counters.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	handlers.RespondJSON(w, http.StatusOK, h.sys.Stats())
}

func mapHTTPStatus(err error) int {
	if errors.Is(err, pipeline.ErrEmptyQuery) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
