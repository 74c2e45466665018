package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/JaimeStill/sage/internal/notes"
	"github.com/JaimeStill/sage/pkg/handlers"
	"github.com/JaimeStill/sage/pkg/routes"
)

// notesHandler exposes the note blob over HTTP: read the accumulated
// entries, append one manually, or clear the blob. The planning specialist
// writes through the same system, so entries from both sources interleave.
type notesHandler struct {
	sys    notes.System
	logger *slog.Logger
}

func newNotesHandler(sys notes.System, logger *slog.Logger) *notesHandler {
	return &notesHandler{
		sys:    sys,
		logger: logger.With("handler", "notes"),
	}
}

func (h *notesHandler) routes() routes.Group {
	return routes.Group{
		Prefix: "/notes",
		Routes: []routes.Route{
			{Method: "GET", Pattern: "", Handler: h.read},
			{Method: "POST", Pattern: "", Handler: h.append},
			{Method: "DELETE", Pattern: "", Handler: h.clear},
		},
	}
}

type noteContent struct {
	Content string `json:"content"`
	Entries int    `json:"entries"`
}

type appendNote struct {
	Content string `json:"content"`
}

func (h *notesHandler) read(w http.ResponseWriter, r *http.Request) {
	content, err := h.sys.ReadAll(r.Context())
	if err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, noteContent{
		Content: content,
		Entries: notes.CountEntries(content),
	})
}

func (h *notesHandler) append(w http.ResponseWriter, r *http.Request) {
	var req appendNote
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		handlers.RespondError(w, h.logger, http.StatusBadRequest, err)
		return
	}

	if err := h.sys.Append(r.Context(), req.Content); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, notes.ErrEmptyNote) {
			status = http.StatusBadRequest
		}
		handlers.RespondError(w, h.logger, status, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *notesHandler) clear(w http.ResponseWriter, r *http.Request) {
	if err := h.sys.Clear(r.Context()); err != nil {
		handlers.RespondError(w, h.logger, http.StatusInternalServerError, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
