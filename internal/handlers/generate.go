package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/worksheet-lab/ruiji/internal/generation"
	"github.com/worksheet-lab/ruiji/internal/render"
)

// HandleGenerate sends the session's images to the model and stores the result
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	var request struct {
		Provider string `json:"provider"`
		Model    string `json:"model"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil && !errors.Is(err, io.EOF) {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	settings, err := h.settingsStore.Load()
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	opts := generation.OptionsFromSettings(settings, request.Provider, request.Model)
	slog.Info("Generating worksheet", "session_id", sessionID, "provider", opts.Provider, "model", opts.Model, "images", len(session.Images))

	result, err := h.generator.Generate(r.Context(), session.Images, opts)
	if err != nil {
		status := http.StatusBadGateway
		if errors.Is(err, generation.ErrNoImages) {
			status = http.StatusBadRequest
		}
		h.writeError(w, "Failed to generate problems: "+err.Error(), status)
		return
	}

	session, err = h.sessionStore.SetResult(sessionID, result)
	if err != nil {
		h.writeError(w, err.Error(), h.storeErrorStatus(err))
		return
	}

	h.writeJSON(w, session.Result)
}

// HandleResult returns the latest result, as markdown sections or rendered HTML
func (h *Handler) HandleResult(w http.ResponseWriter, r *http.Request) {
	session, ok := h.getSessionOrError(w, mux.Vars(r)["id"])
	if !ok {
		return
	}
	if session.Result == nil {
		h.writeError(w, "No result generated yet", http.StatusNotFound)
		return
	}

	switch format := r.URL.Query().Get("format"); format {
	case "", "markdown":
		h.writeJSON(w, session.Result)
	case "html":
		rendered := map[string]string{}
		for name, md := range map[string]string{
			"preamble":  session.Result.Sections.Preamble,
			"problems":  session.Result.Sections.Problems,
			"solutions": session.Result.Sections.Solutions,
			"guide":     session.Result.Sections.Guide,
		} {
			out, err := render.Rich(md)
			if err != nil {
				h.writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			rendered[name] = out
		}
		h.writeJSON(w, rendered)
	default:
		h.writeError(w, "Invalid format. Must be 'markdown' or 'html'", http.StatusBadRequest)
	}
}
