package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/worksheet-lab/ruiji/internal/models"
)

func (h *Handler) HandleSettings(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		settings, err := h.settingsStore.Load()
		if err != nil {
			h.writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, settings.Masked())
	case http.MethodPut:
		var updated models.Settings
		if err := json.NewDecoder(r.Body).Decode(&updated); err != nil {
			h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
			return
		}

		// A masked key echoed back from GET means "unchanged"
		if strings.HasPrefix(updated.APIKey, "****") {
			current, err := h.settingsStore.Load()
			if err != nil {
				h.writeError(w, err.Error(), http.StatusInternalServerError)
				return
			}
			updated.APIKey = current.APIKey
		}

		if err := h.settingsStore.Save(updated); err != nil {
			h.writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		slog.Info("Settings saved", "provider", updated.Provider, "model", updated.Model)
		h.writeJSON(w, updated.Masked())
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
