package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/worksheet-lab/ruiji/internal/models"
)

func (h *Handler) HandleSheets(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sheets, err := h.sheetStore.List()
		if err != nil {
			h.writeError(w, err.Error(), http.StatusInternalServerError)
			return
		}
		h.writeJSON(w, sheets)
	case http.MethodPost:
		h.saveSheet(w, r)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

// saveSheet snapshots either a session's latest result or a result sent in the body
func (h *Handler) saveSheet(w http.ResponseWriter, r *http.Request) {
	var request struct {
		SessionID      string `json:"session_id"`
		Title          string `json:"title"`
		StudentName    string `json:"student_name"`
		InstructorName string `json:"instructor_name"`
		Date           string `json:"date"`
		Result         string `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		h.writeError(w, "Invalid JSON: "+err.Error(), http.StatusBadRequest)
		return
	}

	result := request.Result
	if request.SessionID != "" {
		session, ok := h.getSessionOrError(w, request.SessionID)
		if !ok {
			return
		}
		if session.Result == nil {
			h.writeError(w, "No result generated yet", http.StatusBadRequest)
			return
		}
		result = session.Result.Text
	}
	if result == "" {
		h.writeError(w, "session_id or result is required", http.StatusBadRequest)
		return
	}

	sheet, err := h.sheetStore.Append(models.SavedSheet{
		Title:          request.Title,
		StudentName:    request.StudentName,
		InstructorName: request.InstructorName,
		Date:           request.Date,
		Result:         result,
	})
	if err != nil {
		h.writeError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	slog.Info("Sheet saved", "sheet_id", sheet.ID, "title", sheet.Title)
	h.writeJSONStatus(w, http.StatusCreated, sheet)
}

func (h *Handler) HandleSheetDetail(w http.ResponseWriter, r *http.Request) {
	sheetID := mux.Vars(r)["id"]

	switch r.Method {
	case http.MethodGet:
		sheet, err := h.sheetStore.Get(sheetID)
		if err != nil {
			h.writeError(w, err.Error(), h.storeErrorStatus(err))
			return
		}
		h.writeJSON(w, sheet)
	case http.MethodDelete:
		if err := h.sheetStore.Delete(sheetID); err != nil {
			h.writeError(w, err.Error(), h.storeErrorStatus(err))
			return
		}
		slog.Info("Sheet deleted", "sheet_id", sheetID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
