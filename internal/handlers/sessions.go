package handlers

import (
	"log/slog"
	"net/http"
	"sort"
	"time"

	"github.com/gorilla/mux"
	"github.com/worksheet-lab/ruiji/internal/models"
)

func (h *Handler) HandleSessions(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sessions := h.sessionStore.GetAll()
		sessionList := make([]*models.Session, 0, len(sessions))
		for _, session := range sessions {
			sessionList = append(sessionList, session)
		}
		sort.Slice(sessionList, func(i, j int) bool {
			return sessionList[i].CreatedAt.Before(sessionList[j].CreatedAt)
		})
		h.writeJSON(w, sessionList)
	case http.MethodPost:
		session := &models.Session{
			ID:        newSessionID(),
			Images:    []models.Image{},
			CreatedAt: time.Now(),
		}
		h.sessionStore.Set(session.ID, session)
		slog.Info("Session created", "session_id", session.ID)
		h.writeJSONStatus(w, http.StatusCreated, session)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *Handler) HandleSessionDetail(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	session, ok := h.getSessionOrError(w, sessionID)
	if !ok {
		return
	}

	switch r.Method {
	case http.MethodGet:
		h.writeJSON(w, session)
	case http.MethodDelete:
		h.sessionStore.Delete(sessionID)
		slog.Info("Session deleted", "session_id", sessionID)
		w.WriteHeader(http.StatusNoContent)
	default:
		h.writeError(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}
