package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/worksheet-lab/ruiji/internal/generation"
	"github.com/worksheet-lab/ruiji/internal/images"
	"github.com/worksheet-lab/ruiji/internal/models"
	"github.com/worksheet-lab/ruiji/internal/storage"
)

// Generator produces a GenerationResult from a set of problem images
type Generator interface {
	Generate(ctx context.Context, imgs []models.Image, opts generation.Options) (*models.GenerationResult, error)
}

type Handler struct {
	sessionStore  *storage.SessionStore
	settingsStore *storage.SettingsStore
	sheetStore    *storage.SheetStore
	generator     Generator
	fetcher       *images.Fetcher
	staticDir     string
}

// New creates a handler whose settings and saved sheets live in dataDir
func New(dataDir, staticDir string) *Handler {
	return NewWithGenerator(dataDir, staticDir, generation.NewService())
}

func NewWithGenerator(dataDir, staticDir string, generator Generator) *Handler {
	return &Handler{
		sessionStore:  storage.New(),
		settingsStore: storage.NewSettingsStore(dataDir),
		sheetStore:    storage.NewSheetStore(dataDir),
		generator:     generator,
		fetcher:       images.NewFetcher(),
		staticDir:     staticDir,
	}
}

// Routes registers every endpoint on a new router
func (h *Handler) Routes() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
		if _, err := w.Write([]byte("OK")); err != nil {
			slog.Error("Unable to write healthcheck", "err", err)
		}
	})

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sessions", h.HandleSessions).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/sessions/{id}", h.HandleSessionDetail).Methods(http.MethodGet, http.MethodDelete)
	api.HandleFunc("/sessions/{id}/images", h.HandleAddImage).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/images/{index:[0-9]+}", h.HandleImage).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/images/{index:[0-9]+}", h.HandleDeleteImage).Methods(http.MethodDelete)
	api.HandleFunc("/sessions/{id}/generate", h.HandleGenerate).Methods(http.MethodPost)
	api.HandleFunc("/sessions/{id}/result", h.HandleResult).Methods(http.MethodGet)
	api.HandleFunc("/sessions/{id}/print", h.HandleSessionPrint).Methods(http.MethodGet)
	api.HandleFunc("/settings", h.HandleSettings).Methods(http.MethodGet, http.MethodPut)
	api.HandleFunc("/sheets", h.HandleSheets).Methods(http.MethodGet, http.MethodPost)
	api.HandleFunc("/sheets/{id}", h.HandleSheetDetail).Methods(http.MethodGet, http.MethodDelete)
	api.HandleFunc("/sheets/{id}/print", h.HandleSheetPrint).Methods(http.MethodGet)

	r.PathPrefix("/").HandlerFunc(h.HandleStatic)
	return r
}

// Response helpers
func (h *Handler) writeJSON(w http.ResponseWriter, data interface{}) {
	h.writeJSONStatus(w, http.StatusOK, data)
}

func (h *Handler) writeJSONStatus(w http.ResponseWriter, code int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("Unable to encode JSON response", "err", err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handler) writeError(w http.ResponseWriter, message string, code int) {
	slog.Error(message, "status", code)
	http.Error(w, message, code)
}

func (h *Handler) writeHTML(w http.ResponseWriter, doc string) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if _, err := w.Write([]byte(doc)); err != nil {
		slog.Error("Unable to write HTML response", "err", err)
	}
}

// Session helpers
func (h *Handler) getSessionOrError(w http.ResponseWriter, sessionID string) (*models.Session, bool) {
	session, exists := h.sessionStore.Get(sessionID)
	if !exists {
		h.writeError(w, "Session not found", http.StatusNotFound)
		return nil, false
	}
	return session, true
}

func (h *Handler) storeErrorStatus(err error) int {
	if errors.Is(err, storage.ErrNotFound) {
		return http.StatusNotFound
	}
	return http.StatusInternalServerError
}

func newSessionID() string {
	return "ws_" + strconv.FormatInt(time.Now().UnixNano(), 36)
}
