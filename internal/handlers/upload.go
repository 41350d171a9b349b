package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/worksheet-lab/ruiji/internal/images"
	"github.com/worksheet-lab/ruiji/internal/models"
)

// HandleAddImage appends one or more images to a session. It accepts a
// multipart upload ("files" or "file"), or JSON with a pasted "data_url" or a
// remote "image_url".
func (h *Handler) HandleAddImage(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]
	if _, ok := h.getSessionOrError(w, sessionID); !ok {
		return
	}

	var added []models.Image
	var err error
	if strings.Contains(r.Header.Get("Content-Type"), "application/json") {
		added, err = h.readJSONImage(r)
	} else {
		added, err = h.readUploadedImages(r)
	}
	if err != nil {
		h.writeError(w, err.Error(), http.StatusBadRequest)
		return
	}

	var session *models.Session
	for _, img := range added {
		session, err = h.sessionStore.AddImage(sessionID, img)
		if err != nil {
			h.writeError(w, err.Error(), h.storeErrorStatus(err))
			return
		}
		slog.Info("Image added", "session_id", sessionID, "image_id", img.ID, "source", img.Source, "mime_type", img.MIMEType, "size", img.Size)
	}

	response := map[string]any{
		"session_id": sessionID,
		"message":    fmt.Sprintf("Successfully added %d image(s)", len(added)),
		"added":      len(added),
		"images":     session.Images,
	}
	h.writeJSON(w, response)
}

func (h *Handler) readJSONImage(r *http.Request) ([]models.Image, error) {
	var request struct {
		DataURL  string `json:"data_url"`
		ImageURL string `json:"image_url"`
	}
	body := io.LimitReader(r.Body, images.MaxImageSize*2)
	if err := json.NewDecoder(body).Decode(&request); err != nil {
		return nil, fmt.Errorf("invalid JSON: %w", err)
	}

	switch {
	case request.DataURL != "":
		data, err := images.ParseDataURL(request.DataURL)
		if err != nil {
			return nil, err
		}
		img, err := images.Decode(data, "paste")
		if err != nil {
			return nil, err
		}
		return []models.Image{*img}, nil
	case request.ImageURL != "":
		data, err := h.fetcher.Fetch(r.Context(), request.ImageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to process image URL: %w", err)
		}
		img, err := images.Decode(data, "url")
		if err != nil {
			return nil, err
		}
		return []models.Image{*img}, nil
	default:
		return nil, fmt.Errorf("data_url or image_url is required")
	}
}

func (h *Handler) readUploadedImages(r *http.Request) ([]models.Image, error) {
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		return nil, fmt.Errorf("failed to read upload: %w", err)
	}

	headers := r.MultipartForm.File["files"]
	if len(headers) == 0 {
		headers = r.MultipartForm.File["file"]
	}
	if len(headers) == 0 {
		return nil, fmt.Errorf("no files uploaded")
	}

	added := make([]models.Image, 0, len(headers))
	for _, header := range headers {
		img, err := readUploadedImage(header)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", header.Filename, err)
		}
		added = append(added, *img)
	}
	return added, nil
}

func readUploadedImage(header *multipart.FileHeader) (*models.Image, error) {
	file, err := header.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer file.Close()

	// Read one byte past the cap so oversized files are detected
	fileData, err := io.ReadAll(io.LimitReader(file, images.MaxImageSize+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read file contents: %w", err)
	}
	return images.Decode(fileData, "upload")
}

// HandleDeleteImage removes the image at the given index, keeping the rest in order
func (h *Handler) HandleDeleteImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	sessionID := vars["id"]

	index, err := strconv.Atoi(vars["index"])
	if err != nil {
		h.writeError(w, "Invalid image index", http.StatusBadRequest)
		return
	}

	session, err := h.sessionStore.DeleteImage(sessionID, index)
	if err != nil {
		h.writeError(w, err.Error(), h.storeErrorStatus(err))
		return
	}

	slog.Info("Image deleted", "session_id", sessionID, "index", index, "remaining", len(session.Images))
	h.writeJSON(w, session)
}

// HandleImage serves the raw bytes of the image at index, for thumbnails
func (h *Handler) HandleImage(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	session, ok := h.getSessionOrError(w, vars["id"])
	if !ok {
		return
	}

	index, err := strconv.Atoi(vars["index"])
	if err != nil || index < 0 || index >= len(session.Images) {
		h.writeError(w, "Image not found", http.StatusNotFound)
		return
	}

	img := session.Images[index]
	w.Header().Set("Content-Type", img.MIMEType)
	w.Header().Set("Cache-Control", "private, max-age=3600")
	if _, err := w.Write(img.Data); err != nil {
		slog.Error("Unable to write image", "session_id", session.ID, "index", index, "err", err)
	}
}
