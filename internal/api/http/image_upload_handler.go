package http

import (
	"errors"
	"io"
	"net/http"

	"easyrent-backend/internal/logger"
	"easyrent-backend/internal/service"

	"github.com/gorilla/mux"
)

// multipartOverhead is the slack allowed on top of the file size for the
// multipart envelope.
const multipartOverhead = 1 << 20

// ImageUploadHandler handles car image uploads and serves stored files
type ImageUploadHandler struct {
	imageSvc       service.ImageService
	maxUploadBytes int64
}

// NewImageUploadHandler creates a new upload handler
func NewImageUploadHandler(imageSvc service.ImageService, maxUploadBytes int64) *ImageUploadHandler {
	return &ImageUploadHandler{
		imageSvc:       imageSvc,
		maxUploadBytes: maxUploadBytes,
	}
}

// HandleUpload accepts a multipart form with the file in the "image" field
func (h *ImageUploadHandler) HandleUpload(w http.ResponseWriter, r *http.Request) {
	limit := h.maxUploadBytes + multipartOverhead
	r.Body = http.MaxBytesReader(w, r.Body, limit)
	if err := r.ParseMultipartForm(limit); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			writeMessage(w, http.StatusBadRequest, "file too large")
			return
		}
		writeMessage(w, http.StatusBadRequest, "invalid multipart form")
		return
	}
	defer r.MultipartForm.RemoveAll()

	file, header, err := r.FormFile("image")
	if err != nil {
		writeMessage(w, http.StatusBadRequest, "no file uploaded")
		return
	}
	defer file.Close()

	img, err := h.imageSvc.UploadCarImage(r.Context(), header.Filename, header.Header.Get("Content-Type"), header.Size, file)
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, img)
}

// HandleList returns stock and uploaded images
func (h *ImageUploadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	images, err := h.imageSvc.ListCarImages(r.Context())
	if err != nil {
		writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, images)
}

// HandleDelete removes an uploaded image
func (h *ImageUploadHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.imageSvc.DeleteCarImage(r.Context(), mux.Vars(r)["filename"]); err != nil {
		writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// HandleDownload streams a stored image
func (h *ImageUploadHandler) HandleDownload(w http.ResponseWriter, r *http.Request) {
	file, contentType, err := h.imageSvc.OpenCarImage(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, r, err)
		return
	}
	defer file.Close()

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	if _, err := io.Copy(w, file); err != nil {
		logger.Warn("Failed to stream image", "key", mux.Vars(r)["key"], "error", err)
	}
}
