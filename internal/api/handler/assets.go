package handler

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"

	"voiceforge/internal/api/response"
	"voiceforge/internal/assets"
	"voiceforge/pkg/models"
)

// AssetManager defines the interface the audio handlers depend on.
type AssetManager interface {
	List() ([]models.AudioAsset, error)
	Delete(name string) error
	Open(name string) (*os.File, error)
}

type listAudioResponse struct {
	Success bool                `json:"success"`
	Files   []models.AudioAsset `json:"files"`
}

// NewListAudioHandler returns an http.HandlerFunc for GET /api/v1/audio.
// Files are listed newest first.
func NewListAudioHandler(mgr AssetManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		files, err := mgr.List()
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not list audio files")
			return
		}
		if files == nil {
			files = []models.AudioAsset{}
		}
		response.JSON(w, listAudioResponse{Success: true, Files: files})
	}
}

// NewDeleteAudioHandler returns an http.HandlerFunc for DELETE /api/v1/audio/{filename}.
func NewDeleteAudioHandler(mgr AssetManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")

		if err := mgr.Delete(name); err != nil {
			switch {
			case errors.Is(err, assets.ErrInvalidName):
				response.Error(w, http.StatusBadRequest, "Invalid filename")
			case errors.Is(err, assets.ErrNotFound):
				response.Error(w, http.StatusNotFound, "File not found")
			default:
				response.Error(w, http.StatusInternalServerError, "Could not delete file")
			}
			return
		}

		response.JSON(w, map[string]any{
			"success": true,
			"message": fmt.Sprintf("File %s deleted successfully", name),
		})
	}
}

// NewDownloadAudioHandler returns an http.HandlerFunc for GET /audio/{filename}.
// The file is served with range support so browser audio players can seek.
func NewDownloadAudioHandler(mgr AssetManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		name := chi.URLParam(r, "filename")

		f, err := mgr.Open(name)
		if err != nil {
			switch {
			case errors.Is(err, assets.ErrInvalidName):
				response.Error(w, http.StatusBadRequest, "Invalid filename")
			case errors.Is(err, assets.ErrNotFound):
				response.Error(w, http.StatusNotFound, "File not found")
			default:
				response.Error(w, http.StatusInternalServerError, "Could not open file")
			}
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not read file")
			return
		}
		http.ServeContent(w, r, name, info.ModTime(), f)
	}
}
