package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"voiceforge/internal/api/response"
	"voiceforge/internal/engine/elevenlabs"
	"voiceforge/pkg/models"
)

// VoiceDirectory defines the hosted-engine lookups the handlers depend on.
type VoiceDirectory interface {
	ValidateKey(ctx context.Context, inline, name string) error
	Voices(ctx context.Context, inline, name string) ([]models.Voice, error)
	Quota(ctx context.Context, inline, name string) (models.QuotaInfo, error)
}

// credentialRequest carries either an inline API key or the name of a
// server-side stored key. The inline key wins when both are present.
type credentialRequest struct {
	APIKey  string `json:"api_key"`
	KeyName string `json:"key_name"`
}

func decodeCredential(r *http.Request) (credentialRequest, error) {
	var req credentialRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return credentialRequest{}, err
	}
	return req, nil
}

// writeDirectoryError maps directory failures onto HTTP statuses. Credential
// problems are the caller's fault; an unreachable upstream is a bad gateway.
func writeDirectoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, elevenlabs.ErrCredentialRequired),
		errors.Is(err, elevenlabs.ErrStoredKeyNotFound):
		response.Error(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, elevenlabs.ErrUnauthorized):
		response.Error(w, http.StatusBadRequest, "Invalid API key provided")
	case errors.Is(err, elevenlabs.ErrUnreachable):
		response.Error(w, http.StatusBadGateway, "ElevenLabs API is unreachable")
	default:
		response.Error(w, http.StatusInternalServerError, "ElevenLabs request failed")
	}
}

// NewValidateKeyHandler returns an http.HandlerFunc for POST /api/v1/elevenlabs/validate.
func NewValidateKeyHandler(dir VoiceDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCredential(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		if err := dir.ValidateKey(r.Context(), req.APIKey, req.KeyName); err != nil {
			writeDirectoryError(w, err)
			return
		}
		response.JSON(w, map[string]any{
			"success": true,
			"message": "API key is valid",
		})
	}
}

type voicesResponse struct {
	Success bool           `json:"success"`
	Voices  []models.Voice `json:"voices"`
}

// NewListVoicesHandler returns an http.HandlerFunc for POST /api/v1/elevenlabs/voices.
func NewListVoicesHandler(dir VoiceDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCredential(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		voices, err := dir.Voices(r.Context(), req.APIKey, req.KeyName)
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		if voices == nil {
			voices = []models.Voice{}
		}
		response.JSON(w, voicesResponse{Success: true, Voices: voices})
	}
}

type quotaResponse struct {
	Success bool `json:"success"`
	models.QuotaInfo
}

// NewQuotaHandler returns an http.HandlerFunc for POST /api/v1/elevenlabs/subscription.
func NewQuotaHandler(dir VoiceDirectory) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeCredential(r)
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid request body")
			return
		}
		quota, err := dir.Quota(r.Context(), req.APIKey, req.KeyName)
		if err != nil {
			writeDirectoryError(w, err)
			return
		}
		response.JSON(w, quotaResponse{Success: true, QuotaInfo: quota})
	}
}
