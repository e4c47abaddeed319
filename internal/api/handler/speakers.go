package handler

import (
	"net/http"

	"voiceforge/internal/api/response"
)

// SampleLister defines the interface the speakers handler depends on.
type SampleLister interface {
	ListSamples() ([]string, error)
}

type speakersResponse struct {
	Success bool     `json:"success"`
	Samples []string `json:"samples"`
}

// NewListSpeakersHandler returns an http.HandlerFunc for GET /api/v1/speakers.
func NewListSpeakersHandler(svc SampleLister) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		samples, err := svc.ListSamples()
		if err != nil {
			response.Error(w, http.StatusInternalServerError, "Could not list speaker samples")
			return
		}
		if samples == nil {
			samples = []string{}
		}
		response.JSON(w, speakersResponse{Success: true, Samples: samples})
	}
}
