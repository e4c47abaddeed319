package handler

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"voiceforge/internal/api/response"
	"voiceforge/internal/jobs"
	"voiceforge/pkg/models"
)

// JobPoller defines the interface the poll handler depends on.
type JobPoller interface {
	Job(id string) (models.Job, error)
}

type pollResponse struct {
	Status         string   `json:"status"`
	Message        string   `json:"message"`
	Success        *bool    `json:"success,omitempty"`
	OutputFilename string   `json:"output_filename,omitempty"`
	AudioURL       string   `json:"audio_url,omitempty"`
	Duration       *float64 `json:"duration,omitempty"`
}

// NewPollJobHandler returns an http.HandlerFunc for GET /api/v1/jobs/{jobID}.
// Terminal jobs additionally report the outcome and, on success, where to
// fetch the generated audio.
func NewPollJobHandler(svc JobPoller) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID := chi.URLParam(r, "jobID")

		job, err := svc.Job(jobID)
		if err != nil {
			if errors.Is(err, jobs.ErrNotFound) {
				response.Error(w, http.StatusNotFound, "Job not found")
				return
			}
			response.Error(w, http.StatusInternalServerError, "Could not load job")
			return
		}

		resp := pollResponse{
			Status:  job.Status,
			Message: job.Progress,
		}
		if job.Terminal() {
			success := job.Success
			resp.Success = &success
			if job.TerminalAt != nil {
				secs := job.TerminalAt.Sub(job.CreatedAt).Seconds()
				resp.Duration = &secs
			}
			if job.Success && job.OutputAsset != "" {
				resp.OutputFilename = job.OutputAsset
				resp.AudioURL = "/audio/" + job.OutputAsset
			}
		}
		response.JSON(w, resp)
	}
}
