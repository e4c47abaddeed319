// Package handler contains the HTTP handlers for the voiceforge API.
package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"voiceforge/internal/api/response"
	"voiceforge/internal/speaker"
	"voiceforge/internal/synth"
	"voiceforge/pkg/models"
)

// maxUploadSize bounds the whole synthesis form, speaker upload included.
const maxUploadSize = 16 << 20

// SynthesisSubmitter defines the interface the handler depends on.
type SynthesisSubmitter interface {
	Submit(ctx context.Context, req synth.SubmitRequest) (*models.Job, error)
}

// reserved form fields that are not engine parameters.
var reservedFields = map[string]struct{}{
	"text":           {},
	"engine":         {},
	"speaker_sample": {},
	"speaker_file":   {},
	"recorded_clip":  {},
}

// NewSynthesizeHandler returns an http.HandlerFunc for POST /api/v1/synthesize.
// The request is a form (multipart when a speaker file is attached): `text`,
// `engine`, engine-specific parameter fields, and up to one speaker input.
func NewSynthesizeHandler(svc SynthesisSubmitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := parseForm(r); err != nil {
			response.Error(w, http.StatusBadRequest, "Invalid form data")
			return
		}

		text := r.FormValue("text")
		kind := strings.TrimSpace(r.FormValue("engine"))
		if kind == "" {
			response.Error(w, http.StatusBadRequest, "engine is required")
			return
		}

		params := make(map[string]string)
		for field, values := range r.Form {
			if _, skip := reservedFields[field]; skip || len(values) == 0 {
				continue
			}
			params[field] = values[0]
		}

		uploaded, uploadedName, err := formFileBytes(r, "speaker_file")
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Could not read uploaded speaker file")
			return
		}
		recorded, _, err := formFileBytes(r, "recorded_clip")
		if err != nil {
			response.Error(w, http.StatusBadRequest, "Could not read recorded clip")
			return
		}

		job, err := svc.Submit(r.Context(), synth.SubmitRequest{
			EngineKind: models.EngineKind(kind),
			Text:       text,
			Params:     params,
			Speaker: speaker.Inputs{
				Uploaded:     uploaded,
				UploadedName: uploadedName,
				Recorded:     recorded,
				SampleName:   r.FormValue("speaker_sample"),
			},
		})
		if err != nil {
			// Every submit failure is a rejected request; no job exists.
			response.Error(w, http.StatusBadRequest, err.Error())
			return
		}

		response.JSON(w, submitResponse{
			Success: true,
			JobID:   job.ID,
			Message: "Synthesis job started",
		})
	}
}

type submitResponse struct {
	Success bool   `json:"success"`
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

func parseForm(r *http.Request) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "multipart/form-data") {
		return r.ParseMultipartForm(maxUploadSize)
	}
	return r.ParseForm()
}

// formFileBytes reads an optional multipart file field. A missing field is
// not an error; it just means the input was not supplied.
func formFileBytes(r *http.Request, field string) ([]byte, string, error) {
	if r.MultipartForm == nil {
		return nil, "", nil
	}
	f, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, "", nil
	}
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadSize))
	if err != nil {
		return nil, "", err
	}
	if len(data) == 0 {
		return nil, "", nil
	}
	return data, header.Filename, nil
}
