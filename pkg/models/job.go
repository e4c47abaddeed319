package models

import "time"

const (
	JobStatusQueued     = "queued"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// Job tracks one async synthesis request. The API returns a job_id on
// POST /api/v1/synthesize; the client polls GET /api/v1/jobs/{job_id} until
// status is completed or failed. Transitions are one-directional:
// queued → processing → completed|failed, enforced by the job store.
type Job struct {
	ID          string     `json:"id"`
	EngineKind  EngineKind `json:"engine"`
	InputText   string     `json:"-"`
	Status      string     `json:"status"`
	Progress    string     `json:"message"`
	Success     bool       `json:"success"`
	OutputAsset string     `json:"output_filename,omitempty"`
	Error       string     `json:"error_message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	TerminalAt  *time.Time `json:"terminal_at,omitempty"`
}

// Terminal reports whether the job has reached a final state.
func (j *Job) Terminal() bool {
	return j.Status == JobStatusCompleted || j.Status == JobStatusFailed
}
