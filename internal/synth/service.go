// Package synth orchestrates synthesis jobs: it validates submissions,
// dispatches one worker goroutine per job, and projects job state for polling.
package synth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"voiceforge/internal/assets"
	"voiceforge/internal/engine"
	"voiceforge/internal/jobs"
	"voiceforge/internal/speaker"
	"voiceforge/pkg/models"
)

// ErrEmptyText means the submission had no text after trimming.
var ErrEmptyText = errors.New("text must not be empty")

// SubmitRequest is one client synthesis request before validation.
type SubmitRequest struct {
	EngineKind models.EngineKind
	Text       string
	Params     map[string]string
	Speaker    speaker.Inputs
}

// Service validates submissions and runs their jobs to a terminal state.
type Service struct {
	registry *engine.Registry
	resolver *speaker.Resolver
	store    *jobs.Store
	assets   *assets.Manager
	timeout  time.Duration
	// sem bounds concurrently running engine calls; nil means unbounded.
	sem chan struct{}
}

// NewService creates a Service. maxConcurrent of zero disables the cap.
func NewService(
	registry *engine.Registry,
	resolver *speaker.Resolver,
	store *jobs.Store,
	assetMgr *assets.Manager,
	timeout time.Duration,
	maxConcurrent int,
) *Service {
	var sem chan struct{}
	if maxConcurrent > 0 {
		sem = make(chan struct{}, maxConcurrent)
	}
	return &Service{
		registry: registry,
		resolver: resolver,
		store:    store,
		assets:   assetMgr,
		timeout:  timeout,
		sem:      sem,
	}
}

// Submit validates the request, records a queued job, and dispatches a
// worker goroutine. It returns as soon as the job is recorded — never after
// synthesis starts. Any returned error means no job was created.
func (s *Service) Submit(_ context.Context, req SubmitRequest) (*models.Job, error) {
	text := strings.TrimSpace(req.Text)
	if text == "" {
		return nil, ErrEmptyText
	}

	eng, err := s.registry.Get(req.EngineKind)
	if err != nil {
		return nil, err
	}

	cfg, err := eng.Validate(req.Params)
	if err != nil {
		return nil, fmt.Errorf("invalid %s parameters: %w", req.EngineKind, err)
	}

	var ref speaker.Reference
	if eng.SupportsCloning() {
		ref, err = s.resolver.Resolve(req.Speaker)
		if err != nil {
			return nil, fmt.Errorf("speaker reference: %w", err)
		}
	}

	job := &models.Job{
		ID:         uuid.NewString(),
		EngineKind: req.EngineKind,
		InputText:  text,
		Status:     models.JobStatusQueued,
		Progress:   "Job queued",
		CreatedAt:  time.Now().UTC(),
	}
	if err := s.store.Create(job); err != nil {
		return nil, fmt.Errorf("creating job: %w", err)
	}

	go s.runJob(job.ID, eng, cfg, text, ref)

	return job, nil
}

// Job is the polling surface: a read-only copy of the job record.
func (s *Service) Job(id string) (models.Job, error) {
	return s.store.Get(id)
}

// runJob drives one job to a terminal state. It recovers from panics and
// never leaves a job stuck in processing.
func (s *Service) runJob(jobID string, eng models.Engine, cfg models.EngineConfig, text string, ref speaker.Reference) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic in synthesis worker", "job_id", jobID, "error", r)
			s.fail(jobID, fmt.Sprintf("Internal error: %v", r))
		}
	}()
	defer func() {
		if err := s.resolver.Cleanup(ref); err != nil {
			slog.Warn("speaker reference cleanup failed", "job_id", jobID, "error", err)
		}
	}()

	if s.sem != nil {
		s.sem <- struct{}{}
		defer func() { <-s.sem }()
	}

	_ = s.store.Update(jobID, func(j *models.Job) {
		j.Status = models.JobStatusProcessing
		j.Progress = fmt.Sprintf("Processing with %s...", eng.Kind())
	})

	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	started := time.Now()
	data, err := eng.Synthesize(ctx, text, cfg, ref.Path)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			s.fail(jobID, fmt.Sprintf("Synthesis timed out after %s", s.timeout))
			return
		}
		s.fail(jobID, fmt.Sprintf("Synthesis failed: %v", err))
		return
	}

	asset, err := s.assets.Store(data, suggestedName(eng.Kind(), eng.OutputExt()))
	if err != nil {
		s.fail(jobID, fmt.Sprintf("Saving audio failed: %v", err))
		return
	}

	now := time.Now().UTC()
	_ = s.store.Update(jobID, func(j *models.Job) {
		j.Status = models.JobStatusCompleted
		j.Success = true
		j.OutputAsset = asset.Filename
		j.Progress = "Speech generated successfully"
		j.TerminalAt = &now
	})

	slog.Info("synthesis job completed",
		"job_id", jobID,
		"engine", eng.Kind(),
		"output", asset.Filename,
		"duration_ms", time.Since(started).Milliseconds(),
	)
}

// fail marks the job failed with a user-facing message.
func (s *Service) fail(jobID, message string) {
	now := time.Now().UTC()
	err := s.store.Update(jobID, func(j *models.Job) {
		j.Status = models.JobStatusFailed
		j.Success = false
		j.Error = message
		j.Progress = message
		j.TerminalAt = &now
	})
	if err != nil {
		slog.Error("recording job failure", "job_id", jobID, "error", err)
	}
	slog.Warn("synthesis job failed", "job_id", jobID, "reason", message)
}

// suggestedName builds an output filename from the engine kind, a unix
// timestamp, and a short unique suffix.
func suggestedName(kind models.EngineKind, ext string) string {
	return fmt.Sprintf("%s_%d_%s%s", kind, time.Now().Unix(), uuid.NewString()[:8], ext)
}
