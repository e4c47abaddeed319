// Package jobs provides the in-memory, process-lifetime job store.
package jobs

import (
	"errors"
	"fmt"
	"sync"

	"voiceforge/pkg/models"
)

var (
	// ErrNotFound means no job exists under the given id.
	ErrNotFound = errors.New("job not found")
	// ErrDuplicateID means a job with that id was already created.
	ErrDuplicateID = errors.New("job id already exists")
	// ErrTerminal means an update tried to touch a job that already reached
	// completed or failed. Terminal states are final.
	ErrTerminal = errors.New("job is already in a terminal state")
)

// Store is a concurrency-safe map of job id to job record. Reads may happen
// from any number of pollers; each job has exactly one writer (its worker),
// and Update serializes mutations against concurrent reads.
type Store struct {
	mu   sync.RWMutex
	jobs map[string]*models.Job
}

func NewStore() *Store {
	return &Store{jobs: make(map[string]*models.Job)}
}

// Create registers a new job record.
func (s *Store) Create(job *models.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[job.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateID, job.ID)
	}
	stored := *job
	s.jobs[job.ID] = &stored
	return nil
}

// Get returns a copy of the job, so callers can never race the worker.
func (s *Store) Get(id string) (models.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return models.Job{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return *job, nil
}

// Update applies a mutation atomically. Once a job is terminal the record is
// frozen: any further update attempt is rejected, which keeps transitions
// strictly queued → processing → completed|failed.
func (s *Store) Update(id string, mutate func(*models.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if job.Terminal() {
		return fmt.Errorf("%w: %s is %s", ErrTerminal, id, job.Status)
	}
	mutate(job)
	return nil
}

// Count returns the number of tracked jobs.
func (s *Store) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
