package jobs

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceforge/pkg/models"
)

func newJob(id string) *models.Job {
	return &models.Job{
		ID:        id,
		Status:    models.JobStatusQueued,
		CreatedAt: time.Now().UTC(),
	}
}

func TestCreateAndGet(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(newJob("j1")))

	got, err := s.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, "j1", got.ID)
	assert.Equal(t, models.JobStatusQueued, got.Status)
	assert.Equal(t, 1, s.Count())
}

func TestCreateDuplicate(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(newJob("j1")))
	assert.ErrorIs(t, s.Create(newJob("j1")), ErrDuplicateID)
}

func TestGetNotFound(t *testing.T) {
	s := NewStore()
	_, err := s.Get("nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGetReturnsCopy(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(newJob("j1")))

	got, err := s.Get("j1")
	require.NoError(t, err)
	got.Status = models.JobStatusFailed

	again, err := s.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusQueued, again.Status)
}

func TestUpdate(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(newJob("j1")))

	require.NoError(t, s.Update("j1", func(j *models.Job) {
		j.Status = models.JobStatusProcessing
		j.Progress = "working"
	}))

	got, err := s.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusProcessing, got.Status)
	assert.Equal(t, "working", got.Progress)
}

func TestUpdateTerminalRejected(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(newJob("j1")))

	now := time.Now().UTC()
	require.NoError(t, s.Update("j1", func(j *models.Job) {
		j.Status = models.JobStatusCompleted
		j.Success = true
		j.TerminalAt = &now
	}))

	err := s.Update("j1", func(j *models.Job) {
		j.Status = models.JobStatusFailed
	})
	assert.ErrorIs(t, err, ErrTerminal)

	got, err := s.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, models.JobStatusCompleted, got.Status)
}

func TestUpdateNotFound(t *testing.T) {
	s := NewStore()
	err := s.Update("nope", func(j *models.Job) {})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConcurrentReadsAndWrites(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Create(newJob("j1")))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_ = s.Update("j1", func(j *models.Job) { j.Progress = "tick" })
		}()
		go func() {
			defer wg.Done()
			_, _ = s.Get("j1")
		}()
	}
	wg.Wait()

	got, err := s.Get("j1")
	require.NoError(t, err)
	assert.Equal(t, "tick", got.Progress)
}
