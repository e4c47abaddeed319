// Package assets owns the managed output directory of generated audio files.
package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"voiceforge/pkg/models"
)

var (
	// ErrNotFound means no asset exists under the given filename.
	ErrNotFound = errors.New("audio file not found")
	// ErrInvalidName means the filename would resolve outside the managed
	// directory; it is rejected before any filesystem operation.
	ErrInvalidName = errors.New("invalid audio filename")
	// ErrEmptyAudio means a store call carried no data.
	ErrEmptyAudio = errors.New("no audio data to store")
)

// claimAttempts bounds the collision-retry loop in Store.
const claimAttempts = 5

// Manager stores, lists, serves, and deletes generated audio under one flat
// directory. Name allocation goes through O_EXCL so concurrent workers can
// never overwrite each other's output.
type Manager struct {
	dir string
}

// NewManager creates the managed directory if needed.
func NewManager(dir string) (*Manager, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}
	return &Manager{dir: dir}, nil
}

// Store writes audio under a collision-free name derived from the suggestion
// and returns the resulting asset. It never overwrites an existing file.
func (m *Manager) Store(data []byte, suggestedName string) (models.AudioAsset, error) {
	if len(data) == 0 {
		return models.AudioAsset{}, ErrEmptyAudio
	}
	name, err := cleanName(suggestedName)
	if err != nil {
		return models.AudioAsset{}, err
	}

	ext := filepath.Ext(name)
	stem := strings.TrimSuffix(name, ext)

	candidate := name
	for attempt := 0; attempt < claimAttempts; attempt++ {
		f, err := os.OpenFile(filepath.Join(m.dir, candidate), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
		if os.IsExist(err) {
			candidate = fmt.Sprintf("%s_%s%s", stem, uuid.NewString()[:8], ext)
			continue
		}
		if err != nil {
			return models.AudioAsset{}, fmt.Errorf("claiming asset name: %w", err)
		}

		_, werr := f.Write(data)
		cerr := f.Close()
		if werr != nil || cerr != nil {
			os.Remove(filepath.Join(m.dir, candidate))
			return models.AudioAsset{}, fmt.Errorf("writing asset %s: %w", candidate, errors.Join(werr, cerr))
		}

		info, err := os.Stat(filepath.Join(m.dir, candidate))
		if err != nil {
			return models.AudioAsset{}, fmt.Errorf("stat stored asset: %w", err)
		}
		return models.AudioAsset{
			Filename:  candidate,
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		}, nil
	}

	return models.AudioAsset{}, fmt.Errorf("could not claim a unique name for %q", suggestedName)
}

// List returns all managed audio files, most recent first.
func (m *Manager) List() ([]models.AudioAsset, error) {
	entries, err := os.ReadDir(m.dir)
	if err != nil {
		return nil, fmt.Errorf("reading output directory: %w", err)
	}

	assets := make([]models.AudioAsset, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !isAudioName(e.Name()) {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		assets = append(assets, models.AudioAsset{
			Filename:  e.Name(),
			SizeBytes: info.Size(),
			CreatedAt: info.ModTime(),
		})
	}

	sort.Slice(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
	return assets, nil
}

// Open returns a reader over the named asset for serving downloads.
func (m *Manager) Open(name string) (*os.File, error) {
	clean, err := cleanName(name)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(filepath.Join(m.dir, clean))
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	if err != nil {
		return nil, fmt.Errorf("opening asset %s: %w", clean, err)
	}
	return f, nil
}

// Delete removes the named asset. Deleting an absent file reports ErrNotFound.
func (m *Manager) Delete(name string) error {
	clean, err := cleanName(name)
	if err != nil {
		return err
	}
	err = os.Remove(filepath.Join(m.dir, clean))
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", ErrNotFound, clean)
	}
	if err != nil {
		return fmt.Errorf("deleting asset %s: %w", clean, err)
	}
	return nil
}

// cleanName accepts only a bare filename that stays inside the managed
// directory. Anything with separators, parent references, or a rooted path
// is ErrInvalidName.
func cleanName(name string) (string, error) {
	if name == "" || name != filepath.Base(name) || name == "." || name == ".." ||
		strings.ContainsAny(name, `/\`) {
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return name, nil
}

func isAudioName(name string) bool {
	return strings.HasSuffix(name, ".wav") || strings.HasSuffix(name, ".mp3")
}
