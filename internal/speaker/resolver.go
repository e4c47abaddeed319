// Package speaker resolves the client's voice-reference inputs into a single
// validated audio file for cloning-capable engines.
package speaker

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"

	"voiceforge/internal/audio"
)

var (
	// ErrInvalidAudio means uploaded or recorded bytes did not decode as audio.
	ErrInvalidAudio = errors.New("reference audio is not valid WAV or MP3")
	// ErrInvalidSampleName means the sample name is not a bare filename.
	ErrInvalidSampleName = errors.New("invalid speaker sample name")
	// ErrSampleNotFound means the named sample does not exist.
	ErrSampleNotFound = errors.New("speaker sample not found")
)

// Inputs are the three mutually exclusive ways a client can supply a
// speaker reference. Zero values mean "not supplied".
type Inputs struct {
	// Uploaded is a freshly uploaded reference file. UploadedName is the
	// client's original filename, used only to derive a stored name.
	Uploaded     []byte
	UploadedName string
	// Recorded is a clip captured in the browser.
	Recorded []byte
	// SampleName names an existing file in the samples directory.
	SampleName string
}

// Reference is the resolved result. The zero value means "use default voice".
type Reference struct {
	Path string
	// Temporary marks a freshly persisted upload/recording that the worker
	// should remove once the job finishes.
	Temporary bool
}

// Resolver owns the samples directory (reusable references) and the uploads
// directory (transient per-job references).
type Resolver struct {
	samplesDir string
	uploadsDir string
}

func NewResolver(samplesDir, uploadsDir string) *Resolver {
	return &Resolver{samplesDir: samplesDir, uploadsDir: uploadsDir}
}

// Resolve picks one reference by fixed precedence: uploaded file, recorded
// clip, named sample, none. New material wins over a possibly stale sample
// selection. A supplied input that fails validation is always an error —
// only the absence of all three silently yields the default voice.
func (r *Resolver) Resolve(in Inputs) (Reference, error) {
	switch {
	case len(in.Uploaded) > 0:
		return r.persist(in.Uploaded, in.UploadedName)
	case len(in.Recorded) > 0:
		return r.persist(in.Recorded, "recorded")
	case strings.TrimSpace(in.SampleName) != "":
		return r.lookupSample(strings.TrimSpace(in.SampleName))
	default:
		return Reference{}, nil
	}
}

// persist validates raw reference bytes and writes them under the uploads
// directory with a collision-free name.
func (r *Resolver) persist(data []byte, baseName string) (Reference, error) {
	ext, err := audio.SniffExt(data)
	if err != nil {
		return Reference{}, ErrInvalidAudio
	}

	name := fmt.Sprintf("%s_%s%s", uuid.NewString()[:8], sanitizeBase(baseName), ext)
	path := filepath.Join(r.uploadsDir, name)

	if err := os.MkdirAll(r.uploadsDir, 0o755); err != nil {
		return Reference{}, fmt.Errorf("creating uploads directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return Reference{}, fmt.Errorf("persisting speaker reference: %w", err)
	}

	return Reference{Path: path, Temporary: true}, nil
}

// lookupSample resolves a named sample strictly inside the samples directory.
func (r *Resolver) lookupSample(name string) (Reference, error) {
	if name != filepath.Base(name) || name == "." || name == ".." {
		return Reference{}, fmt.Errorf("%w: %q", ErrInvalidSampleName, name)
	}

	path := filepath.Join(r.samplesDir, name)
	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return Reference{}, fmt.Errorf("%w: %q", ErrSampleNotFound, name)
	}

	return Reference{Path: path}, nil
}

// ListSamples returns the reusable sample filenames, sorted.
func (r *Resolver) ListSamples() ([]string, error) {
	entries, err := os.ReadDir(r.samplesDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("reading samples directory: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".wav") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Cleanup removes a temporary reference after its job completes. Shared
// samples are never touched.
func (r *Resolver) Cleanup(ref Reference) error {
	if !ref.Temporary || ref.Path == "" {
		return nil
	}
	if err := os.Remove(ref.Path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing temporary reference: %w", err)
	}
	return nil
}

// sanitizeBase strips path and extension from a client-supplied filename so
// it can only ever contribute a label, never a location.
func sanitizeBase(name string) string {
	base := filepath.Base(strings.TrimSpace(name))
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, base)
	if base == "" || base == "." {
		base = "reference"
	}
	return base
}
