// Package bark implements the expressive generative engine via the bark CLI.
package bark

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"voiceforge/pkg/models"
)

const defaultModelName = "suno/bark-small"

var (
	ErrPresetRequired  = errors.New("voice_preset is required")
	ErrUnknownPreset   = errors.New("unknown voice preset")
	ErrNoAudioProduced = errors.New("bark produced no audio")
)

// VoicePresets the small Bark model ships with.
var VoicePresets = []string{
	"v2/en_speaker_0", "v2/en_speaker_1", "v2/en_speaker_2", "v2/en_speaker_3",
	"v2/en_speaker_4", "v2/en_speaker_5", "v2/en_speaker_6", "v2/en_speaker_7",
	"v2/en_speaker_8", "v2/en_speaker_9", "v2/de_speaker_1", "v2/es_speaker_1",
}

var presetSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(VoicePresets))
	for _, p := range VoicePresets {
		m[p] = struct{}{}
	}
	return m
}()

// Config is the validated parameter set for a Bark job.
type Config struct {
	VoicePreset string
	ModelName   string
}

func (Config) Kind() models.EngineKind { return models.EngineBark }

// Engine shells out to the bark binary for each synthesis call.
type Engine struct {
	bin string
}

func New(bin string) *Engine {
	if bin == "" {
		bin = "bark"
	}
	return &Engine{bin: bin}
}

func (e *Engine) Kind() models.EngineKind { return models.EngineBark }
func (e *Engine) SupportsCloning() bool   { return false }
func (e *Engine) OutputExt() string       { return ".wav" }

// Validate requires a known voice preset; model_name is optional.
func (e *Engine) Validate(params map[string]string) (models.EngineConfig, error) {
	preset := strings.TrimSpace(params["voice_preset"])
	if preset == "" {
		return nil, ErrPresetRequired
	}
	if _, ok := presetSet[preset]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}

	model := strings.TrimSpace(params["model_name"])
	if model == "" {
		model = defaultModelName
	}

	return Config{VoicePreset: preset, ModelName: model}, nil
}

func (e *Engine) Synthesize(ctx context.Context, text string, cfg models.EngineConfig, _ string) ([]byte, error) {
	bc, ok := cfg.(Config)
	if !ok {
		return nil, fmt.Errorf("bark: config has kind %q", cfg.Kind())
	}

	outDir, err := os.MkdirTemp("", "bark-*")
	if err != nil {
		return nil, fmt.Errorf("bark: creating temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	outPath := filepath.Join(outDir, "out.wav")
	cmd := exec.CommandContext(ctx, e.bin,
		"--text", text,
		"--history_prompt", bc.VoicePreset,
		"--model_name", bc.ModelName,
		"--output_filename", outPath,
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "no error output"
		}
		return nil, fmt.Errorf("bark: %w: %s", err, detail)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("bark: reading output: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoAudioProduced
	}
	return data, nil
}

var _ models.Engine = (*Engine)(nil)
