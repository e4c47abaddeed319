// Package xtts implements the cloning-capable multilingual engine by driving
// the Coqui `tts` CLI as a subprocess.
package xtts

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

const modelName = "tts_models/multilingual/multi-dataset/xtts_v2"

var (
	ErrLanguageRequired    = errors.New("language is required")
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrNoAudioProduced     = errors.New("xtts produced no audio")
)

// Languages the XTTSv2 model advertises.
var Languages = []string{
	"en", "es", "fr", "de", "it", "pt", "pl", "tr", "ru",
	"nl", "cs", "ar", "zh-cn", "ja", "hu", "ko", "hi",
}

var languageSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(Languages))
	for _, l := range Languages {
		m[l] = struct{}{}
	}
	return m
}()

// Config is the validated parameter set for an XTTS job.
type Config struct {
	Language string
}

func (Config) Kind() models.EngineKind { return models.EngineXTTS }

// Engine shells out to the `tts` binary for each synthesis call.
type Engine struct {
	bin string
}

func New(bin string) *Engine {
	if bin == "" {
		bin = "tts"
	}
	return &Engine{bin: bin}
}

func (e *Engine) Kind() models.EngineKind { return models.EngineXTTS }
func (e *Engine) SupportsCloning() bool   { return true }
func (e *Engine) OutputExt() string       { return ".wav" }

// Validate requires a language code from the model's advertised list.
func (e *Engine) Validate(params map[string]string) (models.EngineConfig, error) {
	lang := strings.TrimSpace(params["language"])
	if lang == "" {
		return nil, ErrLanguageRequired
	}
	if _, ok := languageSet[strings.ToLower(lang)]; !ok {
		return nil, fmt.Errorf("%w: %q (supported: %s)",
			ErrUnsupportedLanguage, lang, strings.Join(Languages, ", "))
	}
	return Config{Language: strings.ToLower(lang)}, nil
}

// Synthesize runs the CLI to completion and returns the generated WAV bytes.
// speakerRef, when non-empty, is a validated reference WAV for voice cloning.
func (e *Engine) Synthesize(ctx context.Context, text string, cfg models.EngineConfig, speakerRef string) ([]byte, error) {
	xc, ok := cfg.(Config)
	if !ok {
		return nil, fmt.Errorf("xtts: config has kind %q", cfg.Kind())
	}

	outDir, err := os.MkdirTemp("", "xtts-*")
	if err != nil {
		return nil, fmt.Errorf("xtts: creating temp dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	outPath := filepath.Join(outDir, "out.wav")
	args := []string{
		"--text", text,
		"--model_name", modelName,
		"--language_idx", xc.Language,
		"--out_path", outPath,
	}
	if speakerRef != "" {
		args = append(args, "--speaker_wav", speakerRef)
	}

	cmd := exec.CommandContext(ctx, e.bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("xtts: %w: %s", err, lastLine(stderr.String()))
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("xtts: reading output: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrNoAudioProduced
	}
	return data, nil
}

// lastLine pulls the final non-empty stderr line, which is where the CLI
// puts its actual error message.
func lastLine(s string) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if l := strings.TrimSpace(lines[i]); l != "" {
			return l
		}
	}
	return "no error output"
}

var _ models.Engine = (*Engine)(nil)
