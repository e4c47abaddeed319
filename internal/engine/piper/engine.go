// Package piper implements the fast local engine using the piper CLI.
package piper

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"voiceforge/internal/audio"
	"voiceforge/pkg/models"
)

// piper emits signed 16-bit LE mono PCM at a fixed rate on stdout.
const sampleRate = 22050

var (
	ErrModelPathRequired  = errors.New("model_path is required")
	ErrConfigPathRequired = errors.New("config_path is required")
	ErrModelNotFound      = errors.New("piper model file not found")
	ErrNoAudioProduced    = errors.New("piper produced no audio")
)

// Config is the validated parameter set for a Piper job.
type Config struct {
	ModelPath  string
	ConfigPath string
}

func (Config) Kind() models.EngineKind { return models.EnginePiper }

// Engine shells out to the piper binary for each synthesis call.
type Engine struct {
	bin string
}

func New(bin string) *Engine {
	if bin == "" {
		bin = "piper"
	}
	return &Engine{bin: bin}
}

func (e *Engine) Kind() models.EngineKind { return models.EnginePiper }
func (e *Engine) SupportsCloning() bool   { return false }
func (e *Engine) OutputExt() string       { return ".wav" }

// Validate requires both the ONNX weights path and the JSON config path,
// and checks that both exist on disk.
func (e *Engine) Validate(params map[string]string) (models.EngineConfig, error) {
	modelPath := strings.TrimSpace(params["model_path"])
	if modelPath == "" {
		return nil, ErrModelPathRequired
	}
	configPath := strings.TrimSpace(params["config_path"])
	if configPath == "" {
		return nil, ErrConfigPathRequired
	}

	for _, p := range []string{modelPath, configPath} {
		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("%w: %s", ErrModelNotFound, p)
		}
	}

	return Config{ModelPath: modelPath, ConfigPath: configPath}, nil
}

// Synthesize feeds text on stdin, collects raw PCM from stdout, and wraps it
// in a WAV container.
func (e *Engine) Synthesize(ctx context.Context, text string, cfg models.EngineConfig, _ string) ([]byte, error) {
	pc, ok := cfg.(Config)
	if !ok {
		return nil, fmt.Errorf("piper: config has kind %q", cfg.Kind())
	}

	cmd := exec.CommandContext(ctx, e.bin,
		"--model", pc.ModelPath,
		"--config", pc.ConfigPath,
		"--output-raw",
	)
	cmd.Stdin = strings.NewReader(text)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail == "" {
			detail = "no error output"
		}
		return nil, fmt.Errorf("piper: %w: %s", err, detail)
	}

	pcm := stdout.Bytes()
	if len(pcm) == 0 {
		return nil, ErrNoAudioProduced
	}

	return audio.WrapPCM(pcm, sampleRate, 1, 16), nil
}

var _ models.Engine = (*Engine)(nil)
