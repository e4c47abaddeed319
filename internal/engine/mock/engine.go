// Package mock provides a scripted engine for tests.
package mock

import (
	"context"
	"time"

	"voiceforge/internal/audio"
	"voiceforge/pkg/models"
)

// Config is the trivial validated config the mock engine hands out.
type Config struct {
	EngineKind models.EngineKind
}

func (c Config) Kind() models.EngineKind { return c.EngineKind }

// Engine satisfies models.Engine for testing.
type Engine struct {
	Kind_          models.EngineKind
	Cloning        bool
	Ext            string
	ValidateFunc   func(params map[string]string) (models.EngineConfig, error)
	SynthesizeFunc func(ctx context.Context, text string, cfg models.EngineConfig, speakerRef string) ([]byte, error)
}

func (e *Engine) Kind() models.EngineKind { return e.Kind_ }
func (e *Engine) SupportsCloning() bool   { return e.Cloning }

func (e *Engine) OutputExt() string {
	if e.Ext != "" {
		return e.Ext
	}
	return ".wav"
}

func (e *Engine) Validate(params map[string]string) (models.EngineConfig, error) {
	if e.ValidateFunc != nil {
		return e.ValidateFunc(params)
	}
	return Config{EngineKind: e.Kind_}, nil
}

func (e *Engine) Synthesize(ctx context.Context, text string, cfg models.EngineConfig, speakerRef string) ([]byte, error) {
	if e.SynthesizeFunc != nil {
		return e.SynthesizeFunc(ctx, text, cfg, speakerRef)
	}
	return audio.WrapPCM(make([]byte, 64), 22050, 1, 16), nil
}

// NewEngine returns a mock engine that always succeeds with a tiny WAV.
func NewEngine(kind models.EngineKind) *Engine {
	return &Engine{Kind_: kind}
}

// NewFailingEngine returns a mock engine whose synthesis always fails.
func NewFailingEngine(kind models.EngineKind, err error) *Engine {
	return &Engine{
		Kind_: kind,
		SynthesizeFunc: func(_ context.Context, _ string, _ models.EngineConfig, _ string) ([]byte, error) {
			return nil, err
		},
	}
}

// NewSlowEngine returns a mock engine that blocks for the given delay or
// until the context is cancelled, whichever comes first.
func NewSlowEngine(kind models.EngineKind, delay time.Duration) *Engine {
	return &Engine{
		Kind_: kind,
		SynthesizeFunc: func(ctx context.Context, _ string, _ models.EngineConfig, _ string) ([]byte, error) {
			select {
			case <-time.After(delay):
				return audio.WrapPCM(make([]byte, 64), 22050, 1, 16), nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		},
	}
}

// Compile-time check that Engine implements models.Engine.
var _ models.Engine = (*Engine)(nil)
