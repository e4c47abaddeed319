// Package models contains shared data models used across the voiceforge codebase.
package models

import "context"

// EngineKind identifies one of the supported synthesis backends.
type EngineKind string

const (
	// EngineXTTS is the cloning-capable multilingual engine.
	EngineXTTS EngineKind = "xtts"
	// EnginePiper is the fast local engine driven by ONNX voice models.
	EnginePiper EngineKind = "piper"
	// EngineBark is the expressive generative engine with named voice presets.
	EngineBark EngineKind = "bark"
	// EngineElevenLabs is the hosted HTTP API engine.
	EngineElevenLabs EngineKind = "elevenlabs"
)

// EngineConfig is the validated, engine-specific configuration attached to a
// job. Each engine defines its own concrete config struct; the Kind tag tells
// you which one you are holding.
type EngineConfig interface {
	Kind() EngineKind
}

// Engine is the core interface every synthesis backend must implement.
// Never call a specific engine package directly — always go through the
// registry and this interface.
type Engine interface {
	// Kind returns the engine's registry discriminant.
	Kind() EngineKind
	// Validate checks raw request parameters and returns the engine's
	// config variant. An invalid parameter set never produces a job.
	Validate(params map[string]string) (EngineConfig, error)
	// Synthesize converts text to audio. It blocks for the duration of the
	// synthesis, which may be minutes. speakerRef is a path to a reference
	// audio file for cloning-capable engines, or empty for the default voice.
	Synthesize(ctx context.Context, text string, cfg EngineConfig, speakerRef string) ([]byte, error)
	// SupportsCloning reports whether the engine accepts a speaker reference.
	SupportsCloning() bool
	// OutputExt returns the file extension of synthesized audio (".wav", ".mp3").
	OutputExt() string
}
