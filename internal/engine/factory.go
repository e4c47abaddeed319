package engine

import (
	"voiceforge/internal/config"
	"voiceforge/internal/engine/bark"
	"voiceforge/internal/engine/elevenlabs"
	"voiceforge/internal/engine/piper"
	"voiceforge/internal/engine/xtts"
)

// BuildRegistry constructs the fixed set of engines from config.
// Called once at server startup.
func BuildRegistry(cfg *config.Config) (*Registry, error) {
	hosted := elevenlabs.New(elevenlabs.NewHTTPClient(cfg.ElevenLabs.BaseURL, cfg.ElevenLabs.Timeout))

	return NewRegistry(
		xtts.New(cfg.Engines.TTSBin),
		piper.New(cfg.Engines.PiperBin),
		bark.New(cfg.Engines.BarkBin),
		hosted,
	)
}
