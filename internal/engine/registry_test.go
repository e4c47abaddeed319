package engine_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceforge/internal/config"
	"voiceforge/internal/engine"
	"voiceforge/internal/engine/mock"
	"voiceforge/pkg/models"
)

func TestRegistryGet(t *testing.T) {
	reg, err := engine.NewRegistry(
		mock.NewEngine(models.EnginePiper),
		mock.NewEngine(models.EngineXTTS),
	)
	require.NoError(t, err)

	e, err := reg.Get(models.EnginePiper)
	require.NoError(t, err)
	assert.Equal(t, models.EnginePiper, e.Kind())
}

func TestRegistryGetUnknown(t *testing.T) {
	reg, err := engine.NewRegistry(mock.NewEngine(models.EnginePiper))
	require.NoError(t, err)

	_, err = reg.Get(models.EngineKind("festival"))
	assert.ErrorIs(t, err, engine.ErrUnknownEngine)
}

func TestRegistryDuplicateKind(t *testing.T) {
	_, err := engine.NewRegistry(
		mock.NewEngine(models.EngineBark),
		mock.NewEngine(models.EngineBark),
	)
	assert.Error(t, err)
}

func TestRegistryKindsSorted(t *testing.T) {
	reg, err := engine.NewRegistry(
		mock.NewEngine(models.EngineXTTS),
		mock.NewEngine(models.EngineBark),
		mock.NewEngine(models.EnginePiper),
	)
	require.NoError(t, err)

	assert.Equal(t, []models.EngineKind{
		models.EngineBark, models.EnginePiper, models.EngineXTTS,
	}, reg.Kinds())
}

func TestBuildRegistryRegistersAllKinds(t *testing.T) {
	cfg := &config.Config{}
	cfg.ElevenLabs.BaseURL = "https://api.elevenlabs.io"

	reg, err := engine.BuildRegistry(cfg)
	require.NoError(t, err)

	for _, kind := range []models.EngineKind{
		models.EngineXTTS, models.EnginePiper, models.EngineBark, models.EngineElevenLabs,
	} {
		_, err := reg.Get(kind)
		assert.NoError(t, err, "kind %s", kind)
	}
}
