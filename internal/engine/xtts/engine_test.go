package xtts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceforge/pkg/models"
)

func TestValidate(t *testing.T) {
	e := New("")

	cfg, err := e.Validate(map[string]string{"language": "en"})
	require.NoError(t, err)
	assert.Equal(t, Config{Language: "en"}, cfg)
	assert.Equal(t, models.EngineXTTS, cfg.Kind())
}

func TestValidateNormalizesCase(t *testing.T) {
	e := New("")

	cfg, err := e.Validate(map[string]string{"language": " DE "})
	require.NoError(t, err)
	assert.Equal(t, Config{Language: "de"}, cfg)
}

func TestValidateMissingLanguage(t *testing.T) {
	e := New("")

	_, err := e.Validate(map[string]string{})
	assert.ErrorIs(t, err, ErrLanguageRequired)
}

func TestValidateUnsupportedLanguage(t *testing.T) {
	e := New("")

	_, err := e.Validate(map[string]string{"language": "xx"})
	assert.ErrorIs(t, err, ErrUnsupportedLanguage)
}

func TestEngineShape(t *testing.T) {
	e := New("")
	assert.Equal(t, models.EngineXTTS, e.Kind())
	assert.True(t, e.SupportsCloning())
	assert.Equal(t, ".wav", e.OutputExt())
}
