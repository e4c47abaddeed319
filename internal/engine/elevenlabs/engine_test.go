package elevenlabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceforge/pkg/models"
)

func TestResolveCredentialInlineWins(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY_PROD", "stored-key")

	key, err := ResolveCredential("inline-key", "PROD")
	require.NoError(t, err)
	assert.Equal(t, "inline-key", key)
}

func TestResolveCredentialStoredKey(t *testing.T) {
	t.Setenv("ELEVENLABS_API_KEY_PROD", "stored-key")

	key, err := ResolveCredential("", "PROD")
	require.NoError(t, err)
	assert.Equal(t, "stored-key", key)
}

func TestResolveCredentialStoredKeyMissing(t *testing.T) {
	_, err := ResolveCredential("", "NOSUCH")
	assert.ErrorIs(t, err, ErrStoredKeyNotFound)
}

func TestResolveCredentialNothingGiven(t *testing.T) {
	_, err := ResolveCredential("", "")
	assert.ErrorIs(t, err, ErrCredentialRequired)
}

func TestValidate(t *testing.T) {
	e := New(nil)

	cfg, err := e.Validate(map[string]string{
		"api_key":  "k",
		"voice_id": "voice-1",
	})
	require.NoError(t, err)
	assert.Equal(t, Config{APIKey: "k", VoiceID: "voice-1", ModelID: DefaultModelID}, cfg)
	assert.Equal(t, models.EngineElevenLabs, cfg.Kind())
}

func TestValidateMissingVoice(t *testing.T) {
	e := New(nil)

	_, err := e.Validate(map[string]string{"api_key": "k"})
	assert.ErrorIs(t, err, ErrVoiceRequired)
}

func TestValidateUnknownModel(t *testing.T) {
	e := New(nil)

	_, err := e.Validate(map[string]string{
		"api_key":  "k",
		"voice_id": "voice-1",
		"model_id": "eleven_turbo_v9",
	})
	assert.ErrorIs(t, err, ErrUnknownModel)
}

func TestValidateNoCredential(t *testing.T) {
	e := New(nil)

	_, err := e.Validate(map[string]string{"voice_id": "voice-1"})
	assert.ErrorIs(t, err, ErrCredentialRequired)
}

func TestEngineShape(t *testing.T) {
	e := New(nil)
	assert.Equal(t, models.EngineElevenLabs, e.Kind())
	assert.False(t, e.SupportsCloning())
	assert.Equal(t, ".mp3", e.OutputExt())
}
