package elevenlabs

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"voiceforge/pkg/models"
)

const (
	// DefaultModelID is the recommended multilingual model.
	DefaultModelID = "eleven_multilingual_v2"
	// keyEnvPrefix is where stored credentials live: ELEVENLABS_API_KEY_<NAME>.
	keyEnvPrefix = "ELEVENLABS_API_KEY_"
)

var (
	ErrCredentialRequired = errors.New("an api key or a stored key name is required")
	ErrStoredKeyNotFound  = errors.New("stored api key name not configured")
	ErrVoiceRequired      = errors.New("voice_id is required")
	ErrUnknownModel       = errors.New("unknown elevenlabs model id")
)

// ModelIDs the engine accepts.
var ModelIDs = []string{
	"eleven_multilingual_v2",
	"eleven_multilingual_v1",
	"eleven_monolingual_v1",
}

var modelSet = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ModelIDs))
	for _, id := range ModelIDs {
		m[id] = struct{}{}
	}
	return m
}()

// ResolveCredential turns the client's credential inputs into an API key.
// An inline key wins over a stored key name; a named key that is not present
// in the environment is an error, never a silent fallback.
func ResolveCredential(inline, name string) (string, error) {
	if inline = strings.TrimSpace(inline); inline != "" {
		return inline, nil
	}
	if name = strings.TrimSpace(name); name != "" {
		key := os.Getenv(keyEnvPrefix + name)
		if key == "" {
			return "", fmt.Errorf("%w: %q", ErrStoredKeyNotFound, name)
		}
		return key, nil
	}
	return "", ErrCredentialRequired
}

// Config is the validated parameter set for an ElevenLabs job.
type Config struct {
	APIKey  string
	VoiceID string
	ModelID string
}

func (Config) Kind() models.EngineKind { return models.EngineElevenLabs }

// Engine implements models.Engine over the hosted API.
type Engine struct {
	client Client
}

func New(client Client) *Engine {
	return &Engine{client: client}
}

func (e *Engine) Kind() models.EngineKind { return models.EngineElevenLabs }
func (e *Engine) SupportsCloning() bool   { return false }
func (e *Engine) OutputExt() string       { return ".mp3" }

// Validate resolves the credential (inline `api_key` or stored `key_name`)
// and checks voice/model selection. The key itself is only proven against
// the API when the job runs, or via the explicit validate endpoint.
func (e *Engine) Validate(params map[string]string) (models.EngineConfig, error) {
	key, err := ResolveCredential(params["api_key"], params["key_name"])
	if err != nil {
		return nil, err
	}

	voiceID := strings.TrimSpace(params["voice_id"])
	if voiceID == "" {
		return nil, ErrVoiceRequired
	}

	modelID := strings.TrimSpace(params["model_id"])
	if modelID == "" {
		modelID = DefaultModelID
	}
	if _, ok := modelSet[modelID]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModel, modelID)
	}

	return Config{APIKey: key, VoiceID: voiceID, ModelID: modelID}, nil
}

func (e *Engine) Synthesize(ctx context.Context, text string, cfg models.EngineConfig, _ string) ([]byte, error) {
	ec, ok := cfg.(Config)
	if !ok {
		return nil, fmt.Errorf("elevenlabs: config has kind %q", cfg.Kind())
	}
	return e.client.TextToSpeech(ctx, ec.APIKey, ec.VoiceID, ec.ModelID, text)
}

var _ models.Engine = (*Engine)(nil)
