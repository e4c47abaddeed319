// Package elevenlabs implements the hosted-API engine backed by the
// ElevenLabs HTTP API, plus the credential/voice/quota lookups the API layer
// exposes for it.
package elevenlabs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"sort"
	"strings"
	"time"

	"voiceforge/pkg/models"
)

// Sentinel errors for ElevenLabs client failures.
var (
	ErrUnauthorized = errors.New("elevenlabs rejected the api key")
	ErrUnreachable  = errors.New("elevenlabs unreachable")
	ErrAPIError     = errors.New("elevenlabs api error")
)

// Client is the interface for talking to ElevenLabs.
type Client interface {
	// ValidateKey makes a lightweight models call to check the key works.
	ValidateKey(ctx context.Context, apiKey string) error
	Voices(ctx context.Context, apiKey string) ([]models.Voice, error)
	Subscription(ctx context.Context, apiKey string) (models.QuotaInfo, error)
	TextToSpeech(ctx context.Context, apiKey, voiceID, modelID, text string) ([]byte, error)
}

// HTTPClient implements Client against the ElevenLabs REST API.
type HTTPClient struct {
	baseURL   string
	client    *http.Client
	ttsClient *http.Client
}

// NewHTTPClient creates a new ElevenLabs HTTP client. The synthesis call can
// take far longer than the metadata calls, so the timeout applies only to
// metadata; TextToSpeech relies on the caller's context deadline.
func NewHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    &http.Client{Timeout: timeout},
		ttsClient: &http.Client{},
	}
}

func (c *HTTPClient) ValidateKey(ctx context.Context, apiKey string) error {
	resp, err := c.get(ctx, "/v1/models", apiKey)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	return checkStatus(resp)
}

func (c *HTTPClient) Voices(ctx context.Context, apiKey string) ([]models.Voice, error) {
	resp, err := c.get(ctx, "/v1/voices", apiKey)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var payload struct {
		Voices []struct {
			VoiceID string `json:"voice_id"`
			Name    string `json:"name"`
		} `json:"voices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decoding voices response: %w", err)
	}

	voices := make([]models.Voice, 0, len(payload.Voices))
	for _, v := range payload.Voices {
		if v.VoiceID == "" || v.Name == "" {
			continue
		}
		voices = append(voices, models.Voice{ID: v.VoiceID, Name: v.Name})
	}
	sort.Slice(voices, func(i, j int) bool { return voices[i].Name < voices[j].Name })

	return voices, nil
}

func (c *HTTPClient) Subscription(ctx context.Context, apiKey string) (models.QuotaInfo, error) {
	resp, err := c.get(ctx, "/v1/user/subscription", apiKey)
	if err != nil {
		return models.QuotaInfo{}, err
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return models.QuotaInfo{}, err
	}

	var payload struct {
		CharacterCount int64  `json:"character_count"`
		CharacterLimit int64  `json:"character_limit"`
		Tier           string `json:"tier"`
		Status         string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return models.QuotaInfo{}, fmt.Errorf("decoding subscription response: %w", err)
	}

	return models.QuotaInfo{
		CharacterCount: payload.CharacterCount,
		CharacterLimit: payload.CharacterLimit,
		Tier:           payload.Tier,
		Status:         payload.Status,
	}, nil
}

func (c *HTTPClient) TextToSpeech(ctx context.Context, apiKey, voiceID, modelID, text string) ([]byte, error) {
	body, err := json.Marshal(map[string]string{
		"text":     text,
		"model_id": modelID,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding tts request: %w", err)
	}

	u := fmt.Sprintf("%s/v1/text-to-speech/%s", c.baseURL, voiceID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("xi-api-key", apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")

	// Synthesis can run for minutes; let the job context bound it.
	resp, err := c.ttsClient.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	defer resp.Body.Close()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading audio response: %w", err)
	}
	return audio, nil
}

func (c *HTTPClient) get(ctx context.Context, path, apiKey string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("xi-api-key", apiKey)

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, classifyError(err)
	}
	return resp, nil
}

func checkStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode == http.StatusOK:
		return nil
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("%w: status %d: %s", ErrAPIError, resp.StatusCode, errorDetail(resp.Body))
	}
}

// errorDetail pulls a human-readable message out of an ElevenLabs error body.
func errorDetail(body io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(raw) == 0 {
		return "no detail"
	}

	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if json.Unmarshal(raw, &payload) != nil || payload.Detail == nil {
		return strings.TrimSpace(string(raw))
	}

	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(payload.Detail, &obj) == nil && obj.Message != "" {
		return obj.Message
	}
	return strings.TrimSpace(string(payload.Detail))
}

func classifyError(err error) error {
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return fmt.Errorf("%w: timeout: %v", ErrUnreachable, err)
	}
	return fmt.Errorf("%w: %v", ErrUnreachable, err)
}
