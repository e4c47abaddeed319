package elevenlabs

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"log/slog"
	"time"

	"voiceforge/internal/cache"
	"voiceforge/pkg/models"
)

const directoryTTL = 5 * time.Minute

// Directory serves the read-only hosted-engine lookups the API layer exposes:
// credential validation, voice listing, and quota. Voice lists and quota are
// cached per key so repeated UI polling doesn't burn API calls.
type Directory struct {
	client Client
	cache  cache.Cache
}

func NewDirectory(client Client, c cache.Cache) *Directory {
	return &Directory{client: client, cache: c}
}

// ValidateKey resolves the credential inputs and proves the key against the API.
func (d *Directory) ValidateKey(ctx context.Context, inline, name string) error {
	key, err := ResolveCredential(inline, name)
	if err != nil {
		return err
	}
	return d.client.ValidateKey(ctx, key)
}

// Voices lists the voices available to the credential, sorted by name.
func (d *Directory) Voices(ctx context.Context, inline, name string) ([]models.Voice, error) {
	key, err := ResolveCredential(inline, name)
	if err != nil {
		return nil, err
	}

	cacheKey := cache.VoicesKey(keyID(key))
	if raw, hit, err := d.cache.Get(ctx, cacheKey); err == nil && hit {
		var voices []models.Voice
		if json.Unmarshal(raw, &voices) == nil {
			return voices, nil
		}
	}

	voices, err := d.client.Voices(ctx, key)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(voices); err == nil {
		if err := d.cache.Set(ctx, cacheKey, raw, directoryTTL); err != nil {
			slog.Warn("caching voice list failed", "error", err)
		}
	}
	return voices, nil
}

// Quota reports subscription usage for the credential.
func (d *Directory) Quota(ctx context.Context, inline, name string) (models.QuotaInfo, error) {
	key, err := ResolveCredential(inline, name)
	if err != nil {
		return models.QuotaInfo{}, err
	}

	cacheKey := cache.QuotaKey(keyID(key))
	if raw, hit, err := d.cache.Get(ctx, cacheKey); err == nil && hit {
		var q models.QuotaInfo
		if json.Unmarshal(raw, &q) == nil {
			return q, nil
		}
	}

	quota, err := d.client.Subscription(ctx, key)
	if err != nil {
		return models.QuotaInfo{}, err
	}

	if raw, err := json.Marshal(quota); err == nil {
		if err := d.cache.Set(ctx, cacheKey, raw, directoryTTL); err != nil {
			slog.Warn("caching quota failed", "error", err)
		}
	}
	return quota, nil
}

// keyID derives a short non-reversible cache identifier from an API key so
// the key itself never appears in cache storage.
func keyID(apiKey string) string {
	sum := sha256.Sum256([]byte(apiKey))
	return hex.EncodeToString(sum[:6])
}
