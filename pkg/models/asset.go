package models

import "time"

// AudioAsset is one generated audio file under the managed output directory.
type AudioAsset struct {
	Filename  string    `json:"filename"`
	SizeBytes int64     `json:"size_bytes"`
	CreatedAt time.Time `json:"created_at"`
}

// Voice is one selectable voice offered by the hosted engine.
type Voice struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// QuotaInfo reports hosted-engine subscription usage.
type QuotaInfo struct {
	CharacterCount int64  `json:"used"`
	CharacterLimit int64  `json:"limit"`
	Tier           string `json:"tier"`
	Status         string `json:"status"`
}
