package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"voiceforge/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "development", cfg.Server.Env)
	assert.Equal(t, "audio_output", cfg.Paths.OutputDir)
	assert.Equal(t, "speaker_samples", cfg.Paths.SamplesDir)
	assert.Equal(t, "web_uploads", cfg.Paths.UploadsDir)
	assert.Equal(t, 0, cfg.Synthesis.MaxConcurrentJobs)
	assert.Equal(t, 10*time.Minute, cfg.Synthesis.JobTimeout)
	assert.Equal(t, "https://api.elevenlabs.io", cfg.ElevenLabs.BaseURL)
	assert.Equal(t, "tts", cfg.Engines.TTSBin)
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("VOICEFORGE_PORT", "9090")
	t.Setenv("VOICEFORGE_OUTPUT_DIR", "/var/lib/voiceforge/audio")
	t.Setenv("VOICEFORGE_MAX_CONCURRENT_JOBS", "4")
	t.Setenv("VOICEFORGE_JOB_TIMEOUT_SECS", "120")
	t.Setenv("VOICEFORGE_REDIS_URL", "redis://localhost:6379")
	t.Setenv("PIPER_CLI", "/opt/piper/piper")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "/var/lib/voiceforge/audio", cfg.Paths.OutputDir)
	assert.Equal(t, 4, cfg.Synthesis.MaxConcurrentJobs)
	assert.Equal(t, 2*time.Minute, cfg.Synthesis.JobTimeout)
	assert.Equal(t, "redis://localhost:6379", cfg.Redis.URL)
	assert.Equal(t, "/opt/piper/piper", cfg.Engines.PiperBin)
}

func TestLoad_InvalidPort(t *testing.T) {
	t.Setenv("VOICEFORGE_PORT", "99999")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VOICEFORGE_PORT")
}

func TestLoad_MalformedIntFallsBackToDefault(t *testing.T) {
	t.Setenv("VOICEFORGE_PORT", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoad_InvalidElevenLabsBaseURL(t *testing.T) {
	t.Setenv("ELEVENLABS_BASE_URL", "api.elevenlabs.io")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ELEVENLABS_BASE_URL")
}

func TestEnsureDirs(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("VOICEFORGE_OUTPUT_DIR", dir+"/out")
	t.Setenv("VOICEFORGE_SAMPLES_DIR", dir+"/samples")
	t.Setenv("VOICEFORGE_UPLOADS_DIR", dir+"/uploads")

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NoError(t, cfg.EnsureDirs())

	assert.DirExists(t, dir+"/out")
	assert.DirExists(t, dir+"/samples")
	assert.DirExists(t, dir+"/uploads")
}
