package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the voiceforge server.
type Config struct {
	Server     ServerConfig
	Paths      PathsConfig
	Synthesis  SynthesisConfig
	Redis      RedisConfig
	ElevenLabs ElevenLabsConfig
	Engines    EnginesConfig
}

type ServerConfig struct {
	Port            int
	Env             string
	RateLimitPerMin int
}

// PathsConfig names the three managed directories: generated audio output,
// reusable speaker samples, and transient speaker uploads.
type PathsConfig struct {
	OutputDir  string
	SamplesDir string
	UploadsDir string
}

type SynthesisConfig struct {
	// MaxConcurrentJobs caps the number of engine calls running at once.
	// Zero means unbounded.
	MaxConcurrentJobs int
	JobTimeout        time.Duration
}

// RedisConfig is optional; an empty URL selects the in-process cache.
type RedisConfig struct {
	URL string
}

type ElevenLabsConfig struct {
	BaseURL string
	Timeout time.Duration
}

// EnginesConfig holds the local synthesis binaries. Overridable mainly so
// tests and non-standard installs can point at a different executable.
type EnginesConfig struct {
	TTSBin   string
	PiperBin string
	BarkBin  string
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:            envInt("VOICEFORGE_PORT", 8080),
			Env:             envString("VOICEFORGE_ENV", "development"),
			RateLimitPerMin: envInt("VOICEFORGE_RATE_LIMIT_PER_MIN", 60),
		},
		Paths: PathsConfig{
			OutputDir:  envString("VOICEFORGE_OUTPUT_DIR", "audio_output"),
			SamplesDir: envString("VOICEFORGE_SAMPLES_DIR", "speaker_samples"),
			UploadsDir: envString("VOICEFORGE_UPLOADS_DIR", "web_uploads"),
		},
		Synthesis: SynthesisConfig{
			MaxConcurrentJobs: envInt("VOICEFORGE_MAX_CONCURRENT_JOBS", 0),
			JobTimeout:        envDurationSecs("VOICEFORGE_JOB_TIMEOUT_SECS", 10*time.Minute),
		},
		Redis: RedisConfig{
			URL: os.Getenv("VOICEFORGE_REDIS_URL"),
		},
		ElevenLabs: ElevenLabsConfig{
			BaseURL: envString("ELEVENLABS_BASE_URL", "https://api.elevenlabs.io"),
			Timeout: envDuration("ELEVENLABS_TIMEOUT", 30*time.Second),
		},
		Engines: EnginesConfig{
			TTSBin:   envString("TTS_CLI", "tts"),
			PiperBin: envString("PIPER_CLI", "piper"),
			BarkBin:  envString("BARK_CLI", "bark"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("VOICEFORGE_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Paths.OutputDir == "" {
		return fmt.Errorf("VOICEFORGE_OUTPUT_DIR must not be empty")
	}
	if c.Paths.SamplesDir == "" {
		return fmt.Errorf("VOICEFORGE_SAMPLES_DIR must not be empty")
	}
	if c.Paths.UploadsDir == "" {
		return fmt.Errorf("VOICEFORGE_UPLOADS_DIR must not be empty")
	}

	if c.Synthesis.MaxConcurrentJobs < 0 {
		return fmt.Errorf("VOICEFORGE_MAX_CONCURRENT_JOBS must be >= 0, got %d", c.Synthesis.MaxConcurrentJobs)
	}
	if c.Synthesis.JobTimeout <= 0 {
		return fmt.Errorf("VOICEFORGE_JOB_TIMEOUT_SECS must be positive")
	}

	if !strings.HasPrefix(c.ElevenLabs.BaseURL, "http://") && !strings.HasPrefix(c.ElevenLabs.BaseURL, "https://") {
		return fmt.Errorf("ELEVENLABS_BASE_URL must start with http:// or https://, got %q", c.ElevenLabs.BaseURL)
	}

	return nil
}

// EnsureDirs creates the managed directories if they do not exist.
func (c *Config) EnsureDirs() error {
	for _, dir := range []string{c.Paths.OutputDir, c.Paths.SamplesDir, c.Paths.UploadsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}
	return nil
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func envDurationSecs(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return time.Duration(secs) * time.Second
}
