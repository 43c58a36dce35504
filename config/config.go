// Package config manages application configuration.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Download engines understood by the youtube package.
const (
	EngineYtdlp  = "ytdlp"
	EngineNative = "native"
)

// ErrMissingAPIKey is returned by Validate when no YouTube Data API key is configured.
var ErrMissingAPIKey = errors.New("config: YOUTUBE_API_KEY not set")

// Config holds everything a clip run needs besides the user's request.
type Config struct {
	// APIKey is the YouTube Data API v3 key (required).
	APIKey string `json:"api_key"`
	// DownloadsDir is the working directory for temp downloads and exported clips.
	DownloadsDir string `json:"downloads_dir"`

	// Engine selects the download engine: "ytdlp" or "native".
	Engine string `json:"engine"`
	// YtdlpPath is the path to the yt-dlp executable (default: "yt-dlp")
	YtdlpPath string `json:"ytdlp_path"`
	// FFmpegPath is the path to the ffmpeg executable (default: "ffmpeg")
	FFmpegPath string `json:"ffmpeg_path"`
	// FFprobePath is the path to the ffprobe executable (default: "ffprobe")
	FFprobePath string `json:"ffprobe_path"`

	// DownloadTimeout bounds both download attempts together.
	DownloadTimeout time.Duration `json:"download_timeout"`
	// APITimeout bounds the metadata request.
	APITimeout time.Duration `json:"api_timeout"`
	// APIRequestsPerSecond throttles Data API calls.
	APIRequestsPerSecond float64 `json:"api_rps"`
}

// DefaultConfig returns configuration with safe defaults.
func DefaultConfig() *Config {
	return &Config{
		DownloadsDir:         "downloads",
		Engine:               EngineYtdlp,
		YtdlpPath:            "yt-dlp",
		FFmpegPath:           "ffmpeg",
		FFprobePath:          "ffprobe",
		DownloadTimeout:      30 * time.Minute,
		APITimeout:           15 * time.Second,
		APIRequestsPerSecond: 1.0,
	}
}

// Load reads the configuration and validates it.
// Priority: env vars > .env > config file > defaults
func Load() (*Config, error) {
	cfg, err := Read()
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Read loads configuration from environment variables, a .env file, a config
// file, and applies defaults without validating. Callers that layer their own
// overrides on top validate afterwards.
func Read() (*Config, error) {
	cfg := DefaultConfig()

	if err := cfg.loadFromFile(); err != nil {
		// Config file is optional
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	// godotenv.Load never overrides variables already present in the environment.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	cfg.loadFromEnv()

	return cfg, nil
}

// loadFromFile attempts to load config from clipcut.json in current directory or home directory.
func (c *Config) loadFromFile() error {
	paths := []string{
		"clipcut.json",
		filepath.Join(os.Getenv("HOME"), ".config", "clipcut", "clipcut.json"),
	}

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) {
				continue
			}
			return err
		}

		if err := json.Unmarshal(data, c); err != nil {
			return fmt.Errorf("parse %s: %w", path, err)
		}
		return nil
	}

	return os.ErrNotExist
}

// loadFromEnv overrides config with environment variables.
func (c *Config) loadFromEnv() {
	if v := os.Getenv("YOUTUBE_API_KEY"); v != "" {
		c.APIKey = strings.TrimSpace(v)
	}
	if v := os.Getenv("CLIPCUT_DOWNLOADS_DIR"); v != "" {
		c.DownloadsDir = v
	}
	if v := os.Getenv("CLIPCUT_ENGINE"); v != "" {
		c.Engine = strings.ToLower(v)
	}
	if v := os.Getenv("CLIPCUT_YTDLP_PATH"); v != "" {
		c.YtdlpPath = v
	}
	if v := os.Getenv("CLIPCUT_FFMPEG_PATH"); v != "" {
		c.FFmpegPath = v
	}
	if v := os.Getenv("CLIPCUT_FFPROBE_PATH"); v != "" {
		c.FFprobePath = v
	}
	if v := os.Getenv("CLIPCUT_DOWNLOAD_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.DownloadTimeout = d
		}
	}
	if v := os.Getenv("CLIPCUT_API_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			c.APITimeout = d
		}
	}
	if v := os.Getenv("CLIPCUT_API_RPS"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			c.APIRequestsPerSecond = f
		}
	}
}

// Validate checks that configuration values are valid and consistent.
// A missing API key is reported as ErrMissingAPIKey so callers can print setup guidance.
func (c *Config) Validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if c.DownloadsDir == "" {
		return fmt.Errorf("downloads_dir must not be empty")
	}
	switch c.Engine {
	case EngineYtdlp, EngineNative:
	default:
		return fmt.Errorf("engine must be %q or %q, got %q", EngineYtdlp, EngineNative, c.Engine)
	}
	if c.DownloadTimeout <= 0 {
		return fmt.Errorf("download_timeout must be positive")
	}
	if c.APITimeout <= 0 {
		return fmt.Errorf("api_timeout must be positive")
	}
	if c.APIRequestsPerSecond < 0 {
		return fmt.Errorf("api_rps must be non-negative")
	}
	return nil
}
