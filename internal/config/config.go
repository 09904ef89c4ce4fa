package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultMaxFileSize is the largest document accepted by the basic checks.
const DefaultMaxFileSize = 50 * 1024 * 1024 // 50 MiB

// DefaultSupportedTypes is the fixed set of media types the tool fully
// supports; anything else downgrades a basic validation to a warning.
var DefaultSupportedTypes = []string{
	"image/png", "image/jpeg", "image/jpg", "image/gif", "image/bmp",
	"image/tiff", "application/pdf", "image/webp",
}

type Config struct {
	// Server settings (serve mode only)
	Host               string
	Port               string
	RequestTimeout     time.Duration
	FetchTimeout       time.Duration
	MaxRequestBodySize int64

	// Validation settings
	MaxFileSize    int64
	SupportedTypes []string

	// OCR settings
	OCRLanguages []string

	// Azure AI Vision credentials
	AzureVisionEndpoint string
	AzureVisionKey      string
	VisionTimeout       time.Duration

	// Azure Blob storage credentials (serve mode azblob:// sources)
	AzureStorageAccount string
	AzureStorageKey     string
}

func (c *Config) ServerAddress() string {
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// Load builds the configuration from environment variables, then overlays the
// optional YAML file when path is non-empty.
func Load(path string) (*Config, error) {
	cfg, err := LoadFromEnv()
	if err != nil {
		return nil, err
	}
	if path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func LoadFromEnv() (*Config, error) {
	cfg := &Config{
		Host:                getEnvOrDefault("HOST", "0.0.0.0"),
		Port:                getEnvOrDefault("PORT", "8080"),
		RequestTimeout:      parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		FetchTimeout:        parseDurationOrDefault("FETCH_TIMEOUT", 15*time.Second),
		MaxRequestBodySize:  parseIntOrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		MaxFileSize:         parseIntOrDefault("MAX_FILE_SIZE", DefaultMaxFileSize),
		SupportedTypes:      parseListOrDefault("SUPPORTED_TYPES", DefaultSupportedTypes),
		OCRLanguages:        parseListOrDefault("OCR_LANGUAGES", nil),
		AzureVisionEndpoint: os.Getenv("AZURE_VISION_ENDPOINT"),
		AzureVisionKey:      os.Getenv("AZURE_VISION_KEY"),
		VisionTimeout:       parseDurationOrDefault("VISION_TIMEOUT", 30*time.Second),
		AzureStorageAccount: os.Getenv("AZURE_STORAGE_ACCOUNT"),
		AzureStorageKey:     os.Getenv("AZURE_STORAGE_KEY"),
	}
	return cfg, nil
}

// fileConfig mirrors the YAML layout; pointer fields distinguish "unset"
// from zero values so the file only overrides what it names.
type fileConfig struct {
	Host                *string  `yaml:"host"`
	Port                *string  `yaml:"port"`
	RequestTimeout      *string  `yaml:"request_timeout"`
	FetchTimeout        *string  `yaml:"fetch_timeout"`
	MaxRequestBodySize  *int64   `yaml:"max_request_body_size"`
	MaxFileSize         *int64   `yaml:"max_file_size"`
	SupportedTypes      []string `yaml:"supported_types"`
	OCRLanguages        []string `yaml:"ocr_languages"`
	AzureVisionEndpoint *string  `yaml:"azure_vision_endpoint"`
	AzureVisionKey      *string  `yaml:"azure_vision_key"`
	VisionTimeout       *string  `yaml:"vision_timeout"`
	AzureStorageAccount *string  `yaml:"azure_storage_account"`
	AzureStorageKey     *string  `yaml:"azure_storage_key"`
}

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.Host != nil {
		c.Host = *fc.Host
	}
	if fc.Port != nil {
		c.Port = *fc.Port
	}
	if fc.MaxRequestBodySize != nil {
		c.MaxRequestBodySize = *fc.MaxRequestBodySize
	}
	if fc.MaxFileSize != nil {
		c.MaxFileSize = *fc.MaxFileSize
	}
	if len(fc.SupportedTypes) > 0 {
		c.SupportedTypes = fc.SupportedTypes
	}
	if len(fc.OCRLanguages) > 0 {
		c.OCRLanguages = fc.OCRLanguages
	}
	if fc.AzureVisionEndpoint != nil {
		c.AzureVisionEndpoint = *fc.AzureVisionEndpoint
	}
	if fc.AzureVisionKey != nil {
		c.AzureVisionKey = *fc.AzureVisionKey
	}
	if fc.AzureStorageAccount != nil {
		c.AzureStorageAccount = *fc.AzureStorageAccount
	}
	if fc.AzureStorageKey != nil {
		c.AzureStorageKey = *fc.AzureStorageKey
	}

	for _, d := range []struct {
		raw *string
		dst *time.Duration
	}{
		{fc.RequestTimeout, &c.RequestTimeout},
		{fc.FetchTimeout, &c.FetchTimeout},
		{fc.VisionTimeout, &c.VisionTimeout},
	} {
		if d.raw == nil {
			continue
		}
		dur, err := time.ParseDuration(strings.TrimSpace(*d.raw))
		if err != nil {
			return fmt.Errorf("parse duration %q in %s: %w", *d.raw, path, err)
		}
		*d.dst = dur
	}
	return nil
}

func (c *Config) validate() error {
	p, err := strconv.Atoi(strings.TrimSpace(c.Port))
	if err != nil || p < 1 || p > 65535 {
		return fmt.Errorf("invalid port: %q", c.Port)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("max request body size must be > 0 (got %d)", c.MaxRequestBodySize)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max file size must be > 0 (got %d)", c.MaxFileSize)
	}
	if c.RequestTimeout <= 0 || c.FetchTimeout <= 0 || c.VisionTimeout <= 0 {
		return fmt.Errorf("timeouts must be > 0 (got request=%s, fetch=%s, vision=%s)",
			c.RequestTimeout, c.FetchTimeout, c.VisionTimeout)
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseListOrDefault(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
