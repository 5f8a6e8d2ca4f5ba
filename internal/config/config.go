// Load envs from .env
// Load YAML config
// Override with env vars
// Provide default values and validate

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const DefaultPath = "configs/config.yaml"

type Config struct {
	LogFormat string `yaml:"log_format" env:"POSTDATE_LOG_FORMAT"`
	LogLevel  string `yaml:"log_level" env:"POSTDATE_LOG_LEVEL"`

	//OCR fallback
	EnableOCR     bool   `yaml:"enable_ocr" env:"POSTDATE_ENABLE_OCR"`
	TesseractPath string `yaml:"tesseract_path" env:"POSTDATE_TESSERACT_PATH"`
	TessdataPath  string `yaml:"tessdata_path"`
	OCRLanguages  string `yaml:"ocr_languages" env:"POSTDATE_OCR_LANGUAGES"`

	//Page scraping
	Headless          bool   `yaml:"headless"`
	ArticleSelector   string `yaml:"article_selector"`
	CandidateSelector string `yaml:"candidate_selector"`
	MinWaitMs         int    `yaml:"min_wait_ms"`
	MaxWaitMs         int    `yaml:"max_wait_ms"`
	//empty disables failure screenshots
	ScreenshotDir string `yaml:"screenshot_dir"`
	CachePath     string `yaml:"cache_path"`
	OutputDir     string `yaml:"output_dir"`

	//Filtering, 0 disables
	MaxAge time.Duration `yaml:"max_age" env:"POSTDATE_MAX_AGE"`

	ListenAddr string `yaml:"listen_addr" env:"POSTDATE_LISTEN_ADDR"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	cfg := &Config{Headless: true}
	cfg.applyDefaults()
	return cfg
}

// Load reads .env (if any), the YAML file at path (if it exists), applies env
// overrides and defaults, then validates.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{Headless: true}

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("POSTDATE_LOG_FORMAT"); v != "" {
		c.LogFormat = v
	}
	if v := os.Getenv("POSTDATE_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("POSTDATE_ENABLE_OCR"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid POSTDATE_ENABLE_OCR: %w", err)
		}
		c.EnableOCR = enabled
	}
	if v := os.Getenv("POSTDATE_TESSERACT_PATH"); v != "" {
		c.TesseractPath = v
	}
	if v := os.Getenv("POSTDATE_OCR_LANGUAGES"); v != "" {
		c.OCRLanguages = v
	}
	if v := os.Getenv("POSTDATE_MAX_AGE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid POSTDATE_MAX_AGE: %w", err)
		}
		c.MaxAge = d
	}
	if v := os.Getenv("POSTDATE_LISTEN_ADDR"); v != "" {
		c.ListenAddr = v
	}
	return nil
}

func (c *Config) applyDefaults() {
	if c.LogFormat == "" {
		c.LogFormat = "text"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.TesseractPath == "" {
		c.TesseractPath = "tesseract"
	}
	if c.OCRLanguages == "" {
		c.OCRLanguages = "eng"
	}
	if c.ArticleSelector == "" {
		c.ArticleSelector = `[role="article"]`
	}
	if c.CandidateSelector == "" {
		c.CandidateSelector = "time, abbr, a, span"
	}
	if c.MinWaitMs == 0 && c.MaxWaitMs == 0 {
		c.MinWaitMs = 1500
		c.MaxWaitMs = 3500
	}
	if c.CachePath == "" {
		c.CachePath = ".cache"
	}
	if c.OutputDir == "" {
		c.OutputDir = "logs"
	}
	if c.ListenAddr == "" {
		c.ListenAddr = ":8080"
	}
}

// Validate checks value ranges after defaults are applied.
func (c *Config) Validate() error {
	if c.LogFormat != "text" && c.LogFormat != "json" {
		return fmt.Errorf("log_format must be text or json, got %q", c.LogFormat)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	if c.MinWaitMs < 0 || c.MaxWaitMs < c.MinWaitMs {
		return fmt.Errorf("wait bounds must satisfy 0 <= min_wait_ms <= max_wait_ms, got %d..%d", c.MinWaitMs, c.MaxWaitMs)
	}
	if c.MaxAge < 0 {
		return fmt.Errorf("max_age must not be negative")
	}
	return nil
}
