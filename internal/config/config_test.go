package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "tesseract", cfg.TesseractPath)
	assert.Equal(t, "eng", cfg.OCRLanguages)
	assert.Equal(t, `[role="article"]`, cfg.ArticleSelector)
	assert.Equal(t, ":8080", cfg.ListenAddr)
	assert.Equal(t, ".cache", cfg.CachePath)
	assert.Equal(t, "logs", cfg.OutputDir)
	assert.Empty(t, cfg.ScreenshotDir)
	assert.True(t, cfg.Headless)
	assert.False(t, cfg.EnableOCR)
	assert.Zero(t, cfg.MaxAge)
}

func TestLoad_YAML(t *testing.T) {
	path := writeConfig(t, `
log_format: json
log_level: debug
enable_ocr: true
tesseract_path: /usr/local/bin/tesseract
ocr_languages: eng+vie
headless: false
min_wait_ms: 100
max_wait_ms: 200
max_age: 720h
listen_addr: 127.0.0.1:9000
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.EnableOCR)
	assert.Equal(t, "/usr/local/bin/tesseract", cfg.TesseractPath)
	assert.Equal(t, "eng+vie", cfg.OCRLanguages)
	assert.False(t, cfg.Headless)
	assert.Equal(t, 100, cfg.MinWaitMs)
	assert.Equal(t, 200, cfg.MaxWaitMs)
	assert.Equal(t, 720*time.Hour, cfg.MaxAge)
	assert.Equal(t, "127.0.0.1:9000", cfg.ListenAddr)
}

func TestLoad_EnvOverrides(t *testing.T) {
	path := writeConfig(t, "log_level: warn\nmax_age: 1h\n")

	t.Setenv("POSTDATE_LOG_LEVEL", "error")
	t.Setenv("POSTDATE_ENABLE_OCR", "true")
	t.Setenv("POSTDATE_MAX_AGE", "48h")
	t.Setenv("POSTDATE_LISTEN_ADDR", ":9999")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "error", cfg.LogLevel)
	assert.True(t, cfg.EnableOCR)
	assert.Equal(t, 48*time.Hour, cfg.MaxAge)
	assert.Equal(t, ":9999", cfg.ListenAddr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "malformed yaml", body: "log_level: [unterminated"},
		{name: "bad log format", body: "log_format: xml"},
		{name: "bad log level", body: "log_level: verbose"},
		{name: "inverted wait bounds", body: "min_wait_ms: 500\nmax_wait_ms: 100"},
		{name: "negative max age", body: "max_age: -1h"},
		{name: "bad ocr flag", env: map[string]string{"POSTDATE_ENABLE_OCR": "maybe"}},
		{name: "bad max age env", env: map[string]string{"POSTDATE_MAX_AGE": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tt.body))
			assert.Error(t, err)
		})
	}
}
