package ocr

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Config holds the tesseract settings
type Config struct {
	// TesseractPath is the path to the tesseract executable
	TesseractPath string
	// DataPath is the tessdata directory (optional)
	DataPath string
	// Languages, e.g. "eng" or "eng+vie"
	Languages string
}

func DefaultConfig() *Config {
	return &Config{
		TesseractPath: "tesseract",
		Languages:     "eng",
	}
}

// TesseractWorker shells out to the tesseract CLI, piping the image through
// stdin and reading text from stdout.
type TesseractWorker struct {
	config *Config
	logger zerolog.Logger
}

// NewTesseractFactory returns a Factory that checks the binary is runnable
// before handing out a worker.
func NewTesseractFactory(config *Config, logger zerolog.Logger) Factory {
	if config == nil {
		config = DefaultConfig()
	}
	return func(ctx context.Context) (Worker, error) {
		cmd := exec.CommandContext(ctx, config.TesseractPath, "--version")
		if err := cmd.Run(); err != nil {
			return nil, errors.Wrapf(err, "tesseract not available at %q", config.TesseractPath)
		}
		logger.Info().Str("path", config.TesseractPath).Str("languages", config.Languages).Msg("ocr worker started")
		return &TesseractWorker{config: config, logger: logger}, nil
	}
}

func (w *TesseractWorker) args() []string {
	args := []string{"stdin", "stdout"}
	if w.config.Languages != "" {
		args = append(args, "-l", w.config.Languages)
	}
	if w.config.DataPath != "" {
		args = append(args, "--tessdata-dir", w.config.DataPath)
	}
	return args
}

func (w *TesseractWorker) Recognize(ctx context.Context, image []byte) (string, error) {
	cmd := exec.CommandContext(ctx, w.config.TesseractPath, w.args()...)
	var stdout, stderr bytes.Buffer
	cmd.Stdin = bytes.NewReader(image)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		w.logger.Warn().Err(err).Str("stderr", stderr.String()).Msg("tesseract command failed")
		return "", errors.Wrap(err, "tesseract command failed")
	}
	return strings.TrimSpace(stdout.String()), nil
}

// Close is a no-op: every Recognize call is its own process.
func (w *TesseractWorker) Close() error {
	return nil
}
