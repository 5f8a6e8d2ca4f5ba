package scraper

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

// ScreenShotDebugger saves full-page screenshots of pages that failed to scrape
type ScreenShotDebugger struct {
	outputDir string
	logger    zerolog.Logger
}

func NewScreenShotDebugger(dir string, logger zerolog.Logger) (*ScreenShotDebugger, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create screenshot dir: %w", err)
	}
	return &ScreenShotDebugger{
		outputDir: dir,
		logger:    logger,
	}, nil
}

func (s *ScreenShotDebugger) CaptureAndLog(page playwright.Page, name, message string) error {
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	path := filepath.Join(s.outputDir, fmt.Sprintf("%s_%s.png", name, timestamp))

	_, err := page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		s.logger.Warn().Err(err).Msg("failed to capture screenshot")
		return err
	}

	s.logger.Info().Str("path", path).Msg(message)
	return nil
}
