// Open a post page
// Collect date candidates from the article
// Resolve the timestamp, OCR as last resort
// Read engagement counts

package scraper

import (
	"context"
	"fmt"
	"go-postdate/internal/candidate"
	"go-postdate/internal/collector"
	"go-postdate/internal/engagement"
	"go-postdate/internal/models"
	"go-postdate/internal/ocr"
	"strings"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/rs/zerolog"
)

type Options struct {
	ArticleSelector   string
	CandidateSelector string
	//how long to wait for the article to render, ms
	WaitTimeoutMs float64
}

// PostScraper resolves the timestamp of single public post pages.
type PostScraper struct {
	opts     Options
	policy   *candidate.Policy
	ocr      *ocr.Handle
	debugger *ScreenShotDebugger
	logger   zerolog.Logger
}

// New builds a scraper. handle may be nil when OCR is disabled, debugger may
// be nil to skip failure screenshots.
func New(opts Options, policy *candidate.Policy, handle *ocr.Handle, debugger *ScreenShotDebugger, logger zerolog.Logger) *PostScraper {
	if opts.ArticleSelector == "" {
		opts.ArticleSelector = `[role="article"]`
	}
	if opts.CandidateSelector == "" {
		opts.CandidateSelector = "time, abbr, a, span"
	}
	if opts.WaitTimeoutMs <= 0 {
		opts.WaitTimeoutMs = 15000
	}
	return &PostScraper{
		opts:     opts,
		policy:   policy,
		ocr:      handle,
		debugger: debugger,
		logger:   logger,
	}
}

// Scrape navigates page to url and reads the first article on it. ref is the
// reference instant for relative timestamps.
func (s *PostScraper) Scrape(ctx context.Context, page playwright.Page, url string, ref time.Time) (*models.Post, error) {
	if _, err := page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateDomcontentloaded,
		Timeout:   playwright.Float(30000),
	}); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", url, err)
	}

	article := page.Locator(s.opts.ArticleSelector).First()
	if err := article.WaitFor(playwright.LocatorWaitForOptions{
		Timeout: playwright.Float(s.opts.WaitTimeoutMs),
	}); err != nil {
		if s.debugger != nil {
			s.debugger.CaptureAndLog(page, "no-article", "no post found on "+url)
		}
		return nil, fmt.Errorf("no post found on %s: %w", url, err)
	}

	candidates, err := collector.Collect(article.Locator(s.opts.CandidateSelector))
	if err != nil {
		return nil, err
	}
	s.logger.Debug().Str("url", url).Int("candidates", len(candidates)).Msg("collected candidates")

	var rec candidate.Recognizer
	if s.ocr != nil {
		rec = ocr.NewScreenRecognizer(s.ocr, func(ctx context.Context) ([]byte, error) {
			return collector.CaptureHeader(page, s.opts.ArticleSelector)
		})
	}

	post := &models.Post{
		URL:        url,
		Candidates: len(candidates),
		ScrapedAt:  time.Now().UTC(),
	}
	if res, ok := s.policy.Select(ctx, ref, candidates, rec); ok {
		post.Timestamp = &res
	} else {
		s.logger.Info().Str("url", url).Msg("no timestamp resolved")
	}

	spans, err := article.Locator("span").AllInnerTexts()
	if err != nil {
		s.logger.Warn().Err(err).Str("url", url).Msg("failed to read engagement")
	} else {
		post.Engagement = engagement.Parse(strings.Join(spans, "\n"))
	}
	return post, nil
}
