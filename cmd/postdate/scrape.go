package main

import (
	"encoding/json"
	"fmt"
	"go-postdate/internal/browser"
	"go-postdate/internal/candidate"
	"go-postdate/internal/dedup"
	"go-postdate/internal/filter"
	"go-postdate/internal/models"
	"go-postdate/internal/ocr"
	"go-postdate/internal/postdate"
	"go-postdate/internal/scraper"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	scrapeRescan bool
	scrapeSave   bool
)

var scrapeCmd = &cobra.Command{
	Use:   "scrape URL...",
	Short: "Open public post pages and resolve their timestamps",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runScrape,
}

func init() {
	scrapeCmd.Flags().BoolVar(&scrapeRescan, "rescan", false, "Scrape URLs even if they are in the seen-posts cache")
	scrapeCmd.Flags().BoolVar(&scrapeSave, "save", false, "Also write results to output_dir as a dated JSON file")
	rootCmd.AddCommand(scrapeCmd)
}

func runScrape(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	runID := uuid.NewString()
	log := log.With().Str("run_id", runID).Logger()

	pm, err := browser.NewPlaywright(ctx, cfg.Headless)
	if err != nil {
		return err
	}
	defer pm.Close()

	var handle *ocr.Handle
	if cfg.EnableOCR {
		handle = ocr.NewHandle(ocr.NewTesseractFactory(&ocr.Config{
			TesseractPath: cfg.TesseractPath,
			DataPath:      cfg.TessdataPath,
			Languages:     cfg.OCRLanguages,
		}, log))
		defer func() {
			if err := handle.Close(); err != nil {
				log.Warn().Err(err).Msg("failed to release ocr worker")
			}
		}()
	}

	var debugger *scraper.ScreenShotDebugger
	if cfg.ScreenshotDir != "" {
		debugger, err = scraper.NewScreenShotDebugger(cfg.ScreenshotDir, log)
		if err != nil {
			return err
		}
	}

	parser := postdate.New(nil)
	policy := candidate.NewPolicy(parser, cfg.EnableOCR, log)
	s := scraper.New(scraper.Options{
		ArticleSelector:   cfg.ArticleSelector,
		CandidateSelector: cfg.CandidateSelector,
	}, policy, handle, debugger, log)
	cache := dedup.NewPostCache(cfg.CachePath, dedup.DefaultRetention, log)

	enc := json.NewEncoder(cmd.OutOrStdout())
	var posts []*models.Post

	for i, url := range args {
		if !scrapeRescan && cache.IsSeen(url) {
			log.Info().Str("url", url).Msg("already scraped, skipping")
			continue
		}
		if i > 0 {
			if err := browser.RandomDelay(ctx, cfg.MinWaitMs, cfg.MaxWaitMs); err != nil {
				return err
			}
		}

		page, err := pm.NewPage()
		if err != nil {
			return err
		}
		post, err := s.Scrape(ctx, page, url, parser.Now())
		if cerr := page.Context().Close(); cerr != nil {
			log.Warn().Err(cerr).Str("url", url).Msg("failed to close browser context")
		}
		if err != nil {
			log.Error().Err(err).Str("url", url).Msg("scrape failed")
			continue
		}
		post.RunID = runID
		cache.Add(url)

		if post.Timestamp != nil && !filter.IsRecent(post.Instant(), parser.Now(), cfg.MaxAge) {
			log.Info().Str("url", url).Str("instant", post.Timestamp.Instant).Msg("skipping old post")
			continue
		}

		if err := enc.Encode(post); err != nil {
			return err
		}
		posts = append(posts, post)
	}

	if scrapeSave {
		return savePosts(log, cfg.OutputDir, posts)
	}
	return nil
}

// savePosts writes post-dates-YYYY-MM-DD.json into dir
func savePosts(log zerolog.Logger, dir string, posts []*models.Post) error {
	if len(posts) == 0 {
		log.Info().Msg("no posts to save")
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	path := filepath.Join(dir, fmt.Sprintf("post-dates-%s.json", time.Now().Format("2006-01-02")))
	data, err := json.MarshalIndent(posts, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal posts: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	log.Info().Str("path", path).Int("posts", len(posts)).Msg("results saved")
	return nil
}
