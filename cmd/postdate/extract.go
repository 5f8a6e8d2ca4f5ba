package main

import (
	"encoding/json"
	"fmt"
	"go-postdate/internal/candidate"
	"go-postdate/internal/collector"
	"go-postdate/internal/engagement"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var (
	extractNowFlag  string
	extractParallel int
)

var extractCmd = &cobra.Command{
	Use:   "extract FILE...",
	Short: "Resolve post timestamps from saved HTML pages",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runExtract,
}

func init() {
	extractCmd.Flags().StringVar(&extractNowFlag, "now", "", "Reference instant (RFC 3339), defaults to the current time")
	extractCmd.Flags().IntVar(&extractParallel, "parallel", 4, "Files parsed concurrently")
	rootCmd.AddCommand(extractCmd)
}

type extractOutput struct {
	File       string            `json:"file"`
	Article    int               `json:"article"`
	Timestamp  *candidate.Result `json:"timestamp"`
	Engagement engagement.Counts `json:"engagement"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	parser, ref, err := newParser(extractNowFlag)
	if err != nil {
		return err
	}

	//saved pages have no live header to capture
	policy := candidate.NewPolicy(parser, cfg.EnableOCR, log)

	results := make([][]extractOutput, len(args))
	g, ctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(max(extractParallel, 1))

	for i, path := range args {
		i, path := i, path
		g.Go(func() error {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			defer f.Close()

			articles, err := collector.FromHTML(f, cfg.ArticleSelector, cfg.CandidateSelector)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			for _, a := range articles {
				out := extractOutput{File: path, Article: a.Index, Engagement: engagement.Parse(a.SpanText)}
				if res, ok := policy.Select(ctx, ref, a.Candidates, nil); ok {
					out.Timestamp = &res
				}
				results[i] = append(results[i], out)
			}
			log.Debug().Str("file", path).Int("articles", len(articles)).Msg("extracted")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, outs := range results {
		for _, out := range outs {
			if err := enc.Encode(out); err != nil {
				return err
			}
		}
	}
	return nil
}
