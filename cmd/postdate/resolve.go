package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"go-postdate/internal/candidate"
	"go-postdate/internal/filter"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var (
	resolveNowFlag string
	resolveMaxAge  time.Duration
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Pick the best timestamp from provenance<TAB>value lines on stdin",
	Args:  cobra.NoArgs,
	RunE:  runResolve,
}

func init() {
	resolveCmd.Flags().StringVar(&resolveNowFlag, "now", "", "Reference instant (RFC 3339), defaults to the current time")
	resolveCmd.Flags().DurationVar(&resolveMaxAge, "max-age", 0, "Print null when the result is older than this (0 uses config max_age)")
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	parser, ref, err := newParser(resolveNowFlag)
	if err != nil {
		return err
	}
	maxAge := cfg.MaxAge
	if resolveMaxAge > 0 {
		maxAge = resolveMaxAge
	}

	candidates, err := readCandidates(cmd.InOrStdin())
	if err != nil {
		return err
	}

	//stdin has no page behind it, so recognized text only comes from input lines
	policy := candidate.NewPolicy(parser, cfg.EnableOCR, log)
	res, ok := policy.Select(cmd.Context(), ref, candidates, nil)

	var out *candidate.Result
	if ok {
		if filter.IsRecent(res.At, ref, maxAge) {
			out = &res
		} else {
			log.Info().Str("instant", res.Instant).Dur("max_age", maxAge).Msg("timestamp outside window")
		}
	}
	return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
}

// readCandidates parses "provenance<TAB>value" lines. Blank lines are skipped.
func readCandidates(r io.Reader) ([]candidate.Candidate, error) {
	var candidates []candidate.Candidate

	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		tag, value, found := strings.Cut(text, "\t")
		if !found {
			return nil, fmt.Errorf("line %d: expected provenance<TAB>value", line)
		}
		p, err := candidate.ParseProvenance(tag)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		candidates = append(candidates, candidate.Candidate{Provenance: p, Value: value})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read candidates: %w", err)
	}
	return candidates, nil
}
