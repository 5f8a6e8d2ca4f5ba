package main

import (
	"encoding/json"

	"github.com/spf13/cobra"
)

var parseNowFlag string

var parseCmd = &cobra.Command{
	Use:   "parse TEXT...",
	Short: "Parse timestamp strings against a reference instant",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseNowFlag, "now", "", "Reference instant (RFC 3339), defaults to the current time")
	rootCmd.AddCommand(parseCmd)
}

type parseOutput struct {
	Input   string  `json:"input"`
	Instant *string `json:"instant"`
	Kind    string  `json:"kind,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	parser, ref, err := newParser(parseNowFlag)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	for _, text := range args {
		out := parseOutput{Input: text}
		if m, ok := parser.Match(text, ref); ok {
			iso := m.ISO()
			out.Instant = &iso
			out.Kind = m.Kind.String()
		} else {
			log.Debug().Str("input", text).Msg("no match")
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}
