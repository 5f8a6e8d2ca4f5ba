package main

import (
	"fmt"
	"go-postdate/internal/config"
	"go-postdate/internal/logging"
	"go-postdate/internal/postdate"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

var (
	cfg        *config.Config
	log        zerolog.Logger
	configPath string
	logFormat  string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:           "postdate",
	Short:         "Resolve loose social-media post timestamps",
	Long:          "Turns relative and partial post timestamps (\"3h\", \"Yesterday at 9:15 PM\", \"September 13 at 2:34 PM\") into absolute UTC instants.",
	SilenceUsage:  true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-format") {
			loaded.LogFormat = logFormat
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
		}
		if err := loaded.Validate(); err != nil {
			return err
		}
		cfg = loaded
		log = logging.Setup(cfg.LogFormat, cfg.LogLevel)
		return nil
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configPath, "config", config.DefaultPath, "Path to YAML config file")
	pf.StringVar(&logFormat, "log-format", "text", "Log format: text or json")
	pf.StringVar(&logLevel, "log-level", "info", "Log level: debug, info, warn or error")
}

// newParser builds a parser pinned to the --now flag value, or on the system
// clock when it is empty, and returns the reference instant to use.
func newParser(now string) (*postdate.Parser, time.Time, error) {
	ref, err := parseNow(now)
	if err != nil {
		return nil, time.Time{}, err
	}
	var clock postdate.Clock
	if !ref.IsZero() {
		clock = postdate.FixedClock(ref)
	}
	parser := postdate.New(clock)
	return parser, parser.Now(), nil
}

// parseNow reads the --now flag. Empty means "use the clock".
func parseNow(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("--now must be RFC 3339: %w", err)
	}
	return t, nil
}
