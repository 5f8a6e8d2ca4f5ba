package main

import (
	"go-postdate/internal/api"
	"go-postdate/internal/candidate"
	"go-postdate/internal/config"
	"go-postdate/internal/logging"
	"go-postdate/internal/postdate"
	"os"

	"github.com/gin-gonic/gin"
)

func main() {
	configPath := os.Getenv("POSTDATE_CONFIG")
	if configPath == "" {
		configPath = config.DefaultPath
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		bootLog := logging.Setup("text", "info")
		bootLog.Fatal().Err(err).Msg("failed to load config")
	}
	log := logging.Setup(cfg.LogFormat, cfg.LogLevel)

	if port := os.Getenv("PORT"); port != "" {
		cfg.ListenAddr = ":" + port
	}
	if cfg.LogLevel != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}

	//no page to capture over HTTP, ocr candidates only come from the request
	policy := candidate.NewPolicy(postdate.New(nil), cfg.EnableOCR, log)
	r := api.NewHandler(policy, log).Router()

	log.Info().Str("addr", cfg.ListenAddr).Msg("server listening")
	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatal().Err(err).Msg("failed to start server")
	}
}
