package main

import (
	"os"
	"time"

	"github.com/stemsi/libretto-backend/internal/config"
	"github.com/stemsi/libretto-backend/internal/demo"
	"github.com/stemsi/libretto-backend/internal/logger"
	"github.com/stemsi/libretto-backend/internal/model"
)

func main() {
	cfg := config.Load()
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)

	now := time.Now()
	today := model.Date(now.Year(), now.Month(), now.Day())

	if _, err := demo.Run(os.Stdout, log, today); err != nil {
		log.Fatal().Err(err).Msg("demo failed")
	}
}
