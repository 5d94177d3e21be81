package main

import (
	"github.com/osse101/CraftCalc_Go/internal/config"
	"github.com/osse101/CraftCalc_Go/internal/logger"
)

// initLogger installs the default logger from app configuration.
// Source locations are only added in dev.
func initLogger(cfg *config.Config) {
	logger.InitLogger(cfg.LoggerConfig())
	logger.Info("Logger initialized",
		"level", cfg.LogLevel,
		"format", cfg.LogFormat,
		"environment", cfg.Environment)
}
