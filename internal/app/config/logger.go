package config

import (
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
)

// SetupLogger настраивает глобальный logrus по LogConfig.
// Формат "json" для продакшена, иначе текстовый вывод с полными метками времени.
func SetupLogger(cfg LogConfig) *log.Logger {
	logger := log.StandardLogger()
	logger.SetOutput(os.Stderr)

	if strings.EqualFold(cfg.Format, "json") {
		logger.SetFormatter(&log.JSONFormatter{})
	} else {
		logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}

	level, err := log.ParseLevel(strings.TrimSpace(cfg.Level))
	if err != nil {
		level = log.InfoLevel
	}
	logger.SetLevel(level)

	return logger
}
