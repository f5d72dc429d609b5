// Package logging configures the process-wide structured logger and
// provides request-scoped helpers on top of it.
package logging

import (
	"sync"
	"time"

	"credpool/internal/config"

	log "github.com/sirupsen/logrus"
)

var setupMu sync.Mutex

// Setup configures the global logrus logger from cfg. It is idempotent;
// the most recent call wins. JSON output is used unless log_level is
// "debug", in which case a human-readable text formatter is used instead.
func Setup(cfg *config.Config) {
	setupMu.Lock()
	defer setupMu.Unlock()

	debug := cfg != nil && cfg.LogLevel == "debug"

	var formatter log.Formatter = &log.JSONFormatter{TimestampFormat: time.RFC3339Nano}
	if debug {
		formatter = &log.TextFormatter{FullTimestamp: true, TimestampFormat: time.RFC3339Nano}
	}
	log.SetFormatter(formatter)

	level, err := log.ParseLevel(levelOrDefault(cfg))
	if err != nil {
		level = log.InfoLevel
	}
	log.SetLevel(level)
}

func levelOrDefault(cfg *config.Config) string {
	if cfg == nil || cfg.LogLevel == "" {
		return "info"
	}
	return cfg.LogLevel
}

// ForRequest returns a logrus entry that carries requestID on every line
// logged through it, so every log statement for a single request can be
// correlated without threading the id through every function signature.
func ForRequest(requestID string) *log.Entry {
	return log.WithField("request_id", requestID)
}
