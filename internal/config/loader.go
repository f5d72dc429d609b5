package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	log "github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Load builds a Config by applying, in order, built-in defaults, the
// optional file at path (YAML or JSON, detected by extension), and
// GATEWAY_-prefixed environment variables. An empty path skips the file
// step entirely. The result is validated before being returned.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()
	cfg.ConfigPath = path

	if path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	mergeEnvVars(cfg)
	cfg.resolveDurations()

	if err := Validate(cfg); err != nil {
		return nil, err
	}

	log.WithFields(log.Fields{
		"path":             path,
		"port":             cfg.Port,
		"selection_policy": cfg.SelectionPolicy,
	}).Info("configuration loaded")

	return cfg, nil
}

// loadFile reads path and unmarshals it onto cfg in place, using the file
// extension to pick a YAML or JSON decoder and falling back to trying
// both when the extension is unrecognized.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			log.WithField("path", path).Warn("config file not found, using defaults and environment")
			return nil
		}
		return err
	}

	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	case ".json":
		return json.Unmarshal(data, cfg)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return json.Unmarshal(data, cfg)
		}
		return nil
	}
}
