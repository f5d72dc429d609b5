package config

import (
	"os"
	"strconv"
	"strings"
)

// mergeEnvVars overrides cfg's fields with any GATEWAY_-prefixed environment
// variable that is set. File values already applied to cfg are only
// replaced when the corresponding variable is present and non-empty.
func mergeEnvVars(cfg *Config) {
	if v := os.Getenv("GATEWAY_PORT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Port = n
		}
	}
	if v := os.Getenv("GATEWAY_CORS_ORIGIN"); v != "" {
		cfg.CORSOrigin = v
	}
	if v := os.Getenv("GATEWAY_LOG_LEVEL"); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}
	if v := os.Getenv("GATEWAY_SELECTION_POLICY"); v != "" {
		cfg.SelectionPolicy = SelectionPolicy(strings.ToLower(v))
	}
	if v := os.Getenv("GATEWAY_FAILURE_THRESHOLD"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FailureThreshold = n
		}
	}
	if v := os.Getenv("GATEWAY_COOLDOWN_DURATION_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.CooldownMs = n
		}
	}
	if v := os.Getenv("GATEWAY_PROBES_REQUIRED_TO_CLOSE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ProbesToClose = n
		}
	}
	if v := os.Getenv("GATEWAY_UPSTREAM_BASE_URL"); v != "" {
		cfg.UpstreamBaseURL = v
	}
	if v := os.Getenv("GATEWAY_UPSTREAM_API_VERSION"); v != "" {
		cfg.UpstreamAPIVer = v
	}
	if v := os.Getenv("GATEWAY_UPSTREAM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.UpstreamTimeoutMs = n
		}
	}
	if v := os.Getenv("GATEWAY_RETRY_COUNT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RetryCount = n
		}
	}
	if v := os.Getenv("GATEWAY_RETRY_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.RetryDelayMs = n
		}
	}
	if v := os.Getenv("GATEWAY_BODY_SIZE_LIMIT"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.BodySizeLimit = n
		}
	}
	if v := os.Getenv("GATEWAY_HEALTH_CHECK_PATH"); v != "" {
		cfg.HealthCheckPath = v
	}
	if v := os.Getenv("GATEWAY_STATS_PATH"); v != "" {
		cfg.StatsPath = v
	}
	if v := os.Getenv("GATEWAY_METRICS_ENABLED"); v != "" {
		cfg.MetricsEnabled = v == "true" || v == "1"
	}
	if v := os.Getenv("GATEWAY_ADMIN_KEY"); v != "" {
		cfg.AdminKey = v
	}
}
