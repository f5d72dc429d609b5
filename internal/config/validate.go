package config

import "fmt"

var validPolicies = map[SelectionPolicy]bool{
	PolicyRoundRobin:    true,
	PolicyRandom:        true,
	PolicyLeastInFlight: true,
}

// Validate checks cfg's fields against the ranges required for the gateway
// to operate, collecting every violation instead of stopping at the first.
func Validate(cfg *Config) error {
	var violations []string

	if cfg.Port < 1 || cfg.Port > 65535 {
		violations = append(violations, fmt.Sprintf("port must be in [1,65535], got %d", cfg.Port))
	}
	if !validPolicies[cfg.SelectionPolicy] {
		violations = append(violations, fmt.Sprintf("selection_policy must be one of round_robin, random, least_in_flight, got %q", cfg.SelectionPolicy))
	}
	if cfg.FailureThreshold < 1 {
		violations = append(violations, fmt.Sprintf("failure_threshold must be >= 1, got %d", cfg.FailureThreshold))
	}
	if cfg.CooldownMs < 1000 {
		violations = append(violations, fmt.Sprintf("cooldown_duration_ms must be >= 1000, got %d", cfg.CooldownMs))
	}
	if cfg.ProbesToClose < 1 {
		violations = append(violations, fmt.Sprintf("probes_required_to_close must be >= 1, got %d", cfg.ProbesToClose))
	}
	if cfg.UpstreamBaseURL == "" {
		violations = append(violations, "upstream_base_url must not be empty")
	}
	if cfg.UpstreamAPIVer == "" {
		violations = append(violations, "upstream_api_version must not be empty")
	}
	if cfg.UpstreamTimeoutMs < 1000 {
		violations = append(violations, fmt.Sprintf("upstream_timeout_ms must be >= 1000, got %d", cfg.UpstreamTimeoutMs))
	}
	if cfg.RetryCount < 0 {
		violations = append(violations, fmt.Sprintf("retry_count must be >= 0, got %d", cfg.RetryCount))
	}
	if cfg.RetryDelayMs < 0 {
		violations = append(violations, fmt.Sprintf("retry_delay_ms must be >= 0, got %d", cfg.RetryDelayMs))
	}
	if cfg.BodySizeLimit < 1 {
		violations = append(violations, fmt.Sprintf("body_size_limit must be >= 1, got %d", cfg.BodySizeLimit))
	}
	if cfg.HealthCheckPath == "" {
		violations = append(violations, "health_check_path must not be empty")
	}
	if cfg.StatsPath == "" {
		violations = append(violations, "stats_path must not be empty")
	}

	if len(violations) == 0 {
		return nil
	}
	return &ValidationError{Violations: violations}
}

// ValidationError reports every configuration constraint that failed at
// once, rather than the first one encountered.
type ValidationError struct {
	Violations []string
}

func (e *ValidationError) Error() string {
	msg := "invalid configuration:"
	for _, v := range e.Violations {
		msg += "\n  - " + v
	}
	return msg
}
