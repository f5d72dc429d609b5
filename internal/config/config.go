// Package config loads and validates the gateway's runtime configuration.
package config

import "time"

// SelectionPolicy names a C3 selector strategy.
type SelectionPolicy string

const (
	PolicyRoundRobin    SelectionPolicy = "round_robin"
	PolicyRandom        SelectionPolicy = "random"
	PolicyLeastInFlight SelectionPolicy = "least_in_flight"
)

// Config is the fully-resolved, validated runtime configuration.
type Config struct {
	Port       int    `yaml:"port" json:"port"`
	CORSOrigin string `yaml:"cors_origin" json:"cors_origin"`
	LogLevel   string `yaml:"log_level" json:"log_level"`

	SelectionPolicy  SelectionPolicy `yaml:"selection_policy" json:"selection_policy"`
	FailureThreshold int             `yaml:"failure_threshold" json:"failure_threshold"`
	CooldownDuration time.Duration   `yaml:"-" json:"-"`
	CooldownMs       int             `yaml:"cooldown_duration_ms" json:"cooldown_duration_ms"`
	ProbesToClose    int             `yaml:"probes_required_to_close" json:"probes_required_to_close"`

	UpstreamBaseURL string        `yaml:"upstream_base_url" json:"upstream_base_url"`
	UpstreamAPIVer  string        `yaml:"upstream_api_version" json:"upstream_api_version"`
	UpstreamTimeout time.Duration `yaml:"-" json:"-"`
	UpstreamTimeoutMs int         `yaml:"upstream_timeout_ms" json:"upstream_timeout_ms"`

	RetryCount   int           `yaml:"retry_count" json:"retry_count"`
	RetryDelay   time.Duration `yaml:"-" json:"-"`
	RetryDelayMs int           `yaml:"retry_delay_ms" json:"retry_delay_ms"`

	BodySizeLimit  int64  `yaml:"body_size_limit" json:"body_size_limit"`
	HealthCheckPath string `yaml:"health_check_path" json:"health_check_path"`
	StatsPath       string `yaml:"stats_path" json:"stats_path"`

	MetricsEnabled bool   `yaml:"metrics_enabled" json:"metrics_enabled"`
	AdminKey       string `yaml:"admin_key" json:"admin_key,omitempty"`

	ConfigPath string `yaml:"-" json:"-"`
}

// resolveDurations populates the time.Duration fields derived from their
// millisecond counterparts. Called once after defaults/file/env merge.
func (c *Config) resolveDurations() {
	c.CooldownDuration = time.Duration(c.CooldownMs) * time.Millisecond
	c.UpstreamTimeout = time.Duration(c.UpstreamTimeoutMs) * time.Millisecond
	c.RetryDelay = time.Duration(c.RetryDelayMs) * time.Millisecond
}
