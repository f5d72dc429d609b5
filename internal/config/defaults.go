package config

// defaultConfig returns the configuration applied before any file or
// environment override is considered.
func defaultConfig() *Config {
	return &Config{
		Port:       8080,
		CORSOrigin: "*",
		LogLevel:   "info",

		SelectionPolicy:  PolicyRoundRobin,
		FailureThreshold: 3,
		CooldownMs:       60_000,
		ProbesToClose:    3,

		UpstreamBaseURL:   "generativelanguage.googleapis.com",
		UpstreamAPIVer:    "v1beta",
		UpstreamTimeoutMs: 30_000,

		RetryCount:   2,
		RetryDelayMs: 1000,

		BodySizeLimit:   10 << 20, // 10MiB
		HealthCheckPath: "/health",
		StatsPath:       "/stats",

		MetricsEnabled: false,
		AdminKey:       "",
	}
}
