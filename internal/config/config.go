package config

import "time"

// Config holds runtime configuration for the data layer.
type Config struct {
	Provider       string
	BaseURL        string
	APIKey         string
	Timezone       string
	StoragePath    string
	ScoresInterval time.Duration
	ChatInterval   time.Duration
	Metrics        MetricsConfig
}

// MetricsConfig controls telemetry export.
type MetricsConfig struct {
	Enabled      bool
	Port         string
	OtlpEndpoint string
	OtlpInsecure bool
}

// Load reads configuration from environment variables with sensible defaults.
func Load() Config {
	return Config{
		Provider:       envOrDefault(envProvider, defaultProvider),
		BaseURL:        envOrDefault(envBaseURL, ""),
		APIKey:         envOrDefault(envAPIKey, ""),
		Timezone:       envOrDefault(envTimezone, ""),
		StoragePath:    envOrDefault(envStoragePath, defaultStoragePath),
		ScoresInterval: durationEnvOrDefault(envScoresInterval, defaultScoresInterval),
		ChatInterval:   durationEnvOrDefault(envChatInterval, defaultChatInterval),
		Metrics: MetricsConfig{
			Enabled:      boolEnvOrDefault(envMetricsEnabled, defaultMetricsEnabled),
			Port:         envOrDefault(envMetricsPort, defaultMetricsPort),
			OtlpEndpoint: envOrDefault(envOtlpEndpoint, ""),
			OtlpInsecure: boolEnvOrDefault(envOtlpInsecure, false),
		},
	}
}
