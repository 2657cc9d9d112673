package config

import "time"

const (
	envProvider       = "GRIDIRON_PROVIDER"
	envBaseURL        = "GRIDIRON_BASE_URL"
	envAPIKey         = "GRIDIRON_API_KEY"
	envTimezone       = "GRIDIRON_TIMEZONE"
	envStoragePath    = "GRIDIRON_STORAGE_PATH"
	envScoresInterval = "GRIDIRON_SCORES_INTERVAL"
	envChatInterval   = "GRIDIRON_CHAT_INTERVAL"
	envMetricsEnabled = "GRIDIRON_METRICS_ENABLED"
	envMetricsPort    = "GRIDIRON_METRICS_PORT"
	envOtlpEndpoint   = "GRIDIRON_OTLP_ENDPOINT"
	envOtlpInsecure   = "GRIDIRON_OTLP_INSECURE"

	defaultProvider       = "fixture"
	defaultStoragePath    = "gridiron.db"
	defaultScoresInterval = 15 * time.Second
	defaultChatInterval   = 500 * time.Millisecond
	defaultMetricsEnabled = false
	defaultMetricsPort    = "9091"
)
