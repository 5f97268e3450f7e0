package main

import "errors"

// KnownMetrics is the set of metric names exported by meli-product-tracker
// plus recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// HTTP metrics.
	"mpt_http_request_duration_seconds": true,
	"mpt_http_requests_total":           true,

	// Health metrics.
	"mpt_healthz_up": true,
	"mpt_readyz_up":  true,

	// Pipeline metrics.
	"mpt_pipeline_runs_total":       true,
	"mpt_pipeline_duration_seconds": true,
	"mpt_pipeline_progress_ratio":   true,
	"mpt_enriched_items_total":      true,
	"mpt_malformed_items_total":     true,
	"mpt_subquery_failures_total":   true,

	// MercadoLibre API metrics.
	"mpt_meli_api_calls_total":        true,
	"mpt_meli_daily_usage":            true,
	"mpt_meli_daily_limit_hits_total": true,
	"mpt_token_exchanges_total":       true,

	// Summary metrics.
	"mpt_summary_duration_seconds": true,
	"mpt_summary_fragments_total":  true,

	// Notification metrics.
	"mpt_notification_failures_total": true,

	// Recording rules.
	"mpt:http_requests:rate5m":     true,
	"mpt:http_errors:rate5m":       true,
	"mpt:pipeline_runs:rate5m":     true,
	"mpt:enriched_items:rate5m":    true,
	"mpt:subquery_failures:rate5m": true,
	"mpt:meli_api_calls:rate5m":    true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
