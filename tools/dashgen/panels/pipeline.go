package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RunsRate returns a timeseries panel showing pipeline runs per minute
// by outcome.
func RunsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Runs / min").
		Description("Enrichment pipeline runs per minute by outcome").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(mpt_pipeline_runs_total{job="meli-product-tracker"}[5m])) by (outcome) * 60`,
			"{{outcome}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// RunDuration returns a timeseries panel showing the p95 pipeline run
// duration.
func RunDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Run Duration (p95)").
		Description("95th percentile enrichment pipeline run duration").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(mpt_pipeline_duration_seconds_bucket{job="meli-product-tracker"}[5m])) by (le))`,
			"p95",
			"A",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// ProgressGauge returns a gauge panel showing the completed fraction of
// the in-flight pipeline run.
func ProgressGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("Run Progress").
		Description("Completed fraction of the in-flight enrichment run").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`mpt_pipeline_progress_ratio{job="meli-product-tracker"}`, "", "A")).
		Unit("percentunit").
		Min(0).
		Max(1).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemeThresholds())
}

// EnrichedRate returns a timeseries panel showing enriched products per
// minute.
func EnrichedRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Products / min").
		Description("Rate of products enriched per minute").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`mpt:enriched_items:rate5m * 60`, "products/min", "A")).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// SubqueryFailures returns a timeseries panel showing degraded sub-query
// rates by kind.
func SubqueryFailures() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Degraded Sub-queries").
		Description("Rate of failed enrichment sub-queries per second by kind").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(
			`sum(rate(mpt_subquery_failures_total{job="meli-product-tracker"}[5m])) by (kind)`,
			"{{kind}}", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenYellowRed(0.1, 1)).
		ColorScheme(ColorSchemeThresholds()).
		DrawStyle(common.GraphDrawStyleLine)
}

// MalformedItems returns a stat panel showing malformed catalog entries
// skipped in the past 24 hours.
func MalformedItems() *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title("Malformed Items (24h)").
		Description("Catalog entries excluded as malformed in the last 24 hours").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(8).
		WithTarget(PromQuery(`increase(mpt_malformed_items_total{job="meli-product-tracker"}[24h])`, "", "A")).
		Thresholds(ThresholdsGreenYellowRed(1, 10)).
		ColorScheme(ColorSchemeThresholds()).
		ColorMode(common.BigValueColorModeBackground).
		GraphMode(common.BigValueGraphModeArea)
}
