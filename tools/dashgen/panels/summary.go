package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// SummaryDuration returns a timeseries panel showing p50 and p95 summary
// generation latencies.
func SummaryDuration() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Summary Duration").
		Description("LLM summary stream duration percentiles").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`histogram_quantile(0.50, sum(rate(mpt_summary_duration_seconds_bucket{job="meli-product-tracker"}[5m])) by (le))`,
			"p50",
			"A",
		)).
		WithTarget(PromQuery(
			`histogram_quantile(0.95, sum(rate(mpt_summary_duration_seconds_bucket{job="meli-product-tracker"}[5m])) by (le))`,
			"p95",
			"B",
		)).
		Unit("s").
		FillOpacity(10).
		LineWidth(2).
		Legend(TableLegend("mean", "max")).
		Tooltip(MultiTooltip()).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}

// FragmentsRate returns a timeseries panel showing streamed summary
// fragments per second.
func FragmentsRate() *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title("Fragments Rate").
		Description("Summary text fragments streamed to clients per second").
		Datasource(DSRef()).
		Height(TSHeight).
		Span(TSWidth).
		WithTarget(PromQuery(
			`sum(rate(mpt_summary_fragments_total{job="meli-product-tracker"}[5m]))`,
			"fragments/s", "A",
		)).
		FillOpacity(10).
		LineWidth(2).
		Thresholds(ThresholdsGreenOnly()).
		ColorScheme(ColorSchemePaletteClassic()).
		DrawStyle(common.GraphDrawStyleLine)
}
