// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/panels"
)

// BuildOverview constructs the MPT Overview dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("MPT Overview").
		Uid("mpt-overview").
		Tags([]string{"mpt", "meli-product-tracker"}).
		Refresh("30s").
		Time("now-6h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	// Row 1: Overview.
	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	// Row 2: HTTP.
	b.WithRow(dashboard.NewRowBuilder("HTTP").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()).
		WithPanel(panels.ErrorRate()))

	// Row 3: MercadoLibre API.
	b.WithRow(dashboard.NewRowBuilder("MercadoLibre API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()).
		WithPanel(panels.TokenExchanges()))

	// Row 4: Pipeline.
	b.WithRow(dashboard.NewRowBuilder("Pipeline").
		WithPanel(panels.RunsRate()).
		WithPanel(panels.RunDuration()).
		WithPanel(panels.ProgressGauge()))

	// Row 5: Enrichment.
	b.WithRow(dashboard.NewRowBuilder("Enrichment").
		WithPanel(panels.EnrichedRate()).
		WithPanel(panels.SubqueryFailures()).
		WithPanel(panels.MalformedItems()))

	// Row 6: Summaries.
	b.WithRow(dashboard.NewRowBuilder("Summaries").
		WithPanel(panels.SummaryDuration()).
		WithPanel(panels.FragmentsRate()))

	// Row 7: Notifications.
	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationFailures()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
