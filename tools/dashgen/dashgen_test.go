package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/dashboards"
	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/rules"
	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/validate"
)

func TestDefaultConfigValid(t *testing.T) {
	t.Parallel()
	cfg := DefaultConfig()
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_EmptyOutputDir(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "", DashboardEnabled: true}
	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_NothingEnabled(t *testing.T) {
	t.Parallel()
	cfg := Config{OutputDir: "/tmp", DashboardEnabled: false, RulesEnabled: false}
	assert.Error(t, cfg.Validate())
}

func TestBuildOverviewDashboard(t *testing.T) {
	t.Parallel()

	builder := dashboards.BuildOverview()
	dash, err := builder.Build()
	require.NoError(t, err)

	// Verify dashboard metadata.
	require.NotNil(t, dash.Uid)
	assert.Equal(t, "mpt-overview", *dash.Uid)

	require.NotNil(t, dash.Title)
	assert.Equal(t, "MPT Overview", *dash.Title)

	// Verify template variable.
	require.NotNil(t, dash.Templating)
	assert.Len(t, dash.Templating.List, 1)
	assert.Equal(t, "datasource", dash.Templating.List[0].Name)

	// Verify we have 7 rows.
	assert.Len(t, dash.Panels, 7)

	// Count total inner panels.
	totalPanels := 0
	for _, p := range dash.Panels {
		if p.RowPanel != nil {
			totalPanels += len(p.RowPanel.Panels)
		}
	}
	assert.Equal(t, 20, totalPanels)

	// Validate PromQL and metrics.
	result := validate.Dashboard(dash, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
	assert.Empty(t, result.Warnings, "unexpected warnings: %v", result.Warnings)
}

func TestRecordingRules(t *testing.T) {
	t.Parallel()

	cr := rules.RecordingRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "mpt-recording-rules", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "mpt-recording", group.Name)
	require.Len(t, group.Rules, 6)

	expectedRecords := []string{
		"mpt:http_requests:rate5m",
		"mpt:http_errors:rate5m",
		"mpt:pipeline_runs:rate5m",
		"mpt:enriched_items:rate5m",
		"mpt:subquery_failures:rate5m",
		"mpt:meli_api_calls:rate5m",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedRecords[i], rule.Record)
		assert.NotEmpty(t, rule.Expr)
	}

	result := validate.RuleCR(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)

	// Verify YAML marshaling works.
	data, err := yaml.Marshal(cr)
	require.NoError(t, err)
	assert.Contains(t, string(data), "apiVersion: monitoring.coreos.com/v1")
}

func TestAlertRules(t *testing.T) {
	t.Parallel()

	cr := rules.AlertRules()
	assert.Equal(t, "monitoring.coreos.com/v1", cr.APIVersion)
	assert.Equal(t, "PrometheusRule", cr.Kind)
	assert.Equal(t, "mpt-alerts", cr.Metadata.Name)

	require.Len(t, cr.Spec.Groups, 1)
	group := cr.Spec.Groups[0]
	assert.Equal(t, "mpt-alerts", group.Name)
	require.Len(t, group.Rules, 8)

	expectedAlerts := []string{
		"MptDown",
		"MptReadinessDown",
		"MptHighErrorRate",
		"MptPipelineFailures",
		"MptSubqueryFailures",
		"MptMeliQuotaHigh",
		"MptMeliLimitReached",
		"MptNotificationFailures",
	}
	for i, rule := range group.Rules {
		assert.Equal(t, expectedAlerts[i], rule.Alert)
		assert.NotEmpty(t, rule.Expr)
		assert.NotEmpty(t, rule.Labels["severity"], "alert %s missing severity", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["summary"], "alert %s missing summary", rule.Alert)
		assert.NotEmpty(t, rule.Annotations["description"], "alert %s missing description", rule.Alert)
	}

	result := validate.RuleCR(cr, KnownMetrics)
	assert.True(t, result.Ok(), "validation errors: %v", result.Errors)
}

func TestValidateRejectsUnknownMetric(t *testing.T) {
	t.Parallel()

	cr := rules.PrometheusRule{
		Spec: rules.PrometheusRuleSpec{
			Groups: []rules.RuleGroup{{
				Name: "bad",
				Rules: []rules.Rule{
					{Record: "bad:rule", Expr: `rate(mpt_no_such_metric_total[5m])`},
					{Alert: "BadExpr", Expr: `rate(mpt_http_requests_total[5m]`},
				},
			}},
		},
	}

	result := validate.RuleCR(cr, KnownMetrics)
	assert.False(t, result.Ok())
	require.Len(t, result.Errors, 2)
	assert.Contains(t, result.Errors[0], "mpt_no_such_metric_total")
	assert.Contains(t, result.Errors[1], "invalid PromQL")
}

func TestRunWritesArtifacts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, false))

	for _, rel := range []string{
		filepath.Join("grafana", "data", "mpt-overview.json"),
		filepath.Join("prometheus", "mpt-recording-rules.yaml"),
		filepath.Join("prometheus", "mpt-alerts.yaml"),
	} {
		data, err := os.ReadFile(filepath.Join(dir, rel))
		require.NoError(t, err, "missing artifact %s", rel)
		assert.NotEmpty(t, data)
	}
}

func TestRunValidateOnlyWritesNothing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfg := Config{OutputDir: dir, DashboardEnabled: true, RulesEnabled: true}
	require.NoError(t, run(cfg, true))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}
