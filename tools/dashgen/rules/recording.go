package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "mpt-recording-rules",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mpt-recording",
					Rules: []Rule{
						{
							Record: "mpt:http_requests:rate5m",
							Expr:   `sum(rate(mpt_http_requests_total[5m]))`,
						},
						{
							Record: "mpt:http_errors:rate5m",
							Expr:   `sum(rate(mpt_http_requests_total{status=~"5.."}[5m]))`,
						},
						{
							Record: "mpt:pipeline_runs:rate5m",
							Expr:   `sum(rate(mpt_pipeline_runs_total[5m]))`,
						},
						{
							Record: "mpt:enriched_items:rate5m",
							Expr:   `rate(mpt_enriched_items_total[5m])`,
						},
						{
							Record: "mpt:subquery_failures:rate5m",
							Expr:   `sum(rate(mpt_subquery_failures_total[5m]))`,
						},
						{
							Record: "mpt:meli_api_calls:rate5m",
							Expr:   `rate(mpt_meli_api_calls_total[5m])`,
						},
					},
				},
			},
		},
	}
}
