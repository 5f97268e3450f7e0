package rules

// AlertRules returns a PrometheusRule CR containing alert rules for
// meli-product-tracker operational monitoring.
func AlertRules() PrometheusRule {
	return PrometheusRule{
		APIVersion: "monitoring.coreos.com/v1",
		Kind:       "PrometheusRule",
		Metadata: PrometheusRuleMetadata{
			Name: "mpt-alerts",
			Labels: map[string]string{
				"prometheus": "system-rules-prometheus",
			},
		},
		Spec: PrometheusRuleSpec{
			Groups: []RuleGroup{
				{
					Name: "mpt-alerts",
					Rules: []Rule{
						{
							Alert: "MptDown",
							Expr:  `absent(up{job="meli-product-tracker"})`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "MercadoLibre Product Tracker is down",
								"description": "The meli-product-tracker job has been absent for more than 2 minutes.",
							},
						},
						{
							Alert: "MptReadinessDown",
							Expr:  `mpt_readyz_up == 0`,
							For:   "2m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "MercadoLibre Product Tracker readiness check is failing",
								"description": "The readiness probe has been reporting not-ready for more than 2 minutes. The service cannot obtain MercadoLibre access tokens.",
							},
						},
						{
							Alert: "MptHighErrorRate",
							Expr:  `mpt:http_errors:rate5m / mpt:http_requests:rate5m > 0.05`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "High HTTP error rate on MercadoLibre Product Tracker",
								"description": "More than 5% of HTTP requests are returning 5xx errors over the last 5 minutes.",
							},
						},
						{
							Alert: "MptPipelineFailures",
							Expr:  `sum(rate(mpt_pipeline_runs_total{outcome="error"}[15m])) > 0`,
							For:   "15m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Enrichment pipeline runs are failing",
								"description": "Pipeline runs have been ending in errors for more than 15 minutes.",
							},
						},
						{
							Alert: "MptSubqueryFailures",
							Expr:  `mpt:subquery_failures:rate5m > 0.1`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Enrichment sub-query failure rate is elevated",
								"description": "Visits or reviews sub-queries are failing at more than 0.1/s, so products are being served with degraded fields.",
							},
						},
						{
							Alert: "MptMeliQuotaHigh",
							Expr:  `mpt_meli_daily_usage > 4000`,
							For:   "5m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "MercadoLibre API daily usage is above 80% of the quota",
								"description": "Daily MercadoLibre API usage has exceeded 4000 calls (limit is 5000).",
							},
						},
						{
							Alert: "MptMeliLimitReached",
							Expr:  `increase(mpt_meli_daily_limit_hits_total[5m]) > 0`,
							For:   "0m",
							Labels: map[string]string{
								"severity": "critical",
							},
							Annotations: map[string]string{
								"summary":     "MercadoLibre API daily limit has been reached",
								"description": "The MercadoLibre API daily quota has been exhausted. Enrichment is paused until the window resets.",
							},
						},
						{
							Alert: "MptNotificationFailures",
							Expr:  `increase(mpt_notification_failures_total[5m]) > 0`,
							For:   "1m",
							Labels: map[string]string{
								"severity": "warning",
							},
							Annotations: map[string]string{
								"summary":     "Notification delivery failures detected",
								"description": "One or more refresh digests (Discord webhooks) have failed to send.",
							},
						},
					},
				},
			},
		},
	}
}
