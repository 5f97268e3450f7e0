// Package validate checks generated dashboards and rules for parse errors
// and references to unknown metrics.
package validate

import (
	"fmt"
	"strings"

	"github.com/grafana/grafana-foundation-sdk/go/cog/variants"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/prometheus/prometheus/promql/parser"

	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/rules"
)

// Result collects validation errors and warnings.
type Result struct {
	Errors   []string
	Warnings []string
}

// Ok reports whether validation passed without errors.
func (r Result) Ok() bool {
	return len(r.Errors) == 0
}

func (r *Result) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Result) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

// Dashboard validates every Prometheus query in a built dashboard: each
// expression must parse as PromQL and reference only known metrics.
func Dashboard(dash dashboard.Dashboard, known map[string]bool) Result {
	var res Result

	for _, outer := range dash.Panels {
		if outer.Panel != nil {
			checkPanel(&res, *outer.Panel, known)
		}
		if outer.RowPanel != nil {
			for _, p := range outer.RowPanel.Panels {
				checkPanel(&res, p, known)
			}
		}
	}

	return res
}

// RuleCR validates every expression in a PrometheusRule custom resource.
func RuleCR(cr rules.PrometheusRule, known map[string]bool) Result {
	var res Result

	for _, group := range cr.Spec.Groups {
		for _, rule := range group.Rules {
			name := rule.Record
			if name == "" {
				name = rule.Alert
			}
			checkExpr(&res, "rule "+name, rule.Expr, known)
		}
	}

	return res
}

func checkPanel(res *Result, p dashboard.Panel, known map[string]bool) {
	title := "(untitled)"
	if p.Title != nil {
		title = *p.Title
	}

	if len(p.Targets) == 0 {
		res.warnf("panel %q has no targets", title)
		return
	}

	for _, t := range p.Targets {
		expr, ok := targetExpr(t)
		if !ok {
			res.warnf("panel %q has a non-Prometheus target", title)
			continue
		}
		checkExpr(res, fmt.Sprintf("panel %q", title), expr, known)
	}
}

func targetExpr(t variants.Dataquery) (string, bool) {
	switch q := t.(type) {
	case prometheus.Dataquery:
		return q.Expr, true
	case *prometheus.Dataquery:
		return q.Expr, true
	default:
		return "", false
	}
}

func checkExpr(res *Result, where, expr string, known map[string]bool) {
	parsed, err := parser.ParseExpr(expr)
	if err != nil {
		res.errorf("%s: invalid PromQL %q: %v", where, expr, err)
		return
	}

	parser.Inspect(parsed, func(node parser.Node, _ []parser.Node) error {
		vs, ok := node.(*parser.VectorSelector)
		if !ok {
			return nil
		}
		if vs.Name == "" {
			res.warnf("%s: selector without a metric name in %q", where, expr)
			return nil
		}
		if !knownMetric(vs.Name, known) {
			res.errorf("%s: unknown metric %q", where, vs.Name)
		}
		return nil
	})
}

// knownMetric accepts exact names plus histogram series suffixes
// (_bucket, _sum, _count) of known histograms.
func knownMetric(name string, known map[string]bool) bool {
	if known[name] {
		return true
	}
	for _, suffix := range []string{"_bucket", "_sum", "_count"} {
		if base, ok := strings.CutSuffix(name, suffix); ok && known[base] {
			return true
		}
	}
	return false
}
