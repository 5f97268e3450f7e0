// Command dashgen generates the Grafana overview dashboard and Prometheus
// rule files for meli-product-tracker.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/dashboards"
	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/rules"
	"github.com/donaldgifford/meli-product-tracker/tools/dashgen/validate"
)

const generatedHeader = "# Code generated by dashgen. DO NOT EDIT.\n"

func main() {
	validateOnly := flag.Bool("validate", false, "validate generated artifacts without writing files")
	outputDir := flag.String("output", "", "override output directory")
	flag.Parse()

	cfg := DefaultConfig()
	if *outputDir != "" {
		cfg.OutputDir = *outputDir
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	if err := run(cfg, *validateOnly); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, validateOnly bool) error {
	dash, err := dashboards.BuildOverview().Build()
	if err != nil {
		return fmt.Errorf("building overview dashboard: %w", err)
	}

	for _, check := range []struct {
		name   string
		result validate.Result
	}{
		{"dashboard", validate.Dashboard(dash, KnownMetrics)},
		{"recording rules", validate.RuleCR(rules.RecordingRules(), KnownMetrics)},
		{"alert rules", validate.RuleCR(rules.AlertRules(), KnownMetrics)},
	} {
		if !check.result.Ok() {
			return fmt.Errorf("%s validation failed: %v", check.name, check.result.Errors)
		}
		for _, w := range check.result.Warnings {
			fmt.Fprintf(os.Stderr, "warning: %s: %s\n", check.name, w)
		}
	}

	if validateOnly {
		fmt.Println("validation passed")
		return nil
	}

	if cfg.DashboardEnabled {
		data, err := json.MarshalIndent(dash, "", "  ")
		if err != nil {
			return fmt.Errorf("marshaling dashboard: %w", err)
		}
		data = append(data, '\n')

		path := filepath.Join(cfg.OutputDir, "grafana", "data", "mpt-overview.json")
		if err := writeFile(path, data); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", path)
	}

	if cfg.RulesEnabled {
		for _, artifact := range []struct {
			file string
			cr   rules.PrometheusRule
		}{
			{"mpt-recording-rules.yaml", rules.RecordingRules()},
			{"mpt-alerts.yaml", rules.AlertRules()},
		} {
			data, err := yaml.Marshal(artifact.cr)
			if err != nil {
				return fmt.Errorf("marshaling %s: %w", artifact.file, err)
			}
			data = append([]byte(generatedHeader), data...)

			path := filepath.Join(cfg.OutputDir, "prometheus", artifact.file)
			if err := writeFile(path, data); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", path)
		}
	}

	return nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil { //nolint:gosec
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
