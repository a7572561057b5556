// Package metrics exports the outcome of a check run as a Prometheus
// textfile, for node_exporter's textfile collector on CI hosts.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360studio/assetcheck/report"
)

// Collectors holds the gauges describing one run.
type Collectors struct {
	present  *prometheus.GaugeVec
	missing  *prometheus.GaugeVec
	failures prometheus.Gauge
}

// NewCollectors registers the run gauges on reg.
func NewCollectors(reg prometheus.Registerer) *Collectors {
	c := &Collectors{
		present: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "assetcheck_requirement_present",
				Help: "Whether an asset requirement was fully satisfied (1) or not (0).",
			},
			[]string{"label", "path", "kind"},
		),
		missing: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "assetcheck_requirement_missing_members",
				Help: "Number of files missing from a present asset pack directory.",
			},
			[]string{"label"},
		),
		failures: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "assetcheck_failures",
			Help: "Number of requirements missing or incomplete in the last run.",
		}),
	}
	reg.MustRegister(c.present, c.missing, c.failures)
	return c
}

// Observe records a run summary.
func (c *Collectors) Observe(summary report.Summary) {
	for _, res := range summary.Results {
		req := res.Requirement

		value := 0.0
		if res.OK {
			value = 1
		}
		c.present.WithLabelValues(req.Label, req.Path, req.Kind.String()).Set(value)

		if req.IsDirectory() {
			c.missing.WithLabelValues(req.Label).Set(float64(len(res.Missing)))
		}
	}
	c.failures.Set(float64(summary.Failures))
}

// WriteTextfile writes summary to path in the Prometheus text format.
func WriteTextfile(path string, summary report.Summary) error {
	reg := prometheus.NewRegistry()
	NewCollectors(reg).Observe(summary)

	if err := prometheus.WriteToTextfile(path, reg); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
