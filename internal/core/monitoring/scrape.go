// Package monitoring generates the scrape configuration for the metrics
// collector, sized to the number of nodes in the topology.
package monitoring

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/simnet-io/simnet/internal/core/assemble"
)

// =============================================================================
// Scrape Config Document
// =============================================================================

// ScrapeConfig is the prometheus configuration document.
type ScrapeConfig struct {
	Global        GlobalConfig `yaml:"global"`
	ScrapeConfigs []JobConfig  `yaml:"scrape_configs"`
}

// GlobalConfig holds collector-wide settings.
type GlobalConfig struct {
	ScrapeInterval string `yaml:"scrape_interval"`
}

// JobConfig is one scrape job with its static targets.
type JobConfig struct {
	JobName       string         `yaml:"job_name"`
	StaticConfigs []StaticConfig `yaml:"static_configs"`
}

// StaticConfig lists the addresses a job scrapes.
type StaticConfig struct {
	Targets []string `yaml:"targets"`
}

// =============================================================================
// Generation
// =============================================================================

// GenerateScrapeConfig builds the scrape configuration for nodeCount
// nodes: one bitcoin-exporters job targeting every per-node exporter
// sidecar on its in-network metrics port, plus the host metrics job.
func GenerateScrapeConfig(nodeCount, metricsPort int) *ScrapeConfig {
	targets := make([]string, 0, nodeCount)
	for i := 0; i < nodeCount; i++ {
		targets = append(targets, fmt.Sprintf("%s:%d", assemble.ExporterServiceName(i), metricsPort))
	}

	return &ScrapeConfig{
		Global: GlobalConfig{ScrapeInterval: "15s"},
		ScrapeConfigs: []JobConfig{
			{
				JobName:       "bitcoin-exporters",
				StaticConfigs: []StaticConfig{{Targets: targets}},
			},
			{
				JobName:       "node-exporter",
				StaticConfigs: []StaticConfig{{Targets: []string{"node-exporter:9100"}}},
			},
		},
	}
}

// Render serializes the document to YAML.
func (c *ScrapeConfig) Render() ([]byte, error) {
	out, err := yaml.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("failed to render scrape config: %w", err)
	}
	return out, nil
}
