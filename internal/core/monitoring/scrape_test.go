package monitoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// =============================================================================
// GenerateScrapeConfig Tests
// =============================================================================

func TestGenerateScrapeConfig_OneTargetPerNode(t *testing.T) {
	cfg := GenerateScrapeConfig(3, 9332)

	require.Len(t, cfg.ScrapeConfigs, 2)
	exporters := cfg.ScrapeConfigs[0]
	assert.Equal(t, "bitcoin-exporters", exporters.JobName)
	require.Len(t, exporters.StaticConfigs, 1)
	assert.Equal(t, []string{
		"prom-exporter-node-0:9332",
		"prom-exporter-node-1:9332",
		"prom-exporter-node-2:9332",
	}, exporters.StaticConfigs[0].Targets)
}

func TestGenerateScrapeConfig_ZeroNodes(t *testing.T) {
	cfg := GenerateScrapeConfig(0, 9332)

	require.Len(t, cfg.ScrapeConfigs, 2)
	assert.Empty(t, cfg.ScrapeConfigs[0].StaticConfigs[0].Targets)
	// The host metrics job is always present.
	assert.Equal(t, "node-exporter", cfg.ScrapeConfigs[1].JobName)
}

// =============================================================================
// Render Tests
// =============================================================================

func TestRender_RoundTrips(t *testing.T) {
	out, err := GenerateScrapeConfig(2, 9332).Render()
	require.NoError(t, err)

	var parsed ScrapeConfig
	require.NoError(t, yaml.Unmarshal(out, &parsed))
	assert.Equal(t, "15s", parsed.Global.ScrapeInterval)
	assert.Len(t, parsed.ScrapeConfigs[0].StaticConfigs[0].Targets, 2)
}
