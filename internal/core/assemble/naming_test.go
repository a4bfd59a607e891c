package assemble

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// =============================================================================
// Naming Tests
// =============================================================================

func TestNodeServiceName(t *testing.T) {
	assert.Equal(t, "bitcoin-node-0", NodeServiceName(0))
	assert.Equal(t, "bitcoin-node-12", NodeServiceName(12))
}

func TestNodeContainerName(t *testing.T) {
	assert.Equal(t, "simnet_0", NodeContainerName(0))
	assert.Equal(t, "simnet_7", NodeContainerName(7))
}

func TestExporterNames_TableDriven(t *testing.T) {
	tests := []struct {
		name          string
		index         int
		wantService   string
		wantContainer string
	}{
		{"first", 0, "prom-exporter-node-0", "exporter-node-0"},
		{"second", 1, "prom-exporter-node-1", "exporter-node-1"},
		{"double_digit", 10, "prom-exporter-node-10", "exporter-node-10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantService, ExporterServiceName(tt.index))
			assert.Equal(t, tt.wantContainer, ExporterContainerName(tt.index))
		})
	}
}
