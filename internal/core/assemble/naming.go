package assemble

import "fmt"

// =============================================================================
// Service Naming
// =============================================================================

// Index-based names use the node's position in graph iteration order,
// not its graph id; the two differ whenever topology ids are sparse.

// NodeServiceName generates the compose service name for a node.
// Pattern: bitcoin-node-{index}
func NodeServiceName(index int) string {
	return fmt.Sprintf("bitcoin-node-%d", index)
}

// NodeContainerName generates the container name for a node.
// Pattern: simnet_{index}
func NodeContainerName(index int) string {
	return fmt.Sprintf("simnet_%d", index)
}

// ExporterServiceName generates the compose service name for a node's
// metrics exporter sidecar.
// Pattern: prom-exporter-node-{index}
func ExporterServiceName(index int) string {
	return fmt.Sprintf("prom-exporter-node-%d", index)
}

// ExporterContainerName generates the container name for a node's
// metrics exporter sidecar.
// Pattern: exporter-node-{index}
func ExporterContainerName(index int) string {
	return fmt.Sprintf("exporter-node-%d", index)
}
