// Package assemble combines allocated addresses, resolved configs, and
// resolved build instructions into compose service definitions. Pure
// construction of in-memory structures; all file I/O belongs to the
// shell. The output types come straight from compose-go so the emitted
// document is valid input for any compose-compatible runtime.
package assemble

import (
	"fmt"
	"strconv"

	"github.com/compose-spec/compose-go/v2/types"

	"github.com/simnet-io/simnet/internal/core/conf"
	"github.com/simnet-io/simnet/internal/core/domain"
	"github.com/simnet-io/simnet/internal/core/version"
)

// =============================================================================
// Options
// =============================================================================

// Options carries the fixed deployment parameters shared by every
// assembled service.
type Options struct {
	// Network is the compose network every service attaches to.
	Network string

	// ConfigDir is the directory holding per-node config artifacts,
	// relative to the compose file.
	ConfigDir string

	// RPC settings baked into each exporter sidecar.
	RPCPort     int
	RPCUser     string
	RPCPassword string

	// ExporterBasePort is the first published exporter port; node at
	// iteration index i publishes ExporterBasePort+i.
	ExporterBasePort int

	// ExporterMetricsPort is the port the exporter serves inside the
	// container.
	ExporterMetricsPort int

	// Sidecar images.
	ExporterImage     string
	PrometheusImage   string
	NodeExporterImage string
	GrafanaImage      string
}

// DefaultOptions returns the stock deployment parameters.
func DefaultOptions() Options {
	return Options{
		Network:             "simnet",
		ConfigDir:           "config",
		RPCPort:             18443,
		RPCUser:             "btc",
		RPCPassword:         "passwd",
		ExporterBasePort:    8335,
		ExporterMetricsPort: 9332,
		ExporterImage:       "jvstein/bitcoin-prometheus-exporter",
		PrometheusImage:     "prom/prometheus:latest",
		NodeExporterImage:   "prom/node-exporter:latest",
		GrafanaImage:        "grafana/grafana:latest",
	}
}

// =============================================================================
// Node Services
// =============================================================================

// NodeService builds the service definition for one node.
// index is the node's position in iteration order, nodeID its graph id;
// the config artifact is named by id, everything else by index.
func NodeService(opts Options, index, nodeID int, ipAddr string, build domain.BuildInstruction) types.ServiceConfig {
	name := NodeServiceName(index)
	return types.ServiceConfig{
		Name:          name,
		ContainerName: NodeContainerName(index),
		Build:         buildSection(build),
		Volumes: []types.ServiceVolumeConfig{
			{
				Type:   types.VolumeTypeBind,
				Source: fmt.Sprintf("./%s/%s", opts.ConfigDir, conf.FileName(nodeID)),
				Target: "/root/.bitcoin/bitcoin.conf",
			},
		},
		Networks: map[string]*types.ServiceNetworkConfig{
			opts.Network: {Ipv4Address: ipAddr},
		},
	}
}

// ExporterService builds the metrics exporter sidecar paired with the
// node at index. The published host port is ExporterBasePort+index so
// scrape targets stay predictable.
func ExporterService(opts Options, index int) types.ServiceConfig {
	return types.ServiceConfig{
		Name:          ExporterServiceName(index),
		ContainerName: ExporterContainerName(index),
		Image:         opts.ExporterImage,
		Environment: mapping(map[string]string{
			"BITCOIN_RPC_HOST":     NodeServiceName(index),
			"BITCOIN_RPC_PORT":     strconv.Itoa(opts.RPCPort),
			"BITCOIN_RPC_USER":     opts.RPCUser,
			"BITCOIN_RPC_PASSWORD": opts.RPCPassword,
		}),
		Ports: []types.ServicePortConfig{
			{
				Target:    uint32(opts.ExporterMetricsPort),
				Published: strconv.Itoa(opts.ExporterBasePort + index),
			},
		},
		Networks: plainNetwork(opts.Network),
	}
}

// buildSection translates a resolved build instruction into a compose
// build section. Source builds feed repo/branch to the build
// Dockerfile; release builds feed the architecture and download URL to
// the release Dockerfile.
func buildSection(build domain.BuildInstruction) *types.BuildConfig {
	if build.IsSource() {
		return &types.BuildConfig{
			Context:    ".",
			Dockerfile: version.SourceDockerfile,
			Args: mapping(map[string]string{
				"REPO":   build.Repo,
				"BRANCH": build.Branch,
			}),
		}
	}
	return &types.BuildConfig{
		Context:    ".",
		Dockerfile: version.ReleaseDockerfile,
		Args: mapping(map[string]string{
			"ARCH":            string(build.Arch),
			"BITCOIN_VERSION": build.Version,
			"BITCOIN_URL":     build.URL,
		}),
	}
}

// =============================================================================
// Monitoring Services
// =============================================================================

// GrafanaVolume is the named volume backing grafana's state.
const GrafanaVolume = "grafana-storage"

// MonitoringServices builds the fixed observability services: the
// metrics collector, the host metrics exporter, and the dashboard UI.
func MonitoringServices(opts Options) []types.ServiceConfig {
	return []types.ServiceConfig{
		{
			Name:          "prometheus",
			ContainerName: "prometheus",
			Image:         opts.PrometheusImage,
			Command:       types.ShellCommand{"--config.file=/etc/prometheus/prometheus.yml"},
			Ports: []types.ServicePortConfig{
				{Target: 9090, Published: "9090"},
			},
			Volumes: []types.ServiceVolumeConfig{
				{Type: types.VolumeTypeBind, Source: "./prometheus.yml", Target: "/etc/prometheus/prometheus.yml"},
			},
			Networks: plainNetwork(opts.Network),
		},
		{
			Name:          "node-exporter",
			ContainerName: "node-exporter",
			Image:         opts.NodeExporterImage,
			Command:       types.ShellCommand{"--path.procfs=/host/proc", "--path.sysfs=/host/sys"},
			Volumes: []types.ServiceVolumeConfig{
				{Type: types.VolumeTypeBind, Source: "/proc", Target: "/host/proc", ReadOnly: true},
				{Type: types.VolumeTypeBind, Source: "/sys", Target: "/host/sys", ReadOnly: true},
				{Type: types.VolumeTypeBind, Source: "/", Target: "/rootfs", ReadOnly: true},
			},
			Networks: plainNetwork(opts.Network),
		},
		{
			Name:          "grafana",
			ContainerName: "grafana",
			Image:         opts.GrafanaImage,
			Ports: []types.ServicePortConfig{
				{Target: 3000, Published: "3000"},
			},
			Volumes: []types.ServiceVolumeConfig{
				{Type: types.VolumeTypeVolume, Source: GrafanaVolume, Target: "/var/lib/grafana"},
			},
			Networks: plainNetwork(opts.Network),
		},
	}
}

// =============================================================================
// Helpers
// =============================================================================

func plainNetwork(name string) map[string]*types.ServiceNetworkConfig {
	return map[string]*types.ServiceNetworkConfig{name: {}}
}

func mapping(values map[string]string) types.MappingWithEquals {
	out := make(types.MappingWithEquals, len(values))
	for k, v := range values {
		v := v
		out[k] = &v
	}
	return out
}
