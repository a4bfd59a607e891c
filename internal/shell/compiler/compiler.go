// Package compiler drives the whole topology-to-deployment pipeline:
// architecture detection, topology loading, per-node config overlay,
// address allocation, version resolution, service assembly, and the
// final atomic write of the deployment specification. One Run produces
// either a complete, internally consistent artifact or none at all.
package compiler

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/simnet-io/simnet/internal/core/addr"
	"github.com/simnet-io/simnet/internal/core/assemble"
	"github.com/simnet-io/simnet/internal/core/conf"
	"github.com/simnet-io/simnet/internal/core/domain"
	"github.com/simnet-io/simnet/internal/core/monitoring"
	"github.com/simnet-io/simnet/internal/core/version"
	"github.com/simnet-io/simnet/internal/shell/sysinfo"
)

// =============================================================================
// Options
// =============================================================================

// Options carries one compilation run's parameters.
type Options struct {
	// GraphPath is the topology file to compile.
	GraphPath string

	// OutputPath is the canonical location of the deployment
	// specification artifact.
	OutputPath string

	// ConfigDir holds base config templates and receives the per-node
	// resolved config artifacts.
	ConfigDir string

	// NetworkMode is the config section the compiler operates under.
	NetworkMode string

	// Subnet is the CIDR block node addresses are drawn from.
	Subnet string

	// FallbackArch substitutes for a failed architecture detection.
	// Empty means detection failure aborts the run.
	FallbackArch domain.Architecture

	// Assemble holds the service assembly parameters.
	Assemble assemble.Options
}

// DefaultOptions returns the stock compilation parameters.
func DefaultOptions() Options {
	return Options{
		OutputPath:  "docker-compose.yml",
		ConfigDir:   "config",
		NetworkMode: "regtest",
		Subnet:      "100.0.0.0/8",
		Assemble:    assemble.DefaultOptions(),
	}
}

// =============================================================================
// Compiler
// =============================================================================

// LoadGraphFunc loads a topology; injected so the compiler stays
// decoupled from any particular graph file format.
type LoadGraphFunc func(path string) (domain.Graph, error)

// Compiler compiles a topology graph into a deployment specification.
type Compiler struct {
	opts      Options
	detector  sysinfo.Detector
	loadGraph LoadGraphFunc
	logger    *slog.Logger
}

// New creates a compiler. detector probes the host architecture and
// loadGraph reads the topology format.
func New(opts Options, detector sysinfo.Detector, loadGraph LoadGraphFunc, logger *slog.Logger) *Compiler {
	return &Compiler{
		opts:      opts,
		detector:  detector,
		loadGraph: loadGraph,
		logger:    logger,
	}
}

// Result summarizes a successful compilation.
type Result struct {
	Nodes      int
	Services   int
	Arch       domain.Architecture
	OutputPath string
}

// Run executes the pipeline. The stages are strictly ordered; any
// failure aborts the run before the artifact is written, and a prior
// artifact is removed up front so a failed run can never be mistaken
// for a successful one.
func (c *Compiler) Run(ctx context.Context) (*Result, error) {
	// 1. Architecture.
	arch, err := c.detector.Detect(ctx)
	if err != nil {
		if c.opts.FallbackArch == "" {
			return nil, fmt.Errorf("failed to detect architecture: %w", err)
		}
		arch = c.opts.FallbackArch.Normalize()
		c.logger.Warn("architecture detection failed, using fallback",
			"error", err,
			"arch", arch,
		)
	}
	c.logger.Info("detected architecture", "arch", arch)

	// 2. Remove any previous artifact. If the topology turns out to be
	// broken we must not leave a stale but plausible artifact behind.
	if err := os.Remove(c.opts.OutputPath); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to remove previous artifact %s: %w", c.opts.OutputPath, err)
	}

	// 3. Topology.
	g, err := c.loadGraph(c.opts.GraphPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load topology: %w", err)
	}
	nodes := g.Nodes()
	c.logger.Info("loaded topology", "path", c.opts.GraphPath, "nodes", len(nodes))

	// 4. Monitoring config sized to the node count.
	if err := c.writeScrapeConfig(len(nodes)); err != nil {
		return nil, err
	}

	// 5. Per-node pipeline.
	allocator, err := addr.NewAllocator(c.opts.Subnet)
	if err != nil {
		return nil, fmt.Errorf("failed to set up address allocator: %w", err)
	}

	set := assemble.NewServiceSet()
	templates := make(map[string]*conf.Template)
	for i, node := range nodes {
		if err := c.compileNode(set, templates, allocator, i, node, arch); err != nil {
			return nil, err
		}
	}

	// 6. Fixed monitoring services.
	for _, svc := range assemble.MonitoringServices(c.opts.Assemble) {
		if err := set.Add(svc); err != nil {
			return nil, fmt.Errorf("failed to assemble monitoring services: %w", err)
		}
	}

	// 7. One atomic serialize.
	project := assemble.Project(set, c.opts.Assemble.Network, allocator.Subnet())
	data, err := project.MarshalYAML()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize deployment spec: %w", err)
	}
	if err := writeAtomic(c.opts.OutputPath, data); err != nil {
		return nil, fmt.Errorf("failed to write deployment spec: %w", err)
	}

	c.logger.Info("wrote deployment spec",
		"path", c.opts.OutputPath,
		"services", set.Len(),
	)
	return &Result{
		Nodes:      len(nodes),
		Services:   set.Len(),
		Arch:       arch,
		OutputPath: c.opts.OutputPath,
	}, nil
}

// compileNode overlays the node's config, writes its artifact, allocates
// its address, resolves its version, and adds its service pair to set.
func (c *Compiler) compileNode(
	set *assemble.ServiceSet,
	templates map[string]*conf.Template,
	allocator *addr.Allocator,
	index int,
	node domain.NodeSpec,
	arch domain.Architecture,
) error {
	basePath := filepath.Join(c.opts.ConfigDir, node.ConfFile)
	if node.ConfFile == "" {
		basePath = filepath.Join(c.opts.ConfigDir, domain.DefaultConfFile)
	}
	if _, err := os.Stat(basePath); err != nil {
		return &MissingConfigError{Path: basePath}
	}

	template, ok := templates[basePath]
	if !ok {
		var err error
		template, err = conf.LoadBaseTemplate(basePath)
		if err != nil {
			return err
		}
		templates[basePath] = template
	}

	nodeConf, err := template.Overlay(c.opts.NetworkMode, node.BitcoinConfig)
	if err != nil {
		return err
	}
	rendered, err := nodeConf.Render()
	if err != nil {
		return err
	}
	artifactPath := filepath.Join(c.opts.ConfigDir, conf.FileName(node.ID))
	if err := os.WriteFile(artifactPath, rendered, 0644); err != nil {
		return fmt.Errorf("failed to write node config %s: %w", artifactPath, err)
	}

	ip, err := allocator.Next()
	if err != nil {
		return fmt.Errorf("failed to allocate address for node %d: %w", node.ID, err)
	}

	build, err := version.Resolve(node.Version, arch)
	if err != nil {
		return fmt.Errorf("failed to resolve version for node %d: %w", node.ID, err)
	}

	c.logger.Debug("compiled node",
		"index", index,
		"node", node.ID,
		"addr", ip.String(),
		"version", node.Version,
		"source_build", build.IsSource(),
	)

	if err := set.Add(assemble.NodeService(c.opts.Assemble, index, node.ID, ip.String(), build)); err != nil {
		return err
	}
	return set.Add(assemble.ExporterService(c.opts.Assemble, index))
}

// writeScrapeConfig emits prometheus.yml next to the deployment spec.
func (c *Compiler) writeScrapeConfig(nodeCount int) error {
	rendered, err := monitoring.GenerateScrapeConfig(nodeCount, c.opts.Assemble.ExporterMetricsPort).Render()
	if err != nil {
		return err
	}
	path := filepath.Join(filepath.Dir(c.opts.OutputPath), "prometheus.yml")
	if err := os.WriteFile(path, rendered, 0644); err != nil {
		return fmt.Errorf("failed to write scrape config %s: %w", path, err)
	}
	c.logger.Debug("wrote scrape config", "path", path, "targets", nodeCount)
	return nil
}

// =============================================================================
// Atomic Write
// =============================================================================

// writeAtomic stages data in a temp file in the target directory, then
// renames it over path. Readers either see the old artifact, no
// artifact, or the complete new one; never a partial write.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return err
	}
	return nil
}
