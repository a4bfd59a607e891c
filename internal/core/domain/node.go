// Package domain holds the core types of the topology compiler.
// Everything here is a plain value type with no I/O; the shell packages
// load and persist these, the core packages transform them.
package domain

import "errors"

// =============================================================================
// Node Errors
// =============================================================================

var (
	ErrDuplicateNodeID = errors.New("duplicate node id in topology")
	ErrMissingVersion  = errors.New("node has no version attribute")
)

// =============================================================================
// Node Spec
// =============================================================================

// DefaultConfFile is the base configuration template a node falls back to
// when its spec does not name one.
const DefaultConfFile = "bitcoin.conf"

// NodeSpec describes one simulated node as declared in the topology file.
type NodeSpec struct {
	// ID is the node's stable integer identifier from the topology file.
	// IDs are unique within a graph but are not required to be contiguous,
	// so they must not be confused with a node's iteration index.
	ID int `json:"id"`

	// Version is either a released version tag ("25.0") or a
	// source reference of the form "owner/repo#branch".
	Version string `json:"version"`

	// BitcoinConfig holds comma-separated "key[=value]" override tokens
	// applied on top of the base configuration template. Optional.
	BitcoinConfig string `json:"bitcoin_config,omitempty"`

	// ConfFile names the base configuration template for this node,
	// relative to the config directory. Defaults to DefaultConfFile.
	ConfFile string `json:"conf,omitempty"`
}

// Validate checks the invariants a loader must guarantee before handing
// nodes to the compiler.
func (n NodeSpec) Validate() error {
	if n.Version == "" {
		return ErrMissingVersion
	}
	return nil
}

// =============================================================================
// Graph
// =============================================================================

// Graph is the minimal view of a loaded topology the compiler works
// against. Implementations must return nodes in a stable order; that
// order drives address and port assignment, so it must not change
// between calls. The graph is immutable once loaded.
type Graph interface {
	Nodes() []NodeSpec
}

// NodeList is a Graph backed by a slice, in declaration order.
type NodeList []NodeSpec

// Nodes returns the nodes in declaration order.
func (l NodeList) Nodes() []NodeSpec { return l }

// NewNodeList builds a NodeList after checking id uniqueness and
// per-node invariants.
func NewNodeList(nodes []NodeSpec) (NodeList, error) {
	seen := make(map[int]bool, len(nodes))
	for _, n := range nodes {
		if seen[n.ID] {
			return nil, ErrDuplicateNodeID
		}
		seen[n.ID] = true
		if err := n.Validate(); err != nil {
			return nil, err
		}
	}
	return NodeList(nodes), nil
}

// =============================================================================
// Architecture
// =============================================================================

// Architecture is a machine architecture name as used in release
// download URLs ("x86_64", "aarch64").
type Architecture string

// Normalize maps reported architecture names to the canonical alias the
// release URL template expects. Currently only "arm64" differs from its
// canonical name.
func (a Architecture) Normalize() Architecture {
	if a == "arm64" {
		return "aarch64"
	}
	return a
}
