package domain

// =============================================================================
// Build Instruction
// =============================================================================

// BuildKind discriminates the two ways a node's software can be obtained.
type BuildKind string

const (
	// BuildFromSource compiles the node from a git repository branch.
	BuildFromSource BuildKind = "source"
	// BuildFromRelease downloads a released binary for the target
	// architecture.
	BuildFromRelease BuildKind = "release"
)

// BuildInstruction is the resolved decision for one node: exactly one of
// the source or release field sets is populated, selected by Kind.
type BuildInstruction struct {
	Kind BuildKind `json:"kind"`

	// Source fields (Kind == BuildFromSource).
	Repo   string `json:"repo,omitempty"`
	Branch string `json:"branch,omitempty"`

	// Release fields (Kind == BuildFromRelease).
	Arch    Architecture `json:"arch,omitempty"`
	Version string       `json:"version,omitempty"`
	URL     string       `json:"url,omitempty"`
}

// FromSource builds a source instruction.
//
// Example:
//
//	FromSource("bitcoin/bitcoin", "master")
func FromSource(repo, branch string) BuildInstruction {
	return BuildInstruction{Kind: BuildFromSource, Repo: repo, Branch: branch}
}

// FromRelease builds a release instruction with its download URL.
func FromRelease(arch Architecture, version, url string) BuildInstruction {
	return BuildInstruction{Kind: BuildFromRelease, Arch: arch, Version: version, URL: url}
}

// IsSource reports whether the instruction builds from a git branch.
func (b BuildInstruction) IsSource() bool {
	return b.Kind == BuildFromSource
}
