// Package version classifies a node's requested version string and
// produces the matching build instruction: compile a git branch from
// source, or pull a released binary for the target architecture.
package version

import (
	"errors"
	"fmt"
	"strings"

	"github.com/simnet-io/simnet/internal/core/domain"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrEmptyVersion means the node spec carried no version to resolve.
	ErrEmptyVersion = errors.New("version string is empty")

	// ErrArchitectureUnknown means a release build was requested but no
	// target architecture is known. Callers decide whether to abort or
	// retry with a fallback architecture; resolution never guesses.
	ErrArchitectureUnknown = errors.New("target architecture is unknown")

	// ErrMalformedSourceRef means a source reference had an empty
	// repository or branch part.
	ErrMalformedSourceRef = errors.New("malformed source reference, want owner/repo#branch")
)

// =============================================================================
// Build Files
// =============================================================================

// Dockerfiles consumed by the two build instruction kinds.
const (
	SourceDockerfile  = "Dockerfile_build"
	ReleaseDockerfile = "Dockerfile_release"
)

// releaseURLTemplate builds the download location of a released binary.
// Substitutions: version, version, architecture.
const releaseURLTemplate = "https://bitcoincore.org/bin/bitcoin-core-%s/bitcoin-%s-%s-linux-gnu.tar.gz"

// =============================================================================
// Resolver
// =============================================================================

// Resolve classifies version and returns the node's build instruction.
//
// A string containing both a path separator and a "#" is a source
// reference "owner/repo#branch", split on the first "#". Anything else
// is a released version tag resolved to a deterministic download URL
// for arch. A "#" without a path separator is treated as a release tag,
// not a source reference.
//
// Example:
//
//	Resolve("bitcoin/bitcoin#master", "")        // source: bitcoin/bitcoin @ master
//	Resolve("25.0", "aarch64")                   // release: ...bitcoin-25.0-aarch64-linux-gnu.tar.gz
func Resolve(version string, arch domain.Architecture) (domain.BuildInstruction, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		return domain.BuildInstruction{}, ErrEmptyVersion
	}

	if strings.Contains(version, "/") && strings.Contains(version, "#") {
		repo, branch, _ := strings.Cut(version, "#")
		if repo == "" || branch == "" {
			return domain.BuildInstruction{}, fmt.Errorf("%w: %q", ErrMalformedSourceRef, version)
		}
		return domain.FromSource(repo, branch), nil
	}

	arch = arch.Normalize()
	if arch == "" {
		return domain.BuildInstruction{}, fmt.Errorf("%w: cannot build release URL for version %q", ErrArchitectureUnknown, version)
	}
	url := fmt.Sprintf(releaseURLTemplate, version, version, arch)
	return domain.FromRelease(arch, version, url), nil
}
