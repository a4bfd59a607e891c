// Package sysinfo detects the host machine architecture for release
// binary selection. Detection failures are explicit errors; callers
// choose between aborting and substituting a configured fallback.
package sysinfo

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/simnet-io/simnet/internal/core/domain"
)

// ErrArchitectureUndetected means the platform probe produced no usable
// architecture name.
var ErrArchitectureUndetected = errors.New("could not detect machine architecture")

// Detector reports the host machine architecture.
type Detector interface {
	Detect(ctx context.Context) (domain.Architecture, error)
}

// =============================================================================
// Uname Detector
// =============================================================================

// Uname detects the architecture by running "uname -m".
type Uname struct{}

// Detect runs the probe and normalizes the reported name. An exec
// failure or empty output is ErrArchitectureUndetected; no null-like
// value ever escapes.
func (Uname) Detect(ctx context.Context) (domain.Architecture, error) {
	out, err := exec.CommandContext(ctx, "uname", "-m").Output()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrArchitectureUndetected, err)
	}
	arch := domain.Architecture(strings.TrimSpace(string(out)))
	if arch == "" {
		return "", ErrArchitectureUndetected
	}
	return arch.Normalize(), nil
}

// =============================================================================
// Static Detector
// =============================================================================

// Static is a Detector that always reports a fixed architecture. Used
// for the --arch override and in tests.
type Static domain.Architecture

// Detect returns the fixed architecture.
func (s Static) Detect(context.Context) (domain.Architecture, error) {
	if s == "" {
		return "", ErrArchitectureUndetected
	}
	return domain.Architecture(s).Normalize(), nil
}
