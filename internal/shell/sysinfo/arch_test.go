package sysinfo

import (
	"context"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simnet-io/simnet/internal/core/domain"
)

// =============================================================================
// Static Detector Tests
// =============================================================================

func TestStatic_Detect(t *testing.T) {
	arch, err := Static("x86_64").Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Architecture("x86_64"), arch)
}

func TestStatic_Normalizes(t *testing.T) {
	arch, err := Static("arm64").Detect(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.Architecture("aarch64"), arch)
}

func TestStatic_EmptyFails(t *testing.T) {
	_, err := Static("").Detect(context.Background())
	assert.ErrorIs(t, err, ErrArchitectureUndetected)
}

// =============================================================================
// Uname Detector Tests
// =============================================================================

func TestUname_DetectReturnsNonEmpty(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uname not available on windows")
	}
	arch, err := Uname{}.Detect(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, arch)
	// The normalized alias never leaks the raw name.
	assert.NotEqual(t, domain.Architecture("arm64"), arch)
}
