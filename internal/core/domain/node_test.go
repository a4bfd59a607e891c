package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// NodeSpec Tests
// =============================================================================

func TestNodeSpec_Validate_OK(t *testing.T) {
	n := NodeSpec{ID: 0, Version: "25.0"}
	assert.NoError(t, n.Validate())
}

func TestNodeSpec_Validate_MissingVersion(t *testing.T) {
	n := NodeSpec{ID: 0}
	assert.ErrorIs(t, n.Validate(), ErrMissingVersion)
}

// =============================================================================
// NodeList Tests
// =============================================================================

func TestNewNodeList_PreservesOrder(t *testing.T) {
	nodes := []NodeSpec{
		{ID: 5, Version: "25.0"},
		{ID: 1, Version: "24.1"},
		{ID: 3, Version: "bitcoin/bitcoin#master"},
	}
	list, err := NewNodeList(nodes)
	require.NoError(t, err)

	got := list.Nodes()
	require.Len(t, got, 3)
	assert.Equal(t, 5, got[0].ID)
	assert.Equal(t, 1, got[1].ID)
	assert.Equal(t, 3, got[2].ID)
}

func TestNewNodeList_DuplicateID(t *testing.T) {
	_, err := NewNodeList([]NodeSpec{
		{ID: 0, Version: "25.0"},
		{ID: 0, Version: "24.1"},
	})
	assert.ErrorIs(t, err, ErrDuplicateNodeID)
}

func TestNewNodeList_InvalidNode(t *testing.T) {
	_, err := NewNodeList([]NodeSpec{{ID: 0}})
	assert.ErrorIs(t, err, ErrMissingVersion)
}

// =============================================================================
// Architecture Tests
// =============================================================================

func TestArchitecture_Normalize(t *testing.T) {
	tests := []struct {
		name string
		in   Architecture
		want Architecture
	}{
		{"arm64_alias", "arm64", "aarch64"},
		{"aarch64_passthrough", "aarch64", "aarch64"},
		{"x86_64_passthrough", "x86_64", "x86_64"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.in.Normalize())
		})
	}
}

// =============================================================================
// BuildInstruction Tests
// =============================================================================

func TestFromSource(t *testing.T) {
	b := FromSource("bitcoin/bitcoin", "master")
	assert.True(t, b.IsSource())
	assert.Equal(t, "bitcoin/bitcoin", b.Repo)
	assert.Equal(t, "master", b.Branch)
	assert.Empty(t, b.URL)
}

func TestFromRelease(t *testing.T) {
	b := FromRelease("aarch64", "25.0", "https://example.org/bitcoin-25.0.tar.gz")
	assert.False(t, b.IsSource())
	assert.Equal(t, Architecture("aarch64"), b.Arch)
	assert.Equal(t, "25.0", b.Version)
	assert.Empty(t, b.Repo)
}
