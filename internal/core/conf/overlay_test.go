package conf

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const baseTemplate = `dnsseed=0
upnp=0

[regtest]
rpcuser=foo
rpcpassword=passwd
rpcport=18443
`

func mustTemplate(t *testing.T) *Template {
	t.Helper()
	tpl, err := ParseTemplate([]byte(baseTemplate), "config/bitcoin.conf")
	require.NoError(t, err)
	return tpl
}

// =============================================================================
// LoadBaseTemplate Tests
// =============================================================================

func TestLoadBaseTemplate_OK(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bitcoin.conf")
	require.NoError(t, os.WriteFile(path, []byte(baseTemplate), 0644))

	tpl, err := LoadBaseTemplate(path)
	require.NoError(t, err)
	assert.Equal(t, path, tpl.Path())
}

func TestLoadBaseTemplate_Missing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.conf")

	_, err := LoadBaseTemplate(path)
	require.ErrorIs(t, err, ErrMissingBaseTemplate)
	assert.Contains(t, err.Error(), path)
}

// =============================================================================
// Overlay Tests
// =============================================================================

func TestOverlay_OverrideWinsOverBase(t *testing.T) {
	node, err := mustTemplate(t).Overlay("regtest", "rpcuser=bar, debug")
	require.NoError(t, err)

	assert.Equal(t, "bar", node.Get("rpcuser"))
	assert.Equal(t, "1", node.Get("debug"))
	// Untouched base keys survive.
	assert.Equal(t, "passwd", node.Get("rpcpassword"))
	assert.Equal(t, "18443", node.Get("rpcport"))
}

func TestOverlay_EmptyOverrideKeepsBase(t *testing.T) {
	node, err := mustTemplate(t).Overlay("regtest", "")
	require.NoError(t, err)

	assert.Equal(t, "foo", node.Get("rpcuser"))
}

func TestOverlay_BareTokenIsBooleanFlag(t *testing.T) {
	node, err := mustTemplate(t).Overlay("regtest", "blocksonly")
	require.NoError(t, err)

	assert.Equal(t, "1", node.Get("blocksonly"))
}

func TestOverlay_SplitsOnFirstEquals(t *testing.T) {
	node, err := mustTemplate(t).Overlay("regtest", "rpcauth=user:salt$hash=extra")
	require.NoError(t, err)

	assert.Equal(t, "user:salt$hash=extra", node.Get("rpcauth"))
}

func TestOverlay_LastWriteWins(t *testing.T) {
	node, err := mustTemplate(t).Overlay("regtest", "rpcuser=first, rpcuser=second")
	require.NoError(t, err)

	assert.Equal(t, "second", node.Get("rpcuser"))
}

func TestOverlay_SkipsEmptyTokens(t *testing.T) {
	node, err := mustTemplate(t).Overlay("regtest", " , rpcuser=bar ,, ")
	require.NoError(t, err)

	assert.Equal(t, "bar", node.Get("rpcuser"))
}

func TestOverlay_MissingNetworkSection(t *testing.T) {
	tpl, err := ParseTemplate([]byte("dnsseed=0\n"), "config/bitcoin.conf")
	require.NoError(t, err)

	_, err = tpl.Overlay("regtest", "")
	assert.ErrorIs(t, err, ErrMissingNetworkSection)
}

func TestOverlay_BaseTemplateNotMutated(t *testing.T) {
	tpl := mustTemplate(t)

	first, err := tpl.Overlay("regtest", "rpcuser=changed")
	require.NoError(t, err)
	require.Equal(t, "changed", first.Get("rpcuser"))

	// A second overlay starts from the pristine base.
	second, err := tpl.Overlay("regtest", "")
	require.NoError(t, err)
	assert.Equal(t, "foo", second.Get("rpcuser"))
}

// =============================================================================
// Render Tests
// =============================================================================

func TestRender_SectionKeyedOutput(t *testing.T) {
	node, err := mustTemplate(t).Overlay("regtest", "debug")
	require.NoError(t, err)

	out, err := node.Render()
	require.NoError(t, err)

	text := string(out)
	assert.Contains(t, text, "[regtest]")
	assert.Contains(t, text, "debug=1")
	assert.Contains(t, text, "dnsseed=0")
	assert.False(t, strings.Contains(text, "debug = 1"), "rendered keys must not be padded")
}

// =============================================================================
// FileName Tests
// =============================================================================

func TestFileName(t *testing.T) {
	assert.Equal(t, "bitcoin.conf.0", FileName(0))
	assert.Equal(t, "bitcoin.conf.12", FileName(12))
}
