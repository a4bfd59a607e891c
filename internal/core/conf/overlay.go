package conf

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	ini "gopkg.in/ini.v1"
)

func init() {
	// bitcoind wants bare key=value lines, not "key = value".
	ini.PrettyFormat = false
}

// =============================================================================
// Template
// =============================================================================

// Template is a loaded base configuration. It keeps the raw bytes so
// every overlay starts from a fresh, independent parse; the template
// itself is never mutated.
type Template struct {
	raw  []byte
	path string
}

// LoadBaseTemplate reads and parses the base template file. An
// unreadable file is ErrMissingBaseTemplate wrapped with the path.
func LoadBaseTemplate(path string) (*Template, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, &TemplateError{Path: path, Err: ErrMissingBaseTemplate}
	}
	return ParseTemplate(raw, path)
}

// ParseTemplate builds a Template from raw bytes, validating that they
// parse as a section-keyed key=value document.
func ParseTemplate(raw []byte, path string) (*Template, error) {
	if _, err := ini.Load(raw); err != nil {
		return nil, &TemplateError{Path: path, Err: fmt.Errorf("failed to parse template: %w", err)}
	}
	return &Template{raw: raw, path: path}, nil
}

// Path returns where the template was loaded from.
func (t *Template) Path() string { return t.path }

// Overlay applies a node's override string onto a copy of the template
// and returns the node's resolved configuration. The override string is
// split on commas; empty tokens are ignored; "key=value" splits on the
// first "=", a bare token becomes "token=1". Later tokens win over
// earlier ones and every override wins over the base value. The target
// network section must exist in the template.
//
// Example:
//
//	node, _ := tpl.Overlay("regtest", "rpcuser=bar, debug")
//	// [regtest] now has rpcuser=bar and debug=1
func (t *Template) Overlay(network, overrides string) (*NodeConfig, error) {
	file, err := ini.Load(t.raw)
	if err != nil {
		return nil, &TemplateError{Path: t.path, Err: fmt.Errorf("failed to parse template: %w", err)}
	}

	section, err := file.GetSection(network)
	if err != nil {
		return nil, &TemplateError{Path: t.path, Err: fmt.Errorf("%w: %q", ErrMissingNetworkSection, network)}
	}

	for _, token := range strings.Split(overrides, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		key, value, found := strings.Cut(token, "=")
		if !found {
			value = "1"
		}
		section.Key(key).SetValue(value)
	}

	return &NodeConfig{file: file, network: network}, nil
}

// =============================================================================
// Node Config
// =============================================================================

// NodeConfig is one node's fully resolved configuration document.
type NodeConfig struct {
	file    *ini.File
	network string
}

// Get returns the value of key in the network section, or "" when the
// key is absent.
func (c *NodeConfig) Get(key string) string {
	return c.file.Section(c.network).Key(key).String()
}

// Render emits the document in the section-keyed key=value format.
func (c *NodeConfig) Render() ([]byte, error) {
	var buf bytes.Buffer
	if _, err := c.file.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render node config: %w", err)
	}
	return buf.Bytes(), nil
}

// FileName returns the conventional artifact name for a node's resolved
// configuration: the base name suffixed with the node id.
//
// Example:
//
//	FileName(3) // "bitcoin.conf.3"
func FileName(nodeID int) string {
	return fmt.Sprintf("bitcoin.conf.%d", nodeID)
}
