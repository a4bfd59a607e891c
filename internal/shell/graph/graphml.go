// Package graph loads GraphML topology files into the minimal graph
// view the compiler consumes. The compiler never sees XML; everything
// downstream works on domain.Graph.
package graph

import (
	"encoding/xml"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/simnet-io/simnet/internal/core/domain"
)

// =============================================================================
// Errors
// =============================================================================

var (
	// ErrInvalidNodeID means a node id could not be parsed as an integer.
	ErrInvalidNodeID = errors.New("node id is not an integer")
)

// Node attribute names recognized in <key> declarations.
const (
	attrVersion       = "version"
	attrBitcoinConfig = "bitcoin_config"
	attrConf          = "conf"
)

// =============================================================================
// GraphML Document
// =============================================================================

type graphmlDoc struct {
	XMLName xml.Name     `xml:"graphml"`
	Keys    []graphmlKey `xml:"key"`
	Graph   graphmlGraph `xml:"graph"`
}

type graphmlKey struct {
	ID       string `xml:"id,attr"`
	For      string `xml:"for,attr"`
	AttrName string `xml:"attr.name,attr"`
}

type graphmlGraph struct {
	Nodes []graphmlNode `xml:"node"`
	Edges []graphmlEdge `xml:"edge"`
}

type graphmlNode struct {
	ID   string        `xml:"id,attr"`
	Data []graphmlData `xml:"data"`
}

// Edges carry topology links; the compiler does not consume them, but
// decoding them keeps malformed documents from slipping through.
type graphmlEdge struct {
	Source string `xml:"source,attr"`
	Target string `xml:"target,attr"`
}

type graphmlData struct {
	Key   string `xml:"key,attr"`
	Value string `xml:",chardata"`
}

// =============================================================================
// Loading
// =============================================================================

// LoadGraphML reads a GraphML topology file and returns its nodes in
// document order. Node ids must be unique integers; a node without a
// conf attribute falls back to the conventional template name.
func LoadGraphML(path string) (domain.Graph, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read topology file %s: %w", path, err)
	}
	return parseGraphML(raw)
}

func parseGraphML(raw []byte) (domain.Graph, error) {
	var doc graphmlDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse GraphML: %w", err)
	}

	// Key declarations map data ids to attribute names.
	attrByKey := make(map[string]string, len(doc.Keys))
	for _, key := range doc.Keys {
		if key.For == "" || key.For == "node" {
			attrByKey[key.ID] = key.AttrName
		}
	}

	nodes := make([]domain.NodeSpec, 0, len(doc.Graph.Nodes))
	for _, n := range doc.Graph.Nodes {
		id, err := strconv.Atoi(n.ID)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrInvalidNodeID, n.ID)
		}

		spec := domain.NodeSpec{ID: id, ConfFile: domain.DefaultConfFile}
		for _, data := range n.Data {
			// Attribute keys may be declared ("d0" -> "version") or
			// used directly as names; accept both.
			name := attrByKey[data.Key]
			if name == "" {
				name = data.Key
			}
			switch name {
			case attrVersion:
				spec.Version = data.Value
			case attrBitcoinConfig:
				spec.BitcoinConfig = data.Value
			case attrConf:
				if data.Value != "" {
					spec.ConfFile = data.Value
				}
			}
		}
		nodes = append(nodes, spec)
	}

	return domain.NewNodeList(nodes)
}
