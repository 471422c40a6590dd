package sparql

import "github.com/geoknoesis/rdf-go/rdf"

// NodeRegistry maps blank-node labels to blank nodes so that a label
// appearing multiple times, within one response or across responses,
// resolves to the identical node. Each Client owns one registry; only the
// decoders mutate it.
//
// The registry is never cleared between queries. Not safe for
// unsynchronized concurrent use.
type NodeRegistry struct {
	nodes map[string]rdf.BlankNode
}

// NewNodeRegistry creates an empty registry.
func NewNodeRegistry() *NodeRegistry {
	return &NodeRegistry{nodes: make(map[string]rdf.BlankNode)}
}

// Node returns the blank node for label, creating and storing it on first
// use. Repeated calls with the same label return the identical node.
func (r *NodeRegistry) Node(label string) rdf.BlankNode {
	if node, ok := r.nodes[label]; ok {
		return node
	}
	node := rdf.BlankNode{ID: label}
	r.nodes[label] = node
	return node
}

// Reset discards all label mappings, starting a fresh blank-node scope.
func (r *NodeRegistry) Reset() {
	r.nodes = make(map[string]rdf.BlankNode)
}

// Len reports how many distinct labels the registry holds.
func (r *NodeRegistry) Len() int {
	return len(r.nodes)
}
