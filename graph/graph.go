// Package graph records a pipeline graph at definition time: which operators run, on which device, and how
// their outputs (tensor.Reference values) feed the next operators.
//
// A Builder creates the references of each operator output with the operator's NodeID as the source. Later,
// Build walks back from the requested outputs through the sources (of any device variant) to collect the
// operators needed, in topological order.
//
// Nothing is executed here: the resulting Graph can be rendered as text or serialized to JSON, to be handed
// over to an executor.
package graph

import (
	"maps"
	"slices"

	"github.com/gomlx/pipegraph/devices"
	"github.com/gomlx/pipegraph/optypes"
	"github.com/gomlx/pipegraph/tensor"
	"github.com/pkg/errors"
)

// ErrNoSource is returned when asking for the producer of a reference that has none, e.g. an input placeholder.
var ErrNoSource = errors.New("tensor reference has no source")

// Node is one operator recorded in the graph.
type Node struct {
	// ID of the node, the index in the Builder node table. It is the source of the node's Outputs.
	ID tensor.NodeID

	// OpType of the operator.
	OpType optypes.OpType

	// Device the operator runs on.
	Device devices.Device

	// Args are the operator arguments, resolved with its schema: defaults are filled in.
	Args map[string]any

	// Inputs to the operator, on the device the operator consumes them.
	Inputs []tensor.Reference

	// Outputs of the operator, on the operator's device.
	Outputs []tensor.Reference
}

// Graph is the result of Builder.Build: the operators needed to produce the requested outputs.
// It is read-only.
type Graph struct {
	Name string

	// Nodes in topological order: a node comes after the producers of all its inputs.
	Nodes []*Node

	// Inputs are the input placeholders the graph depends on.
	Inputs []tensor.Reference

	// Outputs requested in Builder.Build.
	Outputs []tensor.Reference

	// Feeds holds the realized data (*tensor.TensorCPU or *tensor.TensorListCPU) bound to the inputs with
	// Builder.Feed, indexed by input name. It is not serialized.
	Feeds map[string]any

	byID         map[tensor.NodeID]*Node
	placeholders map[string]tensor.NodeID
}

// index builds the lookup tables of the graph.
func (g *Graph) index() {
	g.byID = make(map[tensor.NodeID]*Node, len(g.Nodes))
	g.placeholders = make(map[string]tensor.NodeID)
	for _, node := range g.Nodes {
		g.byID[node.ID] = node
		if node.OpType == optypes.ExternalSource {
			g.placeholders[node.Outputs[0].Name()] = node.ID
		}
	}
}

// Node returns the node with the given id, or nil if the graph doesn't hold it.
func (g *Graph) Node(id tensor.NodeID) *Node {
	return g.byID[id]
}

// Producer returns the node producing the given reference: its source, or the placeholder node for inputs.
func (g *Graph) Producer(r tensor.Reference) (*Node, error) {
	id, ok := r.Source()
	if !ok {
		id, ok = g.placeholders[r.Name()]
		if !ok {
			return nil, errors.Wrapf(ErrNoSource, "tensor %s is not an input of graph %q", r, g.Name)
		}
	}
	node := g.byID[id]
	if node == nil {
		return nil, errors.Errorf("tensor %s points to node #%d, which is not part of graph %q", r, id, g.Name)
	}
	return node, nil
}

// Producers returns the ids of the nodes producing the inputs of node, without repetitions and in input order.
func (g *Graph) Producers(node *Node) ([]tensor.NodeID, error) {
	var ids []tensor.NodeID
	for _, input := range node.Inputs {
		producer, err := g.Producer(input)
		if err != nil {
			return nil, errors.WithMessagef(err, "input of node #%d (%s)", node.ID, node.OpType)
		}
		if !slices.Contains(ids, producer.ID) {
			ids = append(ids, producer.ID)
		}
	}
	return ids, nil
}

// FeedNames returns the sorted names of the inputs with realized data bound.
func (g *Graph) FeedNames() []string {
	return slices.Sorted(maps.Keys(g.Feeds))
}
