package graph

import (
	"github.com/gomlx/pipegraph/devices"
	"github.com/gomlx/pipegraph/optypes"
	"github.com/gomlx/pipegraph/tensor"
	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type jsonReference struct {
	Name   string `json:"name"`
	Device string `json:"device"`
	Source *int   `json:"source,omitempty"`
}

type jsonNode struct {
	ID      int             `json:"id"`
	OpType  string          `json:"op"`
	Device  string          `json:"device"`
	Args    map[string]any  `json:"args,omitempty"`
	Inputs  []jsonReference `json:"inputs,omitempty"`
	Outputs []jsonReference `json:"outputs"`
}

type jsonGraph struct {
	Name    string          `json:"name"`
	Nodes   []jsonNode      `json:"nodes"`
	Inputs  []jsonReference `json:"inputs,omitempty"`
	Outputs []jsonReference `json:"outputs"`
}

func referencesToJSON(refs []tensor.Reference) []jsonReference {
	if len(refs) == 0 {
		return nil
	}
	out := make([]jsonReference, len(refs))
	for i, r := range refs {
		out[i] = jsonReference{Name: r.Name(), Device: r.Device().String()}
		if id, ok := r.Source(); ok {
			source := int(id)
			out[i].Source = &source
		}
	}
	return out
}

func referencesFromJSON(refs []jsonReference) ([]tensor.Reference, error) {
	if len(refs) == 0 {
		return nil, nil
	}
	out := make([]tensor.Reference, len(refs))
	for i, r := range refs {
		source := tensor.NoSource
		if r.Source != nil {
			source = tensor.NodeID(*r.Source)
		}
		ref, err := tensor.Parse(r.Name, r.Device, source)
		if err != nil {
			return nil, err
		}
		out[i] = ref
	}
	return out, nil
}

// MarshalJSON implements json.Marshaler. Feeds are not serialized.
func (g *Graph) MarshalJSON() ([]byte, error) {
	jg := jsonGraph{
		Name:    g.Name,
		Nodes:   make([]jsonNode, len(g.Nodes)),
		Inputs:  referencesToJSON(g.Inputs),
		Outputs: referencesToJSON(g.Outputs),
	}
	for i, node := range g.Nodes {
		jg.Nodes[i] = jsonNode{
			ID:      int(node.ID),
			OpType:  node.OpType.String(),
			Device:  node.Device.String(),
			Args:    node.Args,
			Inputs:  referencesToJSON(node.Inputs),
			Outputs: referencesToJSON(node.Outputs),
		}
	}
	return json.Marshal(jg)
}

// UnmarshalJSON implements json.Unmarshaler. Operator arguments are resolved again with their schemas.
func (g *Graph) UnmarshalJSON(data []byte) error {
	var jg jsonGraph
	if err := json.Unmarshal(data, &jg); err != nil {
		return errors.Wrap(err, "failed to decode graph")
	}
	decoded := Graph{Name: jg.Name, Nodes: make([]*Node, len(jg.Nodes))}
	var err error
	for i, jn := range jg.Nodes {
		node := &Node{ID: tensor.NodeID(jn.ID)}
		if node.OpType, err = optypes.OpTypeString(jn.OpType); err != nil {
			return errors.Wrapf(err, "graph %q, node #%d", jg.Name, jn.ID)
		}
		if node.Device, err = devices.Parse(jn.Device); err != nil {
			return errors.WithMessagef(err, "graph %q, node #%d", jg.Name, jn.ID)
		}
		schema, err := optypes.SchemaFor(node.OpType)
		if err != nil {
			return errors.WithMessagef(err, "graph %q, node #%d", jg.Name, jn.ID)
		}
		if node.Args, err = schema.Resolve(jn.Args); err != nil {
			return errors.WithMessagef(err, "graph %q, node #%d", jg.Name, jn.ID)
		}
		if node.Inputs, err = referencesFromJSON(jn.Inputs); err != nil {
			return errors.WithMessagef(err, "graph %q, node #%d inputs", jg.Name, jn.ID)
		}
		if node.Outputs, err = referencesFromJSON(jn.Outputs); err != nil {
			return errors.WithMessagef(err, "graph %q, node #%d outputs", jg.Name, jn.ID)
		}
		if len(node.Outputs) != schema.NumOutputs {
			return errors.Errorf("graph %q, node #%d (%s) has %d outputs, expected %d",
				jg.Name, jn.ID, node.OpType, len(node.Outputs), schema.NumOutputs)
		}
		wantSource := node.ID
		if node.OpType == optypes.ExternalSource {
			wantSource = tensor.NoSource
		}
		for _, output := range node.Outputs {
			if source, _ := output.Source(); source != wantSource {
				return errors.Errorf("graph %q, node #%d (%s) has output %s with the wrong source",
					jg.Name, jn.ID, node.OpType, output)
			}
		}
		for _, previous := range decoded.Nodes[:i] {
			if previous.ID == node.ID {
				return errors.Errorf("graph %q has node #%d more than once", jg.Name, jn.ID)
			}
		}
		decoded.Nodes[i] = node
	}
	if decoded.Inputs, err = referencesFromJSON(jg.Inputs); err != nil {
		return errors.WithMessagef(err, "graph %q inputs", jg.Name)
	}
	if decoded.Outputs, err = referencesFromJSON(jg.Outputs); err != nil {
		return errors.WithMessagef(err, "graph %q outputs", jg.Name)
	}
	decoded.index()

	// Every reference must resolve to a node of the graph, listed before its consumers.
	seen := make(map[tensor.NodeID]bool, len(decoded.Nodes))
	for _, node := range decoded.Nodes {
		producers, err := decoded.Producers(node)
		if err != nil {
			return err
		}
		for _, id := range producers {
			if !seen[id] {
				return errors.Errorf("graph %q: node #%d (%s) is listed before its input producer #%d",
					jg.Name, node.ID, node.OpType, id)
			}
		}
		seen[node.ID] = true
	}
	for _, output := range decoded.Outputs {
		if _, err := decoded.Producer(output); err != nil {
			return err
		}
	}
	*g = decoded
	return nil
}
