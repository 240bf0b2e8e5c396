package graph

import (
	"fmt"
	"slices"
	"strings"

	"github.com/gomlx/pipegraph/devices"
	"github.com/gomlx/pipegraph/optypes"
	"github.com/gomlx/pipegraph/tensor"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Builder is used to define a pipeline graph, one operator at a time.
// See New.
//
// A Builder is not safe for concurrent use.
type Builder struct {
	name string

	// nodes is the node table: tensor.NodeID values index it.
	nodes []*Node

	// tensors maps every tensor name defined so far to its reference on the device where it is produced.
	tensors map[string]tensor.Reference

	// placeholders maps input names to their ExternalSource node.
	placeholders map[string]tensor.NodeID

	feeds map[string]any
}

// New creates a new Builder holding a pipeline graph in construction.
//
// Add inputs with ExternalSource and operators with AddOp, and then call Build with the outputs wanted.
func New(name string) *Builder {
	return &Builder{
		name:         name,
		tensors:      make(map[string]tensor.Reference),
		placeholders: make(map[string]tensor.NodeID),
		feeds:        make(map[string]any),
	}
}

// Name of the graph being built.
func (b *Builder) Name() string { return b.name }

// NumNodes returns the number of nodes recorded so far.
func (b *Builder) NumNodes() int { return len(b.nodes) }

// ExternalSource adds an input placeholder with the given name, to be fed with realized data.
//
// The returned reference has no source: the placeholder is found back by its name.
func (b *Builder) ExternalSource(name string, device devices.Device) (tensor.Reference, error) {
	if err := b.checkNewName(name); err != nil {
		return tensor.Reference{}, err
	}
	if !device.IsADevice() {
		return tensor.Reference{}, errors.Errorf("graph %q: input %q has invalid device %s", b.name, name, device)
	}
	ref := tensor.Make(name, device, tensor.NoSource)
	node := b.newNode(optypes.ExternalSource, device, map[string]any{}, nil)
	node.Outputs = []tensor.Reference{ref}
	b.tensors[name] = ref
	b.placeholders[name] = node.ID
	klog.V(1).Infof("graph %q: added input %s as node #%d", b.name, ref, node.ID)
	return ref, nil
}

// AddOp adds an operator running on device, with the given arguments and inputs, and returns the references
// to its outputs.
//
// Arguments are resolved with the operator schema (see optypes.SchemaFor). Inputs must have been created by
// this Builder. A CPU operator cannot consume GPU references, and a tensor produced on the GPU cannot be
// consumed as a CPU reference.
func (b *Builder) AddOp(opType optypes.OpType, device devices.Device, args map[string]any, inputs ...tensor.Reference) ([]tensor.Reference, error) {
	if opType == optypes.ExternalSource {
		return nil, errors.Errorf("graph %q: use Builder.ExternalSource to add inputs", b.name)
	}
	schema, err := optypes.SchemaFor(opType)
	if err != nil {
		return nil, errors.WithMessagef(err, "graph %q", b.name)
	}
	if !device.IsADevice() || !schema.SupportsDevice(device) {
		return nil, errors.Errorf("graph %q: operator %s cannot run on device %s", b.name, opType, device)
	}
	if len(inputs) != schema.NumInputs {
		return nil, errors.Errorf("graph %q: operator %s takes %d inputs, got %d", b.name, opType, schema.NumInputs, len(inputs))
	}
	for i, input := range inputs {
		if err := b.checkInput(input, device); err != nil {
			return nil, errors.WithMessagef(err, "graph %q: input #%d of operator %s", b.name, i, opType)
		}
	}
	resolved, err := schema.Resolve(args)
	if err != nil {
		return nil, errors.WithMessagef(err, "graph %q", b.name)
	}

	id := tensor.NodeID(len(b.nodes))
	outputs := make([]tensor.Reference, schema.NumOutputs)
	for i := range outputs {
		name := fmt.Sprintf("%s_%d_output_%d", strings.ToLower(opType.String()), id, i)
		if _, found := b.tensors[name]; found {
			// Only possible if an input was explicitly given this name.
			return nil, errors.Errorf("graph %q: output name %q of operator %s is already in use", b.name, name, opType)
		}
		outputs[i] = tensor.Make(name, device, id)
	}
	node := b.newNode(opType, device, resolved, slices.Clone(inputs))
	node.Outputs = outputs
	for _, output := range node.Outputs {
		b.tensors[output.Name()] = output
	}
	klog.V(1).Infof("graph %q: added node #%d %s on %s, inputs %v", b.name, node.ID, opType, device, inputs)
	return slices.Clone(node.Outputs), nil
}

// newNode appends a new node to the node table.
func (b *Builder) newNode(opType optypes.OpType, device devices.Device, args map[string]any, inputs []tensor.Reference) *Node {
	node := &Node{
		ID:     tensor.NodeID(len(b.nodes)),
		OpType: opType,
		Device: device,
		Args:   args,
		Inputs: inputs,
	}
	b.nodes = append(b.nodes, node)
	return node
}

func (b *Builder) checkNewName(name string) error {
	if name == "" {
		return errors.Errorf("graph %q: tensor name cannot be empty", b.name)
	}
	if _, found := b.tensors[name]; found {
		return errors.Errorf("graph %q: tensor name %q is already in use", b.name, name)
	}
	return nil
}

// checkInput verifies r is a tensor defined in this builder, and that it can be consumed on the given device.
func (b *Builder) checkInput(r tensor.Reference, consumer devices.Device) error {
	defined, found := b.tensors[r.Name()]
	if !found {
		return errors.Errorf("tensor %s was not defined in this graph", r)
	}
	if !defined.SameTensor(r) {
		return errors.Errorf("tensor %s doesn't match the tensor %s defined in this graph", r, defined)
	}
	if !r.Device().IsADevice() {
		return errors.Errorf("tensor %s has an invalid device", r)
	}
	if defined.Device() == devices.GPU && r.Device() == devices.CPU {
		return errors.Errorf("tensor %s is produced on the GPU and cannot be moved back to the CPU", r)
	}
	if consumer == devices.CPU && r.Device() == devices.GPU {
		return errors.Errorf("a CPU operator cannot consume the GPU tensor %s", r)
	}
	return nil
}

// Lookup returns the reference to the tensor with the given name, on the device where it is produced.
func (b *Builder) Lookup(name string) (tensor.Reference, bool) {
	r, found := b.tensors[name]
	return r, found
}

// Node returns the node with the given id.
func (b *Builder) Node(id tensor.NodeID) (*Node, error) {
	if id < 0 || int(id) >= len(b.nodes) {
		return nil, errors.Errorf("graph %q has no node #%d (it has %d nodes)", b.name, id, len(b.nodes))
	}
	return b.nodes[id], nil
}

// Source returns the node that produced r. It returns an error wrapping ErrNoSource for references without a
// source, like input placeholders.
func (b *Builder) Source(r tensor.Reference) (*Node, error) {
	id, ok := r.Source()
	if !ok {
		return nil, errors.Wrapf(ErrNoSource, "graph %q: tensor %s", b.name, r)
	}
	node, err := b.Node(id)
	if err != nil {
		return nil, errors.WithMessagef(err, "dangling source of tensor %s", r)
	}
	if !slices.ContainsFunc(node.Outputs, r.SameTensor) {
		return nil, errors.Errorf("graph %q: node #%d (%s) doesn't produce tensor %s", b.name, id, node.OpType, r)
	}
	return node, nil
}

// producer returns the node for r: its source, or its placeholder node.
func (b *Builder) producer(r tensor.Reference) (*Node, error) {
	if r.HasSource() {
		return b.Source(r)
	}
	id, found := b.placeholders[r.Name()]
	if !found {
		return nil, errors.Errorf("graph %q: tensor %s has no source and is not an input", b.name, r)
	}
	return b.nodes[id], nil
}

// Feed binds realized host data to the input placeholder r.
// data must be a *tensor.TensorCPU or a *tensor.TensorListCPU.
func (b *Builder) Feed(r tensor.Reference, data any) error {
	if r.HasSource() {
		return errors.Errorf("graph %q: tensor %s is produced by an operator, only inputs can be fed", b.name, r)
	}
	if _, found := b.placeholders[r.Name()]; !found {
		return errors.Errorf("graph %q: %s is not an input of this graph", b.name, r)
	}
	switch v := data.(type) {
	case *tensor.TensorCPU:
		if v == nil {
			return errors.Errorf("graph %q: nil tensor fed to %s", b.name, r)
		}
	case *tensor.TensorListCPU:
		if v == nil {
			return errors.Errorf("graph %q: nil tensor list fed to %s", b.name, r)
		}
	case tensor.Reference:
		return errors.Errorf("graph %q: cannot feed the symbolic tensor %s to %s, realized data is required", b.name, v, r)
	default:
		return errors.Errorf("graph %q: cannot feed value of type %T to %s", b.name, data, r)
	}
	if _, found := b.feeds[r.Name()]; found {
		klog.Warningf("graph %q: input %q fed more than once, the previous value is discarded", b.name, r.Name())
	}
	b.feeds[r.Name()] = data
	return nil
}

// Build returns the Graph with the operators needed to produce outputs, following the source of each
// reference backwards.
//
// The Builder can still be used afterwards, and Build called again.
func (b *Builder) Build(outputs ...tensor.Reference) (*Graph, error) {
	if len(outputs) == 0 {
		return nil, errors.Errorf("graph %q: Build requires at least one output", b.name)
	}
	g := &Graph{
		Name:    b.name,
		Outputs: slices.Clone(outputs),
		Feeds:   make(map[string]any),
	}
	visited := make(map[tensor.NodeID]bool)
	var visit func(r tensor.Reference) error
	visit = func(r tensor.Reference) error {
		node, err := b.producer(r)
		if err != nil {
			return err
		}
		if visited[node.ID] {
			return nil
		}
		visited[node.ID] = true
		for _, input := range node.Inputs {
			if err := visit(input); err != nil {
				return errors.WithMessagef(err, "input of node #%d (%s)", node.ID, node.OpType)
			}
		}
		klog.V(2).Infof("graph %q: node #%d (%s) reached from %s", b.name, node.ID, node.OpType, r)
		g.Nodes = append(g.Nodes, node)
		if node.OpType == optypes.ExternalSource {
			g.Inputs = append(g.Inputs, node.Outputs[0])
		}
		return nil
	}
	for _, output := range outputs {
		if err := b.checkInput(output, output.Device()); err != nil {
			return nil, errors.WithMessagef(err, "graph %q: output", b.name)
		}
		if err := visit(output); err != nil {
			return nil, err
		}
	}
	g.index()

	for name, data := range b.feeds {
		if _, found := g.placeholders[name]; !found {
			klog.V(1).Infof("graph %q: input %q is fed but not needed by outputs %v", b.name, name, outputs)
			continue
		}
		g.Feeds[name] = data
	}
	klog.V(1).Infof("graph %q: built with %d out of %d nodes", b.name, len(g.Nodes), len(b.nodes))
	return g, nil
}
