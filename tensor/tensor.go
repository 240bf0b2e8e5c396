// Package tensor defines Reference, the symbolic handle to a tensor that will be produced by a pipeline
// operator, used while the pipeline graph is being defined and before any data exists.
//
// The realized host containers from package backend are re-exported here, so code consuming pipeline values
// can type-switch between a symbolic Reference and realized data.
package tensor

import (
	"fmt"

	"github.com/gomlx/pipegraph/backend"
	"github.com/gomlx/pipegraph/devices"
	"github.com/pkg/errors"
)

// TensorCPU is an alias to backend.TensorCPU.
type TensorCPU = backend.TensorCPU

// TensorListCPU is an alias to backend.TensorListCPU.
type TensorListCPU = backend.TensorListCPU

// NodeID is a non-owning handle to the graph node that produces a tensor: an index into the node table of the
// graph builder that created the Reference. Holding a NodeID doesn't keep the node alive.
type NodeID int

// NoSource is the NodeID of references with no known producer, e.g. input placeholders.
const NoSource NodeID = -1

// Reference is a symbolic placeholder for a tensor, identified by name, not by value.
//
// It is immutable: CPU and GPU return new references and never change the name or the source, so the graph
// builder can always backtrack from any device variant to the producing operator.
//
// References are comparable with ==. The zero value is an unnamed reference on CPU with no source.
type Reference struct {
	name   string
	device devices.Device

	// sourcePlusOne holds the NodeID of the source plus one, so the zero value means NoSource.
	sourcePlusOne NodeID
}

// New creates a reference to a tensor on CPU with no source.
func New(name string) Reference {
	return Reference{name: name, device: devices.CPU}
}

// Make creates a reference with all its fields. Use NoSource if the producer is not known.
//
// Neither the name nor the source are validated: uniqueness and existence are the graph builder's concern.
func Make(name string, device devices.Device, source NodeID) Reference {
	if source < 0 {
		source = NoSource
	}
	return Reference{name: name, device: device, sourcePlusOne: source + 1}
}

// Parse is like Make, but takes the device as a string tag ("cpu" or "gpu").
// It returns an error for any other tag.
func Parse(name, deviceTag string, source NodeID) (Reference, error) {
	device, err := devices.Parse(deviceTag)
	if err != nil {
		return Reference{}, errors.WithMessagef(err, "tensor reference %q", name)
	}
	return Make(name, device, source), nil
}

// Name of the referenced tensor.
func (r Reference) Name() string { return r.name }

// Device the referenced tensor is associated with.
func (r Reference) Device() devices.Device { return r.device }

// Source returns the handle to the producing node, and whether there is one.
func (r Reference) Source() (NodeID, bool) {
	return r.sourcePlusOne - 1, r.sourcePlusOne > 0
}

// HasSource returns whether the producing node is known.
func (r Reference) HasSource() bool { return r.sourcePlusOne > 0 }

// CPU returns the CPU variant of the reference: same name and source.
func (r Reference) CPU() Reference {
	return r.On(devices.CPU)
}

// GPU returns the GPU variant of the reference: same name and source.
func (r Reference) GPU() Reference {
	return r.On(devices.GPU)
}

// On returns the variant of the reference for the given device.
func (r Reference) On(device devices.Device) Reference {
	r.device = device
	return r
}

// Equal returns whether r and other are the same reference: same name, device and source.
// It is the same as r == other.
func (r Reference) Equal(other Reference) bool {
	return r == other
}

// SameTensor returns whether r and other refer to the same tensor, possibly on different devices.
func (r Reference) SameTensor(other Reference) bool {
	return r.name == other.name && r.sourcePlusOne == other.sourcePlusOne
}

// String implements fmt.Stringer. E.g.: "images@gpu<-#3".
func (r Reference) String() string {
	if r.HasSource() {
		return fmt.Sprintf("%s@%s<-#%d", r.name, r.device, r.sourcePlusOne-1)
	}
	return fmt.Sprintf("%s@%s", r.name, r.device)
}
