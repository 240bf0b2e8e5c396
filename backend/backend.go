// Package backend holds the realized host tensor containers a pipeline feeds and produces.
//
// They are opaque to the graph construction: a tensor.Reference never wraps or creates them, they are only
// re-exported next to it so that callers can tell a symbolic reference apart from realized data.
package backend

import (
	"fmt"
	"reflect"
	"slices"

	"github.com/gomlx/pipegraph/dtypes"
	"github.com/gomlx/pipegraph/shapes"
	"github.com/pkg/errors"
)

// TensorCPU is one realized tensor in host memory.
type TensorCPU struct {
	shape shapes.Shape
	flat  any // []T, with T matching shape.DType.
}

// NewTensorCPU creates a TensorCPU with a copy of the flat data (a slice) and the dimensions of the array.
//
// If dimensions is omitted, it is assumed to represent a 1D-array of the length given.
func NewTensorCPU[T dtypes.Supported](flat []T, dimensions ...int) (*TensorCPU, error) {
	if len(dimensions) == 0 {
		dimensions = []int{len(flat)}
	}
	shape, err := shapes.Make(dtypes.FromGoType[T](), dimensions...)
	if err != nil {
		return nil, errors.WithMessage(err, "NewTensorCPU")
	}
	if shape.Size() != len(flat) {
		return nil, errors.Errorf("NewTensorCPU got a slice of length %d, but the shape %s given has %d elements",
			len(flat), shape, shape.Size())
	}
	return &TensorCPU{shape: shape, flat: slices.Clone(flat)}, nil
}

// Shape of the tensor.
func (t *TensorCPU) Shape() shapes.Shape { return t.shape.Clone() }

// DType of the tensor elements.
func (t *TensorCPU) DType() dtypes.DType { return t.shape.DType }

// Flat returns a copy of the flat data as a slice of the Go type matching DType.
func (t *TensorCPU) Flat() any {
	v := reflect.ValueOf(t.flat)
	c := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
	reflect.Copy(c, v)
	return c.Interface()
}

// FlatAs returns a copy of the flat data of t as []T, or an error if T doesn't match the tensor dtype.
func FlatAs[T dtypes.Supported](t *TensorCPU) ([]T, error) {
	flat, ok := t.flat.([]T)
	if !ok {
		return nil, errors.Errorf("tensor has dtype %s, cannot read it as %s", t.DType(), dtypes.FromGoType[T]())
	}
	return slices.Clone(flat), nil
}

// String implements fmt.Stringer.
func (t *TensorCPU) String() string {
	if t == nil {
		return "TensorCPU(nil)"
	}
	return fmt.Sprintf("TensorCPU%s", t.shape)
}

// TensorListCPU is a batch of realized host tensors, one per sample.
//
// Samples share the dtype but may have different shapes (e.g. decoded images of different sizes).
type TensorListCPU struct {
	dtype   dtypes.DType
	tensors []*TensorCPU
}

// NewTensorListCPU creates a batch from the given samples. The list holds the same pointers, so the samples
// should not be changed afterwards.
func NewTensorListCPU(tensors ...*TensorCPU) (*TensorListCPU, error) {
	l := &TensorListCPU{tensors: slices.Clone(tensors)}
	for i, t := range tensors {
		if t == nil {
			return nil, errors.Errorf("NewTensorListCPU: sample #%d is nil", i)
		}
		if i == 0 {
			l.dtype = t.DType()
			continue
		}
		if t.DType() != l.dtype {
			return nil, errors.Errorf("NewTensorListCPU: sample #%d has dtype %s, but sample #0 has dtype %s",
				i, t.DType(), l.dtype)
		}
	}
	return l, nil
}

// Len returns the number of samples.
func (l *TensorListCPU) Len() int { return len(l.tensors) }

// DType of the samples, or dtypes.Invalid for an empty list.
func (l *TensorListCPU) DType() dtypes.DType { return l.dtype }

// At returns the i-th sample.
func (l *TensorListCPU) At(i int) *TensorCPU { return l.tensors[i] }

// Shapes returns the shape of each sample.
func (l *TensorListCPU) Shapes() []shapes.Shape {
	out := make([]shapes.Shape, len(l.tensors))
	for i, t := range l.tensors {
		out[i] = t.Shape()
	}
	return out
}

// IsDenseTensor returns whether all samples have the same shape, and hence the batch can be represented as
// a single tensor.
func (l *TensorListCPU) IsDenseTensor() bool {
	if len(l.tensors) == 0 {
		return false
	}
	first := l.tensors[0].shape
	for _, t := range l.tensors[1:] {
		if !t.shape.Equal(first) {
			return false
		}
	}
	return true
}

// AsTensor stacks the samples into one tensor, with a leading batch axis.
// It fails if the list is empty or the samples have different shapes.
func (l *TensorListCPU) AsTensor() (*TensorCPU, error) {
	if !l.IsDenseTensor() {
		return nil, errors.Errorf("TensorListCPU with %d samples of shapes %v is not a dense tensor", l.Len(), l.Shapes())
	}
	sampleShape := l.tensors[0].shape
	dims := append([]int{l.Len()}, sampleShape.Dimensions...)
	shape, err := shapes.Make(l.dtype, dims...)
	if err != nil {
		return nil, err
	}
	flat := reflect.MakeSlice(reflect.TypeOf(l.tensors[0].flat), 0, shape.Size())
	for _, t := range l.tensors {
		flat = reflect.AppendSlice(flat, reflect.ValueOf(t.flat))
	}
	return &TensorCPU{shape: shape, flat: flat.Interface()}, nil
}

// String implements fmt.Stringer.
func (l *TensorListCPU) String() string {
	if l == nil {
		return "TensorListCPU(nil)"
	}
	return fmt.Sprintf("TensorListCPU[%d](%s)", l.Len(), l.dtype)
}
