// Package shapes defines Shape, the dtype and dimensions of a realized host tensor.
package shapes

import (
	"fmt"
	"slices"

	"github.com/gomlx/pipegraph/dtypes"
	"github.com/pkg/errors"
)

// Shape is a minimalistic shape representation of a realized tensor.
//
// It is defined as a DType (the underlying data type, e.g.: Float32, Uint8, etc.) and the dimensions on each axis
// of the tensor. If len(Dimensions) is 0, it represents a scalar.
type Shape struct {
	DType      dtypes.DType
	Dimensions []int
}

// Make returns a Shape filled with the values given.
//
// Dimensions must be >= 0: zero-sized axes are valid (e.g. an empty encoded file).
func Make(dtype dtypes.DType, dimensions ...int) (Shape, error) {
	s := Shape{DType: dtype, Dimensions: slices.Clone(dimensions)}
	if !dtype.Ok() {
		return Invalid(), errors.Errorf("shapes.Make(%s): invalid dtype", s)
	}
	for _, dim := range dimensions {
		if dim < 0 {
			return Invalid(), errors.Errorf("shapes.Make(%s): cannot create a shape with an axis with dimension < 0", s)
		}
	}
	return s, nil
}

// Invalid returns an invalid shape.
func Invalid() Shape {
	return Shape{DType: dtypes.Invalid}
}

// Ok returns whether the shape has a valid dtype.
func (s Shape) Ok() bool { return s.DType.Ok() }

// IsScalar returns whether the Shape is a scalar, i.e. its len(Shape.Dimensions) == 0.
func (s Shape) IsScalar() bool { return s.Rank() == 0 }

// Rank of a shape is the number of axes. A shortcut to len(Shape.Dimensions).
// Scalar values have rank 0.
func (s Shape) Rank() int {
	return len(s.Dimensions)
}

// Size returns the total number of elements. E.g.: a Shape of dimensions [3, 5] has size 15. A scalar has size 1.
func (s Shape) Size() int {
	size := 1
	for _, dim := range s.Dimensions {
		size *= dim
	}
	return size
}

// Memory returns the number of bytes used to store an array of the given shape.
func (s Shape) Memory() int {
	return s.DType.Size() * s.Size()
}

// Equal compares dtype and dimensions.
func (s Shape) Equal(other Shape) bool {
	return s.DType == other.DType && slices.Equal(s.Dimensions, other.Dimensions)
}

// Clone makes a deep copy of the shape.
func (s Shape) Clone() Shape {
	return Shape{DType: s.DType, Dimensions: slices.Clone(s.Dimensions)}
}

// String implements fmt.Stringer and pretty-print the shape.
func (s Shape) String() string {
	if s.Rank() == 0 {
		return fmt.Sprintf("(%s)[]", s.DType)
	}
	return fmt.Sprintf("(%s)%v", s.DType, s.Dimensions)
}
