package shapes

import (
	"testing"

	"github.com/gomlx/pipegraph/dtypes"
	"github.com/stretchr/testify/require"
)

func TestMake(t *testing.T) {
	shape, err := Make(dtypes.Uint8, 224, 224, 3)
	require.NoError(t, err)
	require.Equal(t, "(Uint8)[224 224 3]", shape.String())
	require.Equal(t, 3, shape.Rank())
	require.Equal(t, 224*224*3, shape.Size())
	require.Equal(t, 224*224*3, shape.Memory())

	// Scalar.
	shape, err = Make(dtypes.Float16)
	require.NoError(t, err)
	require.True(t, shape.IsScalar())
	require.Equal(t, "(Float16)[]", shape.String())
	require.Equal(t, 2, shape.Memory())

	// Zero-sized axis is fine.
	shape, err = Make(dtypes.Uint8, 0)
	require.NoError(t, err)
	require.Equal(t, 0, shape.Size())

	_, err = Make(dtypes.Float32, 2, -1)
	require.Error(t, err)
	_, err = Make(dtypes.Invalid, 2)
	require.Error(t, err)
	require.False(t, Invalid().Ok())
}

func TestShape_Equal(t *testing.T) {
	dims := []int{2, 3}
	a, err := Make(dtypes.Float32, dims...)
	require.NoError(t, err)
	dims[0] = 7
	require.Equal(t, []int{2, 3}, a.Dimensions, "Make must not alias the caller's dimensions")

	b := a.Clone()
	require.True(t, a.Equal(b))
	b.Dimensions[1] = 4
	require.False(t, a.Equal(b))
	require.False(t, a.Equal(Shape{DType: dtypes.Float64, Dimensions: []int{2, 3}}))
}
