package dtypes

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/x448/float16"
)

func TestMapOfNames(t *testing.T) {
	require.Equal(t, Float16, MapOfNames["Float16"])
	require.Equal(t, Float16, MapOfNames["float16"])
	require.Equal(t, Float16, MapOfNames["F16"])
	require.Equal(t, Float16, MapOfNames["f16"])

	require.Equal(t, Uint8, MapOfNames["Uint8"])
	require.Equal(t, Uint8, MapOfNames["u8"])
	_, found := MapOfNames["Invalid"]
	require.False(t, found)
}

func TestFromGoType(t *testing.T) {
	require.Equal(t, Float16, FromGoType[float16.Float16]())
	require.Equal(t, Float32, FromGoType[float32]())
	require.Equal(t, Uint8, FromGoType[uint8]())
	require.Equal(t, Invalid, FromAny("text"))

	require.Equal(t, 2, Float16.Size())
	require.Equal(t, 1, Uint8.Size())
	require.Equal(t, 8, Int64.Size())
	require.Equal(t, 0, Invalid.Size())
	require.False(t, Invalid.Ok())
	require.True(t, Float64.Ok())
	require.Equal(t, "Invalid", DType(100).String())
}
