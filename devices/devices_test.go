package devices

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	for tag, want := range map[string]Device{
		"cpu":   CPU,
		"gpu":   GPU,
		"GPU":   GPU,
		" Cpu ": CPU,
	} {
		d, err := Parse(tag)
		require.NoErrorf(t, err, "tag %q", tag)
		assert.Equalf(t, want, d, "tag %q", tag)
	}

	_, err := Parse("tpu")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"tpu"`)
	assert.Panics(t, func() { MustParse("mixed") })
}

func TestDevice_String(t *testing.T) {
	assert.Equal(t, "cpu", CPU.String())
	assert.Equal(t, "gpu", GPU.String())
	assert.Equal(t, "Device(7)", Device(7).String())
	assert.False(t, Device(7).IsADevice())
	assert.Equal(t, CPU, Device(0), "zero value must be CPU")
	assert.Equal(t, []string{"cpu", "gpu"}, DeviceStrings())
}
