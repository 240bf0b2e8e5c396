package tensor

import (
	"fmt"
	"testing"

	"github.com/gomlx/pipegraph/backend"
	"github.com/gomlx/pipegraph/devices"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testNames   = []string{"images", "labels", "__Reader_0_output_1", ""}
	testSources = []NodeID{NoSource, 0, 1, 42}
)

func TestMake_RoundTrip(t *testing.T) {
	for _, name := range testNames {
		for _, device := range devices.DeviceValues() {
			for _, source := range testSources {
				r := Make(name, device, source)
				assert.Equal(t, name, r.Name())
				assert.Equal(t, device, r.Device())
				gotSource, ok := r.Source()
				assert.Equal(t, source, gotSource)
				assert.Equal(t, source != NoSource, ok)
			}
		}
	}
}

func TestReference_DeviceConversion(t *testing.T) {
	for _, name := range testNames {
		for _, device := range devices.DeviceValues() {
			for _, source := range testSources {
				r := Make(name, device, source)
				msg := fmt.Sprintf("reference %s", r)

				cpu, gpu := r.CPU(), r.GPU()
				assert.Equal(t, devices.CPU, cpu.Device(), msg)
				assert.Equal(t, devices.GPU, gpu.Device(), msg)
				for _, variant := range []Reference{cpu, gpu} {
					assert.Equal(t, r.Name(), variant.Name(), msg)
					assert.True(t, r.SameTensor(variant), msg)
					gotSource, _ := variant.Source()
					wantSource, _ := r.Source()
					assert.Equal(t, wantSource, gotSource, msg)
				}

				// The receiver is never changed.
				assert.Equal(t, device, r.Device(), msg)

				// Chained conversions are lossless on provenance.
				chained := r.CPU().GPU().CPU()
				assert.Equal(t, Make(name, devices.CPU, source), chained, msg)
				assert.Equal(t, r.GPU(), r.GPU().GPU(), msg)
			}
		}
	}
}

func TestReference_Scenarios(t *testing.T) {
	const op1 NodeID = 1
	r := Make("images", devices.CPU, op1)
	assert.Equal(t, Make("images", devices.GPU, op1), r.GPU())
	assert.Equal(t, Make("images", devices.CPU, op1), r.GPU().CPU())

	labels := New("labels")
	assert.Equal(t, devices.CPU, labels.Device())
	assert.False(t, labels.HasSource())
	_, ok := labels.Source()
	assert.False(t, ok)
	assert.Equal(t, "labels@cpu", labels.String())
	assert.Equal(t, "images@gpu<-#1", r.GPU().String())

	// Negative handles all collapse to NoSource.
	assert.Equal(t, New("x"), Make("x", devices.CPU, -7))
}

func TestParse(t *testing.T) {
	r := must.M1(Parse("images", "gpu", 3))
	assert.Equal(t, Make("images", devices.GPU, 3), r)

	_, err := Parse("images", "mixed", 3)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `tensor reference "images"`)
}

func TestRealizedVsReference(t *testing.T) {
	realized := must.M1(backend.NewTensorListCPU(
		must.M1(backend.NewTensorCPU([]uint8{1, 2})),
		must.M1(backend.NewTensorCPU([]uint8{3, 4}))))
	values := []any{New("a"), realized, realized.At(0)}
	var kinds []string
	for _, v := range values {
		switch v.(type) {
		case Reference:
			kinds = append(kinds, "reference")
		case *TensorListCPU:
			kinds = append(kinds, "list")
		case *TensorCPU:
			kinds = append(kinds, "tensor")
		}
	}
	assert.Equal(t, []string{"reference", "list", "tensor"}, kinds)
}

func TestReference_Equal(t *testing.T) {
	r := Make("images", devices.GPU, 2)
	assert.True(t, r.Equal(Make("images", devices.GPU, 2)))
	assert.True(t, r.Equal(r.CPU().GPU()))

	// Device variants are the same tensor, but not equal references.
	assert.True(t, r.SameTensor(r.CPU()))
	assert.False(t, r.Equal(r.CPU()))

	assert.False(t, r.Equal(Make("images", devices.GPU, 3)))
	assert.False(t, r.SameTensor(Make("images", devices.GPU, 3)))
	assert.False(t, r.Equal(Make("labels", devices.GPU, 2)))
	assert.False(t, r.Equal(r.CPU().GPU().CPU()))
}

func TestReference_ZeroValue(t *testing.T) {
	var zero Reference
	assert.False(t, zero.HasSource())
	source, ok := zero.Source()
	assert.False(t, ok)
	assert.Equal(t, NoSource, source)
	assert.Equal(t, devices.CPU, zero.Device())
	assert.True(t, zero.Equal(New("")))

	// Node 0 is a real source, distinct from the zero value.
	first := Make("", devices.CPU, 0)
	assert.True(t, first.HasSource())
	assert.False(t, zero.SameTensor(first))
	assert.Equal(t, "@cpu<-#0", first.String())
}
