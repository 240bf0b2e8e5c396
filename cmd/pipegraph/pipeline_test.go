package main

import (
	"bytes"
	"flag"
	"os"
	"os/user"
	"path"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gomlx/pipegraph/devices"
	"github.com/gomlx/pipegraph/optypes"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAugmentation(t *testing.T) {
	for _, device := range devices.DeviceValues() {
		g, err := BuildAugmentation(PipelineConfig{BatchSize: 8, Device: device})
		require.NoErrorf(t, err, "device %s", device)
		require.Len(t, g.Nodes, 7)
		assert.Equal(t, optypes.FileReader, g.Nodes[0].OpType)
		assert.Equal(t, devices.CPU, g.Nodes[0].Device)
		assert.Equal(t, optypes.ImageDecoder, g.Nodes[1].OpType)
		assert.Equal(t, device, g.Nodes[1].Device)
		last := g.Nodes[len(g.Nodes)-1]
		assert.Equal(t, optypes.WarpAffine, last.OpType)
		assert.Equal(t, device, last.Device)
		assert.Equal(t, device, g.Outputs[0].Device())
		assert.Equal(t, 8, g.Nodes[0].Args["batch_size"])
	}

	_, err := BuildAugmentation(PipelineConfig{BatchSize: 0})
	require.Error(t, err)
}

func TestReplaceTildeInDir(t *testing.T) {
	assert.Equal(t, "/tmp/graph.json", ReplaceTildeInDir("/tmp/graph.json"))
	assert.Equal(t, "", ReplaceTildeInDir(""))
	if usr, err := user.Current(); err == nil {
		assert.Equal(t, path.Join(usr.HomeDir, "graph.json"), ReplaceTildeInDir("~/graph.json"))
	}
}

func TestDeviceFlagUsage(t *testing.T) {
	usage := flag.Lookup("device").Usage
	assert.Contains(t, usage, "decoding")
	assert.Contains(t, usage, "Reading files always runs on the cpu")
}

func TestWriteGraph(t *testing.T) {
	g, err := BuildAugmentation(PipelineConfig{BatchSize: 4, Device: devices.GPU})
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeGraph(&buf, g, false))
	assert.Equal(t, g.String(), buf.String())

	buf.Reset()
	require.NoError(t, writeGraph(&buf, g, true))
	assert.True(t, strings.HasSuffix(buf.String(), "}\n"))

	filePath := filepath.Join(t.TempDir(), "graph.json")
	require.NoError(t, writeGraphToFile(filePath, g, true))
	data, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t, buf.String(), string(data))

	err = writeGraphToFile(filepath.Join(t.TempDir(), "missing", "graph.json"), g, true)
	require.ErrorContains(t, err, "failed to create output file")
}
