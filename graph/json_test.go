package graph

import (
	"strings"
	"testing"

	"github.com/gomlx/pipegraph/devices"
	"github.com/gomlx/pipegraph/optypes"
	"github.com/gomlx/pipegraph/tensor"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/janpfeifer/must"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_JSON(t *testing.T) {
	b := New("train")
	a := buildAugmentation(t, b)
	mask := must.M1(b.ExternalSource("mask", devices.CPU))
	copied := must.M1(b.AddOp(optypes.Copy, devices.GPU, nil, mask.GPU()))[0]
	g := must.M1(b.Build(a.warped, a.labels, copied))

	data, err := json.Marshal(g)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"op":"WarpAffine"`)
	assert.Contains(t, string(data), `{"name":"mask","device":"cpu"}`)

	var decoded Graph
	require.NoError(t, json.Unmarshal(data, &decoded))
	diff := cmp.Diff(g, &decoded,
		cmp.AllowUnexported(tensor.Reference{}),
		cmpopts.IgnoreUnexported(Graph{}),
		cmpopts.IgnoreFields(Graph{}, "Feeds"))
	assert.Empty(t, diff, "graph changed after JSON round trip")
	assert.Equal(t, g.String(), decoded.String())

	// Lookups work on the decoded graph.
	producer := must.M1(decoded.Producer(mask.GPU()))
	assert.Equal(t, optypes.ExternalSource, producer.OpType)
}

func TestGraph_UnmarshalJSONErrors(t *testing.T) {
	b := New("train")
	a := buildAugmentation(t, b)
	data := string(must.M1(json.Marshal(must.M1(b.Build(a.bright)))))

	reordered := must.M1(b.Build(a.bright))
	reordered.Nodes[0], reordered.Nodes[1] = reordered.Nodes[1], reordered.Nodes[0]
	reorderedData := string(must.M1(json.Marshal(reordered)))

	for name, corrupted := range map[string]string{
		"reordered nodes": reorderedData,
		"unknown op":     strings.Replace(data, `"op":"Brightness"`, `"op":"Sharpen"`, 1),
		"unknown device": strings.Replace(data, `"device":"gpu"`, `"device":"tpu"`, 1),
		"bad argument":   strings.Replace(data, `"brightness":1.5`, `"brightness":-1`, 1),
		"dangling":       strings.Replace(data, `"source":1}`, `"source":9}`, 1),
		"not json":       data[:len(data)/2],
	} {
		require.NotEqualf(t, data, corrupted, "test case %q didn't change the JSON", name)
		var g Graph
		require.Errorf(t, json.Unmarshal([]byte(corrupted), &g), "test case %q", name)
	}

	var g Graph
	require.ErrorContains(t, json.Unmarshal([]byte(reorderedData), &g), "listed before its input producer")
}
