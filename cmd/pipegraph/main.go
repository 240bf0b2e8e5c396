// pipegraph builds a sample image augmentation pipeline graph and prints it, as text or JSON.
//
// It is useful to inspect how references, devices and operator arguments end up recorded in a graph:
//
//	go run ./cmd/pipegraph -device=gpu -batch_size=64 -json -out=~/train_graph.json
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gomlx/pipegraph/devices"
	"github.com/gomlx/pipegraph/graph"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

var (
	flagBatchSize = flag.Int("batch_size", 32, "Number of samples per batch read by the file reader.")
	flagDevice    = flag.String("device", "gpu",
		"Device where decoding and the augmentations run: cpu or gpu. Reading files always runs on the cpu.")
	flagFileRoot = flag.String("file_root", "", "Directory the reader loads samples from.")
	flagJSON     = flag.Bool("json", false, "Write the graph as JSON instead of text.")
	flagOut      = flag.String("out", "", "File where to write the graph. If empty, it is written to the standard output.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	device, err := devices.Parse(*flagDevice)
	if err != nil {
		klog.Fatal(err)
	}
	g, err := BuildAugmentation(PipelineConfig{
		BatchSize: *flagBatchSize,
		FileRoot:  *flagFileRoot,
		Device:    device,
	})
	if err != nil {
		klog.Fatalf("Failed to build graph: %+v", err)
	}

	if *flagOut == "" {
		err = writeGraph(os.Stdout, g, *flagJSON)
	} else {
		err = writeGraphToFile(ReplaceTildeInDir(*flagOut), g, *flagJSON)
	}
	if err != nil {
		klog.Fatal(err)
	}
	if *flagOut != "" {
		fmt.Printf("Graph %q with %d nodes written to %s\n", g.Name, len(g.Nodes), *flagOut)
	}
}

// writeGraph writes g as text, or as JSON if asJSON is set.
func writeGraph(w io.Writer, g *graph.Graph, asJSON bool) error {
	if !asJSON {
		return g.Write(w)
	}
	data, err := g.MarshalJSON()
	if err != nil {
		return err
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

// writeGraphToFile creates (or truncates) filePath and writes g to it.
func writeGraphToFile(filePath string, g *graph.Graph, asJSON bool) error {
	f, err := os.Create(filePath)
	if err != nil {
		return errors.Wrapf(err, "failed to create output file %q", filePath)
	}
	if err = writeGraph(f, g, asJSON); err != nil {
		_ = f.Close()
		return errors.WithMessagef(err, "failed to write graph to %q", filePath)
	}
	return errors.Wrapf(f.Close(), "failed to close output file %q", filePath)
}
