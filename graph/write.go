package graph

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/gomlx/pipegraph/tensor"
)

// elementWriter is implemented by the parts of a graph that can be rendered.
type elementWriter interface {
	Write(w io.Writer) error
}

// Write writes a string representation of the node to the given writer, e.g.:
//
//	#2 %brightness_2_output_0@gpu<-#2 = Brightness(%imagedecoder_1_output_0@gpu<-#1) {brightness=1.5, image_type="RGB"} @gpu
func (n *Node) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			// No op if an error was encountered earlier
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}

	w("#%d ", n.ID)
	writeReferences(w, n.Outputs)
	w(" = %s(", n.OpType)
	writeReferences(w, n.Inputs)
	w(")")
	if len(n.Args) > 0 {
		keys := make([]string, 0, len(n.Args))
		for key := range n.Args {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		w(" {")
		for i, key := range keys {
			if i > 0 {
				w(", ")
			}
			w("%s=%s", key, argToString(n.Args[key]))
		}
		w("}")
	}
	w(" @%s", n.Device)
	return err
}

// String implements fmt.Stringer.
func (n *Node) String() string {
	var sb strings.Builder
	_ = n.Write(&sb)
	return sb.String()
}

func writeReferences(w func(format string, args ...any), refs []tensor.Reference) {
	for i, r := range refs {
		if i > 0 {
			w(", ")
		}
		w("%%%s", r)
	}
}

func argToString(value any) string {
	switch v := value.(type) {
	case string:
		return fmt.Sprintf("%q", v)
	case []float32:
		parts := make([]string, len(v))
		for i, x := range v {
			parts[i] = fmt.Sprintf("%g", x)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case float32, float64:
		return fmt.Sprintf("%g", v)
	default:
		return fmt.Sprintf("%v", v)
	}
}

// Write writes the graph in text format: one line per node in topological order, and the outputs.
func (g *Graph) Write(writer io.Writer) error {
	var err error
	w := func(format string, args ...any) {
		if err != nil {
			return
		}
		_, err = fmt.Fprintf(writer, format, args...)
	}
	we := func(e elementWriter) {
		if err != nil {
			return
		}
		err = e.Write(writer)
	}

	w("graph %q {\n", g.Name)
	for _, node := range g.Nodes {
		w("  ")
		we(node)
		w("\n")
	}
	w("  return ")
	writeReferences(w, g.Outputs)
	w("\n}\n")
	return err
}

// String implements fmt.Stringer.
func (g *Graph) String() string {
	var sb strings.Builder
	_ = g.Write(&sb)
	return sb.String()
}

// NodeIDs returns the ids of the nodes, in topological order.
func (g *Graph) NodeIDs() []tensor.NodeID {
	ids := make([]tensor.NodeID, len(g.Nodes))
	for i, node := range g.Nodes {
		ids[i] = node.ID
	}
	return ids
}
