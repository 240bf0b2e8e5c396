package optypes

import (
	"fmt"
	"maps"
	"slices"
	"sort"

	"github.com/gomlx/pipegraph/devices"
	"github.com/pkg/errors"
)

// ArgKind is the type of value an operator argument holds once resolved.
type ArgKind int

const (
	// ArgBool resolves to bool.
	ArgBool ArgKind = iota
	// ArgInt resolves to int.
	ArgInt
	// ArgFloat resolves to float32.
	ArgFloat
	// ArgString resolves to string.
	ArgString
	// ArgFloats resolves to []float32.
	ArgFloats
)

// Arg describes one operator argument.
type Arg struct {
	Kind ArgKind

	// Default value, already of the Kind's type. Ignored if Required.
	Default any

	// Required arguments have no default and must be given.
	Required bool

	Doc string
}

// Schema describes an operator: number of inputs and outputs, the devices it can run on, and its arguments.
type Schema struct {
	OpType     OpType
	NumInputs  int
	NumOutputs int
	Devices    []devices.Device
	Args       map[string]Arg

	// validate is run on the resolved arguments.
	validate func(args map[string]any) error
}

// SupportsDevice returns whether the operator can be placed on the given device.
func (s Schema) SupportsDevice(device devices.Device) bool {
	return slices.Contains(s.Devices, device)
}

// SchemaFor returns the schema of the given operator type.
func SchemaFor(opType OpType) (Schema, error) {
	s, found := schemas[opType]
	if !found {
		return Schema{}, errors.Errorf("no schema registered for operator %s", opType)
	}
	return s, nil
}

// Resolve returns a new map with the given args converted to their kinds, and defaults filled in for the
// missing ones. It fails for unknown or missing required arguments, or values that can't be converted.
func (s Schema) Resolve(args map[string]any) (map[string]any, error) {
	resolved := make(map[string]any, len(s.Args))
	for _, name := range sortedKeys(args) {
		arg, found := s.Args[name]
		if !found {
			return nil, errors.Errorf("operator %s has no argument %q, valid arguments are %q",
				s.OpType, name, sortedKeys(s.Args))
		}
		v, err := convert(arg.Kind, args[name])
		if err != nil {
			return nil, errors.WithMessagef(err, "operator %s, argument %q", s.OpType, name)
		}
		resolved[name] = v
	}
	for name, arg := range s.Args {
		if _, found := resolved[name]; found {
			continue
		}
		if arg.Required {
			return nil, errors.Errorf("operator %s requires argument %q", s.OpType, name)
		}
		resolved[name] = arg.Default
	}
	if s.validate != nil {
		if err := s.validate(resolved); err != nil {
			return nil, errors.WithMessagef(err, "operator %s", s.OpType)
		}
	}
	return resolved, nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := slices.Collect(maps.Keys(m))
	sort.Strings(keys)
	return keys
}

// convert a user given value to the canonical Go type of kind.
func convert(kind ArgKind, value any) (any, error) {
	switch kind {
	case ArgBool:
		if b, ok := value.(bool); ok {
			return b, nil
		}
	case ArgInt:
		switch v := value.(type) {
		case int:
			return v, nil
		case int32:
			return int(v), nil
		case int64:
			return int(v), nil
		case float64:
			// Numbers decoded from JSON.
			if v == float64(int(v)) {
				return int(v), nil
			}
		}
	case ArgFloat:
		switch v := value.(type) {
		case float32:
			return v, nil
		case float64:
			return float32(v), nil
		case int:
			return float32(v), nil
		}
	case ArgString:
		if s, ok := value.(string); ok {
			return s, nil
		}
	case ArgFloats:
		switch v := value.(type) {
		case []float32:
			return slices.Clone(v), nil
		case []float64:
			out := make([]float32, len(v))
			for i, x := range v {
				out[i] = float32(x)
			}
			return out, nil
		case []any:
			out := make([]float32, len(v))
			for i, x := range v {
				f, err := convert(ArgFloat, x)
				if err != nil {
					return nil, errors.WithMessagef(err, "element #%d", i)
				}
				out[i] = f.(float32)
			}
			return out, nil
		}
	}
	return nil, errors.Errorf("cannot use value %v (%T) as %s", value, value, kind)
}

// String implements fmt.Stringer.
func (k ArgKind) String() string {
	switch k {
	case ArgBool:
		return "bool"
	case ArgInt:
		return "int"
	case ArgFloat:
		return "float"
	case ArgString:
		return "string"
	case ArgFloats:
		return "float list"
	}
	return fmt.Sprintf("ArgKind(%d)", int(k))
}
