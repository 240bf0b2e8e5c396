// Package dtypes lists the element types of realized host tensors.
package dtypes

import (
	"reflect"
	"strings"

	"github.com/x448/float16"
)

// DType is the element type of a realized tensor.
type DType int

const (
	// Invalid represents an invalid (or not set) dtype.
	Invalid DType = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Uint8
	Uint16
	Uint32
	Uint64
	Float16
	Float32
	Float64
)

var dtypeNames = [...]string{
	Invalid: "Invalid",
	Bool:    "Bool",
	Int8:    "Int8",
	Int16:   "Int16",
	Int32:   "Int32",
	Int64:   "Int64",
	Uint8:   "Uint8",
	Uint16:  "Uint16",
	Uint32:  "Uint32",
	Uint64:  "Uint64",
	Float16: "Float16",
	Float32: "Float32",
	Float64: "Float64",
}

// String implements fmt.Stringer.
func (dtype DType) String() string {
	if dtype < 0 || int(dtype) >= len(dtypeNames) {
		return "Invalid"
	}
	return dtypeNames[dtype]
}

// Ok returns whether dtype is one of the listed (and not Invalid) dtypes.
func (dtype DType) Ok() bool {
	return dtype > Invalid && int(dtype) < len(dtypeNames)
}

// Supported lists the Go types that can be stored in a realized host tensor.
type Supported interface {
	bool | int8 | int16 | int32 | int64 | uint8 | uint16 | uint32 | uint64 | float16.Float16 | float32 | float64
}

var float16Type = reflect.TypeOf(float16.Float16(0))

// GoType returns the Go reflect.Type used to store dtype, or nil for Invalid.
func (dtype DType) GoType() reflect.Type {
	switch dtype {
	case Bool:
		return reflect.TypeOf(false)
	case Int8:
		return reflect.TypeOf(int8(0))
	case Int16:
		return reflect.TypeOf(int16(0))
	case Int32:
		return reflect.TypeOf(int32(0))
	case Int64:
		return reflect.TypeOf(int64(0))
	case Uint8:
		return reflect.TypeOf(uint8(0))
	case Uint16:
		return reflect.TypeOf(uint16(0))
	case Uint32:
		return reflect.TypeOf(uint32(0))
	case Uint64:
		return reflect.TypeOf(uint64(0))
	case Float16:
		return float16Type
	case Float32:
		return reflect.TypeOf(float32(0))
	case Float64:
		return reflect.TypeOf(float64(0))
	}
	return nil
}

// Size returns the number of bytes used by one element of dtype.
func (dtype DType) Size() int {
	t := dtype.GoType()
	if t == nil {
		return 0
	}
	return int(t.Size())
}

// FromGoType returns the DType for the Go type T.
func FromGoType[T Supported]() DType {
	var zero T
	return FromAny(zero)
}

// FromAny returns the DType of the given value, or Invalid if the value type is not supported.
func FromAny(value any) DType {
	switch value.(type) {
	case bool:
		return Bool
	case int8:
		return Int8
	case int16:
		return Int16
	case int32:
		return Int32
	case int64:
		return Int64
	case uint8:
		return Uint8
	case uint16:
		return Uint16
	case uint32:
		return Uint32
	case uint64:
		return Uint64
	case float16.Float16:
		return Float16
	case float32:
		return Float32
	case float64:
		return Float64
	}
	return Invalid
}

// MapOfNames maps the DType names (and common short forms, in either case) to the DType.
var MapOfNames = map[string]DType{}

func init() {
	shortNames := map[DType][]string{
		Bool:    {"pred"},
		Int8:    {"s8", "i8"},
		Int16:   {"s16", "i16"},
		Int32:   {"s32", "i32"},
		Int64:   {"s64", "i64"},
		Uint8:   {"u8"},
		Uint16:  {"u16"},
		Uint32:  {"u32"},
		Uint64:  {"u64"},
		Float16: {"f16", "half"},
		Float32: {"f32", "float"},
		Float64: {"f64", "double"},
	}
	for dtype := Bool; int(dtype) < len(dtypeNames); dtype++ {
		names := append([]string{dtype.String()}, shortNames[dtype]...)
		for _, name := range names {
			MapOfNames[name] = dtype
			MapOfNames[strings.ToLower(name)] = dtype
			MapOfNames[strings.ToUpper(name)] = dtype
		}
	}
}
