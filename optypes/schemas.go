package optypes

import (
	"github.com/gomlx/pipegraph/devices"
	"github.com/pkg/errors"
)

var (
	cpuOnly  = []devices.Device{devices.CPU}
	anyPlace = []devices.Device{devices.CPU, devices.GPU}
)

// colorArgs are the arguments shared by all color transformations.
func colorArgs(factor string, defaultValue float32, doc string) map[string]Arg {
	return map[string]Arg{
		"image_type": {Kind: ArgString, Default: "RGB", Doc: "The color space of input and output image."},
		factor:       {Kind: ArgFloat, Default: defaultValue, Doc: doc},
	}
}

func nonNegative(name string) func(args map[string]any) error {
	return func(args map[string]any) error {
		if v := args[name].(float32); v < 0 {
			return errors.Errorf("%s must be >= 0, got %g", name, v)
		}
		return nil
	}
}

const warpAffineMatrixSize = 6

var schemas = map[OpType]Schema{
	ExternalSource: {
		OpType: ExternalSource, NumInputs: 0, NumOutputs: 1, Devices: anyPlace,
	},
	FileReader: {
		OpType: FileReader, NumInputs: 0, NumOutputs: 2, Devices: cpuOnly,
		Args: map[string]Arg{
			"file_root":         {Kind: ArgString, Default: "", Doc: "Directory the samples are read from."},
			"random_shuffle":    {Kind: ArgBool, Default: false, Doc: "Whether to randomly shuffle the samples."},
			"initial_fill":      {Kind: ArgInt, Default: 1024, Doc: "Size of the buffer used for shuffling."},
			"batch_size":        {Kind: ArgInt, Required: true, Doc: "Number of samples per batch."},
			"tensor_init_bytes": {Kind: ArgInt, Default: 1048576, Doc: "Bytes preallocated for each sample."},
			"seed":              {Kind: ArgInt, Default: -1, Doc: "Random seed, -1 for a random one."},
			"shard_id":          {Kind: ArgInt, Default: 0, Doc: "Index of the shard to read."},
			"num_shards":        {Kind: ArgInt, Default: 1, Doc: "Number of shards the data is partitioned into."},
		},
		validate: func(args map[string]any) error {
			if batchSize := args["batch_size"].(int); batchSize <= 0 {
				return errors.Errorf("batch_size needs to be greater than 0, got %d", batchSize)
			}
			if args["initial_fill"].(int) <= 0 {
				return errors.Errorf("initial_fill needs to be greater than 0, got %d", args["initial_fill"])
			}
			shardID, numShards := args["shard_id"].(int), args["num_shards"].(int)
			if numShards <= 0 || shardID < 0 || shardID >= numShards {
				return errors.Errorf("shard_id=%d is not valid for num_shards=%d", shardID, numShards)
			}
			return nil
		},
	},
	ImageDecoder: {
		OpType: ImageDecoder, NumInputs: 1, NumOutputs: 1, Devices: anyPlace,
		Args: map[string]Arg{
			"output_type": {Kind: ArgString, Default: "RGB", Doc: "The color space of the output image."},
		},
	},
	Brightness: {
		OpType: Brightness, NumInputs: 1, NumOutputs: 1, Devices: anyPlace,
		Args:     colorArgs("brightness", 1, "Brightness change factor: 0 is a black image, 1 no change."),
		validate: nonNegative("brightness"),
	},
	Contrast: {
		OpType: Contrast, NumInputs: 1, NumOutputs: 1, Devices: anyPlace,
		Args:     colorArgs("contrast", 1, "Contrast change factor: 0 is a gray image, 1 no change."),
		validate: nonNegative("contrast"),
	},
	Hue: {
		OpType: Hue, NumInputs: 1, NumOutputs: 1, Devices: anyPlace,
		Args: colorArgs("hue", 0, "Hue change in angles."),
	},
	Saturation: {
		OpType: Saturation, NumInputs: 1, NumOutputs: 1, Devices: anyPlace,
		Args:     colorArgs("saturation", 1, "Saturation change factor: 0 is completely desaturated, 1 no change."),
		validate: nonNegative("saturation"),
	},
	WarpAffine: {
		OpType: WarpAffine, NumInputs: 1, NumOutputs: 1, Devices: anyPlace,
		Args: map[string]Arg{
			"matrix":           {Kind: ArgFloats, Required: true, Doc: "Affine transform matrix, 6 values in row-major order."},
			"use_image_center": {Kind: ArgBool, Default: false, Doc: "Whether to apply the transform around the image center."},
			"mask":             {Kind: ArgInt, Default: 1, Doc: "Whether to apply this augmentation: 0 or 1."},
			"interp_type":      {Kind: ArgString, Default: "NN", Doc: "Type of interpolation used."},
			"fill_value":       {Kind: ArgFloat, Default: float32(0), Doc: "Color value used for padding pixels."},
		},
		validate: func(args map[string]any) error {
			if matrix := args["matrix"].([]float32); len(matrix) != warpAffineMatrixSize {
				return errors.Errorf("warp affine matrix needs to have %d elements, got %d", warpAffineMatrixSize, len(matrix))
			}
			if mask := args["mask"].(int); mask != 0 && mask != 1 {
				return errors.Errorf("mask must be 0 or 1, got %d", mask)
			}
			return nil
		},
	},
	Copy: {
		OpType: Copy, NumInputs: 1, NumOutputs: 1, Devices: anyPlace,
	},
}
