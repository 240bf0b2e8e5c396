package main

import (
	"github.com/gomlx/pipegraph/devices"
	"github.com/gomlx/pipegraph/graph"
	"github.com/gomlx/pipegraph/optypes"
	"github.com/gomlx/pipegraph/tensor"
	"github.com/pkg/errors"
)

// PipelineConfig configures the sample augmentation pipeline.
type PipelineConfig struct {
	BatchSize int
	FileRoot  string

	// Device where decoding and the augmentations run.
	Device devices.Device
}

// rotate15 is a 15 degrees rotation around the image center.
var rotate15 = []float32{0.9659258, -0.2588190, 0, 0.2588190, 0.9659258, 0}

// BuildAugmentation builds: reader -> decoder -> brightness -> contrast -> hue -> saturation -> warp affine,
// and returns the graph with the augmented images (moved to the requested device) and the labels.
func BuildAugmentation(config PipelineConfig) (*graph.Graph, error) {
	b := graph.New("augmentation")
	outputs, err := b.AddOp(optypes.FileReader, devices.CPU, map[string]any{
		"batch_size":     config.BatchSize,
		"file_root":      config.FileRoot,
		"random_shuffle": true,
	})
	if err != nil {
		return nil, err
	}
	jpegs, labels := outputs[0], outputs[1]

	// Values are moved to the device when consumed: the reference keeps pointing to the reader.
	images := jpegs.On(config.Device)
	steps := []struct {
		opType optypes.OpType
		args   map[string]any
	}{
		{optypes.ImageDecoder, nil},
		{optypes.Brightness, map[string]any{"brightness": 1.2}},
		{optypes.Contrast, map[string]any{"contrast": 0.8}},
		{optypes.Hue, map[string]any{"hue": 15.0}},
		{optypes.Saturation, map[string]any{"saturation": 1.1}},
		{optypes.WarpAffine, map[string]any{"matrix": rotate15, "use_image_center": true, "fill_value": 0.0}},
	}
	for _, step := range steps {
		var result []tensor.Reference
		result, err = b.AddOp(step.opType, config.Device, step.args, images)
		if err != nil {
			return nil, errors.WithMessagef(err, "while adding %s", step.opType)
		}
		images = result[0]
	}
	return b.Build(images, labels)
}
