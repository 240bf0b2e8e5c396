// Package optypes defines OpType, the pipeline operators that can be recorded in a graph, and their schemas.
package optypes

// OpType is an enum of the pipeline operators a graph can hold.
type OpType int

//go:generate go tool enumer -type OpType optypes.go

const (
	Invalid OpType = iota

	// ExternalSource is an input placeholder, fed with realized host data.
	ExternalSource

	// FileReader reads encoded samples and their labels from files.
	FileReader

	// ImageDecoder decodes encoded images (e.g. JPEG) into HWC uint8 tensors.
	ImageDecoder

	// Color transformations.
	Brightness
	Contrast
	Hue
	Saturation

	// WarpAffine applies an affine transform to images.
	WarpAffine

	// Copy moves (or copies) a tensor to the operator's device.
	Copy

	// Last should always be kept the last, it is used as a counter/marker.
	Last
)
