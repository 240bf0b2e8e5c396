// Package devices defines the execution targets a pipeline tensor can be associated with.
package devices

import (
	"strings"

	"github.com/pkg/errors"
)

// Device is the execution target of a tensor once it is realized: host (CPU) or accelerator (GPU).
//
// The zero value is CPU.
type Device int

//go:generate go tool enumer -type Device -transform lower devices.go

const (
	CPU Device = iota
	GPU
)

// Parse converts a device tag ("cpu" or "gpu", case-insensitive) to a Device.
func Parse(tag string) (Device, error) {
	d, err := DeviceString(strings.ToLower(strings.TrimSpace(tag)))
	if err != nil {
		return CPU, errors.Errorf("unknown device tag %q, valid values are %q", tag, DeviceStrings())
	}
	return d, nil
}

// MustParse is like Parse, but panics on an unknown tag.
func MustParse(tag string) Device {
	d, err := Parse(tag)
	if err != nil {
		panic(err)
	}
	return d
}
