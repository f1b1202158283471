//go:build !nogpu

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// DeviceHandle provides GPU device access from the host application.
//
// The host (for example a gogpu.App) owns the device; the line renderer
// RECEIVES it and never creates one. The handle must additionally expose
// HalDevice() any and HalQueue() any returning hal.Device and hal.Queue.
type DeviceHandle = gpucontext.DeviceProvider

// ErrNoHAL is returned when a DeviceHandle does not expose usable HAL
// objects.
var ErrNoHAL = errors.New("render: device handle does not expose HAL types")

// halProvider is the optional extension implemented by gogpu device
// providers.
type halProvider interface {
	HalDevice() any
	HalQueue() any
}

// halObjects extracts the HAL device and queue from a DeviceHandle.
func halObjects(handle DeviceHandle) (hal.Device, hal.Queue, error) {
	hp, ok := handle.(halProvider)
	if !ok {
		return nil, nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrNoHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrNoHAL)
	}
	return device, queue, nil
}

// Target describes the attachments of the render pass the lines are drawn
// into.
type Target struct {
	// ColorFormat is the format of the color attachment.
	ColorFormat gputypes.TextureFormat

	// DepthFormat is the format of the depth attachment. The pass must
	// have one; with depth testing off it is only compared with Always.
	DepthFormat gputypes.TextureFormat

	// SampleCount is the MSAA sample count of both attachments.
	SampleCount uint32
}

// DefaultTarget returns a single-sampled BGRA8 target with the combined
// depth/stencil format used by gogpu render sessions.
func DefaultTarget() Target {
	return Target{
		ColorFormat: gputypes.TextureFormatBGRA8Unorm,
		DepthFormat: gputypes.TextureFormatDepth24PlusStencil8,
		SampleCount: 1,
	}
}

// NullDeviceHandle is a DeviceHandle without a device. Renderers cannot be
// created from it; it stands in where GPU output is switched off.
type NullDeviceHandle struct{}

// Device returns nil for the null device.
func (NullDeviceHandle) Device() gpucontext.Device { return nil }

// Queue returns nil for the null device.
func (NullDeviceHandle) Queue() gpucontext.Queue { return nil }

// Adapter returns nil for the null device.
func (NullDeviceHandle) Adapter() gpucontext.Adapter { return nil }

// SurfaceFormat returns undefined format for the null device.
func (NullDeviceHandle) SurfaceFormat() gputypes.TextureFormat {
	return gputypes.TextureFormatUndefined
}

var _ DeviceHandle = NullDeviceHandle{}
