// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render draws debuglines chunk meshes on a wgpu HAL device.
//
// # Key Principle
//
// The renderer RECEIVES a GPU device from the host application, it does NOT
// create its own. Use NewFromProvider with a gogpu device provider, or
// NewLineRenderer with a hal.Device and hal.Queue directly.
//
// # Frame Flow
//
//	lines.Update(now)                  // debuglines: fill chunk meshes
//	renderer.Prepare(lines, viewProj)  // upload meshes and camera
//	renderer.RecordDraws(pass)         // inside the host's render pass
//
// Immediate chunks are drawn with Draw, retained chunks with DrawIndexed so
// expired lines that still occupy a slot are skipped.
//
// # Pipeline
//
// Lines are a LineList without culling. With Config.DepthTest the pipeline
// compares with Less and writes depth; otherwise lines are always on top.
// The depth/stencil attachment format and sample count come from Target.
//
// Build with -tags nogpu to leave this package empty apart from the vertex
// packing helpers.
package render
