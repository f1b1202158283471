// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// vertexStride is the byte stride per vertex in the line pipeline.
// Layout per vertex:
//
//	color    (vec4<f32>) = 16 bytes (location 0)
//	position (vec3<f32>) = 12 bytes (location 1)
//
// Total = 28 bytes per vertex.
const vertexStride = 28

// indexSize is the byte size of one uint32 index.
const indexSize = 4

// uniformSize holds one column-major mat4x4<f32>.
const uniformSize = 64

// packVertices interleaves positions and colors into staging, growing it
// if needed, and returns the staging buffer and the valid vertex bytes.
func packVertices(positions []mgl32.Vec3, colors []mgl32.Vec4, staging []byte) ([]byte, []byte) {
	n := min(len(positions), len(colors))
	needed := n * vertexStride
	if cap(staging) < needed {
		staging = make([]byte, needed)
	}
	buf := staging[:needed]
	for i := range n {
		writeVertex(buf[i*vertexStride:], positions[i], colors[i])
	}
	return staging, buf
}

// writeVertex writes a single vertex into buf.
func writeVertex(buf []byte, p mgl32.Vec3, c mgl32.Vec4) {
	binary.LittleEndian.PutUint32(buf[0:4], math.Float32bits(c[0]))
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(c[1]))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(c[2]))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(c[3]))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(p[0]))
	binary.LittleEndian.PutUint32(buf[20:24], math.Float32bits(p[1]))
	binary.LittleEndian.PutUint32(buf[24:28], math.Float32bits(p[2]))
}

// packIndices encodes indices as little-endian uint32 into staging.
func packIndices(indices []uint32, staging []byte) ([]byte, []byte) {
	needed := len(indices) * indexSize
	if cap(staging) < needed {
		staging = make([]byte, needed)
	}
	buf := staging[:needed]
	for i, idx := range indices {
		binary.LittleEndian.PutUint32(buf[i*indexSize:], idx)
	}
	return staging, buf
}

// packMatrix writes m in column-major order, the layout of mat4x4<f32>.
func packMatrix(buf []byte, m mgl32.Mat4) {
	for i, v := range m {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(v))
	}
}
