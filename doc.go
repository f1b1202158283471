// Package debuglines draws debug lines and wireframe shapes on top of a
// real-time 3D or 2D scene.
//
// # Overview
//
// Callers submit line segments and simple shapes every frame. Each
// submission is either immediate (drawn for one frame) or retained (drawn
// until its duration has passed). Lines packs both kinds into a fixed number
// of fixed-capacity chunks that map one-to-one onto GPU vertex buffers, so
// memory stays bounded no matter how many lines come and go.
//
// # Quick Start
//
//	lines, err := debuglines.New(debuglines.WithDepthTest(false))
//	if err != nil {
//		return err
//	}
//
//	// Per frame, from the update logic:
//	lines.LineColored(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 1, 0}, 0, debuglines.Red)
//	lines.Rect(mgl32.Vec3{}, mgl32.Vec2{2, 2}).Color(debuglines.Gold).Duration(3)
//	lines.Sphere().Radius(0.5).Segments(24)
//
//	// Once per frame, after all submissions, before rendering:
//	lines.Update(float32(time.Since(start).Seconds()))
//
//	// Then hand the meshes to a renderer:
//	renderer.Prepare(lines, viewProj)
//	renderer.RecordDraws(pass)
//
// # Frame Order
//
// Update resolves pending shapes, refills the chunk meshes, releases the
// slots of retained lines that have expired, clears the immediate lines and
// records the new timestamp, in that order. A retained line with duration d
// submitted before the Update at time t is drawn by every Update whose
// timestamp is at most t+d.
//
// # Capacity
//
// Each store holds ChunkCapacity*ChunkCount/2 lines. A submission to a full
// store overwrites the most recently placed slot; the number of overwritten
// lines is logged once per frame at warn level and reported in Stats.
//
// # Architecture
//
//   - debuglines: Lines, shape handles, Config, Color, Mesh
//   - shape: shape descriptors and their decomposition into segments
//   - render: wgpu HAL renderer for the chunk meshes
//   - preview: software PNG rendering of the chunk meshes via gg
//   - internal/buffer: the immediate and retained line stores
//   - cmd/debuglines: bench and preview commands
package debuglines
