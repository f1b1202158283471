package debuglines

import "github.com/go-gl/mathgl/mgl32"

// Mesh is the renderer-facing copy of one chunk of a line store.
//
// Lines refills every mesh by copy during Update, so a renderer may read a
// mesh freely until the next Update without ever touching store state.
// Positions and Colors always have equal length, at most ChunkCapacity.
// Retained meshes are drawn indexed: Indices references only the points of
// lines that are still visible, while Positions and Colors may still hold
// expired lines awaiting reuse.
type Mesh struct {
	positions []mgl32.Vec3
	colors    []mgl32.Vec4
	indices   []uint32
	indexed   bool
}

func newMesh(indexed bool) *Mesh {
	return &Mesh{indexed: indexed}
}

// Positions returns the point positions of this chunk.
func (m *Mesh) Positions() []mgl32.Vec3 { return m.positions }

// Colors returns the point colors of this chunk.
func (m *Mesh) Colors() []mgl32.Vec4 { return m.colors }

// Indices returns the draw indices of a retained mesh, or nil for an
// immediate mesh.
func (m *Mesh) Indices() []uint32 { return m.indices }

// Indexed reports whether the mesh must be drawn with Indices.
func (m *Mesh) Indexed() bool { return m.indexed }

// Len returns the number of points in the mesh.
func (m *Mesh) Len() int { return len(m.positions) }

// DrawCount returns the number of vertices a draw call for this mesh
// covers: the index count for retained meshes, the point count otherwise.
func (m *Mesh) DrawCount() int {
	if m.indexed {
		return len(m.indices)
	}
	return len(m.positions)
}

// Empty reports whether drawing the mesh would produce nothing.
func (m *Mesh) Empty() bool { return m.DrawCount() == 0 }

// EachLine calls fn for every line the mesh draws, in draw order.
func (m *Mesh) EachLine(fn func(start, end mgl32.Vec3, startColor, endColor mgl32.Vec4)) {
	if m.indexed {
		for i := 0; i+1 < len(m.indices); i += 2 {
			a, b := m.indices[i], m.indices[i+1]
			fn(m.positions[a], m.positions[b], m.colors[a], m.colors[b])
		}
		return
	}
	for i := 0; i+1 < len(m.positions); i += 2 {
		fn(m.positions[i], m.positions[i+1], m.colors[i], m.colors[i+1])
	}
}

func (m *Mesh) fill(positions []mgl32.Vec3, colors []mgl32.Vec4) {
	m.positions = append(m.positions[:0], positions...)
	m.colors = append(m.colors[:0], colors...)
}

func (m *Mesh) reset() {
	m.positions = m.positions[:0]
	m.colors = m.colors[:0]
	m.indices = m.indices[:0]
}
