package debuglines

import (
	"context"
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/debuglines/internal/buffer"
	"github.com/gogpu/debuglines/shape"
)

// Lines collects debug lines and shapes and turns them into per-chunk
// meshes once per frame.
//
// Lines submitted with a zero (or negative) duration are immediate: they
// are drawn in the next Update and then dropped. Lines with a positive
// duration are retained until the timestamp of their submission plus the
// duration has passed. The submission timestamp is the now of the previous
// Update; lines submitted before the first Update take the now of that
// first Update, whatever clock the caller uses.
//
// Lines is not safe for concurrent use. All submissions for a frame must
// happen before that frame's Update, from a single goroutine or under the
// caller's own synchronization.
type Lines struct {
	cfg    Config
	layout buffer.Layout

	immediate *buffer.Immediate
	retained  *buffer.Retained
	shapes    shapeArena

	immediateMeshes []*Mesh
	retainedMeshes  []*Mesh

	// segments is scratch space for shape decomposition.
	segments []shape.Segment

	now     float32
	frame   uint64
	started bool
	enabled bool
	dropped int
	stats   Stats
}

// Stats describes the state after the most recent Update.
type Stats struct {
	// Frame counts completed Update calls.
	Frame uint64

	// Immediate is the number of immediate lines the frame consumed.
	Immediate int

	// Retained is the number of occupied retained slots, expired ones
	// included.
	Retained int

	// Visible is the number of retained lines visible at the frame's
	// timestamp, drawn or not.
	Visible int

	// FreeSlots is the number of retained slots released for reuse.
	FreeSlots int

	// Shapes is the number of shapes resolved in the frame.
	Shapes int

	// Dropped is the number of submissions since the previous Update that
	// overwrote another line because a store was full.
	Dropped int
}

// New creates a Lines instance from DefaultConfig and the given options.
func New(opts ...Option) (*Lines, error) {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	layout := buffer.Layout{ChunkCapacity: cfg.ChunkCapacity, ChunkCount: cfg.ChunkCount}
	l := &Lines{
		cfg:             cfg,
		layout:          layout,
		immediate:       buffer.NewImmediate(layout),
		retained:        buffer.NewRetained(layout),
		immediateMeshes: make([]*Mesh, cfg.ChunkCount),
		retainedMeshes:  make([]*Mesh, cfg.ChunkCount),
		enabled:         cfg.Enabled,
	}
	for i := range cfg.ChunkCount {
		l.immediateMeshes[i] = newMesh(false)
		l.retainedMeshes[i] = newMesh(true)
	}

	Logger().Debug("debuglines: created",
		slog.Int("chunk_capacity", cfg.ChunkCapacity),
		slog.Int("chunk_count", cfg.ChunkCount),
		slog.Int("max_lines", cfg.MaxLines()))
	return l, nil
}

// Line submits a line in the default color.
func (l *Lines) Line(start, end mgl32.Vec3, duration float32) {
	l.LineGradient(start, end, duration, l.cfg.DefaultColor, l.cfg.DefaultColor)
}

// LineColored submits a line in a single color.
func (l *Lines) LineColored(start, end mgl32.Vec3, duration float32, color Color) {
	l.LineGradient(start, end, duration, color, color)
}

// LineGradient submits a line whose color blends from startColor to
// endColor.
func (l *Lines) LineGradient(start, end mgl32.Vec3, duration float32, startColor, endColor Color) {
	l.add(start, end, startColor.Vec4(), endColor.Vec4(), duration)
}

// Line2D submits a line in the z = 0 plane.
func (l *Lines) Line2D(start, end mgl32.Vec2, duration float32, color Color) {
	l.LineColored(start.Vec3(0), end.Vec3(0), duration, color)
}

func (l *Lines) add(start, end mgl32.Vec3, startColor, endColor mgl32.Vec4, duration float32) {
	if duration > 0 {
		if _, evicted := l.retained.AddLine(start, end, startColor, endColor, l.now, duration); evicted {
			l.dropped++
		}
		return
	}
	if l.immediate.AddLine(start, end, startColor, endColor) {
		l.dropped++
	}
}

// Update runs the per-frame sequence with now as the current timestamp in
// seconds:
//
//  1. pending shapes are decomposed into lines (in the first Update, lines
//     queued so far are restamped to now),
//  2. every chunk mesh is refilled from the stores,
//  3. retained lines that expired before now release their slots,
//  4. the immediate store is cleared,
//  5. now becomes the submission time of lines added before the next Update.
//
// Step 2 precedes step 3 so a retained line is drawn in every frame up to
// and including the one whose timestamp equals its expiry, and its slot is
// never reused before that frame's meshes were built.
func (l *Lines) Update(now float32) {
	shapes := l.resolveShapes()
	if !l.started {
		l.retained.Shift(now - l.now)
		l.started = true
	}
	l.fillMeshes(now)
	l.retained.MarkExpired(now)
	l.immediate.Clear()
	l.now = now
	l.frame++

	l.stats.Frame = l.frame
	l.stats.Retained = l.retained.Lines()
	l.stats.FreeSlots = l.retained.FreeSlots()
	l.stats.Shapes = shapes
	l.stats.Dropped = l.dropped

	log := Logger()
	if l.dropped > 0 {
		log.Warn("debuglines: line capacity exceeded, lines were overwritten",
			slog.Int("dropped", l.dropped),
			slog.Int("max_lines", l.layout.MaxLines()))
	}
	l.dropped = 0
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("debuglines: frame",
			slog.Uint64("frame", l.frame),
			slog.Int("immediate", l.stats.Immediate),
			slog.Int("visible", l.stats.Visible),
			slog.Int("retained", l.stats.Retained),
			slog.Int("free", l.stats.FreeSlots))
	}
}

func (l *Lines) fillMeshes(now float32) {
	l.stats.Immediate = l.immediate.Lines()
	l.stats.Visible = 0

	if !l.enabled {
		for i := range l.immediateMeshes {
			l.immediateMeshes[i].reset()
			l.retainedMeshes[i].reset()
		}
		l.stats.Visible = l.retained.Visible(now)
		return
	}

	for i, m := range l.immediateMeshes {
		m.fill(l.immediate.FillChunk(i))
	}
	for i, m := range l.retainedMeshes {
		m.fill(l.retained.FillChunk(i))
		m.indices = l.retained.AppendIndices(m.indices[:0], now, i)
		l.stats.Visible += len(m.indices) / 2
	}
}

// ImmediateMeshes returns one mesh per chunk holding the immediate lines
// of the last Update. The meshes are reused across frames.
func (l *Lines) ImmediateMeshes() []*Mesh {
	return l.immediateMeshes
}

// RetainedMeshes returns one indexed mesh per chunk holding the retained
// lines of the last Update. The meshes are reused across frames.
func (l *Lines) RetainedMeshes() []*Mesh {
	return l.retainedMeshes
}

// SetEnabled turns drawing on or off. While disabled, Update produces empty
// meshes but keeps accepting, expiring and recycling lines.
func (l *Lines) SetEnabled(enabled bool) {
	l.enabled = enabled
}

// Enabled reports whether drawing is on.
func (l *Lines) Enabled() bool {
	return l.enabled
}

// Toggle flips the enabled flag and returns the new state.
func (l *Lines) Toggle() bool {
	l.enabled = !l.enabled
	return l.enabled
}

// ClearRetained drops every retained line immediately.
func (l *Lines) ClearRetained() {
	l.retained.Clear()
}

// Now returns the timestamp of the last Update. Lines submitted before the
// next Update expire relative to it.
func (l *Lines) Now() float32 {
	return l.now
}

// Stats returns the statistics of the last Update.
func (l *Lines) Stats() Stats {
	return l.stats
}

// Config returns the configuration the instance was created with.
func (l *Lines) Config() Config {
	return l.cfg
}

// MaxLines returns the line capacity of each of the two stores.
func (l *Lines) MaxLines() int {
	return l.layout.MaxLines()
}

// PendingImmediate returns the number of immediate lines submitted since
// the last Update, not counting pending shapes.
func (l *Lines) PendingImmediate() int {
	return l.immediate.Lines()
}
