package scene

import (
	"fmt"
	"slices"

	"github.com/Faultbox/midgard-sr/internal/engine/lighting"
	"github.com/Faultbox/midgard-sr/internal/engine/model"
	"github.com/Faultbox/midgard-sr/pkg/math"
)

// Renderable is one drawable queued for a frame: a mesh and material placed
// in the world by its cumulative model transform.
type Renderable struct {
	Key       string
	Mesh      *model.Mesh
	Material  *model.Material
	Transform math.Mat4
}

// Center returns the world-space center of the mesh bounds.
func (r *Renderable) Center() math.Vec3 {
	return r.Transform.TransformPoint(r.Mesh.Bounds().Center())
}

// Comparator orders two renderables as seen from eye. It returns a negative
// number when a must be drawn before b.
type Comparator func(a, b *Renderable, eye math.Vec3) int

// FIFO keeps submission order.
func FIFO(a, b *Renderable, eye math.Vec3) int { return 0 }

// BackToFront draws the farthest renderable first.
func BackToFront(a, b *Renderable, eye math.Vec3) int {
	da := a.Center().Distance(eye)
	db := b.Center().Distance(eye)
	switch {
	case da > db:
		return -1
	case da < db:
		return 1
	}
	return 0
}

// FrontToBack draws the nearest renderable first.
func FrontToBack(a, b *Renderable, eye math.Vec3) int {
	return BackToFront(b, a, eye)
}

// ParseOrder maps a configuration name to a comparator.
func ParseOrder(name string) (Comparator, error) {
	switch name {
	case "fifo":
		return FIFO, nil
	case "back-to-front", "":
		return BackToFront, nil
	case "front-to-back":
		return FrontToBack, nil
	}
	return nil, fmt.Errorf("unknown queue order %q", name)
}

// Queue collects the renderables and lights of one frame.
type Queue struct {
	items  []Renderable
	lights *lighting.Buffer
	order  Comparator
}

// NewQueue returns an empty queue ordered back to front.
func NewQueue() *Queue {
	return &Queue{
		lights: lighting.NewBuffer(),
		order:  BackToFront,
	}
}

// Add queues a model with its cumulative transform.
func (q *Queue) Add(m *model.Model3D, transform math.Mat4) {
	if m == nil || m.Mesh == nil {
		return
	}
	q.AddRenderable(Renderable{
		Key:       m.Key,
		Mesh:      m.Mesh,
		Material:  m.Material,
		Transform: transform,
	})
}

// AddRenderable queues r. Renderables without a mesh are dropped.
func (q *Queue) AddRenderable(r Renderable) {
	if r.Mesh == nil {
		return
	}
	if r.Material == nil {
		r.Material = model.DefaultMaterial()
	}
	q.items = append(q.items, r)
}

// AddLight queues a world-space light. It reports false when the light
// buffer is full.
func (q *Queue) AddLight(l lighting.Light) bool {
	return q.lights.Add(l)
}

// Items returns the queued renderables in their current order.
func (q *Queue) Items() []Renderable { return q.items }

// Lights returns the queued lights.
func (q *Queue) Lights() []lighting.Light { return q.lights.Lights }

// Len returns the number of queued renderables.
func (q *Queue) Len() int { return len(q.items) }

// Clear empties the queue for the next frame.
func (q *Queue) Clear() {
	clear(q.items)
	q.items = q.items[:0]
	q.lights.Clear()
}

// SetComparator replaces the ordering. A nil comparator means FIFO.
func (q *Queue) SetComparator(c Comparator) {
	if c == nil {
		c = FIFO
	}
	q.order = c
}

// Sort orders the renderables for drawing as seen from eye. Ties keep
// submission order.
func (q *Queue) Sort(eye math.Vec3) {
	slices.SortStableFunc(q.items, func(a, b Renderable) int {
		return q.order(&a, &b, eye)
	})
}
