// Package obstacles owns the axis-aligned box obstacles of a scene.
//
// A Registry is not safe for concurrent use. The viewer mutates and evaluates
// from its frame loop goroutine only.
package obstacles

import (
	"fmt"

	"sensorsim/internal/logging"
	"sensorsim/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Dimensions are full extents along X, Y and Z.
type Dimensions struct {
	Width  float32
	Height float32
	Depth  float32
}

func (d Dimensions) Vector() rl.Vector3 {
	return rl.Vector3{X: d.Width, Y: d.Height, Z: d.Depth}
}

func (d Dimensions) Validate() error {
	if d.Width <= 0 || d.Height <= 0 || d.Depth <= 0 {
		return fmt.Errorf("dimensions must be positive, got %gx%gx%g", d.Width, d.Height, d.Depth)
	}
	return nil
}

// Obstacle is a box centered on Position. Obstacles never rotate.
type Obstacle struct {
	ID         string
	Position   rl.Vector3
	Dimensions Dimensions
}

func (o Obstacle) AABB() physics.AABB {
	return physics.NewAABBFromCenter(o.Position, o.Dimensions.Vector())
}

type entry struct {
	obstacle Obstacle
	collider *physics.BoxCollider
	dirty    bool
}

type Registry struct {
	entries map[string]*entry
	order   []string
	// selected is the single edit handle; empty when nothing is attached.
	selected string
	onRemove []func(id string)
	log      *zap.Logger
}

func NewRegistry(logger *zap.Logger) *Registry {
	return &Registry{
		entries: make(map[string]*entry),
		order:   make([]string, 0),
		log:     logging.OrNop(logger),
	}
}

// OnRemove registers a hook that runs synchronously whenever an obstacle is removed.
func (r *Registry) OnRemove(fn func(id string)) {
	r.onRemove = append(r.onRemove, fn)
}

// Add stores an obstacle. Ids are not checked for uniqueness: re-adding an id
// overwrites the previous record in place. Callers check GetByID first.
func (r *Registry) Add(o Obstacle) bool {
	if err := o.Dimensions.Validate(); err != nil {
		r.log.Warn("obstacle rejected", zap.String("id", o.ID), zap.Error(err))
		return false
	}
	if e, exists := r.entries[o.ID]; exists {
		e.obstacle = o
		e.dirty = true
		return true
	}
	r.entries[o.ID] = &entry{obstacle: o, dirty: true}
	r.order = append(r.order, o.ID)
	return true
}

// Update applies whichever of position and dimensions is non-nil.
func (r *Registry) Update(id string, position *rl.Vector3, dims *Dimensions) bool {
	e, ok := r.entries[id]
	if !ok {
		r.log.Warn("update of unknown obstacle", zap.String("id", id))
		return false
	}
	if dims != nil {
		if err := dims.Validate(); err != nil {
			r.log.Warn("obstacle update rejected", zap.String("id", id), zap.Error(err))
			return false
		}
		e.obstacle.Dimensions = *dims
	}
	if position != nil {
		e.obstacle.Position = *position
	}
	e.dirty = true
	return true
}

// Remove detaches the edit handle if it points at id, then drops the obstacle
// and its collider.
func (r *Registry) Remove(id string) bool {
	if _, ok := r.entries[id]; !ok {
		r.log.Warn("remove of unknown obstacle", zap.String("id", id))
		return false
	}
	if r.selected == id {
		r.selected = ""
	}
	delete(r.entries, id)
	for i, oid := range r.order {
		if oid == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	for _, fn := range r.onRemove {
		fn(id)
	}
	return true
}

// Clear removes every obstacle, running the remove hooks for each.
func (r *Registry) Clear() {
	ids := append([]string(nil), r.order...)
	for _, id := range ids {
		r.Remove(id)
	}
}

func (r *Registry) GetByID(id string) (Obstacle, bool) {
	e, ok := r.entries[id]
	if !ok {
		return Obstacle{}, false
	}
	return e.obstacle, true
}

// GetAll returns a copy of every obstacle in insertion order.
func (r *Registry) GetAll() []Obstacle {
	out := make([]Obstacle, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.entries[id].obstacle)
	}
	return out
}

func (r *Registry) Len() int {
	return len(r.order)
}

// Collidables returns one collider per obstacle in insertion order, rebuilding
// any whose position or dimensions changed since the last call.
func (r *Registry) Collidables() []physics.Collider {
	out := make([]physics.Collider, 0, len(r.order))
	for _, id := range r.order {
		e := r.entries[id]
		if e.dirty || e.collider == nil {
			e.collider = physics.NewBoxCollider(e.obstacle.Position, e.obstacle.Dimensions.Vector())
			e.dirty = false
		}
		out = append(out, e.collider)
	}
	return out
}

// Select attaches the edit handle to id, detaching it from any other obstacle.
func (r *Registry) Select(id string) bool {
	if _, ok := r.entries[id]; !ok {
		r.log.Warn("select of unknown obstacle", zap.String("id", id))
		return false
	}
	r.selected = id
	return true
}

func (r *Registry) Deselect() {
	r.selected = ""
}

func (r *Registry) Selected() (Obstacle, bool) {
	if r.selected == "" {
		return Obstacle{}, false
	}
	return r.GetByID(r.selected)
}
