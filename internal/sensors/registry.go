package sensors

import (
	"sort"

	"sensorsim/internal/logging"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// Rotation is an orientation in degrees.
type Rotation struct {
	Roll  float32
	Pitch float32
	Yaw   float32
}

var (
	axisX = rl.Vector3{X: 1}
	axisY = rl.Vector3{Y: 1}
	axisZ = rl.Vector3{Z: 1}
)

// Quaternion composes yaw about Y, then pitch about X, then roll about Z
// (intrinsic), i.e. q = qYaw * qPitch * qRoll.
func (r Rotation) Quaternion() rl.Quaternion {
	qYaw := rl.QuaternionFromAxisAngle(axisY, r.Yaw*rl.Deg2rad)
	qPitch := rl.QuaternionFromAxisAngle(axisX, r.Pitch*rl.Deg2rad)
	qRoll := rl.QuaternionFromAxisAngle(axisZ, r.Roll*rl.Deg2rad)
	return rl.QuaternionMultiply(rl.QuaternionMultiply(qYaw, qPitch), qRoll)
}

// Instance is a sensor placed in the world.
type Instance struct {
	ID           string
	DefinitionID string
	Position     rl.Vector3
	Rotation     Rotation
	Visible      bool
}

// Registry holds placed sensor instances. Like the obstacle registry it is
// confined to the goroutine that runs the frame loop.
type Registry struct {
	catalog   *Catalog
	instances map[string]*Instance
	onRemove  []func(id string)
	log       *zap.Logger
}

func NewRegistry(catalog *Catalog, logger *zap.Logger) *Registry {
	return &Registry{
		catalog:   catalog,
		instances: make(map[string]*Instance),
		log:       logging.OrNop(logger),
	}
}

func (r *Registry) Catalog() *Catalog {
	return r.catalog
}

// OnRemove registers a hook that runs synchronously before RemoveInstance returns.
// The presentation layer uses it to free the instance's visuals.
func (r *Registry) OnRemove(fn func(id string)) {
	r.onRemove = append(r.onRemove, fn)
}

// AddInstance places a sensor. An unknown definition id is logged and nothing
// is created. An existing id is overwritten.
func (r *Registry) AddInstance(in Instance) bool {
	if _, ok := r.catalog.GetDefinitionByID(in.DefinitionID); !ok {
		r.log.Warn("sensor instance rejected: unknown definition",
			zap.String("id", in.ID), zap.String("definition", in.DefinitionID))
		return false
	}
	stored := in
	r.instances[in.ID] = &stored
	return true
}

// UpdateInstance applies whichever of position and rotation is non-nil.
func (r *Registry) UpdateInstance(id string, position *rl.Vector3, rotation *Rotation) bool {
	in, ok := r.instances[id]
	if !ok {
		r.log.Warn("update of unknown sensor", zap.String("id", id))
		return false
	}
	if position != nil {
		in.Position = *position
	}
	if rotation != nil {
		in.Rotation = *rotation
	}
	return true
}

func (r *Registry) SetVisibility(id string, visible bool) bool {
	in, ok := r.instances[id]
	if !ok {
		r.log.Warn("visibility change of unknown sensor", zap.String("id", id))
		return false
	}
	in.Visible = visible
	return true
}

func (r *Registry) RemoveInstance(id string) bool {
	if _, ok := r.instances[id]; !ok {
		r.log.Warn("remove of unknown sensor", zap.String("id", id))
		return false
	}
	delete(r.instances, id)
	for _, fn := range r.onRemove {
		fn(id)
	}
	return true
}

// Clear removes every instance, running the remove hooks for each.
func (r *Registry) Clear() {
	for _, in := range r.GetAllInstances() {
		r.RemoveInstance(in.ID)
	}
}

func (r *Registry) GetInstance(id string) (Instance, bool) {
	in, ok := r.instances[id]
	if !ok {
		return Instance{}, false
	}
	return *in, true
}

// GetAllInstances returns a copy of every instance ordered by id.
func (r *Registry) GetAllInstances() []Instance {
	out := make([]Instance, 0, len(r.instances))
	for _, in := range r.instances {
		out = append(out, *in)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Registry) Len() int {
	return len(r.instances)
}
