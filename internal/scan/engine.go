// Package scan turns placed sensors into range samples.
//
// Every Evaluate call rebuilds the full sample set of each visible sensor from
// the current registries and hands it to an Adapter, which replaces whatever it
// drew for that sensor last time. Nothing is diffed or cached between calls.
package scan

import (
	"fmt"
	"sort"

	"sensorsim/internal/logging"
	"sensorsim/internal/physics"
	"sensorsim/internal/sensors"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// DefaultMinDistance is the cutoff below which a return is treated as zero
// length and dropped.
const DefaultMinDistance float32 = 1e-3

// Sample is one resolved ray of one sensor.
type Sample struct {
	SensorID string
	Channel  int
	Step     int
	// Elevation and Azimuth are the sensor-frame angles in degrees.
	Elevation float32
	Azimuth   float32
	Origin    rl.Vector3
	Direction rl.Vector3
	Distance  float32
	// Hit is false when nothing was within range and Distance is MaxRange.
	Hit bool
}

// End is the point where the ray stops.
func (s Sample) End() rl.Vector3 {
	return rl.Vector3Add(s.Origin, rl.Vector3Scale(s.Direction, s.Distance))
}

// Source is the per-tick view of the scene the engine reads.
type Source interface {
	Instances() []sensors.Instance
	Definition(id string) (sensors.Definition, bool)
	Collidables() []physics.Collider
}

// Adapter receives samples. Replace discards anything previously held for the
// sensor before taking the new set; Release discards it without replacement.
type Adapter interface {
	Replace(sensorID string, samples []Sample)
	Release(sensorID string)
}

type State int

const (
	NoSamples State = iota
	Sampled
)

func (s State) String() string {
	switch s {
	case Sampled:
		return "sampled"
	default:
		return "no-samples"
	}
}

// Result summarizes one Evaluate call.
type Result struct {
	Sampled  []string
	Skipped  []string
	Released []string
	Samples  int
}

type Engine struct {
	adapter     Adapter
	minDistance float32
	states      map[string]State
	// skipReasons remembers why a sensor was last skipped so a steady bad
	// state is logged once rather than every frame.
	skipReasons map[string]string
	log         *zap.Logger
}

type Option func(*Engine)

func WithMinDistance(d float32) Option {
	return func(e *Engine) {
		if d > 0 {
			e.minDistance = d
		}
	}
}

func New(adapter Adapter, logger *zap.Logger, opts ...Option) *Engine {
	e := &Engine{
		adapter:     adapter,
		minDistance: DefaultMinDistance,
		states:      make(map[string]State),
		skipReasons: make(map[string]string),
		log:         logging.OrNop(logger),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State reports whether the engine currently holds samples for a sensor.
func (e *Engine) State(sensorID string) State {
	return e.states[sensorID]
}

// Evaluate samples every visible sensor in src against src's collidables.
// Sensors that are hidden, unresolvable, or gone since the last call are
// released before Evaluate returns.
func (e *Engine) Evaluate(src Source) Result {
	var res Result
	colliders := src.Collidables()
	instances := src.Instances()
	seen := make(map[string]bool, len(instances))

	for _, in := range instances {
		seen[in.ID] = true

		if !in.Visible {
			e.skip(in.ID, "hidden", &res)
			continue
		}
		def, ok := src.Definition(in.DefinitionID)
		if !ok {
			e.skip(in.ID, "definition "+in.DefinitionID+" not found", &res)
			continue
		}
		if err := def.Validate(); err != nil {
			e.skip(in.ID, err.Error(), &res)
			continue
		}

		samples, err := e.sampleSafely(in, def, colliders)
		if err != nil {
			e.skip(in.ID, err.Error(), &res)
			continue
		}

		e.adapter.Replace(in.ID, samples)
		e.states[in.ID] = Sampled
		delete(e.skipReasons, in.ID)
		res.Sampled = append(res.Sampled, in.ID)
		res.Samples += len(samples)
	}

	var gone []string
	for id := range e.states {
		if !seen[id] {
			gone = append(gone, id)
		}
	}
	sort.Strings(gone)
	for _, id := range gone {
		e.release(id, &res)
		delete(e.skipReasons, id)
	}

	return res
}

func (e *Engine) skip(id, reason string, res *Result) {
	res.Skipped = append(res.Skipped, id)
	if e.skipReasons[id] != reason {
		if reason == "hidden" {
			e.log.Debug("sensor hidden", zap.String("sensor", id))
		} else {
			e.log.Warn("sensor skipped", zap.String("sensor", id), zap.String("reason", reason))
		}
		e.skipReasons[id] = reason
	}
	e.release(id, res)
}

func (e *Engine) release(id string, res *Result) {
	if e.states[id] != Sampled {
		return
	}
	e.adapter.Release(id)
	delete(e.states, id)
	res.Released = append(res.Released, id)
}

// sampleSafely confines a failure while sampling one sensor to that sensor.
func (e *Engine) sampleSafely(in sensors.Instance, def sensors.Definition, colliders []physics.Collider) (samples []Sample, err error) {
	defer func() {
		if r := recover(); r != nil {
			samples = nil
			err = fmt.Errorf("sampling panicked: %v", r)
		}
	}()
	return SampleSensor(in, def, colliders, e.minDistance), nil
}

// SampleSensor casts every ray of the sensor's angular grid and returns the
// samples in channel-major order. Rays that resolve below minDistance are dropped.
func SampleSensor(in sensors.Instance, def sensors.Definition, colliders []physics.Collider, minDistance float32) []Sample {
	verticals := VerticalAngles(def)
	horizontals := HorizontalAngles(def)
	orientation := in.Rotation.Quaternion()
	origin := in.Position

	samples := make([]Sample, 0, len(verticals)*len(horizontals))
	for i, v := range verticals {
		for j, h := range horizontals {
			dir := WorldDirection(LocalDirection(v, h), orientation)

			distance := def.MaxRange
			hitAnything := false
			if hit, ok := physics.Raycast(colliders, origin, dir, def.MaxRange); ok {
				distance = hit.Distance
				hitAnything = true
			}
			if distance < minDistance {
				continue
			}

			samples = append(samples, Sample{
				SensorID:  in.ID,
				Channel:   i,
				Step:      j,
				Elevation: v,
				Azimuth:   h,
				Origin:    origin,
				Direction: dir,
				Distance:  distance,
				Hit:       hitAnything,
			})
		}
	}
	return samples
}
