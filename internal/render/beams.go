package render

import (
	"math"
	"sort"

	"sensorsim/internal/logging"
	"sensorsim/internal/scan"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const DefaultBeamRadius float32 = 0.02

var (
	HitColor  = rl.NewColor(255, 80, 60, 200)
	MissColor = rl.NewColor(80, 200, 255, 90)
)

// Beams keeps one group of beam visuals per sensor. It is the scan engine's
// presentation adapter.
type Beams struct {
	groups map[string]*Visual
	radius float32
	log    *zap.Logger
}

var _ scan.Adapter = (*Beams)(nil)

func NewBeams(radius float32, logger *zap.Logger) *Beams {
	if radius <= 0 {
		radius = DefaultBeamRadius
	}
	return &Beams{
		groups: make(map[string]*Visual),
		radius: radius,
		log:    logging.OrNop(logger),
	}
}

// Replace discards the sensor's previous beams and builds a fresh group from
// samples.
func (b *Beams) Replace(sensorID string, samples []scan.Sample) {
	if old, ok := b.groups[sensorID]; ok {
		old.Release()
	}
	group := NewGroup()
	for _, s := range samples {
		group.Add(NewBox(BeamBox(s, b.radius)))
	}
	b.groups[sensorID] = group
}

func (b *Beams) Release(sensorID string) {
	group, ok := b.groups[sensorID]
	if !ok {
		return
	}
	group.Release()
	delete(b.groups, sensorID)
	b.log.Debug("beams released", zap.String("sensor", sensorID))
}

func (b *Beams) ReleaseAll() {
	for id := range b.groups {
		b.Release(id)
	}
}

// Count reports how many beam visuals are live for a sensor.
func (b *Beams) Count(sensorID string) int {
	return b.groups[sensorID].Leaves()
}

// Sensors lists the sensors that currently have beams, sorted.
func (b *Beams) Sensors() []string {
	ids := make([]string, 0, len(b.groups))
	for id := range b.groups {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (b *Beams) Draw() {
	for _, g := range b.groups {
		g.Draw()
	}
}

// BeamBox is a thin box from the sample origin to its resolved end point.
func BeamBox(s scan.Sample, radius float32) Box {
	axis, angle := alignZ(s.Direction)
	color := MissColor
	if s.Hit {
		color = HitColor
	}
	return Box{
		Center: rl.Vector3Add(s.Origin, rl.Vector3Scale(s.Direction, s.Distance/2)),
		Size:   rl.Vector3{X: radius, Y: radius, Z: s.Distance},
		Axis:   axis,
		Angle:  angle,
		Color:  color,
	}
}

// alignZ returns the axis and angle in degrees that rotate +Z onto dir.
func alignZ(dir rl.Vector3) (rl.Vector3, float32) {
	dir = rl.Vector3Normalize(dir)
	dot := float64(dir.Z)
	switch {
	case dot > 0.99999:
		return rl.Vector3{}, 0
	case dot < -0.99999:
		return rl.Vector3{Y: 1}, 180
	}
	axis := rl.Vector3Normalize(rl.Vector3{X: -dir.Y, Y: dir.X})
	return axis, float32(math.Acos(dot) * 180 / math.Pi)
}
