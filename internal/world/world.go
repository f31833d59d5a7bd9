package world

import (
	"errors"
	"fmt"

	"sensorsim/internal/logging"
	"sensorsim/internal/physics"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

var ErrInvalidBounds = errors.New("invalid world bounds")

// Bounds is the extent of the world. YMin is the ground height.
type Bounds struct {
	XMin float32 `json:"xMin" yaml:"x_min"`
	XMax float32 `json:"xMax" yaml:"x_max"`
	YMin float32 `json:"yMin" yaml:"y_min"`
	YMax float32 `json:"yMax" yaml:"y_max"`
	ZMin float32 `json:"zMin" yaml:"z_min"`
	ZMax float32 `json:"zMax" yaml:"z_max"`
}

// DefaultBounds is a 60x60 floor at y=0, matching the viewer's grid.
var DefaultBounds = Bounds{XMin: -30, XMax: 30, YMin: 0, YMax: 20, ZMin: -30, ZMax: 30}

func (b Bounds) Validate() error {
	if b.XMin >= b.XMax {
		return fmt.Errorf("%w: xMin %.3f must be below xMax %.3f", ErrInvalidBounds, b.XMin, b.XMax)
	}
	if b.YMin >= b.YMax {
		return fmt.Errorf("%w: yMin %.3f must be below yMax %.3f", ErrInvalidBounds, b.YMin, b.YMax)
	}
	if b.ZMin >= b.ZMax {
		return fmt.Errorf("%w: zMin %.3f must be below zMax %.3f", ErrInvalidBounds, b.ZMin, b.ZMax)
	}
	return nil
}

// Center of the ground rectangle.
func (b Bounds) GroundCenter() rl.Vector3 {
	return rl.Vector3{X: (b.XMin + b.XMax) / 2, Y: b.YMin, Z: (b.ZMin + b.ZMax) / 2}
}

func (b Bounds) GroundSize() rl.Vector2 {
	return rl.Vector2{X: b.XMax - b.XMin, Y: b.ZMax - b.ZMin}
}

// World holds the bounds and owns the ground surface. Until Initialize succeeds
// there is no ground and rays only see obstacles.
type World struct {
	bounds      Bounds
	ground      *physics.PlaneCollider
	initialized bool
	log         *zap.Logger
}

func New(logger *zap.Logger) *World {
	return &World{log: logging.OrNop(logger)}
}

// Initialize replaces the bounds and rebuilds the ground surface. Invalid bounds
// leave the previous state untouched.
func (w *World) Initialize(b Bounds) error {
	if err := b.Validate(); err != nil {
		w.log.Warn("world bounds rejected", zap.Error(err))
		return err
	}
	w.bounds = b
	w.ground = &physics.PlaneCollider{
		Height: b.YMin,
		XMin:   b.XMin,
		XMax:   b.XMax,
		ZMin:   b.ZMin,
		ZMax:   b.ZMax,
	}
	w.initialized = true
	w.log.Debug("world initialized",
		zap.Float32("xMin", b.XMin), zap.Float32("xMax", b.XMax),
		zap.Float32("yMin", b.YMin), zap.Float32("yMax", b.YMax),
		zap.Float32("zMin", b.ZMin), zap.Float32("zMax", b.ZMax))
	return nil
}

func (w *World) Initialized() bool {
	return w.initialized
}

func (w *World) Bounds() Bounds {
	return w.bounds
}

func (w *World) GroundHeight() float32 {
	return w.bounds.YMin
}

// Ground returns the ground collider, or false before Initialize.
func (w *World) Ground() (physics.Collider, bool) {
	if !w.initialized {
		return nil, false
	}
	return w.ground, true
}
