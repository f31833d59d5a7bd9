// Package scene ties the world, the obstacle registry and the sensor
// registries together into the snapshot the scan engine reads each tick.
package scene

import (
	"sensorsim/internal/logging"
	"sensorsim/internal/obstacles"
	"sensorsim/internal/physics"
	"sensorsim/internal/sensors"
	"sensorsim/internal/world"

	"go.uber.org/zap"
)

type Scene struct {
	World     *world.World
	Obstacles *obstacles.Registry
	Catalog   *sensors.Catalog
	Sensors   *sensors.Registry

	log *zap.Logger
}

// New builds an empty scene around an existing catalog. The world is not
// initialized until Initialize or Restore is called.
func New(catalog *sensors.Catalog, logger *zap.Logger) *Scene {
	logger = logging.OrNop(logger)
	if catalog == nil {
		catalog = sensors.NewCatalog(logger)
	}
	return &Scene{
		World:     world.New(logger),
		Obstacles: obstacles.NewRegistry(logger),
		Catalog:   catalog,
		Sensors:   sensors.NewRegistry(catalog, logger),
		log:       logger,
	}
}

func (s *Scene) Initialize(b world.Bounds) error {
	return s.World.Initialize(b)
}

func (s *Scene) Instances() []sensors.Instance {
	return s.Sensors.GetAllInstances()
}

func (s *Scene) Definition(id string) (sensors.Definition, bool) {
	return s.Catalog.GetDefinitionByID(id)
}

// Collidables returns every obstacle collider followed by the ground, so an
// obstacle wins a distance tie with the floor.
func (s *Scene) Collidables() []physics.Collider {
	out := s.Obstacles.Collidables()
	if ground, ok := s.World.Ground(); ok {
		out = append(out, ground)
	}
	return out
}
