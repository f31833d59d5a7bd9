package render

import (
	"sensorsim/internal/obstacles"
	"sensorsim/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
)

var (
	GroundColor   = rl.NewColor(60, 64, 72, 255)
	ObstacleColor = rl.NewColor(170, 150, 120, 255)
	SelectedColor = rl.Gold
)

// Stage owns the ground plane visual and one box visual per obstacle.
type Stage struct {
	ground    *Visual
	obstacles map[string]*Visual
	selected  string
}

func NewStage() *Stage {
	return &Stage{obstacles: make(map[string]*Visual)}
}

// SetGround rebuilds the ground visual from bounds.
func (s *Stage) SetGround(b world.Bounds) {
	if s.ground != nil {
		s.ground.Release()
	}
	s.ground = NewPlane(Plane{Center: b.GroundCenter(), Size: b.GroundSize(), Color: GroundColor})
}

func (s *Stage) Ground() *Visual {
	return s.ground
}

// Sync creates or updates a box for every obstacle. Boxes for obstacles that
// are gone are released; normally the registry remove hook has already done
// that.
func (s *Stage) Sync(all []obstacles.Obstacle, selected string) {
	s.selected = selected
	seen := make(map[string]bool, len(all))
	for _, o := range all {
		seen[o.ID] = true
		box := Box{Center: o.Position, Size: o.Dimensions.Vector(), Color: ObstacleColor}
		if v, ok := s.obstacles[o.ID]; ok {
			v.SetBox(box)
			continue
		}
		s.obstacles[o.ID] = NewBox(box)
	}
	for id := range s.obstacles {
		if !seen[id] {
			s.ReleaseObstacle(id)
		}
	}
}

// ReleaseObstacle is registered as the obstacle registry's remove hook.
func (s *Stage) ReleaseObstacle(id string) {
	if v, ok := s.obstacles[id]; ok {
		v.Release()
		delete(s.obstacles, id)
	}
}

func (s *Stage) Obstacle(id string) (*Visual, bool) {
	v, ok := s.obstacles[id]
	return v, ok
}

func (s *Stage) Len() int {
	return len(s.obstacles)
}

func (s *Stage) Draw() {
	s.ground.Draw()
	for id, v := range s.obstacles {
		v.Draw()
		if id == s.selected {
			b, _ := v.Box()
			b.Wires = true
			b.Color = SelectedColor
			b.Size = rl.Vector3Scale(b.Size, 1.02)
			drawBox(b)
		}
	}
}
