package scene

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"sensorsim/internal/obstacles"
	"sensorsim/internal/sensors"
	"sensorsim/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

// --- JSON types ---

type File struct {
	Bounds    world.Bounds     `json:"bounds"`
	Obstacles []ObstacleRecord `json:"obstacles"`
	Sensors   []SensorRecord   `json:"sensors"`
}

type ObstacleRecord struct {
	ID         string     `json:"id"`
	Position   [3]float32 `json:"position"`
	Dimensions [3]float32 `json:"dimensions"`
}

type SensorRecord struct {
	ID           string     `json:"id"`
	DefinitionID string     `json:"definitionId"`
	Position     [3]float32 `json:"position"`
	// Rotation is roll, pitch, yaw in degrees.
	Rotation [3]float32 `json:"rotation"`
	Visible  bool       `json:"visible"`
}

func vec(v rl.Vector3) [3]float32 {
	return [3]float32{v.X, v.Y, v.Z}
}

func toVector(a [3]float32) rl.Vector3 {
	return rl.Vector3{X: a[0], Y: a[1], Z: a[2]}
}

// --- Snapshot / restore ---

// Snapshot captures the bounds and both registries. Obstacles keep insertion
// order and sensors are ordered by id.
func (s *Scene) Snapshot() File {
	f := File{
		Bounds:    s.World.Bounds(),
		Obstacles: make([]ObstacleRecord, 0, s.Obstacles.Len()),
		Sensors:   make([]SensorRecord, 0, s.Sensors.Len()),
	}
	for _, o := range s.Obstacles.GetAll() {
		f.Obstacles = append(f.Obstacles, ObstacleRecord{
			ID:         o.ID,
			Position:   vec(o.Position),
			Dimensions: [3]float32{o.Dimensions.Width, o.Dimensions.Height, o.Dimensions.Depth},
		})
	}
	for _, in := range s.Sensors.GetAllInstances() {
		f.Sensors = append(f.Sensors, SensorRecord{
			ID:           in.ID,
			DefinitionID: in.DefinitionID,
			Position:     vec(in.Position),
			Rotation:     [3]float32{in.Rotation.Roll, in.Rotation.Pitch, in.Rotation.Yaw},
			Visible:      in.Visible,
		})
	}
	return f
}

// Restore replaces the scene with f. Invalid bounds abort before anything is
// touched. Otherwise both registries are cleared and refilled; records the
// registries reject are skipped and reported in the returned error.
func (s *Scene) Restore(f File) error {
	if err := f.Bounds.Validate(); err != nil {
		return fmt.Errorf("restore scene: %w", err)
	}
	if err := s.World.Initialize(f.Bounds); err != nil {
		return fmt.Errorf("restore scene: %w", err)
	}

	s.Obstacles.Clear()
	s.Sensors.Clear()

	var errs []error
	for _, rec := range f.Obstacles {
		o := obstacles.Obstacle{
			ID:       rec.ID,
			Position: toVector(rec.Position),
			Dimensions: obstacles.Dimensions{
				Width: rec.Dimensions[0], Height: rec.Dimensions[1], Depth: rec.Dimensions[2],
			},
		}
		if !s.Obstacles.Add(o) {
			errs = append(errs, fmt.Errorf("obstacle %q rejected", rec.ID))
		}
	}
	for _, rec := range f.Sensors {
		in := sensors.Instance{
			ID:           rec.ID,
			DefinitionID: rec.DefinitionID,
			Position:     toVector(rec.Position),
			Rotation:     sensors.Rotation{Roll: rec.Rotation[0], Pitch: rec.Rotation[1], Yaw: rec.Rotation[2]},
			Visible:      rec.Visible,
		}
		if !s.Sensors.AddInstance(in) {
			errs = append(errs, fmt.Errorf("sensor %q rejected", rec.ID))
		}
	}

	s.log.Info("scene restored",
		zap.Int("obstacles", s.Obstacles.Len()),
		zap.Int("sensors", s.Sensors.Len()),
		zap.Int("rejected", len(errs)))
	return errors.Join(errs...)
}

// --- Files ---

func Encode(f File) ([]byte, error) {
	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal scene: %w", err)
	}
	return data, nil
}

func Decode(data []byte) (File, error) {
	var f File
	if err := json.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("parse scene: %w", err)
	}
	return f, nil
}

func (s *Scene) SaveFile(path string) error {
	data, err := Encode(s.Snapshot())
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write scene: %w", err)
	}
	return nil
}

func (s *Scene) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read scene: %w", err)
	}
	f, err := Decode(data)
	if err != nil {
		return err
	}
	return s.Restore(f)
}
