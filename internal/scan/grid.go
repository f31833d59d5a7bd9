package scan

import (
	"math"

	"sensorsim/internal/sensors"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const (
	// FullTurnSteps is the azimuth sample count for a 360 degree sensor.
	FullTurnSteps = 72
	// NominalStepDeg is the target azimuth spacing for partial fields of view.
	NominalStepDeg = 5.0
)

// HorizontalSteps returns the number of azimuth samples per channel.
func HorizontalSteps(hFov float32) int {
	if hFov == 360 {
		return FullTurnSteps
	}
	n := int(math.Ceil(float64(hFov) / NominalStepDeg))
	if n < 1 {
		n = 1
	}
	return n
}

// HorizontalAngles returns the azimuths in degrees, starting at -hFov/2 and
// stopping one step short of +hFov/2.
func HorizontalAngles(def sensors.Definition) []float32 {
	n := HorizontalSteps(def.HFov)
	step := def.HFov / float32(n)
	out := make([]float32, n)
	for j := range out {
		out[j] = -def.HFov/2 + float32(j)*step
	}
	return out
}

// VerticalAngles returns one elevation in degrees per channel.
func VerticalAngles(def sensors.Definition) []float32 {
	channels := def.Channels
	if channels < 1 {
		channels = 1
	}
	out := make([]float32, channels)
	if channels == 1 || def.BeamLayout == sensors.LayoutSinglePlane {
		return out
	}
	step := def.VFov / float32(max(1, channels-1))
	for i := range out {
		out[i] = -def.VFov/2 + float32(i)*step
	}
	return out
}

// LocalDirection is the sensor-frame unit vector for an elevation v and an
// azimuth h, both in degrees. Azimuth turns about +Y, zero azimuth looks down +Z.
func LocalDirection(v, h float32) rl.Vector3 {
	vr := float64(v) * math.Pi / 180
	hr := float64(h) * math.Pi / 180
	return rl.Vector3{
		X: float32(math.Sin(hr) * math.Cos(vr)),
		Y: float32(math.Sin(vr)),
		Z: float32(math.Cos(hr) * math.Cos(vr)),
	}
}

// WorldDirection rotates a local direction by the sensor orientation and normalizes it.
func WorldDirection(local rl.Vector3, orientation rl.Quaternion) rl.Vector3 {
	return rl.Vector3Normalize(rl.Vector3RotateByQuaternion(local, orientation))
}
