package physics

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Collider is anything a range ray can hit.
type Collider interface {
	// Raycast returns the distance along a unit direction to the first surface
	// hit within maxDistance. Distances are never negative.
	Raycast(origin, direction rl.Vector3, maxDistance float32) (float32, bool)
}

type RaycastHit struct {
	// Index of the collider in the slice passed to Raycast.
	Index    int
	Point    rl.Vector3
	Distance float32
}

// Raycast checks every collider and returns the closest hit. On equal distances
// the collider that comes first in the slice wins.
func Raycast(colliders []Collider, origin, direction rl.Vector3, maxDistance float32) (RaycastHit, bool) {
	direction = rl.Vector3Normalize(direction)
	closestHit := RaycastHit{Index: -1, Distance: maxDistance}
	hit := false

	for i, c := range colliders {
		if c == nil {
			continue
		}
		d, ok := c.Raycast(origin, direction, maxDistance)
		if !ok {
			continue
		}
		if !hit || d < closestHit.Distance {
			closestHit.Index = i
			closestHit.Distance = d
			hit = true
		}
	}

	if hit {
		closestHit.Point = rl.Vector3Add(origin, rl.Vector3Scale(direction, closestHit.Distance))
	}
	return closestHit, hit
}

// BoxCollider is an axis-aligned box.
type BoxCollider struct {
	Box AABB
}

func NewBoxCollider(center, size rl.Vector3) *BoxCollider {
	return &BoxCollider{Box: NewAABBFromCenter(center, size)}
}

func (b *BoxCollider) Raycast(origin, direction rl.Vector3, maxDistance float32) (float32, bool) {
	return raycastBox(origin, direction, b.Box, maxDistance)
}

// raycastBox is a slab test. A ray starting inside the box reports its exit face.
func raycastBox(origin, direction rl.Vector3, box AABB, maxDistance float32) (float32, bool) {
	min, max := box.Min, box.Max

	var tmin, tmax float32

	// X slab
	if direction.X != 0 {
		t1 := (min.X - origin.X) / direction.X
		t2 := (max.X - origin.X) / direction.X
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = t1
		tmax = t2
	} else if origin.X < min.X || origin.X > max.X {
		return 0, false
	} else {
		tmin = -1e30
		tmax = 1e30
	}

	// Y slab
	if direction.Y != 0 {
		t1 := (min.Y - origin.Y) / direction.Y
		t2 := (max.Y - origin.Y) / direction.Y
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Y < min.Y || origin.Y > max.Y {
		return 0, false
	}

	if tmin > tmax {
		return 0, false
	}

	// Z slab
	if direction.Z != 0 {
		t1 := (min.Z - origin.Z) / direction.Z
		t2 := (max.Z - origin.Z) / direction.Z
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		if t1 > tmin {
			tmin = t1
		}
		if t2 < tmax {
			tmax = t2
		}
	} else if origin.Z < min.Z || origin.Z > max.Z {
		return 0, false
	}

	if tmin > tmax || tmax < 0 || tmin > maxDistance {
		return 0, false
	}

	t := tmin
	if t < 0 {
		t = tmax
	}
	if t < 0 || t > maxDistance {
		return 0, false
	}
	return t, true
}

// PlaneCollider is a horizontal rectangle at Height facing up. Only rays
// travelling downward can hit it.
type PlaneCollider struct {
	Height     float32
	XMin, XMax float32
	ZMin, ZMax float32
}

func (p *PlaneCollider) Raycast(origin, direction rl.Vector3, maxDistance float32) (float32, bool) {
	if direction.Y >= 0 {
		return 0, false
	}
	t := (p.Height - origin.Y) / direction.Y
	if t < 0 || t > maxDistance {
		return 0, false
	}
	x := origin.X + direction.X*t
	z := origin.Z + direction.Z*t
	if x < p.XMin || x > p.XMax || z < p.ZMin || z > p.ZMax {
		return 0, false
	}
	return t, true
}

func absF(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}
