package physics

import rl "github.com/gen2brain/raylib-go/raylib"

type AABB struct {
	Min rl.Vector3
	Max rl.Vector3
}

// NewAABBFromCenter creates an AABB from a center point and full size dimensions.
func NewAABBFromCenter(center, size rl.Vector3) AABB {
	half := rl.Vector3{X: absF(size.X) / 2, Y: absF(size.Y) / 2, Z: absF(size.Z) / 2}
	return AABB{
		Min: rl.Vector3Subtract(center, half),
		Max: rl.Vector3Add(center, half),
	}
}

func (a AABB) Center() rl.Vector3 {
	return rl.Vector3Scale(rl.Vector3Add(a.Min, a.Max), 0.5)
}

func (a AABB) Size() rl.Vector3 {
	return rl.Vector3Subtract(a.Max, a.Min)
}

func (a AABB) Contains(p rl.Vector3) bool {
	return p.X >= a.Min.X && p.X <= a.Max.X &&
		p.Y >= a.Min.Y && p.Y <= a.Max.Y &&
		p.Z >= a.Min.Z && p.Z <= a.Max.Z
}

func (a AABB) Intersects(b AABB) bool {
	return a.Min.X <= b.Max.X && a.Max.X >= b.Min.X &&
		a.Min.Y <= b.Max.Y && a.Max.Y >= b.Min.Y &&
		a.Min.Z <= b.Max.Z && a.Max.Z >= b.Min.Z
}

// BoundingBox converts to raylib's type for picking and debug drawing.
func (a AABB) BoundingBox() rl.BoundingBox {
	return rl.NewBoundingBox(a.Min, a.Max)
}
