package render

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Draw renders v and its children. Must be called between BeginMode3D and
// EndMode3D.
func (v *Visual) Draw() {
	if v == nil || v.released {
		return
	}
	switch v.kind {
	case KindBox:
		drawBox(v.box)
	case KindPlane:
		rl.DrawPlane(v.plane.Center, v.plane.Size, v.plane.Color)
	case KindGroup:
		for _, c := range v.children {
			c.Draw()
		}
	}
}

func drawBox(b Box) {
	if b.Angle == 0 || (b.Axis == rl.Vector3{}) {
		if b.Wires {
			rl.DrawCubeWiresV(b.Center, b.Size, b.Color)
		} else {
			rl.DrawCubeV(b.Center, b.Size, b.Color)
		}
		return
	}
	rl.PushMatrix()
	rl.Translatef(b.Center.X, b.Center.Y, b.Center.Z)
	rl.Rotatef(b.Angle, b.Axis.X, b.Axis.Y, b.Axis.Z)
	if b.Wires {
		rl.DrawCubeWiresV(rl.Vector3{}, b.Size, b.Color)
	} else {
		rl.DrawCubeV(rl.Vector3{}, b.Size, b.Color)
	}
	rl.PopMatrix()
}
