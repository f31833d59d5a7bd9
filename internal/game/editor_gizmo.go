package game

import (
	"math"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Obstacles are axis-aligned, so the gizmo only translates.

const (
	gizmoLength    float32 = 2.0
	gizmoTipSize   float32 = 0.2
	gizmoHitDist   float32 = 0.3
	gizmoThickness float32 = 0.06
)

var gizmoAxes = [3]rl.Vector3{
	{X: 1, Y: 0, Z: 0}, // X - red
	{X: 0, Y: 1, Z: 0}, // Y - green
	{X: 0, Y: 0, Z: 1}, // Z - blue
}

var gizmoColors = [3]rl.Color{rl.Red, rl.Green, rl.Blue}

// pickGizmoAxis returns the index of the gizmo axis closest to the mouse ray, or -1.
func (e *Editor) pickGizmoAxis(ray rl.Ray) int {
	selected, ok := e.scene.Obstacles.Selected()
	if !ok {
		return -1
	}

	center := selected.Position
	bestDist := float32(999.0)
	bestAxis := -1
	for i, axis := range gizmoAxes {
		_, t2, dist := closestPointBetweenRays(ray.Position, ray.Direction, center, axis)
		if t2 > 0 && t2 < gizmoLength && dist < gizmoHitDist && dist < bestDist {
			bestDist = dist
			bestAxis = i
		}
	}
	return bestAxis
}

// BeginDrag starts moving the selected obstacle along one gizmo axis.
func (e *Editor) BeginDrag(axisIdx int, ray rl.Ray) bool {
	selected, ok := e.scene.Obstacles.Selected()
	if !ok || axisIdx < 0 || axisIdx >= len(gizmoAxes) {
		return false
	}
	// Save undo state before modifying
	e.pushMoveUndo(selected)

	e.dragging = true
	e.dragAxisIdx = axisIdx
	e.dragAxis = gizmoAxes[axisIdx]
	e.dragInitPos = selected.Position
	e.dragStart = 0

	// Drag plane contains the axis and faces the camera as much as it can
	viewDir := rl.Vector3Normalize(rl.Vector3Subtract(e.dragInitPos, e.camPos))
	cross1 := rl.Vector3CrossProduct(viewDir, e.dragAxis)
	e.dragPlaneNormal = rl.Vector3Normalize(rl.Vector3CrossProduct(e.dragAxis, cross1))

	if pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, e.dragInitPos, e.dragPlaneNormal); ok {
		e.dragStart = rl.Vector3DotProduct(rl.Vector3Subtract(pt, e.dragInitPos), e.dragAxis)
	}
	return true
}

// DragTo moves the selected obstacle so it follows ray along the drag axis.
func (e *Editor) DragTo(ray rl.Ray) {
	selected, ok := e.scene.Obstacles.Selected()
	if !ok {
		e.dragging = false
		return
	}

	pt, ok := rayPlaneIntersect(ray.Position, ray.Direction, e.dragInitPos, e.dragPlaneNormal)
	if !ok {
		return
	}

	currentT := rl.Vector3DotProduct(rl.Vector3Subtract(pt, e.dragInitPos), e.dragAxis)
	delta := currentT - e.dragStart
	pos := rl.Vector3Add(e.dragInitPos, rl.Vector3Scale(e.dragAxis, delta))
	e.scene.Obstacles.Update(selected.ID, &pos, nil)
}

func (e *Editor) EndDrag() {
	e.dragging = false
}

func (e *Editor) Dragging() bool {
	return e.dragging
}

// Draw3D draws the selection gizmo. Call inside BeginMode3D/EndMode3D.
func (e *Editor) Draw3D() {
	selected, ok := e.scene.Obstacles.Selected()
	if !ok {
		return
	}

	// Disable depth testing so gizmos always draw on top
	rl.DrawRenderBatchActive()
	rl.DisableDepthTest()

	center := selected.Position
	for i, axis := range gizmoAxes {
		color := gizmoColors[i]
		if e.dragging && e.dragAxisIdx == i {
			color = rl.Yellow
		} else if !e.dragging && e.hoveredAxis == i {
			color = rl.Yellow
		}

		end := rl.Vector3Add(center, rl.Vector3Scale(axis, gizmoLength))
		rl.DrawCylinderEx(center, end, gizmoThickness, gizmoThickness, 8, color)
		tip := rl.Vector3{X: gizmoTipSize, Y: gizmoTipSize, Z: gizmoTipSize}
		rl.DrawCubeV(end, tip, color)
	}

	rl.DrawRenderBatchActive()
	rl.EnableDepthTest()
}

// --- math helpers ---

// closestPointBetweenRays finds the closest approach between two rays.
// Returns (t1, t2, distance) where t1/t2 are parameters along each ray.
func closestPointBetweenRays(a, u, b, v rl.Vector3) (t1, t2, dist float32) {
	w := rl.Vector3Subtract(a, b)
	uu := rl.Vector3DotProduct(u, u)
	uv := rl.Vector3DotProduct(u, v)
	vv := rl.Vector3DotProduct(v, v)
	uw := rl.Vector3DotProduct(u, w)
	vw := rl.Vector3DotProduct(v, w)

	denom := uu*vv - uv*uv
	if denom < 1e-6 {
		return 0, 0, 999
	}

	t1 = (uv*vw - vv*uw) / denom
	t2 = (uu*vw - uv*uw) / denom

	p1 := rl.Vector3Add(a, rl.Vector3Scale(u, t1))
	p2 := rl.Vector3Add(b, rl.Vector3Scale(v, t2))
	dist = rl.Vector3Length(rl.Vector3Subtract(p1, p2))
	return
}

// rayPlaneIntersect returns where a ray hits a plane (defined by point + normal).
func rayPlaneIntersect(rayOrigin, rayDir, planePoint, planeNormal rl.Vector3) (rl.Vector3, bool) {
	denom := rl.Vector3DotProduct(rayDir, planeNormal)
	if math.Abs(float64(denom)) < 1e-6 {
		return rl.Vector3{}, false
	}
	t := rl.Vector3DotProduct(rl.Vector3Subtract(planePoint, rayOrigin), planeNormal) / denom
	if t < 0 {
		return rl.Vector3{}, false
	}
	return rl.Vector3Add(rayOrigin, rl.Vector3Scale(rayDir, t)), true
}
