package game

import (
	"fmt"

	"sensorsim/internal/logging"
	"sensorsim/internal/obstacles"
	"sensorsim/internal/physics"
	"sensorsim/internal/scene"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	pickDistance float32 = 1000
	msgDuration          = 2.5 // seconds
)

// DefaultObstacleSize is used for obstacles created with N.
var DefaultObstacleSize = obstacles.Dimensions{Width: 1, Height: 1, Depth: 1}

// Editor edits obstacles through the registry's single edit handle. Sensors are
// edited through the panel only.
type Editor struct {
	scene *scene.Scene
	log   *zap.Logger

	camPos rl.Vector3

	// Gizmo state
	dragging        bool
	dragAxisIdx     int
	dragAxis        rl.Vector3
	dragPlaneNormal rl.Vector3
	dragStart       float32
	dragInitPos     rl.Vector3
	hoveredAxis     int // -1 = none, 0=X, 1=Y, 2=Z

	undoStack []UndoState

	msg     string
	msgTime float64
	now     func() float64
}

func NewEditor(s *scene.Scene, logger *zap.Logger) *Editor {
	return &Editor{
		scene:       s,
		log:         logging.OrNop(logger),
		hoveredAxis: -1,
		undoStack:   make([]UndoState, 0, maxUndoStack),
		now:         rl.GetTime,
	}
}

// Update handles mouse picking and gizmo drags for one frame. overPanel
// suppresses clicks that land on the UI.
func (e *Editor) Update(ray rl.Ray, camPos rl.Vector3, overPanel bool) {
	e.camPos = camPos

	ctrl := rl.IsKeyDown(rl.KeyLeftControl) || rl.IsKeyDown(rl.KeyLeftSuper)
	if ctrl && rl.IsKeyPressed(rl.KeyZ) {
		e.Undo()
	}
	if rl.IsKeyPressed(rl.KeyDelete) || (ctrl && rl.IsKeyPressed(rl.KeyBackspace)) {
		e.DeleteSelected()
	}
	if rl.IsKeyPressed(rl.KeyN) {
		e.AddObstacle(e.placementPoint(ray))
	}
	if rl.IsKeyPressed(rl.KeyEscape) {
		e.scene.Obstacles.Deselect()
	}

	// Handle active drag
	if e.dragging {
		if !rl.IsMouseButtonDown(rl.MouseLeftButton) {
			e.EndDrag()
		} else {
			e.DragTo(ray)
		}
		return
	}

	e.hoveredAxis = e.pickGizmoAxis(ray)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) && !overPanel {
		if axisIdx := e.pickGizmoAxis(ray); axisIdx >= 0 {
			e.BeginDrag(axisIdx, ray)
			return
		}
		e.SelectAt(ray)
	}
}

// Pick returns the id of the nearest obstacle under ray.
func (e *Editor) Pick(ray rl.Ray) (string, bool) {
	all := e.scene.Obstacles.GetAll()
	hit, ok := physics.Raycast(e.scene.Obstacles.Collidables(), ray.Position, ray.Direction, pickDistance)
	if !ok || hit.Index >= len(all) {
		return "", false
	}
	return all[hit.Index].ID, true
}

// SelectAt attaches the edit handle to the obstacle under ray, or detaches it
// when the ray hits nothing.
func (e *Editor) SelectAt(ray rl.Ray) {
	if id, ok := e.Pick(ray); ok {
		e.scene.Obstacles.Select(id)
		return
	}
	e.scene.Obstacles.Deselect()
}

// AddObstacle creates a default-sized obstacle resting on the ground at p and
// selects it.
func (e *Editor) AddObstacle(p rl.Vector3) string {
	id := "obstacle-" + uuid.New().String()[:8]
	o := obstacles.Obstacle{
		ID:         id,
		Position:   rl.Vector3{X: p.X, Y: e.scene.World.GroundHeight() + DefaultObstacleSize.Height/2, Z: p.Z},
		Dimensions: DefaultObstacleSize,
	}
	if !e.scene.Obstacles.Add(o) {
		return ""
	}
	e.scene.Obstacles.Select(id)
	e.pushAddUndo(id)
	e.setMsg("Added %s", id)
	return id
}

func (e *Editor) DeleteSelected() bool {
	o, ok := e.scene.Obstacles.Selected()
	if !ok {
		return false
	}
	e.dragging = false
	e.pushDeleteUndo(o)
	e.scene.Obstacles.Remove(o.ID)
	e.setMsg("Deleted %s", o.ID)
	return true
}

// placementPoint is where the mouse ray meets the ground, or a point in front
// of the camera when it misses.
func (e *Editor) placementPoint(ray rl.Ray) rl.Vector3 {
	if ground, ok := e.scene.World.Ground(); ok {
		if d, hit := ground.Raycast(ray.Position, ray.Direction, pickDistance); hit {
			return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, d))
		}
	}
	return rl.Vector3Add(ray.Position, rl.Vector3Scale(ray.Direction, 5))
}

func (e *Editor) setMsg(format string, args ...any) {
	e.msg = fmt.Sprintf(format, args...)
	e.msgTime = e.now()
	e.log.Info(e.msg)
}

// Message returns the current status line, if it has not expired.
func (e *Editor) Message(now float64) string {
	if e.msg == "" || now-e.msgTime > msgDuration {
		return ""
	}
	return e.msg
}

// sceneRestored drops editor state that pointed into the old scene.
func (e *Editor) sceneRestored() {
	e.dragging = false
	e.hoveredAxis = -1
	e.undoStack = e.undoStack[:0]
}
