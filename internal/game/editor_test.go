package game

import (
	"strings"
	"testing"

	"sensorsim/internal/obstacles"
	"sensorsim/internal/scene"
	"sensorsim/internal/sensors"
	"sensorsim/internal/world"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEditor(t *testing.T) (*Editor, *scene.Scene) {
	t.Helper()
	s := scene.New(nil, nil)
	require.NoError(t, s.Initialize(world.DefaultBounds))
	e := NewEditor(s, nil)
	e.now = func() float64 { return 100 }
	return e, s
}

func addBox(t *testing.T, s *scene.Scene, id string, pos rl.Vector3) {
	t.Helper()
	require.True(t, s.Obstacles.Add(obstacles.Obstacle{ID: id, Position: pos, Dimensions: obstacles.Dimensions{Width: 1, Height: 1, Depth: 1}}))
}

func TestPickNearestObstacle(t *testing.T) {
	e, s := newTestEditor(t)
	addBox(t, s, "far", rl.Vector3{Z: 10})
	addBox(t, s, "near", rl.Vector3{Z: 5})

	id, ok := e.Pick(rl.Ray{Position: rl.Vector3{}, Direction: rl.Vector3{Z: 1}})
	require.True(t, ok)
	assert.Equal(t, "near", id)

	e.SelectAt(rl.Ray{Direction: rl.Vector3{Z: 1}})
	sel, ok := s.Obstacles.Selected()
	require.True(t, ok)
	assert.Equal(t, "near", sel.ID)

	e.SelectAt(rl.Ray{Direction: rl.Vector3{Y: 1}})
	_, ok = s.Obstacles.Selected()
	assert.False(t, ok, "clicking empty space detaches the handle")
}

func TestAddObstacleRestsOnGround(t *testing.T) {
	e, s := newTestEditor(t)

	id := e.AddObstacle(rl.Vector3{X: 2, Y: 9, Z: 3})
	require.NotEmpty(t, id)
	assert.True(t, strings.HasPrefix(id, "obstacle-"))

	o, ok := s.Obstacles.GetByID(id)
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 2, Y: 0.5, Z: 3}, o.Position)

	sel, _ := s.Obstacles.Selected()
	assert.Equal(t, id, sel.ID)
	assert.Equal(t, "Added "+id, e.Message(101))
	assert.Empty(t, e.Message(200), "messages expire")
}

func TestPlacementPoint(t *testing.T) {
	e, _ := newTestEditor(t)
	p := e.placementPoint(rl.Ray{Position: rl.Vector3{X: 1, Y: 10}, Direction: rl.Vector3{Y: -1}})
	assert.Equal(t, rl.Vector3{X: 1}, p)

	p = e.placementPoint(rl.Ray{Position: rl.Vector3{Y: 10}, Direction: rl.Vector3{Z: 1}})
	assert.Equal(t, rl.Vector3{Y: 10, Z: 5}, p)
}

func TestDeleteSelectedAndUndo(t *testing.T) {
	e, s := newTestEditor(t)
	addBox(t, s, "a", rl.Vector3{X: 1})

	assert.False(t, e.DeleteSelected(), "nothing selected")

	require.True(t, s.Obstacles.Select("a"))
	require.True(t, e.DeleteSelected())
	assert.Zero(t, s.Obstacles.Len())

	require.True(t, e.Undo())
	o, ok := s.Obstacles.GetByID("a")
	require.True(t, ok)
	assert.Equal(t, rl.Vector3{X: 1}, o.Position)
	sel, _ := s.Obstacles.Selected()
	assert.Equal(t, "a", sel.ID)

	assert.False(t, e.Undo(), "stack is empty")
}

func TestUndoAdd(t *testing.T) {
	e, s := newTestEditor(t)
	id := e.AddObstacle(rl.Vector3{})
	require.Equal(t, 1, s.Obstacles.Len())

	require.True(t, e.Undo())
	_, ok := s.Obstacles.GetByID(id)
	assert.False(t, ok)
}

func TestGizmoDragMovesAlongAxis(t *testing.T) {
	e, s := newTestEditor(t)
	addBox(t, s, "a", rl.Vector3{Y: 0.5})
	require.True(t, s.Obstacles.Select("a"))

	cam := rl.Vector3{Y: 5, Z: 10}
	e.camPos = cam
	toward := func(p rl.Vector3) rl.Ray {
		return rl.Ray{Position: cam, Direction: rl.Vector3Normalize(rl.Vector3Subtract(p, cam))}
	}

	require.True(t, e.BeginDrag(0, toward(rl.Vector3{Y: 0.5})))
	assert.True(t, e.Dragging())

	e.DragTo(toward(rl.Vector3{X: 3, Y: 0.5}))
	o, _ := s.Obstacles.GetByID("a")
	assert.InDelta(t, 3, o.Position.X, 1e-4)
	assert.InDelta(t, 0.5, o.Position.Y, 1e-4)
	assert.InDelta(t, 0, o.Position.Z, 1e-4)

	// A point on the drag plane but off the axis only moves along X.
	e.DragTo(toward(rl.Vector3{X: -2, Y: 1.5, Z: -0.45}))
	o, _ = s.Obstacles.GetByID("a")
	assert.InDelta(t, -2, o.Position.X, 1e-3)
	assert.InDelta(t, 0.5, o.Position.Y, 1e-4)

	e.EndDrag()
	assert.False(t, e.Dragging())

	require.True(t, e.Undo())
	o, _ = s.Obstacles.GetByID("a")
	assert.Equal(t, rl.Vector3{Y: 0.5}, o.Position, "undo restores the pre-drag position")
}

func TestBeginDragNeedsSelection(t *testing.T) {
	e, _ := newTestEditor(t)
	assert.False(t, e.BeginDrag(0, rl.Ray{Direction: rl.Vector3{Z: 1}}))
	assert.Equal(t, -1, e.pickGizmoAxis(rl.Ray{Direction: rl.Vector3{Z: 1}}))
}

func TestPickGizmoAxis(t *testing.T) {
	e, s := newTestEditor(t)
	addBox(t, s, "a", rl.Vector3{})
	require.True(t, s.Obstacles.Select("a"))

	// Looking straight down at a point one unit along +X hits the X handle.
	ray := rl.Ray{Position: rl.Vector3{X: 1, Y: 10}, Direction: rl.Vector3{Y: -1}}
	assert.Equal(t, 0, e.pickGizmoAxis(ray))

	ray = rl.Ray{Position: rl.Vector3{X: 10, Y: 1}, Direction: rl.Vector3{X: -1}}
	assert.Equal(t, 1, e.pickGizmoAxis(ray))

	ray = rl.Ray{Position: rl.Vector3{X: 5, Y: 5, Z: 5}, Direction: rl.Vector3{Y: -1}}
	assert.Equal(t, -1, e.pickGizmoAxis(ray))
}

func TestUndoStackIsCapped(t *testing.T) {
	e, s := newTestEditor(t)
	addBox(t, s, "a", rl.Vector3{})
	for i := 0; i < maxUndoStack+10; i++ {
		o, _ := s.Obstacles.GetByID("a")
		e.pushMoveUndo(o)
	}
	assert.Equal(t, maxUndoStack, e.UndoDepth())

	e.sceneRestored()
	assert.Zero(t, e.UndoDepth())
}

func TestAxisAngle(t *testing.T) {
	axis, angle := axisAngle(sensors.Rotation{})
	assert.Zero(t, angle)
	assert.Equal(t, rl.Vector3{Y: 1}, axis)

	axis, angle = axisAngle(sensors.Rotation{Yaw: 90})
	assert.InDelta(t, 90, angle, 1e-3)
	assert.InDelta(t, 1, axis.Y, 1e-5)
}

func TestPanelRectAndLabels(t *testing.T) {
	r := panelRect(1280, 3)
	assert.Equal(t, float32(1280-panelWidth-panelMargin), r.X)
	assert.Equal(t, float32(rowHeight*3+40), r.Height)

	assert.Equal(t, "lidar", sensorLabel(sensors.Instance{ID: "lidar"}, 0))
	assert.Equal(t, "lidar (72)", sensorLabel(sensors.Instance{ID: "lidar", Visible: true}, 72))
}
