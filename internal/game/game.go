// Package game is the interactive viewer: it runs the frame loop, feeds the
// scene to the scan engine every frame and draws the result.
package game

import (
	"errors"
	"math"
	"time"

	"sensorsim/internal/assets"
	"sensorsim/internal/camera"
	"sensorsim/internal/config"
	"sensorsim/internal/logging"
	"sensorsim/internal/render"
	"sensorsim/internal/scan"
	"sensorsim/internal/scene"
	"sensorsim/internal/sensors"
	"sensorsim/internal/store"

	rl "github.com/gen2brain/raylib-go/raylib"
	"go.uber.org/zap"
)

const placeholderSize float32 = 0.3

type Game struct {
	cfg    *config.Config
	scene  *scene.Scene
	store  *store.SceneStore
	engine *scan.Engine
	beams  *render.Beams
	stage  *render.Stage
	models *assets.Manager
	camera *camera.FlyCamera
	editor *Editor
	log    *zap.Logger

	debug bool

	// Debug timing (ms)
	evalMs     float64
	drawMs     float64
	lastResult scan.Result
}

// New wires the viewer around an already populated scene. st may be nil, in
// which case snapshots are disabled.
func New(cfg *config.Config, s *scene.Scene, st *store.SceneStore, logger *zap.Logger) *Game {
	logger = logging.OrNop(logger)
	beams := render.NewBeams(cfg.GetBeamRadius(), logger)
	stage := render.NewStage()

	s.Obstacles.OnRemove(stage.ReleaseObstacle)
	s.Sensors.OnRemove(beams.Release)

	return &Game{
		cfg:    cfg,
		scene:  s,
		store:  st,
		engine: scan.New(beams, logger, scan.WithMinDistance(cfg.GetMinSampleDistance())),
		beams:  beams,
		stage:  stage,
		camera: camera.New(rl.Vector3{X: 12, Y: 10, Z: 12}),
		editor: NewEditor(s, logger),
		log:    logger,
	}
}

func (g *Game) Run() {
	rl.SetConfigFlags(rl.FlagWindowHighdpi | rl.FlagMsaa4xHint)
	rl.InitWindow(int32(g.cfg.GetWindowWidth()), int32(g.cfg.GetWindowHeight()), "Sensor Field of View")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(g.cfg.GetTargetFPS()))
	rl.SetExitKey(0)

	// Models need the GL context
	g.models = assets.NewManager(g.log)
	defer g.models.Unload()
	defer g.beams.ReleaseAll()

	initRayguiStyle()
	g.stage.SetGround(g.scene.World.Bounds())

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()
	}
}

func (g *Game) Update() {
	deltaTime := rl.GetFrameTime()

	g.camera.Update(deltaTime)
	cam := g.camera.GetRaylibCamera()
	ray := rl.GetScreenToWorldRay(rl.GetMousePosition(), cam)
	g.editor.Update(ray, cam.Position, g.mouseInPanel())

	if rl.IsKeyPressed(rl.KeyF1) {
		g.debug = !g.debug
	}
	if rl.IsKeyPressed(rl.KeyF5) {
		g.saveScene()
	}
	if rl.IsKeyPressed(rl.KeyF9) {
		g.loadScene()
	}
	if rl.IsKeyPressed(rl.KeyF6) {
		g.storeSnapshot()
	}
	if rl.IsKeyPressed(rl.KeyF7) {
		g.restoreSnapshot()
	}

	evalStart := time.Now()
	g.lastResult = g.engine.Evaluate(g.scene)
	g.evalMs = float64(time.Since(evalStart).Microseconds()) / 1000.0

	selected := ""
	if o, ok := g.scene.Obstacles.Selected(); ok {
		selected = o.ID
	}
	g.stage.Sync(g.scene.Obstacles.GetAll(), selected)
}

func (g *Game) Draw() {
	camera := g.camera.GetRaylibCamera()

	rl.BeginDrawing()
	rl.ClearBackground(rl.NewColor(20, 20, 30, 255))

	drawStart := time.Now()
	rl.BeginMode3D(camera)
	g.stage.Draw()
	if o, ok := g.scene.Obstacles.Selected(); ok {
		rl.DrawBoundingBox(o.AABB().BoundingBox(), rl.Yellow)
	}
	g.drawSensors()
	g.beams.Draw()
	g.editor.Draw3D()
	rl.EndMode3D()
	g.drawMs = float64(time.Since(drawStart).Microseconds()) / 1000.0

	g.drawHUD()
	g.drawSensorPanel()
	rl.EndDrawing()
}

// drawSensors draws each sensor's model, or a placeholder cube when the model
// is missing or failed to load.
func (g *Game) drawSensors() {
	for _, in := range g.scene.Sensors.GetAllInstances() {
		color := rl.SkyBlue
		if !in.Visible {
			color = rl.Fade(rl.Gray, 0.5)
		}
		def, _ := g.scene.Catalog.GetDefinitionByID(in.DefinitionID)
		if model, ok := g.models.Model(def.Model); ok {
			axis, angle := axisAngle(in.Rotation)
			rl.DrawModelEx(model, in.Position, axis, angle, rl.Vector3{X: 1, Y: 1, Z: 1}, color)
			continue
		}
		size := rl.Vector3{X: placeholderSize, Y: placeholderSize, Z: placeholderSize}
		rl.DrawCubeV(in.Position, size, color)
		rl.DrawCubeWiresV(in.Position, size, rl.DarkGray)
	}
}

// axisAngle converts a sensor rotation to the axis and angle in degrees that
// DrawModelEx expects.
func axisAngle(r sensors.Rotation) (rl.Vector3, float32) {
	q := r.Quaternion()
	w := math.Max(-1, math.Min(1, float64(q.W)))
	s := math.Sqrt(1 - w*w)
	if s < 1e-6 {
		return rl.Vector3{Y: 1}, 0
	}
	axis := rl.Vector3{X: float32(float64(q.X) / s), Y: float32(float64(q.Y) / s), Z: float32(float64(q.Z) / s)}
	return axis, float32(2 * math.Acos(w) * 180 / math.Pi)
}

func (g *Game) saveScene() {
	path := g.cfg.GetScenePath()
	if err := g.scene.SaveFile(path); err != nil {
		g.editor.setMsg("Save failed: %v", err)
		return
	}
	g.editor.setMsg("Scene saved to %s", path)
}

func (g *Game) loadScene() {
	path := g.cfg.GetScenePath()
	err := g.scene.LoadFile(path)
	g.afterRestore()
	if err != nil {
		g.editor.setMsg("Load: %v", err)
		return
	}
	g.editor.setMsg("Scene loaded from %s", path)
}

func (g *Game) storeSnapshot() {
	if g.store == nil {
		g.editor.setMsg("Snapshot store disabled")
		return
	}
	name := time.Now().Format("2006-01-02 15:04:05")
	id, err := g.store.Insert(name, g.scene.Snapshot())
	if err != nil {
		g.editor.setMsg("Snapshot failed: %v", err)
		return
	}
	g.editor.setMsg("Snapshot %s stored", id[:8])
}

func (g *Game) restoreSnapshot() {
	if g.store == nil {
		g.editor.setMsg("Snapshot store disabled")
		return
	}
	snap, err := g.store.Latest()
	if errors.Is(err, store.ErrNotFound) {
		g.editor.setMsg("No snapshots stored")
		return
	}
	if err != nil {
		g.editor.setMsg("Snapshot read failed: %v", err)
		return
	}
	err = g.scene.Restore(snap.Scene)
	g.afterRestore()
	if err != nil {
		g.editor.setMsg("Restore: %v", err)
		return
	}
	g.editor.setMsg("Restored snapshot %q", snap.Name)
}

func (g *Game) afterRestore() {
	g.editor.sceneRestored()
	g.stage.SetGround(g.scene.World.Bounds())
}
