package game

import (
	"fmt"

	"sensorsim/internal/sensors"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Theme colors
var (
	colorBgDark    = rl.NewColor(10, 10, 15, 255)
	colorBgPanel   = rl.NewColor(18, 18, 24, 245)
	colorBgElement = rl.NewColor(28, 28, 38, 255)
	colorBgHover   = rl.NewColor(38, 38, 52, 255)

	colorAccent        = rl.NewColor(108, 99, 255, 255)
	colorTextPrimary   = rl.NewColor(255, 255, 255, 255)
	colorTextSecondary = rl.NewColor(200, 200, 208, 255)
	colorTextMuted     = rl.NewColor(119, 119, 119, 255)
)

const (
	panelWidth  int32 = 260
	panelMargin int32 = 10
	rowHeight   int32 = 22
)

func initRayguiStyle() {
	gui.SetStyle(gui.DEFAULT, gui.BACKGROUND_COLOR, gui.NewColorPropertyValue(colorBgDark))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_NORMAL, gui.NewColorPropertyValue(colorBgElement))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_FOCUSED, gui.NewColorPropertyValue(colorBgHover))
	gui.SetStyle(gui.DEFAULT, gui.BASE_COLOR_PRESSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_NORMAL, gui.NewColorPropertyValue(colorTextSecondary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_FOCUSED, gui.NewColorPropertyValue(colorTextPrimary))
	gui.SetStyle(gui.DEFAULT, gui.TEXT_COLOR_PRESSED, gui.NewColorPropertyValue(colorTextPrimary))

	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_NORMAL, gui.NewColorPropertyValue(rl.NewColor(50, 50, 65, 255)))
	gui.SetStyle(gui.DEFAULT, gui.BORDER_COLOR_FOCUSED, gui.NewColorPropertyValue(colorAccent))

	gui.SetStyle(gui.DEFAULT, gui.TEXT_SIZE, 15)
}

// panelRect is the sensor panel's screen area for n sensors.
func panelRect(screenW int32, n int) rl.Rectangle {
	h := rowHeight*int32(n) + 40
	return rl.Rectangle{
		X:      float32(screenW - panelWidth - panelMargin),
		Y:      float32(panelMargin),
		Width:  float32(panelWidth),
		Height: float32(h),
	}
}

// drawSensorPanel lists every sensor with a visibility checkbox and applies
// toggles to the registry.
func (g *Game) drawSensorPanel() {
	instances := g.scene.Sensors.GetAllInstances()
	rect := panelRect(int32(rl.GetScreenWidth()), len(instances))

	rl.DrawRectangleRec(rect, colorBgPanel)
	rl.DrawText("Sensors", int32(rect.X)+10, int32(rect.Y)+8, 18, colorTextPrimary)

	for i, in := range instances {
		y := rect.Y + 34 + float32(int32(i)*rowHeight)
		box := rl.Rectangle{X: rect.X + 10, Y: y, Width: 16, Height: 16}
		visible := gui.CheckBox(box, sensorLabel(in, g.beams.Count(in.ID)), in.Visible)
		if visible != in.Visible {
			g.scene.Sensors.SetVisibility(in.ID, visible)
		}
	}
}

func sensorLabel(in sensors.Instance, beams int) string {
	if !in.Visible {
		return in.ID
	}
	return fmt.Sprintf("%s (%d)", in.ID, beams)
}

func (g *Game) mouseInPanel() bool {
	rect := panelRect(int32(rl.GetScreenWidth()), g.scene.Sensors.Len())
	return rl.CheckCollisionPointRec(rl.GetMousePosition(), rect)
}

func (g *Game) drawHUD() {
	rl.DrawText("RMB+mouse look, WASD/QE fly, click select, drag gizmo to move", 10, 10, 18, colorTextSecondary)
	rl.DrawText("N add  Del delete  Ctrl+Z undo  F5 save  F9 load  F6 snapshot  F7 restore snapshot", 10, 32, 18, colorTextSecondary)
	rl.DrawFPS(10, 56)

	if o, ok := g.scene.Obstacles.Selected(); ok {
		text := fmt.Sprintf("%s  pos (%.2f, %.2f, %.2f)  size %.2fx%.2fx%.2f",
			o.ID, o.Position.X, o.Position.Y, o.Position.Z,
			o.Dimensions.Width, o.Dimensions.Height, o.Dimensions.Depth)
		rl.DrawText(text, 10, 80, 16, rl.Gold)
	}

	if g.debug {
		rl.DrawText(fmt.Sprintf("Evaluate: %.2f ms  samples %d", g.evalMs, g.lastResult.Samples), 10, 104, 16, rl.Green)
		rl.DrawText(fmt.Sprintf("Draw:     %.2f ms", g.drawMs), 10, 124, 16, rl.Green)
	}

	if msg := g.editor.Message(rl.GetTime()); msg != "" {
		rl.DrawText(msg, 10, int32(rl.GetScreenHeight())-30, 18, colorTextMuted)
	}
}
