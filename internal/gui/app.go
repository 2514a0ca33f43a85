package gui

import (
	"fmt"
	"log"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/san-kum/molviz/internal/config"
	"github.com/san-kum/molviz/internal/geometry"
	"github.com/san-kum/molviz/internal/scene"
	"github.com/san-kum/molviz/internal/widget"
)

var (
	ColText    = rl.NewColor(235, 235, 235, 255)
	ColTextDim = rl.NewColor(200, 200, 200, 160)
	ColShadow  = rl.NewColor(0, 0, 0, 90)
)

// App is the molecule window: the pipeline's actors under an orbiting
// camera with the slider widgets overlaid.
type App struct {
	Pipeline   *scene.Pipeline
	UI         *widget.UI
	Title      string
	Background rl.Color
	Camera     rl.Camera3D
	Orbit      Orbit
	Font       rl.Font
	Wireframe  bool
	ShowHelp   bool

	camPosTarget rl.Vector3
	dragging     bool
	sliderGrab   bool
	quit         bool
}

func initWindow(cfg *config.Config) {
	rl.SetConfigFlags(rl.FlagMsaa4xHint | rl.FlagWindowResizable)
	rl.InitWindow(int32(cfg.Window.Width), int32(cfg.Window.Height), cfg.Window.Title)
	rl.SetTargetFPS(int32(cfg.Window.FPS))
	rl.SetExitKey(0)
	// Sphere and tube winding is not consistent enough to cull on.
	rl.DisableBackfaceCulling()
}

func loadFont() rl.Font {
	font := rl.LoadFontEx("/usr/share/fonts/liberation/LiberationMono-Regular.ttf", 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(p *scene.Pipeline, ui *widget.UI, cfg *config.Config) *App {
	bg := cfg.BackgroundColor()
	orbit := NewOrbit(p.Extent)
	app := &App{
		Pipeline:   p,
		UI:         ui,
		Title:      cfg.Window.Title,
		Background: toRL(bg),
		Orbit:      orbit,
		Camera: rl.NewCamera3D(
			orbit.Position(),
			rl.NewVector3(0, 0, 0),
			rl.NewVector3(0, 1, 0),
			30.0,
			rl.CameraPerspective,
		),
		Font: loadFont(),
	}
	app.camPosTarget = app.Camera.Position
	return app
}

// Run opens the window and blocks until it is closed.
func Run(p *scene.Pipeline, ui *widget.UI, cfg *config.Config) error {
	if p == nil || ui == nil {
		return fmt.Errorf("gui: nothing to show")
	}
	initWindow(cfg)
	defer rl.CloseWindow()
	if !rl.IsWindowReady() {
		return fmt.Errorf("gui: unable to open window")
	}
	app := NewApp(p, ui, cfg)
	log.Printf("window %dx%d, %d atoms", rl.GetScreenWidth(), rl.GetScreenHeight(), p.Structure.NumAtoms())
	app.RunLoop()
	return nil
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

// Interacting reports whether the low level of detail should be drawn.
func (a *App) Interacting() bool {
	return a.dragging || a.UI.Interacting()
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) || rl.IsKeyPressed(rl.KeyE) {
		a.quit = true
		return
	}

	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	mouse := rl.GetMousePosition()
	mx, my := float64(mouse.X), float64(mouse.Y)

	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		a.sliderGrab = a.UI.ButtonDown(mx, my, w, h)
		a.dragging = !a.sliderGrab
	}
	if rl.IsMouseButtonDown(rl.MouseLeftButton) {
		if a.sliderGrab {
			a.UI.MouseMove(mx, my, w, h)
		} else if a.dragging {
			delta := rl.GetMouseDelta()
			a.Orbit.Rotate(float64(delta.X), float64(delta.Y))
		}
	}
	if rl.IsMouseButtonReleased(rl.MouseLeftButton) {
		if a.sliderGrab {
			a.UI.ButtonUp()
		}
		a.sliderGrab, a.dragging = false, false
	}
	a.UI.Tick()

	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.Orbit.Zoom(float64(wheel))
	}

	if rl.IsKeyDown(rl.KeyLeft) {
		a.Orbit.Rotate(-4, 0)
	}
	if rl.IsKeyDown(rl.KeyRight) {
		a.Orbit.Rotate(4, 0)
	}
	if rl.IsKeyDown(rl.KeyUp) {
		a.Orbit.Rotate(0, -4)
	}
	if rl.IsKeyDown(rl.KeyDown) {
		a.Orbit.Rotate(0, 4)
	}
	if rl.IsKeyPressed(rl.KeyW) {
		a.Wireframe = true
	}
	if rl.IsKeyPressed(rl.KeyS) {
		a.Wireframe = false
	}
	if rl.IsKeyPressed(rl.KeyR) {
		a.Orbit.Reset()
		a.Camera.Position = a.Orbit.Position()
	}
	if rl.IsKeyPressed(rl.KeyH) || rl.IsKeyPressed(rl.KeySlash) {
		a.ShowHelp = !a.ShowHelp
	}

	a.camPosTarget = a.Orbit.Position()
	lerp := 10 * rl.GetFrameTime()
	if lerp > 1 || a.dragging {
		lerp = 1
	}
	a.Camera.Position = rl.Vector3Lerp(a.Camera.Position, a.camPosTarget, lerp)
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(a.Background)

	rl.BeginMode3D(a.Camera)
	a.drawScene()
	rl.EndMode3D()

	w, h := int(rl.GetScreenWidth()), int(rl.GetScreenHeight())
	for _, s := range a.UI.Sliders() {
		a.drawSlider(s, w, h)
	}
	a.DrawHUD()

	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	st := a.Pipeline.Structure
	title := a.Title
	if st.Title != "" {
		title = st.Title
	}
	a.drawText(title, 12, 10, 20, ColText)
	a.drawText(fmt.Sprintf("%d atoms  %d bonds  res %d", st.NumAtoms(), st.NumBonds(), a.Pipeline.Sphere.ThetaResolution()), 12, 34, 14, ColTextDim)
	a.drawText(fmt.Sprintf("%d FPS", int32(rl.GetFPS())), 12, int(rl.GetScreenHeight())-22, 14, ColTextDim)

	if a.ShowHelp {
		y := 60
		for _, line := range []string{
			"DRAG     rotate",
			"WHEEL    zoom",
			"ARROWS   rotate",
			"W / S    wireframe / surface",
			"R        reset camera",
			"Q        quit",
		} {
			a.drawText(line, 12, y, 14, ColText)
			y += 18
		}
	}
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	pos := rl.NewVector2(float32(x), float32(y))
	rl.DrawTextEx(a.Font, text, rl.NewVector2(pos.X+1, pos.Y+1), float32(size), 1, ColShadow)
	rl.DrawTextEx(a.Font, text, pos, float32(size), 1, color)
}

func toRL(c geometry.Color) rl.Color {
	return rl.NewColor(c.R, c.G, c.B, 255)
}
