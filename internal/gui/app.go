package gui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/golang/glog"
	"github.com/san-kum/pulsefield/internal/audio"
	"github.com/san-kum/pulsefield/internal/loop"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

var (
	ColBg      = rl.NewColor(5, 5, 5, 255)
	ColText    = rl.NewColor(200, 200, 200, 255)
	ColTextDim = rl.NewColor(90, 90, 90, 255)
	ColPulse   = rl.NewColor(255, 77, 0, 255)
)

type Options struct {
	Width, Height int32
	FPS           int
	Steps         int
	Audio         *audio.Processor
}

// App hosts a field in a resizable raylib window. The field height maps to
// the window height; its width follows the window width.
type App struct {
	Field  *wavefield.Field
	Driver *loop.Driver
	Audio  *audio.Processor

	Target  rl.RenderTexture2D
	surface *Surface

	Running bool
	ShowHUD bool
	last    wavefield.Sample
	status  string
}

func initWindow(w, h int32, fps int) {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(w, h, "pulsefield")
	rl.SetTargetFPS(int32(fps))
	rl.SetExitKey(0)
}

func NewApp(field *wavefield.Field, opt Options) *App {
	surface := &Surface{Steps: opt.Steps}
	a := &App{
		Field:   field,
		Driver:  loop.New(field, surface, opt.FPS),
		Audio:   opt.Audio,
		surface: surface,
		Running: true,
		ShowHUD: true,
	}
	a.Driver.AddObserver(loop.ObserverFunc(func(s wavefield.Sample) { a.last = s }))
	if a.Audio != nil {
		a.Driver.AddObserver(a.Audio)
	}
	a.layout()
	return a
}

// Run opens the window and blocks until it is closed.
func Run(field *wavefield.Field, opt Options) {
	if opt.Width <= 0 {
		opt.Width = 1280
	}
	if opt.Height <= 0 {
		opt.Height = int32(field.Height() * 1.6)
	}
	if opt.FPS <= 0 {
		opt.FPS = loop.DefaultFPS
	}
	initWindow(opt.Width, opt.Height, opt.FPS)
	defer rl.CloseWindow()

	app := NewApp(field, opt)
	defer app.Close()
	app.RunLoop()
}

func (a *App) RunLoop() {
	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}
		a.Update()
		a.Draw()
	}
}

func (a *App) Close() {
	rl.UnloadRenderTexture(a.Target)
	if a.Audio != nil {
		a.Audio.Stop()
	}
}

// layout sizes the trail texture to the window and resizes the field so
// its height fills the window.
func (a *App) layout() {
	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	if w <= 0 || h <= 0 {
		return
	}
	if a.Target.ID != 0 {
		rl.UnloadRenderTexture(a.Target)
	}
	a.Target = rl.LoadRenderTexture(w, h)
	rl.BeginTextureMode(a.Target)
	rl.ClearBackground(ColBg)
	rl.EndTextureMode()

	a.surface.Width, a.surface.Height = w, h
	a.surface.Scale = float32(h) / float32(a.Field.Height())
	if err := a.Driver.Resize(float64(w)/float64(a.surface.Scale), a.Field.Height()); err != nil {
		glog.Warningf("gui: %v", err)
	}
}

func (a *App) Update() {
	if rl.IsWindowResized() {
		a.layout()
	}
	if rl.IsKeyPressed(rl.KeySpace) {
		a.Running = !a.Running
	}
	if rl.IsKeyPressed(rl.KeyH) {
		a.ShowHUD = !a.ShowHUD
	}
	if rl.IsKeyPressed(rl.KeyR) {
		if err := a.Field.Reset(); err != nil {
			a.status = err.Error()
		}
	}
	if rl.IsMouseButtonPressed(rl.MouseLeftButton) {
		pos := rl.GetMousePosition()
		if err := a.Driver.Disturb(float64(pos.X / a.surface.Scale)); err != nil {
			a.status = err.Error()
		}
	}
}

func (a *App) Draw() {
	if a.Running {
		rl.BeginTextureMode(a.Target)
		if err := a.Driver.Frame(); err != nil {
			a.status = err.Error()
		}
		rl.EndTextureMode()
	}

	rl.BeginDrawing()
	rl.ClearBackground(ColBg)
	// render textures are stored upside down
	src := rl.NewRectangle(0, 0, float32(a.Target.Texture.Width), -float32(a.Target.Texture.Height))
	rl.DrawTextureRec(a.Target.Texture, src, rl.NewVector2(0, 0), rl.White)
	if a.ShowHUD {
		a.DrawHUD()
	}
	rl.EndDrawing()
}

func (a *App) DrawHUD() {
	h := int32(rl.GetScreenHeight())
	rl.DrawText("pulsefield", 24, 20, 20, ColText)

	status := "RUNNING"
	if !a.Running {
		status = "PAUSED"
	}
	rl.DrawText(status, 24, 46, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("tick %d  ripples %d", a.Field.Tick(), a.Field.RippleCount()), 24, 66, 14, ColTextDim)
	if a.last.Pulse != 0 {
		rl.DrawText("PULSE", 24, 86, 14, ColPulse)
	}
	if a.Audio != nil && a.Audio.Active {
		rl.DrawText("AUDIO ON", 24, 106, 14, ColTextDim)
	}
	if a.status != "" {
		rl.DrawText(a.status, 24, h-60, 14, rl.Red)
	}

	rl.DrawText("[CLICK] RIPPLE  [SPACE] PAUSE  [R] RESET  [H] HUD  [Q] QUIT", 24, h-30, 14, ColTextDim)
	rl.DrawText(fmt.Sprintf("%d FPS", rl.GetFPS()), int32(rl.GetScreenWidth())-80, h-30, 14, ColTextDim)
}
