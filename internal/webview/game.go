package webview

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang/glog"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/san-kum/pulsefield/internal/loop"
	"github.com/san-kum/pulsefield/internal/wavefield"
)

type Options struct {
	Width, Height int
	FPS           int
	Observers     []loop.Observer
}

// Game hosts a field in an ebiten window or browser canvas. Update steps
// the field, Draw shows the persistent offscreen image that keeps trails.
type Game struct {
	ctx     context.Context
	field   *wavefield.Field
	driver  *loop.Driver
	surface *Surface

	offscreen     *ebiten.Image
	width, height int
	running       bool
	showHUD       bool
	last          wavefield.Sample
	status        string
}

func NewGame(ctx context.Context, field *wavefield.Field, opt Options) *Game {
	surface := &Surface{Scale: 1}
	g := &Game{
		ctx:     ctx,
		field:   field,
		driver:  loop.New(field, surface, opt.FPS),
		surface: surface,
		running: true,
		showHUD: true,
	}
	g.driver.AddObserver(loop.ObserverFunc(func(s wavefield.Sample) { g.last = s }))
	for _, o := range opt.Observers {
		g.driver.AddObserver(o)
	}
	return g
}

func (g *Game) Update() error {
	select {
	case <-g.ctx.Done():
		return ebiten.Termination
	default:
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) || inpututil.IsKeyJustPressed(ebiten.KeyQ) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.running = !g.running
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.showHUD = !g.showHUD
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		if err := g.field.Reset(); err != nil {
			g.status = err.Error()
		}
	}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, _ := ebiten.CursorPosition()
		g.disturb(x)
	}
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, _ := ebiten.TouchPosition(id)
		g.disturb(x)
	}

	if g.running && g.offscreen != nil {
		g.surface.Target = g.offscreen
		if err := g.driver.Frame(); err != nil {
			g.status = err.Error()
			glog.Warningf("webview: %v", err)
		}
	}
	return nil
}

func (g *Game) disturb(x int) {
	if err := g.driver.Disturb(float64(x) / float64(g.surface.Scale)); err != nil {
		g.status = err.Error()
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	if g.offscreen != nil {
		screen.DrawImage(g.offscreen, nil)
	}
	if !g.showHUD {
		return
	}
	msg := fmt.Sprintf("pulsefield  tick %d  ripples %d  %.0f TPS", g.field.Tick(), g.field.RippleCount(), ebiten.ActualTPS())
	if g.last.Pulse != 0 {
		msg += "  PULSE"
	}
	if !g.running {
		msg += "  PAUSED"
	}
	ebitenutil.DebugPrintAt(screen, msg, 12, 12)
	if g.status != "" {
		ebitenutil.DebugPrintAt(screen, g.status, 12, 28)
	}
}

// Layout follows the window. A size change rebuilds the trail image and
// resizes the field so its height still fills the view.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth <= 0 || outsideHeight <= 0 {
		return max(outsideWidth, 1), max(outsideHeight, 1)
	}
	if outsideWidth != g.width || outsideHeight != g.height {
		g.width, g.height = outsideWidth, outsideHeight
		if g.offscreen != nil {
			g.offscreen.Deallocate()
		}
		g.offscreen = ebiten.NewImage(outsideWidth, outsideHeight)
		g.surface.Scale = float32(outsideHeight) / float32(g.field.Height())
		fieldWidth := float64(outsideWidth) / float64(g.surface.Scale)
		if err := g.driver.Resize(fieldWidth, g.field.Height()); err != nil {
			g.status = err.Error()
		}
	}
	return outsideWidth, outsideHeight
}

// Run blocks until the window closes or ctx is cancelled.
func Run(ctx context.Context, field *wavefield.Field, opt Options) error {
	if opt.Width <= 0 {
		opt.Width = 1280
	}
	if opt.Height <= 0 {
		opt.Height = int(field.Height() * 1.6)
	}
	if opt.FPS <= 0 {
		opt.FPS = loop.DefaultFPS
	}
	ebiten.SetWindowSize(opt.Width, opt.Height)
	ebiten.SetWindowTitle("pulsefield")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(opt.FPS)

	if err := ebiten.RunGame(NewGame(ctx, field, opt)); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
