package overlay

import (
	"context"
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"

	"letitsnow/snow"
)

// Options configures the overlay window
type Options struct {
	FPS        int
	Rand       snow.Rand
	ProfileDir string
	Log        *zap.SugaredLogger
}

// Geometry returns the window rectangle for a host on a monitor.
// Viewport hosts cover the monitor; element hosts cover their box.
// An element box entirely off the monitor falls back to the monitor.
func Geometry(host snow.Host, monitorWidth, monitorHeight int) image.Rectangle {
	monitor := image.Rect(0, 0, monitorWidth, monitorHeight)
	r := host.Area(monitor)
	if r.Empty() {
		return monitor
	}
	return r
}

// Run opens a transparent, click-through window above other windows and
// snows in it until ctx is cancelled or the window is closed.
func Run(ctx context.Context, host snow.Host, opts Options) error {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop().Sugar()
	}

	monitorWidth, monitorHeight := ebiten.ScreenSizeInFullscreen()
	geo := Geometry(host, monitorWidth, monitorHeight)
	layer := host.Layer()

	ebiten.SetWindowTitle("letitsnow")
	ebiten.SetWindowDecorated(false)
	ebiten.SetWindowFloating(layer.ZIndex > 0)
	ebiten.SetWindowMousePassthrough(layer.PointerPassthrough)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowClosingHandled(true)
	ebiten.SetWindowSize(geo.Dx(), geo.Dy())
	ebiten.SetWindowPosition(geo.Min.X, geo.Min.Y)
	ebiten.SetTPS(opts.FPS)

	g := NewGame(ctx, host, NewImageSurface(), opts.FPS, opts.Rand)
	g.Log = opts.Log
	g.Simulator().Log = opts.Log
	if opts.ProfileDir != "" {
		p, err := NewProfiler(opts.ProfileDir)
		if err != nil {
			return err
		}
		p.Log = opts.Log
		g.SetProfiler(p)
	}

	opts.Log.Infow("window overlay",
		"placement", host.Placement,
		"element", host.Element.ID,
		"bounds", geo,
		"fps", opts.FPS)
	return ebiten.RunGameWithOptions(g, &ebiten.RunGameOptions{ScreenTransparent: true})
}
