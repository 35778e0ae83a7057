package starvine

import (
	"fmt"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig configures the window and scene created by Run.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	ShowHUD    bool
	Fullscreen bool

	// Density and Speed are the starting multipliers, clamped to
	// [MinMultiplier, MaxMultiplier]. Use DefaultDensity and DefaultSpeed
	// for the stock look.
	Density float64
	Speed   float64

	// AssetDir holds char1.png … char9.png. Empty runs without characters.
	AssetDir string

	Debug bool

	// X11Pointer follows the global X11 cursor, for wallpaper mode.
	X11Pointer bool
	// GamepadTilt steers the pointer target with a gamepad stick.
	GamepadTilt bool

	// ScriptPath is a JSON test script to replay. Run returns once the
	// script has finished.
	ScriptPath    string
	ScreenshotDir string
}

// Run creates a scene from cfg, opens a window and runs the frame loop until
// the window closes or a test script completes.
func Run(cfg RunConfig) error {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = 1280, 720
	}
	if cfg.Title == "" {
		cfg.Title = "starvine"
	}

	scene := NewScene(float64(cfg.Width), float64(cfg.Height), nil)
	scene.SetDebugMode(cfg.Debug)
	scene.ApplySettings(Settings{Density: cfg.Density, Speed: cfg.Speed})
	if cfg.ScreenshotDir != "" {
		scene.ScreenshotDir = cfg.ScreenshotDir
	}

	if cfg.AssetDir != "" {
		scene.SetAssetLoader(NewAssetLoader(os.DirFS(cfg.AssetDir), DefaultSpriteNames))
	}

	var runner *TestRunner
	if cfg.ScriptPath != "" {
		data, err := os.ReadFile(cfg.ScriptPath)
		if err != nil {
			return fmt.Errorf("read test script: %w", err)
		}
		runner, err = LoadTestScript(data)
		if err != nil {
			return err
		}
		scene.SetTestRunner(runner)
	}

	if cfg.X11Pointer {
		src, err := NewX11PointerSource("")
		if err != nil {
			logger.Warn("global pointer unavailable", "err", err)
		} else {
			defer src.Close()
			scene.Input().SetPointerSource(src)
		}
	}
	if cfg.GamepadTilt {
		_ = scene.Input().EnableTilt(&GamepadTilt{})
	}

	g := &game{scene: scene, runner: runner, w: cfg.Width, h: cfg.Height}
	if cfg.ShowHUD {
		g.hud = NewHUD()
	}
	defer scene.Dispose()

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(cfg.Fullscreen)

	logger.Info("starting", "width", cfg.Width, "height", cfg.Height,
		"density", scene.Settings().Density, "speed", scene.Settings().Speed)
	if err := ebiten.RunGame(g); err != nil {
		return fmt.Errorf("run game: %w", err)
	}
	return nil
}

// game adapts a Scene to ebiten.Game.
type game struct {
	scene  *Scene
	runner *TestRunner
	hud    *HUD
	w, h   int
}

func (g *game) Update() error {
	if g.runner != nil && g.runner.Done() {
		return ebiten.Termination
	}
	if err := g.scene.Update(); err != nil {
		return err
	}
	if g.hud != nil {
		g.hud.Update(g.scene)
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	g.scene.Draw(screen)
	if g.hud != nil {
		g.hud.Draw(screen)
	}
}

// Layout tracks the window size; any change reinitializes the scene at the
// new size on the next tick.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != g.w || outsideHeight != g.h {
		g.w, g.h = outsideWidth, outsideHeight
		g.scene.RequestResize(float64(g.w), float64(g.h))
	}
	return g.w, g.h
}
