// Command starvine opens a window running the animated starvine background.
//
//	starvine -assets ./assets -density 0.8 -hud
//
// Arrow keys adjust density (up/down) and speed (left/right), the wheel
// adjusts density, R reinitializes and a click pops a character or starts a
// ripple.
package main

import (
	"flag"
	"os"

	"github.com/charmbracelet/log"
	"github.com/phanxgames/starvine"
)

func main() {
	var cfg starvine.RunConfig
	flag.StringVar(&cfg.Title, "title", "starvine", "window title")
	flag.IntVar(&cfg.Width, "width", 1280, "window width")
	flag.IntVar(&cfg.Height, "height", 720, "window height")
	flag.BoolVar(&cfg.ShowHUD, "hud", false, "show the FPS and pool overlay")
	flag.BoolVar(&cfg.Fullscreen, "fullscreen", false, "start fullscreen")
	flag.Float64Var(&cfg.Density, "density", starvine.DefaultDensity, "density multiplier [0, 1.5]")
	flag.Float64Var(&cfg.Speed, "speed", starvine.DefaultSpeed, "speed multiplier [0, 1.5]")
	flag.StringVar(&cfg.AssetDir, "assets", "assets", "directory holding char1.png … char9.png")
	flag.BoolVar(&cfg.Debug, "debug", false, "log frame stats at debug level")
	flag.BoolVar(&cfg.X11Pointer, "x11", false, "follow the global X11 cursor (wallpaper mode)")
	flag.BoolVar(&cfg.GamepadTilt, "gamepad", false, "steer with the left gamepad stick")
	flag.StringVar(&cfg.ScriptPath, "script", "", "JSON test script to replay")
	flag.StringVar(&cfg.ScreenshotDir, "screenshots", "screenshots", "directory for script screenshots")
	flag.Parse()

	if err := starvine.Run(cfg); err != nil {
		log.Error("starvine exited", "err", err)
		os.Exit(1)
	}
}
