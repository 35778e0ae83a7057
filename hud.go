package starvine

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// hudRefresh is how often the HUD text is re-rendered, in ticks.
const hudRefresh = 30

const (
	hudWidth  = 220
	hudHeight = 120
	hudBarY   = 100
	hudBarW   = 100
	hudBarH   = 6
)

var (
	hudDensityColor = color.RGBA{120, 200, 255, 255}
	hudSpeedColor   = color.RGBA{255, 170, 90, 255}
	hudFrameColor   = color.RGBA{200, 200, 200, 160}
)

// HUD is a small overlay showing FPS/TPS, pool sizes and the live
// multipliers. It re-renders its text twice a second.
type HUD struct {
	img   *ebiten.Image
	ticks int
	text  string
	op    ebiten.DrawImageOptions
}

// NewHUD creates a HUD overlay.
func NewHUD() *HUD {
	// Six lines of debug font plus the multiplier bars.
	return &HUD{img: ebiten.NewImage(hudWidth, hudHeight)}
}

// Update refreshes the HUD text from s every hudRefresh ticks.
func (h *HUD) Update(s *Scene) {
	h.ticks++
	if h.text != "" && h.ticks < hudRefresh {
		return
	}
	h.ticks = 0
	h.text = hudText(s.Stats(), s.Settings(), ebiten.ActualFPS(), ebiten.ActualTPS())

	h.img.Clear()
	// Semi-transparent background for readability
	h.img.Fill(color.RGBA{0, 0, 0, 128})
	ebitenutil.DebugPrint(h.img, h.text)

	v := s.Settings()
	drawHUDBar(h.img, 4, v.Density, hudDensityColor)
	drawHUDBar(h.img, 4+hudBarW+8, v.Speed, hudSpeedColor)
}

// drawHUDBar draws a multiplier as a filled bar whose frame spans
// MaxMultiplier.
func drawHUDBar(dst *ebiten.Image, x float32, v float64, clr color.Color) {
	fill := float32(hudBarFill(v)) * hudBarW
	if fill > 0 {
		vector.DrawFilledRect(dst, x, hudBarY, fill, hudBarH, clr, false)
	}
	vector.StrokeRect(dst, x, hudBarY, hudBarW, hudBarH, 1, hudFrameColor, false)
}

// hudBarFill maps a multiplier to the filled fraction of its bar.
func hudBarFill(v float64) float64 {
	return ClampMultiplier(v) / MaxMultiplier
}

// Draw composites the HUD at the top-left of screen.
func (h *HUD) Draw(screen *ebiten.Image) {
	h.op.GeoM.Reset()
	h.op.GeoM.Translate(8, 8)
	screen.DrawImage(h.img, &h.op)
}

func hudText(st FrameStats, v Settings, fps, tps float64) string {
	return fmt.Sprintf("FPS: %.1f  TPS: %.1f\nparticles: %d\ncharacters: %d  ripples: %d\neffects: %d  sprites: %d\ndensity: %.2f  speed: %.2f\nup: %s",
		fps, tps,
		st.Pools.Particles,
		st.Pools.Characters, st.Pools.Ripples,
		st.Pools.Effects, st.Sprites,
		v.Density, v.Speed,
		formatUptime(st.Uptime),
	)
}
