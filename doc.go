// Package starvine is an animated, pointer-reactive cosmic background for
// [Ebitengine].
//
// A [Scene] layers a parallax starfield, slowly fading nebulae and galaxies,
// flow-field particle vines, pop-out character sprites, click ripples and
// pop effects onto a persistent canvas. A translucent veil is washed over
// the canvas every frame so everything leaves motion trails.
//
// # Quick start
//
// The simplest way to get started is [Run], which creates a window and game
// loop for you:
//
//	starvine.Run(starvine.RunConfig{
//		Width: 1280, Height: 720,
//		Density: starvine.DefaultDensity, Speed: starvine.DefaultSpeed,
//		AssetDir: "assets",
//	})
//
// For full control, implement [ebiten.Game] yourself and call
// [Scene.Update] and [Scene.Draw] directly:
//
//	type Game struct{ scene *starvine.Scene }
//
//	func (g *Game) Update() error         { return g.scene.Update() }
//	func (g *Game) Draw(s *ebiten.Image)  { g.scene.Draw(s) }
//	func (g *Game) Layout(w, h int) (int, int) { return w, h }
//
// # Frame model
//
// Each tick advances every pool once and emits [RenderCommand] values into
// a command buffer, tagged with a [Layer]. Draw sorts the commands by frame,
// layer and emission order, batches them into triangle submissions and
// composites the result onto the trail canvas. [Scene.Tick] runs the same
// simulation without polling input devices, so tests and scripted runs are
// deterministic given a seeded rand and a [ManualClock].
//
// # Input
//
// Pointer motion snaps the pointer; device tilt (see [TiltSource]) only
// steers its target and the live pointer eases toward it. A press pops the
// topmost character under the cursor, or starts a ripple when there is none.
// After [IdleDriftAfter] without input the target drifts on its own.
// Density and speed are live multipliers, eased with [gween] when changed
// from the keyboard or wheel.
//
// # Characters
//
// Character sprites are decoded off the frame goroutine by an [AssetLoader]
// and keyed out against black with a luminance matte and radial vignette.
// The scene runs without them until the first one is ready.
//
// Scene events can be forwarded to an ECS through [EntityStore]; the
// starvine/ecs module provides a [Donburi] adapter.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
// [Donburi]: https://github.com/yohamta/donburi
package starvine
