package starvine

import "math"

// CommandType identifies the kind of render command.
type CommandType uint8

const (
	CommandFill     CommandType = iota // solid polygon (fan triangulated)
	CommandGradient                    // polygon shaded by a radial gradient
	CommandStroke                      // polyline with a line width
	CommandSprite                      // image blit with optional color filter
)

// Layer is the compositing slot a command belongs to. Layers are drawn in
// ascending order; commands within a layer keep their emission order.
type Layer uint8

const (
	LayerVeil       Layer = iota // translucent wash that leaves motion trails
	LayerStars                   // starfield
	LayerCosmic                  // background nebulae and galaxies
	LayerParticles               // flow vines, sparkles, puffs
	LayerCharacters              // pop-out sprites and their trails
	LayerRipples                 // click shockwaves
	LayerEffects                 // pop effects
	LayerGlow                    // periodic ambient wash
)

// Gradient is a three-stop radial gradient. Stops sit at offsets 0, Mid
// and 1; beyond the radius the outer color is used.
type Gradient struct {
	Center Vec2
	Radius float64
	Inner  Color
	Middle Color
	Outer  Color
	Mid    float64
}

// TwoStopGradient builds a gradient from inner to outer with the middle stop
// interpolated halfway.
func TwoStopGradient(center Vec2, radius float64, inner, outer Color) Gradient {
	return Gradient{
		Center: center,
		Radius: radius,
		Inner:  inner,
		Middle: Color{
			lerp(inner.R, outer.R, 0.5), lerp(inner.G, outer.G, 0.5),
			lerp(inner.B, outer.B, 0.5), lerp(inner.A, outer.A, 0.5),
		},
		Outer: outer,
		Mid:   0.5,
	}
}

// At samples the gradient color at distance d from the center.
func (g Gradient) At(d float64) Color {
	if g.Radius <= 0 {
		return g.Outer
	}
	t := clamp01(d / g.Radius)
	mid := clamp(g.Mid, 0.001, 0.999)
	if t < mid {
		return mixColor(g.Inner, g.Middle, t/mid)
	}
	return mixColor(g.Middle, g.Outer, (t-mid)/(1-mid))
}

func mixColor(a, b Color, t float64) Color {
	return Color{lerp(a.R, b.R, t), lerp(a.G, b.G, t), lerp(a.B, b.B, t), lerp(a.A, b.A, t)}
}

// SpriteFilter mirrors the CSS-style filter chain applied to sprite blits.
// Zero Contrast and Brightness mean unchanged.
type SpriteFilter struct {
	HueRotate  float64 // degrees
	Contrast   float64 // 1 = unchanged
	Brightness float64 // 1 = unchanged (multiplicative)
	Blur       int     // pixels
}

// IsIdentity reports whether the filter leaves colors untouched.
func (f SpriteFilter) IsIdentity() bool {
	return math.Mod(f.HueRotate, 360) == 0 &&
		(f.Contrast == 0 || f.Contrast == 1) &&
		(f.Brightness == 0 || f.Brightness == 1)
}

// RenderCommand is a single draw instruction emitted during a frame tick.
type RenderCommand struct {
	Type      CommandType
	Layer     Layer
	Transform [6]float32
	Color     Color // fill/stroke color or sprite tint; alpha already includes entity alpha
	BlendMode BlendMode

	// Fill, gradient and stroke geometry.
	Points   []Vec2
	Closed   bool
	Width    float64
	Gradient Gradient

	// Sprite fields.
	Sprite *Sprite
	Dst    Rect    // destination box before Scale
	Scale  float64 // uniform scale about the Dst center
	Filter SpriteFilter

	frame     int
	treeOrder int // emission order for stable sort
}

// identityTransform is the identity affine matrix [a b c d tx ty].
var identityTransform = [6]float64{1, 0, 0, 1, 0, 0}

// affine32 converts a [6]float64 affine matrix to [6]float32.
func affine32(m [6]float64) [6]float32 {
	return [6]float32{float32(m[0]), float32(m[1]), float32(m[2]), float32(m[3]), float32(m[4]), float32(m[5])}
}

// rotationAbout returns the affine matrix rotating by theta around (cx, cy).
func rotationAbout(theta, cx, cy float64) [6]float64 {
	sin, cos := math.Sincos(theta)
	return [6]float64{
		cos, sin, -sin, cos,
		cx - cos*cx + sin*cy,
		cy - sin*cx - cos*cy,
	}
}

// applyAffine transforms (x, y) by m.
func applyAffine(m [6]float32, x, y float64) (float64, float64) {
	a, b, c, d := float64(m[0]), float64(m[1]), float64(m[2]), float64(m[3])
	return a*x + c*y + float64(m[4]), b*x + d*y + float64(m[5])
}

// CommandBuffer collects render commands for pending frames. Polygon points
// live in a shared arena that is recycled on Reset.
type CommandBuffer struct {
	commands  []RenderCommand
	sortBuf   []RenderCommand
	points    []Vec2
	layer     Layer
	transform [6]float32
	frame     int
	frames    int
	treeOrder int
}

const defaultCommandCap = 1024

func newCommandBuffer() *CommandBuffer {
	return &CommandBuffer{
		commands:  make([]RenderCommand, 0, defaultCommandCap),
		sortBuf:   make([]RenderCommand, 0, defaultCommandCap),
		points:    make([]Vec2, 0, defaultCommandCap*8),
		transform: affine32(identityTransform),
	}
}

// Reset drops every pending command.
func (b *CommandBuffer) Reset() {
	b.commands = b.commands[:0]
	b.points = b.points[:0]
	b.frames = 0
	b.treeOrder = 0
}

// Commands returns the pending commands. The returned slice MUST NOT be mutated.
func (b *CommandBuffer) Commands() []RenderCommand {
	return b.commands
}

// Len returns the number of pending commands.
func (b *CommandBuffer) Len() int { return len(b.commands) }

// beginFrame starts a new frame of commands with the identity transform.
func (b *CommandBuffer) beginFrame(frame int) {
	b.frame = frame
	b.frames++
	b.layer = LayerVeil
	b.transform = affine32(identityTransform)
}

// SetLayer selects the layer for subsequent commands.
func (b *CommandBuffer) SetLayer(l Layer) { b.layer = l }

// SetTransform sets the affine transform for subsequent commands.
func (b *CommandBuffer) SetTransform(m [6]float64) { b.transform = affine32(m) }

func (b *CommandBuffer) push(cmd RenderCommand) {
	b.treeOrder++
	cmd.Layer = b.layer
	cmd.Transform = b.transform
	cmd.frame = b.frame
	cmd.treeOrder = b.treeOrder
	b.commands = append(b.commands, cmd)
}

// keep copies pts into the arena and returns the arena-backed slice.
func (b *CommandBuffer) keep(pts []Vec2) []Vec2 {
	start := len(b.points)
	b.points = append(b.points, pts...)
	return b.points[start:len(b.points):len(b.points)]
}

// FillPolygon emits a solid fill of a polygon that is star-shaped around its
// first vertex.
func (b *CommandBuffer) FillPolygon(pts []Vec2, c Color, blend BlendMode) {
	if len(pts) < 3 || c.A <= 0 {
		return
	}
	b.push(RenderCommand{Type: CommandFill, Points: b.keep(pts), Color: c, BlendMode: blend})
}

// FillCircle emits a solid disc.
func (b *CommandBuffer) FillCircle(cx, cy, r float64, c Color, blend BlendMode) {
	if r <= 0 || c.A <= 0 {
		return
	}
	start := len(b.points)
	b.points = appendEllipse(b.points, cx, cy, r, r, 0, circleSegments(r))
	pts := b.points[start:len(b.points):len(b.points)]
	b.push(RenderCommand{Type: CommandFill, Points: pts, Color: c, BlendMode: blend})
}

// FillRect emits a solid rectangle.
func (b *CommandBuffer) FillRect(x, y, w, h float64, c Color, blend BlendMode) {
	if w <= 0 || h <= 0 || c.A <= 0 {
		return
	}
	pts := [4]Vec2{{x, y}, {x + w, y}, {x + w, y + h}, {x, y + h}}
	b.push(RenderCommand{Type: CommandFill, Points: b.keep(pts[:]), Color: c, BlendMode: blend})
}

// GradientPolygon emits a polygon shaded by g and scaled by alpha.
func (b *CommandBuffer) GradientPolygon(pts []Vec2, g Gradient, alpha float64, blend BlendMode) {
	if len(pts) < 3 || alpha <= 0 || g.Radius <= 0 {
		return
	}
	b.push(RenderCommand{
		Type: CommandGradient, Points: b.keep(pts), Gradient: g,
		Color: Color{1, 1, 1, clamp01(alpha)}, BlendMode: blend,
	})
}

// GradientCircle emits a disc of radius g.Radius shaded by g.
func (b *CommandBuffer) GradientCircle(g Gradient, alpha float64, blend BlendMode) {
	if alpha <= 0 || g.Radius <= 0 {
		return
	}
	start := len(b.points)
	b.points = appendEllipse(b.points, g.Center.X, g.Center.Y, g.Radius, g.Radius, 0, circleSegments(g.Radius))
	pts := b.points[start:len(b.points):len(b.points)]
	b.push(RenderCommand{
		Type: CommandGradient, Points: pts, Gradient: g,
		Color: Color{1, 1, 1, clamp01(alpha)}, BlendMode: blend,
	})
}

// StrokePolyline emits a stroked path of the given width.
func (b *CommandBuffer) StrokePolyline(pts []Vec2, closed bool, width float64, c Color, blend BlendMode) {
	if len(pts) < 2 || width <= 0 || c.A <= 0 {
		return
	}
	b.push(RenderCommand{
		Type: CommandStroke, Points: b.keep(pts), Closed: closed,
		Width: width, Color: c, BlendMode: blend,
	})
}

// StrokeLine emits a single stroked segment.
func (b *CommandBuffer) StrokeLine(x0, y0, x1, y1, width float64, c Color, blend BlendMode) {
	pts := [2]Vec2{{x0, y0}, {x1, y1}}
	b.StrokePolyline(pts[:], false, width, c, blend)
}

// StrokeCircle emits a circle outline.
func (b *CommandBuffer) StrokeCircle(cx, cy, r, width float64, c Color, blend BlendMode) {
	if r <= 0 || width <= 0 || c.A <= 0 {
		return
	}
	start := len(b.points)
	b.points = appendEllipse(b.points, cx, cy, r, r, 0, circleSegments(r))
	pts := b.points[start:len(b.points):len(b.points)]
	b.push(RenderCommand{
		Type: CommandStroke, Points: pts, Closed: true,
		Width: width, Color: c, BlendMode: blend,
	})
}

// SpriteDraw describes one sprite blit.
type SpriteDraw struct {
	Sprite *Sprite
	Dst    Rect
	Scale  float64 // zero means 1
	Alpha  float64
	Tint   Color // zero means white
	Filter SpriteFilter
	Blend  BlendMode
}

// DrawSprite emits a sprite blit. Missing sprites and invisible draws are skipped.
func (b *CommandBuffer) DrawSprite(d SpriteDraw) {
	if d.Sprite == nil || d.Alpha <= 0 || d.Dst.Width <= 0 || d.Dst.Height <= 0 {
		return
	}
	tint := d.Tint
	if tint == (Color{}) {
		tint = ColorWhite
	}
	tint.A = clamp01(d.Alpha)
	scale := d.Scale
	if scale == 0 {
		scale = 1
	}
	b.push(RenderCommand{
		Type: CommandSprite, Sprite: d.Sprite, Dst: d.Dst, Scale: scale,
		Color: tint, Filter: d.Filter, BlendMode: d.Blend,
	})
}

// --- Merge sort ---

// commandLessOrEqual returns true if a should sort before or at the same position as b.
// Using <= for treeOrder ensures stability.
func commandLessOrEqual(a, b *RenderCommand) bool {
	if a.frame != b.frame {
		return a.frame < b.frame
	}
	if a.Layer != b.Layer {
		return a.Layer < b.Layer
	}
	return a.treeOrder <= b.treeOrder
}

// sort orders the pending commands by frame, layer and emission order using
// a bottom-up merge sort; zero allocations after the sort buffer reaches its
// high-water mark.
func (b *CommandBuffer) sort() {
	n := len(b.commands)
	if n <= 1 {
		return
	}
	if cap(b.sortBuf) < n {
		b.sortBuf = make([]RenderCommand, n)
	}
	b.sortBuf = b.sortBuf[:n]

	src := b.commands
	dst := b.sortBuf
	swapped := false

	for width := 1; width < n; width *= 2 {
		for i := 0; i < n; i += 2 * width {
			lo := i
			mid := min(lo+width, n)
			hi := min(lo+2*width, n)
			mergeRun(src, dst, lo, mid, hi)
		}
		src, dst = dst, src
		swapped = !swapped
	}

	if swapped {
		copy(b.commands, b.sortBuf)
	}
}

// mergeRun merges two sorted runs [lo, mid) and [mid, hi) from src into dst.
func mergeRun(src, dst []RenderCommand, lo, mid, hi int) {
	i, j, k := lo, mid, lo
	for i < mid && j < hi {
		if commandLessOrEqual(&src[i], &src[j]) {
			dst[k] = src[i]
			i++
		} else {
			dst[k] = src[j]
			j++
		}
		k++
	}
	for i < mid {
		dst[k] = src[i]
		i++
		k++
	}
	for j < hi {
		dst[k] = src[j]
		j++
		k++
	}
}
