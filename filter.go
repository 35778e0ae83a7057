package starvine

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// Filter is the interface for image effects applied to a sprite before it is
// composited.
type Filter interface {
	// Apply renders src into dst with the filter effect.
	Apply(src, dst *ebiten.Image)
	// Padding returns the extra pixels needed around the source to accommodate
	// the effect (e.g. blur radius). Zero means no padding.
	Padding() int
}

// --- Kage shader sources ---
// All shaders use //kage:unit pixels as required by Ebitengine.
// Ebitengine uses premultiplied alpha; shaders un-premultiply before processing
// and re-premultiply output where needed.

const colorMatrixShaderSrc = `//kage:unit pixels
package main

var Matrix [20]float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	c := imageSrc0At(src)
	// Un-premultiply alpha.
	if c.a > 0 {
		c.rgb /= c.a
	}
	// Apply 4x5 color matrix (row-major, offset in elements 4,9,14,19).
	r := Matrix[0]*c.r + Matrix[1]*c.g + Matrix[2]*c.b + Matrix[3]*c.a + Matrix[4]
	g := Matrix[5]*c.r + Matrix[6]*c.g + Matrix[7]*c.b + Matrix[8]*c.a + Matrix[9]
	b := Matrix[10]*c.r + Matrix[11]*c.g + Matrix[12]*c.b + Matrix[13]*c.a + Matrix[14]
	a := Matrix[15]*c.r + Matrix[16]*c.g + Matrix[17]*c.b + Matrix[18]*c.a + Matrix[19]
	// Clamp and re-premultiply.
	r = clamp(r, 0, 1)
	g = clamp(g, 0, 1)
	b = clamp(b, 0, 1)
	a = clamp(a, 0, 1)
	// Vertex color carries the premultiplied tint and alpha.
	return vec4(r*a, g*a, b*a, a) * color
}
`

// --- Lazy shader compilation (the frame loop is single-threaded) ---

var colorMatrixShader *ebiten.Shader

func ensureColorMatrixShader() *ebiten.Shader {
	if colorMatrixShader == nil {
		s, err := ebiten.NewShader([]byte(colorMatrixShaderSrc))
		if err != nil {
			panic("starvine: failed to compile color matrix shader: " + err.Error())
		}
		colorMatrixShader = s
	}
	return colorMatrixShader
}

// --- ColorMatrixFilter ---

// identityMatrix is the 4x5 identity color matrix.
var identityMatrix = [20]float64{
	1, 0, 0, 0, 0,
	0, 1, 0, 0, 0,
	0, 0, 1, 0, 0,
	0, 0, 0, 1, 0,
}

// ColorMatrixFilter applies a 4x5 color matrix transformation using a Kage shader.
// The matrix is stored in row-major order: [R_r, R_g, R_b, R_a, R_offset, G_r, ...].
type ColorMatrixFilter struct {
	Matrix      [20]float64
	uniforms    map[string]any
	matrixF32   [20]float32 // persistent buffer to avoid per-frame slice escape
	matrixSlice []float32   // persistent slice header pointing into matrixF32
	shaderOp    ebiten.DrawRectShaderOptions
	triOp       ebiten.DrawTrianglesShaderOptions
}

// NewColorMatrixFilter creates a color matrix filter initialized to the identity.
func NewColorMatrixFilter() *ColorMatrixFilter {
	f := &ColorMatrixFilter{
		Matrix:   identityMatrix,
		uniforms: make(map[string]any, 1),
	}
	f.matrixSlice = f.matrixF32[:]
	f.uniforms["Matrix"] = f.matrixSlice
	return f
}

// SetHueRotate sets the matrix to rotate hue by deg degrees, matching the
// CSS hue-rotate() filter. Grays are left unchanged.
func (f *ColorMatrixFilter) SetHueRotate(deg float64) {
	f.Matrix = hueRotateMatrix(deg)
}

// SetBrightness sets the matrix to scale RGB by b. b=1 is normal, 2 doubles.
func (f *ColorMatrixFilter) SetBrightness(b float64) {
	f.Matrix = brightnessMatrix(b)
}

// SetContrast sets the matrix to adjust contrast. c=1 is normal, 0=gray, >1 is higher.
func (f *ColorMatrixFilter) SetContrast(c float64) {
	f.Matrix = contrastMatrix(c)
}

// SetSpriteFilter sets the matrix to the hue-rotate, contrast and brightness
// chain of sf, applied in that order.
func (f *ColorMatrixFilter) SetSpriteFilter(sf SpriteFilter) {
	f.Matrix = spriteFilterMatrix(sf)
}

func (f *ColorMatrixFilter) syncUniforms() {
	// Convert [20]float64 to [20]float32 in place. matrixSlice
	// already points into matrixF32 and is stored in the uniforms map.
	for i, v := range f.Matrix {
		f.matrixF32[i] = float32(v)
	}
}

// Apply renders the color matrix transformation from src into dst.
func (f *ColorMatrixFilter) Apply(src, dst *ebiten.Image) {
	shader := ensureColorMatrixShader()
	f.syncUniforms()
	bounds := src.Bounds()
	f.shaderOp.Images[0] = src
	f.shaderOp.Uniforms = f.uniforms
	dst.DrawRectShader(bounds.Dx(), bounds.Dy(), shader, &f.shaderOp)
}

// drawTriangles draws src through the matrix directly onto dst with the
// given geometry and blend, skipping the intermediate image.
func (f *ColorMatrixFilter) drawTriangles(dst, src *ebiten.Image, verts []ebiten.Vertex, inds []uint32, blend ebiten.Blend) {
	shader := ensureColorMatrixShader()
	f.syncUniforms()
	f.triOp.Images[0] = src
	f.triOp.Uniforms = f.uniforms
	f.triOp.Blend = blend
	dst.DrawTrianglesShader32(verts, inds, shader, &f.triOp)
}

// Padding returns 0; color matrix transforms don't expand the image bounds.
func (f *ColorMatrixFilter) Padding() int { return 0 }

// hueRotateMatrix returns the CSS hue-rotate matrix for deg degrees.
func hueRotateMatrix(deg float64) [20]float64 {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return [20]float64{
		0.213 + cos*0.787 - sin*0.213, 0.715 - cos*0.715 - sin*0.715, 0.072 - cos*0.072 + sin*0.928, 0, 0,
		0.213 - cos*0.213 + sin*0.143, 0.715 + cos*0.285 + sin*0.140, 0.072 - cos*0.072 - sin*0.283, 0, 0,
		0.213 - cos*0.213 - sin*0.787, 0.715 - cos*0.715 + sin*0.715, 0.072 + cos*0.928 + sin*0.072, 0, 0,
		0, 0, 0, 1, 0,
	}
}

func contrastMatrix(c float64) [20]float64 {
	t := (1.0 - c) / 2.0
	return [20]float64{
		c, 0, 0, 0, t,
		0, c, 0, 0, t,
		0, 0, c, 0, t,
		0, 0, 0, 1, 0,
	}
}

func brightnessMatrix(b float64) [20]float64 {
	return [20]float64{
		b, 0, 0, 0, 0,
		0, b, 0, 0, 0,
		0, 0, b, 0, 0,
		0, 0, 0, 1, 0,
	}
}

// concatMatrix returns the matrix that applies a first, then b.
func concatMatrix(b, a [20]float64) [20]float64 {
	var out [20]float64
	for r := 0; r < 4; r++ {
		for c := 0; c < 5; c++ {
			var v float64
			for k := 0; k < 4; k++ {
				v += b[r*5+k] * a[k*5+c]
			}
			if c == 4 {
				v += b[r*5+4]
			}
			out[r*5+c] = v
		}
	}
	return out
}

// spriteFilterMatrix builds the combined matrix for a SpriteFilter.
func spriteFilterMatrix(sf SpriteFilter) [20]float64 {
	m := identityMatrix
	if math.Mod(sf.HueRotate, 360) != 0 {
		m = hueRotateMatrix(sf.HueRotate)
	}
	if sf.Contrast != 0 && sf.Contrast != 1 {
		m = concatMatrix(contrastMatrix(sf.Contrast), m)
	}
	if sf.Brightness != 0 && sf.Brightness != 1 {
		m = concatMatrix(brightnessMatrix(sf.Brightness), m)
	}
	return m
}

// applyMatrix runs m over a non-premultiplied color on the CPU, mirroring
// the shader.
func applyMatrix(m [20]float64, c Color) Color {
	r := m[0]*c.R + m[1]*c.G + m[2]*c.B + m[3]*c.A + m[4]
	g := m[5]*c.R + m[6]*c.G + m[7]*c.B + m[8]*c.A + m[9]
	b := m[10]*c.R + m[11]*c.G + m[12]*c.B + m[13]*c.A + m[14]
	a := m[15]*c.R + m[16]*c.G + m[17]*c.B + m[18]*c.A + m[19]
	return Color{clamp01(r), clamp01(g), clamp01(b), clamp01(a)}
}

// --- BlurFilter ---

// BlurFilter applies a Kawase iterative blur using downscale/upscale passes.
// Bilinear filtering during DrawImage does the work.
type BlurFilter struct {
	Radius int
	temps  []*ebiten.Image
	imgOp  ebiten.DrawImageOptions
}

// NewBlurFilter creates a blur filter with the given radius (in pixels).
func NewBlurFilter(radius int) *BlurFilter {
	if radius < 0 {
		radius = 0
	}
	return &BlurFilter{Radius: radius}
}

// Apply renders a Kawase blur from src into dst using iterative downscale/upscale.
func (f *BlurFilter) Apply(src, dst *ebiten.Image) {
	if f.Radius <= 0 {
		f.imgOp.GeoM.Reset()
		f.imgOp.ColorScale.Reset()
		f.imgOp.Filter = ebiten.FilterNearest
		dst.DrawImage(src, &f.imgOp)
		return
	}

	// Number of iterations: log2(radius), minimum 1.
	passes := max(int(math.Ceil(math.Log2(float64(f.Radius)))), 1)

	srcBounds := src.Bounds()
	w, h := srcBounds.Dx(), srcBounds.Dy()

	for len(f.temps) < passes {
		f.temps = append(f.temps, nil)
	}
	for i := passes; i < len(f.temps); i++ {
		if f.temps[i] != nil {
			f.temps[i].Deallocate()
			f.temps[i] = nil
		}
	}
	f.temps = f.temps[:passes]

	// Downscale passes: each half-size
	current := src
	for i := 0; i < passes; i++ {
		w = max(w/2, 1)
		h = max(h/2, 1)
		if f.temps[i] == nil || f.temps[i].Bounds().Dx() != w || f.temps[i].Bounds().Dy() != h {
			if f.temps[i] != nil {
				f.temps[i].Deallocate()
			}
			f.temps[i] = ebiten.NewImage(w, h)
		} else {
			f.temps[i].Clear()
		}
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}

	// Upscale passes: draw each back up
	for i := passes - 2; i >= 0; i-- {
		f.temps[i].Clear()
		f.scaleInto(f.temps[i], current)
		current = f.temps[i]
	}

	f.scaleInto(dst, current)
}

// scaleInto stretches src over all of dst with linear filtering.
func (f *BlurFilter) scaleInto(dst, src *ebiten.Image) {
	op := &f.imgOp
	op.GeoM.Reset()
	op.ColorScale.Reset()
	sw := float64(src.Bounds().Dx())
	sh := float64(src.Bounds().Dy())
	tw := float64(dst.Bounds().Dx())
	th := float64(dst.Bounds().Dy())
	op.GeoM.Scale(tw/sw, th/sh)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(src, op)
}

// Padding returns the blur radius; the offscreen buffer is expanded to avoid clipping.
func (f *BlurFilter) Padding() int { return f.Radius }
