package starvine

import "github.com/hajimehoshi/ebiten/v2"

// radialGradientShaderSrc shades geometry with a three-stop radial gradient
// centered in destination pixels. Stops are premultiplied; the vertex color
// alpha scales the result.
const radialGradientShaderSrc = `//kage:unit pixels
package main

var Center vec2
var Radius float
var Inner vec4
var Middle vec4
var Outer vec4
var Mid float

func Fragment(dst vec4, src vec2, color vec4) vec4 {
	t := clamp(distance(dst.xy, Center)/Radius, 0, 1)
	var c vec4
	if t < Mid {
		c = mix(Inner, Middle, t/Mid)
	} else {
		c = mix(Middle, Outer, (t-Mid)/(1-Mid))
	}
	return c * color.a
}
`

var radialGradientShader *ebiten.Shader

func ensureRadialGradientShader() *ebiten.Shader {
	if radialGradientShader == nil {
		s, err := ebiten.NewShader([]byte(radialGradientShaderSrc))
		if err != nil {
			panic("starvine: failed to compile radial gradient shader: " + err.Error())
		}
		radialGradientShader = s
	}
	return radialGradientShader
}

// gradientPainter draws gradient-filled polygons. Uniform storage is
// persistent so steady-state draws do not allocate slices.
type gradientPainter struct {
	uniforms map[string]any
	center   [2]float32
	inner    [4]float32
	middle   [4]float32
	outer    [4]float32
	op       ebiten.DrawTrianglesShaderOptions
	verts    []ebiten.Vertex
	inds     []uint32
}

func newGradientPainter() *gradientPainter {
	g := &gradientPainter{uniforms: make(map[string]any, 6)}
	g.uniforms["Center"] = g.center[:]
	g.uniforms["Inner"] = g.inner[:]
	g.uniforms["Middle"] = g.middle[:]
	g.uniforms["Outer"] = g.outer[:]
	return g
}

// draw fills cmd's polygon on dst with cmd's gradient.
func (g *gradientPainter) draw(dst *ebiten.Image, cmd *RenderCommand) {
	gr := cmd.Gradient
	cx, cy := applyAffine(cmd.Transform, gr.Center.X, gr.Center.Y)
	g.center = [2]float32{float32(cx), float32(cy)}
	g.inner = premul(gr.Inner)
	g.middle = premul(gr.Middle)
	g.outer = premul(gr.Outer)
	// Scalar float32 boxing is unavoidable with Ebitengine's uniform API.
	g.uniforms["Radius"] = float32(gr.Radius)
	g.uniforms["Mid"] = float32(clamp(gr.Mid, 0.001, 0.999))

	g.verts, g.inds = appendPolygonFan(g.verts[:0], g.inds[:0], cmd.Points, cmd.Transform, premul(cmd.Color))
	if len(g.inds) == 0 {
		return
	}
	g.op.Uniforms = g.uniforms
	g.op.Blend = cmd.BlendMode.EbitenBlend()
	dst.DrawTrianglesShader32(g.verts, g.inds, ensureRadialGradientShader(), &g.op)
}
