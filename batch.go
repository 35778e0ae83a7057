package starvine

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// whitePixel is the shared source texture for untextured geometry.
var whitePixel *ebiten.Image

// ensureWhitePixel returns a 1x1 white sub-image cut from the middle of a
// 3x3 image so linear sampling never bleeds past its edges.
func ensureWhitePixel() *ebiten.Image {
	if whitePixel == nil {
		img := ebiten.NewImage(3, 3)
		img.Fill(color.White)
		whitePixel = img.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whitePixel
}

// submitter turns sorted render commands into Ebitengine draw calls.
// Consecutive fills and strokes sharing a blend mode are coalesced into one
// DrawTriangles32 call.
type submitter struct {
	verts     []ebiten.Vertex
	inds      []uint32
	runBlend  BlendMode
	triOp     ebiten.DrawTrianglesOptions
	gradient  *gradientPainter
	matrix    *ColorMatrixFilter
	rtPool    renderTexturePool
	cache     *spriteCache
	drawCalls int
}

func newSubmitter() *submitter {
	s := &submitter{
		gradient: newGradientPainter(),
		matrix:   NewColorMatrixFilter(),
	}
	s.cache = newSpriteCache(&s.rtPool)
	return s
}

// submit draws commands onto target in order and returns the number of draw
// calls issued.
func (s *submitter) submit(target *ebiten.Image, commands []RenderCommand) int {
	s.drawCalls = 0
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]

	for i := range commands {
		cmd := &commands[i]
		switch cmd.Type {
		case CommandFill, CommandStroke:
			if len(s.inds) > 0 && cmd.BlendMode != s.runBlend {
				s.flushShapes(target)
			}
			s.runBlend = cmd.BlendMode
			c := premul(cmd.Color)
			if cmd.Type == CommandFill {
				s.verts, s.inds = appendPolygonFan(s.verts, s.inds, cmd.Points, cmd.Transform, c)
			} else {
				s.verts, s.inds = appendStroke(s.verts, s.inds, cmd.Points, cmd.Closed, cmd.Width, cmd.Transform, c)
			}
		case CommandGradient:
			s.flushShapes(target)
			s.gradient.draw(target, cmd)
			s.drawCalls++
		case CommandSprite:
			s.flushShapes(target)
			s.submitSprite(target, cmd)
		}
	}
	s.flushShapes(target)
	return s.drawCalls
}

// flushShapes submits the accumulated untextured geometry.
func (s *submitter) flushShapes(target *ebiten.Image) {
	if len(s.inds) == 0 {
		return
	}
	s.triOp.Blend = s.runBlend.EbitenBlend()
	s.triOp.Filter = ebiten.FilterNearest
	s.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	target.DrawTriangles32(s.verts, s.inds, ensureWhitePixel(), &s.triOp)
	s.drawCalls++
	s.verts = s.verts[:0]
	s.inds = s.inds[:0]
}

// submitSprite draws one sprite quad, blurred and color-filtered as requested.
func (s *submitter) submitSprite(target *ebiten.Image, cmd *RenderCommand) {
	sp := cmd.Sprite
	if sp == nil || sp.Image == nil {
		return
	}
	img := sp.Image
	pad := 0
	if cmd.Filter.Blur > 0 {
		fs := s.cache.blurred(sp, cmd.Filter.Blur)
		img, pad = fs.img, fs.padding
	}

	b := sp.Image.Bounds()
	fx := cmd.Dst.Width / float64(b.Dx())
	fy := cmd.Dst.Height / float64(b.Dy())
	cx := cmd.Dst.X + cmd.Dst.Width/2
	cy := cmd.Dst.Y + cmd.Dst.Height/2
	hw := (cmd.Dst.Width/2 + float64(pad)*fx) * cmd.Scale
	hh := (cmd.Dst.Height/2 + float64(pad)*fy) * cmd.Scale

	ib := img.Bounds()
	sx0, sy0 := float32(ib.Min.X), float32(ib.Min.Y)
	sx1, sy1 := float32(ib.Max.X), float32(ib.Max.Y)

	c := premul(cmd.Color)
	lx := [4]float64{cx - hw, cx + hw, cx - hw, cx + hw}
	ly := [4]float64{cy - hh, cy - hh, cy + hh, cy + hh}
	su := [4]float32{sx0, sx1, sx0, sx1}
	sv := [4]float32{sy0, sy0, sy1, sy1}

	var verts [4]ebiten.Vertex
	for i := range verts {
		dx, dy := applyAffine(cmd.Transform, lx[i], ly[i])
		verts[i] = ebiten.Vertex{
			DstX: float32(dx), DstY: float32(dy),
			SrcX: su[i], SrcY: sv[i],
			ColorR: c[0], ColorG: c[1], ColorB: c[2], ColorA: c[3],
		}
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	inds := [6]uint32{0, 1, 2, 1, 3, 2}

	blend := cmd.BlendMode.EbitenBlend()
	if cmd.Filter.IsIdentity() {
		s.triOp.Blend = blend
		s.triOp.Filter = ebiten.FilterLinear
		s.triOp.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
		target.DrawTriangles32(verts[:], inds[:], img, &s.triOp)
	} else {
		s.matrix.SetSpriteFilter(cmd.Filter)
		s.matrix.drawTriangles(target, img, verts[:], inds[:], blend)
	}
	s.drawCalls++
}

// dispose releases cached sprite renditions.
func (s *submitter) dispose() {
	s.cache.clear()
}
