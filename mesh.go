package starvine

import (
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// circleSegments picks a segment count for a circle of radius r that keeps
// chords under ~4px without exploding for huge nebula puffs.
func circleSegments(r float64) int {
	n := int(math.Ceil(2 * math.Pi * r / 4))
	if n < 8 {
		return 8
	}
	if n > 96 {
		return 96
	}
	return n
}

// appendEllipse appends n points on the ellipse centered at (cx, cy) with
// radii (rx, ry), rotated by rot.
func appendEllipse(dst []Vec2, cx, cy, rx, ry, rot float64, n int) []Vec2 {
	sr, cr := math.Sincos(rot)
	for i := 0; i < n; i++ {
		a := 2 * math.Pi * float64(i) / float64(n)
		s, c := math.Sincos(a)
		x := c * rx
		y := s * ry
		dst = append(dst, Vec2{cx + x*cr - y*sr, cy + x*sr + y*cr})
	}
	return dst
}

// appendPolarOutline appends the outline r(a) sampled from 0 up to (but not
// including) 2π in steps of step radians, around (cx, cy).
func appendPolarOutline(dst []Vec2, cx, cy, step float64, r func(a float64) float64) []Vec2 {
	for a := 0.0; a < 2*math.Pi; a += step {
		s, c := math.Sincos(a)
		ra := r(a)
		dst = append(dst, Vec2{cx + c*ra, cy + s*ra})
	}
	return dst
}

// polygonCentroid returns the vertex average of points.
func polygonCentroid(points []Vec2) Vec2 {
	var c Vec2
	for _, p := range points {
		c.X += p.X
		c.Y += p.Y
	}
	n := float64(len(points))
	return Vec2{c.X / n, c.Y / n}
}

// appendPolygonFan appends vertices and indices for a polygon triangulated as
// a fan around its centroid, so any outline that is star-shaped about the
// centroid fills correctly. N points produce N+1 vertices and 3N indices.
// Vertices are transformed by m and colored with the premultiplied color c.
func appendPolygonFan(verts []ebiten.Vertex, inds []uint32, points []Vec2, m [6]float32, c [4]float32) ([]ebiten.Vertex, []uint32) {
	n := len(points)
	if n < 3 {
		return verts, inds
	}
	base := uint32(len(verts))
	hub := polygonCentroid(points)
	verts = append(verts, whiteVertex(m, hub.X, hub.Y, c))
	for _, p := range points {
		verts = append(verts, whiteVertex(m, p.X, p.Y, c))
	}
	for i := 0; i < n; i++ {
		next := (i+1)%n + 1
		inds = append(inds, base, base+uint32(i+1), base+uint32(next))
	}
	return verts, inds
}

// appendStroke appends one quad per segment of the polyline, each width
// pixels wide, plus the closing segment when closed is set.
func appendStroke(verts []ebiten.Vertex, inds []uint32, points []Vec2, closed bool, width float64, m [6]float32, c [4]float32) ([]ebiten.Vertex, []uint32) {
	n := len(points)
	if n < 2 {
		return verts, inds
	}
	segs := n - 1
	if closed && n > 2 {
		segs = n
	}
	hw := width / 2
	for i := 0; i < segs; i++ {
		a := points[i]
		b := points[(i+1)%n]
		px, py := perpendicular(a, b)
		if px == 0 && py == 0 {
			continue
		}
		px *= hw
		py *= hw
		base := uint32(len(verts))
		verts = append(verts,
			whiteVertex(m, a.X+px, a.Y+py, c),
			whiteVertex(m, a.X-px, a.Y-py, c),
			whiteVertex(m, b.X+px, b.Y+py, c),
			whiteVertex(m, b.X-px, b.Y-py, c),
		)
		inds = append(inds, base, base+1, base+2, base+1, base+3, base+2)
	}
	return verts, inds
}

// perpendicular returns the unit left-perpendicular of the segment from a to b.
func perpendicular(a, b Vec2) (float64, float64) {
	dx := b.X - a.X
	dy := b.Y - a.Y
	l := math.Hypot(dx, dy)
	if l == 0 {
		return 0, 0
	}
	return -dy / l, dx / l
}

// whiteVertex builds a vertex sampling the white pixel.
func whiteVertex(m [6]float32, x, y float64, c [4]float32) ebiten.Vertex {
	tx, ty := applyAffine(m, x, y)
	return ebiten.Vertex{
		DstX: float32(tx), DstY: float32(ty),
		SrcX: 1, SrcY: 1,
		ColorR: c[0], ColorG: c[1], ColorB: c[2], ColorA: c[3],
	}
}

// premul returns c as premultiplied float32 components.
func premul(c Color) [4]float32 {
	a := clamp01(c.A)
	return [4]float32{
		float32(clamp01(c.R) * a),
		float32(clamp01(c.G) * a),
		float32(clamp01(c.B) * a),
		float32(a),
	}
}
