package starvine

import (
	"image"
	"math"

	"github.com/hajimehoshi/ebiten/v2"
)

// --- Render texture pool ---

// renderTexturePool manages reusable offscreen ebiten.Images keyed by
// power-of-two dimensions. After warmup, Acquire/Release are zero-alloc.
type renderTexturePool struct {
	buckets map[uint64][]*ebiten.Image
}

// poolKey packs power-of-two width and height into a single uint64.
func poolKey(w, h int) uint64 {
	return uint64(w)<<32 | uint64(h)
}

// Acquire returns a cleared offscreen image with at least (w, h) pixels.
// Dimensions are rounded up to the next power of two.
func (p *renderTexturePool) Acquire(w, h int) *ebiten.Image {
	pw := nextPowerOfTwo(w)
	ph := nextPowerOfTwo(h)
	key := poolKey(pw, ph)

	if p.buckets != nil {
		if stack := p.buckets[key]; len(stack) > 0 {
			img := stack[len(stack)-1]
			p.buckets[key] = stack[:len(stack)-1]
			img.Clear()
			return img
		}
	}

	return ebiten.NewImageWithOptions(
		image.Rect(0, 0, pw, ph),
		&ebiten.NewImageOptions{Unmanaged: true},
	)
}

// Release returns an image to the pool for reuse. The image is cleared on
// next Acquire, not here (avoids redundant GPU work if released then
// immediately re-acquired).
func (p *renderTexturePool) Release(img *ebiten.Image) {
	if img == nil {
		return
	}
	b := img.Bounds()
	key := poolKey(b.Dx(), b.Dy())

	if p.buckets == nil {
		p.buckets = make(map[uint64][]*ebiten.Image)
	}
	p.buckets[key] = append(p.buckets[key], img)
}

// nextPowerOfTwo returns the smallest power of two >= n (minimum 1).
func nextPowerOfTwo(n int) int {
	if n <= 1 {
		return 1
	}
	// Use float64 log2 then ceil, convert back.
	return 1 << int(math.Ceil(math.Log2(float64(n))))
}

// --- Filtered sprite cache ---

// filteredKey identifies a sprite rendered through a padded filter.
type filteredKey struct {
	sprite *Sprite
	radius int
}

// filteredSprite is a cached, padded rendition of a sprite.
type filteredSprite struct {
	img     *ebiten.Image
	padding int
}

// spriteCache keeps blurred renditions of sprites. Sprites never change after
// loading, so entries live until the cache is cleared on reset.
type spriteCache struct {
	pool    *renderTexturePool
	entries map[filteredKey]filteredSprite
	op      ebiten.DrawImageOptions
}

func newSpriteCache(pool *renderTexturePool) *spriteCache {
	return &spriteCache{pool: pool, entries: make(map[filteredKey]filteredSprite)}
}

// blurred returns sprite blurred by radius pixels, rendering it on first use.
// The returned image is padded by the blur radius on every side.
func (c *spriteCache) blurred(sprite *Sprite, radius int) filteredSprite {
	key := filteredKey{sprite, radius}
	if fs, ok := c.entries[key]; ok {
		return fs
	}
	f := NewBlurFilter(radius)
	pad := f.Padding()
	b := sprite.Image.Bounds()
	w, h := b.Dx()+pad*2, b.Dy()+pad*2

	scratch := c.pool.Acquire(w, h)
	src := scratch.SubImage(image.Rect(0, 0, w, h)).(*ebiten.Image)
	c.op.GeoM.Reset()
	c.op.GeoM.Translate(float64(pad), float64(pad))
	src.DrawImage(sprite.Image, &c.op)

	out := ebiten.NewImage(w, h)
	f.Apply(src, out)
	c.pool.Release(scratch)

	fs := filteredSprite{img: out, padding: pad}
	c.entries[key] = fs
	return fs
}

// Len returns the number of cached renditions.
func (c *spriteCache) Len() int { return len(c.entries) }

// clear deallocates every cached image.
func (c *spriteCache) clear() {
	for k, fs := range c.entries {
		fs.img.Deallocate()
		delete(c.entries, k)
	}
}
