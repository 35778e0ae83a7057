package starvine

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // register the PNG decoder for character sprites
	"io/fs"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/remeh/sizedwaitgroup"
)

// DefaultSpriteNames is the ordered list of character sprites loaded from the
// asset directory.
var DefaultSpriteNames = []string{
	"char1.png", "char2.png", "char3.png", "char4.png", "char5.png",
	"char6.png", "char7.png", "char8.png", "char9.png",
}

// ErrNoAssets is reported by Wait when every sprite failed to load.
var ErrNoAssets = errors.New("starvine: no character sprites could be loaded")

// Matte and vignette constants.
const (
	matteThreshold = 50
	matteGain      = 1.5
	vignetteStart  = 0.7
)

// decodeWorkers bounds concurrent sprite decodes.
const decodeWorkers = 4

// Sprite is a post-processed character image ready to draw.
type Sprite struct {
	Name  string
	Image *ebiten.Image
	W, H  int
}

// ProcessSprite applies the luminance matte and radial vignette to src and
// returns a new non-premultiplied image. Pixels darker than the threshold
// become transparent; brighter pixels get alpha (brightness-50)*1.5, capped
// at 255. The vignette keeps full alpha out to 70% of the half width, fades
// linearly to zero at the half width and clears everything beyond it.
func ProcessSprite(src image.Image) *image.NRGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	cx, cy := float64(w)/2, float64(h)/2
	radius := float64(w) / 2

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := color.NRGBAModel.Convert(src.At(b.Min.X+x, b.Min.Y+y)).(color.NRGBA)
			a := matteAlpha(c.R, c.G, c.B)
			// Sample the vignette at the pixel center.
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			a *= vignette(d, radius)
			dst.SetNRGBA(x, y, color.NRGBA{c.R, c.G, c.B, uint8(math.Round(a))})
		}
	}
	return dst
}

// matteAlpha is the luminance-keyed alpha for one pixel, in [0, 255].
func matteAlpha(r, g, b uint8) float64 {
	brightness := (float64(r) + float64(g) + float64(b)) / 3
	if brightness < matteThreshold {
		return 0
	}
	return math.Min(255, (brightness-matteThreshold)*matteGain)
}

// vignette returns the alpha scale at distance d from the center of a
// sprite whose half width is radius.
func vignette(d, radius float64) float64 {
	if radius <= 0 {
		return 0
	}
	t := d / radius
	switch {
	case t <= vignetteStart:
		return 1
	case t >= 1:
		return 0
	default:
		return (1 - t) / (1 - vignetteStart)
	}
}

// spriteResult is the outcome of decoding one sprite off the frame goroutine.
type spriteResult struct {
	name string
	img  *image.NRGBA
	err  error
}

// AssetLoader decodes and post-processes sprites in the background and
// hands them to the frame goroutine through Poll.
type AssetLoader struct {
	fsys    fs.FS
	names   []string
	results chan spriteResult
	done    chan struct{}

	ready  []*Sprite
	failed int
	seen   int

	// toImage converts a processed sprite into a GPU image. Replaced in
	// headless tests.
	toImage func(*image.NRGBA) *ebiten.Image
}

// NewAssetLoader starts loading names from fsys. Decoding runs on at most
// decodeWorkers goroutines.
func NewAssetLoader(fsys fs.FS, names []string) *AssetLoader {
	l := &AssetLoader{
		fsys:    fsys,
		names:   names,
		results: make(chan spriteResult, len(names)),
		done:    make(chan struct{}),
		toImage: func(img *image.NRGBA) *ebiten.Image { return ebiten.NewImageFromImage(img) },
	}
	go l.run()
	return l
}

func (l *AssetLoader) run() {
	swg := sizedwaitgroup.New(decodeWorkers)
	for _, name := range l.names {
		swg.Add()
		go func(name string) {
			defer swg.Done()
			img, err := loadSprite(l.fsys, name)
			l.results <- spriteResult{name: name, img: img, err: err}
		}(name)
	}
	swg.Wait()
	close(l.done)
}

// loadSprite reads, decodes and post-processes one sprite.
func loadSprite(fsys fs.FS, name string) (*image.NRGBA, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", name, err)
	}
	defer f.Close()
	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return ProcessSprite(src), nil
}

// Poll drains finished decodes without blocking, appending successful
// sprites to the ready list. It must be called from the frame goroutine.
// It returns the number of sprites that became ready.
func (l *AssetLoader) Poll() int {
	added := 0
	for {
		select {
		case r := <-l.results:
			l.seen++
			if r.err != nil {
				l.failed++
				logger.Warn("sprite unavailable", "name", r.name, "err", r.err)
				continue
			}
			b := r.img.Bounds()
			l.ready = append(l.ready, &Sprite{Name: r.name, Image: l.toImage(r.img), W: b.Dx(), H: b.Dy()})
			logger.Debug("sprite ready", "name", r.name, "size", humanize.Bytes(uint64(len(r.img.Pix))))
			added++
		default:
			return added
		}
	}
}

// Ready returns the sprites loaded so far. The slice only grows.
func (l *AssetLoader) Ready() []*Sprite { return l.ready }

// Pending reports how many sprites have not been polled yet.
func (l *AssetLoader) Pending() int { return len(l.names) - l.seen }

// Wait blocks until every decode finished, polls the results and returns
// ErrNoAssets if none succeeded.
func (l *AssetLoader) Wait() error {
	<-l.done
	l.Poll()
	if len(l.ready) == 0 && len(l.names) > 0 {
		return ErrNoAssets
	}
	return nil
}
