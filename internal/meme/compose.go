// Package meme implements the image composition core: scaling a source photo
// onto an output canvas and stamping the two optional caption bars over it.
//
// Composition is a pure function of (source pixels, caption strings, options)
// with no I/O, so identical inputs always produce identical output rasters.
// The caption layout is intentionally "snapchat-style": both bars stack
// around the vertical midpoint of the image rather than hugging the top and
// bottom edges.
package meme

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const (
	// DefaultWidth is the output canvas width when none is requested.
	DefaultWidth = 600
	// DefaultQuality is the JPEG encoding quality for data-URI output.
	DefaultQuality = 90

	// Caption geometry, all relative to the output width.
	fontScale = 0.05 // font size = 5% of canvas width
	barScale  = 1.8  // bar height = 1.8x font size
	gapScale  = 0.2  // gap between each bar and the midpoint
)

// barColor is the semi-transparent black behind caption text (60% opacity).
var barColor = color.NRGBA{R: 0, G: 0, B: 0, A: 153}

// Options controls composition. The zero value selects the defaults.
type Options struct {
	// Width of the output canvas in pixels; <= 0 means DefaultWidth.
	// Height is always derived from the source aspect ratio.
	Width int
	// Quality is the JPEG quality used by EncodeJPEGDataURI; <= 0 means
	// DefaultQuality.
	Quality int
	// Wrap enables multi-line captions. Off by default: a long caption is
	// drawn on a single baseline and may overflow the canvas horizontally.
	Wrap bool
}

func (o Options) width() int {
	if o.Width <= 0 {
		return DefaultWidth
	}
	return o.Width
}

func (o Options) quality() int {
	if o.Quality <= 0 {
		return DefaultQuality
	}
	return o.Quality
}

var (
	fontOnce   sync.Once
	parsedFont *opentype.Font
	fontErr    error
)

// captionFace builds a font face at the given pixel size from the embedded
// Go Regular font. The font is parsed once; faces are cheap per call.
func captionFace(size float64) (font.Face, error) {
	fontOnce.Do(func() {
		parsedFont, fontErr = opentype.Parse(goregular.TTF)
	})
	if fontErr != nil {
		return nil, fontErr
	}
	return opentype.NewFace(parsedFont, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
}

// Compose scales src to fill an opts.Width-wide canvas (height preserves the
// source aspect ratio exactly: round(width * srcH / srcW)) and draws the two
// caption bars stacked around the vertical midpoint: the top caption's bar
// sits just above center, the bottom caption's just below. Empty captions
// draw nothing on their side; with both empty the result is a plain rescale.
//
// A nil src yields (nil, nil): the source is simply not ready yet, which is
// not an error. Callers must treat an absent result as a no-op.
func Compose(src image.Image, topText, bottomText string, opts Options) (image.Image, error) {
	if src == nil {
		return nil, nil
	}

	sb := src.Bounds()
	w := opts.width()
	h := int(math.Round(float64(w) * float64(sb.Dy()) / float64(sb.Dx())))
	if h < 1 {
		h = 1
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), src, sb, xdraw.Src, nil)

	fontSize := float64(w) * fontScale
	barH := fontSize * barScale
	gap := fontSize * gapScale
	mid := float64(h) / 2

	face, err := captionFace(fontSize)
	if err != nil {
		return nil, err
	}
	defer face.Close()

	if topText != "" {
		// Bar centered on midY = mid - barH/2 - gap.
		drawCaption(dst, face, topText, mid-barH/2-gap, barH, fontSize, opts.Wrap)
	}
	if bottomText != "" {
		drawCaption(dst, face, bottomText, mid+barH/2+gap, barH, fontSize, opts.Wrap)
	}

	return dst, nil
}

// drawCaption paints one semi-transparent bar vertically centered on midY and
// renders the caption in white, horizontally centered. With wrapping enabled
// the bar grows to hold every line; otherwise a single baseline is drawn and
// overly long text overflows horizontally.
func drawCaption(dst *image.RGBA, face font.Face, text string, midY, barH, fontSize float64, wrap bool) {
	w := dst.Bounds().Dx()

	lines := []string{text}
	lineH := fontSize * 1.2
	if wrap {
		lines = WrapLines(face, text, w-int(fontSize)) // small side margin
		barH += float64(len(lines)-1) * lineH
	}

	top := int(math.Round(midY - barH/2))
	bot := int(math.Round(midY + barH/2))
	bar := image.Rect(0, top, w, bot)
	draw.Draw(dst, bar, image.NewUniform(barColor), image.Point{}, draw.Over)

	d := &font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(color.White),
		Face: face,
	}

	m := face.Metrics()
	ascent := m.Ascent.Ceil()
	descent := m.Descent.Ceil()

	// First line's vertical center, stepping down one line height at a time.
	startY := midY - float64(len(lines)-1)*lineH/2
	for i, line := range lines {
		textW := d.MeasureString(line).Round()
		cy := startY + float64(i)*lineH
		// Baseline so the glyph box is vertically centered on cy.
		y := int(math.Round(cy)) + (ascent-descent)/2
		d.Dot = fixed.P((w-textW)/2, y)
		d.DrawString(line)
	}
}
