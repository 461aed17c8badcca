// Package thumb synthesizes bounded-size preview rasters: scaled-down
// copies for images and deterministic placeholder cards for documents.
package thumb

import (
	"image"
	"image/color"
	"image/draw"
	"strings"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Constrain returns img scaled to fit within a w×h bounding box, preserving
// aspect ratio. An image that already fits is returned as an unscaled copy.
// Each output axis is at least 1 pixel.
func Constrain(img image.Image, w, h int) image.Image {
	src := img.Bounds()
	sw, sh := src.Dx(), src.Dy()

	if sw <= w && sh <= h {
		out := image.NewRGBA(image.Rect(0, 0, sw, sh))
		draw.Draw(out, out.Bounds(), img, src.Min, draw.Src)
		return out
	}

	// The larger source-to-box ratio determines the limiting axis; the
	// other axis scales by the same factor.
	wr := float64(sw) / float64(w)
	hr := float64(sh) / float64(h)

	var tw, th int
	if wr >= hr {
		tw = w
		th = round(float64(sh) / wr)
	} else {
		th = h
		tw = round(float64(sw) / hr)
	}
	if tw < 1 {
		tw = 1
	}
	if th < 1 {
		th = 1
	}

	out := image.NewRGBA(image.Rect(0, 0, tw, th))
	xdraw.ApproxBiLinear.Scale(out, out.Bounds(), img, src, xdraw.Src, nil)
	return out
}

func round(f float64) int { return int(f + 0.5) }

// Placeholder card palette.
var (
	cardBackground = color.RGBA{0xF2, 0xF2, 0xF2, 0xFF}
	cardBorder     = color.RGBA{0xB0, 0xB0, 0xB0, 0xFF}
	cardPage       = color.RGBA{0xFF, 0xFF, 0xFF, 0xFF}
	cardLabel      = color.RGBA{0x40, 0x40, 0x40, 0xFF}
)

// DocumentPlaceholder synthesizes a generic card-shaped preview for a
// document without a native thumbnail: flat background, border, a centered
// page rectangle, and the uppercase extension label. Deterministic for a
// given extension and bounding size.
func DocumentPlaceholder(extension string, w, h int) image.Image {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	out := image.NewRGBA(image.Rect(0, 0, w, h))

	draw.Draw(out, out.Bounds(), image.NewUniform(cardBackground), image.Point{}, draw.Src)
	drawBorder(out, out.Bounds(), cardBorder)

	// Centered page rectangle at half the card size.
	page := image.Rect(w/4, h/4, w-w/4, h-h/4)
	draw.Draw(out, page, image.NewUniform(cardPage), image.Point{}, draw.Src)
	drawBorder(out, page, cardBorder)

	drawCenteredLabel(out, strings.ToUpper(extension), w, h)
	return out
}

// drawBorder paints a 1px rectangle outline.
func drawBorder(dst *image.RGBA, r image.Rectangle, c color.Color) {
	for x := r.Min.X; x < r.Max.X; x++ {
		dst.Set(x, r.Min.Y, c)
		dst.Set(x, r.Max.Y-1, c)
	}
	for y := r.Min.Y; y < r.Max.Y; y++ {
		dst.Set(r.Min.X, y, c)
		dst.Set(r.Max.X-1, y, c)
	}
}

// drawCenteredLabel renders the extension label centered with the fixed 7x13
// basicfont face. Labels wider than the card are left off rather than clipped
// oddly on tiny bounding boxes.
func drawCenteredLabel(dst *image.RGBA, label string, w, h int) {
	face := basicfont.Face7x13
	labelWidth := font.MeasureString(face, label).Ceil()
	if labelWidth >= w || face.Height >= h {
		return
	}

	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(cardLabel),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.I((w - labelWidth) / 2),
			Y: fixed.I((h + face.Ascent) / 2),
		},
	}
	d.DrawString(label)
}
