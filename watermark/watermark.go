// Stamps a translucent logo on raster snapshots.
//
// The logo is drawn five times, in the fixed order upper left,
// upper right, lower left, lower right and center. Each stamp
// covers 15% of the canvas width and 15% of its height, so that
// non square canvases yield non square stamps.
package watermark

import (
	"errors"
	"image"
	"image/color"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"
)

const (
	// Size is the fraction of the canvas dimensions covered by one stamp.
	Size = 0.15
	// Inset is the distance, in pixels, between corner stamps and the canvas edges.
	Inset = 10
	// Opacity applied to every stamp.
	Opacity = 0.25
)

// ErrNoRenderingContext is returned when the offscreen
// surface can't be allocated.
var ErrNoRenderingContext = errors.New("watermark: failed to get offscreen drawing context")

var errEmptyMark = errors.New("watermark: empty watermark image")

// Stamp is the placement of one watermark, in pixels.
type Stamp struct{ X, Y, W, H float64 }

// Rect returns the pixel area covered by the stamp.
// Stamps of the same canvas always have the same pixel size.
func (s Stamp) Rect() image.Rectangle {
	x, y := int(math.Round(s.X)), int(math.Round(s.Y))
	return image.Rect(x, y, x+int(math.Round(s.W)), y+int(math.Round(s.H)))
}

// Stamps returns the five placements for a canvas of the given size.
func Stamps(width, height int) [5]Stamp {
	W, H := float64(width), float64(height)
	w, h := W*Size, H*Size
	return [5]Stamp{
		{Inset, Inset, w, h},                 // upper left
		{W - w - Inset, Inset, w, h},         // upper right
		{Inset, H - h - Inset, w, h},         // lower left
		{W - w - Inset, H - h - Inset, w, h}, // lower right
		{W/2 - w/2, H/2 - h/2, w, h},         // center
	}
}

// Composite draws `snapshot` into a new offscreen image of the same
// size, and stamps `mark` on it.
func Composite(snapshot, mark image.Image) (*image.RGBA, error) {
	b := snapshot.Bounds()
	if b.Empty() {
		return nil, ErrNoRenderingContext
	}
	if mark == nil || mark.Bounds().Empty() {
		return nil, errEmptyMark
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), snapshot, b.Min, draw.Src)

	stamps := Stamps(b.Dx(), b.Dy())
	size := stamps[0].Rect().Size()
	if size.X <= 0 || size.Y <= 0 {
		return dst, nil // canvas too small for a visible stamp
	}
	scaled := image.NewRGBA(image.Rectangle{Max: size})
	xdraw.CatmullRom.Scale(scaled, scaled.Bounds(), mark, mark.Bounds(), xdraw.Src, nil)

	alpha := image.NewUniform(color.Alpha{A: uint8(math.Round(Opacity * 0xff))})
	for _, s := range stamps {
		draw.DrawMask(dst, s.Rect(), scaled, image.Point{}, alpha, image.Point{}, draw.Over)
	}
	return dst, nil
}
