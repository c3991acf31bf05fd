// Implements a raster backend to render floor plans,
// by wrapping rasterx.
package planraster

import (
	"bytes"
	"encoding/base64"
	"errors"
	"image"
	"image/color"
	"image/draw"
	_ "image/jpeg" // image objects may embed JPEG data
	_ "image/png"
	"net/url"
	"strings"

	"github.com/benoitkugler/roomplanner/plan"
	"github.com/srwiley/rasterx"
	xdraw "golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// ErrEmptySurface is returned when rendering a plan without area.
var ErrEmptySurface = errors.New("planraster: surface has no area")

var (
	placeholderFill   = color.NRGBA{0xe0, 0xe0, 0xe0, 0xff}
	placeholderStroke = color.NRGBA{0x80, 0x80, 0x80, 0xff}
)

// Renderer draws plan objects into an RGBA image.
type Renderer struct {
	img    *image.RGBA
	dasher *rasterx.Dasher
	filler *rasterx.Filler
}

// NewRenderer returns a renderer drawing into `img`.
// The filler and the dasher share the same scanner.
func NewRenderer(img *image.RGBA) *Renderer {
	b := img.Bounds()
	scanner := rasterx.NewScannerGV(b.Dx(), b.Dy(), img, b)
	return &Renderer{
		img:    img,
		dasher: rasterx.NewDasher(b.Dx(), b.Dy(), scanner),
		filler: rasterx.NewFiller(b.Dx(), b.Dy(), scanner),
	}
}

// RenderPlan uses a ScannerGV instance to render the
// plan into a new image and returns it.
func RenderPlan(p *plan.Plan) (*image.RGBA, error) {
	if p.Width <= 0 || p.Height <= 0 {
		return nil, ErrEmptySurface
	}
	img := image.NewRGBA(image.Rect(0, 0, p.Width, p.Height))
	rd := NewRenderer(img)
	rd.Background(p.Background)
	for _, o := range p.Objects {
		rd.Draw(o)
	}
	return img, nil
}

// Background paints the whole image with `c`.
// A nil color leaves the image untouched.
func (rd *Renderer) Background(c color.Color) {
	if c == nil {
		return
	}
	draw.Draw(rd.img, rd.img.Bounds(), image.NewUniform(c), image.Point{}, draw.Src)
}

// Draw renders one object at its position.
func (rd *Renderer) Draw(o plan.Object) {
	switch o := o.(type) {
	case *plan.Rect:
		w, h := o.ScaledSize()
		rd.rect(o.Left, o.Top, o.Left+w, o.Top+h, o.Fill, o.Stroke, o.StrokeWidth)
	case *plan.Text:
		rd.text(o)
	case *plan.Image:
		rd.image(o)
	}
}

func (rd *Renderer) rect(minX, minY, maxX, maxY float64, fill, stroke color.Color, lineWidth float64) {
	if fill != nil {
		rd.filler.Clear()
		rasterx.AddRect(minX, minY, maxX, maxY, 0, rd.filler)
		rd.filler.SetColor(fill)
		rd.filler.Draw()
	}
	if stroke != nil && lineWidth > 0 {
		rd.dasher.Clear()
		rd.dasher.SetStroke(fixed.Int26_6(lineWidth*64), fixed.Int26_6(4*64),
			rasterx.ButtCap, rasterx.ButtCap, rasterx.FlatGap, rasterx.MiterClip, nil, 0)
		rasterx.AddRect(minX, minY, maxX, maxY, 0, rd.dasher)
		rd.dasher.SetColor(stroke)
		rd.dasher.Draw()
	}
}

// text uses the fixed size basic face, the font size is ignored.
func (rd *Renderer) text(t *plan.Text) {
	if t.Text == "" {
		return
	}
	src := t.Fill
	if src == nil {
		src = color.Black
	}
	face := basicfont.Face7x13
	d := font.Drawer{
		Dst:  rd.img,
		Src:  image.NewUniform(src),
		Face: face,
		Dot:  fixed.P(int(t.Left), int(t.Top)+face.Ascent),
	}
	d.DrawString(t.Text)
}

func (rd *Renderer) image(im *plan.Image) {
	w, h := im.ScaledSize()
	if w <= 0 || h <= 0 {
		return
	}
	src, err := decodeDataURL(im.Src)
	if err != nil {
		rd.rect(im.Left, im.Top, im.Left+w, im.Top+h, placeholderFill, placeholderStroke, 1)
		return
	}
	dst := image.Rect(int(im.Left), int(im.Top), int(im.Left+w), int(im.Top+h))
	xdraw.ApproxBiLinear.Scale(rd.img, dst, src, src.Bounds(), xdraw.Over, nil)
}

var errDataURL = errors.New("planraster: unsupported image source")

// decodeDataURL reads an image stored as data:[<mediatype>][;base64],<data>
func decodeDataURL(src string) (image.Image, error) {
	if !strings.HasPrefix(src, "data:") {
		return nil, errDataURL
	}
	comma := strings.IndexByte(src, ',')
	if comma < 0 {
		return nil, errDataURL
	}
	meta, payload := src[len("data:"):comma], src[comma+1:]
	var data []byte
	if strings.HasSuffix(meta, ";base64") {
		var err error
		if data, err = base64.StdEncoding.DecodeString(payload); err != nil {
			return nil, err
		}
	} else {
		s, err := url.PathUnescape(payload)
		if err != nil {
			return nil, err
		}
		data = []byte(s)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
