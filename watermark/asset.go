package watermark

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // supported logo formats
	_ "image/png"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"
)

// svgResolution is the size, in pixels, of the longest
// side of rasterized SVG logos.
const svgResolution = 512

//go:embed logo.svg
var logoSVG []byte

// Asset provides the watermark image.
type Asset interface {
	Load(ctx context.Context) (image.Image, error)
}

// AssetFunc adapts a function to the Asset interface.
type AssetFunc func(ctx context.Context) (image.Image, error)

func (f AssetFunc) Load(ctx context.Context) (image.Image, error) { return f(ctx) }

// ImageAsset always returns `img`.
func ImageAsset(img image.Image) Asset {
	return AssetFunc(func(context.Context) (image.Image, error) { return img, nil })
}

// SVGAsset rasterizes the given SVG document.
func SVGAsset(data []byte) Asset {
	return AssetFunc(func(context.Context) (image.Image, error) {
		return rasterSVG(bytes.NewReader(data))
	})
}

// DefaultAsset returns the embedded logo.
func DefaultAsset() Asset { return SVGAsset(logoSVG) }

// FileAsset reads the logo from `path`. Files with
// a .svg extension are rasterized, other files must be PNG or JPEG.
func FileAsset(path string) Asset {
	return AssetFunc(func(ctx context.Context) (image.Image, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		if strings.EqualFold(filepath.Ext(path), ".svg") {
			return rasterSVG(f)
		}
		img, _, err := image.Decode(f)
		if err != nil {
			return nil, fmt.Errorf("watermark: decoding %s: %w", path, err)
		}
		return img, nil
	})
}

// rasterSVG uses a ScannerGV instance to render the icon.
func rasterSVG(r io.Reader) (image.Image, error) {
	icon, err := oksvg.ReadIconStream(r, oksvg.WarnErrorMode)
	if err != nil {
		return nil, fmt.Errorf("watermark: invalid svg: %w", err)
	}
	vw, vh := icon.ViewBox.W, icon.ViewBox.H
	if vw <= 0 || vh <= 0 {
		return nil, errors.New("watermark: svg without view box")
	}
	scale := svgResolution / math.Max(vw, vh)
	w, h := int(math.Ceil(vw*scale)), int(math.Ceil(vh*scale))

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	icon.SetTarget(0, 0, float64(w), float64(h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)
	return img, nil
}
