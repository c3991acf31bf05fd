package plan

import (
	"encoding/json"
	"fmt"
	"image/color"
	"io"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"
)

// ErrorMode determines how Decode handles objects
// it does not support.
type ErrorMode uint8

const (
	// IgnoreErrorMode silently skips unsupported objects.
	IgnoreErrorMode ErrorMode = iota
	// WarnErrorMode skips unsupported objects, logging a warning
	// with the global zap logger.
	WarnErrorMode
	// StrictErrorMode fails on the first unsupported object.
	StrictErrorMode
)

// canvasJSON mirrors the serialized form of the editor canvas.
type canvasJSON struct {
	Width      int             `json:"width"`
	Height     int             `json:"height"`
	Background json.RawMessage `json:"background"`
	Objects    []objectJSON    `json:"objects"`
}

type objectJSON struct {
	Type        string          `json:"type"`
	ID          string          `json:"id"`
	Left        float64         `json:"left"`
	Top         float64         `json:"top"`
	Width       float64         `json:"width"`
	Height      float64         `json:"height"`
	ScaleX      *float64        `json:"scaleX"`
	ScaleY      *float64        `json:"scaleY"`
	Fill        json.RawMessage `json:"fill"`
	Stroke      json.RawMessage `json:"stroke"`
	StrokeWidth *float64        `json:"strokeWidth"`
	Text        string          `json:"text"`
	FontSize    float64         `json:"fontSize"`
	Src         string          `json:"src"`
}

// Decode reads a serialized canvas from `r`.
// When `contentType` is not empty, it is used to detect the
// charset of the input (for instance "application/json; charset=utf-16").
// Objects are kept in input order. Missing scale factors default to 1.
func Decode(r io.Reader, contentType string, mode ErrorMode) (*Plan, error) {
	if contentType != "" {
		var err error
		r, err = charset.NewReader(r, contentType)
		if err != nil {
			return nil, fmt.Errorf("plan: detecting charset: %w", err)
		}
	}
	var raw canvasJSON
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("plan: invalid canvas: %w", err)
	}

	out := &Plan{
		Width:      raw.Width,
		Height:     raw.Height,
		Background: readColor(raw.Background, nil),
		Objects:    make([]Object, 0, len(raw.Objects)),
	}
	for i, o := range raw.Objects {
		obj, ok := o.toObject()
		if !ok {
			switch mode {
			case StrictErrorMode:
				return nil, fmt.Errorf("plan: unsupported object %d of type %q", i, o.Type)
			case WarnErrorMode:
				zap.L().Warn("skipping unsupported object",
					zap.Int("index", i), zap.String("type", o.Type), zap.String("id", o.ID))
			}
			continue
		}
		out.Objects = append(out.Objects, obj)
	}
	return out, nil
}

func (o objectJSON) toObject() (Object, bool) {
	switch o.Type {
	case "rect":
		return &Rect{
			Identifier:  o.ID,
			Left:        o.Left,
			Top:         o.Top,
			Width:       o.Width,
			Height:      o.Height,
			ScaleX:      orOne(o.ScaleX),
			ScaleY:      orOne(o.ScaleY),
			Fill:        readColor(o.Fill, color.Black),
			Stroke:      readColor(o.Stroke, nil),
			StrokeWidth: orOne(o.StrokeWidth),
		}, true
	case "text", "i-text", "textbox":
		size := o.FontSize
		if size <= 0 {
			size = 40 // editor default
		}
		return &Text{
			Identifier: o.ID,
			Left:       o.Left,
			Top:        o.Top,
			Text:       o.Text,
			Fill:       readColor(o.Fill, color.Black),
			FontSize:   size,
		}, true
	case "image":
		return &Image{
			Identifier: o.ID,
			Left:       o.Left,
			Top:        o.Top,
			Width:      o.Width,
			Height:     o.Height,
			ScaleX:     orOne(o.ScaleX),
			ScaleY:     orOne(o.ScaleY),
			Src:        o.Src,
		}, true
	default:
		return nil, false
	}
}

func orOne(v *float64) float64 {
	if v == nil {
		return 1
	}
	return *v
}

// readColor accepts a JSON string holding a CSS color.
// Other values (gradients, patterns) and invalid colors return `def`.
func readColor(raw json.RawMessage, def color.Color) color.Color {
	if len(raw) == 0 || string(raw) == "null" {
		return def
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return def
	}
	c, err := ParseColor(s)
	if err != nil {
		return def
	}
	return c
}
