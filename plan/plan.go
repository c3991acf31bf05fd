// Provides a typed model of a floor plan drawing surface.
// Drawings are decoded into a Plan at the boundary (see Decode),
// which can then be consumed by the extraction and rendering packages.
// See for example roomplanner/extract or roomplanner/planraster .
package plan

import "image/color"

// Kind discriminates the variants of Object.
type Kind uint8

const (
	KindRect Kind = iota
	KindText
	KindImage
)

func (k Kind) String() string {
	switch k {
	case KindRect:
		return "rect"
	case KindText:
		return "text"
	case KindImage:
		return "image"
	default:
		return "<unknown Kind>"
	}
}

// Object is one drawable item of a Plan.
// It is one of *Rect, *Text or *Image.
type Object interface {
	// ID returns the identifier assigned by the editor,
	// which may be empty.
	ID() string
	Kind() Kind
}

// assert interface conformance
var (
	_ Object = (*Rect)(nil)
	_ Object = (*Text)(nil)
	_ Object = (*Image)(nil)
)

// Rect is a rectangle shape. Its on-screen size is
// Width*ScaleX by Height*ScaleY pixels.
type Rect struct {
	Identifier     string
	Left, Top      float64
	Width, Height  float64
	ScaleX, ScaleY float64

	Fill, Stroke color.Color // nil disables filling or stroking
	StrokeWidth  float64
}

func (r *Rect) ID() string { return r.Identifier }
func (r *Rect) Kind() Kind { return KindRect }

// ScaledSize returns the on-screen size in pixels.
func (r *Rect) ScaledSize() (w, h float64) { return r.Width * r.ScaleX, r.Height * r.ScaleY }

// Text is a text label, positioned by its upper left corner.
type Text struct {
	Identifier string
	Left, Top  float64
	Text       string
	Fill       color.Color
	FontSize   float64
}

func (t *Text) ID() string { return t.Identifier }
func (t *Text) Kind() Kind { return KindText }

// Image is a freestanding picture. Src is usually a data URL
// and may be empty.
type Image struct {
	Identifier     string
	Left, Top      float64
	Width, Height  float64
	ScaleX, ScaleY float64
	Src            string
}

func (im *Image) ID() string { return im.Identifier }
func (im *Image) Kind() Kind { return KindImage }

// ScaledSize returns the on-screen size in pixels.
func (im *Image) ScaledSize() (w, h float64) { return im.Width * im.ScaleX, im.Height * im.ScaleY }

// Plan holds the content of a drawing surface.
// Objects are stored in the order they were added to the surface.
type Plan struct {
	Width, Height int
	Background    color.Color // nil means transparent
	Objects       []Object
}

// Index maps identifiers to objects, keeping
// surface order for objects sharing an identifier.
type Index map[string][]Object

// NewIndex builds the index of the given objects.
// Objects without identifier are ignored.
func NewIndex(objects []Object) Index {
	idx := make(Index, len(objects))
	for _, o := range objects {
		if id := o.ID(); id != "" {
			idx[id] = append(idx[id], o)
		}
	}
	return idx
}

// First returns the first object with identifier `id`, or nil.
func (idx Index) First(id string) Object {
	if l := idx[id]; len(l) != 0 {
		return l[0]
	}
	return nil
}

// Text returns the first text label with identifier `id`, or nil.
func (idx Index) Text(id string) *Text {
	for _, o := range idx[id] {
		if t, ok := o.(*Text); ok {
			return t
		}
	}
	return nil
}
