// Package extract rebuilds the dimension records of a floor plan
// from the flat list of objects of its drawing surface.
//
// Rooms are identified by naming convention: a rectangle named
// "Room-<n>" owns the labels "Room-<n>-widthLabel" and
// "Room-<n>-heightLabel", and may have a caption, that is a text
// object sharing its identifier.
package extract

import (
	"math"
	"math/big"
	"regexp"
	"strconv"
	"strings"

	"github.com/benoitkugler/roomplanner/plan"
)

const (
	WidthLabelSuffix  = "-widthLabel"
	HeightLabelSuffix = "-heightLabel"

	pixelsPerBox = 50
	metersPerBox = 0.5
)

var roomPattern = regexp.MustCompile(`^Room-\d+$`)

// RoomRecord describes one room of the plan.
// Width and Height are in meters, with two decimals.
type RoomRecord struct {
	ID          string `json:"id"`
	Width       string `json:"width"`
	Height      string `json:"height"`
	WidthLabel  string `json:"widthLabel"`
	HeightLabel string `json:"heightLabel"`
	RoomIDLabel string `json:"roomIdLabel"`
}

// ImageRecord describes one freestanding image.
type ImageRecord struct {
	ImageID     string `json:"imageId"`
	WidthLabel  string `json:"widthLabel"`
	HeightLabel string `json:"heightLabel"`
}

// ImageDetail is the caller supplied description of an image:
// its identifier and its two label objects, which may be nil.
type ImageDetail struct {
	ImageID                 string
	WidthLabel, HeightLabel *plan.Text
}

// Bundle gathers the data of one export.
// Rooms are in discovery order, with unique identifiers.
type Bundle struct {
	Rooms  []RoomRecord  `json:"rooms"`
	Images []ImageRecord `json:"images"`
}

// Room returns the record with identifier `id`.
func (b Bundle) Room(id string) (RoomRecord, bool) {
	for _, r := range b.Rooms {
		if r.ID == id {
			return r, true
		}
	}
	return RoomRecord{}, false
}

// NewBundle extracts the rooms from `objects` and
// appends the given image details.
func NewBundle(objects []plan.Object, details []ImageDetail) Bundle {
	return Bundle{Rooms: Rooms(objects), Images: Images(details)}
}

// IsRoomID returns true if `id` follows the room naming convention.
func IsRoomID(id string) bool {
	return roomPattern.MatchString(id) &&
		!strings.Contains(id, WidthLabelSuffix) && !strings.Contains(id, HeightLabelSuffix)
}

// Meters converts a pixel length, multiplied by `scale`,
// to meters formatted with two decimals.
func Meters(px, scale float64) string {
	m := (px * scale / pixelsPerBox) * metersPerBox
	return fixed2(m)
}

// fixed2 formats the exact value of `x` with two decimals.
// Exact ties round away from zero (FormatFloat would round them to even).
func fixed2(x float64) string {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	scaled := new(big.Float).SetPrec(256).SetFloat64(math.Abs(x))
	scaled.Mul(scaled, big.NewFloat(100))
	n, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(256).Sub(scaled, new(big.Float).SetInt(n))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return strconv.FormatFloat(x, 'f', 2, 64)
	}
	digits := n.Add(n, big.NewInt(1)).String()
	for len(digits) < 3 {
		digits = "0" + digits
	}
	out := digits[:len(digits)-2] + "." + digits[len(digits)-2:]
	if x < 0 {
		out = "-" + out
	}
	return out
}

// Rooms walks `objects` once and returns one record per room rectangle.
// Missing labels are reported as empty strings; a room without
// caption uses its identifier as display label.
// When several rectangles share a room identifier, the last one wins
// but the record keeps the position of the first.
func Rooms(objects []plan.Object) []RoomRecord {
	idx := plan.NewIndex(objects)
	var (
		out      []RoomRecord
		position = map[string]int{}
	)
	for _, o := range objects {
		rect, ok := o.(*plan.Rect)
		if !ok || !IsRoomID(rect.Identifier) {
			continue
		}
		id := rect.Identifier
		rec := RoomRecord{
			ID:          id,
			Width:       Meters(rect.Width, rect.ScaleX),
			Height:      Meters(rect.Height, rect.ScaleY),
			WidthLabel:  labelText(idx.Text(id + WidthLabelSuffix)),
			HeightLabel: labelText(idx.Text(id + HeightLabelSuffix)),
			RoomIDLabel: caption(idx, id),
		}
		if i, seen := position[id]; seen {
			out[i] = rec
			continue
		}
		position[id] = len(out)
		out = append(out, rec)
	}
	return out
}

// caption only considers text objects, so that the rectangle
// itself never shadows a separate caption.
func caption(idx plan.Index, id string) string {
	for _, o := range idx[id] {
		if t, ok := o.(*plan.Text); ok && t.Text != "" {
			return t.Text
		}
	}
	return id
}

func labelText(t *plan.Text) string {
	if t == nil {
		return ""
	}
	return t.Text
}

// Images converts the caller supplied details, preserving their order.
func Images(details []ImageDetail) []ImageRecord {
	out := make([]ImageRecord, len(details))
	for i, d := range details {
		out[i] = ImageRecord{
			ImageID:     d.ImageID,
			WidthLabel:  labelText(d.WidthLabel),
			HeightLabel: labelText(d.HeightLabel),
		}
	}
	return out
}

// ImageDetails pairs every identified image of `objects` with
// its "-widthLabel" and "-heightLabel" text objects, in surface order.
func ImageDetails(objects []plan.Object) []ImageDetail {
	idx := plan.NewIndex(objects)
	var out []ImageDetail
	for _, o := range objects {
		im, ok := o.(*plan.Image)
		if !ok || im.Identifier == "" {
			continue
		}
		out = append(out, ImageDetail{
			ImageID:     im.Identifier,
			WidthLabel:  idx.Text(im.Identifier + WidthLabelSuffix),
			HeightLabel: idx.Text(im.Identifier + HeightLabelSuffix),
		})
	}
	return out
}
