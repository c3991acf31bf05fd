package plan

import (
	"bytes"
	"image/color"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCanvas = `{
	"width": 800, "height": 600, "background": "white",
	"objects": [
		{"type": "rect", "id": "Room-1", "left": 10, "top": 20, "width": 100, "height": 200, "scaleX": 1.5, "fill": "#ff0000", "stroke": "black"},
		{"type": "text", "id": "Room-1-widthLabel", "left": 10, "top": 5, "text": "1.50m", "fontSize": 14},
		{"type": "image", "id": "Sofa", "width": 40, "height": 20, "src": ""},
		{"type": "circle", "id": "Lamp", "radius": 4},
		{"type": "rect", "width": 5, "height": 5, "fill": {"type": "linear"}}
	]
}`

func TestDecode(t *testing.T) {
	p, err := Decode(strings.NewReader(sampleCanvas), "", IgnoreErrorMode)
	require.NoError(t, err)

	assert.Equal(t, 800, p.Width)
	assert.Equal(t, 600, p.Height)
	assert.Equal(t, color.RGBA{0xff, 0xff, 0xff, 0xff}, p.Background)
	require.Len(t, p.Objects, 4, "the circle is skipped")

	room, ok := p.Objects[0].(*Rect)
	require.True(t, ok)
	assert.Equal(t, "Room-1", room.ID())
	assert.Equal(t, 1.5, room.ScaleX)
	assert.Equal(t, 1.0, room.ScaleY, "missing scale defaults to 1")
	assert.Equal(t, color.NRGBA{0xff, 0, 0, 0xff}, room.Fill)
	assert.NotNil(t, room.Stroke)
	w, h := room.ScaledSize()
	assert.Equal(t, 150.0, w)
	assert.Equal(t, 200.0, h)

	label, ok := p.Objects[1].(*Text)
	require.True(t, ok)
	assert.Equal(t, "1.50m", label.Text)
	assert.Equal(t, KindText, label.Kind())

	assert.Equal(t, KindImage, p.Objects[2].Kind())

	anonymous := p.Objects[3].(*Rect)
	assert.Equal(t, "", anonymous.ID())
	assert.Equal(t, color.Black, anonymous.Fill, "gradient fill falls back to the default")
}

func TestDecodeStrict(t *testing.T) {
	_, err := Decode(strings.NewReader(sampleCanvas), "", StrictErrorMode)
	assert.Error(t, err)
}

func TestDecodeInvalid(t *testing.T) {
	_, err := Decode(strings.NewReader(`{"objects": [`), "", IgnoreErrorMode)
	assert.Error(t, err)
}

func TestDecodeCharset(t *testing.T) {
	src := `{"width": 10, "height": 10, "objects": [{"type": "text", "id": "Room-2", "text": "Küche"}]}`
	var buf bytes.Buffer
	for _, r := range src {
		buf.Write([]byte{byte(r), byte(r >> 8)})
	}

	p, err := Decode(&buf, "application/json; charset=utf-16le", IgnoreErrorMode)
	require.NoError(t, err)
	require.Len(t, p.Objects, 1)
	assert.Equal(t, "Küche", p.Objects[0].(*Text).Text)
}

func TestParseColor(t *testing.T) {
	for _, test := range []struct {
		in   string
		want color.Color
	}{
		{"#fff", color.NRGBA{0xff, 0xff, 0xff, 0xff}},
		{"#102030", color.NRGBA{0x10, 0x20, 0x30, 0xff}},
		{"#10203080", color.NRGBA{0x10, 0x20, 0x30, 0x80}},
		{"rgb(1, 2, 3)", color.NRGBA{1, 2, 3, 0xff}},
		{"rgba(1,2,3,0.5)", color.NRGBA{1, 2, 3, 128}},
		{"Black", color.RGBA{0, 0, 0, 0xff}},
		{"transparent", nil},
		{"", nil},
	} {
		got, err := ParseColor(test.in)
		require.NoError(t, err, test.in)
		assert.Equal(t, test.want, got, test.in)
	}

	for _, bad := range []string{"#12", "rgb(1,2)", "rgba(1,2,3,4)", "notacolor"} {
		_, err := ParseColor(bad)
		assert.Error(t, err, bad)
	}
}

func TestIndex(t *testing.T) {
	caption := &Text{Identifier: "Room-1", Text: "Kitchen"}
	objects := []Object{
		&Rect{Identifier: "Room-1"},
		caption,
		&Text{Identifier: "Room-1", Text: "second"},
		&Text{Text: "no id"},
	}
	idx := NewIndex(objects)

	assert.Len(t, idx, 1)
	assert.Same(t, objects[0], idx.First("Room-1"))
	assert.Same(t, caption, idx.Text("Room-1"))
	assert.Nil(t, idx.First("Room-2"))
	assert.Nil(t, idx.Text("Room-2"))
}
