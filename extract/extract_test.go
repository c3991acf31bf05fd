package extract

import (
	"testing"

	"github.com/benoitkugler/roomplanner/plan"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func room(id string, w, h, sx, sy float64) *plan.Rect {
	return &plan.Rect{Identifier: id, Width: w, Height: h, ScaleX: sx, ScaleY: sy}
}

func text(id, s string) *plan.Text { return &plan.Text{Identifier: id, Text: s} }

func TestRoomsScenario(t *testing.T) {
	objects := []plan.Object{
		room("Room-1", 100, 200, 1, 1),
		text("Room-1-widthLabel", "2m"),
		text("Room-1-heightLabel", "4m"),
	}
	bundle := NewBundle(objects, nil)

	require.Len(t, bundle.Rooms, 1)
	got, ok := bundle.Room("Room-1")
	require.True(t, ok)
	assert.Equal(t, RoomRecord{
		ID:          "Room-1",
		Width:       "1.00",
		Height:      "2.00",
		WidthLabel:  "2m",
		HeightLabel: "4m",
		RoomIDLabel: "Room-1",
	}, got)
	assert.Empty(t, bundle.Images)
}

func TestMeters(t *testing.T) {
	assert.Equal(t, "1.00", Meters(100, 1))
	assert.Equal(t, "1.00", Meters(50, 2), "scale and raw size trade off linearly")
	assert.Equal(t, "0.33", Meters(33.3, 1))
	assert.Equal(t, "0.00", Meters(0, 1))
	assert.Equal(t, "12.35", Meters(1234.6, 1))
}

func TestMetersRounding(t *testing.T) {
	for _, test := range []struct {
		px       float64
		expected string
	}{
		{1.5, "0.01"},  // 0.01499999...
		{4.5, "0.04"},  // 0.04499999...
		{10.5, "0.10"}, // 0.10499999...
		{15.5, "0.15"}, // 0.15499999...
		{12.5, "0.13"}, // exactly 0.125
		{62.5, "0.63"}, // exactly 0.625
		{37.5, "0.38"}, // exactly 0.375
		{-12.5, "-0.13"},
		{99999.5, "1000.00"},
	} {
		assert.Equal(t, test.expected, Meters(test.px, 1), "px=%v", test.px)
	}
}

func TestRoomsFiltering(t *testing.T) {
	objects := []plan.Object{
		room("Room-1", 100, 100, 1, 1),
		room("Room-A", 100, 100, 1, 1),
		room("room-2", 100, 100, 1, 1),
		room("Room-3 ", 100, 100, 1, 1),
		room("Room-4-widthLabel", 100, 100, 1, 1),
		room("", 100, 100, 1, 1),
		text("Room-5", "text only"),
		&plan.Image{Identifier: "Room-6", Width: 10, Height: 10, ScaleX: 1, ScaleY: 1},
		room("Room-7", 100, 100, 1, 1),
	}
	rooms := Rooms(objects)

	require.Len(t, rooms, 2)
	assert.Equal(t, "Room-1", rooms[0].ID)
	assert.Equal(t, "Room-7", rooms[1].ID)
	for _, r := range rooms {
		assert.Regexp(t, `^Room-\d+$`, r.ID)
	}
}

func TestRoomsMissingLabels(t *testing.T) {
	rooms := Rooms([]plan.Object{room("Room-3", 50, 50, 1, 1)})

	require.Len(t, rooms, 1)
	assert.Equal(t, "", rooms[0].WidthLabel)
	assert.Equal(t, "", rooms[0].HeightLabel)
	assert.Equal(t, "Room-3", rooms[0].RoomIDLabel)
}

func TestRoomsCaption(t *testing.T) {
	objects := []plan.Object{
		room("Room-1", 100, 100, 1, 1),
		text("Room-1", ""),
		text("Room-1", "Kitchen"),
		room("Room-2", 100, 100, 1, 1),
		// a non text object with the label identifier is not a label
		room("Room-2-widthLabel", 1, 1, 1, 1),
	}
	rooms := Rooms(objects)

	require.Len(t, rooms, 2)
	assert.Equal(t, "Kitchen", rooms[0].RoomIDLabel)
	assert.Equal(t, "Room-2", rooms[1].RoomIDLabel)
	assert.Equal(t, "", rooms[1].WidthLabel)
}

func TestRoomsDiscoveryOrder(t *testing.T) {
	objects := []plan.Object{
		room("Room-10", 100, 100, 1, 1),
		room("Room-2", 100, 100, 1, 1),
		room("Room-10", 200, 100, 1, 1), // duplicate: overrides values, keeps position
	}
	rooms := Rooms(objects)

	require.Len(t, rooms, 2)
	assert.Equal(t, "Room-10", rooms[0].ID)
	assert.Equal(t, "2.00", rooms[0].Width)
	assert.Equal(t, "Room-2", rooms[1].ID)
}

func TestImages(t *testing.T) {
	details := []ImageDetail{
		{ImageID: "Sofa", WidthLabel: text("", "2m"), HeightLabel: text("", "1m")},
		{ImageID: "Bed"},
	}
	images := Images(details)

	assert.Equal(t, []ImageRecord{
		{ImageID: "Sofa", WidthLabel: "2m", HeightLabel: "1m"},
		{ImageID: "Bed"},
	}, images)
}

func TestImageDetails(t *testing.T) {
	wl := text("Sofa-widthLabel", "2m")
	objects := []plan.Object{
		&plan.Image{},
		&plan.Image{Identifier: "Sofa"},
		wl,
		&plan.Image{Identifier: "Bed"},
	}
	details := ImageDetails(objects)

	require.Len(t, details, 2)
	assert.Equal(t, "Sofa", details[0].ImageID)
	assert.Same(t, wl, details[0].WidthLabel)
	assert.Nil(t, details[0].HeightLabel)
	assert.Equal(t, "Bed", details[1].ImageID)
}
