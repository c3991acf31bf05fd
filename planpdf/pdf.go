// Implements the document export of a floor plan,
// by wrapping github.com/jung-kurt/gofpdf.
//
// The first page holds the plan snapshot, followed by a table
// listing the dimensions of rooms and images. Coordinates are
// millimeters on an A4 portrait page, with y growing downwards.
package planpdf

import (
	"bytes"
	"fmt"
	"image"
	"image/png"
	"io"
	"time"

	"github.com/benoitkugler/roomplanner/extract"
	"github.com/jung-kurt/gofpdf"
)

// Snapshot placement on the first page.
const (
	SnapshotX, SnapshotY = 10, 10
	SnapshotW, SnapshotH = 180, 120
)

// Table layout.
const (
	Title    = "Room and Image Details:"
	TitleY   = 140
	HeaderY  = 150
	RowPitch = 8

	fontFamily = "Helvetica"
	titleSize  = 12
	tableSize  = 11
)

var (
	columns = [3]float64{14, 74, 114}
	headers = [3]string{"Item Name", "Width (m)", "Height (m)"}
)

// Options tunes the generated document.
type Options struct {
	// CreationDate is written in the document metadata,
	// both as creation and modification date.
	// Identical inputs and dates produce identical files.
	CreationDate time.Time
	// Uncompressed disables the compression of content streams.
	Uncompressed bool
}

// Document is a single page PDF holding a snapshot and its dimension table.
type Document struct {
	pdf    *gofpdf.Fpdf
	tr     func(string) string // UTF-8 to the code page of the core fonts
	images int
}

// New starts a document with one empty page.
func New(opts Options) *Document {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetCatalogSort(true)
	pdf.SetCompression(!opts.Uncompressed)
	if !opts.CreationDate.IsZero() {
		pdf.SetCreationDate(opts.CreationDate)
		pdf.SetModificationDate(opts.CreationDate)
	}
	pdf.SetTitle("RoomPlanner", true)
	pdf.SetCreator("roomplanner", true)
	pdf.AddPage()
	return &Document{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor("")}
}

// EmbedSnapshot places `img` at the top of the current page,
// stretched to the fixed snapshot box.
func (d *Document) EmbedSnapshot(img image.Image) error {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return fmt.Errorf("planpdf: encoding snapshot: %w", err)
	}
	name := fmt.Sprintf("snapshot%d", d.images)
	d.images++
	opts := gofpdf.ImageOptions{ImageType: "PNG"}
	d.pdf.RegisterImageOptionsReader(name, opts, &buf)
	d.pdf.ImageOptions(name, SnapshotX, SnapshotY, SnapshotW, SnapshotH, false, opts, 0, "")
	return d.pdf.Error()
}

// Rows returns the table body: rooms first, in bundle order,
// then images in caller order.
func Rows(b extract.Bundle) [][3]string {
	out := make([][3]string, 0, len(b.Rooms)+len(b.Images))
	for _, r := range b.Rooms {
		out = append(out, [3]string{r.RoomIDLabel, r.Width, r.Height})
	}
	for _, im := range b.Images {
		out = append(out, [3]string{im.ImageID, im.WidthLabel, im.HeightLabel})
	}
	return out
}

// Table writes the title, the header and one row per item of `b`,
// and returns the number of body rows.
// Rows are not paginated: long tables run past the bottom of the page.
func (d *Document) Table(b extract.Bundle) int {
	d.pdf.SetFont(fontFamily, "", titleSize)
	d.pdf.Text(columns[0], TitleY, d.tr(Title))

	y := float64(HeaderY)
	d.pdf.SetFont(fontFamily, "B", tableSize)
	d.row(y, headers)

	d.pdf.SetFont(fontFamily, "", tableSize)
	rows := Rows(b)
	for _, r := range rows {
		y += RowPitch
		d.row(y, r)
	}
	return len(rows)
}

func (d *Document) row(y float64, cells [3]string) {
	for i, c := range cells {
		d.pdf.Text(columns[i], y, d.tr(c))
	}
}

// Write closes the document and writes it to `w`.
func (d *Document) Write(w io.Writer) error {
	return d.pdf.Output(w)
}
