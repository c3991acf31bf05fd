// Package export implements the two export pipelines of the room planner:
// the watermarked snapshot (RoomPlanner.png) and the dimension
// document (RoomPlanner.pdf).
package export

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/benoitkugler/roomplanner/extract"
	"github.com/benoitkugler/roomplanner/plan"
	"github.com/benoitkugler/roomplanner/planpdf"
	"github.com/benoitkugler/roomplanner/watermark"
	"go.uber.org/zap"
)

const (
	// file names of the artifacts
	SnapshotName = "RoomPlanner.png"
	DocumentName = "RoomPlanner.pdf"

	// DefaultAssetTimeout bounds the image loads of the snapshot pipeline.
	DefaultAssetTimeout = 30 * time.Second
)

// Surface is the drawing surface being exported.
type Surface interface {
	// Size returns the current pixel dimensions.
	Size() (width, height int)
	SetBackground(c color.Color)
	// Objects returns every drawable, in the order they were added.
	Objects() []plan.Object
	// Snapshot rasterizes the current content.
	Snapshot() (image.Image, error)
}

// missing returns true when `s` is absent: a nil interface, or a
// surface reporting itself as not valid (see planraster.Canvas.Valid).
func missing(s Surface) bool {
	if s == nil {
		return true
	}
	v, ok := s.(interface{ Valid() bool })
	return ok && !v.Valid()
}

// Options configures an Exporter. Zero values select the defaults.
type Options struct {
	Logger       *zap.Logger
	Watermark    watermark.Asset
	AssetTimeout time.Duration
	// Now is used to date the documents.
	Now func() time.Time
}

// Exporter runs the export pipelines. It is safe for concurrent use.
type Exporter struct {
	log          *zap.Logger
	mark         watermark.Asset
	assetTimeout time.Duration
	now          func() time.Time
}

// New returns an exporter, filling the zero fields of `opts` with the defaults.
func New(opts Options) *Exporter {
	e := &Exporter{
		log:          opts.Logger,
		mark:         opts.Watermark,
		assetTimeout: opts.AssetTimeout,
		now:          opts.Now,
	}
	if e.log == nil {
		e.log = zap.NewNop()
	}
	if e.mark == nil {
		e.mark = watermark.DefaultAsset()
	}
	if e.assetTimeout <= 0 {
		e.assetTimeout = DefaultAssetTimeout
	}
	if e.now == nil {
		e.now = time.Now
	}
	return e
}

// Snapshot exports the watermarked raster of `s` to `sink`.
// A nil surface is logged and nothing is delivered.
func (e *Exporter) Snapshot(ctx context.Context, s Surface, sink Sink) error {
	if missing(s) {
		e.log.Error("canvas not available for export", zap.String("artifact", SnapshotName))
		return nil
	}
	w, h := s.Size()
	log := e.log.With(zap.String("artifact", SnapshotName), zap.Int("width", w), zap.Int("height", h))

	s.SetBackground(color.White)

	loadCtx, cancel := context.WithTimeout(ctx, e.assetTimeout)
	snap, mark, err := watermark.LoadBoth(loadCtx, s.Snapshot, e.mark)
	cancel()
	if err != nil {
		log.Error("loading images failed", zap.Error(err))
		return err
	}

	out, err := watermark.Composite(snap, mark)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, out); err != nil {
		return fmt.Errorf("export: encoding %s: %w", SnapshotName, err)
	}
	if err := sink.Deliver(ctx, SnapshotName, "image/png", buf.Bytes()); err != nil {
		return fmt.Errorf("export: delivering %s: %w", SnapshotName, err)
	}
	log.Info("snapshot exported", zap.Int("bytes", buf.Len()))
	return nil
}

// Document exports the snapshot and the dimension table of `s`,
// followed by the given image details, to `sink`.
// A nil surface is logged and nothing is delivered.
func (e *Exporter) Document(ctx context.Context, s Surface, details []extract.ImageDetail, sink Sink) error {
	if missing(s) {
		e.log.Error("canvas not available for export", zap.String("artifact", DocumentName))
		return nil
	}
	log := e.log.With(zap.String("artifact", DocumentName))

	snap, err := s.Snapshot()
	if err != nil {
		return fmt.Errorf("export: snapshot: %w", err)
	}
	doc := planpdf.New(planpdf.Options{CreationDate: e.now()})
	if err := doc.EmbedSnapshot(snap); err != nil {
		return err
	}

	bundle := extract.NewBundle(s.Objects(), details)
	doc.Table(bundle)

	var buf bytes.Buffer
	if err := doc.Write(&buf); err != nil {
		return fmt.Errorf("export: writing %s: %w", DocumentName, err)
	}
	if err := sink.Deliver(ctx, DocumentName, "application/pdf", buf.Bytes()); err != nil {
		return fmt.Errorf("export: delivering %s: %w", DocumentName, err)
	}
	log.Debug("exported data", zap.Any("rooms", bundle.Rooms), zap.Any("images", bundle.Images))
	log.Info("document exported",
		zap.Int("rooms", len(bundle.Rooms)), zap.Int("images", len(bundle.Images)), zap.Int("bytes", buf.Len()))
	return nil
}
