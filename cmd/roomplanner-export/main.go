// Command roomplanner-export renders a saved room planner canvas
// to RoomPlanner.png and RoomPlanner.pdf.
//
//	roomplanner-export -canvas plan.json [-mode png|pdf|both]
//
// Settings are read from the environment, see internal/config.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/benoitkugler/roomplanner/export"
	"github.com/benoitkugler/roomplanner/extract"
	"github.com/benoitkugler/roomplanner/internal/config"
	"github.com/benoitkugler/roomplanner/internal/logger"
	"github.com/benoitkugler/roomplanner/plan"
	"github.com/benoitkugler/roomplanner/planraster"
	"github.com/benoitkugler/roomplanner/watermark"
	"go.uber.org/zap"
)

func main() {
	canvasPath := flag.String("canvas", "", "serialized canvas (JSON)")
	mode := flag.String("mode", "both", "artifacts to produce: png, pdf or both")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Format, "roomplanner-export")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()
	zap.ReplaceGlobals(log)

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log, *canvasPath, *mode); err != nil {
		log.Error("export failed", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger, canvasPath, mode string) error {
	if mode != "png" && mode != "pdf" && mode != "both" {
		return fmt.Errorf("invalid mode %q", mode)
	}

	var surface export.Surface
	if canvasPath != "" {
		p, err := readPlan(canvasPath)
		if err != nil {
			return err
		}
		log.Info("canvas loaded", zap.String("path", canvasPath),
			zap.Int("width", p.Width), zap.Int("height", p.Height), zap.Int("objects", len(p.Objects)))
		surface = planraster.NewCanvas(p)
	}

	opts := export.Options{Logger: log, AssetTimeout: cfg.AssetTimeout}
	if cfg.WatermarkPath != "" {
		opts.Watermark = watermark.FileAsset(cfg.WatermarkPath)
	}
	exporter := export.New(opts)
	sink := export.DirSink{Dir: cfg.OutputDir}

	var produced []string
	if mode != "pdf" {
		if err := exporter.Snapshot(ctx, surface, sink); err != nil {
			return err
		}
		produced = append(produced, export.SnapshotName)
	}
	if mode != "png" {
		var details []extract.ImageDetail
		if surface != nil {
			details = extract.ImageDetails(surface.Objects())
		}
		if err := exporter.Document(ctx, surface, details, sink); err != nil {
			return err
		}
		produced = append(produced, export.DocumentName)
	}
	if surface == nil {
		return nil // nothing was written
	}
	for _, name := range produced {
		fmt.Println(filepath.Join(cfg.OutputDir, name))
	}
	return nil
}

func readPlan(path string) (*plan.Plan, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return plan.Decode(f, "application/json", plan.WarnErrorMode)
}
