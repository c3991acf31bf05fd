package watermark

import (
	"context"
	"errors"
	"fmt"
	"image"

	"golang.org/x/sync/errgroup"
)

// ErrAssetStall is returned when an image did not finish
// loading before the context was done.
var ErrAssetStall = errors.New("watermark: asset load stalled")

// LoadBoth starts the snapshot and the watermark loads concurrently,
// and returns once both completed. Callers should bound `ctx` with a
// deadline: a load still pending when it expires yields ErrAssetStall.
func LoadBoth(ctx context.Context, snapshot func() (image.Image, error), mark Asset) (snap, wm image.Image, err error) {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		snap, err = await(gctx, "snapshot", snapshot)
		return err
	})
	g.Go(func() error {
		var err error
		wm, err = await(gctx, "watermark", func() (image.Image, error) { return mark.Load(gctx) })
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	return snap, wm, nil
}

// await runs `load` in its own goroutine, so that loads
// ignoring the context still can't block the caller.
func await(ctx context.Context, name string, load func() (image.Image, error)) (image.Image, error) {
	type result struct {
		img image.Image
		err error
	}
	done := make(chan result, 1)
	go func() {
		img, err := load()
		done <- result{img, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, r.err)
		}
		return r.img, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %w", ErrAssetStall, name, ctx.Err())
	}
}
