package app

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// fetchBoth runs two reads side by side, such as a quotation and its
// layout. The first failure cancels the other read and is returned as is,
// so domain errors keep their kind. Both results are zero on failure.
func fetchBoth[A, B any](
	ctx context.Context,
	readA func(context.Context) (A, error),
	readB func(context.Context) (B, error),
) (A, B, error) {
	var (
		a A
		b B
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		a, err = readA(gctx)
		return err
	})
	g.Go(func() (err error) {
		b, err = readB(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		var (
			zeroA A
			zeroB B
		)
		return zeroA, zeroB, err
	}

	return a, b, nil
}
