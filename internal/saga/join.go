// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package saga

import (
	"context"

	"golang.org/x/sync/errgroup"
)

type task func(ctx context.Context) error

// join starts every non-nil task together, waits for all of them to settle
// and returns the first error observed. A failing task does not cancel the
// others: each one runs to completion before join returns.
func join(ctx context.Context, tasks ...task) error {
	var g errgroup.Group
	for _, t := range tasks {
		if t == nil {
			continue
		}
		g.Go(func() error { return t(ctx) })
	}
	return g.Wait()
}
