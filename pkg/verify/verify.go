// Package verify checks the one algorithmic invariant the pipeline treats
// as an assertion rather than a heuristic: that a computed hitting set
// really does touch every input path. Checking is read-only over the graph
// and hitting set, so it runs fully parallel over paths.
package verify

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/hittingset"
)

// ErrUncovered marks a path with no hitting-set node among its unpacked
// endpoints.
var ErrUncovered = errors.New("path not covered by hitting set")

// CoverPaths expands every non-empty path to its base edges and checks that
// some node in hit is either the first edge's source or some edge's
// target. Empty ("removed") paths are skipped, matching the engine's own
// bookkeeping. Returns the first error encountered, wrapped with the
// offending path's index; workers bounds how many paths are unpacked at
// once.
func CoverPaths(ctx context.Context, rv *chgraph.RoutingView, paths []hittingset.Path, hit map[chgraph.NodeId]bool, workers int) error {
	g, gctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, p := range paths {
		if len(p.Edges) == 0 {
			continue
		}
		i, p := i, p
		g.Go(func() error {
			if gctx.Err() != nil {
				return gctx.Err()
			}
			base := rv.UnpackPath(p.Edges)
			if len(base) == 0 {
				return nil
			}
			if hit[rv.Edge(base[0]).Source] {
				return nil
			}
			for _, e := range base {
				if hit[rv.Edge(e).Target] {
					return nil
				}
			}
			return fmt.Errorf("path %d: %w", i, ErrUncovered)
		})
	}
	return g.Wait()
}

// HitSet turns a slice of hits into the set CoverPaths expects.
func HitSet(hits []hittingset.Hit) map[chgraph.NodeId]bool {
	set := make(map[chgraph.NodeId]bool, len(hits))
	for _, h := range hits {
		set[h.Node] = true
	}
	return set
}
