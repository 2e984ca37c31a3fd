package pathgen

import (
	"context"
	"io"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/quadtree"
)

// WSPDPairs runs one multi-source/multi-target CH Dijkstra query per WSPD
// pair (U, V) — every point in U against every point in V — and writes the
// resulting path with weight |U|*|V| (the pair stands in for every
// individual point-to-point path between the two cells). Pairs with no
// reachable combination are dropped.
func WSPDPairs(ctx context.Context, rv *chgraph.RoutingView, pairs []quadtree.Pair, workers int, w io.Writer) error {
	jobs := make(chan job, workers)
	go func() {
		defer close(jobs)
		for _, pair := range pairs {
			uPoints := pair.U.Points()
			vPoints := pair.V.Points()
			if len(uPoints) == 0 || len(vPoints) == 0 {
				continue
			}
			sources := make([]chgraph.NodeId, len(uPoints))
			for i, p := range uPoints {
				sources[i] = p.Node
			}
			targets := make([]chgraph.NodeId, len(vPoints))
			for i, p := range vPoints {
				targets[i] = p.Node
			}
			weight := uint64(len(uPoints)) * uint64(len(vPoints))
			select {
			case jobs <- job{sources: sources, targets: targets, weight: weight}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return runPipeline(ctx, rv, jobs, workers, w)
}
