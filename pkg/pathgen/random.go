package pathgen

import (
	"context"
	"io"
	"math/rand"

	"github.com/bernlu/chhitset/pkg/chgraph"
)

// RandomPairs samples n uniformly random (source, target) node pairs (self
// pairs skipped and re-drawn), runs CH Dijkstra on each over workers
// goroutines, and writes every reachable pair's path (weight 1) to w as a
// paths CSV. Disconnected pairs are silently dropped, same as the teacher's
// skip-unreachable-pair convention during OSM preprocessing.
func RandomPairs(ctx context.Context, rv *chgraph.RoutingView, n int, seed int64, workers int, w io.Writer) error {
	numNodes := rv.NumNodes()
	if numNodes < 2 {
		return nil
	}

	jobs := make(chan job, workers)
	go func() {
		defer close(jobs)
		rng := rand.New(rand.NewSource(seed))
		for i := 0; i < n; i++ {
			select {
			case <-ctx.Done():
				return
			default:
			}
			src := chgraph.NodeId(rng.Intn(numNodes))
			dst := chgraph.NodeId(rng.Intn(numNodes))
			for dst == src {
				dst = chgraph.NodeId(rng.Intn(numNodes))
			}
			select {
			case jobs <- job{sources: []chgraph.NodeId{src}, targets: []chgraph.NodeId{dst}, weight: 1}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return runPipeline(ctx, rv, jobs, workers, w)
}
