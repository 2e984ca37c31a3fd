// Package pathgen turns a routing view into a weighted collection of
// CH-compressed shortest paths, either by sampling random source/target
// pairs or by running one multi-source/multi-target query per WSPD pair.
// Both generators share the same concurrency shape: a worker pool of CH
// Dijkstra searches, each with its own reusable QueryState, funneling
// results through a bounded channel to one dedicated writer goroutine that
// serializes output to disk.
package pathgen

import (
	"bufio"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"sync"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/dijkstra"
	"github.com/bernlu/chhitset/pkg/fmi"
	"github.com/bernlu/chhitset/pkg/hittingset"
)

// job is one multi-source/multi-target query to run and the weight to
// assign its resulting path.
type job struct {
	sources []chgraph.NodeId
	targets []chgraph.NodeId
	weight  uint64
}

// runPipeline fans jobs out over workers goroutines, each holding its own
// dijkstra.QueryState so no search state is shared, and writes every
// resulting path to w as it arrives. Jobs with no path (disconnected pair)
// are silently skipped. The queue between workers and the writer has
// capacity workers, bounding how far generation can run ahead of disk I/O.
func runPipeline(ctx context.Context, rv *chgraph.RoutingView, jobs <-chan job, workers int, w io.Writer) error {
	if workers < 1 {
		workers = 1
	}

	results := make(chan hittingset.Path, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			qs := dijkstra.NewQueryState(rv.NumNodes())
			for {
				select {
				case <-ctx.Done():
					return
				case j, ok := <-jobs:
					if !ok {
						return
					}
					res, found := dijkstra.Search(rv, qs, j.sources, j.targets)
					if !found {
						continue
					}
					select {
					case results <- hittingset.Path{Weight: j.weight, Edges: res.Edges}:
					case <-ctx.Done():
						return
					}
				}
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()

	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	count := 0
	for p := range results {
		if err := fmi.WritePathRow(cw, p); err != nil {
			return fmt.Errorf("pathgen: writing path: %w", err)
		}
		count++
		if count%10000 == 0 {
			log.Printf("pathgen: wrote %d paths", count)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("pathgen: flushing paths: %w", err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("pathgen: flushing paths: %w", err)
	}
	log.Printf("pathgen: done, %d paths written", count)
	return ctx.Err()
}
