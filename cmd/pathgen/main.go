// Command pathgen samples random source/target pairs, runs CH Dijkstra over
// a worker pool, and writes the resulting weighted paths to a CSV file.
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/fmi"
	"github.com/bernlu/chhitset/pkg/pathgen"
)

func main() {
	n := flag.Int("n", 1000, "number of random source/target pairs to sample")
	seed := flag.Int64("s", 1, "random seed")
	graphPath := flag.String("g", "", "path to .fmi CH graph file")
	outPath := flag.String("o", "", "output path for the paths CSV")
	workers := flag.Int("p", runtime.NumCPU(), "number of parallel Dijkstra workers")
	verbose := flag.Bool("v", false, "log progress")
	flag.Parse()

	if *graphPath == "" || *outPath == "" {
		log.Fatal("Usage: pathgen -n N -s SEED -g <graph> -o <out> [-p workers] [-v]")
	}

	start := time.Now()
	base, err := fmi.LoadCHGraph(*graphPath)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}
	if *verbose {
		log.Printf("graph: %d nodes, %d edges", len(base.Nodes), len(base.Edges))
	}
	rv := chgraph.BuildRoutingView(base)

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer out.Close()

	if err := pathgen.RandomPairs(context.Background(), rv, *n, *seed, *workers, out); err != nil {
		log.Fatalf("path generation failed: %v", err)
	}
	log.Printf("done in %s", time.Since(start))
}
