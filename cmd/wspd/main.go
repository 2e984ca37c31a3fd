// Command wspd builds a quad-tree over a graph's nodes, computes its
// well-separated pair decomposition, and runs one CH Dijkstra query per
// pair to emit a weighted paths CSV, the WSPD-derived alternative to
// pathgen's random-pair sampling.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"time"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/fmi"
	"github.com/bernlu/chhitset/pkg/pathgen"
	"github.com/bernlu/chhitset/pkg/quadtree"
)

func main() {
	graphPath := flag.String("g", "", "path to .fmi CH graph file")
	outPath := flag.String("o", "", "output path for the paths CSV")
	maxDepth := flag.Int("d", 20, "max quad-tree depth")
	eps := flag.Float64("e", 0.5, "WSPD separation factor")
	verbose := flag.Bool("v", false, "log progress")
	flag.Parse()

	if *graphPath == "" || *outPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: wspd -g <graph> -o <out> [-d maxdepth] [-e eps] [-v]")
		os.Exit(1)
	}
	workers := runtime.NumCPU()

	start := time.Now()
	base, err := fmi.LoadCHGraph(*graphPath)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}
	if *verbose {
		log.Printf("graph: %d nodes, %d edges", len(base.Nodes), len(base.Edges))
	}
	rv := chgraph.BuildRoutingView(base)

	points := make([]quadtree.Point, len(base.Nodes))
	for i, n := range base.Nodes {
		points[i] = quadtree.Point{Node: uint32(i), Lat: n.Lat, Lon: n.Lon, Level: n.Level}
	}
	if *verbose {
		log.Printf("building quad-tree over %d points, maxdepth=%d", len(points), *maxDepth)
	}
	tree := quadtree.New(points, *maxDepth)

	if *verbose {
		log.Printf("computing WSPD, eps=%.3f", *eps)
	}
	pairs, err := quadtree.WSPD(context.Background(), tree, *eps)
	if err != nil {
		log.Fatalf("WSPD failed: %v", err)
	}
	if *verbose {
		log.Printf("WSPD: %d pairs, sampling paths with %d workers", len(pairs), workers)
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer out.Close()

	if err := pathgen.WSPDPairs(context.Background(), rv, pairs, workers, out); err != nil {
		log.Fatalf("path generation failed: %v", err)
	}
	log.Printf("wrote paths for %d pairs to %s in %s", len(pairs), *outPath, time.Since(start))
}
