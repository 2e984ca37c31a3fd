// Command wspd_analysis builds a quad-tree/WSPD over a graph and reports
// summary statistics: pair count, a point-pair coverage check, and an
// optional cross-check of a sample of cells against an independent R-tree.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/bernlu/chhitset/pkg/fmi"
	"github.com/bernlu/chhitset/pkg/quadtree"
)

func main() {
	graphPath := flag.String("g", "", "path to .fmi CH graph file")
	maxDepth := flag.Int("d", 20, "max quad-tree depth")
	eps := flag.Float64("e", 0.5, "WSPD separation factor")
	geomCheck := flag.Int("geom_check", 0, "cross-check this many random leaf cells against an independent R-tree (0 disables)")
	flag.Parse()

	if *graphPath == "" {
		fmt.Fprintln(os.Stderr, "Usage: wspd_analysis -g <graph> [-d maxdepth] [-e eps] [--geom_check N]")
		os.Exit(1)
	}

	start := time.Now()
	base, err := fmi.LoadCHGraph(*graphPath)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}

	points := make([]quadtree.Point, len(base.Nodes))
	for i, n := range base.Nodes {
		points[i] = quadtree.Point{Node: uint32(i), Lat: n.Lat, Lon: n.Lon, Level: n.Level}
	}
	tree := quadtree.New(points, *maxDepth)
	log.Printf("quad-tree built over %d points in %s", tree.Size(), time.Since(start))

	wspdStart := time.Now()
	pairs, err := quadtree.WSPD(context.Background(), tree, *eps)
	if err != nil {
		log.Fatalf("WSPD failed: %v", err)
	}
	log.Printf("WSPD: %d pairs in %s", len(pairs), time.Since(wspdStart))

	var covered uint64
	for _, p := range pairs {
		covered += uint64(p.U.Size()) * uint64(p.V.Size())
	}
	n := uint64(len(points))
	want := n * (n - 1) / 2
	log.Printf("coverage: sum(|U|*|V|) = %d, n*(n-1)/2 = %d", covered, want)
	if covered != want {
		log.Printf("WARNING: coverage mismatch (expected with maxdepth below full splitting)")
	}

	if *geomCheck > 0 {
		runGeomCheck(tree, points, *geomCheck)
	}
}

func runGeomCheck(tree *quadtree.QuadTree, points []quadtree.Point, sampleSize int) {
	gc := quadtree.NewGeomCheck(points)
	leaves := collectLeaves(tree)
	if len(leaves) == 0 {
		log.Printf("geom_check: no leaf cells to sample")
		return
	}
	rng := rand.New(rand.NewSource(1))
	mismatches := 0
	checked := 0
	for i := 0; i < sampleSize; i++ {
		cell := leaves[rng.Intn(len(leaves))]
		agree, quadPoint, rtreePoint := quadtree.CrossCheckCell(gc, cell)
		checked++
		if !agree {
			mismatches++
			log.Printf("geom_check mismatch at cell %q: quadtree rep=%d rtree nearest=%d", cell.ID(), quadPoint.Node, rtreePoint.Node)
		}
	}
	log.Printf("geom_check: %d/%d cells agreed with the R-tree oracle", checked-mismatches, checked)
}

func collectLeaves(q *quadtree.QuadTree) []*quadtree.QuadTree {
	children := q.Children()
	if len(children) == 0 {
		if q.Size() == 0 {
			return nil
		}
		return []*quadtree.QuadTree{q}
	}
	var out []*quadtree.QuadTree
	for _, c := range children {
		out = append(out, collectLeaves(c)...)
	}
	return out
}
