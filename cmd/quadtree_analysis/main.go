// Command quadtree_analysis reports quad-tree size and shape statistics
// across a range of depths, for picking a good maxdepth before running wspd.
//
// Usage: quadtree_analysis <graph> <mindepth> <maxdepth>
package main

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/bernlu/chhitset/pkg/fmi"
	"github.com/bernlu/chhitset/pkg/quadtree"
)

func main() {
	if len(os.Args) != 4 {
		fmt.Fprintln(os.Stderr, "Usage: quadtree_analysis <graph> <mindepth> <maxdepth>")
		os.Exit(1)
	}
	graphPath := os.Args[1]
	minDepth, err := strconv.Atoi(os.Args[2])
	if err != nil {
		log.Fatalf("invalid mindepth: %v", err)
	}
	maxDepth, err := strconv.Atoi(os.Args[3])
	if err != nil {
		log.Fatalf("invalid maxdepth: %v", err)
	}

	base, err := fmi.LoadCHGraph(graphPath)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}
	points := make([]quadtree.Point, len(base.Nodes))
	for i, n := range base.Nodes {
		points[i] = quadtree.Point{Node: uint32(i), Lat: n.Lat, Lon: n.Lon, Level: n.Level}
	}

	fmt.Println("depth,leaves,max_leaf_size,singleton_leaves")
	for depth := minDepth; depth <= maxDepth; depth++ {
		tree := quadtree.New(points, depth)
		leaves := countLeaves(tree)
		fmt.Printf("%d,%d,%d,%d\n", depth, leaves.count, leaves.maxSize, leaves.singletons)
	}
}

type leafStats struct {
	count      int
	maxSize    int
	singletons int
}

func countLeaves(q *quadtree.QuadTree) leafStats {
	children := q.Children()
	if len(children) == 0 {
		if q.Size() == 0 {
			return leafStats{}
		}
		stats := leafStats{count: 1, maxSize: q.Size()}
		if q.Size() == 1 {
			stats.singletons = 1
		}
		return stats
	}
	var total leafStats
	for _, c := range children {
		s := countLeaves(c)
		total.count += s.count
		total.singletons += s.singletons
		if s.maxSize > total.maxSize {
			total.maxSize = s.maxSize
		}
	}
	return total
}
