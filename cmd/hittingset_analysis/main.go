// Command hittingset_analysis runs the hitting-set engine like hittingset,
// but writes the "NodeId, weight" analysis format and can additionally
// report a lower bound and per-iteration timing.
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
	"github.com/bernlu/chhitset/pkg/hittingset"
	"github.com/bernlu/chhitset/pkg/verify"
)

type pathFlags []string

func (p *pathFlags) String() string     { return fmt.Sprint([]string(*p)) }
func (p *pathFlags) Set(v string) error { *p = append(*p, v); return nil }

func main() {
	graphPath := flag.String("g", "", "path to .fmi CH graph file")
	outPath := flag.String("o", "", "output path for the analysis CSV")
	var paths pathFlags
	flag.Var(&paths, "p", "path to a paths CSV file (repeatable)")
	lowerBound := flag.Bool("l", false, "also compute and log a lower bound on hitting-set size")
	iterStats := flag.Bool("i", false, "log per-iteration timing and progress")
	skipVerification := flag.Bool("skip_verification", false, "skip the post-hoc coverage check")
	verbose := flag.Bool("v", false, "alias for -i")
	maxIter := flag.Int("m", -1, "stop after N iterations (-1 = no limit)")
	flag.Parse()

	if *graphPath == "" || *outPath == "" || len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: hittingset_analysis -g <graph> -o <out> -p <paths> [-l] [-i] [--skip_verification] [-v] [-m N]")
		os.Exit(1)
	}

	base, err := fmi.LoadCHGraph(*graphPath)
	if err != nil {
		log.Fatalf("failed to load graph: %v", err)
	}
	log.Printf("graph: %d nodes, %d edges", len(base.Nodes), len(base.Edges))
	metadag, err := chgraph.BuildMetaDAG(base)
	if err != nil {
		log.Fatalf("failed to build meta-DAG: %v", err)
	}

	var allPaths []hittingset.Path
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			log.Fatalf("failed to open paths file %s: %v", p, err)
		}
		parsed, err := fmi.ReadPaths(f)
		f.Close()
		if err != nil {
			log.Fatalf("failed to parse paths file %s: %v", p, err)
		}
		allPaths = append(allPaths, parsed...)
	}
	originalPaths := make([]hittingset.Path, len(allPaths))
	copy(originalPaths, allPaths)

	if *lowerBound {
		lbEngine := hittingset.New(metadag, append([]hittingset.Path(nil), allPaths...))
		lb := lbEngine.LowerBound()
		log.Printf("lower bound on hitting-set size: %d", lb)
	}

	start := time.Now()
	engine := hittingset.New(metadag, allPaths)
	hits := engine.RunWithStats(*iterStats || *verbose, *maxIter)
	log.Printf("hitting set size %d, computed in %s", len(hits), time.Since(start))

	if !*skipVerification {
		rv := chgraph.BuildRoutingView(base)
		hitSet := verify.HitSet(hits)
		if err := verify.CoverPaths(context.Background(), rv, originalPaths, hitSet, runtime.NumCPU()); err != nil {
			log.Fatalf("verification failed: %v", err)
		}
		log.Printf("verification passed")
	}

	out, err := os.Create(*outPath)
	if err != nil {
		log.Fatalf("failed to create output file: %v", err)
	}
	defer out.Close()
	if err := fmi.WriteHittingSetAnalysis(out, hits); err != nil {
		log.Fatalf("failed to write output: %v", err)
	}
	log.Printf("wrote %d rows to %s", len(hits), *outPath)
}
