package quadtree

import (
	"context"

	"golang.org/x/sync/errgroup"
)

// Pair is one well-separated pair: U and V are cells whose diameters are
// small relative to the distance between them, so any point in U and any
// point in V make a valid "well separated" representative sample.
type Pair struct {
	U, V *QuadTree
}

// WSPD computes the well-separated pair decomposition of tree with
// separation factor eps, following Har-Peled's recursive construction.
func WSPD(ctx context.Context, tree *QuadTree, eps float64) ([]Pair, error) {
	pairs, err := algWSPD(ctx, tree, tree, eps)
	if err != nil {
		return nil, err
	}
	return dedupePairs(pairs), nil
}

// algWSPD is a pure fold over u's children: no shared mutable state, so
// each child's recursive call can run in its own goroutine. A cell has at
// most 4 children, so the fan-out at any one level is naturally bounded;
// errgroup gives us cancellation-on-first-error for free.
func algWSPD(ctx context.Context, u, v *QuadTree, eps float64) ([]Pair, error) {
	if u == v && u.Diameter() == 0 {
		return nil, nil
	}

	// canonicalize so u is the cell with the larger diameter (ties broken
	// toward the larger id).
	switch {
	case u.Diameter() < v.Diameter():
		u, v = v, u
	case u.Diameter() == v.Diameter():
		if u.ID() <= v.ID() {
			u, v = v, u
		}
	}

	if u.Diameter() <= eps*u.Distance(v) {
		return []Pair{{U: u, V: v}}, nil
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	children := u.Children()
	results := make([][]Pair, len(children))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range children {
		i, c := i, c
		g.Go(func() error {
			res, err := algWSPD(gctx, c, v, eps)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	var out []Pair
	for _, r := range results {
		out = append(out, r...)
	}
	return out, nil
}

func dedupePairs(pairs []Pair) []Pair {
	seen := make(map[[2]string]struct{}, len(pairs))
	out := make([]Pair, 0, len(pairs))
	for _, p := range pairs {
		key := [2]string{p.U.ID(), p.V.ID()}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
