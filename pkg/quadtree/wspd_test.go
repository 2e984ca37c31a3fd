package quadtree

import (
	"context"
	"testing"
)

func gridPoints() []Point {
	var pts []Point
	id := 0
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			pts = append(pts, Point{
				Node:  uint32(id),
				Lat:   48.0 + float64(i)*0.1,
				Lon:   8.0 + float64(j)*0.1,
				Level: uint32(id),
			})
			id++
		}
	}
	return pts
}

func TestWSPDSeparationProperty(t *testing.T) {
	tree := New(gridPoints(), 6)
	eps := 1.0
	pairs, err := WSPD(context.Background(), tree, eps)
	if err != nil {
		t.Fatalf("WSPD returned error: %v", err)
	}
	if len(pairs) == 0 {
		t.Fatal("WSPD returned no pairs for a 16-point grid")
	}
	for _, p := range pairs {
		u, v := p.U, p.V
		if u.Diameter() < v.Diameter() {
			u, v = v, u
		}
		if u.Diameter() > eps*u.Distance(v) {
			t.Errorf("pair (%q,%q) violates separation: diam=%v eps*dist=%v", p.U.ID(), p.V.ID(), u.Diameter(), eps*u.Distance(v))
		}
	}
}

func TestWSPDCoversAllPointPairs(t *testing.T) {
	pts := gridPoints()
	tree := New(pts, 6)
	pairs, err := WSPD(context.Background(), tree, 1.0)
	if err != nil {
		t.Fatalf("WSPD returned error: %v", err)
	}

	covered := make(map[[2]uint32]bool)
	for _, p := range pairs {
		for _, a := range p.U.Points() {
			for _, b := range p.V.Points() {
				covered[[2]uint32{a.Node, b.Node}] = true
				covered[[2]uint32{b.Node, a.Node}] = true
			}
		}
	}
	for i := range pts {
		for j := range pts {
			if i == j {
				continue
			}
			if !covered[[2]uint32{pts[i].Node, pts[j].Node}] {
				t.Errorf("pair (%d,%d) not covered by any WSPD pair", pts[i].Node, pts[j].Node)
			}
		}
	}
}

func TestWSPDDedupesPairs(t *testing.T) {
	tree := New(gridPoints(), 6)
	pairs, err := WSPD(context.Background(), tree, 1.0)
	if err != nil {
		t.Fatalf("WSPD returned error: %v", err)
	}
	seen := make(map[[2]string]bool)
	for _, p := range pairs {
		key := [2]string{p.U.ID(), p.V.ID()}
		if seen[key] {
			t.Errorf("duplicate pair (%q,%q) in WSPD output", key[0], key[1])
		}
		seen[key] = true
	}
}

func TestWSPDRespectsCancelledContext(t *testing.T) {
	tree := New(gridPoints(), 6)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := WSPD(ctx, tree, 1.0)
	if err == nil {
		t.Error("WSPD with a pre-cancelled context returned no error, want context.Canceled")
	}
}
