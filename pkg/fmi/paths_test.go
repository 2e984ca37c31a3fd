package fmi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/hittingset"
)

func TestReadPathsParsesWeightAndEdges(t *testing.T) {
	input := "3,0,1,2\n1,5\n\n"
	paths, err := ReadPaths(strings.NewReader(input))
	if err != nil {
		t.Fatalf("ReadPaths: %v", err)
	}
	if len(paths) != 3 {
		t.Fatalf("len(paths) = %d, want 3", len(paths))
	}
	if paths[0].Weight != 3 || len(paths[0].Edges) != 3 {
		t.Errorf("paths[0] = %+v, want weight 3 with 3 edges", paths[0])
	}
	if paths[1].Weight != 1 || len(paths[1].Edges) != 1 || paths[1].Edges[0] != 5 {
		t.Errorf("paths[1] = %+v, want weight 1 edge [5]", paths[1])
	}
	if len(paths[2].Edges) != 0 {
		t.Errorf("paths[2] (blank line) should be an empty path, got %+v", paths[2])
	}
}

func TestWritePathsRoundTrip(t *testing.T) {
	paths := []hittingset.Path{
		{Weight: 3, Edges: []chgraph.EdgeId{0, 1, 2}},
		{Weight: 1, Edges: []chgraph.EdgeId{5}},
		{Weight: 1},
	}
	var buf bytes.Buffer
	if err := WritePaths(&buf, paths); err != nil {
		t.Fatalf("WritePaths: %v", err)
	}
	got, err := ReadPaths(&buf)
	if err != nil {
		t.Fatalf("ReadPaths on written output: %v", err)
	}
	if len(got) != len(paths) {
		t.Fatalf("round trip changed path count: %d != %d", len(got), len(paths))
	}
	for i := range paths {
		if got[i].Weight != paths[i].Weight {
			t.Errorf("path %d weight %d != %d", i, got[i].Weight, paths[i].Weight)
		}
		if len(got[i].Edges) != len(paths[i].Edges) {
			t.Errorf("path %d edges %v != %v", i, got[i].Edges, paths[i].Edges)
		}
	}
}
