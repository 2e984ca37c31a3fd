package fmi

import (
	"bytes"
	"strings"
	"testing"
)

const toyCHGraphText = `# Type chgraph

4
5
0 0 48.000000 8.000000 0 3
1 0 48.001000 8.001000 0 1
2 0 48.002000 8.002000 0 2
3 0 48.003000 8.003000 0 4
0 1 1 0 0 -1 -1
1 2 2 0 0 -1 -1
2 3 3 0 0 -1 -1
0 2 3 0 0 0 1
0 3 6 0 0 3 2
`

func TestReadFMIChgraphParsesToyGraph(t *testing.T) {
	base, err := ReadFMI(strings.NewReader(toyCHGraphText), TypeCHGraph)
	if err != nil {
		t.Fatalf("ReadFMI: %v", err)
	}
	if len(base.Nodes) != 4 {
		t.Fatalf("len(Nodes) = %d, want 4", len(base.Nodes))
	}
	if len(base.Edges) != 5 {
		t.Fatalf("len(Edges) = %d, want 5", len(base.Edges))
	}
	if base.Nodes[1].Level != 1 {
		t.Errorf("Nodes[1].Level = %d, want 1", base.Nodes[1].Level)
	}
	if !base.Edges[3].IsShortcut() {
		t.Error("Edges[3] should be a shortcut")
	}
	if base.Edges[3].Child1 != 0 || base.Edges[3].Child2 != 1 {
		t.Errorf("Edges[3] children = (%d,%d), want (0,1)", base.Edges[3].Child1, base.Edges[3].Child2)
	}
	if err := base.Validate(); err != nil {
		t.Errorf("Validate() failed on parsed toy graph: %v", err)
	}
}

func TestReadFMIRejectsWrongType(t *testing.T) {
	_, err := ReadFMI(strings.NewReader(toyCHGraphText), TypeMaxspeed)
	if err == nil {
		t.Fatal("ReadFMI with mismatched Type header returned no error")
	}
}

func TestWriteFMIRoundTrip(t *testing.T) {
	base, err := ReadFMI(strings.NewReader(toyCHGraphText), TypeCHGraph)
	if err != nil {
		t.Fatalf("ReadFMI: %v", err)
	}
	var buf bytes.Buffer
	if err := WriteFMI(&buf, base, TypeCHGraph); err != nil {
		t.Fatalf("WriteFMI: %v", err)
	}
	roundTripped, err := ReadFMI(&buf, TypeCHGraph)
	if err != nil {
		t.Fatalf("ReadFMI on round-tripped output: %v", err)
	}
	if len(roundTripped.Nodes) != len(base.Nodes) || len(roundTripped.Edges) != len(base.Edges) {
		t.Fatalf("round trip changed sizes: nodes %d->%d, edges %d->%d",
			len(base.Nodes), len(roundTripped.Nodes), len(base.Edges), len(roundTripped.Edges))
	}
	for i := range base.Edges {
		if base.Edges[i] != roundTripped.Edges[i] {
			t.Errorf("edge %d changed across round trip: %+v != %+v", i, base.Edges[i], roundTripped.Edges[i])
		}
	}
}

const toyMaxspeedText = `# Type maxspeed

2
1
0 0 48.000000 8.000000 0
1 0 48.001000 8.001000 0
0 1 10 0 0
`

func TestReadFMIRejectsOneSidedChildren(t *testing.T) {
	const malformed = `# Type chgraph

2
1
0 0 48.000000 8.000000 0 0
1 0 48.001000 8.001000 0 1
0 1 1 0 0 3 -1
`
	_, err := ReadFMI(strings.NewReader(malformed), TypeCHGraph)
	if err == nil {
		t.Fatal("ReadFMI accepted an edge with only one of child1/child2 set")
	}
}

func TestReadFMIMaxspeedParsesWithoutLevels(t *testing.T) {
	base, err := ReadFMI(strings.NewReader(toyMaxspeedText), TypeMaxspeed)
	if err != nil {
		t.Fatalf("ReadFMI: %v", err)
	}
	if len(base.Nodes) != 2 || len(base.Edges) != 1 {
		t.Fatalf("unexpected sizes: nodes=%d edges=%d", len(base.Nodes), len(base.Edges))
	}
	if base.Edges[0].IsShortcut() {
		t.Error("maxspeed-format edge parsed as a shortcut")
	}
}
