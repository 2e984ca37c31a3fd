package fmi

import (
	"bytes"
	"strings"
	"testing"

	"github.com/bernlu/chhitset/pkg/hittingset"
)

func TestWriteHittingSetBasicFormat(t *testing.T) {
	hits := []hittingset.Hit{{Node: 3, Weight: 5}, {Node: 1, Weight: 2}}
	var buf bytes.Buffer
	if err := WriteHittingSet(&buf, hits); err != nil {
		t.Fatalf("WriteHittingSet: %v", err)
	}
	if got := buf.String(); got != "3\n1\n" {
		t.Errorf("WriteHittingSet output = %q, want %q", got, "3\n1\n")
	}
}

func TestWriteHittingSetAnalysisHasHeader(t *testing.T) {
	hits := []hittingset.Hit{{Node: 3, Weight: 5}}
	var buf bytes.Buffer
	if err := WriteHittingSetAnalysis(&buf, hits); err != nil {
		t.Fatalf("WriteHittingSetAnalysis: %v", err)
	}
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if lines[0] != "NodeId, weight" {
		t.Errorf("first line = %q, want literal header", lines[0])
	}
	if lines[1] != "3, 5" {
		t.Errorf("second line = %q, want %q", lines[1], "3, 5")
	}
}

func TestReadHittingSetSkipsAnalysisHeader(t *testing.T) {
	nodes, err := ReadHittingSet(strings.NewReader("NodeId, weight\n3, 5\n1, 2\n"))
	if err != nil {
		t.Fatalf("ReadHittingSet: %v", err)
	}
	if !nodes[3] || !nodes[1] || len(nodes) != 2 {
		t.Errorf("nodes = %v, want {1,3}", nodes)
	}
}

func TestReadHittingSetBasicFormat(t *testing.T) {
	nodes, err := ReadHittingSet(strings.NewReader("3\n1\n"))
	if err != nil {
		t.Fatalf("ReadHittingSet: %v", err)
	}
	if !nodes[3] || !nodes[1] || len(nodes) != 2 {
		t.Errorf("nodes = %v, want {1,3}", nodes)
	}
}
