package fmi

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadCHGraphUsesCacheOnSecondCall(t *testing.T) {
	dir := t.TempDir()
	fmiPath := filepath.Join(dir, "graph.fmi")
	if err := os.WriteFile(fmiPath, []byte(toyCHGraphText), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	base1, err := LoadCHGraph(fmiPath)
	if err != nil {
		t.Fatalf("LoadCHGraph (first, parses): %v", err)
	}
	cachePath := fmiPath + ".chgraph"
	if _, err := os.Stat(cachePath); err != nil {
		t.Fatalf("expected cache file at %s: %v", cachePath, err)
	}

	base2, err := LoadCHGraph(fmiPath)
	if err != nil {
		t.Fatalf("LoadCHGraph (second, from cache): %v", err)
	}
	if len(base1.Nodes) != len(base2.Nodes) || len(base1.Edges) != len(base2.Edges) {
		t.Errorf("cached load mismatched sizes: (%d,%d) vs (%d,%d)",
			len(base1.Nodes), len(base1.Edges), len(base2.Nodes), len(base2.Edges))
	}
	for i := range base1.Edges {
		if base1.Edges[i] != base2.Edges[i] {
			t.Errorf("edge %d differs between parsed and cached load", i)
		}
	}
}

func TestLoadCHGraphReparsesWhenSourceNewerThanCache(t *testing.T) {
	dir := t.TempDir()
	fmiPath := filepath.Join(dir, "graph.fmi")
	cachePath := fmiPath + ".chgraph"

	past := time.Now().Add(-time.Hour)
	now := time.Now()

	if err := os.WriteFile(cachePath, []byte("not a valid binary cache"), 0o644); err != nil {
		t.Fatalf("WriteFile cache: %v", err)
	}
	if err := os.Chtimes(cachePath, past, past); err != nil {
		t.Fatalf("Chtimes cache: %v", err)
	}
	if err := os.WriteFile(fmiPath, []byte(toyCHGraphText), 0o644); err != nil {
		t.Fatalf("WriteFile source: %v", err)
	}
	if err := os.Chtimes(fmiPath, now, now); err != nil {
		t.Fatalf("Chtimes source: %v", err)
	}

	base, err := LoadCHGraph(fmiPath)
	if err != nil {
		t.Fatalf("LoadCHGraph with a stale cache: %v", err)
	}
	if len(base.Nodes) != 4 {
		t.Errorf("len(Nodes) = %d, want 4 (freshly re-parsed, not read from the corrupt cache)", len(base.Nodes))
	}
}
