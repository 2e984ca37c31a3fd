// Package fmi reads and writes the text/CSV file formats that feed and
// record the pipeline: .fmi graph files, path lists, and hitting-set
// results, plus binary-cache load-or-parse helpers for each.
package fmi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bernlu/chhitset/pkg/chgraph"
)

// GraphType distinguishes the two .fmi node/edge record layouts.
type GraphType int

const (
	// TypeCHGraph expects a "level" field on every node and a required
	// "child1 child2" pair on every edge ("-1 -1" for a base edge).
	TypeCHGraph GraphType = iota
	// TypeMaxspeed is the plain road-network format: no level field on
	// nodes and no child fields on edges.
	TypeMaxspeed
)

const noChildToken = "-1"

// ReadFMI parses a .fmi graph file of the given type. Lines starting with
// "#" before the blank separator line are metadata and are ignored except
// to confirm Type matches, if present.
func ReadFMI(r io.Reader, want GraphType) (chgraph.Base, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			break
		}
		if !strings.HasPrefix(line, "#") {
			return chgraph.Base{}, fmt.Errorf("fmi: expected comment or blank line in header, got %q", line)
		}
		if rest, ok := strings.CutPrefix(line, "#"); ok {
			kv := strings.SplitN(strings.TrimSpace(rest), " ", 2)
			if len(kv) == 2 && strings.EqualFold(kv[0], "Type") {
				got := strings.TrimSpace(kv[1])
				if wantStr := typeName(want); !strings.EqualFold(got, wantStr) {
					return chgraph.Base{}, fmt.Errorf("fmi: Type header is %q, want %q", got, wantStr)
				}
			}
		}
	}
	if err := sc.Err(); err != nil {
		return chgraph.Base{}, fmt.Errorf("fmi: reading header: %w", err)
	}

	n, err := readCount(sc, "node count")
	if err != nil {
		return chgraph.Base{}, err
	}
	m, err := readCount(sc, "edge count")
	if err != nil {
		return chgraph.Base{}, err
	}

	nodes := make([]chgraph.Node, n)
	for i := 0; i < n; i++ {
		if !sc.Scan() {
			return chgraph.Base{}, fmt.Errorf("fmi: unexpected EOF reading node %d of %d", i, n)
		}
		node, err := parseNodeRecord(sc.Text(), want)
		if err != nil {
			return chgraph.Base{}, fmt.Errorf("fmi: node %d: %w", i, err)
		}
		nodes[i] = node
	}

	edges := make([]chgraph.Edge, m)
	for i := 0; i < m; i++ {
		if !sc.Scan() {
			return chgraph.Base{}, fmt.Errorf("fmi: unexpected EOF reading edge %d of %d", i, m)
		}
		edge, err := parseEdgeRecord(sc.Text(), want)
		if err != nil {
			return chgraph.Base{}, fmt.Errorf("fmi: edge %d: %w", i, err)
		}
		edges[i] = edge
	}

	base := chgraph.Base{Nodes: nodes, Edges: edges}
	// Validate enforces CH-specific invariants (shortcut chaining, distinct
	// endpoint levels) that don't hold for the plain maxspeed format, which
	// has no levels or shortcuts at all.
	if want == TypeCHGraph {
		if err := base.Validate(); err != nil {
			return chgraph.Base{}, fmt.Errorf("fmi: %w", err)
		}
	}
	return base, nil
}

func typeName(t GraphType) string {
	if t == TypeCHGraph {
		return "chgraph"
	}
	return "maxspeed"
}

func readCount(sc *bufio.Scanner, what string) (int, error) {
	if !sc.Scan() {
		return 0, fmt.Errorf("fmi: unexpected EOF reading %s", what)
	}
	n, err := strconv.Atoi(strings.TrimSpace(sc.Text()))
	if err != nil {
		return 0, fmt.Errorf("fmi: invalid %s: %w", what, err)
	}
	return n, nil
}

// node record: id osm lat lon elevation [level]
func parseNodeRecord(line string, want GraphType) (chgraph.Node, error) {
	fields := strings.Fields(line)
	minFields := 5
	if want == TypeCHGraph {
		minFields = 6
	}
	if len(fields) < minFields {
		return chgraph.Node{}, fmt.Errorf("expected at least %d fields, got %d: %q", minFields, len(fields), line)
	}
	lat, err := strconv.ParseFloat(fields[2], 64)
	if err != nil {
		return chgraph.Node{}, fmt.Errorf("invalid lat: %w", err)
	}
	lon, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return chgraph.Node{}, fmt.Errorf("invalid lon: %w", err)
	}
	node := chgraph.Node{Lat: lat, Lon: lon}
	if want == TypeCHGraph {
		level, err := strconv.ParseUint(fields[5], 10, 32)
		if err != nil {
			return chgraph.Node{}, fmt.Errorf("invalid level: %w", err)
		}
		node.Level = uint32(level)
	}
	return node, nil
}

// edge record: source target cost type maxspeed [child1 child2]
func parseEdgeRecord(line string, want GraphType) (chgraph.Edge, error) {
	fields := strings.Fields(line)
	minFields := 5
	if want == TypeCHGraph {
		minFields = 7
	}
	if len(fields) < minFields {
		return chgraph.Edge{}, fmt.Errorf("expected at least %d fields, got %d: %q", minFields, len(fields), line)
	}
	source, err := strconv.ParseUint(fields[0], 10, 32)
	if err != nil {
		return chgraph.Edge{}, fmt.Errorf("invalid source: %w", err)
	}
	target, err := strconv.ParseUint(fields[1], 10, 32)
	if err != nil {
		return chgraph.Edge{}, fmt.Errorf("invalid target: %w", err)
	}
	cost, err := strconv.ParseUint(fields[2], 10, 32)
	if err != nil {
		return chgraph.Edge{}, fmt.Errorf("invalid cost: %w", err)
	}
	edge := chgraph.Edge{
		Source: chgraph.EdgeEndpoint(source),
		Target: chgraph.EdgeEndpoint(target),
		Cost:   uint32(cost),
		Child1: chgraph.NoChild,
		Child2: chgraph.NoChild,
	}
	if want != TypeCHGraph {
		return edge, nil
	}
	c1, c2 := fields[5], fields[6]
	if (c1 == noChildToken) != (c2 == noChildToken) {
		return chgraph.Edge{}, fmt.Errorf("malformed children: only one of child1 (%s) / child2 (%s) is set", c1, c2)
	}
	if c1 != noChildToken {
		v1, err := strconv.ParseUint(c1, 10, 32)
		if err != nil {
			return chgraph.Edge{}, fmt.Errorf("invalid child1: %w", err)
		}
		v2, err := strconv.ParseUint(c2, 10, 32)
		if err != nil {
			return chgraph.Edge{}, fmt.Errorf("invalid child2: %w", err)
		}
		edge.Child1 = chgraph.EdgeId(v1)
		edge.Child2 = chgraph.EdgeId(v2)
	}
	return edge, nil
}

// WriteFMI writes base back out in the given .fmi format, for round-trip
// testing and for tools that re-export a filtered/derived graph.
func WriteFMI(w io.Writer, base chgraph.Base, t GraphType) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "# Type %s\n\n", typeName(t)); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(bw, "%d\n%d\n", len(base.Nodes), len(base.Edges)); err != nil {
		return err
	}
	for i, n := range base.Nodes {
		if t == TypeCHGraph {
			if _, err := fmt.Fprintf(bw, "%d 0 %f %f 0 %d\n", i, n.Lat, n.Lon, n.Level); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(bw, "%d 0 %f %f 0\n", i, n.Lat, n.Lon); err != nil {
				return err
			}
		}
	}
	for _, e := range base.Edges {
		if t != TypeCHGraph {
			if _, err := fmt.Fprintf(bw, "%d %d %d 0 0\n", e.Source, e.Target, e.Cost); err != nil {
				return err
			}
			continue
		}
		c1, c2 := noChildToken, noChildToken
		if e.IsShortcut() {
			c1 = strconv.FormatUint(uint64(e.Child1), 10)
			c2 = strconv.FormatUint(uint64(e.Child2), 10)
		}
		if _, err := fmt.Fprintf(bw, "%d %d %d 0 0 %s %s\n", e.Source, e.Target, e.Cost, c1, c2); err != nil {
			return err
		}
	}
	return bw.Flush()
}
