package fmi

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bernlu/chhitset/pkg/chgraph"
	"github.com/bernlu/chhitset/pkg/hittingset"
)

// ReadPaths parses the paths CSV format: one path per line, no header,
// flexible row length, "weight, e0, e1, ..., ek". An empty weight field
// defaults to 1; an all-blank line is a legal empty ("removed") path of
// weight 1.
func ReadPaths(r io.Reader) ([]hittingset.Path, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 64*1024*1024)

	var paths []hittingset.Path
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			paths = append(paths, hittingset.Path{Weight: 1})
			continue
		}
		record := strings.Split(line, ",")
		weight := uint64(1)
		if w := strings.TrimSpace(record[0]); w != "" {
			var err error
			weight, err = strconv.ParseUint(w, 10, 64)
			if err != nil {
				return nil, fmt.Errorf("fmi: paths line %d: invalid weight %q: %w", lineNo, w, err)
			}
		}
		edges := make([]chgraph.EdgeId, 0, len(record)-1)
		for _, f := range record[1:] {
			f = strings.TrimSpace(f)
			if f == "" {
				continue
			}
			v, err := strconv.ParseUint(f, 10, 32)
			if err != nil {
				return nil, fmt.Errorf("fmi: paths line %d: invalid edge id %q: %w", lineNo, f, err)
			}
			edges = append(edges, chgraph.EdgeId(v))
		}
		paths = append(paths, hittingset.Path{Weight: weight, Edges: edges})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fmi: reading paths: %w", err)
	}
	return paths, nil
}

// WritePaths writes paths back out in the same CSV format ReadPaths reads.
func WritePaths(w io.Writer, paths []hittingset.Path) error {
	bw := bufio.NewWriter(w)
	cw := csv.NewWriter(bw)
	for _, p := range paths {
		if err := WritePathRow(cw, p); err != nil {
			return fmt.Errorf("fmi: writing path: %w", err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return err
	}
	return bw.Flush()
}

// WritePathRow writes a single path as one CSV record, "weight, e0, e1, ...".
// Exported so a streaming producer (pathgen's worker-pool writer) can emit
// rows as they arrive instead of buffering every path into a slice first.
func WritePathRow(cw *csv.Writer, p hittingset.Path) error {
	record := make([]string, 0, len(p.Edges)+1)
	record = append(record, strconv.FormatUint(p.Weight, 10))
	for _, e := range p.Edges {
		record = append(record, strconv.FormatUint(uint64(e), 10))
	}
	return cw.Write(record)
}
