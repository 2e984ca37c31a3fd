package fmi

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bernlu/chhitset/pkg/hittingset"
)

// WriteHittingSet writes the basic output format: one node id per line, in
// the order hits were produced.
func WriteHittingSet(w io.Writer, hits []hittingset.Hit) error {
	bw := bufio.NewWriter(w)
	for _, h := range hits {
		if _, err := fmt.Fprintf(bw, "%d\n", h.Node); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteHittingSetAnalysis writes the analysis format: a "NodeId, weight"
// header followed by one "id, absorbed_weight" row per hit.
func WriteHittingSetAnalysis(w io.Writer, hits []hittingset.Hit) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintln(bw, "NodeId, weight"); err != nil {
		return err
	}
	for _, h := range hits {
		if _, err := fmt.Fprintf(bw, "%d, %d\n", h.Node, h.Weight); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// ReadHittingSet parses either output format back into a set of node ids,
// for verification tooling. The analysis header line, if present, is
// skipped.
func ReadHittingSet(r io.Reader) (map[uint32]bool, error) {
	sc := bufio.NewScanner(r)
	nodes := make(map[uint32]bool)
	first := true
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if first {
			first = false
			if strings.HasPrefix(strings.ToLower(line), "nodeid") {
				continue
			}
		}
		idField := line
		if comma := strings.IndexByte(line, ','); comma >= 0 {
			idField = line[:comma]
		}
		id, err := strconv.ParseUint(strings.TrimSpace(idField), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("fmi: invalid hitting-set node id %q: %w", idField, err)
		}
		nodes[uint32(id)] = true
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("fmi: reading hitting set: %w", err)
	}
	return nodes, nil
}
