package chgraph

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"unsafe"
)

// Binary cache format for a Base graph. Both RoutingView and MetaDAG are
// cheap to rebuild from a Base in memory, so the cache stores Base once;
// callers pick the .chgraph/.hsgraph extension to hint which view they plan
// to build, but either file can feed either view.
const (
	magicBytes = "CHHITSET"
	version    = uint32(1)
	maxNodes   = 50_000_000
	maxEdges   = 200_000_000
)

type fileHeader struct {
	Magic    [8]byte
	Version  uint32
	NumNodes uint32
	NumEdges uint32
}

// WriteBinary serializes base to path using an atomic rename, so a reader
// never observes a partially-written cache file.
func WriteBinary(path string, base Base) error {
	tmpPath := path + ".tmp"
	f, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() {
		f.Close()
		os.Remove(tmpPath)
	}()

	cw := &crc32Writer{w: f, hash: crc32.NewIEEE()}

	hdr := fileHeader{
		Version:  version,
		NumNodes: uint32(len(base.Nodes)),
		NumEdges: uint32(len(base.Edges)),
	}
	copy(hdr.Magic[:], magicBytes)
	if err := binary.Write(cw, binary.LittleEndian, &hdr); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	lat := make([]float64, len(base.Nodes))
	lon := make([]float64, len(base.Nodes))
	level := make([]uint32, len(base.Nodes))
	for i, n := range base.Nodes {
		lat[i], lon[i], level[i] = n.Lat, n.Lon, n.Level
	}
	if err := writeFloat64Slice(cw, lat); err != nil {
		return fmt.Errorf("write node lat: %w", err)
	}
	if err := writeFloat64Slice(cw, lon); err != nil {
		return fmt.Errorf("write node lon: %w", err)
	}
	if err := writeUint32Slice(cw, level); err != nil {
		return fmt.Errorf("write node level: %w", err)
	}

	source := make([]uint32, len(base.Edges))
	target := make([]uint32, len(base.Edges))
	cost := make([]uint32, len(base.Edges))
	child1 := make([]uint32, len(base.Edges))
	child2 := make([]uint32, len(base.Edges))
	for i, e := range base.Edges {
		source[i], target[i], cost[i] = e.Source, e.Target, e.Cost
		child1[i], child2[i] = e.Child1, e.Child2
	}
	if err := writeUint32Slice(cw, source); err != nil {
		return fmt.Errorf("write edge source: %w", err)
	}
	if err := writeUint32Slice(cw, target); err != nil {
		return fmt.Errorf("write edge target: %w", err)
	}
	if err := writeUint32Slice(cw, cost); err != nil {
		return fmt.Errorf("write edge cost: %w", err)
	}
	if err := writeUint32Slice(cw, child1); err != nil {
		return fmt.Errorf("write edge child1: %w", err)
	}
	if err := writeUint32Slice(cw, child2); err != nil {
		return fmt.Errorf("write edge child2: %w", err)
	}

	checksum := cw.hash.Sum32()
	if err := binary.Write(f, binary.LittleEndian, checksum); err != nil {
		return fmt.Errorf("write CRC32: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("rename: %w", err)
	}
	return nil
}

// ReadBinary deserializes a Base previously written by WriteBinary.
func ReadBinary(path string) (Base, error) {
	f, err := os.Open(path)
	if err != nil {
		return Base{}, fmt.Errorf("open: %w", err)
	}
	defer f.Close()

	cr := &crc32Reader{r: f, hash: crc32.NewIEEE()}

	var hdr fileHeader
	if err := binary.Read(cr, binary.LittleEndian, &hdr); err != nil {
		return Base{}, fmt.Errorf("read header: %w", err)
	}
	if string(hdr.Magic[:]) != magicBytes {
		return Base{}, fmt.Errorf("invalid magic bytes: %q", hdr.Magic)
	}
	if hdr.Version != version {
		return Base{}, fmt.Errorf("unsupported version: %d", hdr.Version)
	}
	if hdr.NumNodes > maxNodes {
		return Base{}, fmt.Errorf("NumNodes %d exceeds limit %d", hdr.NumNodes, maxNodes)
	}
	if hdr.NumEdges > maxEdges {
		return Base{}, fmt.Errorf("NumEdges %d exceeds limit %d", hdr.NumEdges, maxEdges)
	}

	lat, err := readFloat64Slice(cr, int(hdr.NumNodes))
	if err != nil {
		return Base{}, fmt.Errorf("read node lat: %w", err)
	}
	lon, err := readFloat64Slice(cr, int(hdr.NumNodes))
	if err != nil {
		return Base{}, fmt.Errorf("read node lon: %w", err)
	}
	level, err := readUint32Slice(cr, int(hdr.NumNodes))
	if err != nil {
		return Base{}, fmt.Errorf("read node level: %w", err)
	}

	source, err := readUint32Slice(cr, int(hdr.NumEdges))
	if err != nil {
		return Base{}, fmt.Errorf("read edge source: %w", err)
	}
	target, err := readUint32Slice(cr, int(hdr.NumEdges))
	if err != nil {
		return Base{}, fmt.Errorf("read edge target: %w", err)
	}
	cost, err := readUint32Slice(cr, int(hdr.NumEdges))
	if err != nil {
		return Base{}, fmt.Errorf("read edge cost: %w", err)
	}
	child1, err := readUint32Slice(cr, int(hdr.NumEdges))
	if err != nil {
		return Base{}, fmt.Errorf("read edge child1: %w", err)
	}
	child2, err := readUint32Slice(cr, int(hdr.NumEdges))
	if err != nil {
		return Base{}, fmt.Errorf("read edge child2: %w", err)
	}

	expectedCRC := cr.hash.Sum32()
	var storedCRC uint32
	if err := binary.Read(f, binary.LittleEndian, &storedCRC); err != nil {
		return Base{}, fmt.Errorf("read CRC32: %w", err)
	}
	if storedCRC != expectedCRC {
		return Base{}, fmt.Errorf("CRC32 mismatch: stored=%08x computed=%08x", storedCRC, expectedCRC)
	}

	base := Base{
		Nodes: make([]Node, hdr.NumNodes),
		Edges: make([]Edge, hdr.NumEdges),
	}
	for i := range base.Nodes {
		base.Nodes[i] = Node{Lat: lat[i], Lon: lon[i], Level: level[i]}
	}
	for i := range base.Edges {
		base.Edges[i] = Edge{
			Source: source[i], Target: target[i], Cost: cost[i],
			Child1: child1[i], Child2: child2[i],
		}
	}
	return base, nil
}

// Zero-copy I/O helpers using unsafe.Slice.

func writeUint32Slice(w io.Writer, s []uint32) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*4)
	_, err := w.Write(b)
	return err
}

func writeFloat64Slice(w io.Writer, s []float64) error {
	if len(s) == 0 {
		return nil
	}
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), len(s)*8)
	_, err := w.Write(b)
	return err
}

func readUint32Slice(r io.Reader, n int) ([]uint32, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]uint32, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*4)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

func readFloat64Slice(r io.Reader, n int) ([]float64, error) {
	if n == 0 {
		return nil, nil
	}
	s := make([]float64, n)
	b := unsafe.Slice((*byte)(unsafe.Pointer(&s[0])), n*8)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return s, nil
}

// CRC32 wrapping writers/readers.

type crc32Writer struct {
	w    io.Writer
	hash crc32Hash
}

type crc32Hash interface {
	Write([]byte) (int, error)
	Sum32() uint32
}

func (cw *crc32Writer) Write(p []byte) (int, error) {
	cw.hash.Write(p)
	return cw.w.Write(p)
}

type crc32Reader struct {
	r    io.Reader
	hash crc32Hash
}

func (cr *crc32Reader) Read(p []byte) (int, error) {
	n, err := cr.r.Read(p)
	if n > 0 {
		cr.hash.Write(p[:n])
	}
	return n, err
}
