package chgraph

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestWriteReadBinaryRoundTrip(t *testing.T) {
	b := toyBase()
	path := filepath.Join(t.TempDir(), "toy.chgraph")

	if err := WriteBinary(path, b); err != nil {
		t.Fatalf("WriteBinary() = %v", err)
	}
	got, err := ReadBinary(path)
	if err != nil {
		t.Fatalf("ReadBinary() = %v", err)
	}
	if !reflect.DeepEqual(got, b) {
		t.Errorf("round trip mismatch:\ngot  %+v\nwant %+v", got, b)
	}
}

func TestReadBinaryRejectsCorruption(t *testing.T) {
	b := toyBase()
	path := filepath.Join(t.TempDir(), "toy.chgraph")
	if err := WriteBinary(path, b); err != nil {
		t.Fatalf("WriteBinary() = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	data[len(data)-1] ^= 0xFF // flip a byte in the trailing CRC32
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := ReadBinary(path); err == nil {
		t.Fatal("ReadBinary() = nil error, want CRC32 mismatch")
	}
}
