package merkletree

import (
	"bytes"
	"testing"
)

func sampleLeaves(n int) [][]byte {
	out := make([][]byte, n)
	for i := range out {
		out[i] = []byte{byte(i), byte(i * 7), byte(i * 13)}
	}
	return out
}

func TestRoundTripEvenLeafCount(t *testing.T) {
	data := sampleLeaves(8)
	tree, err := New(data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i, leaf := range data {
		path, err := tree.Path(i)
		if err != nil {
			t.Fatalf("Path(%d) failed: %v", i, err)
		}
		if !Validate(tree.Root(), path, leaf) {
			t.Fatalf("Validate failed for index %d", i)
		}
	}
}

func TestRoundTripOddLeafCount(t *testing.T) {
	data := sampleLeaves(11)
	tree, err := New(data)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	for i, leaf := range data {
		path, err := tree.Path(i)
		if err != nil {
			t.Fatalf("Path(%d) failed: %v", i, err)
		}
		if !Validate(tree.Root(), path, leaf) {
			t.Fatalf("Validate failed for index %d", i)
		}
	}
}

func TestValidateRejectsWrongLeaf(t *testing.T) {
	data := sampleLeaves(8)
	tree, _ := New(data)
	path, _ := tree.Path(3)
	if Validate(tree.Root(), path, []byte("not the real leaf")) {
		t.Fatal("expected Validate to reject a wrong leaf")
	}
}

func TestValidateRejectsTamperedRoot(t *testing.T) {
	data := sampleLeaves(8)
	tree, _ := New(data)
	path, _ := tree.Path(2)
	tamperedRoot := tree.Root()
	tamperedRoot[0] ^= 0xFF
	if Validate(tamperedRoot, path, data[2]) {
		t.Fatal("expected Validate to reject a tampered root")
	}
}

func TestAuthPathEncodeDecodeRoundTrip(t *testing.T) {
	data := sampleLeaves(13)
	tree, _ := New(data)
	path, err := tree.Path(9)
	if err != nil {
		t.Fatalf("Path failed: %v", err)
	}
	encoded := path.Encode()
	decoded, err := DecodeAuthPath(encoded)
	if err != nil {
		t.Fatalf("DecodeAuthPath failed: %v", err)
	}
	if decoded.Index != path.Index || decoded.TotalLeaves != path.TotalLeaves {
		t.Fatal("decoded index/total mismatch")
	}
	if len(decoded.Siblings) != len(path.Siblings) {
		t.Fatal("decoded sibling count mismatch")
	}
	for i := range path.Siblings {
		if !bytes.Equal(decoded.Siblings[i][:], path.Siblings[i][:]) {
			t.Fatalf("sibling %d mismatch after round trip", i)
		}
	}
	if !Validate(tree.Root(), decoded, data[9]) {
		t.Fatal("decoded path failed to validate")
	}
}

func TestValidateRejectsMismatchedTotalLeaves(t *testing.T) {
	data := sampleLeaves(8)
	tree, _ := New(data)
	path, _ := tree.Path(5)
	path.TotalLeaves = 4096
	if Validate(tree.Root(), path, data[5]) {
		t.Fatal("expected Validate to reject a path claiming the wrong tree size")
	}
}

func TestNewRejectsEmptyInput(t *testing.T) {
	if _, err := New(nil); err == nil {
		t.Fatal("expected error building a tree from zero leaves")
	}
}

func TestPathRejectsOutOfRangeIndex(t *testing.T) {
	tree, _ := New(sampleLeaves(4))
	if _, err := tree.Path(4); err == nil {
		t.Fatal("expected error for out-of-range index")
	}
	if _, err := tree.Path(-1); err == nil {
		t.Fatal("expected error for negative index")
	}
}
