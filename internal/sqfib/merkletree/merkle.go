// Package merkletree implements a binary Merkle tree over SHA-256, used to
// commit to polynomial evaluations over the LDE domain and to each FRI
// layer's evaluations.
package merkletree

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"
)

// Tree is a binary Merkle tree built from leaf-level byte records. An odd
// node count at any level is completed by duplicating the last node, so
// every level has an even number of entries above the root.
type Tree struct {
	root   [32]byte
	leaves [][32]byte
	levels [][][32]byte
}

// AuthPath is a self-contained authentication path: everything Validate
// needs to recompute the root and compare it against a claimed one, without
// consulting the tree that produced it.
type AuthPath struct {
	Index       int
	TotalLeaves int
	Siblings    [][32]byte
}

func leafHash(data []byte) [32]byte {
	return sha256.Sum256(data)
}

func nodeHash(left, right [32]byte) [32]byte {
	var buf [64]byte
	copy(buf[:32], left[:])
	copy(buf[32:], right[:])
	return sha256.Sum256(buf[:])
}

// New builds a tree from leaf records, hashing each one.
func New(data [][]byte) (*Tree, error) {
	if len(data) == 0 {
		return nil, fmt.Errorf("merkletree: cannot build a tree from zero leaves")
	}

	leaves := make([][32]byte, len(data))
	for i, item := range data {
		leaves[i] = leafHash(item)
	}

	levels := [][][32]byte{leaves}
	current := leaves
	for len(current) > 1 {
		next := make([][32]byte, 0, (len(current)+1)/2)
		for i := 0; i < len(current); i += 2 {
			if i+1 < len(current) {
				next = append(next, nodeHash(current[i], current[i+1]))
			} else {
				next = append(next, nodeHash(current[i], current[i]))
			}
		}
		levels = append(levels, next)
		current = next
	}

	return &Tree{root: current[0], leaves: leaves, levels: levels}, nil
}

// Root returns the tree's root hash.
func (t *Tree) Root() [32]byte { return t.root }

// NumLeaves returns the number of leaves the tree was built from.
func (t *Tree) NumLeaves() int { return len(t.leaves) }

// Path builds the authentication path for the leaf at index.
func (t *Tree) Path(index int) (*AuthPath, error) {
	if index < 0 || index >= len(t.leaves) {
		return nil, fmt.Errorf("merkletree: index %d out of range [0, %d)", index, len(t.leaves))
	}

	var siblings [][32]byte
	current := index
	for level := 0; level < len(t.levels)-1; level++ {
		nodes := t.levels[level]
		var siblingIndex int
		if current%2 == 0 {
			siblingIndex = current + 1
		} else {
			siblingIndex = current - 1
		}
		if siblingIndex < len(nodes) {
			siblings = append(siblings, nodes[siblingIndex])
		} else {
			siblings = append(siblings, nodes[current])
		}
		current /= 2
	}

	return &AuthPath{Index: index, TotalLeaves: len(t.leaves), Siblings: siblings}, nil
}

// expectedPathLength returns the number of sibling hashes a path for a tree
// of totalLeaves leaves must carry, following the same halving structure New
// uses to build levels.
func expectedPathLength(totalLeaves int) int {
	n := 0
	for size := totalLeaves; size > 1; size = (size + 1) / 2 {
		n++
	}
	return n
}

// Validate recomputes the root from leaf, path, and the claimed index, and
// reports whether it matches root. It is self-contained: it needs nothing
// from the tree that produced the path, only the path itself.
func Validate(root [32]byte, path *AuthPath, leaf []byte) bool {
	if path.Index < 0 || path.Index >= path.TotalLeaves {
		return false
	}
	if len(path.Siblings) != expectedPathLength(path.TotalLeaves) {
		return false
	}

	hash := leafHash(leaf)
	index := path.Index

	for _, sibling := range path.Siblings {
		if index%2 == 0 {
			hash = nodeHash(hash, sibling)
		} else {
			hash = nodeHash(sibling, hash)
		}
		index /= 2
	}

	return hash == root
}

// Encode serializes an authentication path as a fixed-width byte record:
// a 4-byte index, a 4-byte total-leaf count, then 32 bytes per sibling.
func (p *AuthPath) Encode() []byte {
	buf := make([]byte, 8+32*len(p.Siblings))
	binary.LittleEndian.PutUint32(buf[0:4], uint32(p.Index))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(p.TotalLeaves))
	for i, s := range p.Siblings {
		copy(buf[8+32*i:8+32*(i+1)], s[:])
	}
	return buf
}

// DecodeAuthPath parses the fixed-width encoding Encode produces.
func DecodeAuthPath(buf []byte) (*AuthPath, error) {
	if len(buf) < 8 {
		return nil, fmt.Errorf("merkletree: auth path record too short (%d bytes)", len(buf))
	}
	if (len(buf)-8)%32 != 0 {
		return nil, fmt.Errorf("merkletree: auth path record has a partial sibling (%d bytes of sibling data)", len(buf)-8)
	}
	index := int(binary.LittleEndian.Uint32(buf[0:4]))
	total := int(binary.LittleEndian.Uint32(buf[4:8]))
	n := (len(buf) - 8) / 32
	siblings := make([][32]byte, n)
	for i := 0; i < n; i++ {
		copy(siblings[i][:], buf[8+32*i:8+32*(i+1)])
	}
	return &AuthPath{Index: index, TotalLeaves: total, Siblings: siblings}, nil
}
