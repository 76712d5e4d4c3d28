package stark

import (
	"encoding/binary"
	"fmt"

	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
	"github.com/starkfib/sqfib-stark/internal/sqfib/merkletree"
)

// Opening bundles the two evaluations and authentication paths sent for one
// query at one layer: the value at the drawn index, the value at its
// blow-up-offset or domain-antipode partner, and a Merkle path for each.
type Opening struct {
	ValueA *field.Element
	ValueB *field.Element
	PathA  *merkletree.AuthPath
	PathB  *merkletree.AuthPath
}

// EncodeOpening serializes an opening as a single self-delimiting record:
// two 8-byte field elements, then each authentication path prefixed with
// its own 4-byte length.
func EncodeOpening(o *Opening) []byte {
	pathA := o.PathA.Encode()
	pathB := o.PathB.Encode()

	buf := make([]byte, 0, 16+4+len(pathA)+4+len(pathB))
	buf = append(buf, o.ValueA.Bytes()...)
	buf = append(buf, o.ValueB.Bytes()...)

	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(pathA)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, pathA...)

	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(pathB)))
	buf = append(buf, lenBuf[:]...)
	buf = append(buf, pathB...)

	return buf
}

// DecodeOpening parses the record EncodeOpening produces.
func DecodeOpening(buf []byte, f *field.Field) (*Opening, error) {
	if len(buf) < 20 {
		return nil, fmt.Errorf("stark: opening record too short (%d bytes)", len(buf))
	}
	valueA, err := f.FromBytes(buf[0:8])
	if err != nil {
		return nil, err
	}
	valueB, err := f.FromBytes(buf[8:16])
	if err != nil {
		return nil, err
	}
	offset := 16

	lenA := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	offset += 4
	if offset+lenA > len(buf) {
		return nil, fmt.Errorf("stark: opening record truncated reading path A")
	}
	pathA, err := merkletree.DecodeAuthPath(buf[offset : offset+lenA])
	if err != nil {
		return nil, err
	}
	offset += lenA

	if offset+4 > len(buf) {
		return nil, fmt.Errorf("stark: opening record truncated reading path B length")
	}
	lenB := int(binary.LittleEndian.Uint32(buf[offset : offset+4]))
	offset += 4
	if offset+lenB > len(buf) {
		return nil, fmt.Errorf("stark: opening record truncated reading path B")
	}
	pathB, err := merkletree.DecodeAuthPath(buf[offset : offset+lenB])
	if err != nil {
		return nil, err
	}

	return &Opening{ValueA: valueA, ValueB: valueB, PathA: pathA, PathB: pathB}, nil
}
