// Package channel implements the Fiat-Shamir transcript that turns the
// interactive protocol into a non-interactive one: every challenge the
// verifier would have drawn is instead derived by hashing everything the
// prover has sent so far.
package channel

import (
	"encoding/binary"
	"errors"
	"math/big"

	"golang.org/x/crypto/sha3"

	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
)

var errShortRead = errors.New("channel: compressed proof ended before expected record")

// Channel is an append-only byte log with two derived views: the full proof
// (every record, including drawn challenges, for debugging) and the
// compressed proof (only what the verifier needs to replay the transcript).
// A running state, the hash of the log so far, is what challenges are drawn
// from.
type Channel struct {
	state      []byte
	full       []byte
	compressed []byte
}

// New creates a channel with a fixed initial state, mirroring the teacher's
// convention of starting from a single zero byte rather than an empty slice.
func New() *Channel {
	return &Channel{state: []byte{0}}
}

func hash(data []byte) []byte {
	h := sha3.Sum256(data)
	return h[:]
}

func appendRecord(log []byte, data []byte) []byte {
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(data)))
	log = append(log, lenBuf[:]...)
	return append(log, data...)
}

// Send appends a length-prefixed record to both the full and compressed
// proof logs, then mixes it into the running state.
func (c *Channel) Send(data []byte) {
	c.full = appendRecord(c.full, data)
	c.compressed = appendRecord(c.compressed, data)
	c.state = hash(append(append([]byte(nil), c.state...), data...))
}

// ReceiveRandomFieldElement hashes the transcript state into a uniform
// digest, reduces it modulo the field's prime, and returns it as an
// element. The digest is mixed back into the state so the next draw is
// independent of this one.
func (c *Channel) ReceiveRandomFieldElement(f *field.Field) *field.Element {
	digest := hash(c.state)
	value := new(big.Int).SetBytes(digest)
	elem := f.New(value)
	c.full = appendRecord(c.full, []byte("field:"+elem.String()))
	c.state = hash(digest)
	return elem
}

// ReceiveRandomInt draws a uniform integer in [lo, hi] (inclusive). When
// recordInCompressed is false the drawn value is recorded only in the full
// log; the verifier is expected to re-derive it rather than read it back.
func (c *Channel) ReceiveRandomInt(lo, hi int, recordInCompressed bool) int {
	digest := hash(c.state)
	rangeSize := big.NewInt(int64(hi - lo + 1))
	value := new(big.Int).SetBytes(digest)
	value.Mod(value, rangeSize)
	drawn := lo + int(value.Int64())

	record := []byte("int:" + big.NewInt(int64(drawn)).String())
	c.full = appendRecord(c.full, record)
	if recordInCompressed {
		c.compressed = appendRecord(c.compressed, record)
	}
	c.state = hash(digest)
	return drawn
}

// ProofSize returns the byte length of the full proof log.
func (c *Channel) ProofSize() int { return len(c.full) }

// CompressedProofSize returns the byte length of the compressed proof log.
func (c *Channel) CompressedProofSize() int { return len(c.compressed) }

// CompressedProof returns a copy of the compressed proof log, the bytes a
// verifier actually needs.
func (c *Channel) CompressedProof() []byte {
	return append([]byte(nil), c.compressed...)
}

// State returns a copy of the current transcript state.
func (c *Channel) State() []byte {
	return append([]byte(nil), c.state...)
}

// Reader walks a compressed proof log record by record, in the order Send
// originally wrote them. The verifier pairs a Reader (to pull back the
// bytes the prover sent) with a fresh Channel (to re-derive the challenges
// those bytes produced), absorbing each record into the channel as it is
// read so the two stay in lockstep.
type Reader struct {
	data   []byte
	offset int
}

// NewReader wraps a compressed proof log for sequential reading.
func NewReader(compressed []byte) *Reader {
	return &Reader{data: compressed}
}

// Next returns the next length-prefixed record, advancing past it.
func (r *Reader) Next() ([]byte, error) {
	if r.offset+4 > len(r.data) {
		return nil, errShortRead
	}
	n := int(binary.LittleEndian.Uint32(r.data[r.offset : r.offset+4]))
	r.offset += 4
	if r.offset+n > len(r.data) {
		return nil, errShortRead
	}
	record := r.data[r.offset : r.offset+n]
	r.offset += n
	return record, nil
}

// Remaining reports whether unread records remain.
func (r *Reader) Remaining() bool { return r.offset < len(r.data) }
