package sqfib

import (
	"errors"

	"github.com/starkfib/sqfib-stark/internal/sqfib/stark"
)

// ProgressFunc is invoked after each named pipeline stage, letting a caller
// (typically a CLI) report progress without the prover depending on any
// particular logger.
type ProgressFunc = stark.ProgressFunc

// Prove runs the full prover pipeline for cfg: trace generation,
// interpolation, low-degree extension, Merkle commitment, constraint
// construction, composition, FRI commitment, and the query phase. A
// corrupted trace (one that fails the recurrence) surfaces as a Domain
// error from the non-zero constraint remainder check.
func Prove(cfg *Config, progress ProgressFunc) (*Proof, error) {
	proof, err := stark.Prove(cfg, progress)
	if err != nil {
		return nil, Domain("proving failed", err)
	}
	return proof, nil
}

// Verify replays the transcript recorded in a compressed proof and checks
// every Merkle commitment and FRI folding relation it opens.
func Verify(cfg *Config, compressed []byte) error {
	err := stark.Verify(cfg, compressed)
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, stark.ErrCommitment):
		return Commitment("verification failed", err)
	case errors.Is(err, stark.ErrFolding):
		return Folding("verification failed", err)
	case errors.Is(err, stark.ErrProtocol):
		return Protocol("verification failed", err)
	default:
		return Domain("verification failed", err)
	}
}
