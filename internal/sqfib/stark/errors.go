package stark

import "errors"

// Sentinel errors classifying verification failures, so callers can branch
// with errors.Is without parsing messages. The pkg/sqfib facade maps these
// onto its public error kinds.
var (
	// ErrCommitment means a Merkle authentication path failed to validate
	// against its claimed root.
	ErrCommitment = errors.New("stark: commitment invalid")
	// ErrFolding means a FRI layer's opened values did not fold to the
	// value the next layer (or the final constant) claims.
	ErrFolding = errors.New("stark: folding inconsistency")
	// ErrProtocol means an opened index did not match the index the
	// transcript says should have been drawn.
	ErrProtocol = errors.New("stark: transcript index mismatch")
)
