// Package sqfib provides a didactic STARK prover and verifier for the
// squared-Fibonacci recurrence a[n+2] = a[n+1]^2 + a[n]^2, evaluated over
// the fixed prime field p = 3*2^30 + 1.
//
// # Quick start
//
//	cfg := sqfib.DefaultConfig()
//	proof, err := sqfib.Prove(cfg, nil)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	if err := sqfib.Verify(cfg, proof.Compressed); err != nil {
//		log.Fatal(err)
//	}
//
// # Architecture
//
// - pkg/sqfib/: public API (this package)
// - internal/sqfib/: field, polynomial, Merkle, channel, and STARK pipeline
//
// The public API wraps internal/sqfib/stark's plain errors into the typed
// Error kinds in errors.go (Domain, Commitment, Protocol, Folding, IO), so
// callers can branch on failure category with errors.Is.
package sqfib
