package sqfib

import "github.com/starkfib/sqfib-stark/internal/sqfib/stark"

// Config is the set of fixed parameters for the squared-Fibonacci example:
// trace length, domain sizes, blow-up factor, query count, and the seed
// pair and expected final value defining the statement being proved.
type Config = stark.Config

// Proof is the output of Prove: the compressed transcript a verifier needs,
// plus bookkeeping for reporting proof size.
type Proof = stark.Proof

// DefaultConfig returns the fixed parameters for the standard example run.
func DefaultConfig() *Config {
	return stark.DefaultConfig()
}
