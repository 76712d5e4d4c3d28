// Package stark implements the squared-Fibonacci STARK: trace generation,
// low-degree extension, constraint construction, FRI commitment, and the
// prover/verifier pipelines built on top of field, poly, merkletree, and
// channel.
package stark

import "fmt"

// Config holds the fixed parameters of the example computation. Every field
// has one correct value for this system; Config exists so the pipeline
// reads parameters from one place rather than scattering magic numbers, and
// so tests can exercise Q=1 or Q=0 without touching the pipeline itself.
type Config struct {
	TraceLength      int // number of trace values (1023)
	TraceDomainSize  int // |G| (1024)
	LDEDomainSize    int // |L| (8192)
	BlowUpFactor     int // LDEDomainSize / TraceDomainSize (8)
	Queries          int // number of FRI query rounds (Q)
	SeedA            uint64
	SeedB            uint64
	ExpectedFinal    uint64
}

// DefaultConfig returns the fixed parameters for the standard example run.
func DefaultConfig() *Config {
	return &Config{
		TraceLength:     1023,
		TraceDomainSize: 1024,
		LDEDomainSize:   8192,
		BlowUpFactor:    8,
		Queries:         4,
		SeedA:           1,
		SeedB:           3141592,
		ExpectedFinal:   2338775057,
	}
}

// Validate checks internal consistency of the configuration.
func (c *Config) Validate() error {
	if c.TraceLength <= 0 {
		return fmt.Errorf("stark: trace length must be positive")
	}
	if c.TraceDomainSize <= c.TraceLength {
		return fmt.Errorf("stark: trace domain size (%d) must exceed trace length (%d)", c.TraceDomainSize, c.TraceLength)
	}
	if c.BlowUpFactor <= 0 || c.LDEDomainSize != c.TraceDomainSize*c.BlowUpFactor {
		return fmt.Errorf("stark: LDE domain size (%d) must equal trace domain size (%d) times blow-up factor (%d)",
			c.LDEDomainSize, c.TraceDomainSize, c.BlowUpFactor)
	}
	if c.Queries < 0 {
		return fmt.Errorf("stark: query count cannot be negative")
	}
	// LDEDomainSize must be a power of two for the FRI fold to bottom out cleanly.
	if c.LDEDomainSize&(c.LDEDomainSize-1) != 0 {
		return fmt.Errorf("stark: LDE domain size (%d) must be a power of two", c.LDEDomainSize)
	}
	return nil
}

// MaxQueryIndex returns the largest index a query may draw, reserving room
// to read the blow-up-offset partner without wrapping past the domain end.
// For the standard configuration (8192, blow-up 8) this is 8176.
func (c *Config) MaxQueryIndex() int {
	return c.LDEDomainSize - 2*c.BlowUpFactor
}
