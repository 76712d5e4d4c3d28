// Command sqfib-prove runs the fixed squared-Fibonacci example end to end:
// it proves the statement and immediately verifies the resulting proof,
// printing progress and a final summary.
package main

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/starkfib/sqfib-stark/pkg/sqfib"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).With().Timestamp().Logger()

	cfg := sqfib.DefaultConfig()
	start := time.Now()

	log.Info().
		Int("trace_length", cfg.TraceLength).
		Int("lde_domain_size", cfg.LDEDomainSize).
		Int("queries", cfg.Queries).
		Msg("starting squared-Fibonacci STARK run")

	proof, err := sqfib.Prove(cfg, func(stage string) {
		log.Info().Str("stage", stage).Msg("pipeline stage complete")
	})
	if err != nil {
		log.Error().Err(err).Msg("proof generation failed")
		os.Exit(1)
	}

	log.Info().
		Uint64("trace_final_value", proof.FinalTrace.Uint64()).
		Int("proof_size_bytes", proof.ProofSize).
		Int("compressed_proof_size_bytes", proof.CompressedSize).
		Msg("proof generated")

	if err := sqfib.Verify(cfg, proof.Compressed); err != nil {
		log.Error().Err(err).Msg("verification failed")
		os.Exit(1)
	}

	log.Info().
		Dur("elapsed", time.Since(start)).
		Msg("proof verified successfully")
}
