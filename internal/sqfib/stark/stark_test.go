package stark

import (
	"errors"
	"testing"

	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
	"github.com/starkfib/sqfib-stark/internal/sqfib/poly"
)

func TestGenerateTraceMatchesExpectedFinalValue(t *testing.T) {
	cfg := DefaultConfig()
	trace := GenerateTrace(field.DefaultField, cfg)
	if len(trace) != cfg.TraceLength {
		t.Fatalf("expected %d trace entries, got %d", cfg.TraceLength, len(trace))
	}
	last := trace[len(trace)-1]
	if last.Uint64() != cfg.ExpectedFinal {
		t.Fatalf("expected trace[%d] = %d, got %d", len(trace)-1, cfg.ExpectedFinal, last.Uint64())
	}
}

func TestDomainsHaveExpectedSizesAndAreDisjoint(t *testing.T) {
	cfg := DefaultConfig()
	f := field.DefaultField
	domains := BuildDomains(f, cfg)
	if len(domains.G) != cfg.TraceDomainSize {
		t.Fatalf("expected |G| = %d, got %d", cfg.TraceDomainSize, len(domains.G))
	}
	if len(domains.L) != cfg.LDEDomainSize {
		t.Fatalf("expected |L| = %d, got %d", cfg.LDEDomainSize, len(domains.L))
	}

	inG := map[uint64]bool{}
	for _, x := range domains.G {
		inG[x.Uint64()] = true
	}
	for _, x := range domains.L {
		if inG[x.Uint64()] {
			t.Fatalf("LDE domain point %s unexpectedly also in trace domain", x)
		}
	}
}

func TestConstraintsDivideExactlyOnHonestTrace(t *testing.T) {
	cfg := DefaultConfig()
	f := field.DefaultField
	domains := BuildDomains(f, cfg)
	trace := GenerateTrace(f, cfg)

	tracePoly, err := InterpolateTrace(trace, domains)
	if err != nil {
		t.Fatalf("interpolation failed: %v", err)
	}
	if _, err := BuildConstraints(tracePoly, domains, cfg, f); err != nil {
		t.Fatalf("expected exact constraint division on honest trace, got: %v", err)
	}
}

func TestConstraintsFailOnCorruptedTrace(t *testing.T) {
	cfg := DefaultConfig()
	f := field.DefaultField
	domains := BuildDomains(f, cfg)
	trace := GenerateTrace(f, cfg)
	trace[500] = trace[500].Add(f.One())

	tracePoly, err := InterpolateTrace(trace, domains)
	if err != nil {
		t.Fatalf("interpolation failed: %v", err)
	}
	if _, err := BuildConstraints(tracePoly, domains, cfg, f); err == nil {
		t.Fatal("expected constraint construction to fail on a corrupted trace")
	}
}

func TestFRIFoldIdentityHoldsAcrossDomain(t *testing.T) {
	f := field.DefaultField
	cfg := DefaultConfig()
	domains := BuildDomains(f, cfg)

	coeffs := make([]*field.Element, 16)
	for i := range coeffs {
		coeffs[i] = f.NewUint64(uint64(i*3 + 1))
	}
	p := poly.New(coeffs)
	beta := f.NewUint64(7)
	folded := FoldPolynomial(p, beta, f)

	half := len(domains.L) / 2
	for i := 0; i < half; i++ {
		x := domains.L[i]
		negX := domains.L[i+half]
		fx := p.Eval(x)
		fNegX := p.Eval(negX)

		got, err := FoldEval(x, fx, fNegX, beta, f)
		if err != nil {
			t.Fatalf("FoldEval failed: %v", err)
		}
		want := folded.Eval(x.Square())
		if !got.Equal(want) {
			t.Fatalf("fold identity mismatch at i=%d", i)
		}
	}
}

func TestEndToEndHonestProofVerifies(t *testing.T) {
	cfg := DefaultConfig()
	proof, err := Prove(cfg, nil)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if proof.FinalTrace.Uint64() != cfg.ExpectedFinal {
		t.Fatalf("expected final trace value %d, got %d", cfg.ExpectedFinal, proof.FinalTrace.Uint64())
	}
	if err := Verify(cfg, proof.Compressed); err != nil {
		t.Fatalf("expected honest proof to verify, got: %v", err)
	}
}

func TestEndToEndSingleQueryStillVerifies(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Queries = 1
	proof, err := Prove(cfg, nil)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if err := Verify(cfg, proof.Compressed); err != nil {
		t.Fatalf("expected single-query proof to verify, got: %v", err)
	}
}

func TestEndToEndZeroQueriesVerifiesTrivially(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Queries = 0
	proof, err := Prove(cfg, nil)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	if err := Verify(cfg, proof.Compressed); err != nil {
		t.Fatalf("expected zero-query proof to verify trivially, got: %v", err)
	}
}

func TestTamperedMerkleRootFailsCommitment(t *testing.T) {
	cfg := DefaultConfig()
	proof, err := Prove(cfg, nil)
	if err != nil {
		t.Fatalf("Prove failed: %v", err)
	}
	tampered := append([]byte(nil), proof.Compressed...)
	// The first record is a 4-byte length prefix followed by the 32-byte
	// trace Merkle root; flip a byte inside it.
	tampered[4] ^= 0xFF

	err = Verify(cfg, tampered)
	if err == nil {
		t.Fatal("expected verification to fail after tampering with a committed root")
	}
	if !errors.Is(err, ErrCommitment) {
		t.Fatalf("expected a commitment error, got: %v", err)
	}
}
