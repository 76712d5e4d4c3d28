package poly

import (
	"math/rand"
	"testing"

	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
)

func TestDegreeSentinel(t *testing.T) {
	if Zero().Degree() != -1 {
		t.Fatalf("degree of zero polynomial must be -1, got %d", Zero().Degree())
	}
	f := field.DefaultField
	constant := New([]*field.Element{f.NewUint64(7)})
	if constant.Degree() != 0 {
		t.Fatalf("degree of non-zero constant must be 0, got %d", constant.Degree())
	}
}

func TestEvalHornerMatchesNaiveSum(t *testing.T) {
	f := field.DefaultField
	coeffs := make([]*field.Element, 10)
	for i := range coeffs {
		coeffs[i] = f.NewUint64(uint64(i*i + 3))
	}
	p := New(coeffs)
	x := f.NewUint64(123456)

	naive := f.Zero()
	power := f.One()
	for _, c := range coeffs {
		naive = naive.Add(c.Mul(power))
		power = power.Mul(x)
	}

	if !p.Eval(x).Equal(naive) {
		t.Fatal("Horner evaluation disagrees with naive sum evaluation")
	}
}

func TestLagrangeRoundTrip(t *testing.T) {
	f := field.DefaultField
	rng := rand.New(rand.NewSource(7))

	seen := map[uint64]bool{}
	var points []Point
	for len(points) < 6 {
		xv := uint64(rng.Intn(1000))
		if seen[xv] {
			continue
		}
		seen[xv] = true
		yv := uint64(rng.Intn(1000))
		points = append(points, Point{X: f.NewUint64(xv), Y: f.NewUint64(yv)})
	}

	p, err := LagrangeInterpolation(points)
	if err != nil {
		t.Fatalf("interpolation failed: %v", err)
	}
	for _, pt := range points {
		if !p.Eval(pt.X).Equal(pt.Y) {
			t.Fatalf("interpolated polynomial disagrees at x=%s", pt.X)
		}
	}
}

func TestLagrangeKnownPolynomial(t *testing.T) {
	// x^2 + 1 over a prime > 17, sampled at (0,1),(1,2),(2,5),(3,10),(4,17).
	prime := field.DefaultField // DefaultField's prime (3221225473) is > 17.
	points := []Point{
		{X: prime.NewUint64(0), Y: prime.NewUint64(1)},
		{X: prime.NewUint64(1), Y: prime.NewUint64(2)},
		{X: prime.NewUint64(2), Y: prime.NewUint64(5)},
		{X: prime.NewUint64(3), Y: prime.NewUint64(10)},
		{X: prime.NewUint64(4), Y: prime.NewUint64(17)},
	}
	p, err := LagrangeInterpolation(points)
	if err != nil {
		t.Fatalf("interpolation failed: %v", err)
	}
	if p.Degree() != 2 {
		t.Fatalf("expected degree 2, got %d", p.Degree())
	}
	if !p.Coefficient(0, prime).IsOne() {
		t.Fatalf("expected constant term 1, got %s", p.Coefficient(0, prime))
	}
	if !p.Coefficient(1, prime).IsZero() {
		t.Fatalf("expected x coefficient 0, got %s", p.Coefficient(1, prime))
	}
	if !p.Coefficient(2, prime).IsOne() {
		t.Fatalf("expected x^2 coefficient 1, got %s", p.Coefficient(2, prime))
	}
}

func TestDivExactRejectsNonZeroRemainder(t *testing.T) {
	f := field.DefaultField
	// (x^2 + 1) / (x - 1) has remainder 2, since 1^2 + 1 = 2 != 0.
	num := New([]*field.Element{f.NewUint64(1), f.NewUint64(0), f.NewUint64(1)}) // 1 + x^2
	den := New([]*field.Element{f.NewUint64(field.Prime - 1), f.NewUint64(1)})   // x - 1
	if _, err := num.DivExact(den); err == nil {
		t.Fatal("expected error for non-zero remainder")
	}
}

func TestDivExactAcceptsExactDivision(t *testing.T) {
	f := field.DefaultField
	// (x^2 - 1) / (x - 1) = x + 1, remainder 0.
	num := New([]*field.Element{f.NewUint64(field.Prime - 1), f.NewUint64(0), f.NewUint64(1)})
	den := New([]*field.Element{f.NewUint64(field.Prime - 1), f.NewUint64(1)})
	q, err := num.DivExact(den)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	expected := New([]*field.Element{f.NewUint64(1), f.NewUint64(1)})
	for i := 0; i <= 1; i++ {
		if !q.Coefficient(i, f).Equal(expected.Coefficient(i, f)) {
			t.Fatalf("quotient mismatch at coefficient %d", i)
		}
	}
}

func TestComposeMonomial(t *testing.T) {
	f := field.DefaultField
	// p(x) = 1 + 2x, p(x^3) = 1 + 2x^3
	p := New([]*field.Element{f.NewUint64(1), f.NewUint64(2)})
	composed := p.ComposeMonomial(3)
	if composed.Degree() != 3 {
		t.Fatalf("expected degree 3, got %d", composed.Degree())
	}
	if !composed.Coefficient(0, f).Equal(f.NewUint64(1)) || !composed.Coefficient(3, f).Equal(f.NewUint64(2)) {
		t.Fatal("ComposeMonomial did not shift coefficients correctly")
	}
}

func TestComposeAffine(t *testing.T) {
	f := field.DefaultField
	// p(x) = 1 + x + x^2, p(c*x) = 1 + c*x + c^2*x^2
	p := New([]*field.Element{f.NewUint64(1), f.NewUint64(1), f.NewUint64(1)})
	c := f.NewUint64(5)
	composed := p.ComposeAffine(c)
	if !composed.Coefficient(1, f).Equal(c) {
		t.Fatal("ComposeAffine coefficient 1 mismatch")
	}
	if !composed.Coefficient(2, f).Equal(c.Mul(c)) {
		t.Fatal("ComposeAffine coefficient 2 mismatch")
	}
}
