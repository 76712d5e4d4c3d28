package stark

import (
	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
	"github.com/starkfib/sqfib-stark/internal/sqfib/poly"
)

// InterpolateTrace returns the unique polynomial of degree < TraceLength
// passing through (G[i], trace[i]) for i in [0, TraceLength).
func InterpolateTrace(trace []*field.Element, domains *Domains) (*poly.Polynomial, error) {
	points := make([]poly.Point, len(trace))
	for i, v := range trace {
		points[i] = poly.Point{X: domains.G[i], Y: v}
	}
	return poly.LagrangeInterpolation(points)
}

// linearFactor returns the polynomial (x - root).
func linearFactor(root *field.Element) *poly.Polynomial {
	f := root.Field()
	return poly.New([]*field.Element{root.Neg(), f.One()})
}

// ConstraintPolynomials holds the three constraint quotients p0, p1, p2.
// Each must divide exactly; a non-zero remainder means the trace used to
// build f does not satisfy that constraint.
type ConstraintPolynomials struct {
	P0 *poly.Polynomial
	P1 *poly.Polynomial
	P2 *poly.Polynomial
}

// BuildConstraints forms p0, p1, p2 from the trace polynomial f and the
// trace-domain generator's powers. cfg.TraceLength and cfg.TraceDomainSize
// determine where the boundary and transition constraints are anchored.
func BuildConstraints(f *poly.Polynomial, domains *Domains, cfg *Config, fld *field.Field) (*ConstraintPolynomials, error) {
	n := cfg.TraceDomainSize

	// p0 = (f(x) - a_0) / (x - g^0): boundary at the first trace step.
	boundaryStart := f.Sub(poly.New([]*field.Element{fld.NewUint64(cfg.SeedA)}))
	p0, err := boundaryStart.DivExact(linearFactor(domains.G[0]))
	if err != nil {
		return nil, err
	}

	// p1 = (f(x) - expected_final) / (x - g^{TraceLength-1}): boundary at
	// the last trace step.
	lastIndex := cfg.TraceLength - 1
	boundaryEnd := f.Sub(poly.New([]*field.Element{fld.NewUint64(cfg.ExpectedFinal)}))
	p1, err := boundaryEnd.DivExact(linearFactor(domains.G[lastIndex]))
	if err != nil {
		return nil, err
	}

	// p2 = (f(g^2 x) - f(g x)^2 - f(x)^2) * Z*(x) / (x^n - 1), where Z*(x)
	// excludes the last three points of G (the recurrence only holds for
	// TraceLength-2 transitions, so it is not asserted at the final three
	// indices).
	g := domains.G[1]
	g2 := g.Mul(g)
	fGx := f.ComposeAffine(g)
	fG2x := f.ComposeAffine(g2)
	transitionNumerator := fG2x.Sub(fGx.Mul(fGx)).Sub(f.Mul(f))

	zStar := poly.New([]*field.Element{fld.One()})
	for _, idx := range []int{n - 3, n - 2, n - 1} {
		zStar = zStar.Mul(linearFactor(domains.G[idx]))
	}
	transitionNumerator = transitionNumerator.Mul(zStar)

	vanishing := poly.Monomial(n, fld.One()).Sub(poly.New([]*field.Element{fld.One()}))
	p2, err := transitionNumerator.DivExact(vanishing)
	if err != nil {
		return nil, err
	}

	return &ConstraintPolynomials{P0: p0, P1: p1, P2: p2}, nil
}

// Compose builds cp = alpha0*p0 + alpha1*p1 + alpha2*p2.
func (c *ConstraintPolynomials) Compose(alpha0, alpha1, alpha2 *field.Element) *poly.Polynomial {
	return c.P0.MulScalar(alpha0).Add(c.P1.MulScalar(alpha1)).Add(c.P2.MulScalar(alpha2))
}

// EvaluateOn evaluates p at every point of domain.
func EvaluateOn(p *poly.Polynomial, domain []*field.Element) []*field.Element {
	out := make([]*field.Element, len(domain))
	for i, x := range domain {
		out[i] = p.Eval(x)
	}
	return out
}
