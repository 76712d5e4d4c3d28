// Package poly implements dense univariate polynomials over field.Element.
package poly

import (
	"fmt"
	"strings"

	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
)

// Polynomial is a sequence of coefficients in ascending degree order. The
// zero polynomial is represented by an empty coefficient slice; every other
// polynomial has a non-zero trailing (highest-degree) coefficient.
type Polynomial struct {
	coeffs []*field.Element
}

// Point is an (x, y) pair used for interpolation.
type Point struct {
	X *field.Element
	Y *field.Element
}

// New builds a canonical polynomial from coefficients in ascending degree
// order, trimming trailing zeros.
func New(coeffs []*field.Element) *Polynomial {
	end := len(coeffs)
	for end > 0 && coeffs[end-1].IsZero() {
		end--
	}
	trimmed := make([]*field.Element, end)
	copy(trimmed, coeffs[:end])
	return &Polynomial{coeffs: trimmed}
}

// Zero returns the zero polynomial.
func Zero() *Polynomial { return &Polynomial{} }

// Monomial returns the single-term polynomial coeff*x^degree.
func Monomial(degree int, coeff *field.Element) *Polynomial {
	coeffs := make([]*field.Element, degree+1)
	for i := range coeffs {
		coeffs[i] = coeff.Field().Zero()
	}
	coeffs[degree] = coeff
	return New(coeffs)
}

// Degree returns -1 for the zero polynomial, otherwise the highest
// coefficient index with a non-zero value.
func (p *Polynomial) Degree() int { return len(p.coeffs) - 1 }

// IsZero reports whether p is the zero polynomial.
func (p *Polynomial) IsZero() bool { return len(p.coeffs) == 0 }

// Coefficient returns the coefficient of x^degree, or the field's zero if
// degree is out of range.
func (p *Polynomial) Coefficient(degree int, f *field.Field) *field.Element {
	if degree < 0 || degree >= len(p.coeffs) {
		return f.Zero()
	}
	return p.coeffs[degree]
}

// LeadingCoefficient returns the highest-degree coefficient. Panics on the
// zero polynomial, which has no highest-degree term (Degree reports -1).
func (p *Polynomial) LeadingCoefficient() *field.Element {
	if p.IsZero() {
		panic("poly: zero polynomial has no leading coefficient")
	}
	return p.coeffs[len(p.coeffs)-1]
}

// Coefficients returns a defensive copy of the coefficient slice.
func (p *Polynomial) Coefficients() []*field.Element {
	out := make([]*field.Element, len(p.coeffs))
	copy(out, p.coeffs)
	return out
}

// Eval evaluates p at x using Horner's method.
func (p *Polynomial) Eval(x *field.Element) *field.Element {
	if p.IsZero() {
		return x.Field().Zero()
	}
	result := p.coeffs[len(p.coeffs)-1]
	for i := len(p.coeffs) - 2; i >= 0; i-- {
		result = result.Mul(x).Add(p.coeffs[i])
	}
	return result
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// Add returns p + other.
func (p *Polynomial) Add(other *Polynomial) *Polynomial {
	n := maxInt(len(p.coeffs), len(other.coeffs))
	if n == 0 {
		return Zero()
	}
	f := fieldOf(p, other)
	out := make([]*field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i, f).Add(other.Coefficient(i, f))
	}
	return New(out)
}

// Sub returns p - other.
func (p *Polynomial) Sub(other *Polynomial) *Polynomial {
	n := maxInt(len(p.coeffs), len(other.coeffs))
	if n == 0 {
		return Zero()
	}
	f := fieldOf(p, other)
	out := make([]*field.Element, n)
	for i := 0; i < n; i++ {
		out[i] = p.Coefficient(i, f).Sub(other.Coefficient(i, f))
	}
	return New(out)
}

// fieldOf finds a field to use for zero-padding when one operand is the
// zero polynomial (which carries no field of its own).
func fieldOf(a, b *Polynomial) *field.Field {
	if !a.IsZero() {
		return a.coeffs[0].Field()
	}
	if !b.IsZero() {
		return b.coeffs[0].Field()
	}
	panic("poly: cannot determine field of two zero polynomials")
}

// MulScalar multiplies every coefficient by scalar.
func (p *Polynomial) MulScalar(scalar *field.Element) *Polynomial {
	if p.IsZero() {
		return Zero()
	}
	out := make([]*field.Element, len(p.coeffs))
	for i, c := range p.coeffs {
		out[i] = c.Mul(scalar)
	}
	return New(out)
}

// Mul returns p * other via schoolbook convolution.
func (p *Polynomial) Mul(other *Polynomial) *Polynomial {
	if p.IsZero() || other.IsZero() {
		return Zero()
	}
	f := p.coeffs[0].Field()
	out := make([]*field.Element, len(p.coeffs)+len(other.coeffs)-1)
	for i := range out {
		out[i] = f.Zero()
	}
	for i, a := range p.coeffs {
		for j, b := range other.coeffs {
			out[i+j] = out[i+j].Add(a.Mul(b))
		}
	}
	return New(out)
}

// ComposeMonomial returns p(x^k): inserting k-1 zeros between adjacent
// coefficients (a coefficient-index shift by a factor of k).
func (p *Polynomial) ComposeMonomial(k int) *Polynomial {
	if p.IsZero() || k == 1 {
		return New(p.Coefficients())
	}
	out := make([]*field.Element, (len(p.coeffs)-1)*k+1)
	f := p.coeffs[0].Field()
	for i := range out {
		out[i] = f.Zero()
	}
	for i, c := range p.coeffs {
		out[i*k] = c
	}
	return New(out)
}

// ComposeAffine returns p(c*x): the ith coefficient scaled by c^i. This is
// the constant-multiplier substitution used for f(g*x) and f(g^2*x).
func (p *Polynomial) ComposeAffine(c *field.Element) *Polynomial {
	if p.IsZero() {
		return Zero()
	}
	out := make([]*field.Element, len(p.coeffs))
	power := c.Field().One()
	for i, coeff := range p.coeffs {
		out[i] = coeff.Mul(power)
		if i+1 < len(p.coeffs) {
			power = power.Mul(c)
		}
	}
	return New(out)
}

// DivRem divides p by other, returning (quotient, remainder) such that
// p = quotient*other + remainder and deg(remainder) < deg(other).
func (p *Polynomial) DivRem(other *Polynomial) (*Polynomial, *Polynomial, error) {
	if other.IsZero() {
		return nil, nil, fmt.Errorf("poly: division by zero polynomial")
	}
	if p.IsZero() || p.Degree() < other.Degree() {
		return Zero(), New(p.Coefficients()), nil
	}

	f := other.coeffs[0].Field()
	remainder := make([]*field.Element, len(p.coeffs))
	copy(remainder, p.coeffs)

	quotientLen := p.Degree() - other.Degree() + 1
	quotient := make([]*field.Element, quotientLen)
	leadingOther := other.LeadingCoefficient()

	for i := quotientLen - 1; i >= 0; i-- {
		remDeg := i + other.Degree()
		if remainder[remDeg].IsZero() {
			quotient[i] = f.Zero()
			continue
		}
		coeff, err := remainder[remDeg].Div(leadingOther)
		if err != nil {
			return nil, nil, fmt.Errorf("poly: division failed: %w", err)
		}
		quotient[i] = coeff
		for j, oc := range other.coeffs {
			remainder[i+j] = remainder[i+j].Sub(coeff.Mul(oc))
		}
	}

	return New(quotient), New(remainder), nil
}

// DivExact divides p by other and requires a zero remainder; used for the
// constraint quotients, where a non-zero remainder means the claimed trace
// does not satisfy the constraint. Callers surface the error as a domain
// error per the protocol's error-handling design.
func (p *Polynomial) DivExact(other *Polynomial) (*Polynomial, error) {
	q, r, err := p.DivRem(other)
	if err != nil {
		return nil, err
	}
	if !r.IsZero() {
		return nil, fmt.Errorf("poly: non-zero remainder (degree %d) dividing by degree %d polynomial: exact division required", r.Degree(), other.Degree())
	}
	return q, nil
}

// LagrangeInterpolation returns the unique polynomial of degree < len(points)
// passing through every given point.
func LagrangeInterpolation(points []Point) (*Polynomial, error) {
	if len(points) == 0 {
		return nil, fmt.Errorf("poly: need at least one point to interpolate")
	}
	f := points[0].X.Field()

	numerator := New([]*field.Element{f.One()})
	for _, pt := range points {
		term := New([]*field.Element{pt.X.Neg(), f.One()})
		numerator = numerator.Mul(term)
	}

	result := Zero()
	for i, pi := range points {
		denom := f.One()
		for j, pj := range points {
			if i == j {
				continue
			}
			diff := pi.X.Sub(pj.X)
			if diff.IsZero() {
				return nil, fmt.Errorf("poly: duplicate x-coordinate %s", pi.X)
			}
			denom = denom.Mul(diff)
		}

		xMinusXi := New([]*field.Element{pi.X.Neg(), f.One()})
		basisNumerator, rem, err := numerator.DivRem(xMinusXi)
		if err != nil || !rem.IsZero() {
			return nil, fmt.Errorf("poly: interpolation basis division failed")
		}

		scale, err := pi.Y.Div(denom)
		if err != nil {
			return nil, fmt.Errorf("poly: interpolation failed: %w", err)
		}
		result = result.Add(basisNumerator.MulScalar(scale))
	}

	return result, nil
}

// String renders the polynomial for debugging.
func (p *Polynomial) String() string {
	if p.IsZero() {
		return "0"
	}
	var terms []string
	for i := len(p.coeffs) - 1; i >= 0; i-- {
		c := p.coeffs[i]
		if c.IsZero() {
			continue
		}
		switch i {
		case 0:
			terms = append(terms, c.String())
		case 1:
			terms = append(terms, fmt.Sprintf("%sx", c.String()))
		default:
			terms = append(terms, fmt.Sprintf("%sx^%d", c.String(), i))
		}
	}
	return strings.Join(terms, " + ")
}
