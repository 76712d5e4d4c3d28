package stark

import (
	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
)

// Domains holds the trace domain G and the LDE coset domain L, both derived
// from the fixed generator 5 of the full multiplicative group (order
// 3*2^30). Every subgroup order used here is a power of two dividing
// 3*2^30, so both domains exist for any TraceDomainSize/LDEDomainSize pair
// that satisfies that divisibility.
type Domains struct {
	G []*field.Element // trace domain, |G| = TraceDomainSize
	L []*field.Element // LDE domain, |L| = LDEDomainSize, a coset of H
}

// generatorOfOrder returns a generator of the unique subgroup of order n of
// the multiplicative group generated by field.Generator, which has order
// 3*2^30. n must divide 3*2^30.
func generatorOfOrder(f *field.Field, n uint64) *field.Element {
	const groupOrder = uint64(3) << 30
	exponent := groupOrder / n
	return f.NewUint64(field.Generator).Pow(exponent)
}

// BuildDomains constructs G and L for the given configuration. G is the
// cyclic subgroup of order TraceDomainSize. L is the coset w*H where H is
// the cyclic subgroup of order LDEDomainSize and w is the fixed offset 5,
// chosen so L is disjoint from G (every trace-domain denominator that must
// vanish only inside G stays invertible on L).
func BuildDomains(f *field.Field, cfg *Config) *Domains {
	g := generatorOfOrder(f, uint64(cfg.TraceDomainSize))
	h := generatorOfOrder(f, uint64(cfg.LDEDomainSize))
	w := f.NewUint64(field.Generator)

	G := powersOf(g, cfg.TraceDomainSize)
	H := powersOf(h, cfg.LDEDomainSize)
	L := make([]*field.Element, len(H))
	for i, hv := range H {
		L[i] = w.Mul(hv)
	}

	return &Domains{G: G, L: L}
}

// powersOf returns [x^0, x^1, ..., x^(n-1)].
func powersOf(x *field.Element, n int) []*field.Element {
	out := make([]*field.Element, n)
	cur := x.Field().One()
	for i := 0; i < n; i++ {
		out[i] = cur
		cur = cur.Mul(x)
	}
	return out
}
