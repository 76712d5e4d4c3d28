// Package field implements modular arithmetic over the fixed prime
// p = 3*2^30 + 1 used by the squared-Fibonacci STARK.
package field

import (
	"encoding/binary"
	"fmt"
	"math/big"
)

// Prime is the field modulus, chosen so the multiplicative group has order
// 3*2^30, giving subgroups of every size 2^k for k <= 30.
const Prime uint64 = 3221225473

// Generator is a generator of the full multiplicative group.
const Generator uint64 = 5

// Field carries the modulus. There is only ever one instance of it in this
// program (DefaultField), but operations still check field identity so a
// mismatched element is a programmer error caught immediately.
type Field struct {
	modulus *big.Int
}

// Element is a value in [0, p) paired with the field it belongs to.
type Element struct {
	field *Field
	value *big.Int
}

// DefaultField is the fixed field this whole program operates over.
var DefaultField = &Field{modulus: new(big.Int).SetUint64(Prime)}

// New reduces v modulo the field's prime and returns the canonical element.
func (f *Field) New(v *big.Int) *Element {
	normalized := new(big.Int).Mod(v, f.modulus)
	return &Element{field: f, value: normalized}
}

// NewUint64 creates an element from a uint64.
func (f *Field) NewUint64(v uint64) *Element {
	return f.New(new(big.Int).SetUint64(v))
}

// NewInt64 creates an element from an int64, reducing negative values.
func (f *Field) NewInt64(v int64) *Element {
	return f.New(big.NewInt(v))
}

// Zero returns the additive identity.
func (f *Field) Zero() *Element { return f.NewUint64(0) }

// One returns the multiplicative identity.
func (f *Field) One() *Element { return f.NewUint64(1) }

// Equals reports whether two fields share the same modulus.
func (f *Field) Equals(other *Field) bool {
	return f.modulus.Cmp(other.modulus) == 0
}

func (f *Field) checkSame(other *Field) {
	if !f.Equals(other) {
		panic("field: operation between elements of different fields")
	}
}

// Field returns the element's field.
func (e *Element) Field() *Field { return e.field }

// Uint64 returns the canonical value as a uint64. The field's modulus is
// always small enough (31 bits) for this to be lossless.
func (e *Element) Uint64() uint64 { return e.value.Uint64() }

// Big returns a copy of the canonical value.
func (e *Element) Big() *big.Int { return new(big.Int).Set(e.value) }

// Add returns e + other.
func (e *Element) Add(other *Element) *Element {
	e.field.checkSame(other.field)
	return e.field.New(new(big.Int).Add(e.value, other.value))
}

// Sub returns e - other.
func (e *Element) Sub(other *Element) *Element {
	e.field.checkSame(other.field)
	return e.field.New(new(big.Int).Sub(e.value, other.value))
}

// Neg returns -e. Negation of zero is zero.
func (e *Element) Neg() *Element {
	return e.field.New(new(big.Int).Neg(e.value))
}

// Mul returns e * other.
func (e *Element) Mul(other *Element) *Element {
	e.field.checkSame(other.field)
	return e.field.New(new(big.Int).Mul(e.value, other.value))
}

// Pow raises e to a non-negative integer exponent via square-and-multiply.
// Negative exponents are not supported; use Inv().Pow(-e) at the call site.
func (e *Element) Pow(exponent uint64) *Element {
	result := new(big.Int).Exp(e.value, new(big.Int).SetUint64(exponent), e.field.modulus)
	return e.field.New(result)
}

// PowBig raises e to a non-negative big.Int exponent.
func (e *Element) PowBig(exponent *big.Int) (*Element, error) {
	if exponent.Sign() < 0 {
		return nil, fmt.Errorf("field: negative exponents not supported, use Inv().Pow(|e|)")
	}
	result := new(big.Int).Exp(e.value, exponent, e.field.modulus)
	return e.field.New(result), nil
}

// Inv computes the multiplicative inverse via Fermat's little theorem
// (x^(p-2)). Fails on zero.
func (e *Element) Inv() (*Element, error) {
	if e.IsZero() {
		return nil, fmt.Errorf("field: cannot invert zero")
	}
	exp := new(big.Int).Sub(e.field.modulus, big.NewInt(2))
	result := new(big.Int).Exp(e.value, exp, e.field.modulus)
	return e.field.New(result), nil
}

// Div returns e / other (e * other.Inv()).
func (e *Element) Div(other *Element) (*Element, error) {
	e.field.checkSame(other.field)
	inv, err := other.Inv()
	if err != nil {
		return nil, fmt.Errorf("field: division failed: %w", err)
	}
	return e.Mul(inv), nil
}

// Square returns e * e.
func (e *Element) Square() *Element { return e.Mul(e) }

// Equal reports value and field equality.
func (e *Element) Equal(other *Element) bool {
	if !e.field.Equals(other.field) {
		return false
	}
	return e.value.Cmp(other.value) == 0
}

// IsZero reports whether e is the additive identity.
func (e *Element) IsZero() bool { return e.value.Sign() == 0 }

// IsOne reports whether e is the multiplicative identity.
func (e *Element) IsOne() bool { return e.value.Cmp(big.NewInt(1)) == 0 }

// Bytes returns the canonical value as 8 little-endian bytes.
func (e *Element) Bytes() []byte {
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], e.value.Uint64())
	return buf[:]
}

// FromBytes reconstructs an element from its 8-byte little-endian
// serialization, reducing it modulo the field's prime for safety.
func (f *Field) FromBytes(b []byte) (*Element, error) {
	if len(b) != 8 {
		return nil, fmt.Errorf("field: expected 8 bytes, got %d", len(b))
	}
	v := binary.LittleEndian.Uint64(b)
	return f.NewUint64(v), nil
}

// String renders the canonical value.
func (e *Element) String() string { return e.value.String() }

// BatchInversion inverts many elements at once using Montgomery's trick:
// one accumulated product, a single inversion, then back-substitution.
// This turns n inversions into n multiplications plus one inversion, the
// standard speedup used when dividing a polynomial evaluation by many
// distinct denominators. The constraint quotients in package stark are
// built by polynomial division and do not call it.
func (f *Field) BatchInversion(elements []*Element) ([]*Element, error) {
	n := len(elements)
	if n == 0 {
		return nil, nil
	}
	for i, e := range elements {
		if e.IsZero() {
			return nil, fmt.Errorf("field: cannot invert zero element at index %d", i)
		}
	}

	acc := make([]*Element, n)
	acc[0] = elements[0]
	for i := 1; i < n; i++ {
		acc[i] = acc[i-1].Mul(elements[i])
	}

	accInv, err := acc[n-1].Inv()
	if err != nil {
		return nil, fmt.Errorf("field: failed to invert accumulator: %w", err)
	}

	results := make([]*Element, n)
	for i := n - 1; i > 0; i-- {
		results[i] = accInv.Mul(acc[i-1])
		accInv = accInv.Mul(elements[i])
	}
	results[0] = accInv

	return results, nil
}
