package stark

import (
	"github.com/starkfib/sqfib-stark/internal/sqfib/channel"
	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
	"github.com/starkfib/sqfib-stark/internal/sqfib/merkletree"
	"github.com/starkfib/sqfib-stark/internal/sqfib/poly"
)

// Layer is one step of the FRI commitment: a polynomial, the domain it was
// evaluated on, those evaluations, and the Merkle tree committing to them.
type Layer struct {
	Poly   *poly.Polynomial
	Domain []*field.Element
	Evals  []*field.Element
	Tree   *merkletree.Tree
}

// splitEvenOdd writes p(x) = g(x^2) + x*h(x^2), returning g and h.
func splitEvenOdd(p *poly.Polynomial, f *field.Field) (*poly.Polynomial, *poly.Polynomial) {
	coeffs := p.Coefficients()
	gLen := (len(coeffs) + 1) / 2
	hLen := len(coeffs) / 2

	gc := make([]*field.Element, gLen)
	hc := make([]*field.Element, hLen)
	for i := range gc {
		gc[i] = f.Zero()
	}
	for i := range hc {
		hc[i] = f.Zero()
	}
	for i, c := range coeffs {
		if i%2 == 0 {
			gc[i/2] = c
		} else {
			hc[i/2] = c
		}
	}
	return poly.New(gc), poly.New(hc)
}

// FoldPolynomial returns cp' = g + beta*h where cp(x) = g(x^2) + x*h(x^2).
func FoldPolynomial(p *poly.Polynomial, beta *field.Element, f *field.Field) *poly.Polynomial {
	g, h := splitEvenOdd(p, f)
	return g.Add(h.MulScalar(beta))
}

// FoldDomain returns {x^2 : x in the first half of domain}, the domain the
// folded polynomial is evaluated on.
func FoldDomain(domain []*field.Element) []*field.Element {
	half := len(domain) / 2
	out := make([]*field.Element, half)
	for i := 0; i < half; i++ {
		out[i] = domain[i].Square()
	}
	return out
}

func bytesOfElements(elems []*field.Element) [][]byte {
	out := make([][]byte, len(elems))
	for i, e := range elems {
		out[i] = e.Bytes()
	}
	return out
}

// commitLayer evaluates p on domain, builds its Merkle tree, and absorbs
// the root into the channel.
func commitLayer(p *poly.Polynomial, domain []*field.Element, ch *channel.Channel) (*Layer, error) {
	evals := EvaluateOn(p, domain)
	tree, err := merkletree.New(bytesOfElements(evals))
	if err != nil {
		return nil, err
	}
	root := tree.Root()
	ch.Send(root[:])
	return &Layer{Poly: p, Domain: domain, Evals: evals, Tree: tree}, nil
}

// BuildFRILayers folds cp down to a constant, committing each intermediate
// layer and drawing a fold challenge beta from the channel before each
// fold. The terminal constant is sent directly (not Merkle-committed,
// since every evaluation of a degree-0 polynomial is identical) and
// absorbed as the last transcript record of the commit phase.
func BuildFRILayers(cp *poly.Polynomial, domain []*field.Element, ch *channel.Channel, f *field.Field) ([]*Layer, *field.Element, error) {
	var layers []*Layer
	curPoly := cp
	curDomain := domain

	for {
		if curPoly.Degree() <= 0 {
			constant := curPoly.Eval(f.Zero())
			ch.Send(constant.Bytes())
			return layers, constant, nil
		}

		layer, err := commitLayer(curPoly, curDomain, ch)
		if err != nil {
			return nil, nil, err
		}
		layers = append(layers, layer)

		beta := ch.ReceiveRandomFieldElement(f)
		curPoly = FoldPolynomial(curPoly, beta, f)
		curDomain = FoldDomain(curDomain)
	}
}

// FoldEval computes the folded evaluation at x^2 from cp_k's evaluations at
// x and -x: cp_{k+1}(x^2) = (cp_k(x)+cp_k(-x))/2 + beta*(cp_k(x)-cp_k(-x))/(2x).
// This is the identity the verifier uses to check consistency between two
// adjacent FRI layers without reconstructing either polynomial.
func FoldEval(x, fx, fNegX, beta *field.Element, f *field.Field) (*field.Element, error) {
	two := f.NewUint64(2)
	sum := fx.Add(fNegX)
	diff := fx.Sub(fNegX)

	sumHalf, err := sum.Div(two)
	if err != nil {
		return nil, err
	}
	twoX := two.Mul(x)
	diffOverTwoX, err := diff.Div(twoX)
	if err != nil {
		return nil, err
	}
	return sumHalf.Add(beta.Mul(diffOverTwoX)), nil
}
