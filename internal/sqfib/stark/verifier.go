package stark

import (
	"fmt"

	"github.com/starkfib/sqfib-stark/internal/sqfib/channel"
	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
	"github.com/starkfib/sqfib-stark/internal/sqfib/merkletree"
)

// NumFRILayers returns how many Merkle-committed FRI layers the protocol
// produces before folding bottoms out at a directly-sent constant. This is
// a function of the public parameters alone (domain and blow-up sizes),
// not of the trace, so both prover and verifier can compute it without
// exchanging it.
func (c *Config) NumFRILayers() int {
	size := c.LDEDomainSize
	n := 0
	for size > c.BlowUpFactor {
		size /= 2
		n++
	}
	return n
}

// Verify replays the transcript recorded in a compressed proof, re-deriving
// every challenge, and checks Merkle-path validity and FRI folding
// consistency for every query. It returns the first failure encountered.
func Verify(cfg *Config, compressed []byte) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	f := field.DefaultField
	domains := BuildDomains(f, cfg)
	reader := channel.NewReader(compressed)
	ch := channel.New()

	fRootBytes, err := reader.Next()
	if err != nil {
		return fmt.Errorf("stark: reading trace commitment: %w", err)
	}
	ch.Send(fRootBytes)
	var fRoot [32]byte
	copy(fRoot[:], fRootBytes)

	alpha0 := ch.ReceiveRandomFieldElement(f)
	alpha1 := ch.ReceiveRandomFieldElement(f)
	alpha2 := ch.ReceiveRandomFieldElement(f)
	_, _, _ = alpha0, alpha1, alpha2 // re-derived for transcript lockstep; the verifier never reconstructs cp itself

	numLayers := cfg.NumFRILayers()
	layerRoots := make([][32]byte, numLayers)
	layerDomainSizes := make([]int, numLayers)
	layerDomains := make([][]*field.Element, numLayers)
	betas := make([]*field.Element, numLayers)

	domain := domains.L
	for k := 0; k < numLayers; k++ {
		rootBytes, err := reader.Next()
		if err != nil {
			return fmt.Errorf("stark: reading FRI layer %d commitment: %w", k, err)
		}
		ch.Send(rootBytes)
		var root [32]byte
		copy(root[:], rootBytes)
		layerRoots[k] = root
		layerDomainSizes[k] = len(domain)
		layerDomains[k] = domain

		betas[k] = ch.ReceiveRandomFieldElement(f)
		domain = FoldDomain(domain)
	}

	constBytes, err := reader.Next()
	if err != nil {
		return fmt.Errorf("stark: reading final FRI constant: %w", err)
	}
	ch.Send(constBytes)
	finalConstant, err := f.FromBytes(constBytes)
	if err != nil {
		return fmt.Errorf("stark: decoding final FRI constant: %w", err)
	}

	for q := 0; q < cfg.Queries; q++ {
		j := ch.ReceiveRandomInt(0, cfg.MaxQueryIndex(), false)

		fOpenBytes, err := reader.Next()
		if err != nil {
			return fmt.Errorf("stark: reading trace opening for query %d: %w", q, err)
		}
		ch.Send(fOpenBytes)
		fOpen, err := DecodeOpening(fOpenBytes, f)
		if err != nil {
			return fmt.Errorf("stark: decoding trace opening for query %d: %w", q, err)
		}
		if !merkletree.Validate(fRoot, fOpen.PathA, fOpen.ValueA.Bytes()) ||
			!merkletree.Validate(fRoot, fOpen.PathB, fOpen.ValueB.Bytes()) {
			return fmt.Errorf("query %d trace opening: %w", q, ErrCommitment)
		}
		if fOpen.PathA.Index != j || fOpen.PathB.Index != j+cfg.BlowUpFactor {
			return fmt.Errorf("query %d trace opening at unexpected index: %w", q, ErrProtocol)
		}

		openings := make([]*Opening, numLayers)
		for k := 0; k < numLayers; k++ {
			openBytes, err := reader.Next()
			if err != nil {
				return fmt.Errorf("stark: reading FRI layer %d opening for query %d: %w", k, q, err)
			}
			ch.Send(openBytes)
			opening, err := DecodeOpening(openBytes, f)
			if err != nil {
				return fmt.Errorf("stark: decoding FRI layer %d opening for query %d: %w", k, q, err)
			}

			size := layerDomainSizes[k]
			jk := j % size
			partner := (jk + size/2) % size
			if opening.PathA.Index != jk || opening.PathB.Index != partner {
				return fmt.Errorf("query %d layer %d opening at unexpected index: %w", q, k, ErrProtocol)
			}
			if !merkletree.Validate(layerRoots[k], opening.PathA, opening.ValueA.Bytes()) ||
				!merkletree.Validate(layerRoots[k], opening.PathB, opening.ValueB.Bytes()) {
				return fmt.Errorf("query %d layer %d opening: %w", q, k, ErrCommitment)
			}
			openings[k] = opening
		}

		for k := 0; k < numLayers; k++ {
			size := layerDomainSizes[k]
			jk := j % size
			x := layerDomains[k][jk]
			folded, err := FoldEval(x, openings[k].ValueA, openings[k].ValueB, betas[k], f)
			if err != nil {
				return fmt.Errorf("query %d layer %d fold: %w", q, k, err)
			}

			var target *field.Element
			if k+1 < numLayers {
				target = openings[k+1].ValueA
			} else {
				target = finalConstant
			}
			if !folded.Equal(target) {
				return fmt.Errorf("query %d layer %d: %w", q, k, ErrFolding)
			}
		}
	}

	return nil
}
