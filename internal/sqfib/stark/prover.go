package stark

import (
	"fmt"

	"github.com/starkfib/sqfib-stark/internal/sqfib/channel"
	"github.com/starkfib/sqfib-stark/internal/sqfib/field"
	"github.com/starkfib/sqfib-stark/internal/sqfib/merkletree"
)

// Proof is the output of Prove: the compressed transcript the verifier
// needs, plus sizes for reporting.
type Proof struct {
	Compressed     []byte
	ProofSize      int
	CompressedSize int
	FinalTrace     *field.Element
}

// ProgressFunc is called after each named pipeline stage completes, so a
// caller (typically the CLI) can print progress without the pipeline
// itself depending on a logger.
type ProgressFunc func(stage string)

func noProgress(string) {}

// Prove runs the full prover pipeline: trace generation, interpolation,
// LDE, commitment, constraint construction, composition, FRI commitment,
// and the query phase. It returns an error if the trace does not satisfy
// the recurrence (a non-zero constraint remainder) or if any commitment
// step fails.
func Prove(cfg *Config, progress ProgressFunc) (*Proof, error) {
	if progress == nil {
		progress = noProgress
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	f := field.DefaultField
	domains := BuildDomains(f, cfg)
	ch := channel.New()

	trace := GenerateTrace(f, cfg)
	progress("trace generation")

	tracePoly, err := InterpolateTrace(trace, domains)
	if err != nil {
		return nil, fmt.Errorf("stark: interpolating trace: %w", err)
	}
	progress("interpolation")

	fEvals := EvaluateOn(tracePoly, domains.L)
	fTree, err := merkletree.New(bytesOfElements(fEvals))
	if err != nil {
		return nil, fmt.Errorf("stark: committing trace LDE: %w", err)
	}
	fRoot := fTree.Root()
	ch.Send(fRoot[:])
	progress("extension and commitment")

	constraints, err := BuildConstraints(tracePoly, domains, cfg, f)
	if err != nil {
		return nil, fmt.Errorf("stark: constraint construction: %w", err)
	}

	alpha0 := ch.ReceiveRandomFieldElement(f)
	alpha1 := ch.ReceiveRandomFieldElement(f)
	alpha2 := ch.ReceiveRandomFieldElement(f)
	cp := constraints.Compose(alpha0, alpha1, alpha2)
	progress("composition")

	layers, _, err := BuildFRILayers(cp, domains.L, ch, f)
	if err != nil {
		return nil, fmt.Errorf("stark: FRI commit: %w", err)
	}
	progress("FRI layer generation")

	for i := 0; i < cfg.Queries; i++ {
		j := ch.ReceiveRandomInt(0, cfg.MaxQueryIndex(), false)

		fOpen, err := buildOpening(fTree, fEvals, j, j+cfg.BlowUpFactor)
		if err != nil {
			return nil, fmt.Errorf("stark: building trace opening: %w", err)
		}
		ch.Send(EncodeOpening(fOpen))

		for _, layer := range layers {
			size := len(layer.Domain)
			jk := j % size
			partner := (jk + size/2) % size
			opening, err := buildOpening(layer.Tree, layer.Evals, jk, partner)
			if err != nil {
				return nil, fmt.Errorf("stark: building FRI layer opening: %w", err)
			}
			ch.Send(EncodeOpening(opening))
		}
	}
	progress("decommit")

	return &Proof{
		Compressed:     ch.CompressedProof(),
		ProofSize:      ch.ProofSize(),
		CompressedSize: ch.CompressedProofSize(),
		FinalTrace:     trace[len(trace)-1],
	}, nil
}

func buildOpening(tree *merkletree.Tree, evals []*field.Element, idxA, idxB int) (*Opening, error) {
	pathA, err := tree.Path(idxA)
	if err != nil {
		return nil, err
	}
	pathB, err := tree.Path(idxB)
	if err != nil {
		return nil, err
	}
	return &Opening{ValueA: evals[idxA], ValueB: evals[idxB], PathA: pathA, PathB: pathB}, nil
}
