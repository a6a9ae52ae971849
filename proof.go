package ligerito

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/zeratul-zk/ligerito/binfield"
	"github.com/zeratul-zk/ligerito/ligero"
	"github.com/zeratul-zk/ligerito/sumcheck"
)

// Proof is the full transcript artifact produced by Prove. T is the
// committed base field, U the challenge field.
type Proof[T binfield.Element[T], U binfield.Element[U]] struct {
	// InitialCommitment binds the raw coefficient matrix.
	InitialCommitment ligero.Commitment
	// InitialOpening reveals the queried rows of the initial matrix.
	InitialOpening ligero.Opening[T]

	// RecursiveCommitments holds one commitment per recursive level; the
	// first binds the partially evaluated polynomial, later ones the
	// folded claim vectors.
	RecursiveCommitments []ligero.Commitment
	// RecursiveOpenings holds the queried rows of every level except the
	// last.
	RecursiveOpenings []ligero.Opening[U]

	// Triples carries the sumcheck round messages, Ks[i] per level.
	Triples []sumcheck.Triple[U]

	// FinalEval is the fully folded claim vector of the last level.
	FinalEval []U
	// FinalOpening reveals the queried rows of the last committed level.
	FinalOpening ligero.Opening[U]
}

var proofEncMode cbor.EncMode

func init() {
	var err error
	proofEncMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic(err)
	}
}

// proofSerde shares Proof's layout but not its methods, so CBOR encodes
// the struct fields instead of recursing into MarshalBinary.
type proofSerde[T binfield.Element[T], U binfield.Element[U]] Proof[T, U]

// MarshalBinary serializes the proof with deterministic CBOR.
func (p *Proof[T, U]) MarshalBinary() ([]byte, error) {
	return proofEncMode.Marshal((*proofSerde[T, U])(p))
}

// UnmarshalBinary deserializes a proof produced by MarshalBinary.
func (p *Proof[T, U]) UnmarshalBinary(data []byte) error {
	if err := cbor.Unmarshal(data, (*proofSerde[T, U])(p)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}

// Validate rejects gross structural damage before the verification
// schedule starts. Fine-grained length checks happen inline where the
// schedule consumes each entry. Verify calls this; it is exported for
// callers that want to triage deserialized proofs early.
func (p *Proof[T, U]) Validate(params Params) error {
	if len(p.RecursiveCommitments) != params.RecursiveSteps {
		return fmt.Errorf("%w: expected %d recursive commitments", ErrInvalidInput, params.RecursiveSteps)
	}
	if len(p.RecursiveOpenings) != params.RecursiveSteps-1 {
		return fmt.Errorf("%w: expected %d recursive openings", ErrInvalidInput, params.RecursiveSteps-1)
	}
	total := 0
	for _, k := range params.Ks {
		total += k
	}
	if len(p.Triples) > total {
		return fmt.Errorf("%w: more round messages than sumcheck rounds", ErrInvalidInput)
	}
	if len(p.FinalEval) == 0 {
		return fmt.Errorf("%w: missing final evaluation vector", ErrInvalidInput)
	}
	return nil
}
