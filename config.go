package ligerito

import (
	"fmt"

	"github.com/zeratul-zk/ligerito/binfield"
	"github.com/zeratul-zk/ligerito/reedsolomon"
)

const (
	// LogInvRate is the log2 of the Reed-Solomon expansion factor: every
	// committed matrix has InvRate times more encoded rows than message
	// rows.
	LogInvRate = 2
	InvRate    = 1 << LogInvRate

	// DefaultNumQueries is the proximity-test query count used by the
	// autosizer.
	DefaultNumQueries = 148
)

// Params fixes the recursion geometry of one protocol instance. The
// committed polynomial has 2^(InitialDim+InitialK) coefficients; level i
// of the recursion works on a matrix with 2^LogDims[i] rows and 2^Ks[i]
// columns, and each level runs Ks[i] sumcheck rounds.
type Params struct {
	RecursiveSteps int
	InitialDim     int
	InitialK       int
	LogDims        []int
	Ks             []int
	NumQueries     int
}

// LogSize returns log2 of the committed polynomial length.
func (p Params) LogSize() int { return p.InitialDim + p.InitialK }

// Validate checks the recursion geometry. The dimension chain must be
// exact: LogDims[i] = LogDims[i-1] - Ks[i], anchored at
// LogDims[0] = InitialDim - Ks[0], so every fold and glue lines up.
func (p Params) Validate() error {
	if p.RecursiveSteps < 2 {
		// The final consistency check anchors the last evaluation vector
		// to the previous level's commitment, which must postdate the
		// initial query sampling.
		return fmt.Errorf("%w: at least two recursive steps required", ErrInvalidInput)
	}
	if len(p.Ks) != p.RecursiveSteps || len(p.LogDims) != p.RecursiveSteps {
		return fmt.Errorf("%w: Ks and LogDims must have RecursiveSteps entries", ErrInvalidInput)
	}
	if p.InitialDim < 1 || p.InitialK < 1 {
		return fmt.Errorf("%w: initial matrix must be non-degenerate", ErrInvalidInput)
	}
	prev := p.InitialDim
	for i := 0; i < p.RecursiveSteps; i++ {
		if p.Ks[i] < 1 {
			return fmt.Errorf("%w: Ks[%d] must be positive", ErrInvalidInput, i)
		}
		if p.LogDims[i] != prev-p.Ks[i] {
			return fmt.Errorf("%w: LogDims[%d] breaks the dimension chain", ErrInvalidInput, i)
		}
		if p.LogDims[i] < 1 {
			return fmt.Errorf("%w: LogDims[%d] must be positive", ErrInvalidInput, i)
		}
		prev = p.LogDims[i]
	}
	last := p.LogDims[p.RecursiveSteps-1]
	if p.NumQueries < 1 || p.NumQueries > 1<<uint(last+LogInvRate) {
		return fmt.Errorf("%w: NumQueries must fit the smallest codeword", ErrInvalidInput)
	}
	return nil
}

// ProverConfig bundles validated parameters with the field embedding and
// the per-level Reed-Solomon encoders. T is the committed base field, U
// the challenge field.
type ProverConfig[T binfield.Element[T], U binfield.Element[U]] struct {
	Params Params
	Embed  func(T) U

	initialEnc *reedsolomon.Encoder[T]
	encs       []*reedsolomon.Encoder[U]
}

// NewProverConfig validates p and precomputes all encoder twiddles.
func NewProverConfig[T binfield.Element[T], U binfield.Element[U]](p Params, embed func(T) U) (*ProverConfig[T, U], error) {
	if embed == nil {
		return nil, fmt.Errorf("%w: nil embedding", ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	initialEnc, err := reedsolomon.NewEncoder[T](1<<uint(p.InitialDim), 1<<uint(p.InitialDim+LogInvRate))
	if err != nil {
		return nil, err
	}
	encs := make([]*reedsolomon.Encoder[U], p.RecursiveSteps)
	for i, d := range p.LogDims {
		encs[i], err = reedsolomon.NewEncoder[U](1<<uint(d), 1<<uint(d+LogInvRate))
		if err != nil {
			return nil, err
		}
	}
	return &ProverConfig[T, U]{Params: p, Embed: embed, initialEnc: initialEnc, encs: encs}, nil
}

// VerifierConfig bundles validated parameters with the field embedding.
type VerifierConfig[T binfield.Element[T], U binfield.Element[U]] struct {
	Params Params
	Embed  func(T) U
}

// NewVerifierConfig validates p.
func NewVerifierConfig[T binfield.Element[T], U binfield.Element[U]](p Params, embed func(T) U) (*VerifierConfig[T, U], error) {
	if embed == nil {
		return nil, fmt.Errorf("%w: nil embedding", ErrInvalidInput)
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return &VerifierConfig[T, U]{Params: p, Embed: embed}, nil
}
