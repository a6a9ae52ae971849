package ligerito

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidInput reports misuse caught before any protocol work:
	// bad geometry, nil arguments, structurally malformed proofs.
	ErrInvalidInput = errors.New("invalid input")

	// ErrTranscriptExhausted reports a proof with fewer entries than the
	// verification schedule consumes.
	ErrTranscriptExhausted = errors.New("transcript exhausted")

	// ErrClaimMismatch reports a round message whose claimed total
	// disagrees with the tracked sum.
	ErrClaimMismatch = errors.New("claim mismatch")

	// ErrSumMismatch reports a failed evaluation consistency check.
	ErrSumMismatch = errors.New("sum mismatch")

	// ErrMerkleVerification reports a failed batched Merkle opening.
	ErrMerkleVerification = errors.New("merkle verification failed")

	// ErrDimensionMismatch reports proof vectors whose lengths disagree
	// with the configured geometry.
	ErrDimensionMismatch = errors.New("dimension mismatch")
)

// RejectError wraps the reason a proof was rejected together with the
// verification stage that detected it. It unwraps to one of the
// sentinel errors above.
type RejectError struct {
	Kind  error
	Stage string
}

func (e *RejectError) Error() string {
	return fmt.Sprintf("ligerito: proof rejected at %s: %v", e.Stage, e.Kind)
}

func (e *RejectError) Unwrap() error { return e.Kind }

func reject(kind error, stage string) error {
	return &RejectError{Kind: kind, Stage: stage}
}
