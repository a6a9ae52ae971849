// Package ligerito implements a recursive polynomial commitment scheme
// over binary extension fields. A multilinear polynomial with
// coefficients in a base field (GF(2^16) or GF(2^32)) is committed as a
// Reed-Solomon encoded matrix under a Merkle tree; evaluation proofs
// interleave Ligero-style proximity openings with a characteristic-2
// sumcheck whose claims are recursively re-committed at geometrically
// shrinking sizes, with all challenges drawn from a wide extension field
// (typically GF(2^128)) via a Fiat-Shamir transcript.
//
// The primitives live in the subpackages binfield, reedsolomon, merkle,
// transcript, sumcheck and ligero; this package provides the protocol
// driver (Prove, Verify), the recursion geometry (Params, Autosize) and
// the serializable Proof.
package ligerito
